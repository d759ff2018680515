// Package site builds a static HTML gallery out of a folder of arbitrary files:
// it copies every file under the source folder into docs/files, renders a
// per-file preview (image, pdf, csv, json, text), and writes docs/index.html
// plus a stylesheet, an optional about page rendered from the folder's
// README.md, and a download-everything zip bundle. One call to Build is one
// complete, overwriting run; nothing is incremental.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Paths names the source folder and the output tree for one build.
type Paths struct {
	Src    string // folder to publish
	Docs   string // output root; index.html goes here
	Files  string // byte copies of the source files
	Assets string // generated stylesheet
}

// DefaultPaths is the fixed docs/ layout: only the source folder varies.
func DefaultPaths(src string) Paths {
	return Paths{
		Src:    src,
		Docs:   "docs",
		Files:  filepath.Join("docs", "files"),
		Assets: filepath.Join("docs", "site_assets"),
	}
}

// Result reports what a Build wrote.
type Result struct {
	SrcMissing bool   // source folder did not exist; only the explanatory page was written
	Files      int    // source files copied
	IndexPath  string // the generated page
	AboutPath  string // non-empty if README.md was rendered
	BundlePath string // non-empty if the zip bundle was written
}

// Build runs the whole pipeline once. Filesystem failures (mkdir, copy,
// write) are fatal and returned; a missing source folder is not an error.
func Build(logger *zap.Logger, p Paths) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result

	for _, dir := range []string{p.Docs, p.Assets} {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return res, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(p.Assets, "styles.css"), []byte(stylesheet), 0o777); err != nil {
		return res, fmt.Errorf("write stylesheet: %w", err)
	}

	if _, err := os.Stat(p.Src); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("stat source %s: %w", p.Src, err)
		}
		// short-circuit: explain, and leave whatever copies an earlier run
		// made alone.
		logger.Warn("source folder not found", zap.String("src", p.Src))
		res.IndexPath = filepath.Join(p.Docs, "index.html")
		if err := os.WriteFile(res.IndexPath, []byte(renderMissingPage(p.Src)), 0o777); err != nil {
			return res, fmt.Errorf("write index: %w", err)
		}
		res.SrcMissing = true
		return res, nil
	}

	// Stale copies from an earlier run would trip the collision rename and
	// leave the files dir out of sync with the source.
	if err := os.RemoveAll(p.Files); err != nil {
		return res, fmt.Errorf("reset %s: %w", p.Files, err)
	}
	if err := os.MkdirAll(p.Files, 0o777); err != nil {
		return res, fmt.Errorf("mkdir %s: %w", p.Files, err)
	}

	srcs, err := collect(p.Src)
	if err != nil {
		return res, err
	}

	var cards []string
	for _, src := range srcs {
		dst, err := copyInto(p.Files, src)
		if err != nil {
			return res, fmt.Errorf("copy %s: %w", src, err)
		}
		info, err := os.Stat(dst)
		if err != nil {
			return res, fmt.Errorf("stat copy %s: %w", dst, err)
		}
		rel := "./files/" + filepath.Base(dst)
		logger.Debug("copied", zap.String("src", src), zap.String("dst", dst), zap.Int64("bytes", info.Size()))
		cards = append(cards, renderCard(dst, rel, info.Size()))
	}
	res.Files = len(srcs)

	var aboutHref string
	if readme := filepath.Join(p.Src, "README.md"); fileExists(readme) {
		page, err := renderAbout(readme)
		if err != nil {
			// a broken README shouldn't sink the whole gallery
			logger.Warn("about page skipped", zap.String("readme", readme), zap.Error(err))
		} else {
			res.AboutPath = filepath.Join(p.Docs, "about.html")
			if err := os.WriteFile(res.AboutPath, page, 0o777); err != nil {
				return res, fmt.Errorf("write about page: %w", err)
			}
			aboutHref = "./about.html"
		}
	}

	var zipHref string
	if len(srcs) > 0 {
		res.BundlePath = filepath.Join(p.Docs, "gallery.zip")
		if err := writeBundle(res.BundlePath, p.Files); err != nil {
			return res, fmt.Errorf("write bundle: %w", err)
		}
		zipHref = "./gallery.zip"
	}

	res.IndexPath = filepath.Join(p.Docs, "index.html")
	page := renderPage(p.Src, cards, time.Now().UTC(), aboutHref, zipHref)
	if err := os.WriteFile(res.IndexPath, []byte(page), 0o777); err != nil {
		return res, fmt.Errorf("write index: %w", err)
	}
	logger.Info("gallery built",
		zap.Int("files", res.Files),
		zap.String("src", p.Src),
		zap.String("index", res.IndexPath),
	)
	return res, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

const stylesheet = `:root { --fg:#111; --bg:#fff; --muted:#666; --accent:#0b63f6; --line:#e5e5e5; }
* { box-sizing:border-box; }
html, body { margin:0; padding:0; font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Arial,sans-serif; background:var(--bg); color:var(--fg); }
header { position:sticky; top:0; background:#fff; border-bottom:1px solid var(--line); padding:12px 16px; }
h1 { margin:0; font-size:20px; }
main { max-width:1100px; margin:20px auto; padding:0 16px 48px; }
.note { color:var(--muted); font-size:12px; }
.grid { display:grid; grid-template-columns:repeat(auto-fit,minmax(280px,1fr)); gap:14px; }
.card { border:1px solid var(--line); border-radius:10px; padding:12px; background:#fff; overflow:hidden; display:flex; flex-direction:column; gap:8px; }
.meta { font-size:13px; color:#333; line-height:1.4; }
.meta b { display:inline-block; min-width:82px; color:#000; }
.btn { display:inline-block; padding:7px 10px; border:1px solid var(--accent); color:var(--accent); border-radius:6px; text-decoration:none; }
.table-wrap { overflow:auto; border:1px solid var(--line); border-radius:8px; }
table { border-collapse:collapse; width:100%; font-size:13px; }
thead { background:#fafafa; }
th,td { border-bottom:1px solid var(--line); padding:6px 8px; white-space:nowrap; text-align:left; }
pre.code { background:#0d1117; color:#c9d1d9; padding:12px; border-radius:8px; overflow:auto; font-size:12px; }
.pdf-wrap { border:1px solid var(--line); border-radius:8px; overflow:hidden; }
.pdf-wrap iframe { width:100%; height:420px; border:0; }
.badge { display:inline-block; font-size:11px; padding:2px 6px; border-radius:999px; background:#f3f3f3; border:1px solid var(--line); }
`
