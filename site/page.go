package site

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// humanSize divides by 1024 across B/KB/MB/GB/TB, formatting to one decimal
// at the first unit where the value drops below 1024.
func humanSize(n int64) string {
	x := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if x < 1024 {
			return fmt.Sprintf("%.1f%s", x, unit)
		}
		x /= 1024
	}
	return fmt.Sprintf("%.1fTB", x)
}

// mimeType guesses from the file name, defaulting to a generic binary type.
func mimeType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// renderCard emits one gallery card: badge, name, size, mime, preview, and a
// download link to the copied file.
func renderCard(dst, relHref string, size int64) string {
	name := filepath.Base(dst)
	badge := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if badge == "" {
		badge = "file"
	}
	var sb strings.Builder
	sb.WriteString("<article class=\"card\">\n  <div class=\"meta\">\n")
	fmt.Fprintf(&sb, "    <div><span class=\"badge\">%s</span></div>\n", esc(badge))
	fmt.Fprintf(&sb, "    <div><b>name</b>%s</div>\n", esc(name))
	fmt.Fprintf(&sb, "    <div><b>size</b>%s</div>\n", humanSize(size))
	fmt.Fprintf(&sb, "    <div><b>MIME</b>%s</div>\n", esc(mimeType(name)))
	sb.WriteString("  </div>\n  ")
	sb.WriteString(Preview(dst, relHref))
	fmt.Fprintf(&sb, "\n  <div><a class=\"btn\" href=\"%s\" download>download</a></div>\n</article>\n", esc(relHref))
	return sb.String()
}

// renderPage wraps the cards in the fixed HTML shell. now must already be UTC.
func renderPage(src string, cards []string, now time.Time, aboutHref, zipHref string) string {
	note := fmt.Sprintf("source folder: <code>%s</code>; updated %s UTC", esc(src), now.Format("2006-01-02 15:04"))
	if aboutHref != "" {
		note += fmt.Sprintf(`; <a href="%s">about this folder</a>`, aboutHref)
	}
	if zipHref != "" {
		note += fmt.Sprintf(`; <a href="%s" download>download all</a>`, zipHref)
	}
	body := "<p class='note'>This folder has no files yet.</p>"
	if len(cards) > 0 {
		body = strings.Join(cards, "")
	}
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Folder Gallery</title>
<link rel="stylesheet" href="./site_assets/styles.css"/>
<body>
<header><h1>Folder Gallery</h1></header>
<main>
  <p class="note">%s</p>
  <section class="grid">
    %s
  </section>
</main>
</body>
</html>`, note, body)
}

// renderMissingPage is the short-circuit page for a nonexistent source folder.
func renderMissingPage(src string) string {
	return fmt.Sprintf("<!doctype html><meta charset='utf-8'><link rel='stylesheet' href='./site_assets/styles.css'>"+
		"<body><main><h1>folder not found</h1><p class='note'>no such source folder: <code>%s</code></p></main></body>",
		esc(src))
}
