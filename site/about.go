package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/sourcegraph/syntaxhighlight"
)

var titleRE = regexp.MustCompile(`^# (.+)`) // first top-level heading, e.g. "# Lab 3 results"

// renderAbout renders the markdown file at path as a complete standalone HTML
// page sharing the gallery stylesheet. The page title comes from the first
// "# heading", defaulting to the file name. Fenced code blocks are replaced
// with syntax-highlighted markup.
func renderAbout(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := markdown.NormalizeNewlines(src)

	title := strings.TrimSuffix(filepath.Base(path), ".md")
	if match := titleRE.FindSubmatch(b); len(match) > 1 {
		title = strings.TrimSpace(string(match[1]))
	}

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		CSS:   "./site_assets/styles.css",
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: title,
	})
	page := markdown.ToHTML(b, nil, renderer)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}
	var hlErr error
	doc.Find(`code[class*="language-"]`).Each(func(_ int, s *goquery.Selection) {
		hl, err := syntaxhighlight.AsHTML([]byte(s.Text()))
		if err != nil {
			hlErr = fmt.Errorf("highlight code block: %w", err)
			return
		}
		s.SetHtml(string(hl))
	})
	if hlErr != nil {
		return nil, hlErr
	}
	out, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
