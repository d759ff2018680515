package site

import (
	"strings"
	"testing"
	"time"
)

func TestHumanSize(t *testing.T) {
	for _, tt := range []struct {
		n    int64
		want string
	}{
		{0, "0.0B"},
		{512, "512.0B"},
		{1023, "1023.0B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1 << 20, "1.0MB"},
		{1 << 30, "1.0GB"},
		{1 << 40, "1.0TB"},
		{1 << 50, "1024.0TB"}, // unit list exhausted: keep dividing no further
	} {
		if got := humanSize(tt.n); got != tt.want {
			t.Fatalf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMimeType(t *testing.T) {
	if got := mimeType("a.json"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("mimeType(a.json) = %q", got)
	}
	if got := mimeType("a.qqqzz"); got != "application/octet-stream" {
		t.Fatalf("expected octet-stream fallback, got %q", got)
	}
}

func TestRenderPage(t *testing.T) {
	now := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	page := renderPage("uploads", nil, now, "", "")
	for _, want := range []string{
		`<meta charset="utf-8"/>`,
		`<meta name="viewport"`,
		`href="./site_assets/styles.css"`,
		"updated 2024-05-17 09:30 UTC",
		"<code>uploads</code>",
		"no files yet",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}

	withLinks := renderPage("uploads", []string{"<article>x</article>"}, now, "./about.html", "./gallery.zip")
	for _, want := range []string{`href="./about.html"`, `href="./gallery.zip" download`, "<article>x</article>"} {
		if !strings.Contains(withLinks, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
	if strings.Contains(withLinks, "no files yet") {
		t.Fatal("non-empty gallery should not show the no-files note")
	}
}

func TestRenderCardEscapes(t *testing.T) {
	card := renderCard(`/tmp/out/we<ird>&.xyzzz`, `./files/we<ird>&.xyzzz`, 2048)
	if strings.Contains(card, "<ird>") {
		t.Fatalf("file name leaked unescaped markup: %s", card)
	}
	for _, want := range []string{"we&lt;ird&gt;&amp;.xyzzz", "2.0KB", "application/octet-stream", `<span class="badge">xyzzz</span>`} {
		if !strings.Contains(card, want) {
			t.Fatalf("expected card to contain %q, got: %s", want, card)
		}
	}
}

func TestRenderMissingPage(t *testing.T) {
	page := renderMissingPage("no/such/<dir>")
	if !strings.Contains(page, "no/such/&lt;dir&gt;") {
		t.Fatalf("expected the literal (escaped) source path, got: %s", page)
	}
	if strings.Contains(page, "<dir>") {
		t.Fatalf("path markup leaked: %s", page)
	}
}
