package site

import (
	"strings"
	"testing"
)

func TestRenderAboutTitleFromHeading(t *testing.T) {
	p := writeTemp(t, "README.md", "# Hello World\n\nplain text\n")
	out, err := renderAbout(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<title>Hello World</title>") {
		t.Fatalf("expected the heading as the page title, got:\n%s", out)
	}
}

func TestRenderAboutTitleDefaultsToFileName(t *testing.T) {
	p := writeTemp(t, "notes.md", "no heading here, just prose\n")
	out, err := renderAbout(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<title>notes</title>") {
		t.Fatalf("expected the file name as the page title, got:\n%s", out)
	}
}

func TestRenderAboutHighlightsFencedCode(t *testing.T) {
	md := "# Code\n\n```go\nfunc main() { return }\n```\n"
	out, err := renderAbout(writeTemp(t, "README.md", md))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<span class="`) {
		t.Fatalf("expected highlighted spans in the code block, got:\n%s", out)
	}
}

func TestRenderAboutLinksStylesheet(t *testing.T) {
	out, err := renderAbout(writeTemp(t, "README.md", "# x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "./site_assets/styles.css") {
		t.Fatalf("expected the shared stylesheet link, got:\n%s", out)
	}
}
