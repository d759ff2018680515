package site

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	csvMaxRows   = 30      // data rows shown in a CSV table
	jsonMaxChars = 200_000 // raw fallback cap, in runes, when JSON won't parse
	textMaxLines = 200     // head shown for txt/log/md
)

var imageExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "svg": true, "webp": true,
}

var utf8BOM = []byte("\xef\xbb\xbf")

// esc escapes file-derived text (&, <, >, ", ') before it touches markup.
// File names and contents are attacker-controlled as far as the page is
// concerned.
func esc(s string) string { return html.EscapeString(s) }

// Preview returns an HTML fragment summarizing the file at path, dispatching
// on the lower-cased extension. relHref is the page-relative link to the
// copied file. Unreadable or unparseable csv/json degrade to in-page notes;
// Preview never fails.
func Preview(path, relHref string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch {
	case imageExts[ext]:
		return fmt.Sprintf(
			`<img src="%s" alt="%s" style="max-width:100%%;height:auto;border:1px solid #eee;border-radius:6px;" loading="lazy"/>`,
			esc(relHref), esc(filepath.Base(path)))
	case ext == "pdf":
		return fmt.Sprintf(
			`<div class="pdf-wrap"><iframe src="%s" title="pdf"></iframe><div class="note">If the embed does not load, use the download link.</div></div>`,
			esc(relHref))
	case ext == "csv":
		return previewCSV(path)
	case ext == "json":
		return previewJSON(path)
	case ext == "txt" || ext == "log" || ext == "md":
		return previewText(path)
	default:
		return `<p class="note">No preview available for this file type.</p>`
	}
}

func previewCSV(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf(`<p class="note">could not read CSV: %s</p>`, esc(err.Error()))
	}
	header, rows, err := readCSVHead(bytes.NewReader(b), false)
	if err != nil {
		// one retry: strip a UTF-8 BOM and relax quoting
		header, rows, err = readCSVHead(bytes.NewReader(bytes.TrimPrefix(b, utf8BOM)), true)
		if err != nil {
			return fmt.Sprintf(`<p class="note">could not parse CSV: %s</p>`, esc(err.Error()))
		}
	}

	var sb strings.Builder
	sb.WriteString(`<div class="table-wrap"><table><thead><tr>`)
	for _, h := range header {
		fmt.Fprintf(&sb, "<th>%s</th>", esc(h))
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&sb, "<td>%s</td>", esc(cell))
		}
		sb.WriteString("</tr>")
	}
	fmt.Fprintf(&sb, `</tbody></table><p class="note">showing first %d rows.</p></div>`, len(rows))
	return sb.String()
}

// readCSVHead reads the header row plus at most csvMaxRows data rows.
// An empty file yields an empty header and no rows, not an error.
func readCSVHead(r io.Reader, lazy bool) (header []string, rows [][]string, err error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1 // ragged input is still previewable
	rd.LazyQuotes = lazy
	header, err = rd.Read()
	if err == io.EOF {
		return []string{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	for len(rows) < csvMaxRows {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func previewJSON(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf(`<p class="note">could not read JSON: %s</p>`, esc(err.Error()))
	}
	if pretty, ok := prettyJSON(raw); ok {
		return `<pre class="code">` + esc(pretty) + `</pre>`
	}
	// unparseable: show the raw text, capped
	s := strings.ToValidUTF8(string(raw), "�")
	s = truncate(s, jsonMaxChars)
	return `<pre class="code">` + esc(s) + `</pre>`
}

// prettyJSON re-serializes a single strict JSON document with two-space
// indentation. Numbers keep their original text and non-ASCII / HTML runes
// pass through untouched; escaping for the page happens exactly once, in the
// caller.
func prettyJSON(raw []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	if _, err := dec.Token(); err != io.EOF { // trailing garbage is not valid JSON
		return "", false
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

func previewText(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf(`<p class="note">could not read file: %s</p>`, esc(err.Error()))
	}
	s := strings.ToValidUTF8(string(b), "�")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > textMaxLines {
		lines = lines[:textMaxLines]
	}
	return `<pre class="code">` + esc(strings.Join(lines, "\n")) + `</pre>`
}

// truncate caps s at max runes.
func truncate(s string, max int) string {
	for i := range s {
		if max == 0 {
			return s[:i]
		}
		max--
	}
	return s
}
