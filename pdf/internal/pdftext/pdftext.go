// Package pdftext extracts text and page counts from PDFs produced by
// gofpdf, for test verification. It understands exactly the subset gofpdf
// emits: flate or plain content streams with literal-string Tj operators.
package pdftext

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strings"
)

var tjRe = regexp.MustCompile(`\(((?:\\.|[^()\\])*)\)\s*Tj`)

// Pages counts page objects.
func Pages(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page\n"))
}

// PageTexts returns the text of each text-bearing content stream in page
// order, with the strings of each stream joined by single spaces.
func PageTexts(data []byte) []string {
	var texts []string
	rest := data
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		chunk := rest[i+len("stream\n"):]
		j := bytes.Index(chunk, []byte("endstream"))
		if j < 0 {
			break
		}
		raw := bytes.TrimSuffix(chunk[:j], []byte("\n"))
		// Skip the whole endstream token: "endstream\n" itself contains
		// "stream\n", so resuming on it would corrupt the next chunk.
		rest = chunk[j+len("endstream"):]

		content := raw
		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if dec, derr := io.ReadAll(r); derr == nil {
				content = dec
			}
			r.Close()
		}
		if !bytes.Contains(content, []byte("BT")) {
			continue
		}
		if t := extract(content); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// Text returns all page texts joined by newlines.
func Text(data []byte) string {
	return strings.Join(PageTexts(data), "\n")
}

func extract(content []byte) string {
	matches := tjRe.FindAllSubmatch(content, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, unescape(string(m[1])))
	}
	return strings.Join(parts, " ")
}

func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
