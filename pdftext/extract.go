// Package pdftext extracts plain text from statement PDFs. Generated parsers
// run sandboxed with stdlib-only imports, so extraction happens on the host
// and parsers receive the text, one statement line per row.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
)

// Extract reads every page of the PDF at path and returns its text with one
// visual row per line. Rows are ordered top to bottom per page.
func Extract(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extract text from page %d of %s: %w", pageIndex, path, err)
		}
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				if w := strings.TrimSpace(word.S); w != "" {
					words = append(words, w)
				}
			}
			if len(words) > 0 {
				sb.WriteString(strings.Join(words, " "))
				sb.WriteString("\n")
			}
		}
	}

	text := Normalize(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s (scanned image?)", path)
	}
	return text, nil
}

// Normalize collapses runs of spaces and strips blank lines while keeping
// the one-row-per-line structure parsers depend on.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
