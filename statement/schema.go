// Package statement models the expected output of a generated bank-statement
// parser: the schema of the reference CSV, and validation of parser output
// against it.
package statement

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ColumnKind classifies what a column holds, inferred from sample values.
type ColumnKind string

const (
	KindDate    ColumnKind = "date"
	KindNumeric ColumnKind = "numeric"
	KindText    ColumnKind = "text"
)

// Date layouts seen in bank statements, tried in order.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02 Jan 2006",
}

// Schema describes the expected parser output, loaded from the reference CSV.
type Schema struct {
	Path   string
	Header []string
	Rows   [][]string
	Kinds  []ColumnKind
}

// Load reads the reference CSV and infers a column kind for each header from
// the data rows.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validate shape ourselves for a better message
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read reference csv %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("reference csv %s is empty", path)
	}

	s := &Schema{
		Path:   path,
		Header: records[0],
		Rows:   records[1:],
	}
	s.Kinds = inferKinds(s.Header, s.Rows)
	return s, nil
}

// SampleRows returns up to n data rows for prompt construction.
func (s *Schema) SampleRows(n int) [][]string {
	if n > len(s.Rows) {
		n = len(s.Rows)
	}
	return s.Rows[:n]
}

// PromptSummary renders the schema as text for inclusion in LLM prompts:
// column names, row count, inferred kinds, and a few sample rows.
func (s *Schema) PromptSummary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Columns: %s\n", strings.Join(s.Header, ", "))
	fmt.Fprintf(&sb, "Rows: %d\n", len(s.Rows))
	for i, h := range s.Header {
		fmt.Fprintf(&sb, "  %s: %s\n", h, s.Kinds[i])
	}
	sb.WriteString("Sample rows:\n")
	sb.WriteString(strings.Join(s.Header, ","))
	sb.WriteString("\n")
	for _, row := range s.SampleRows(5) {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// inferKinds classifies each column by majority vote over the sample values.
// Empty cells are ignored; a column with no non-empty values is text.
func inferKinds(header []string, rows [][]string) []ColumnKind {
	kinds := make([]ColumnKind, len(header))
	for col := range header {
		dates, numerics, total := 0, 0, 0
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[col])
			if v == "" {
				continue
			}
			total++
			if _, ok := ParseDate(v); ok {
				dates++
			} else if _, ok := ParseAmount(v); ok {
				numerics++
			}
		}
		switch {
		case total > 0 && dates*2 > total:
			kinds[col] = KindDate
		case total > 0 && numerics*2 > total:
			kinds[col] = KindNumeric
		default:
			kinds[col] = KindText
		}
	}
	return kinds
}

// ParseDate tries the known statement date layouts.
func ParseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a monetary value, tolerating thousands separators.
func ParseAmount(v string) (float64, bool) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
