package statement

import (
	"fmt"
	"strings"
)

// Compare validates parser output (header row plus data rows) against the
// reference schema. The returned error is written for an LLM audience: it
// names the mismatch precisely so the next generation attempt can fix it.
func Compare(got [][]string, s *Schema) error {
	if len(got) == 0 {
		return fmt.Errorf("parser returned no rows (expected a header row %v plus data rows)", s.Header)
	}

	header := got[0]
	if !equalStrings(header, s.Header) {
		return fmt.Errorf("column mismatch: expected %v, got %v", s.Header, header)
	}

	rows := got[1:]
	if len(rows) == 0 {
		return fmt.Errorf("parser returned a header but no data rows (expected %d rows)", len(s.Rows))
	}

	for i, row := range rows {
		if len(row) != len(s.Header) {
			return fmt.Errorf("row %d has %d fields, expected %d (%v)", i+1, len(row), len(s.Header), row)
		}
		if err := validateRow(row, s); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if len(rows) != len(s.Rows) {
		return fmt.Errorf("row count mismatch: expected %d data rows, got %d", len(s.Rows), len(rows))
	}

	return nil
}

// validateRow checks each cell against the inferred column kind. Empty cells
// are allowed in numeric columns (a transaction is either a debit or a
// credit, never both).
func validateRow(row []string, s *Schema) error {
	for col, v := range row {
		v = strings.TrimSpace(v)
		switch s.Kinds[col] {
		case KindDate:
			if v == "" {
				return fmt.Errorf("column %q: empty date", s.Header[col])
			}
			if _, ok := ParseDate(v); !ok {
				return fmt.Errorf("column %q: unparseable date %q (expected formats like 02-01-2006)", s.Header[col], v)
			}
		case KindNumeric:
			if v == "" {
				continue
			}
			if _, ok := ParseAmount(v); !ok {
				return fmt.Errorf("column %q: unparseable amount %q", s.Header[col], v)
			}
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}
