package statement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Description,Debit Amt,Credit Amt,Balance
01-08-2024,UPI PAYMENT TO MERCHANT,500.00,,12500.00
03-08-2024,SALARY CREDIT,,45000.00,57500.00
05-08-2024,ATM WITHDRAWAL,2000.00,,55500.00
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeSampleCSV(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Debit Amt", "Credit Amt", "Balance"}, s.Header)
	assert.Len(t, s.Rows, 3)
	assert.Equal(t, []ColumnKind{KindDate, KindText, KindNumeric, KindNumeric, KindNumeric}, s.Kinds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestPromptSummary(t *testing.T) {
	s, err := Load(writeSampleCSV(t))
	require.NoError(t, err)

	summary := s.PromptSummary()
	assert.Contains(t, summary, "Date, Description, Debit Amt, Credit Amt, Balance")
	assert.Contains(t, summary, "Rows: 3")
	assert.Contains(t, summary, "SALARY CREDIT")
}

func TestParseDate(t *testing.T) {
	for _, v := range []string{"01-08-2024", "01/08/2024", "2024-08-01", "01 Aug 2024"} {
		_, ok := ParseDate(v)
		assert.True(t, ok, "expected %q to parse", v)
	}
	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	f, ok := ParseAmount("1,234.56")
	require.True(t, ok)
	assert.InDelta(t, 1234.56, f, 0.001)

	_, ok = ParseAmount("")
	assert.False(t, ok)
	_, ok = ParseAmount("12a")
	assert.False(t, ok)
}

func TestCompareSuccess(t *testing.T) {
	s, err := Load(writeSampleCSV(t))
	require.NoError(t, err)

	got := [][]string{
		{"Date", "Description", "Debit Amt", "Credit Amt", "Balance"},
		{"01-08-2024", "UPI PAYMENT TO MERCHANT", "500.00", "", "12500.00"},
		{"03-08-2024", "SALARY CREDIT", "", "45000.00", "57500.00"},
		{"05-08-2024", "ATM WITHDRAWAL", "2000.00", "", "55500.00"},
	}
	assert.NoError(t, Compare(got, s))
}

func TestCompareFailures(t *testing.T) {
	s, err := Load(writeSampleCSV(t))
	require.NoError(t, err)

	header := []string{"Date", "Description", "Debit Amt", "Credit Amt", "Balance"}
	row := []string{"01-08-2024", "X", "1.00", "", "2.00"}

	tests := []struct {
		name    string
		got     [][]string
		wantSub string
	}{
		{"empty output", nil, "no rows"},
		{"wrong header", [][]string{{"date", "desc"}}, "column mismatch"},
		{"header only", [][]string{header}, "no data rows"},
		{"ragged row", [][]string{header, {"01-08-2024", "X"}}, "fields"},
		{"bad date", [][]string{header, {"32-13-2024", "X", "1.00", "", "2.00"}, row, row}, "unparseable date"},
		{"bad amount", [][]string{header, {"01-08-2024", "X", "oops", "", "2.00"}, row, row}, "unparseable amount"},
		{"row count", [][]string{header, row}, "row count mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.got, s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}
