package pdftext

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a   b\tc", "a b c"},
		{"strips blank lines", "one\n\n\ntwo\n", "one\ntwo"},
		{"trims line edges", "  padded  \n next ", "padded\nnext"},
		{"empty", "   \n \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract("testdata/does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
