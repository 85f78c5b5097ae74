package agent

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths are the resolved input and output locations for one run.
type Paths struct {
	PDF    string // sample statement
	CSV    string // expected output
	Parser string // generated artifact, overwritten each attempt
}

// ResolvePaths locates the sample PDF and expected CSV for a bank under
// dataDir. Sample statements appear with either an underscore or a space
// before "sample", so both spellings are probed. Explicit overrides (from a
// bank profile) skip probing.
func ResolvePaths(dataDir, parserDir, bank, pdfOverride, csvOverride string) (Paths, error) {
	p := Paths{
		CSV:    csvOverride,
		Parser: filepath.Join(parserDir, bank+"_parser.go"),
	}
	if p.CSV == "" {
		p.CSV = filepath.Join(dataDir, bank, "result.csv")
	}

	if pdfOverride != "" {
		p.PDF = pdfOverride
	} else {
		candidates := []string{
			filepath.Join(dataDir, bank, bank+"_sample.pdf"),
			filepath.Join(dataDir, bank, bank+" sample.pdf"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				p.PDF = c
				break
			}
		}
		if p.PDF == "" {
			return Paths{}, fmt.Errorf("sample pdf not found; tried %v", candidates)
		}
	}

	if _, err := os.Stat(p.PDF); err != nil {
		return Paths{}, fmt.Errorf("sample pdf not found: %s", p.PDF)
	}
	if _, err := os.Stat(p.CSV); err != nil {
		return Paths{}, fmt.Errorf("expected csv not found: %s", p.CSV)
	}

	return p, nil
}

// WriteArtifact writes the generated parser source, creating the parser
// directory if needed. Each attempt overwrites the previous artifact: at
// most one generated parser exists per bank.
func WriteArtifact(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parser dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write parser artifact: %w", err)
	}
	return nil
}
