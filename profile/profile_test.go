package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "groq" {
		t.Errorf("expected default provider groq, got %q", cfg.Provider)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.ExecTimeout != 10*time.Second {
		t.Errorf("expected 10s exec timeout, got %v", cfg.ExecTimeout)
	}
	if cfg.DataDir != "data" || cfg.ParserDir != "parsers" {
		t.Errorf("unexpected dirs: %q %q", cfg.DataDir, cfg.ParserDir)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PARSEGEN_PROVIDER", "openai")
	t.Setenv("PARSEGEN_MAX_ATTEMPTS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("expected provider openai, got %q", cfg.Provider)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.MaxAttempts)
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := &Config{Provider: "groq", GroqAPIKey: "gk"}
	if got := cfg.ResolveAPIKey(); got != "gk" {
		t.Errorf("expected groq fallback key, got %q", got)
	}

	cfg.APIKey = "explicit"
	if got := cfg.ResolveAPIKey(); got != "explicit" {
		t.Errorf("expected explicit key to win, got %q", got)
	}

	cfg = &Config{Provider: "openai", GroqAPIKey: "gk"}
	if got := cfg.ResolveAPIKey(); got != "" {
		t.Errorf("expected empty key for openai without explicit key, got %q", got)
	}
}

func TestLoadBanksMissingFile(t *testing.T) {
	b, err := LoadBanks(filepath.Join(t.TempDir(), "banks.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(b.Names()) != 0 {
		t.Errorf("expected no banks, got %v", b.Names())
	}
	if got := b.Get("icici"); got.Notes != "" {
		t.Errorf("expected zero profile, got %+v", got)
	}
}

func TestLoadBanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.toml")
	content := `[banks.icici]
notes = "Dates are dd-mm-yyyy. Debit and credit are separate columns."
pdf = "data/icici/icici sample.pdf"

[banks.sbi]
notes = "Amounts use Indian digit grouping."
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBanks(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := b.Names()
	if len(names) != 2 || names[0] != "icici" || names[1] != "sbi" {
		t.Errorf("unexpected names: %v", names)
	}

	icici := b.Get("icici")
	if icici.PDF != "data/icici/icici sample.pdf" {
		t.Errorf("unexpected pdf override: %q", icici.PDF)
	}
	if icici.Notes == "" {
		t.Error("expected notes to be set")
	}
}

func TestLoadBanksInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.toml")
	if err := os.WriteFile(path, []byte("[banks.icici\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBanks(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}
