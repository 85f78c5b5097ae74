package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/martinemde/parsegen/profile"
)

func testConfig(t *testing.T) *profile.Config {
	t.Helper()
	root := t.TempDir()
	return &profile.Config{
		DataDir:   filepath.Join(root, "data"),
		ParserDir: filepath.Join(root, "parsers"),
	}
}

func TestSetupBankDataFresh(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	if err := setupBankData(cfg, "icici", &out); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.DataDir, "icici")); err != nil {
		t.Errorf("bank dir not created: %v", err)
	}
	if _, err := os.Stat(cfg.ParserDir); err != nil {
		t.Errorf("parser dir not created: %v", err)
	}

	tpl, err := os.ReadFile(filepath.Join(cfg.DataDir, "icici", "result.csv"))
	if err != nil {
		t.Fatalf("result template not written: %v", err)
	}
	if string(tpl) != resultTemplate {
		t.Errorf("unexpected template: %q", tpl)
	}
	if !strings.Contains(out.String(), "icici_sample.pdf") {
		t.Errorf("expected sample placement hint, got: %s", out.String())
	}
}

func TestSetupBankDataNormalizesSampleName(t *testing.T) {
	cfg := testConfig(t)
	bankDir := filepath.Join(cfg.DataDir, "sbi")
	if err := os.MkdirAll(bankDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bankDir, "sbi sample.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := setupBankData(cfg, "sbi", &out); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(bankDir, "sbi_sample.pdf"))
	if err != nil {
		t.Fatalf("normalized sample missing: %v", err)
	}
	if string(got) != "%PDF-1.4" {
		t.Errorf("copy corrupted: %q", got)
	}
}

func TestSetupBankDataKeepsExistingFiles(t *testing.T) {
	cfg := testConfig(t)
	bankDir := filepath.Join(cfg.DataDir, "icici")
	if err := os.MkdirAll(bankDir, 0o755); err != nil {
		t.Fatal(err)
	}
	existing := "Date,Description,Debit Amt,Credit Amt,Balance\n01-08-2024,X,1.00,,9.00\n"
	if err := os.WriteFile(filepath.Join(bankDir, "result.csv"), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := setupBankData(cfg, "icici", &out); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(bankDir, "result.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != existing {
		t.Errorf("existing result.csv overwritten: %q", got)
	}
}
