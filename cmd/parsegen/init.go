package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/martinemde/parsegen/profile"
)

// resultTemplate is the header of the expected-output CSV; the user fills in
// the rows from the sample statement.
const resultTemplate = "Date,Description,Debit Amt,Credit Amt,Balance\n"

func newInitCmd(flags *rootFlags) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "init --target BANK",
		Short: "Create the data layout for a bank",
		Long:  "init creates data/<bank>/ and the parser directory, normalizes a\n\"<bank> sample.pdf\" filename to <bank>_sample.pdf, and writes a\nresult.csv template when none exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return setupBankData(cfg, target, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "bank to prepare data for (required)")
	cmd.MarkFlagRequired("target")

	return cmd
}

// setupBankData prepares the on-disk layout a run expects. Existing files
// are never overwritten.
func setupBankData(cfg *profile.Config, bank string, out io.Writer) error {
	bankDir := filepath.Join(cfg.DataDir, bank)
	if err := os.MkdirAll(bankDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.ParserDir, 0o755); err != nil {
		return fmt.Errorf("create parser dir: %w", err)
	}

	spaced := filepath.Join(bankDir, bank+" sample.pdf")
	underscored := filepath.Join(bankDir, bank+"_sample.pdf")
	if _, err := os.Stat(underscored); os.IsNotExist(err) {
		if _, err := os.Stat(spaced); err == nil {
			if err := copyFile(spaced, underscored); err != nil {
				return err
			}
			fmt.Fprintf(out, "copied %s -> %s\n", spaced, underscored)
		} else {
			fmt.Fprintf(out, "place the sample statement at %s\n", underscored)
		}
	}

	resultCSV := filepath.Join(bankDir, "result.csv")
	if _, err := os.Stat(resultCSV); os.IsNotExist(err) {
		if err := os.WriteFile(resultCSV, []byte(resultTemplate), 0o644); err != nil {
			return fmt.Errorf("write result template: %w", err)
		}
		fmt.Fprintf(out, "wrote %s; fill it with the expected rows\n", resultCSV)
	}

	fmt.Fprintf(out, "data layout ready under %s\n", bankDir)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
