package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/martinemde/parsegen/profile"
)

var version = "dev"

type rootFlags struct {
	provider  string
	model     string
	dataDir   string
	parserDir string
	attempts  int
	verbose   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "parsegen",
		Short:         "Generate bank statement parsers with an LLM",
		Long:          "parsegen plans, generates, and tests Go parsers for bank statement PDFs,\nfeeding test failures back to the model until the output matches the\nreference CSV or attempts run out.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.provider, "provider", "", "LLM provider (default from PARSEGEN_PROVIDER, falls back to groq)")
	pf.StringVar(&flags.model, "model", "", "model identifier (default chosen per provider)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory of per-bank sample data")
	pf.StringVar(&flags.parserDir, "parser-dir", "", "directory for generated parsers")
	pf.IntVar(&flags.attempts, "attempts", 0, "maximum generate/test attempts")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newBanksCmd(flags))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(flags *rootFlags) (*profile.Config, error) {
	cfg, err := profile.LoadConfig()
	if err != nil {
		return nil, err
	}
	if flags.provider != "" {
		cfg.Provider = flags.provider
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.parserDir != "" {
		cfg.ParserDir = flags.parserDir
	}
	if flags.attempts > 0 {
		cfg.MaxAttempts = flags.attempts
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newLogger(cfg *profile.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
