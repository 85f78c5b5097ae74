package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/martinemde/parsegen/agent"
	"github.com/martinemde/parsegen/history"
	"github.com/martinemde/parsegen/llm"
	"github.com/martinemde/parsegen/profile"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:     "run --target BANK",
		Short:   "Generate and test a parser for a bank",
		Example: `  parsegen run --target icici
  parsegen run --target sbi --provider groq --attempts 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runGeneration(cmd, cfg, target)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "bank to generate a parser for (required)")
	cmd.MarkFlagRequired("target")

	return cmd
}

func runGeneration(cmd *cobra.Command, cfg *profile.Config, target string) error {
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adapter, err := llm.NewGollmAdapter(cfg.Provider, cfg.ResolveAPIKey(), llm.WithModel(cfg.Model))
	if err != nil {
		return err
	}
	client := llm.NewClient(
		llm.WithProvider(cfg.Provider, adapter),
		llm.WithMiddleware(llm.LoggingMiddleware(log)),
	)

	banks, err := profile.LoadBanks(cfg.BanksFile)
	if err != nil {
		return err
	}
	bank := banks.Get(target)

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	a := agent.New(client, agent.Config{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		MaxAttempts: cfg.MaxAttempts,
		ExecTimeout: cfg.ExecTimeout,
		LLMTimeout:  cfg.LLMTimeout,
		DataDir:     cfg.DataDir,
		ParserDir:   cfg.ParserDir,
		PDFPath:     bank.PDF,
		CSVPath:     bank.CSV,
		Notes:       bank.Notes,
	}, agent.WithLedger(store), agent.WithLogger(log))

	go func() {
		for ev := range a.Events() {
			log.WithField("data", ev.Data).Debug(string(ev.Kind))
		}
	}()

	result, err := a.Run(ctx, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "parser written to %s (attempt %d)\n", result.ParserPath, result.Attempts)
	return nil
}
