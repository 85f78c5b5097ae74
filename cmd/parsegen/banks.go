package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martinemde/parsegen/profile"
)

func newBanksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List configured bank profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			banks, err := profile.LoadBanks(cfg.BanksFile)
			if err != nil {
				return err
			}
			names := banks.Names()
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no bank profiles in %s\n", cfg.BanksFile)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BANK\tPDF\tCSV\tNOTES")
			for _, name := range names {
				b := banks.Get(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, orDefault(b.PDF), orDefault(b.CSV), truncate(b.Notes, 50))
			}
			return w.Flush()
		},
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(derived)"
	}
	return s
}
