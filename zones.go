package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List sanctioned countries, conflict zones and maritime corridors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := offlineEngine(cfg)
			if err != nil {
				return err
			}

			zones := eng.HighRiskCountries()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), zones)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTYPE")
			for _, c := range zones.Sanctions {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Name, errFmt(c.Type))
			}
			for _, c := range zones.Conflict {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Name, warnFmt(c.Type))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Maritime corridors:")
			for _, m := range zones.Maritime {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", m)
			}
			return nil
		},
	}
}
