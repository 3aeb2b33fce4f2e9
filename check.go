package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

var (
	okFmt   = color.New(color.FgGreen).SprintFunc()
	warnFmt = color.New(color.FgYellow, color.Bold).SprintFunc()
	errFmt  = color.New(color.FgRed, color.Bold).SprintFunc()
	dimFmt  = color.New(color.Faint).SprintFunc()
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <origin-country> <dest-country>",
		Short: "Zone-only risk check for a country pair",
		Long: `Score a route using only the built-in (or configured) zone table.
No network calls are made.

Examples:
  georisk check GB IR
  georisk check GB YE --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := offlineEngine(cfg)
			if err != nil {
				return err
			}

			check := eng.QuickRiskCheck(args[0], args[1])
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), check)
			}
			printCheck(cmd.OutOrStdout(), args[0], args[1], check)
			return nil
		},
	}
}

func printCheck(w io.Writer, origin, dest string, check models.QuickCheck) {
	fmt.Fprintf(w, "Route:   %s -> %s\n", origin, dest)
	fmt.Fprintf(w, "Score:   %d\n", check.Score)
	fmt.Fprintf(w, "Level:   %s\n", levelFmt(check.Level))
	fmt.Fprintf(w, "Factors: %d\n", check.FactorCount)
	if check.HasRisk {
		fmt.Fprintln(w, warnFmt("Elevated zone risk on this route."))
	} else {
		fmt.Fprintln(w, dimFmt("Sanctions and weather are only assessed by the API for premium callers."))
	}
}

func levelFmt(level models.Level) string {
	switch level {
	case models.LevelHigh:
		return errFmt(level)
	case models.LevelMedium:
		return warnFmt(level)
	default:
		return okFmt(level)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
