// Command georisk serves and inspects route risk assessments.
//
//	georisk serve --config georisk.yaml
//	georisk check GB IR
//	georisk zones
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "georisk",
		Short:         "Freight route risk assessment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "georisk.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	root.AddCommand(newServeCmd(), newCheckCmd(), newZonesCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errFmt("error:"), err)
		os.Exit(1)
	}
}
