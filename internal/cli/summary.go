/*
PURPOSE:
  Defines the 'summary' subcommand.
  Quick look at what a punch file contains before exporting.

REQUIREMENTS:
  User-specified:
  - List subcases, frequency steps and entity counts per request.

  Implementation-discovered:
  - Doubles as a consistency check: fails when subcases disagree on
    their number of frequency steps.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Summary()

IMPLEMENTATION RULES:
  - Simple table output to stdout.

USAGE:
  pch-reader summary model.pch
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/engine"
)

var summaryCmd = &cobra.Command{
	Use:   "summary FILE.pch",
	Short: "List subcases, frequency steps and entity counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return engine.New(cfg).Summary(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
