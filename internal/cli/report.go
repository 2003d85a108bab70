package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/engine"
)

var (
	reportSel selectors
	reportOut string
)

var reportCmd = &cobra.Command{
	Use:   "report FILE.pch",
	Short: "Write a PDF summary report",
	Long: `Writes a PDF with the subcase table (frequency steps and entity counts
per request) followed by the acceleration chart for the selected subcase,
entity and component, when the file has acceleration results.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := engine.New(cfg)
		q, err := reportSel.query(cmd, r)
		if err != nil {
			return err
		}
		return r.Report(args[0], q, reportOut)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportSel.bind(reportCmd, false)
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "PDF output file")
	_ = reportCmd.MarkFlagRequired("output")
}
