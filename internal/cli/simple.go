package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/engine"
)

var (
	simpleExportOut string
	simplePlotOut   string
	simpleEntity    int
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Work with header-less punch files (one '$' line per entity)",
}

var simpleExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export every entity of a simple punch file to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return engine.New(cfg).SimpleExport(args[0], simpleExportOut)
	},
}

var simplePlotCmd = &cobra.Command{
	Use:   "plot FILE",
	Short: "Plot a simple punch file to PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var entity *int
		if cmd.Flags().Changed("entity") {
			entity = &simpleEntity
		}
		return engine.New(cfg).SimplePlot(args[0], entity, simplePlotOut)
	},
}

func init() {
	simpleExportCmd.Flags().StringVarP(&simpleExportOut, "output", "o", "", "CSV output file")
	_ = simpleExportCmd.MarkFlagRequired("output")

	simplePlotCmd.Flags().StringVarP(&simplePlotOut, "output", "o", "", "PNG output file")
	simplePlotCmd.Flags().IntVar(&simpleEntity, "entity", 0, "plot only this entity (default: all)")
	_ = simplePlotCmd.MarkFlagRequired("output")

	simpleCmd.AddCommand(simpleExportCmd, simplePlotCmd)
	rootCmd.AddCommand(simpleCmd)
}
