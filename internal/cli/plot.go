package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/engine"
)

var (
	plotSel selectors
	plotOut string
)

var plotCmd = &cobra.Command{
	Use:   "plot FILE.pch",
	Short: "Plot result curves to PNG",
	Example: `  pch-reader plot model.pch -o acc.png --component tz
  pch-reader --config log-axes.yaml plot model.pch -o gp3.png --entity 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := engine.New(cfg)
		q, err := plotSel.query(cmd, r)
		if err != nil {
			return err
		}
		return r.Plot(args[0], q, plotOut)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotSel.bind(plotCmd, true)
	plotCmd.Flags().StringVarP(&plotOut, "output", "o", "", "PNG output file")
	_ = plotCmd.MarkFlagRequired("output")
}
