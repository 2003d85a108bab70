/*
PURPOSE:
  Defines the 'export' subcommand and the result selector flags shared
  with 'plot' and 'report'.

REQUIREMENTS:
  User-specified:
  - Export curves of one request to CSV.
  - Optionally dump every parsed result to JSON Lines.

  Implementation-discovered:
  - Subcase and entity are optional; an unset flag means "lowest subcase"
    and "every entity".
  - --component falls back to the configured component.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Export()
  - Uses: internal/config (via root.go)

ERROR HANDLING:
  - Returns error if a selector does not parse or the export fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Flags -> Query -> Engine.

USAGE:
  pch-reader export model.pch -o acc.csv --entity 3 --component tz

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/runner.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/engine"
	"github.com/daryltucker/pch-reader/internal/model"
)

// selectors holds the flags that narrow a query down to a curve set.
type selectors struct {
	request   string
	subcase   int
	entity    int
	component string
}

func (s *selectors) bind(cmd *cobra.Command, withRequest bool) {
	if withRequest {
		cmd.Flags().StringVar(&s.request, "request", "ACCELERATION", "result request (e.g. ACCELERATION, SPCF, ELEMENT_FORCES)")
	}
	cmd.Flags().IntVar(&s.subcase, "subcase", 0, "subcase id (default: lowest subcase)")
	cmd.Flags().IntVar(&s.entity, "entity", 0, "entity (grid or element) id (default: all entities)")
	cmd.Flags().StringVar(&s.component, "component", "", "component tx, ty, tz, rx, ry or rz (default from config)")
}

func (s *selectors) query(cmd *cobra.Command, r *engine.Runner) (engine.Query, error) {
	req := model.RequestAcceleration
	if s.request != "" {
		parsed, err := model.ParseRequestType(s.request)
		if err != nil {
			return engine.Query{}, err
		}
		req = parsed
	}

	q, err := r.DefaultQuery(req)
	if err != nil {
		return engine.Query{}, err
	}
	if cmd.Flags().Changed("subcase") {
		q.Subcase = &s.subcase
	}
	if cmd.Flags().Changed("entity") {
		q.Entity = &s.entity
	}
	if cmd.Flags().Changed("component") {
		if q.Component, err = model.ParseComponent(s.component); err != nil {
			return engine.Query{}, err
		}
	}
	return q, nil
}

var (
	exportSel  selectors
	exportOut  string
	exportJSON string
)

var exportCmd = &cobra.Command{
	Use:   "export FILE.pch",
	Short: "Export result curves to CSV",
	Long: `Parses a punch file and writes the selected curves as CSV rows of
entity,domain,range. Frequency responses use the frequency as domain;
static results use the component number.

Relative output paths are resolved against output_dir from the config.`,
	Example: `  # All acceleration curves of the lowest subcase, TX magnitude
  pch-reader export model.pch -o acc.csv

  # One grid point, TZ, subcase 2, plus a JSON Lines dump of everything
  pch-reader export model.pch -o gp3.csv --subcase 2 --entity 3 --component tz --json all.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := engine.New(cfg)
		q, err := exportSel.query(cmd, r)
		if err != nil {
			return err
		}
		return r.Export(args[0], q, exportOut, exportJSON)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportSel.bind(exportCmd, true)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "CSV output file")
	exportCmd.Flags().StringVar(&exportJSON, "json", "", "also dump every result to this JSON Lines file")
	_ = exportCmd.MarkFlagRequired("output")
}
