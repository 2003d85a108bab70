/*
PURPOSE:
  High-level runner behind every CLI command.
  Parses the input file once, then hands store content to the CSV, JSON,
  chart and PDF collaborators.

REQUIREMENTS:
  User-specified:
  - Export curves to CSV, optionally dump everything to JSON Lines.
  - Plot curves to PNG.
  - Build a PDF summary report.

  Implementation-discovered:
  - Relative output paths land in cfg.OutputDir, which is created on demand.
  - An inconsistent frequency-step count is reported as a warning after
    parsing; queries still fail with results.ErrConsistency.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/punch, internal/simple, internal/output, internal/chart,
    internal/report

ERROR HANDLING:
  - Parse and query errors abort the command and are returned wrapped.
  - A missing acceleration chart does not abort a report.

USAGE:
  r := engine.New(cfg)
  err := r.Export("model.pch", q, "curves.csv", "")

SELF-HEALING INSTRUCTIONS:
  - If a command writes nothing, check that Query.Request has data in the
    chosen subcase (pch-reader summary FILE).

RELATED FILES:
  - internal/engine/curves.go
  - internal/cli/export.go

MAINTENANCE:
  - Keep writers closed on every return path.
*/

package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/daryltucker/pch-reader/internal/chart"
	"github.com/daryltucker/pch-reader/internal/config"
	"github.com/daryltucker/pch-reader/internal/model"
	"github.com/daryltucker/pch-reader/internal/output"
	"github.com/daryltucker/pch-reader/internal/punch"
	"github.com/daryltucker/pch-reader/internal/report"
	"github.com/daryltucker/pch-reader/internal/results"
	"github.com/daryltucker/pch-reader/internal/simple"
)

// Runner executes commands against one configuration.
type Runner struct {
	cfg *config.Config
}

// New creates a Runner.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// DefaultQuery builds a query for req from the configured component and
// quantity.
func (r *Runner) DefaultQuery(req model.RequestType) (Query, error) {
	c, err := model.ParseComponent(r.cfg.Component)
	if err != nil {
		return Query{}, err
	}
	qty, err := model.ParseQuantity(r.cfg.Quantity)
	if err != nil {
		return Query{}, err
	}
	return Query{Request: req, Component: c, Quantity: qty}, nil
}

// Load parses a punch file and logs what it found.
func (r *Runner) Load(path string) (*results.Store, error) {
	output.Logger.Info("Parsing punch file", "path", path)
	store, err := punch.ParseFile(path, punch.WithLogger(output.Logger))
	if err != nil {
		return nil, err
	}
	output.Logger.Info("Parsed punch file",
		"path", path,
		"subcases", len(store.Subcases()),
		"requests", len(store.Requests()),
	)
	if err := store.HealthCheck(); err != nil {
		output.Logger.Warn("Frequency steps differ between subcases", "error", err)
	}
	return store, nil
}

func (r *Runner) outputPath(name string) (string, error) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(r.cfg.OutputDir, name)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return path, nil
}

func (r *Runner) writeCurves(curves []model.Curve, name string) error {
	path, err := r.outputPath(name)
	if err != nil {
		return err
	}
	w, err := output.NewCSVWriter(path)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", path, err)
	}
	for _, c := range curves {
		if err := w.Write(c); err != nil {
			w.Close()
			return fmt.Errorf("failed to write curve for entity %d: %w", c.Entity, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	output.Logger.Info("Wrote CSV", "path", path, "curves", len(curves))
	return nil
}

func (r *Runner) writeRecords(store *results.Store, name string) error {
	records, err := Records(store)
	if err != nil {
		return err
	}
	path, err := r.outputPath(name)
	if err != nil {
		return err
	}
	w, err := output.NewJSONWriter(path)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			w.Close()
			return fmt.Errorf("failed to write %s entity %d: %w", rec.Request, rec.Entity, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	output.Logger.Info("Wrote JSON Lines", "path", path, "records", w.Count())
	return nil
}

func (r *Runner) writeFile(name string, data []byte) (string, error) {
	path, err := r.outputPath(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (r *Runner) chartOptions(title, xLabel, yLabel string) chart.Options {
	return chart.Options{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		Width:  r.cfg.Plot.Width,
		Height: r.cfg.Plot.Height,
		XScale: r.cfg.Plot.XScale,
		YScale: r.cfg.Plot.YScale,
	}
}

func (r *Runner) renderQuery(store *results.Store, q Query) ([]byte, string, error) {
	curves, err := Curves(store, q)
	if err != nil {
		return nil, "", err
	}
	title := q.Request.String()
	xLabel := "Component"
	sc, _ := q.subcase(store)
	if store.IsFrequencyResponse(q.Request, sc) {
		title = fmt.Sprintf("%s %s, subcase %d", q.Request, q.Component, sc)
		xLabel = "Frequency (Hz)"
	}
	img, err := chart.Render(curves, r.chartOptions(title, xLabel, string(q.Quantity)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to render %s: %w", q.Request, err)
	}
	return img, title, nil
}

// Export writes the curves selected by q to a CSV file and, when jsonOut
// is not empty, dumps the whole store as JSON Lines.
func (r *Runner) Export(path string, q Query, csvOut, jsonOut string) error {
	store, err := r.Load(path)
	if err != nil {
		return err
	}
	curves, err := Curves(store, q)
	if err != nil {
		return err
	}
	if err := r.writeCurves(curves, csvOut); err != nil {
		return err
	}
	if jsonOut == "" {
		return nil
	}
	return r.writeRecords(store, jsonOut)
}

// Plot renders the curves selected by q to a PNG file.
func (r *Runner) Plot(path string, q Query, pngOut string) error {
	store, err := r.Load(path)
	if err != nil {
		return err
	}
	img, _, err := r.renderQuery(store, q)
	if err != nil {
		return err
	}
	out, err := r.writeFile(pngOut, img)
	if err != nil {
		return err
	}
	output.Logger.Info("Wrote plot", "path", out)
	return nil
}

// Report builds a PDF with the subcase summary and, when available, the
// acceleration chart selected by q.
func (r *Runner) Report(path string, q Query, pdfOut string) error {
	store, err := r.Load(path)
	if err != nil {
		return err
	}
	rows, err := Summarize(store)
	if err != nil {
		return err
	}

	doc := report.Document{
		Title:    r.cfg.Report.Title,
		Source:   filepath.Base(path),
		Requests: store.Requests(),
		Subcases: rows,
	}

	q.Request = model.RequestAcceleration
	img, caption, err := r.renderQuery(store, q)
	switch {
	case err == nil:
		doc.Chart, doc.ChartCaption = img, caption
	case errors.Is(err, results.ErrNotFound), errors.Is(err, chart.ErrNothingToPlot):
		output.Logger.Info("No acceleration chart for report", "reason", err)
	default:
		return err
	}

	out, err := r.outputPath(pdfOut)
	if err != nil {
		return err
	}
	if err := report.WriteFile(out, doc); err != nil {
		return err
	}
	output.Logger.Info("Wrote report", "path", out, "subcases", len(rows))
	return nil
}

// Summary prints subcases, frequency steps and entity counts per request.
func (r *Runner) Summary(path string, w io.Writer) error {
	store, err := r.Load(path)
	if err != nil {
		return err
	}
	rows, err := Summarize(store)
	if err != nil {
		return err
	}
	requests := store.Requests()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "SUBCASE\tSTEPS")
	for _, req := range requests {
		fmt.Fprintf(tw, "\t%s", req)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%d", row.Subcase, row.Steps)
		for _, req := range requests {
			fmt.Fprintf(tw, "\t%d", row.Entities[req])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// SimpleExport writes every entity of a simple punch file to CSV.
func (r *Runner) SimpleExport(path, csvOut string) error {
	f, err := simple.ReadFile(path)
	if err != nil {
		return err
	}
	output.Logger.Info("Read simple punch file", "path", path, "entities", len(f.Entities()))
	return r.writeCurves(f.Curves(), csvOut)
}

// SimplePlot renders a simple punch file, or a single entity of it, to PNG.
func (r *Runner) SimplePlot(path string, entity *int, pngOut string) error {
	f, err := simple.ReadFile(path)
	if err != nil {
		return err
	}
	curves := f.Curves()
	if entity != nil {
		domain, err := f.Domain(*entity)
		if err != nil {
			return err
		}
		rng, _ := f.Range(*entity)
		curves = []model.Curve{{Entity: *entity, Domain: domain, Range: rng}}
	}

	img, err := chart.Render(curves, r.chartOptions(filepath.Base(path), "Frequency (Hz)", ""))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	out, err := r.writeFile(pngOut, img)
	if err != nil {
		return err
	}
	output.Logger.Info("Wrote plot", "path", out, "curves", len(curves))
	return nil
}
