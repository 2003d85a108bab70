/*
PURPOSE:
  Renders domain/range curves (one line per entity) to PNG bytes.
  This is the charting collaborator for both punch results and
  simple (no-header) punch files.

REQUIREMENTS:
  User-specified:
  - One labelled line per entity, legend in the upper-left corner.
  - Linear or logarithmic axes.

  Implementation-discovered:
  - Log axes cannot show non-positive points; those points are dropped
    and a curve left with no points is skipped.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Dependencies: gonum.org/v1/plot

ERROR HANDLING:
  - Returns an error when there is nothing to draw.

USAGE:
  png, err := chart.Render(curves, chart.Options{Title: "ACCELERATION tx"})
*/

package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/pch-reader/internal/model"
)

// ErrNothingToPlot is returned when no curve has a drawable point.
var ErrNothingToPlot = errors.New("nothing to plot")

// Options controls labels, size (points) and axis scales ("linear" or "log").
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64
	Height float64
	XScale string
	YScale string
}

var lineColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
}

func points(c model.Curve, logX, logY bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(c.Domain))
	for i := range c.Domain {
		if i >= len(c.Range) {
			break
		}
		x, y := c.Domain[i], c.Range[i]
		if (logX && x <= 0) || (logY && y <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

// Render draws the curves and returns a PNG image.
func Render(curves []model.Curve, opts Options) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	logX, logY := opts.XScale == "log", opts.YScale == "log"

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	drawn := 0
	for _, c := range curves {
		pts := points(c, logX, logY)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for entity %d: %w", c.Entity, err)
		}
		line.Color = lineColors[drawn%len(lineColors)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(strconv.Itoa(c.Entity), line)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNothingToPlot
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(10)

	writer, err := p.WriterTo(vg.Points(opts.Width), vg.Points(opts.Height), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
