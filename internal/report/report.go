/*
PURPOSE:
  Builds a PDF summary of a parsed punch file: a subcase table with
  frequency step counts and per-request entity counts, followed by an
  optional chart.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (report command)
  - Dependencies: github.com/jung-kurt/gofpdf

ERROR HANDLING:
  - gofpdf accumulates errors internally; Write surfaces them once at the end.
*/

package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/daryltucker/pch-reader/internal/model"
)

const (
	inchToMm          = 25.4
	pageWidth         = 11 * inchToMm // Letter landscape
	pageHeight        = 8.5 * inchToMm
	margin            = 0.5 * inchToMm
	contentWidth      = pageWidth - 2*margin
	chartImageName    = "chart"
	defaultLineHeight = 6
)

// SubcaseRow is one line of the subcase table.
type SubcaseRow struct {
	Subcase  int
	Steps    int
	Entities map[model.RequestType]int
}

// Document is everything that goes into a report.
type Document struct {
	Title        string
	Source       string
	Requests     []model.RequestType
	Subcases     []SubcaseRow
	Chart        []byte
	ChartCaption string
}

type styler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	y          float64
}

func newStyler(pdf *gofpdf.Fpdf) *styler {
	s := &styler{pdf: pdf, lineHeight: defaultLineHeight, y: margin}
	s.styles = map[string]func(){
		"h1": func() {
			s.pdf.SetFont("Arial", "B", 16)
			s.pdf.SetTextColor(0, 0, 0)
		},
		"h2": func() {
			s.pdf.SetFont("Arial", "B", 13)
			s.pdf.SetTextColor(0, 0, 0)
		},
		"normal": func() {
			s.pdf.SetFont("Arial", "", 10)
			s.pdf.SetTextColor(0, 0, 0)
		},
		"tableHeader": func() {
			s.pdf.SetFont("Arial", "B", 9)
			s.pdf.SetFillColor(200, 200, 200)
			s.pdf.SetTextColor(0, 0, 0)
		},
		"tableCell": func() {
			s.pdf.SetFont("Arial", "", 9)
			s.pdf.SetTextColor(50, 50, 50)
		},
	}
	return s
}

func (s *styler) apply(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *styler) ensure(height float64) {
	if s.y+height > pageHeight-margin {
		s.pdf.AddPage()
		s.y = margin
	}
}

func (s *styler) paragraph(text, style, align string) {
	s.apply(style)
	s.ensure(s.lineHeight)
	s.pdf.SetXY(margin, s.y)
	s.pdf.MultiCell(contentWidth, s.lineHeight, text, "", align, false)
	s.y = s.pdf.GetY() + 1
}

func (s *styler) spacer(height float64) {
	s.ensure(height)
	s.y += height
}

func (s *styler) row(cells []string, widths []float64, style string, fill bool) {
	s.ensure(s.lineHeight)
	s.apply(style)
	x := margin
	for i, cell := range cells {
		s.pdf.SetXY(x, s.y)
		s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", fill, 0, "")
		x += widths[i]
	}
	s.y += s.lineHeight
}

func (s *styler) image(png []byte, width, height float64, caption string) {
	s.pdf.RegisterImageReader(chartImageName, "PNG", bytes.NewReader(png))
	s.ensure(height + s.lineHeight)
	s.pdf.Image(chartImageName, margin+(contentWidth-width)/2, s.y, width, height, false, "PNG", 0, "")
	s.y += height + 1
	if caption != "" {
		s.paragraph(caption, "normal", "C")
	}
}

func (s *styler) subcaseTable(doc Document) {
	headers := []string{"Subcase", "Frequency steps"}
	for _, req := range doc.Requests {
		headers = append(headers, req.String())
	}
	widths := make([]float64, len(headers))
	for i := range widths {
		widths[i] = contentWidth / float64(len(headers))
	}

	s.row(headers, widths, "tableHeader", true)
	for _, sc := range doc.Subcases {
		cells := []string{strconv.Itoa(sc.Subcase), strconv.Itoa(sc.Steps)}
		for _, req := range doc.Requests {
			cells = append(cells, strconv.Itoa(sc.Entities[req]))
		}
		s.row(cells, widths, "tableCell", false)
	}
}

// Write renders doc as PDF to w.
func Write(w io.Writer, doc Document) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	s := newStyler(pdf)
	s.paragraph(doc.Title, "h1", "C")
	if doc.Source != "" {
		s.paragraph(fmt.Sprintf("Source: %s", doc.Source), "normal", "C")
	}
	s.spacer(5)

	s.paragraph("Subcases", "h2", "L")
	if len(doc.Subcases) == 0 {
		s.paragraph("No subcases found.", "normal", "L")
	} else {
		s.subcaseTable(doc)
	}
	s.spacer(5)

	if len(doc.Chart) > 0 {
		width := contentWidth * 0.9
		s.image(doc.Chart, width, width/2, doc.ChartCaption)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF report: %w", err)
	}
	return nil
}

// WriteFile renders doc to a PDF file at path.
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
