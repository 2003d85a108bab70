/*
PURPOSE:
  Writes curves to a CSV file as (entity, domain, range) rows.
  This is the tabular export collaborator of the punch reader.

REQUIREMENTS:
  User-specified:
  - Header row: entity, domain, range.
  - One row per point, entities in the order given.

  Implementation-discovered:
  - Values are written with full precision (strconv 'g', -1) so an
    export can be read back without loss.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: model.Curve

ERROR HANDLING:
  - Returns error on file creation or write failure.
  - Curves with mismatched domain/range lengths are rejected.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every curve.

USAGE:
  w, err := output.NewCSVWriter("curves.csv")
  w.Write(curve)
  w.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/pch-reader/internal/model"
)

var curveHeader = []string{"entity", "domain", "range"}

// CSVWriter handles writing curves to a CSV file.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cw, err := newCSVWriter(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cw, nil
}

func newCSVWriter(w io.Writer, c io.Closer) (*CSVWriter, error) {
	cw := &CSVWriter{closer: c, writer: csv.NewWriter(w)}
	if err := cw.writer.Write(curveHeader); err != nil {
		return nil, err
	}
	cw.writer.Flush()
	return cw, cw.writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write writes every point of one curve.
// It is thread-safe.
func (cw *CSVWriter) Write(c model.Curve) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if len(c.Domain) != len(c.Range) {
		return fmt.Errorf("entity %d: domain has %d points, range has %d", c.Entity, len(c.Domain), len(c.Range))
	}

	entity := strconv.Itoa(c.Entity)
	for i := range c.Domain {
		if err := cw.writer.Write([]string{entity, formatFloat(c.Domain[i]), formatFloat(c.Range[i])}); err != nil {
			return err
		}
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if cw.closer == nil {
		return cw.writer.Error()
	}
	return cw.closer.Close()
}
