/*
PURPOSE:
  Reads "simple" punch files: no title block, one '$' line per entity
  followed by `index domain range` data lines. Typical of random
  vibration PSD/RMS punch output.

REQUIREMENTS:
  User-specified:
  - Only the first 72 columns are significant.
  - The entity id is the third whitespace-separated token of a '$' line.
  - Data lines start with a space; their first token is dropped and the
    next two are domain and range.

  Implementation-discovered:
  - Data before the first entity header cannot be attributed and is a
    format error, as is a data line with fewer than three numbers.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (simple export / simple plot)
  - Produces: model.Curve for the chart and CSV collaborators

ERROR HANDLING:
  - Format problems return errors naming the line number.
  - Unknown entity lookups return ErrNotFound.

USAGE:
  f, err := simple.ReadFile("psd.pch")
  for _, id := range f.Entities() { ... f.Domain(id) ... }
*/

package simple

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/pch-reader/internal/model"
)

const lineWidth = 72

var (
	ErrFormat   = errors.New("format error")
	ErrNotFound = errors.New("not found")
)

// File is a parsed simple punch file.
type File struct {
	order []int
	data  map[int]*model.Curve
}

// ReadFile opens and reads path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open simple punch file: %w", err)
	}
	defer f.Close()

	out, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Read parses a simple punch file from r. An entity id seen twice starts
// its series over.
func Read(r io.Reader) (*File, error) {
	out := &File{data: make(map[int]*model.Curve)}
	var cur *model.Curve

	sc := bufio.NewScanner(r)
	number := 0
	for sc.Scan() {
		number++
		line := strings.TrimRight(sc.Text(), "\r")
		if len(line) > lineWidth {
			line = line[:lineWidth]
		}

		switch {
		case strings.HasPrefix(line, "$"):
			tokens := strings.Fields(line)
			if len(tokens) < 3 {
				return nil, fmt.Errorf("line %d: %w: entity header needs three tokens: %q", number, ErrFormat, line)
			}
			id, err := strconv.Atoi(tokens[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: invalid entity id %q", number, ErrFormat, tokens[2])
			}
			if _, seen := out.data[id]; !seen {
				out.order = append(out.order, id)
			}
			cur = &model.Curve{Entity: id}
			out.data[id] = cur

		case strings.HasPrefix(line, " "):
			tokens := strings.Fields(line)
			if len(tokens) == 0 {
				continue
			}
			if cur == nil {
				return nil, fmt.Errorf("line %d: %w: data before any entity header", number, ErrFormat)
			}
			if len(tokens) < 3 {
				return nil, fmt.Errorf("line %d: %w: expected index, domain and range", number, ErrFormat)
			}
			x, errX := strconv.ParseFloat(tokens[1], 64)
			y, errY := strconv.ParseFloat(tokens[2], 64)
			if err := errors.Join(errX, errY); err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", number, ErrFormat, err)
			}
			cur.Domain = append(cur.Domain, x)
			cur.Range = append(cur.Range, y)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read simple punch file: %w", err)
	}
	return out, nil
}

// Entities returns the entity ids in the order they first appeared.
func (f *File) Entities() []int {
	return append([]int(nil), f.order...)
}

func (f *File) curve(id int) (*model.Curve, error) {
	c, ok := f.data[id]
	if !ok {
		return nil, fmt.Errorf("%w: entity %d", ErrNotFound, id)
	}
	return c, nil
}

// Domain returns the domain values of one entity.
func (f *File) Domain(id int) ([]float64, error) {
	c, err := f.curve(id)
	if err != nil {
		return nil, err
	}
	return c.Domain, nil
}

// Range returns the range values of one entity.
func (f *File) Range(id int) ([]float64, error) {
	c, err := f.curve(id)
	if err != nil {
		return nil, err
	}
	return c.Range, nil
}

// Curves returns every entity as a curve, in entity order.
func (f *File) Curves() []model.Curve {
	out := make([]model.Curve, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.data[id])
	}
	return out
}
