/*
PURPOSE:
  Drives a whole-file parse of a NASTRAN punch file: reads lines in
  order, classifies them, folds them into the frame and commits each
  completed record into a results.Builder.

REQUIREMENTS:
  User-specified:
  - Single pass, strictly in file order.
  - End of file forces a final commit.
  - Any failure aborts the parse; no partial results are returned.

  Implementation-discovered:
  - Library callers should get a silent parser; the CLI passes its
    logger in through WithLogger.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, tests
  - Uses: classifier.go, frame.go, values.go, internal/results

ERROR HANDLING:
  - Returns LineError (wrapping ErrFormat, ErrUnsupportedRequest or
    ErrUnsupportedElementType) for content problems.
  - Returns wrapped I/O errors for read problems.

USAGE:
  store, err := punch.ParseFile("model.pch", punch.WithLogger(output.Logger))

RELATED FILES:
  - internal/results/store.go
*/

package punch

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/daryltucker/pch-reader/internal/results"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes parser diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// Parser holds the state of one parse.
type Parser struct {
	logger  *slog.Logger
	builder *results.Builder
	frame   Frame
	commits int
}

// NewParser creates a parser with an empty results builder.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:  slog.New(slog.DiscardHandler),
		builder: results.NewBuilder(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile opens path and parses it.
func ParseFile(path string, opts ...Option) (*results.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open punch file: %w", err)
	}
	defer f.Close()

	store, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse reads a complete punch file from r.
func Parse(r io.Reader, opts ...Option) (*results.Store, error) {
	p := NewParser(opts...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	number := 0
	for sc.Scan() {
		number++
		if err := p.Feed(number, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch file: %w", err)
	}
	return p.Finish()
}

// Feed processes one raw input line. number is 1-based.
func (p *Parser) Feed(number int, raw string) error {
	text := Truncate(raw)
	if p.frame.InHeader() && !isTitle(text) {
		return nil
	}

	line, err := Classify(number, text)
	if err != nil {
		return err
	}
	if line.Kind == KindTitle {
		p.logger.Debug("Title boundary", "line", number)
	}

	next, eff, err := Step(p.frame, line)
	if err != nil {
		return err
	}
	if eff.Commit != nil {
		if err := p.commit(eff.Commit); err != nil {
			return err
		}
	}
	if eff.Subcase != nil {
		p.builder.RegisterSubcase(*eff.Subcase)
		p.logger.Debug("Subcase registered", "subcase", *eff.Subcase, "line", number)
	}
	p.frame = next
	return nil
}

// Finish commits the last pending record and returns the store.
func (p *Parser) Finish() (*results.Store, error) {
	if rec := p.frame.flush(); rec != nil {
		if err := p.commit(rec); err != nil {
			return nil, err
		}
	}
	p.frame = Frame{}
	p.logger.Debug("Punch parse complete", "records", p.commits)
	return p.builder.Build(), nil
}

func isTitle(text string) bool {
	for _, s := range shapeGroups[0] {
		if s.kind == KindTitle && s.match(text) {
			return true
		}
	}
	return false
}

func (p *Parser) commit(r *Record) error {
	if len(r.Fields) == 0 {
		return nil
	}
	if !p.builder.HasSubcase(r.Subcase) {
		return &LineError{
			Line:     r.Line,
			Category: KindData,
			Text:     r.Text,
			Err:      fmt.Errorf("%w: record for subcase %d before any subcase marker", ErrFormat, r.Subcase),
		}
	}

	values, err := Reconstruct(r.Encoding, r.Fields[1:])
	if err != nil {
		return &LineError{Line: r.Line, Category: KindData, Text: r.Text, Err: fmt.Errorf("%s record: %w", r.Request, err)}
	}

	entity, frequency := r.Key()
	if r.FrequencyResponse {
		p.builder.Append(r.Request, r.Subcase, entity, frequency, values)
	} else {
		p.builder.Set(r.Request, r.Subcase, entity, values)
	}
	p.commits++
	return nil
}
