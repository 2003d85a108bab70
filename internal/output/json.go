/*
PURPOSE:
  Writes parsed punch results to a JSON Lines file (NDJSON).
  One line per (request, subcase, entity).

REQUIREMENTS:
  Implementation-discovered:
  - JSON Lines keeps each entity independent (grep/jq friendly).
  - Complex values are split into re/im pairs.
  - Frequency-response records are rejected unless every step has its
    frequency.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure, naming the record.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder over a bufio.Writer; Close must flush.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl")
  w.Write(record)
  w.Close()
*/

package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/daryltucker/pch-reader/internal/model"
)

// JSONWriter streams records as JSON Lines through a buffer.
type JSONWriter struct {
	closer  io.Closer
	buf     *bufio.Writer
	encoder *json.Encoder
	count   int
	mu      sync.Mutex
}

// NewJSONWriter creates path, truncating an existing file.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return newJSONWriter(f, f), nil
}

func newJSONWriter(w io.Writer, c io.Closer) *JSONWriter {
	buf := bufio.NewWriter(w)
	return &JSONWriter{closer: c, buf: buf, encoder: json.NewEncoder(buf)}
}

// Write encodes one record per line. Frequency-response records must carry
// one frequency per step.
func (jw *JSONWriter) Write(r model.Record) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if len(r.Frequencies) > 0 && len(r.Frequencies) != len(r.Steps) {
		return fmt.Errorf("%s subcase %d entity %d: %d frequencies for %d steps",
			r.Request, r.Subcase, r.Entity, len(r.Frequencies), len(r.Steps))
	}
	if err := jw.encoder.Encode(r); err != nil {
		return fmt.Errorf("%s subcase %d entity %d: %w", r.Request, r.Subcase, r.Entity, err)
	}
	jw.count++
	return nil
}

// Count is the number of records written so far.
func (jw *JSONWriter) Count() int {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.count
}

// Close flushes buffered lines and closes the underlying file.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	err := jw.buf.Flush()
	if jw.closer != nil {
		if cerr := jw.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
