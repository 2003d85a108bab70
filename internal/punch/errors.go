/*
PURPOSE:
  Parse-time error family. Any of these aborts the parse.

ERROR HANDLING:
  - Sentinels are matched with errors.Is through LineError.Unwrap.
  - LineError reports line number, category and the line's text.
*/

package punch

import (
	"errors"
	"fmt"
)

// Parse-time failures. Any of them aborts the whole parse.
var (
	ErrFormat                 = errors.New("format error")
	ErrUnsupportedRequest     = errors.New("unsupported request")
	ErrUnsupportedElementType = errors.New("unsupported element type")
)

// LineError ties a parse failure to the line that caused it.
type LineError struct {
	Line     int
	Category Kind
	Text     string
	Err      error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Category, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v: %q", e.Line, e.Category, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(l Line, err error) error {
	return &LineError{Line: l.Number, Category: l.Kind, Text: l.Text, Err: err}
}
