/*
PURPOSE:
  Holds the frame state accumulated across classified punch lines and
  the pure transition Step(frame, line) -> (frame', effect).

REQUIREMENTS:
  User-specified:
  - Title lines flush the pending record and fully reset the frame.
  - Lines before the first title are ignored.
  - Data lines are validated, then either extend the pending record
    (continuation) or flush it and start a new one.

  Implementation-discovered:
  - Subcase registration is global (outlives frame resets), so it is
    reported as an effect instead of being kept in the frame.

ARCHITECTURE INTEGRATION:
  - Called by: internal/punch/parser.go
  - Produces: Record values committed by parser.go

ERROR HANDLING:
  - Validation and number parsing failures return LineError.

IMPLEMENTATION RULES:
  - Frame is a value; Step never mutates its argument.

RELATED FILES:
  - internal/punch/classifier.go
  - internal/punch/parser.go
*/

package punch

import (
	"math"
	"slices"
	"strings"

	"github.com/daryltucker/pch-reader/internal/model"
)

// Frame is the context in effect for the record being accumulated.
type Frame struct {
	Request           model.RequestType
	Encoding          model.Encoding
	Subcase           int
	EntityID          int
	EntityTypeCode    int
	Frequency         float64
	FrequencyResponse bool
	Sort              model.SortMode
	Pending           []float64

	titled      bool
	started     int
	startedText string
}

// InHeader reports whether no title line has been seen yet.
func (f Frame) InHeader() bool { return !f.titled }

// Record is a flushed logical record together with the frame it was read in.
type Record struct {
	Line              int
	Text              string
	Request           model.RequestType
	Encoding          model.Encoding
	Subcase           int
	EntityID          int
	EntityTypeCode    int
	Frequency         float64
	FrequencyResponse bool
	Sort              model.SortMode
	Fields            []float64
}

// Key resolves the entity and frequency the record is stored under. The
// leading field is the frequency for sort-by-frequency records and the
// entity id for sort-by-entity and static records.
func (r Record) Key() (entity int, frequency float64) {
	entity, frequency = r.EntityID, r.Frequency
	if len(r.Fields) == 0 {
		return entity, frequency
	}
	lead := r.Fields[0]
	switch {
	case r.FrequencyResponse && r.Sort == model.SortByFrequency:
		frequency = lead
	case r.FrequencyResponse && r.Sort == model.SortByEntity:
		entity = int(math.Floor(lead))
	case !r.FrequencyResponse:
		entity = int(math.Floor(lead))
	}
	return entity, frequency
}

// Effect is what the driver must do after a Step.
type Effect struct {
	// Commit is the record flushed by this line, if any.
	Commit *Record
	// Subcase is set when the line registered a subcase id.
	Subcase *int
}

func (f Frame) flush() *Record {
	if len(f.Pending) == 0 {
		return nil
	}
	return &Record{
		Line:              f.started,
		Text:              f.startedText,
		Request:           f.Request,
		Encoding:          f.Encoding,
		Subcase:           f.Subcase,
		EntityID:          f.EntityID,
		EntityTypeCode:    f.EntityTypeCode,
		Frequency:         f.Frequency,
		FrequencyResponse: f.FrequencyResponse,
		Sort:              f.Sort,
		Fields:            f.Pending,
	}
}

// Step applies one classified line to the frame.
func Step(f Frame, l Line) (Frame, Effect, error) {
	var eff Effect

	for _, d := range l.Directives {
		if d.Kind == KindTitle {
			eff.Commit = f.flush()
			f = Frame{titled: true}
			continue
		}
		if !f.titled {
			continue
		}
		switch d.Kind {
		case KindSubcase:
			f.Subcase = d.Int
			id := d.Int
			eff.Subcase = &id
		case KindRequest:
			f.Request = d.Request
		case KindEncoding:
			f.Encoding = d.Encoding
		case KindSortByFrequency:
			f.FrequencyResponse = true
			f.Sort = model.SortByFrequency
		case KindSortByEntity:
			f.FrequencyResponse = true
			f.Sort = model.SortByEntity
		case KindPointID, KindElementID:
			f.EntityID = d.Int
		case KindFrequency:
			f.Frequency = d.Float
		case KindElementType:
			f.EntityTypeCode = d.Int
		}
	}

	if !f.titled || l.IsComment() {
		return f, eff, nil
	}

	if err := Validate(f); err != nil {
		return f, eff, lineError(l, err)
	}
	fields, err := parseFields(l)
	if err != nil {
		return f, eff, err
	}

	if l.Kind == KindContinuation {
		if len(f.Pending) == 0 {
			f.started, f.startedText = l.Number, strings.TrimRight(l.Text, " ")
		}
		f.Pending = append(slices.Clip(f.Pending), fields...)
		return f, eff, nil
	}

	eff.Commit = f.flush()
	f.Pending = fields
	f.started, f.startedText = l.Number, strings.TrimRight(l.Text, " ")
	return f, eff, nil
}
