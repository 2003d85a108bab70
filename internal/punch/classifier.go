/*
PURPOSE:
  Classifies a single fixed-width punch line.
  Every recognised line shape is one entry of a data-driven table that
  pairs a prefix/substring test with a fixed-column extraction rule.

REQUIREMENTS:
  User-specified:
  - Only the first 72 columns are significant.
  - Directives: title, subcase, request, output encoding, frequency
    response markers, point/element id, frequency value, element type.
  - Lines starting with '$' are comments; everything else is data.
  - 'G' is a padding glyph in data lines; '-CONT-' marks continuation.

  Implementation-discovered:
  - A single line may match several shapes (the "$FREQUENCY =" value
    line is also a sort-by-entity marker), so shapes are grouped:
    the first match inside a group wins and every group is consulted.

ARCHITECTURE INTEGRATION:
  - Called by: internal/punch/parser.go
  - Feeds: Step() in frame.go

ERROR HANDLING:
  - Malformed fixed-column numbers return ErrFormat wrapped in LineError.
  - Data line numbers are NOT parsed here; Step validates first.

IMPLEMENTATION RULES:
  - No state. Classify(line) must give the same answer for the same input.

RELATED FILES:
  - internal/punch/frame.go

MAINTENANCE:
  - New line shapes go into shapeGroups and need a Kind.
*/

package punch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daryltucker/pch-reader/internal/model"
)

// LineWidth is the number of significant columns in a punch line.
const LineWidth = 72

const (
	commentSentinel    = "$"
	continuationMarker = "-CONT-"
	fillerGlyph        = "G"
)

// Kind is the category of a classified line or directive.
type Kind int

const (
	KindTitle Kind = iota
	KindSubcase
	KindRequest
	KindEncoding
	KindSortByFrequency
	KindSortByEntity
	KindPointID
	KindElementID
	KindFrequency
	KindElementType
	KindComment
	KindContinuation
	KindData
)

var kindNames = [...]string{
	KindTitle:           "title",
	KindSubcase:         "subcase",
	KindRequest:         "request",
	KindEncoding:        "encoding",
	KindSortByFrequency: "identified-by-frequency",
	KindSortByEntity:    "frequency-comment",
	KindPointID:         "point-id",
	KindElementID:       "element-id",
	KindFrequency:       "frequency",
	KindElementType:     "element-type",
	KindComment:         "comment",
	KindContinuation:    "continuation",
	KindData:            "data",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Directive is one state update carried by a comment line.
type Directive struct {
	Kind     Kind
	Int      int
	Float    float64
	Request  model.RequestType
	Encoding model.Encoding
}

// Line is a classified punch line. Kind is the line's category: the first
// directive for directive lines, otherwise comment, continuation or data.
type Line struct {
	Number     int
	Text       string
	Kind       Kind
	Directives []Directive
	// Payload is the data part of a data or continuation line, with the
	// filler glyph and the continuation marker removed.
	Payload string
}

// IsComment reports whether the line carries no numeric data.
func (l Line) IsComment() bool {
	return l.Kind != KindData && l.Kind != KindContinuation
}

type shape struct {
	kind    Kind
	match   func(string) bool
	extract func(string, *Directive) error
}

func hasPrefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

// columns returns line[from:to] clamped to the line length. to < 0 means
// the end of the line.
func columns(line string, from, to int) string {
	if to < 0 || to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return strings.TrimSpace(line[from:to])
}

func intAt(from, to int) func(string, *Directive) error {
	return func(line string, d *Directive) error {
		raw := columns(line, from, to)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: invalid integer %q in columns %d-%d", ErrFormat, raw, from, to)
		}
		d.Int = v
		return nil
	}
}

func floatAt(from, to int) func(string, *Directive) error {
	return func(line string, d *Directive) error {
		raw := columns(line, from, to)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid number %q in columns %d-%d", ErrFormat, raw, from, to)
		}
		d.Float = v
		return nil
	}
}

func request(r model.RequestType) shape {
	return shape{
		kind:  KindRequest,
		match: hasPrefix("$" + r.String()),
		extract: func(_ string, d *Directive) error {
			d.Request = r
			return nil
		},
	}
}

func encoding(marker string, e model.Encoding) shape {
	return shape{
		kind:  KindEncoding,
		match: hasPrefix(marker),
		extract: func(_ string, d *Directive) error {
			d.Encoding = e
			return nil
		},
	}
}

// shapeGroups is the line grammar. Within a group the first matching shape
// wins; every group is checked for every line, in order.
var shapeGroups = [][]shape{
	{
		{kind: KindTitle, match: hasPrefix("$TITLE   =")},
	},
	{
		{kind: KindSubcase, match: hasPrefix("$SUBCASE ID ="), extract: intAt(13, -1)},
		{kind: KindSubcase, match: hasPrefix("$RANDOM ID ="), extract: intAt(13, -1)},
	},
	{
		request(model.RequestDisplacements),
		request(model.RequestAcceleration),
		request(model.RequestMPCF),
		request(model.RequestSPCF),
		request(model.RequestElementForces),
		request(model.RequestElementStrains),
	},
	{
		encoding("$REAL-IMAGINARY OUTPUT", model.EncodingRealImaginary),
		encoding("$MAGNITUDE-PHASE OUTPUT", model.EncodingMagnitudePhase),
		encoding("REAL OUTPUT", model.EncodingReal),
		encoding("$REAL OUTPUT", model.EncodingReal),
	},
	{
		{kind: KindSortByFrequency, match: contains("IDENTIFIED BY FREQUENCY")},
		{kind: KindSortByEntity, match: contains("$FREQUENCY =")},
	},
	{
		{kind: KindPointID, match: hasPrefix("$POINT ID ="), extract: intAt(11, 23)},
		{kind: KindElementID, match: hasPrefix("$ELEMENT ID ="), extract: intAt(13, 23)},
		{kind: KindFrequency, match: hasPrefix("$FREQUENCY = "), extract: floatAt(12, 28)},
	},
	{
		{kind: KindElementType, match: hasPrefix("$ELEMENT TYPE ="), extract: intAt(15, 27)},
	},
}

// Truncate drops everything past the significant columns and any trailing
// carriage return.
func Truncate(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > LineWidth {
		line = line[:LineWidth]
	}
	return line
}

// Classify applies the line grammar to one (already truncated) line.
func Classify(number int, text string) (Line, error) {
	l := Line{Number: number, Text: text, Kind: KindComment}

	for _, group := range shapeGroups {
		for _, s := range group {
			if !s.match(text) {
				continue
			}
			d := Directive{Kind: s.kind}
			if s.extract != nil {
				if err := s.extract(text, &d); err != nil {
					l.Kind = s.kind
					return l, lineError(l, err)
				}
			}
			l.Directives = append(l.Directives, d)
			break
		}
	}
	// A directive line never carries data, even the bare "REAL OUTPUT" form.
	if len(l.Directives) > 0 {
		l.Kind = l.Directives[0].Kind
		return l, nil
	}
	if strings.HasPrefix(text, commentSentinel) {
		return l, nil
	}

	payload := strings.ReplaceAll(text, fillerGlyph, " ")
	if strings.HasPrefix(payload, continuationMarker) {
		l.Kind = KindContinuation
		payload = strings.ReplaceAll(payload, continuationMarker, "")
	} else {
		l.Kind = KindData
	}
	l.Payload = payload
	return l, nil
}

// parseFields splits a data payload on whitespace and converts each token.
func parseFields(l Line) ([]float64, error) {
	tokens := strings.Fields(l.Payload)
	fields := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, lineError(l, fmt.Errorf("%w: invalid number %q", ErrFormat, tok))
		}
		fields = append(fields, v)
	}
	return fields, nil
}
