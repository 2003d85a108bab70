/*
PURPOSE:
  Validator and value reconstructor: checks the frame before a data line
  is accepted and turns a record's raw fields into physical values.

REQUIREMENTS:
  User-specified:
  - Only the six known requests are accepted.
  - ELEMENT FORCES accepts CELAS2 (12) and CBUSH (102) only.
  - Two-part encodings hold all first parts, then all second parts.
  - Magnitude-phase phases are in degrees.

ERROR HANDLING:
  - ErrUnsupportedRequest, ErrUnsupportedElementType, ErrFormat.
  - Callers attach the line via LineError.

RELATED FILES:
  - internal/punch/frame.go
*/

package punch

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/daryltucker/pch-reader/internal/model"
)

// Element type codes accepted for ELEMENT FORCES (CELAS2 and CBUSH).
const (
	ElementTypeCELAS2 = 12
	ElementTypeCBUSH  = 102
)

var supportedElementTypes = map[int]bool{
	ElementTypeCELAS2: true,
	ElementTypeCBUSH:  true,
}

// Validate rejects frames whose data cannot be interpreted.
func Validate(f Frame) error {
	if !f.Request.Supported() {
		return fmt.Errorf("%w: no supported request directive in effect", ErrUnsupportedRequest)
	}
	if f.Request == model.RequestElementForces && !supportedElementTypes[f.EntityTypeCode] {
		return fmt.Errorf("%w: element type %d (ELEMENT FORCES supports CELAS2 (%d) and CBUSH (%d))",
			ErrUnsupportedElementType, f.EntityTypeCode, ElementTypeCELAS2, ElementTypeCBUSH)
	}
	return nil
}

// Reconstruct turns raw fields into physical values. Two-part encodings
// store all first parts, then all second parts; phases are in degrees.
func Reconstruct(enc model.Encoding, fields []float64) (model.Vector, error) {
	if !enc.TwoPart() {
		out := make(model.Vector, len(fields))
		for i, f := range fields {
			out[i] = model.RealValue(f)
		}
		return out, nil
	}

	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: %s output needs an even number of fields, got %d", ErrFormat, enc, len(fields))
	}
	n := len(fields) / 2
	out := make(model.Vector, n)
	for i := 0; i < n; i++ {
		a, b := fields[i], fields[i+n]
		if enc == model.EncodingMagnitudePhase {
			out[i] = model.ComplexValue(complex(a, 0) * cmplx.Exp(complex(0, b*math.Pi/180)))
		} else {
			out[i] = model.ComplexValue(complex(a, b))
		}
	}
	return out, nil
}
