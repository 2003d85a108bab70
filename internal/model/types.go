/*
PURPOSE:
  Defines the core data structures used throughout pch-reader.
  These models describe what a punch file record means: which result
  request it belongs to, how its numbers are encoded, how the records
  are ordered, and the physical values rebuilt from them.

REQUIREMENTS:
  User-specified:
  - Six supported requests: ACCELERATION, DISPLACEMENTS, MPCF, SPCF,
    ELEMENT FORCES, ELEMENT STRAINS.
  - Three output encodings: REAL, REAL-IMAGINARY, MAGNITUDE-PHASE.
  - Values are real or complex, 1 to 6 components per result.

  Implementation-discovered:
  - Unknown request names must map to an explicit variant so the
    validator can reject them.
  - Exporters need a flat (entity, domain, range) view of the data.

ARCHITECTURE INTEGRATION:
  - Used by: internal/punch, internal/results, internal/engine,
    internal/output, internal/chart, internal/report
  - Shared across boundaries.

ERROR HANDLING:
  - Parse helpers return an error for unknown names.

IMPLEMENTATION RULES:
  - Keep enumerations closed; zero values mean "not set".
  - No behaviour beyond conversions and formatting.

USAGE:
  req, err := model.ParseRequestType("ELEMENT FORCES")
  v := model.ComplexValue(complex(1, 2))

RELATED FILES:
  - internal/punch/classifier.go
  - internal/results/store.go

MAINTENANCE:
  - Add new requests here and in the classifier table together.
*/

package model

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// RequestType identifies the results bucket a punch record belongs to.
type RequestType int

const (
	// RequestUnknown is the state before any recognised request directive.
	RequestUnknown RequestType = iota
	RequestAcceleration
	RequestDisplacements
	RequestMPCF
	RequestSPCF
	RequestElementForces
	RequestElementStrains
)

// Requests lists every supported request in a stable order.
var Requests = []RequestType{
	RequestAcceleration,
	RequestDisplacements,
	RequestMPCF,
	RequestSPCF,
	RequestElementForces,
	RequestElementStrains,
}

var requestNames = map[RequestType]string{
	RequestAcceleration:   "ACCELERATION",
	RequestDisplacements:  "DISPLACEMENTS",
	RequestMPCF:           "MPCF",
	RequestSPCF:           "SPCF",
	RequestElementForces:  "ELEMENT FORCES",
	RequestElementStrains: "ELEMENT STRAINS",
}

func (r RequestType) String() string {
	if name, ok := requestNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Supported reports whether r is one of the six recognised requests.
func (r RequestType) Supported() bool {
	_, ok := requestNames[r]
	return ok
}

// ParseRequestType accepts the punch spelling ("ELEMENT FORCES") as well as
// the underscore form used on the command line ("element_forces").
func ParseRequestType(s string) (RequestType, error) {
	norm := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	for r, name := range requestNames {
		if name == norm {
			return r, nil
		}
	}
	return RequestUnknown, fmt.Errorf("unknown request type %q", s)
}

// Encoding is the output encoding declared for a block of records.
type Encoding int

const (
	EncodingReal Encoding = iota
	EncodingRealImaginary
	EncodingMagnitudePhase
)

func (e Encoding) String() string {
	switch e {
	case EncodingRealImaginary:
		return "REAL-IMAGINARY"
	case EncodingMagnitudePhase:
		return "MAGNITUDE-PHASE"
	default:
		return "REAL"
	}
}

// TwoPart reports whether each value is spread over two fields.
func (e Encoding) TwoPart() bool {
	return e == EncodingRealImaginary || e == EncodingMagnitudePhase
}

// SortMode tells how frequency-response records iterate.
type SortMode int

const (
	// SortNone is used by static results.
	SortNone SortMode = iota
	// SortByEntity ("sort type 1"): the frequency is fixed by a comment line
	// and each record starts with its entity id.
	SortByEntity
	// SortByFrequency ("sort type 2"): the entity is fixed by a comment line
	// and each record starts with its frequency.
	SortByFrequency
)

func (s SortMode) String() string {
	switch s {
	case SortByEntity:
		return "BY_ENTITY"
	case SortByFrequency:
		return "BY_FREQUENCY"
	default:
		return "NONE"
	}
}

// Component selects one entry of a six-component result vector.
type Component int

const (
	ComponentNone Component = iota - 1
	ComponentTX
	ComponentTY
	ComponentTZ
	ComponentRX
	ComponentRY
	ComponentRZ
)

var componentNames = []string{"tx", "ty", "tz", "rx", "ry", "rz"}

func (c Component) String() string {
	if c < ComponentTX || c > ComponentRZ {
		return ""
	}
	return componentNames[c]
}

// Index is the position of the component inside a result vector.
func (c Component) Index() int { return int(c) }

// ParseComponent maps "tx".."rz" to a Component. The empty string yields
// ComponentNone without error.
func ParseComponent(s string) (Component, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ComponentNone, nil
	}
	for i, name := range componentNames {
		if name == s {
			return Component(i), nil
		}
	}
	return ComponentNone, fmt.Errorf("unknown component %q (want one of %s)", s, strings.Join(componentNames, ", "))
}

// Value is a single physical quantity. Real values keep a zero imaginary
// part and report IsComplex() == false.
type Value struct {
	c       complex128
	complex bool
}

// RealValue wraps a real number.
func RealValue(f float64) Value { return Value{c: complex(f, 0)} }

// ComplexValue wraps a complex number.
func ComplexValue(c complex128) Value { return Value{c: c, complex: true} }

func (v Value) IsComplex() bool { return v.complex }
func (v Value) Real() float64 { return real(v.c) }
func (v Value) Imag() float64 { return imag(v.c) }
func (v Value) Complex128() complex128 { return v.c }
func (v Value) Abs() float64 { return cmplx.Abs(v.c) }

// Equal reports exact equality of both parts and of the real/complex kind.
func (v Value) Equal(o Value) bool { return v.c == o.c && v.complex == o.complex }

// PhaseDeg returns the phase angle in degrees in (-180, 180].
func (v Value) PhaseDeg() float64 {
	return cmplx.Phase(v.c) * 180 / math.Pi
}

func (v Value) String() string {
	if !v.complex {
		return fmt.Sprintf("%g", real(v.c))
	}
	return fmt.Sprintf("%g", v.c)
}

// Vector is the set of components reconstructed from one logical record.
type Vector []Value

// Series is the ordered list of vectors stored for one entity. Static
// results hold exactly one vector, frequency responses one per step.
type Series []Vector

// Quantity selects how a Value is turned into a plain number for export.
type Quantity string

const (
	QuantityMagnitude Quantity = "magnitude"
	QuantityReal      Quantity = "real"
	QuantityImaginary Quantity = "imaginary"
	QuantityPhase     Quantity = "phase"
)

// ParseQuantity validates a quantity name.
func ParseQuantity(s string) (Quantity, error) {
	switch q := Quantity(strings.ToLower(strings.TrimSpace(s))); q {
	case QuantityMagnitude, QuantityReal, QuantityImaginary, QuantityPhase:
		return q, nil
	case "":
		return QuantityMagnitude, nil
	default:
		return "", fmt.Errorf("unknown quantity %q", s)
	}
}

// Of extracts the quantity from v. Real values always report their signed
// real part for QuantityMagnitude so static curves keep their sign.
func (q Quantity) Of(v Value) float64 {
	switch q {
	case QuantityReal:
		return v.Real()
	case QuantityImaginary:
		return v.Imag()
	case QuantityPhase:
		return v.PhaseDeg()
	default:
		if !v.IsComplex() {
			return v.Real()
		}
		return v.Abs()
	}
}

// Curve is a domain/range series for one entity, the shape consumed by the
// chart and tabular exporters.
type Curve struct {
	Entity int       `json:"entity"`
	Domain []float64 `json:"domain"`
	Range  []float64 `json:"range"`
}

// Pair is the serialised form of a Value.
type Pair struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Record is one entity's results in flat, serialisable form. Frequencies
// is empty for static results; otherwise Steps[i] belongs to Frequencies[i].
type Record struct {
	Request     string    `json:"request"`
	Subcase     int       `json:"subcase"`
	Entity      int       `json:"entity"`
	Frequencies []float64 `json:"frequencies,omitempty"`
	Steps       [][]Pair  `json:"steps"`
}

// Pairs converts a vector for serialisation.
func (v Vector) Pairs() []Pair {
	out := make([]Pair, len(v))
	for i, x := range v {
		out[i] = Pair{Re: x.Real(), Im: x.Imag()}
	}
	return out
}
