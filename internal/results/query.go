/*
PURPOSE:
  Read-only query layer over a built Store.

REQUIREMENTS:
  User-specified:
  - Every per-subcase accessor runs the frequency-step health check first.
  - Frequencies are returned sorted; FrequencySteps keeps insertion order.
  - Acceleration lookups take entity and component together or not at all.

ERROR HANDLING:
  - ErrNotFound, ErrInvalidArguments, ErrConsistency, always wrapped with
    the request/subcase/entity involved. Queries never modify the store.

RELATED FILES:
  - internal/results/store.go
*/

package results

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/daryltucker/pch-reader/internal/model"
)

// Query-time failures. They never affect the store.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrConsistency      = errors.New("inconsistent frequency steps")
)

// Selection picks one component of one entity. Both fields are required
// together; a nil Entity and ComponentNone mean "not given".
type Selection struct {
	Entity    *int
	Component model.Component
}

// Select is a shorthand for a complete Selection.
func Select(entity int, c model.Component) Selection {
	return Selection{Entity: &entity, Component: c}
}

// HealthCheck verifies that every known subcase recorded the same number
// of distinct frequencies.
func (s *Store) HealthCheck() error {
	first, firstCount := 0, -1
	for _, sc := range s.Subcases() {
		n := 0
		if fi, ok := s.frequencies[sc]; ok {
			n = len(fi.order)
		}
		if firstCount < 0 {
			first, firstCount = sc, n
			continue
		}
		if n != firstCount {
			return fmt.Errorf("%w: subcase %d has %d, subcase %d has %d", ErrConsistency, first, firstCount, sc, n)
		}
	}
	return nil
}

// Subcases returns every registered subcase id in ascending order.
func (s *Store) Subcases() []int {
	return slices.Sorted(maps.Keys(s.subcases))
}

// Requests returns the requests that hold data, in model.Requests order.
func (s *Store) Requests() []model.RequestType {
	var out []model.RequestType
	for _, r := range model.Requests {
		if len(s.data[r]) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) steps(subcase int) ([]float64, error) {
	if err := s.HealthCheck(); err != nil {
		return nil, err
	}
	if _, ok := s.subcases[subcase]; !ok {
		return nil, fmt.Errorf("%w: subcase %d", ErrNotFound, subcase)
	}
	fi, ok := s.frequencies[subcase]
	if !ok {
		return []float64{}, nil
	}
	return slices.Clone(fi.order), nil
}

// Frequencies returns the frequencies recorded for a subcase, ascending.
func (s *Store) Frequencies(subcase int) ([]float64, error) {
	f, err := s.steps(subcase)
	if err != nil {
		return nil, err
	}
	slices.Sort(f)
	return f, nil
}

// FrequencySteps returns the frequencies of a subcase in the order they
// were first seen; position i is the index of the i-th step in a series.
func (s *Store) FrequencySteps(subcase int) ([]float64, error) {
	return s.steps(subcase)
}

func (s *Store) bucket(req model.RequestType, subcase int) (*bucket, error) {
	if err := s.HealthCheck(); err != nil {
		return nil, err
	}
	bk, ok := s.data[req][subcase]
	if !ok {
		return nil, fmt.Errorf("%w: %s data for subcase %d", ErrNotFound, req, subcase)
	}
	return bk, nil
}

// Results returns the entity -> series mapping of one request and subcase.
func (s *Store) Results(req model.RequestType, subcase int) (map[int]model.Series, error) {
	bk, err := s.bucket(req, subcase)
	if err != nil {
		return nil, err
	}
	return maps.Clone(bk.entities), nil
}

// IsFrequencyResponse reports whether the bucket holds one vector per
// frequency step rather than a single static vector.
func (s *Store) IsFrequencyResponse(req model.RequestType, subcase int) bool {
	bk, ok := s.data[req][subcase]
	return ok && bk.frequencyResponse
}

// Entities lists the entity ids of a bucket in ascending order.
func (s *Store) Entities(req model.RequestType, subcase int) ([]int, error) {
	bk, err := s.bucket(req, subcase)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(bk.entities)), nil
}

// Entity returns the series stored for one entity.
func (s *Store) Entity(req model.RequestType, subcase, entity int) (model.Series, error) {
	bk, err := s.bucket(req, subcase)
	if err != nil {
		return nil, err
	}
	series, ok := bk.entities[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s entity %d in subcase %d", ErrNotFound, req, entity, subcase)
	}
	return series, nil
}

// ComponentSeries returns one component of an entity across all steps.
func (s *Store) ComponentSeries(req model.RequestType, subcase, entity int, c model.Component) ([]model.Value, error) {
	series, err := s.Entity(req, subcase, entity)
	if err != nil {
		return nil, err
	}
	idx := c.Index()
	out := make([]model.Value, 0, len(series))
	for step, v := range series {
		if idx < 0 || idx >= len(v) {
			return nil, fmt.Errorf("%w: component %q of %s entity %d (step %d has %d values)",
				ErrNotFound, c, req, entity, step, len(v))
		}
		out = append(out, v[idx])
	}
	return out, nil
}

// Accelerations returns every acceleration series of a subcase.
func (s *Store) Accelerations(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestAcceleration, subcase)
}

// AccelerationResult is what Acceleration returns: All for an empty
// Selection, Component for a complete one.
type AccelerationResult struct {
	All       map[int]model.Series
	Component []model.Value
}

// Acceleration takes both selectors or neither. With neither it returns
// every acceleration series of the subcase; with both, the selected
// component of one entity across all frequency steps.
func (s *Store) Acceleration(subcase int, sel Selection) (AccelerationResult, error) {
	hasEntity, hasComponent := sel.Entity != nil, sel.Component != model.ComponentNone
	switch {
	case !hasEntity && !hasComponent:
		all, err := s.Accelerations(subcase)
		return AccelerationResult{All: all}, err
	case hasEntity && hasComponent:
		values, err := s.ComponentSeries(model.RequestAcceleration, subcase, *sel.Entity, sel.Component)
		return AccelerationResult{Component: values}, err
	default:
		return AccelerationResult{}, fmt.Errorf("%w: need both entity id and direction component, or neither", ErrInvalidArguments)
	}
}

// AccelerationComponent is Acceleration restricted to a complete Selection.
func (s *Store) AccelerationComponent(subcase int, sel Selection) ([]model.Value, error) {
	if sel.Entity == nil || sel.Component == model.ComponentNone {
		return nil, fmt.Errorf("%w: need both entity id and direction component", ErrInvalidArguments)
	}
	res, err := s.Acceleration(subcase, sel)
	return res.Component, err
}

func (s *Store) Displacements(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestDisplacements, subcase)
}

func (s *Store) MPCF(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestMPCF, subcase)
}

func (s *Store) SPCF(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestSPCF, subcase)
}

func (s *Store) ElementForces(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestElementForces, subcase)
}

func (s *Store) ElementStrains(subcase int) (map[int]model.Series, error) {
	return s.Results(model.RequestElementStrains, subcase)
}
