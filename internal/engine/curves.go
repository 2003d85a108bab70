/*
PURPOSE:
  Shapes store content for the collaborators: curves for CSV and charts,
  flat records for JSON Lines, subcase rows for the summary and report.

REQUIREMENTS:
  Implementation-discovered:
  - Frequency-response curves use the subcase's frequency steps in
    insertion order, matching the order vectors were appended.
  - Static curves use the 1-based component number as domain.

ERROR HANDLING:
  - Query errors from internal/results are returned unchanged.

RELATED FILES:
  - internal/engine/runner.go
*/

package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/daryltucker/pch-reader/internal/model"
	"github.com/daryltucker/pch-reader/internal/report"
	"github.com/daryltucker/pch-reader/internal/results"
)

// Query selects what to pull out of a store. A nil Subcase means the
// lowest subcase; a nil Entity means every entity of the bucket.
type Query struct {
	Request   model.RequestType
	Subcase   *int
	Entity    *int
	Component model.Component
	Quantity  model.Quantity
}

func (q Query) subcase(store *results.Store) (int, error) {
	if q.Subcase != nil {
		return *q.Subcase, nil
	}
	subcases := store.Subcases()
	if len(subcases) == 0 {
		return 0, fmt.Errorf("%w: file has no subcases", results.ErrNotFound)
	}
	return subcases[0], nil
}

// Curves turns one bucket of the store into plottable curves. Frequency
// responses use the subcase's frequency steps as the domain and need a
// component; static results plot their vector against the 1-based
// component number.
func Curves(store *results.Store, q Query) ([]model.Curve, error) {
	sc, err := q.subcase(store)
	if err != nil {
		return nil, err
	}
	ids, err := store.Entities(q.Request, sc)
	if err != nil {
		return nil, err
	}
	if q.Entity != nil {
		ids = []int{*q.Entity}
	}

	if !store.IsFrequencyResponse(q.Request, sc) {
		return staticCurves(store, q, sc, ids)
	}

	if q.Component == model.ComponentNone {
		return nil, fmt.Errorf("%w: frequency response curves need a component", results.ErrInvalidArguments)
	}
	steps, err := store.FrequencySteps(sc)
	if err != nil {
		return nil, err
	}

	curves := make([]model.Curve, 0, len(ids))
	for _, id := range ids {
		values, err := store.ComponentSeries(q.Request, sc, id, q.Component)
		if err != nil {
			return nil, err
		}
		n := min(len(values), len(steps))
		c := model.Curve{Entity: id, Domain: slices.Clone(steps[:n]), Range: make([]float64, n)}
		for i := range n {
			c.Range[i] = q.Quantity.Of(values[i])
		}
		curves = append(curves, c)
	}
	return curves, nil
}

func staticCurves(store *results.Store, q Query, sc int, ids []int) ([]model.Curve, error) {
	curves := make([]model.Curve, 0, len(ids))
	for _, id := range ids {
		series, err := store.Entity(q.Request, sc, id)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			continue
		}
		vec := series[0]
		c := model.Curve{Entity: id, Domain: make([]float64, len(vec)), Range: make([]float64, len(vec))}
		for i, v := range vec {
			c.Domain[i] = float64(i + 1)
			c.Range[i] = q.Quantity.Of(v)
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// Records flattens the whole store, request by request and subcase by
// subcase, for the JSON Lines dump.
func Records(store *results.Store) ([]model.Record, error) {
	var out []model.Record
	for _, req := range store.Requests() {
		for _, sc := range store.Subcases() {
			byEntity, err := store.Results(req, sc)
			if errors.Is(err, results.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}

			var steps []float64
			if store.IsFrequencyResponse(req, sc) {
				if steps, err = store.FrequencySteps(sc); err != nil {
					return nil, err
				}
			}

			ids, err := store.Entities(req, sc)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				series := byEntity[id]
				rec := model.Record{Request: req.String(), Subcase: sc, Entity: id, Steps: make([][]model.Pair, len(series))}
				for i, vec := range series {
					rec.Steps[i] = vec.Pairs()
				}
				if steps != nil {
					rec.Frequencies = slices.Clone(steps[:min(len(series), len(steps))])
				}
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// Summarize counts frequency steps and entities per request for every
// subcase. It fails when the subcases disagree on their step count.
func Summarize(store *results.Store) ([]report.SubcaseRow, error) {
	if err := store.HealthCheck(); err != nil {
		return nil, err
	}
	var rows []report.SubcaseRow
	for _, sc := range store.Subcases() {
		steps, err := store.FrequencySteps(sc)
		if err != nil {
			return nil, err
		}
		row := report.SubcaseRow{Subcase: sc, Steps: len(steps), Entities: make(map[model.RequestType]int)}
		for _, req := range store.Requests() {
			ids, err := store.Entities(req, sc)
			if errors.Is(err, results.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			row.Entities[req] = len(ids)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
