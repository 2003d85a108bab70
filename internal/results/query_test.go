package results

import (
	"testing"

	"github.com/daryltucker/pch-reader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(vals ...float64) model.Vector {
	v := make(model.Vector, len(vals))
	for i, f := range vals {
		v[i] = model.RealValue(f)
	}
	return v
}

func frequencyStore(t *testing.T, steps map[int][]float64) *Store {
	t.Helper()
	b := NewBuilder()
	for sc, freqs := range steps {
		b.RegisterSubcase(sc)
		for _, f := range freqs {
			b.Append(model.RequestAcceleration, sc, 3, f, vec(f, 2*f, 3*f, 0, 0, 0))
		}
	}
	return b.Build()
}

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name    string
		steps   map[int][]float64
		wantErr bool
	}{
		{name: "empty store", steps: map[int][]float64{}},
		{name: "single subcase", steps: map[int][]float64{1: {1, 2, 3}}},
		{name: "equal counts", steps: map[int][]float64{1: {1, 2}, 2: {5, 6}}},
		{name: "repeated frequency counts once", steps: map[int][]float64{1: {1, 1, 2}, 2: {1, 2}}},
		{name: "different counts", steps: map[int][]float64{1: {1, 2}, 2: {1}}, wantErr: true},
		{name: "one of three differs", steps: map[int][]float64{1: {1}, 2: {1}, 3: {1, 2}}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := frequencyStore(t, tc.steps).HealthCheck()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrConsistency)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHealthCheck_SubcaseWithoutData(t *testing.T) {
	b := NewBuilder()
	b.RegisterSubcase(1)
	b.RegisterSubcase(2)
	b.Append(model.RequestAcceleration, 1, 3, 10, vec(1))

	s := b.Build()
	assert.ErrorIs(t, s.HealthCheck(), ErrConsistency)

	_, err := s.Accelerations(1)
	assert.ErrorIs(t, err, ErrConsistency, "per-subcase accessors run the health check")
	_, err = s.Frequencies(1)
	assert.ErrorIs(t, err, ErrConsistency)
}

func TestSubcasesAndFrequencies(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{20: {30, 10, 20}, 4: {3, 2, 1}})

	assert.Equal(t, []int{4, 20}, s.Subcases())

	freqs, err := s.Frequencies(20)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, freqs)

	steps, err := s.FrequencySteps(20)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 10, 20}, steps)

	_, err = s.Frequencies(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResults_NotFound(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{1: {1}})

	_, err := s.Results(model.RequestDisplacements, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Accelerations(2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Entity(model.RequestAcceleration, 1, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResults_ReturnsCopy(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{1: {1}})

	acc, err := s.Accelerations(1)
	require.NoError(t, err)
	delete(acc, 3)

	again, err := s.Accelerations(1)
	require.NoError(t, err)
	assert.Contains(t, again, 3)
}

func TestAccelerationComponent(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{1: {1, 2, 4}})

	tz, err := s.AccelerationComponent(1, Select(3, model.ComponentTZ))
	require.NoError(t, err)
	require.Len(t, tz, 3)
	assert.Equal(t, []float64{3, 6, 12}, []float64{tz[0].Real(), tz[1].Real(), tz[2].Real()})

	rx, err := s.AccelerationComponent(1, Select(3, model.ComponentRX))
	require.NoError(t, err)
	assert.Equal(t, 0.0, rx[2].Real())

	_, err = s.AccelerationComponent(1, Select(8, model.ComponentTX))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccelerationComponent_InvalidArguments(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{1: {1}})
	five := 5

	_, err := s.AccelerationComponent(1, Selection{Component: model.ComponentTX})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = s.AccelerationComponent(1, Selection{Entity: &five, Component: model.ComponentNone})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = s.AccelerationComponent(1, Selection{Component: model.ComponentNone})
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestAcceleration_BothOrNeither(t *testing.T) {
	s := frequencyStore(t, map[int][]float64{1: {1, 2}})
	three := 3

	all, err := s.Acceleration(1, Selection{Component: model.ComponentNone})
	require.NoError(t, err)
	require.Contains(t, all.All, 3)
	assert.Len(t, all.All[3], 2)
	assert.Nil(t, all.Component)

	one, err := s.Acceleration(1, Select(3, model.ComponentTY))
	require.NoError(t, err)
	assert.Nil(t, one.All)
	assert.Equal(t, []float64{2, 4}, []float64{one.Component[0].Real(), one.Component[1].Real()})

	_, err = s.Acceleration(1, Selection{Component: model.ComponentTX})
	assert.ErrorIs(t, err, ErrInvalidArguments)
	_, err = s.Acceleration(1, Selection{Entity: &three, Component: model.ComponentNone})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = s.Acceleration(9, Selection{Component: model.ComponentNone})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComponentSeries_ShortVector(t *testing.T) {
	b := NewBuilder()
	b.RegisterSubcase(1)
	b.Set(model.RequestElementForces, 1, 77, vec(125.5))
	s := b.Build()

	v, err := s.ComponentSeries(model.RequestElementForces, 1, 77, model.ComponentTX)
	require.NoError(t, err)
	assert.Equal(t, 125.5, v[0].Real())

	_, err = s.ComponentSeries(model.RequestElementForces, 1, 77, model.ComponentRZ)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequests(t *testing.T) {
	b := NewBuilder()
	b.RegisterSubcase(1)
	b.Set(model.RequestSPCF, 1, 1, vec(1))
	b.Set(model.RequestDisplacements, 1, 1, vec(1))

	s := b.Build()
	assert.Equal(t, []model.RequestType{model.RequestDisplacements, model.RequestSPCF}, s.Requests())
	assert.False(t, s.IsFrequencyResponse(model.RequestSPCF, 1))

	ids, err := s.Entities(model.RequestSPCF, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}
