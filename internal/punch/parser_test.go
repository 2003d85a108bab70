package punch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/pch-reader/internal/model"
	"github.com/daryltucker/pch-reader/internal/results"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, cards ...string) *results.Store {
	t.Helper()
	store, err := Parse(strings.NewReader(punchFile(cards...)))
	require.NoError(t, err)
	return store
}

func TestParse_StaticAcceleration(t *testing.T) {
	store := parse(t,
		title("STATIC"),
		"$SUBTITLE=",
		"$LABEL   =",
		"$ACCELERATION",
		"REAL OUTPUT",
		subcase(1),
		data("7", 0.1, 0.2, 0.3),
		cont(0.0, 0.0, 0.0),
	)

	assert.Equal(t, []int{1}, store.Subcases())
	acc, err := store.Accelerations(1)
	require.NoError(t, err)
	require.Contains(t, acc, 7)
	require.Len(t, acc[7], 1)

	expected := model.Vector{
		model.RealValue(0.1), model.RealValue(0.2), model.RealValue(0.3),
		model.RealValue(0), model.RealValue(0), model.RealValue(0),
	}
	assert.Equal(t, expected, acc[7][0])
	assert.False(t, store.IsFrequencyResponse(model.RequestAcceleration, 1))
}

func TestParse_ContinuationFormsOneRecord(t *testing.T) {
	store := parse(t,
		title("CONT"),
		"$DISPLACEMENTS",
		"$REAL OUTPUT",
		subcase(3),
		data("11", 1, 2, 3),
		cont(4, 5, 6),
		data("12", 7, 8, 9),
		cont(10, 11, 12),
	)

	disp, err := store.Displacements(3)
	require.NoError(t, err)
	require.Len(t, disp, 2)
	assert.Len(t, disp[11][0], 6)
	assert.Len(t, disp[12][0], 6)
	assert.Equal(t, 12.0, disp[12][0][5].Real())
}

func TestParse_StaticOverwrite(t *testing.T) {
	store := parse(t,
		title("OVERWRITE"),
		"$SPCF",
		subcase(1),
		data("5", 1, 2, 3),
		data("5", 4, 5, 6),
	)

	spcf, err := store.SPCF(1)
	require.NoError(t, err)
	require.Len(t, spcf[5], 1)
	assert.Equal(t, 4.0, spcf[5][0][0].Real())
}

func TestParse_SortByFrequencyMagnitudePhase(t *testing.T) {
	store := parse(t,
		title("FREQ RESPONSE"),
		"$ACCELERATION",
		"$MAGNITUDE-PHASE OUTPUT",
		subcase(1),
		pointID(3),
		data("1.0", 1.0, 0.0),
		data("2.0", 2.0, 90.0),
	)

	freqs, err := store.Frequencies(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0}, freqs)

	acc, err := store.Accelerations(1)
	require.NoError(t, err)
	require.Len(t, acc[3], 2)

	first, second := acc[3][0][0], acc[3][1][0]
	assert.InDelta(t, 1.0, first.Real(), tolerance)
	assert.InDelta(t, 0.0, first.Imag(), tolerance)
	assert.InDelta(t, 0.0, second.Real(), tolerance)
	assert.InDelta(t, 2.0, second.Imag(), tolerance)
	assert.True(t, store.IsFrequencyResponse(model.RequestAcceleration, 1))
}

func TestParse_SortByEntityRealImaginary(t *testing.T) {
	store := parse(t,
		title("SORT1"),
		"$DISPLACEMENTS",
		"$REAL-IMAGINARY OUTPUT",
		subcase(2),
		"$DISPLACEMENTS",
		frequency(30),
		data("10", 1, 3),
		data("20", 2, 4),
		title("SORT1"),
		"$DISPLACEMENTS",
		"$REAL-IMAGINARY OUTPUT",
		subcase(2),
		frequency(10),
		data("10", 5, 6),
		data("20", 7, 8),
	)

	steps, err := store.FrequencySteps(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 10}, steps)

	freqs, err := store.Frequencies(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30}, freqs)

	disp, err := store.Displacements(2)
	require.NoError(t, err)
	require.Len(t, disp[10], 2)
	assert.Equal(t, complex(1, 3), disp[10][0][0].Complex128())
	assert.Equal(t, complex(5, 6), disp[10][1][0].Complex128())
	assert.Equal(t, complex(7, 8), disp[20][1][0].Complex128())
}

func TestParse_ElementForces(t *testing.T) {
	store := parse(t,
		title("SPRINGS"),
		"$ELEMENT FORCES",
		"$REAL OUTPUT",
		subcase(1),
		elementType(ElementTypeCELAS2),
		data("77", 125.5),
	)

	forces, err := store.ElementForces(1)
	require.NoError(t, err)
	assert.Equal(t, 125.5, forces[77][0][0].Real())
}

func TestParse_SortByFrequencyElementID(t *testing.T) {
	store := parse(t,
		title("BUSH"),
		"$ELEMENT FORCES",
		"$REAL-IMAGINARY OUTPUT",
		subcase(1),
		elementType(ElementTypeCBUSH),
		elementID(900),
		"$ELEMENT FORCES IDENTIFIED BY FREQUENCY",
		data("5.0", 1, 2),
	)

	forces, err := store.ElementForces(1)
	require.NoError(t, err)
	require.Contains(t, forces, 900)
	assert.Equal(t, complex(1, 2), forces[900][0][0].Complex128())
}

func TestParse_HeaderIgnored(t *testing.T) {
	store := parse(t,
		"this is not a punch card",
		"$SUBCASE ID =   garbage",
		"  1.0 2.0 3.0",
		title("AFTER HEADER"),
		"$MPCF",
		subcase(4),
		data("1", 9),
	)

	assert.Equal(t, []int{4}, store.Subcases())
	mpcf, err := store.MPCF(4)
	require.NoError(t, err)
	assert.Equal(t, 9.0, mpcf[1][0][0].Real())
}

func TestParse_TitleResetsFrame(t *testing.T) {
	_, err := Parse(strings.NewReader(punchFile(
		title("FIRST"),
		"$SPCF",
		subcase(1),
		data("1", 1),
		title("SECOND"),
		subcase(1),
		data("2", 2),
	)))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedRequest)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		cards    []string
		expected error
		contains string
	}{
		{
			name: "unsupported element type",
			cards: []string{
				title("BAD ELEMENT"),
				"$ELEMENT FORCES",
				subcase(1),
				elementType(5),
				data("1", 1),
			},
			expected: ErrUnsupportedElementType,
			contains: "element type 5",
		},
		{
			name: "unrecognised request",
			cards: []string{
				title("OLOAD"),
				"$OLOADS",
				subcase(1),
				data("1", 1),
			},
			expected: ErrUnsupportedRequest,
		},
		{
			name: "odd field count",
			cards: []string{
				title("ODD"),
				"$ACCELERATION",
				"$REAL-IMAGINARY OUTPUT",
				subcase(1),
				pointID(1),
				data("1.0", 1, 2, 3),
			},
			expected: ErrFormat,
			contains: "REAL-IMAGINARY",
		},
		{
			name: "bad number",
			cards: []string{
				title("NAN"),
				"$ACCELERATION",
				subcase(1),
				"         1       G      abc",
			},
			expected: ErrFormat,
			contains: "line 4",
		},
		{
			name: "record before subcase marker",
			cards: []string{
				title("NO SUBCASE"),
				"$ACCELERATION",
				data("1", 1),
			},
			expected: ErrFormat,
			contains: "subcase 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := Parse(strings.NewReader(punchFile(tc.cards...)))
			require.Error(t, err)
			assert.Nil(t, store)
			assert.ErrorIs(t, err, tc.expected)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestParse_CommitErrorsQuoteRecordLine(t *testing.T) {
	testCases := []struct {
		name  string
		cards []string
		line  int
		text  string
	}{
		{
			name: "odd field count across continuation",
			cards: []string{
				title("ODD"),
				"$ACCELERATION",
				"$MAGNITUDE-PHASE OUTPUT",
				subcase(1),
				pointID(1),
				data("1.0", 1, 2, 3),
				cont(4, 5),
			},
			line: 6,
			text: data("1.0", 1, 2, 3),
		},
		{
			name: "record before subcase marker",
			cards: []string{
				title("NO SUBCASE"),
				"$SPCF",
				data("8", 1.5),
			},
			line: 3,
			text: data("8", 1.5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(punchFile(tc.cards...)))
			require.ErrorIs(t, err, ErrFormat)

			var lineErr *LineError
			require.ErrorAs(t, err, &lineErr)
			assert.Equal(t, tc.line, lineErr.Line)
			assert.Equal(t, tc.text, lineErr.Text)
			assert.Contains(t, err.Error(), tc.text)
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	deck := punchFile(
		title("TWICE"),
		"$ACCELERATION",
		"$MAGNITUDE-PHASE OUTPUT",
		subcase(1),
		pointID(3),
		data("1.0", 1, 2, 3),
		cont(0, 45, 90),
		data("2.0", 4, 5, 6),
		cont(180, 270, 360),
		title("TWICE"),
		"$ACCELERATION",
		"$MAGNITUDE-PHASE OUTPUT",
		subcase(2),
		pointID(3),
		data("1.0", 1, 1, 1),
		cont(0, 0, 0),
		data("2.0", 2, 2, 2),
		cont(0, 0, 0),
	)

	first, err := Parse(strings.NewReader(deck))
	require.NoError(t, err)
	second, err := Parse(strings.NewReader(deck))
	require.NoError(t, err)

	assert.Equal(t, first.Subcases(), second.Subcases())
	for _, sc := range first.Subcases() {
		f1, err := first.Frequencies(sc)
		require.NoError(t, err)
		f2, err := second.Frequencies(sc)
		require.NoError(t, err)
		assert.Equal(t, f1, f2)

		a1, err := first.Accelerations(sc)
		require.NoError(t, err)
		a2, err := second.Accelerations(sc)
		require.NoError(t, err)
		if diff := cmp.Diff(a1, a2); diff != "" {
			t.Errorf("subcase %d results differ (-first +second):\n%s", sc, diff)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.pch")
	require.NoError(t, os.WriteFile(path, []byte(punchFile(
		title("FILE"),
		"$SPCF",
		subcase(1),
		data("1", 1, 2, 3),
	)), 0644))

	store, err := ParseFile(path)
	require.NoError(t, err)
	spcf, err := store.SPCF(1)
	require.NoError(t, err)
	assert.Len(t, spcf[1][0], 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.pch"))
	assert.Error(t, err)
}
