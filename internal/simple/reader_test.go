package simple

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const psd = `$ACCE PSD       12 T3
      1  2.000000E+01  1.000000E-03
      2  5.000000E+01  4.000000E-03
$ACCE PSD        7 T3
      1  2.000000E+01  2.500000E-02
`

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(psd))
	require.NoError(t, err)

	assert.Equal(t, []int{12, 7}, f.Entities())

	domain, err := f.Domain(12)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 50}, domain)

	rng, err := f.Range(7)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.025}, rng)

	curves := f.Curves()
	require.Len(t, curves, 2)
	assert.Equal(t, 12, curves[0].Entity)
	assert.Len(t, curves[0].Range, 2)

	_, err = f.Domain(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "data before header", input: "      1  1.0  2.0\n", contains: "line 1"},
		{name: "short header", input: "$ACCE\n", contains: "three tokens"},
		{name: "bad id", input: "$ACCE PSD abc\n", contains: `"abc"`},
		{name: "short data", input: "$ACCE PSD 1\n      1  2.0\n", contains: "line 2"},
		{name: "bad number", input: "$ACCE PSD 1\n      1  2.0  x\n", contains: "line 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
