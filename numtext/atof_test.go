package numtext

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFloat32_Basic(t *testing.T) {
	tests := []struct {
		input    string
		expected float32
		consumed int
	}{
		{"0", 0, 1},
		{"1", 1, 1},
		{"-1", -1, 2},
		{"3.1415927", 3.1415927, 9},
		{".5", 0.5, 2},
		{"5.", 5, 2},
		{"1e3", 1000, 3},
		{"1E-3", 0.001, 4},
		{"+2.5", 2.5, 4},
		{"2.5f", 2.5, 4},
		{"2.5F", 2.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, n, ok := ParseFloat32(tt.input)
			require.True(t, ok)
			require.Equal(t, tt.consumed, n)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestParseFloat32_StopsAtTrailingGarbage(t *testing.T) {
	v, n, ok := ParseFloat32("1.5 rest of tokens")
	require.True(t, ok)
	require.Equal(t, 3, n)
	require.Equal(t, float32(1.5), v)
}

func TestParseFloat32_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "+", "-", "e5", "."} {
		_, _, ok := ParseFloat32(s)
		require.False(t, ok, "input %q should not parse", s)
	}
}

// TestParseFloat32_ULPAccuracy matches spec.md's scenario 5: parsing must
// be within 1 ULP of the C-locale strtod (here, Go's correctly-rounded
// strconv.ParseFloat cast to float32).
func TestParseFloat32_ULPAccuracy(t *testing.T) {
	inputs := []string{
		"-0.0690462109446526",
		"3.402823466e+38",
		".00234567",
		"1.175494351e-38",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			got, _, ok := ParseFloat32(s)
			require.True(t, ok)

			ref, err := strconv.ParseFloat(s, 32)
			require.NoError(t, err)

			require.LessOrEqual(t, ULPDiff(got, float32(ref)), uint32(1))
		})
	}
}

func TestParseFloat32_RoundTripWithAppend(t *testing.T) {
	values := []float32{0, 1, -1, 3.1415927, 1e10, 1e-10}
	for _, v := range values {
		s := strconv.FormatFloat(float64(v), 'g', 9, 32)
		got, _, ok := ParseFloat32(s)
		require.True(t, ok)
		require.LessOrEqual(t, ULPDiff(got, v), uint32(1))
	}
}

func TestParseFloat32_SpecialMagnitudes(t *testing.T) {
	v, _, ok := ParseFloat32("3.402823e+38")
	require.True(t, ok)
	require.InDelta(t, float64(math.MaxFloat32), float64(v), 1e32)
}
