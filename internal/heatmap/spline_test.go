package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplineReproducesKnots(t *testing.T) {
	x := []float64{10, 20, 30, 45, 60}
	y := []float64{5, 8, 3, 7, 1}

	s, err := NewSpline(x, y)
	require.NoError(t, err)

	for i := range x {
		assert.InDelta(t, y[i], s.At(x[i]), 1e-9, "knot %d", i)
	}
}

func TestSplineTwoPointsIsLinear(t *testing.T) {
	s, err := NewSpline([]float64{0, 10}, []float64{0, 5})
	require.NoError(t, err)

	assert.InDelta(t, 2.5, s.At(5), 1e-12)
	// Extrapolation continues the line on both sides.
	assert.InDelta(t, 10.0, s.At(20), 1e-12)
	assert.InDelta(t, -5.0, s.At(-10), 1e-12)
}

func TestSplineNaturalMidpoint(t *testing.T) {
	// Symmetric hump: natural boundary gives a single interior second
	// derivative of -3, hence S(0.5) = 0.6875.
	s, err := NewSpline([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.6875, s.At(0.5), 1e-12)
	assert.InDelta(t, 0.6875, s.At(1.5), 1e-12)
}

func TestSplineExtrapolatesEndSegment(t *testing.T) {
	s, err := NewSpline([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)

	// Values beyond the domain come from the end cubic, not a clamp.
	beyond := s.At(3)
	assert.NotEqual(t, 0.0, beyond)
	assert.Less(t, beyond, 0.0)
}

func TestSplineRejectsNonIncreasingX(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
	}{
		{"duplicate", []float64{10, 20, 20, 30}},
		{"unsorted", []float64{10, 30, 20, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			_, err := NewSpline(tt.x, y)
			assert.ErrorIs(t, err, ErrInterpolationDomain)
		})
	}
}

func TestSplineRejectsShortInput(t *testing.T) {
	_, err := NewSpline([]float64{1}, []float64{2})
	assert.Error(t, err)

	_, err = NewSpline([]float64{1, 2}, []float64{2})
	assert.Error(t, err)
}

func TestSplineEvalMatchesAt(t *testing.T) {
	x := []float64{10, 20, 30}
	y := []float64{5, 8, 3}
	s, err := NewSpline(x, y)
	require.NoError(t, err)

	ts := []float64{12, 20, 28.5, 35}
	got := s.Eval(ts)
	require.Len(t, got, len(ts))
	for i, tv := range ts {
		assert.Equal(t, s.At(tv), got[i])
	}
}
