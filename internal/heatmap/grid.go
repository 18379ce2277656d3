package heatmap

import "math"

// arangeEps guards the point count against floating-point drift in
// (stop-start)/step, which would otherwise occasionally add a spurious
// final point.
const arangeEps = 1e-9

// Grid is the shared x-axis sampling onto which every series is resampled,
// plus the decade tick positions used for axis display. It is computed once
// from the first accepted series of a batch and immutable afterwards.
type Grid struct {
	Points []float64
	Step   float64
	Ticks  []float64
}

// NewGrid builds the shared grid for an observed x range: evenly spaced
// points from the smallest multiple of step at or above xMin, covering xMax.
// The upper bound follows half-open range semantics over [start, xMax+step).
// Ticks span the same range rounded outward to whole decades, at step 10,
// independent of the grid granularity.
func NewGrid(xMin, xMax, step float64) *Grid {
	start := math.Ceil(xMin/step) * step
	points := arange(start, xMax+step, step)

	lo := math.Floor(xMin/10) * 10
	hi := math.Ceil(xMax/10) * 10
	ticks := arange(lo, hi+10, 10)

	return &Grid{Points: points, Step: step, Ticks: ticks}
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.Points) }

// Min and Max return the grid bounds.
func (g *Grid) Min() float64 { return g.Points[0] }
func (g *Grid) Max() float64 { return g.Points[len(g.Points)-1] }

func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop-start)/step - arangeEps))
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
