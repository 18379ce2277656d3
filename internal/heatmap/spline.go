package heatmap

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrInterpolationDomain marks a series whose x values violate the strict
// monotonicity precondition of spline construction. The file is skipped; the
// batch continues.
var ErrInterpolationDomain = errors.New("x values must be strictly increasing")

// Spline is an interpolating cubic spline with natural boundary conditions.
// Evaluation outside the fitted x range continues the end segment's cubic,
// so out-of-domain grid points are extrapolated rather than clamped. With
// exactly two points the spline degenerates to the interpolating line.
type Spline struct {
	x []float64
	y []float64
	m []float64 // second derivatives at the knots
}

// NewSpline fits a cubic spline through the given points. x must be strictly
// increasing and of the same length as y.
func NewSpline(x, y []float64) (*Spline, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("spline: %d x values vs %d y values", n, len(y))
	}
	if n < 2 {
		return nil, fmt.Errorf("spline: need at least 2 points, got %d", n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%g, x[%d]=%g",
				ErrInterpolationDomain, i-1, x[i-1], i, x[i])
		}
	}

	s := &Spline{x: x, y: y, m: make([]float64, n)}
	if n == 2 {
		return s, nil // zero second derivatives: a straight line
	}

	if err := s.solveSecondDerivatives(); err != nil {
		return nil, fmt.Errorf("spline: %w", err)
	}
	return s, nil
}

// solveSecondDerivatives sets up the tridiagonal system for the knot second
// derivatives, with natural boundary rows, and solves it with gonum.
func (s *Spline) solveSecondDerivatives() error {
	n := len(s.x)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = s.x[i+1] - s.x[i]
	}

	dl := make([]float64, n-1)
	d := make([]float64, n)
	du := make([]float64, n-1)
	b := make([]float64, n)

	d[0], d[n-1] = 1, 1 // natural boundary: zero curvature at the ends
	for i := 1; i < n-1; i++ {
		dl[i-1] = h[i-1]
		d[i] = 2 * (h[i-1] + h[i])
		du[i] = h[i]
		b[i] = 6 * ((s.y[i+1]-s.y[i])/h[i] - (s.y[i]-s.y[i-1])/h[i-1])
	}

	tri := mat.NewTridiag(n, dl, d, du)
	var sol mat.VecDense
	if err := tri.SolveVecTo(&sol, false, mat.NewVecDense(n, b)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s.m[i] = sol.AtVec(i)
	}
	return nil
}

// At evaluates the spline at t. Outside the fitted range the nearest end
// segment's polynomial is evaluated, extrapolating the series.
func (s *Spline) At(t float64) float64 {
	n := len(s.x)
	j := sort.SearchFloat64s(s.x, t) - 1
	if j < 0 {
		j = 0
	}
	if j > n-2 {
		j = n - 2
	}

	h := s.x[j+1] - s.x[j]
	a := s.x[j+1] - t
	b := t - s.x[j]
	return (s.m[j]*a*a*a+s.m[j+1]*b*b*b)/(6*h) +
		(s.y[j]/h-s.m[j]*h/6)*a +
		(s.y[j+1]/h-s.m[j+1]*h/6)*b
}

// Eval evaluates the spline at every point of ts.
func (s *Spline) Eval(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = s.At(t)
	}
	return out
}
