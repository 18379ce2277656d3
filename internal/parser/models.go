package parser

import "errors"

// RawSeries holds one measurement file reduced to its x/y columns.
// X and Y always have equal length; the parser rejects anything else.
type RawSeries struct {
	Name string // source file name
	X    []float64
	Y    []float64
}

// Columns is the result of resolving the requested x/y column names against
// a file's actual layout.
type Columns struct {
	X     int
	Y     int
	Names []string // empty when the file has no header row
}

var (
	// ErrStructuralParse marks a file that cannot supply two numeric columns.
	ErrStructuralParse = errors.New("structural parse failure")

	// ErrShapeMismatch marks a file whose extracted x and y columns ended up
	// with different lengths (ragged rows).
	ErrShapeMismatch = errors.New("x and y lengths do not match")
)
