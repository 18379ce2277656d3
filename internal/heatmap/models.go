// Package heatmap implements the alignment-and-ordering pipeline: it takes a
// batch of parsed measurement series with inconsistent sampling, resamples
// them onto a shared x-grid by cubic-spline interpolation, optionally
// log-compresses and similarity-orders them, and assembles the result into a
// single intensity matrix ready for rendering.
package heatmap

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ScaleMode selects the intensity transform applied before resampling.
type ScaleMode string

const (
	ScaleLinear ScaleMode = "linear"
	ScaleLog    ScaleMode = "log"
)

// ParseScaleMode validates a user-supplied scale mode string.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch ScaleMode(s) {
	case ScaleLinear, ScaleLog:
		return ScaleMode(s), nil
	}
	return "", fmt.Errorf("unknown scale mode %q (want linear or log)", s)
}

// SortMode selects the ordering of series in the assembled matrix.
type SortMode string

const (
	// SortNone keeps the upload order.
	SortNone SortMode = "None"
	// SortFile follows the label table's order; files the table does not
	// list are not processed. Without a table this degrades to SortNone.
	SortFile SortMode = "File"
	// SortSimilarity reorders the finished matrix by aggregate pairwise
	// Euclidean distance.
	SortSimilarity SortMode = "Similarity"
)

// ParseSortMode validates a user-supplied sort mode string.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortNone, SortFile, SortSimilarity:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want None, File or Similarity)", s)
}

// InputFile is one uploaded measurement file, fully buffered by the caller.
type InputFile struct {
	Name string
	Data []byte
}

// Params are the scalar knobs of a pipeline run.
type Params struct {
	ColX  string    // requested x column name, "" for first column
	ColY  string    // requested y column name, "" for second column
	Step  float64   // x-grid step size, must be positive
	Scale ScaleMode
	Sort  SortMode
}

// Result is the assembled intensity matrix with its axis metadata.
// Every row has length len(Grid.Points).
type Result struct {
	Labels   []string
	Rows     [][]float64
	Grid     *Grid
	Warnings []string // per-file skip diagnostics, in processing order
}

// Matrix returns the intensity data as a dense matrix, one series per row.
func (r *Result) Matrix() *mat.Dense {
	nRows := len(r.Rows)
	nCols := len(r.Grid.Points)
	data := make([]float64, 0, nRows*nCols)
	for _, row := range r.Rows {
		data = append(data, row...)
	}
	return mat.NewDense(nRows, nCols, data)
}

// ErrEmptyResult is the terminal failure of a batch in which no file yielded
// a usable aligned series.
var ErrEmptyResult = errors.New("no valid data found in the uploaded files")
