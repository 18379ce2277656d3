package heatmap

import (
	"fmt"

	"debyeplot/internal/labels"
	"debyeplot/internal/parser"

	"gonum.org/v1/gonum/floats"
)

// Assembler runs the per-file pipeline (parse, scale, align) over a batch and
// accumulates the intensity matrix. The shared grid is frozen from the first
// file that survives the whole per-file pipeline; it is owned by the
// assembler, never package state. A file that fails any precondition is
// skipped with a diagnostic and the batch continues.
type Assembler struct {
	params Params
	table  *labels.Table

	grid      *Grid
	rowLabels []string
	rows      [][]float64
	rowIndex  map[string]int
	warnings  []string
}

// NewAssembler creates an assembler for one batch run. table may be nil when
// no label table was supplied.
func NewAssembler(params Params, table *labels.Table) *Assembler {
	return &Assembler{
		params:   params,
		table:    table,
		rowIndex: make(map[string]int),
	}
}

// Warnings returns the per-file skip diagnostics collected so far. They stay
// available even when Run fails with ErrEmptyResult.
func (a *Assembler) Warnings() []string {
	return a.warnings
}

// Run processes the batch and returns the assembled matrix. It fails only
// when the batch produced no usable series at all, or when the step size is
// invalid; every per-file failure is reported through Warnings and skipped.
func (a *Assembler) Run(files []InputFile) (*Result, error) {
	if a.params.Step <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %g", a.params.Step)
	}

	for _, f := range a.orderFiles(files) {
		if err := a.addFile(f); err != nil {
			a.warn("skipping %s: %v", f.Name, err)
		}
	}

	if len(a.rows) == 0 {
		return nil, ErrEmptyResult
	}

	if a.params.Sort == SortSimilarity {
		a.applySimilarityOrder()
	}

	return &Result{
		Labels:   a.rowLabels,
		Rows:     a.rows,
		Grid:     a.grid,
		Warnings: a.warnings,
	}, nil
}

// orderFiles decides the processing order. File mode follows the label
// table's order and only processes files the table lists; with no table (or
// an empty one) it falls back to upload order. A filename uploaded twice
// resolves to the last upload.
func (a *Assembler) orderFiles(files []InputFile) []InputFile {
	order := a.table.Order()
	if a.params.Sort != SortFile || len(order) == 0 {
		return files
	}

	byName := make(map[string]InputFile, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}

	ordered := make([]InputFile, 0, len(files))
	for _, name := range order {
		if f, ok := byName[name]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// addFile runs one file through parse, scale and align, and inserts the
// aligned series under its resolved label. A duplicate label overwrites the
// earlier row in place.
func (a *Assembler) addFile(f InputFile) error {
	raw, err := parser.ParseSeries(f.Name, f.Data, a.params.ColX, a.params.ColY)
	if err != nil {
		return err
	}

	y := ApplyScale(a.params.Scale, raw.Y)

	grid := a.grid
	if grid == nil {
		grid = NewGrid(floats.Min(raw.X), floats.Max(raw.X), a.params.Step)
	}

	spline, err := NewSpline(raw.X, y)
	if err != nil {
		return err
	}
	aligned := spline.Eval(grid.Points)

	// Commit the grid only once a series has actually made it through.
	a.grid = grid

	label := a.table.Resolve(f.Name)
	if idx, ok := a.rowIndex[label]; ok {
		a.rows[idx] = aligned
		return nil
	}
	a.rowIndex[label] = len(a.rows)
	a.rowLabels = append(a.rowLabels, label)
	a.rows = append(a.rows, aligned)
	return nil
}

func (a *Assembler) applySimilarityOrder() {
	perm := SimilarityOrder(a.rows)
	rows := make([][]float64, len(perm))
	names := make([]string, len(perm))
	for dst, src := range perm {
		rows[dst] = a.rows[src]
		names[dst] = a.rowLabels[src]
	}
	a.rows = rows
	a.rowLabels = names
	for i, name := range names {
		a.rowIndex[name] = i
	}
}

func (a *Assembler) warn(format string, args ...interface{}) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}
