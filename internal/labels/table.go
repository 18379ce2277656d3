// Package labels resolves measurement file names to display labels and an
// optional explicit plotting order, from an auxiliary label table.
package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingFilenameColumn is returned when a label table lacks the required
// "filename" column. This is a caller configuration error, not a per-file one.
var ErrMissingFilenameColumn = errors.New("label table is missing the required 'filename' column")

type entry struct {
	filename string
	label    string
	order    string
	hasOrder bool
}

// Table is a read-only filename to label mapping plus an explicit file order.
// It is built once before processing and never mutated afterwards.
type Table struct {
	labels map[string]string
	order  []string
}

// FromRecords builds a Table from an already-parsed tabular dataset. The
// header must contain a "filename" column; "label" and "order" columns are
// optional. When an order column is present, rows are sorted ascending by it
// before the file order is recorded: numerically when both values parse as
// floats, lexicographically otherwise. The sort is stable.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	fileIdx, labelIdx, orderIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "filename":
			fileIdx = i
		case "label":
			labelIdx = i
		case "order":
			orderIdx = i
		}
	}
	if fileIdx < 0 {
		return nil, ErrMissingFilenameColumn
	}

	entries := make([]entry, 0, len(rows))
	for _, row := range rows {
		if fileIdx >= len(row) {
			continue
		}
		e := entry{filename: strings.TrimSpace(row[fileIdx])}
		if e.filename == "" {
			continue
		}
		e.label = e.filename
		if labelIdx >= 0 && labelIdx < len(row) && strings.TrimSpace(row[labelIdx]) != "" {
			e.label = strings.TrimSpace(row[labelIdx])
		}
		if orderIdx >= 0 && orderIdx < len(row) {
			e.order = strings.TrimSpace(row[orderIdx])
			e.hasOrder = true
		}
		entries = append(entries, e)
	}

	if orderIdx >= 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			return orderLess(entries[i].order, entries[j].order)
		})
	}

	t := &Table{labels: make(map[string]string, len(entries))}
	for _, e := range entries {
		t.labels[e.filename] = e.label
		t.order = append(t.order, e.filename)
	}
	return t, nil
}

func orderLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

// LoadCSV reads a label table from a CSV file.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read label table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingFilenameColumn
	}
	return FromRecords(records[0], records[1:])
}

// Label returns the table's label for filename, if present.
func (t *Table) Label(filename string) (string, bool) {
	if t == nil {
		return "", false
	}
	label, ok := t.labels[filename]
	return label, ok
}

// Resolve returns the display label for filename: the table's label when the
// file is listed, the filename stem otherwise. Safe on a nil table.
func (t *Table) Resolve(filename string) string {
	if label, ok := t.Label(filename); ok {
		return label
	}
	return Stem(filename)
}

// Order returns the table-driven filename order. Empty when no table was
// supplied or the table had no rows.
func (t *Table) Order() []string {
	if t == nil {
		return nil
	}
	return t.order
}

// Stem strips the extension from a file name.
func Stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
