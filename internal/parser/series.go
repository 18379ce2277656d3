package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Measurement files are plain text: whitespace-delimited numeric records,
// with optional annotation lines starting with "#" or "'". When a file
// carries exactly one annotation line it is treated as a column-name header;
// any other count means the data rows are accessed positionally.

func isAnnotationLine(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "'")
}

// headerNames strips the comment marker from a header line and splits the
// remainder into column names.
func headerNames(line string) []string {
	trimmed := strings.TrimLeft(line, "#'")
	return strings.Fields(strings.TrimSpace(trimmed))
}

// classifyLines splits raw content into annotation lines and non-empty data
// lines, preserving order.
func classifyLines(content string) (annotations, data []string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if isAnnotationLine(line) {
			annotations = append(annotations, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		data = append(data, line)
	}
	return annotations, data
}

// ResolveColumns maps the requested x/y column names onto concrete indices.
// An empty or unknown name falls back to the first column for x and the
// second for y.
func ResolveColumns(names []string, colX, colY string) Columns {
	cols := Columns{X: 0, Y: 1, Names: names}
	for i, n := range names {
		if colX != "" && n == colX {
			cols.X = i
		}
		if colY != "" && n == colY {
			cols.Y = i
		}
	}
	return cols
}

// extractColumn pulls column idx out of the tokenized rows as floats. Rows
// too short to contain the column are passed over; a non-numeric cell is a
// structural failure for the whole file.
func extractColumn(rows [][]string, idx int) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for rowNum, row := range rows {
		if idx >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d column %d: cannot convert %q to float",
				ErrStructuralParse, rowNum+1, idx+1, row[idx])
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseSeries turns one measurement file's content into a RawSeries using the
// requested x/y columns. colX and colY may be empty, in which case the first
// two columns are used.
func ParseSeries(name string, content []byte, colX, colY string) (*RawSeries, error) {
	annotations, data := classifyLines(string(content))

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data lines", ErrStructuralParse)
	}

	rows := make([][]string, len(data))
	for i, line := range data {
		rows[i] = strings.Fields(line)
	}

	// Column count is the widest row, not the first one: a leading short row
	// still leaves a usable two-column frame.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 columns", ErrStructuralParse)
	}

	var names []string
	if len(annotations) == 1 {
		names = headerNames(annotations[0])
	}
	cols := ResolveColumns(names, colX, colY)

	xs, err := extractColumn(rows, cols.X)
	if err != nil {
		return nil, err
	}
	ys, err := extractColumn(rows, cols.Y)
	if err != nil {
		return nil, err
	}

	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values vs %d y values", ErrShapeMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 data rows, got %d", ErrStructuralParse, len(xs))
	}

	return &RawSeries{Name: name, X: xs, Y: ys}, nil
}
