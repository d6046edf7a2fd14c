package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads the row-major text form produced by String. Values are
// separated by whitespace and rows by newlines; blank lines are ignored.
func Parse(text string, cellSize float64) (*Grid, error) {
	var rows [][]int
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for x, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", i+1, x+1, err)
			}
			row[x] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, expected %d",
				ErrDegenerateGrid, i+1, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDegenerateGrid)
	}

	g, err := New(len(rows[0]), len(rows), cellSize)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		copy(g.cells[y], row)
	}
	return g, nil
}
