// Package grid provides the occupancy grid that rays are cast against.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// Default grid dimensions
	DefaultWidth    = 15
	DefaultHeight   = 10
	DefaultCellSize = 10.0

	// Empty is the value of a cell nothing can collide with.
	Empty = 0
)

// Cell is an integer cell coordinate.
type Cell struct {
	X, Y int
}

// Grid is a fixed-size map of cell values. Zero means empty, any other value
// is solid and may encode a material.
type Grid struct {
	width    int
	height   int
	cellSize float64
	cells    [][]int
}

// New creates an empty grid of width x height cells, each cellSize world
// units across.
func New(width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrDegenerateGrid, width, height)
	}
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrDegenerateGrid, cellSize)
	}

	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
	}

	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    cells,
	}, nil
}

// MustNew is New for sizes known to be valid, panicking on error.
func MustNew(width, height int, cellSize float64) *Grid {
	g, err := New(width, height, cellSize)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the world-space edge length of one cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Bounds returns the world-space extent of the grid.
func (g *Grid) Bounds() (float64, float64) {
	return float64(g.width) * g.cellSize, float64(g.height) * g.cellSize
}

// Diagonal returns the world-space length of the grid's diagonal.
func (g *Grid) Diagonal() float64 {
	w, h := g.Bounds()
	return math.Hypot(w, h)
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the value of the cell at (x, y).
func (g *Grid) Get(x, y int) (int, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return g.cells[y][x], nil
}

// Solid reports whether (x, y) is inside the grid and non-empty.
func (g *Grid) Solid(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y][x] != Empty
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y, value int) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[y][x] = value
	return nil
}

// Toggle flips the cell at (x, y) between empty and 1 and returns the new
// value. Any solid value toggles to empty.
func (g *Grid) Toggle(x, y int) (int, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	if g.cells[y][x] == Empty {
		g.cells[y][x] = 1
	} else {
		g.cells[y][x] = Empty
	}
	return g.cells[y][x], nil
}

// SetLine writes length consecutive cells starting at (x, y) along the given
// orientation. Nothing is written unless every cell of the line fits.
func (g *Grid) SetLine(x, y, length int, o Orientation, value int) error {
	dx, dy, err := o.delta()
	if err != nil {
		return err
	}
	if length < 0 {
		return fmt.Errorf("%w: negative line length %d", ErrOutOfBounds, length)
	}
	if length == 0 {
		return nil
	}

	if err := g.check(x, y); err != nil {
		return err
	}
	if err := g.check(x+dx*(length-1), y+dy*(length-1)); err != nil {
		return err
	}

	for i := 0; i < length; i++ {
		g.cells[y+dy*i][x+dx*i] = value
	}
	return nil
}

// SetBlock fills the width x height rectangle whose top-left cell is (x, y).
// The whole rectangle is validated before any cell is written.
func (g *Grid) SetBlock(x, y, width, height, value int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative block size %dx%d", ErrOutOfBounds, width, height)
	}
	if width == 0 || height == 0 {
		return nil
	}
	if err := g.check(x, y); err != nil {
		return err
	}
	if err := g.check(x+width-1, y+height-1); err != nil {
		return err
	}

	for row := 0; row < height; row++ {
		if err := g.SetLine(x, y+row, width, Horizontal, value); err != nil {
			return err
		}
	}
	return nil
}

// SetBorder sets the outermost ring of cells to value.
func (g *Grid) SetBorder(value int) {
	// The extents always fit, so the errors can't happen.
	_ = g.SetLine(0, 0, g.width, Horizontal, value)
	_ = g.SetLine(0, g.height-1, g.width, Horizontal, value)
	_ = g.SetLine(0, 0, g.height, Vertical, value)
	_ = g.SetLine(g.width-1, 0, g.height, Vertical, value)
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Empty
		}
	}
}

// CellAt returns the cell containing the world point (x, y) and whether that
// point lies inside the grid.
func (g *Grid) CellAt(x, y float64) (Cell, bool) {
	c := Cell{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
	return c, g.InBounds(c.X, c.Y)
}

// Cells returns a copy of the cell values indexed [y][x].
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.height)
	for y := range g.cells {
		out[y] = append([]int(nil), g.cells[y]...)
	}
	return out
}

// Clone returns an independent copy of the grid. Casting against a clone is
// safe while the original is being edited.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:    g.width,
		height:   g.height,
		cellSize: g.cellSize,
		cells:    g.Cells(),
	}
}

// Count returns the number of cells holding value.
func (g *Grid) Count(value int) int {
	n := 0
	for y := range g.cells {
		for _, v := range g.cells[y] {
			if v == value {
				n++
			}
		}
	}
	return n
}

// String renders the grid as rows of values separated by two spaces.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		for x, v := range row {
			if x > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(strconv.Itoa(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// check returns an ErrOutOfBounds error when (x, y) is outside the grid.
func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return nil
}
