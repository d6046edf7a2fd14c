package grid

import "errors"

var (
	// ErrOutOfBounds is returned for any read or write outside the grid.
	ErrOutOfBounds = errors.New("grid: out of bounds")
	// ErrDegenerateGrid is returned when a grid would have no cells or no size.
	ErrDegenerateGrid = errors.New("grid: degenerate grid")
	// ErrInvalidOrientation is returned for orientations other than
	// Horizontal and Vertical.
	ErrInvalidOrientation = errors.New("grid: invalid orientation")
)
