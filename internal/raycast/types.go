// Package raycast finds where rays first strike solid cells of an occupancy
// grid by walking the grid lines they cross.
package raycast

import (
	"math"

	"github.com/samdwyer/gridcaster/internal/grid"
)

// Grid is the read-only view of an occupancy grid a ray is cast against.
// *grid.Grid satisfies it.
type Grid interface {
	Width() int
	Height() int
	CellSize() float64
	Get(x, y int) (int, error)
}

// Point is a position in world coordinates. Y grows downward.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Side tells which family of grid lines a ray crossed to enter the hit cell.
type Side int

const (
	// SideNone means the ray started inside the hit cell.
	SideNone Side = iota
	// SideVertical is a crossing of a line x = k*cellSize.
	SideVertical
	// SideHorizontal is a crossing of a line y = k*cellSize.
	SideHorizontal
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SideVertical:
		return "vertical"
	case SideHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Result is the outcome of casting one ray.
type Result struct {
	Origin Point
	Angle  float64 // Normalized to [0, 360)

	Hit      bool
	HitPoint Point     // Valid only if Hit
	HitCell  grid.Cell // Valid only if Hit
	HitValue int       // Value of the hit cell
	Side     Side

	// Distance from Origin to HitPoint, +Inf if nothing was hit.
	Distance float64

	// End is HitPoint, or where the ray leaves the grid when nothing was hit.
	End Point

	// Crossings in the order the ray met them, including the hit crossing.
	HorizontalCrossings []Point
	VerticalCrossings   []Point
}

// Length returns how far the ray travelled before stopping.
func (r Result) Length() float64 {
	return r.Origin.Dist(r.End)
}
