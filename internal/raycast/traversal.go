package raycast

import (
	"math"

	"github.com/samdwyer/gridcaster/internal/grid"
)

// lineEpsilon is the distance, in cells, within which a coordinate is taken
// to lie exactly on a grid line.
const lineEpsilon = 1e-9

const (
	axisX = 0
	axisY = 1
)

// traversal holds what both line families of one cast share.
type traversal struct {
	origin  [2]float64
	dir     [2]float64
	size    [2]int
	cell    float64
	maxDist float64
}

// crossing is a point where the ray meets a grid line, together with the
// cell it enters there.
type crossing struct {
	t     float64
	point Point
	cell  grid.Cell
	side  Side
}

// family walks the crossings of one set of parallel grid lines: the lines
// x = k*cell when axis is axisX, or y = k*cell when axis is axisY.
type family struct {
	tr       *traversal
	axis     int
	side     Side
	step     int // +1 or -1 along axis
	line     int // index k of the next line to cross
	steps    int
	maxSteps int
	done     bool
}

// newFamily prepares the walk along axis. A ray with no motion along axis
// never crosses these lines, so the family starts out done.
func newFamily(tr *traversal, axis int) *family {
	f := &family{
		tr:       tr,
		axis:     axis,
		side:     SideVertical,
		maxSteps: tr.size[axis] + 1,
	}
	if axis == axisY {
		f.side = SideHorizontal
	}

	d := tr.dir[axis]
	if d == 0 {
		f.done = true
		return f
	}

	// First line strictly ahead of the origin.
	pos := tr.origin[axis] / tr.cell
	if d > 0 {
		f.step = 1
		f.line = int(math.Floor(pos)) + 1
	} else {
		f.step = -1
		f.line = int(math.Ceil(pos)) - 1
	}
	return f
}

// current returns the crossing the family would report next, or false once
// the ray has left the grid or run past the distance bound.
func (f *family) current() (crossing, bool) {
	if f.done {
		return crossing{}, false
	}
	tr := f.tr
	a, b := f.axis, 1-f.axis

	entered := f.line
	if f.step < 0 {
		entered = f.line - 1
	}
	if entered < 0 || entered >= tr.size[a] || f.steps > f.maxSteps {
		f.done = true
		return crossing{}, false
	}

	// Recomputed from the line index so error doesn't accumulate per step.
	lineAt := float64(f.line) * tr.cell
	t := (lineAt - tr.origin[a]) / tr.dir[a]
	if t > tr.maxDist {
		f.done = true
		return crossing{}, false
	}

	other := snapToLine(tr.origin[b]+t*tr.dir[b], tr.cell)
	otherIndex := cellIndex(other, tr.dir[b], tr.cell)
	if otherIndex < 0 || otherIndex >= tr.size[b] {
		f.done = true
		return crossing{}, false
	}

	var p [2]float64
	var c [2]int
	p[a], p[b] = lineAt, other
	c[a], c[b] = entered, otherIndex

	return crossing{
		t:     t,
		point: Point{X: p[axisX], Y: p[axisY]},
		cell:  grid.Cell{X: c[axisX], Y: c[axisY]},
		side:  f.side,
	}, true
}

// advance moves on to the next line.
func (f *family) advance() {
	f.line += f.step
	f.steps++
}

// cellIndex returns the index of the cell holding coordinate v for a ray
// moving with direction component d. A coordinate on a grid line belongs to
// the cell the ray is moving into.
func cellIndex(v, d, cell float64) int {
	v = snapToLine(v, cell)
	if d < 0 {
		return int(math.Ceil(v/cell)) - 1
	}
	return int(math.Floor(v / cell))
}

// snapToLine moves v onto the nearest grid line if it is within lineEpsilon
// cells of it.
func snapToLine(v, cell float64) float64 {
	r := math.Round(v/cell) * cell
	if math.Abs(v-r) <= lineEpsilon*cell {
		return r
	}
	return v
}

// exitPoint returns where the ray leaves the grid's bounding box.
func (tr *traversal) exitPoint() Point {
	tExit := math.Inf(1)
	for axis := axisX; axis <= axisY; axis++ {
		d := tr.dir[axis]
		if d == 0 {
			continue
		}
		bound := 0.0
		if d > 0 {
			bound = float64(tr.size[axis]) * tr.cell
		}
		if t := (bound - tr.origin[axis]) / d; t < tExit {
			tExit = t
		}
	}
	if tExit < 0 || math.IsInf(tExit, 1) {
		tExit = 0
	}
	return Point{
		X: snapToLine(tr.origin[axisX]+tExit*tr.dir[axisX], tr.cell),
		Y: snapToLine(tr.origin[axisY]+tExit*tr.dir[axisY], tr.cell),
	}
}
