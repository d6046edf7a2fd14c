package raycast

import (
	"fmt"
	"math"

	"github.com/samdwyer/gridcaster/internal/grid"
)

// Caster casts rays against a grid. It keeps no state between casts, so one
// Caster may be shared by any number of goroutines.
type Caster struct {
	// RecordCrossings keeps every grid-line crossing in the Result. Turn it
	// off when only the hit matters.
	RecordCrossings bool

	// MaxDistance limits how far a ray travels. Zero means the grid's
	// diagonal, the longest path through the grid.
	MaxDistance float64
}

// NewCaster returns a Caster that records crossings and is limited only by
// the grid's size.
func NewCaster() *Caster {
	return &Caster{RecordCrossings: true}
}

var defaultCaster = NewCaster()

// Cast casts a ray with the default Caster.
func Cast(g Grid, origin Point, angle float64) (Result, error) {
	return defaultCaster.Cast(g, origin, angle)
}

// CastFan casts a fan of rays with the default Caster.
func CastFan(g Grid, origin Point, start, step float64, count int) ([]Result, error) {
	return defaultCaster.CastFan(g, origin, start, step, count)
}

// Cast finds the first solid cell the ray from origin at angle degrees
// enters. Missing everything is not an error; the Result reports Hit false.
func (c *Caster) Cast(g Grid, origin Point, angle float64) (Result, error) {
	a, err := NormalizeAngle(angle)
	if err != nil {
		return Result{}, err
	}
	tr, err := c.newTraversal(g, origin, a)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Origin:   origin,
		Angle:    a,
		Distance: math.Inf(1),
		End:      origin,
	}

	w, h := float64(tr.size[axisX])*tr.cell, float64(tr.size[axisY])*tr.cell
	// Written so that a NaN coordinate also counts as outside.
	if !(origin.X >= 0 && origin.X <= w && origin.Y >= 0 && origin.Y <= h) {
		return res, nil
	}

	// A ray starting inside a solid cell hits it immediately.
	ox := cellIndex(origin.X, tr.dir[axisX], tr.cell)
	oy := cellIndex(origin.Y, tr.dir[axisY], tr.cell)
	if ox >= 0 && ox < tr.size[axisX] && oy >= 0 && oy < tr.size[axisY] {
		v, err := g.Get(ox, oy)
		if err != nil {
			return Result{}, err
		}
		if v != grid.Empty {
			res.Hit = true
			res.HitPoint = origin
			res.HitCell = grid.Cell{X: ox, Y: oy}
			res.HitValue = v
			res.Side = SideNone
			res.Distance = 0
			return res, nil
		}
	}

	if c.RecordCrossings {
		res.HorizontalCrossings = make([]Point, 0, tr.size[axisY])
		res.VerticalCrossings = make([]Point, 0, tr.size[axisX])
	}

	vertical := newFamily(tr, axisX)
	horizontal := newFamily(tr, axisY)

	for {
		v, vok := vertical.current()
		hz, hok := horizontal.current()
		if !vok && !hok {
			break
		}

		next, fam := hz, horizontal
		if vok && (!hok || v.t <= hz.t) {
			next, fam = v, vertical
		}

		if c.RecordCrossings {
			if next.side == SideVertical {
				res.VerticalCrossings = append(res.VerticalCrossings, next.point)
			} else {
				res.HorizontalCrossings = append(res.HorizontalCrossings, next.point)
			}
		}

		value, err := g.Get(next.cell.X, next.cell.Y)
		if err != nil {
			return Result{}, err
		}
		if value != grid.Empty {
			res.Hit = true
			res.HitPoint = next.point
			res.HitCell = next.cell
			res.HitValue = value
			res.Side = next.side
			res.Distance = next.t
			res.End = next.point
			return res, nil
		}

		fam.advance()
	}

	res.End = tr.exitPoint()
	return res, nil
}

// CastFan casts count rays from origin at start, start+step, ...
// start+(count-1)*step degrees. Each ray is cast independently.
func (c *Caster) CastFan(g Grid, origin Point, start, step float64, count int) ([]Result, error) {
	if count <= 0 {
		return []Result{}, nil
	}
	results := make([]Result, count)
	for i := range results {
		r, err := c.Cast(g, origin, start+float64(i)*step)
		if err != nil {
			return nil, fmt.Errorf("ray %d: %w", i, err)
		}
		results[i] = r
	}
	return results, nil
}

func (c *Caster) newTraversal(g Grid, origin Point, angle float64) (*traversal, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrDegenerateGrid)
	}
	cell := g.CellSize()
	if g.Width() <= 0 || g.Height() <= 0 || !(cell > 0) || math.IsInf(cell, 0) {
		return nil, fmt.Errorf("%w: %dx%d cells of size %v", grid.ErrDegenerateGrid, g.Width(), g.Height(), cell)
	}

	dx, dy := Direction(angle)
	maxDist := c.MaxDistance
	if maxDist <= 0 {
		maxDist = math.Hypot(float64(g.Width())*cell, float64(g.Height())*cell)
	}

	return &traversal{
		origin:  [2]float64{origin.X, origin.Y},
		dir:     [2]float64{dx, dy},
		size:    [2]int{g.Width(), g.Height()},
		cell:    cell,
		maxDist: maxDist * (1 + lineEpsilon),
	}, nil
}
