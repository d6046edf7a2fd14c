package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/raycast"
)

const (
	// Terminal columns per grid cell; character cells are about twice as
	// tall as they are wide.
	cellColumns = 2
	// Rows above the grid used by the status line.
	headerRows = 1
)

var (
	rayColor  = colorful.Color{R: 0.95, G: 0.77, B: 0.06}
	hitColor  = colorful.Color{R: 0.91, G: 0.30, B: 0.24}
	originFg  = tcell.ColorYellow
	headerFg  = tcell.ColorWhite
	messageFg = tcell.ColorGray
)

// View is everything the renderer draws for one frame.
type View struct {
	Grid    *grid.Grid
	Origin  raycast.Point
	Heading float64
	Rays    []raycast.Result

	ShowGrid      bool
	ShowCrossings bool
	Mode          string
	Message       string
}

// Renderer handles drawing the grid and rays to the screen.
type Renderer struct {
	screen  *Screen
	palette *Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *Palette) *Renderer {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Renderer{screen: screen, palette: palette}
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	r.renderHeader(v)
	if v.ShowGrid {
		r.renderCells(v.Grid)
	}
	for _, ray := range v.Rays {
		r.renderRay(v.Grid, ray, v.ShowCrossings)
	}

	ox, oy := r.WorldToScreen(v.Grid, v.Origin)
	r.screen.SetContent(ox, oy, '@', r.cellStyle(v.Grid, v.Origin).Foreground(originFg).Bold(true))

	r.RenderMessage(v.Message, headerRows+v.Grid.Height())
	r.screen.Show()
}

// RenderMessage displays a message on the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(messageFg)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}

// WorldToScreen maps a world point to the terminal cell it is drawn in.
func (r *Renderer) WorldToScreen(g *grid.Grid, p raycast.Point) (int, int) {
	cs := g.CellSize()
	sx := int(math.Floor(p.X / cs * cellColumns))
	sy := headerRows + int(math.Floor(p.Y/cs))
	// Points on the far edges belong to the last column/row.
	if w, _ := g.Bounds(); p.X >= w {
		sx = g.Width()*cellColumns - 1
	}
	if _, h := g.Bounds(); p.Y >= h {
		sy = headerRows + g.Height() - 1
	}
	return sx, sy
}

// ScreenToCell maps a terminal position, such as a mouse click, to the grid
// cell drawn there.
func (r *Renderer) ScreenToCell(g *grid.Grid, sx, sy int) (grid.Cell, bool) {
	if sx < 0 || sy < headerRows {
		return grid.Cell{}, false
	}
	c := grid.Cell{X: sx / cellColumns, Y: sy - headerRows}
	return c, g.InBounds(c.X, c.Y)
}

// CellCenter returns the world point at the centre of a cell.
func CellCenter(g *grid.Grid, c grid.Cell) raycast.Point {
	cs := g.CellSize()
	return raycast.Point{X: (float64(c.X) + 0.5) * cs, Y: (float64(c.Y) + 0.5) * cs}
}

func (r *Renderer) renderHeader(v View) {
	gridLabel := "Hide Grid"
	if !v.ShowGrid {
		gridLabel = "Show Grid"
	}
	hits := 0
	for _, ray := range v.Rays {
		if ray.Hit {
			hits++
		}
	}
	header := fmt.Sprintf("[g] %s  [c] crossings  [e] %s  pos (%.1f, %.1f)  heading %.1f  hits %d/%d",
		gridLabel, v.Mode, v.Origin.X, v.Origin.Y, v.Heading, hits, len(v.Rays))

	style := tcell.StyleDefault.Foreground(headerFg).Bold(true)
	for i, ch := range []rune(header) {
		r.screen.SetContent(i, 0, ch, style)
	}
}

func (r *Renderer) renderCells(g *grid.Grid) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			value, _ := g.Get(x, y)
			style := r.palette.Style(value)
			for i := 0; i < cellColumns; i++ {
				r.screen.SetContent(x*cellColumns+i, headerRows+y, ' ', style)
			}
		}
	}
}

// renderRay draws the ray's path from its origin to where it stopped,
// then its crossings and hit on top.
func (r *Renderer) renderRay(g *grid.Grid, ray raycast.Result, crossings bool) {
	length := ray.Length()
	step := g.CellSize() / (2 * cellColumns)
	fg := TCellColor(rayColor)

	for s := step; s < length; s += step {
		p := raycast.Point{
			X: ray.Origin.X + (ray.End.X-ray.Origin.X)*s/length,
			Y: ray.Origin.Y + (ray.End.Y-ray.Origin.Y)*s/length,
		}
		sx, sy := r.WorldToScreen(g, p)
		r.screen.SetContent(sx, sy, '.', r.cellStyle(g, p).Foreground(fg))
	}

	if crossings {
		for _, p := range ray.HorizontalCrossings {
			sx, sy := r.WorldToScreen(g, p)
			r.screen.SetContent(sx, sy, '-', r.cellStyle(g, p).Foreground(fg))
		}
		for _, p := range ray.VerticalCrossings {
			sx, sy := r.WorldToScreen(g, p)
			r.screen.SetContent(sx, sy, '|', r.cellStyle(g, p).Foreground(fg))
		}
	}

	if ray.Hit {
		shade := r.palette.Fog(hitColor, ray.Distance, g.Diagonal())
		sx, sy := r.WorldToScreen(g, ray.HitPoint)
		style := r.palette.Style(ray.HitValue).Foreground(TCellColor(shade)).Bold(true)
		r.screen.SetContent(sx, sy, '*', style)
	}
}

// cellStyle returns the background style of the cell under world point p.
func (r *Renderer) cellStyle(g *grid.Grid, p raycast.Point) tcell.Style {
	c, ok := g.CellAt(p.X, p.Y)
	if !ok {
		return r.palette.Style(grid.Empty)
	}
	value, _ := g.Get(c.X, c.Y)
	return r.palette.Style(value)
}
