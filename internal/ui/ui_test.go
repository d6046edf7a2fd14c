package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/raycast"
)

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(80, 20)
	t.Cleanup(screen.Close)
	return screen
}

// boxGrid is a 4x3 grid of 10-unit cells whose only empty cells are (1,1)
// and (2,1).
func boxGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(4, 3, 10)
	require.NoError(t, err)
	g.SetBorder(1)
	return g
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex())

	c, err = ParseHexColor("00ff00")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", c.Hex())

	for _, bad := range []string{"", "xyz", "#12345", "#GGGGGG"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, defaultEmpty, p.Color(0))
	assert.Equal(t, defaultSolid, p.Color(1))
	assert.Equal(t, defaultSolid, p.Color(7))

	p, err := NewPalette(map[int]string{0: "#000000", 3: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "#000000", p.Color(0).Hex())
	assert.Equal(t, "#ff0000", p.Color(3).Hex())
	assert.Equal(t, defaultSolid, p.Color(1))

	_, bg, _ := p.Style(3).Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg)

	_, err = NewPalette(map[int]string{2: "red"})
	assert.Error(t, err)
}

func TestFog(t *testing.T) {
	p := DefaultPalette()
	c := colorful.Color{R: 1, G: 0, B: 0}

	assert.Equal(t, c.Hex(), p.Fog(c, 0, 100).Hex())
	assert.Equal(t, c.Hex(), p.Fog(c, 50, 0).Hex())

	near := p.Fog(c, 10, 100)
	far := p.Fog(c, 100, 100)
	assert.Less(t, far.DistanceLab(defaultEmpty), near.DistanceLab(defaultEmpty))
	// Distances past the maximum fog no further.
	assert.Equal(t, far.Hex(), p.Fog(c, 500, 100).Hex())
}

func TestWorldToScreen(t *testing.T) {
	g := boxGrid(t)
	r := NewRenderer(newTestScreen(t), nil)

	sx, sy := r.WorldToScreen(g, raycast.Point{X: 15, Y: 15})
	assert.Equal(t, 3, sx)
	assert.Equal(t, 2, sy)

	sx, sy = r.WorldToScreen(g, raycast.Point{X: 0, Y: 0})
	assert.Equal(t, 0, sx)
	assert.Equal(t, 1, sy)

	// The far edges belong to the last cell.
	sx, sy = r.WorldToScreen(g, raycast.Point{X: 40, Y: 30})
	assert.Equal(t, 7, sx)
	assert.Equal(t, 3, sy)
}

func TestScreenToCell(t *testing.T) {
	g := boxGrid(t)
	r := NewRenderer(newTestScreen(t), nil)

	c, ok := r.ScreenToCell(g, 3, 2)
	assert.True(t, ok)
	assert.Equal(t, grid.Cell{X: 1, Y: 1}, c)

	c, ok = r.ScreenToCell(g, 7, 3)
	assert.True(t, ok)
	assert.Equal(t, grid.Cell{X: 3, Y: 2}, c)

	for _, pos := range [][2]int{{0, 0}, {8, 1}, {-1, 1}, {0, 4}} {
		_, ok := r.ScreenToCell(g, pos[0], pos[1])
		assert.False(t, ok, "screen %v", pos)
	}
}

func TestCellCenter(t *testing.T) {
	g := boxGrid(t)
	assert.Equal(t, raycast.Point{X: 25, Y: 15}, CellCenter(g, grid.Cell{X: 2, Y: 1}))
}

func TestRender(t *testing.T) {
	g := boxGrid(t)
	screen := newTestScreen(t)
	r := NewRenderer(screen, nil)

	origin := raycast.Point{X: 15, Y: 15}
	ray, err := raycast.Cast(g, origin, 0)
	require.NoError(t, err)
	require.True(t, ray.Hit)

	view := View{
		Grid:          g,
		Origin:        origin,
		Heading:       0,
		Rays:          []raycast.Result{ray},
		ShowGrid:      true,
		ShowCrossings: true,
		Mode:          "sweep",
		Message:       "hello",
	}
	r.Render(view)

	ch, _ := screen.Content(0, 0)
	assert.Equal(t, '[', ch, "status line")

	ch, style := screen.Content(0, 1)
	assert.Equal(t, ' ', ch)
	_, bg, _ := style.Decompose()
	assert.Equal(t, TCellColor(defaultSolid), bg, "border cell is filled")

	ch, _ = screen.Content(3, 2)
	assert.Equal(t, '@', ch)

	ch, _ = screen.Content(4, 2)
	assert.Equal(t, '|', ch, "vertical crossing at x=20")

	ch, _ = screen.Content(5, 2)
	assert.Equal(t, '.', ch)

	ch, _ = screen.Content(6, 2)
	assert.Equal(t, '*', ch, "hit on the east wall")

	ch, _ = screen.Content(0, 4)
	assert.Equal(t, 'h', ch, "message below the grid")

	view.ShowCrossings = false
	view.ShowGrid = false
	r.Render(view)

	ch, _ = screen.Content(4, 2)
	assert.Equal(t, '.', ch)

	_, style = screen.Content(0, 1)
	_, bg, _ = style.Decompose()
	assert.NotEqual(t, TCellColor(defaultSolid), bg, "grid hidden")
}
