package viewer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/samdwyer/gridcaster/internal/config"
	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/layout"
	"github.com/samdwyer/gridcaster/internal/raycast"
)

// World is the grid being viewed and where the viewer stands on it.
type World struct {
	Name    string
	Grid    *grid.Grid
	Origin  raycast.Point
	Heading float64
	Palette map[int]string
}

// LoadWorld builds the world named by cfg: the layout file when set, else
// the embedded layout, else a bordered blank grid of the configured size.
func LoadWorld(ctx context.Context, cfg *config.Config) (*World, error) {
	var (
		l   *layout.Layout
		err error
	)
	switch {
	case cfg.LayoutFile != "":
		l, err = layout.LoadFile(cfg.LayoutFile)
	case cfg.Layout != "":
		l, err = embedded(cfg.Layout)
	default:
		l = &layout.Layout{
			Name:     "blank",
			Width:    cfg.Width,
			Height:   cfg.Height,
			CellSize: cfg.CellSize,
			Border:   1,
		}
	}
	if err != nil {
		return nil, err
	}

	g, err := l.Build(ctx)
	if err != nil {
		return nil, err
	}

	start, heading := l.Start(g)
	if !math.IsNaN(cfg.Heading) {
		heading = cfg.Heading
	}
	heading, err = raycast.NormalizeAngle(heading)
	if err != nil {
		return nil, fmt.Errorf("layout %q heading: %w", l.Name, err)
	}

	return &World{
		Name:    l.Name,
		Grid:    g,
		Origin:  raycast.Point{X: start.X, Y: start.Y},
		Heading: heading,
		Palette: l.Palette,
	}, nil
}

// embedded returns the named embedded layout.
func embedded(name string) (*layout.Layout, error) {
	reg, err := layout.LoadRegistry()
	if err != nil {
		return nil, err
	}
	l := reg.Get(name)
	if l == nil {
		return nil, fmt.Errorf("%w: %q, have %s", layout.ErrUnknownLayout, name, strings.Join(reg.Names(), ", "))
	}
	return l, nil
}

// nextLayoutName returns the embedded layout after current in name order,
// wrapping around, or the first one when current is not embedded.
func nextLayoutName(current string) (string, error) {
	reg, err := layout.LoadRegistry()
	if err != nil {
		return "", err
	}
	names := reg.Names()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)], nil
		}
	}
	return names[0], nil
}

// Layout captures the world's current state for saving.
func (w *World) Layout() *layout.Layout {
	return layout.FromGrid(w.Name, w.Grid, layout.Position{X: w.Origin.X, Y: w.Origin.Y}, w.Heading, w.Palette)
}
