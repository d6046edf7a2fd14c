package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	defaultEmpty = colorful.Color{R: 0.11, G: 0.11, B: 0.11}
	defaultSolid = colorful.Color{R: 0.82, G: 0.82, B: 0.82}
)

// ParseHexColor converts a hex color string ("#FF0000" or "FF0000") to a
// colorful.Color.
func ParseHexColor(hex string) (colorful.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// TCellColor converts c to the nearest terminal true color.
func TCellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Palette maps cell values to display colors. Values without an entry draw
// as the empty color when zero and the solid color otherwise.
type Palette struct {
	colors map[int]colorful.Color
	empty  colorful.Color
	solid  colorful.Color
}

// DefaultPalette returns a dark floor with light gray walls.
func DefaultPalette() *Palette {
	return &Palette{colors: map[int]colorful.Color{}, empty: defaultEmpty, solid: defaultSolid}
}

// NewPalette parses a value-to-hex table such as a layout's palette.
func NewPalette(hex map[int]string) (*Palette, error) {
	p := DefaultPalette()
	for value, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette value %d: %w", value, err)
		}
		p.colors[value] = c
	}
	if c, ok := p.colors[0]; ok {
		p.empty = c
	}
	return p, nil
}

// Color returns the display color for a cell value.
func (p *Palette) Color(value int) colorful.Color {
	if c, ok := p.colors[value]; ok {
		return c
	}
	if value == 0 {
		return p.empty
	}
	return p.solid
}

// Style returns the style a cell of the given value is filled with.
func (p *Palette) Style(value int) tcell.Style {
	return tcell.StyleDefault.Background(TCellColor(p.Color(value)))
}

// Fog blends c towards the empty color as distance approaches maxDistance,
// so far hits fade into the floor.
func (p *Palette) Fog(c colorful.Color, distance, maxDistance float64) colorful.Color {
	if maxDistance <= 0 {
		return c
	}
	t := distance / maxDistance
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return c.BlendLab(p.empty, t*0.8).Clamped()
}
