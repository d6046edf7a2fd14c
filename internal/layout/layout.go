package layout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/telemetry"
)

var (
	// ErrInvalidLayout is returned for layouts that describe no usable grid.
	ErrInvalidLayout = errors.New("layout: invalid layout")
	// ErrChecksumMismatch is returned when a layout's cells don't match its
	// recorded checksum.
	ErrChecksumMismatch = errors.New("layout: checksum mismatch")
	// ErrUnknownLayout is returned when no embedded layout has the name.
	ErrUnknownLayout = errors.New("layout: unknown layout")
)

// Layout is the YAML form of a grid plus where the viewer starts on it.
type Layout struct {
	Name     string  `yaml:"name"`
	Width    int     `yaml:"width,omitempty"`
	Height   int     `yaml:"height,omitempty"`
	CellSize float64 `yaml:"cellSize"`

	// Edits, applied in field order: border, blocks, lines, cells.
	Border int         `yaml:"border,omitempty"`
	Blocks []Block     `yaml:"blocks,omitempty"`
	Lines  []Line      `yaml:"lines,omitempty"`
	Cells  []CellValue `yaml:"cells,omitempty"`

	// Rows is a row-major dump of every cell. When present it sets the size
	// and the starting contents before any edits.
	Rows []string `yaml:"rows,omitempty"`

	Origin  *Position      `yaml:"origin,omitempty"`
	Heading float64        `yaml:"heading,omitempty"`
	Palette map[int]string `yaml:"palette,omitempty"` // Cell value to hex colour

	// Checksum is the hex grid checksum after all edits; verified when set.
	Checksum string `yaml:"checksum,omitempty"`
}

// Block is a filled rectangle of cells.
type Block struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Value  int `yaml:"value"`
}

// Line is a run of cells along one axis.
type Line struct {
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Length      int    `yaml:"length"`
	Orientation string `yaml:"orientation"`
	Value       int    `yaml:"value"`
}

// CellValue sets a single cell.
type CellValue struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Value int `yaml:"value"`
}

// Position is a point in world coordinates.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Build creates the grid the layout describes.
func (l *Layout) Build(ctx context.Context) (*grid.Grid, error) {
	tracer := telemetry.Tracer("layout")
	_, span := tracer.Start(ctx, "layout.build")
	defer span.End()

	g, err := l.base()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := l.apply(g); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}

	sum := g.Checksum()
	if l.Checksum != "" {
		want, err := strconv.ParseUint(strings.TrimPrefix(l.Checksum, "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: layout %q checksum %q: %v", ErrInvalidLayout, l.Name, l.Checksum, err)
		}
		if want != sum {
			return nil, fmt.Errorf("%w: layout %q has %016x, cells hash to %016x", ErrChecksumMismatch, l.Name, want, sum)
		}
	}

	span.SetAttributes(
		attribute.String("layout.name", l.Name),
		attribute.Int("grid.width", g.Width()),
		attribute.Int("grid.height", g.Height()),
		attribute.Int("grid.solid_cells", g.Width()*g.Height()-g.Count(grid.Empty)),
	)
	return g, nil
}

// Start returns the viewer's starting point and heading on g, defaulting to
// the grid's centre facing along +x.
func (l *Layout) Start(g *grid.Grid) (Position, float64) {
	if l.Origin != nil {
		return *l.Origin, l.Heading
	}
	w, h := g.Bounds()
	return Position{X: w / 2, Y: h / 2}, l.Heading
}

// base returns the grid before edits: parsed from Rows, or empty.
func (l *Layout) base() (*grid.Grid, error) {
	if len(l.Rows) > 0 {
		g, err := grid.Parse(strings.Join(l.Rows, "\n"), l.CellSize)
		if err != nil {
			return nil, fmt.Errorf("%w: layout %q rows: %w", ErrInvalidLayout, l.Name, err)
		}
		if (l.Width != 0 && l.Width != g.Width()) || (l.Height != 0 && l.Height != g.Height()) {
			return nil, fmt.Errorf("%w: layout %q declares %dx%d but rows are %dx%d",
				ErrInvalidLayout, l.Name, l.Width, l.Height, g.Width(), g.Height())
		}
		return g, nil
	}

	g, err := grid.New(l.Width, l.Height, l.CellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: layout %q: %w", ErrInvalidLayout, l.Name, err)
	}
	return g, nil
}

// apply runs the layout's edits against g in order.
func (l *Layout) apply(g *grid.Grid) error {
	if l.Border != grid.Empty {
		g.SetBorder(l.Border)
	}
	for i, b := range l.Blocks {
		if err := g.SetBlock(b.X, b.Y, b.Width, b.Height, b.Value); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	for i, ln := range l.Lines {
		o, err := grid.ParseOrientation(ln.Orientation)
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if err := g.SetLine(ln.X, ln.Y, ln.Length, o, ln.Value); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	for i, c := range l.Cells {
		if err := g.Set(c.X, c.Y, c.Value); err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
	}
	return nil
}

// FromGrid captures g as a layout holding a full row dump and checksum.
func FromGrid(name string, g *grid.Grid, origin Position, heading float64, palette map[int]string) *Layout {
	rows := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	return &Layout{
		Name:     name,
		Width:    g.Width(),
		Height:   g.Height(),
		CellSize: g.CellSize(),
		Rows:     rows,
		Origin:   &origin,
		Heading:  heading,
		Palette:  palette,
		Checksum: fmt.Sprintf("%016x", g.Checksum()),
	}
}
