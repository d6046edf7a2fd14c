package viewer

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/gridcaster/internal/config"
	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/raycast"
	"github.com/samdwyer/gridcaster/internal/telemetry"
	"github.com/samdwyer/gridcaster/internal/ui"
)

// castKey identifies the inputs of the last cast.
type castKey struct {
	checksum uint64
	origin   raycast.Point
	heading  float64
	state    State
}

// Viewer holds the entire viewer state.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	tracer   trace.Tracer
	screen   *ui.Screen
	renderer *ui.Renderer
	caster   *raycast.Caster
	world    *World
	state    State
	running  bool

	showGrid      bool
	showCrossings bool
	message       string

	rays     []raycast.Result
	lastCast *castKey

	// Set while the left button is held so a drag toggles only once.
	mouseDown bool
}

// New creates a viewer of world drawn on screen.
func New(cfg *config.Config, logger *zap.Logger, screen *ui.Screen, world *World) (*Viewer, error) {
	palette, err := ui.NewPalette(world.Palette)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", world.Name, err)
	}

	tracer := telemetry.NoopTracer()
	if cfg.Telemetry {
		tracer = telemetry.Tracer("viewer")
	}

	return &Viewer{
		cfg:           cfg,
		log:           logger,
		tracer:        tracer,
		screen:        screen,
		renderer:      ui.NewRenderer(screen, palette),
		caster:        raycast.NewCaster(),
		world:         world,
		state:         StateSweep,
		running:       true,
		showGrid:      true,
		showCrossings: true,
	}, nil
}

// Run executes the main loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, initSpan := v.tracer.Start(ctx, "viewer.init")
	initSpan.SetAttributes(
		attribute.String("layout.name", v.world.Name),
		attribute.Int("grid.width", v.world.Grid.Width()),
		attribute.Int("grid.height", v.world.Grid.Height()),
		attribute.Int("viewer.rays", v.cfg.Rays),
	)
	if err := v.recast(ctx); err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		return err
	}
	initSpan.End()

	v.log.Info("viewer started",
		zap.String("layout", v.world.Name),
		zap.Float64("x", v.world.Origin.X),
		zap.Float64("y", v.world.Origin.Y),
		zap.Float64("heading", v.world.Heading),
	)

	for v.running {
		v.renderer.Render(v.view())

		// Blocks until the next event.
		v.handleEvent(ctx, v.screen.PollEvent())

		if err := v.recast(ctx); err != nil {
			v.log.Error("cast failed", zap.Error(err))
			v.message = err.Error()
		}
	}

	v.log.Info("viewer stopped")
	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}

// State returns the current input mode.
func (v *Viewer) State() State { return v.state }

// World returns the world being viewed.
func (v *Viewer) World() *World { return v.world }

// Rays returns the results of the last cast.
func (v *Viewer) Rays() []raycast.Result { return v.rays }

func (v *Viewer) view() ui.View {
	return ui.View{
		Grid:          v.world.Grid,
		Origin:        v.world.Origin,
		Heading:       v.world.Heading,
		Rays:          v.rays,
		ShowGrid:      v.showGrid,
		ShowCrossings: v.showCrossings,
		Mode:          v.state.String(),
		Message:       v.message,
	}
}

// recast casts the fan again if the grid, origin, heading or mode changed
// since the last cast.
func (v *Viewer) recast(ctx context.Context) error {
	key := castKey{
		checksum: v.world.Grid.Checksum(),
		origin:   v.world.Origin,
		heading:  v.world.Heading,
		state:    v.state,
	}
	if v.lastCast != nil && *v.lastCast == key {
		return nil
	}

	count := v.cfg.Rays
	if v.state == StateEdit {
		count = 1
	}
	start, step := raycast.FieldOfView(v.world.Heading, v.cfg.FOV, count)

	rays, err := v.caster.CastFanConcurrent(ctx, v.world.Grid, v.world.Origin, start, step, count, v.cfg.Workers)
	if err != nil {
		return err
	}
	v.rays = rays
	v.lastCast = &key

	v.log.Debug("fan cast",
		zap.Int("rays", len(rays)),
		zap.Float64("start", start),
		zap.Float64("step", step),
	)
	return nil
}

// handleEvent processes a single input event.
func (v *Viewer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		v.handleMouseEvent(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.move(v.cfg.MoveStep)
	case tcell.KeyDown:
		v.move(-v.cfg.MoveStep)
	case tcell.KeyLeft:
		v.turn(-v.cfg.TurnStep)
	case tcell.KeyRight:
		v.turn(v.cfg.TurnStep)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'g':
			v.toggleGrid()
		case 'c':
			v.toggleCrossings()
		case 'e':
			v.toggleMode()
		case 'b':
			v.fillBorder()
		case 'x':
			v.clear()
		case 's':
			v.save()
		case 'n':
			v.nextLayout(ctx)
		}
	}
}

// handleMouseEvent acts once per left-button press.
func (v *Viewer) handleMouseEvent(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		v.mouseDown = false
		return
	}
	if v.mouseDown {
		return
	}
	v.mouseDown = true

	sx, sy := ev.Position()
	c, ok := v.renderer.ScreenToCell(v.world.Grid, sx, sy)
	if !ok {
		return
	}
	v.click(c)
}

// click edits the cell in edit mode and moves the origin to it otherwise.
func (v *Viewer) click(c grid.Cell) {
	if v.state == StateEdit {
		v.editCell(c)
		return
	}
	if v.world.Grid.Solid(c.X, c.Y) {
		v.message = fmt.Sprintf("cell (%d,%d) is solid", c.X, c.Y)
		return
	}
	v.world.Origin = ui.CellCenter(v.world.Grid, c)
	v.message = ""
}

// move steps the origin along the heading, refusing to leave the grid or
// enter a solid cell.
func (v *Viewer) move(distance float64) {
	dx, dy := raycast.Direction(v.world.Heading)
	next := v.world.Origin.Add(dx*distance, dy*distance)

	c, ok := v.world.Grid.CellAt(next.X, next.Y)
	if !ok {
		v.message = "edge of the grid"
		return
	}
	if v.world.Grid.Solid(c.X, c.Y) {
		v.message = fmt.Sprintf("blocked by cell (%d,%d)", c.X, c.Y)
		return
	}
	v.world.Origin = next
	v.message = ""
}

func (v *Viewer) turn(degrees float64) {
	h, err := raycast.NormalizeAngle(v.world.Heading + degrees)
	if err != nil {
		v.message = err.Error()
		return
	}
	v.world.Heading = h
}

func (v *Viewer) toggleGrid() {
	v.showGrid = !v.showGrid
	v.log.Debug("grid display toggled", zap.Bool("visible", v.showGrid))
}

func (v *Viewer) toggleCrossings() {
	v.showCrossings = !v.showCrossings
	v.log.Debug("crossings display toggled", zap.Bool("visible", v.showCrossings))
}

func (v *Viewer) toggleMode() {
	if v.state == StateSweep {
		v.state = StateEdit
	} else {
		v.state = StateSweep
	}
	v.mouseDown = false
	v.message = v.state.String() + " mode"
	v.log.Debug("mode changed", zap.Stringer("state", v.state))
}

// editCell toggles c, except for the cell the origin stands in.
func (v *Viewer) editCell(c grid.Cell) {
	if oc, ok := v.world.Grid.CellAt(v.world.Origin.X, v.world.Origin.Y); ok && oc == c {
		v.message = "cannot fill the cell you stand in"
		return
	}
	value, err := v.world.Grid.Toggle(c.X, c.Y)
	if err != nil {
		v.message = err.Error()
		return
	}
	v.message = ""
	v.log.Info("cell toggled", zap.Int("x", c.X), zap.Int("y", c.Y), zap.Int("value", value))
}

// fillBorder fills the outer ring of cells unless the origin stands on it.
func (v *Viewer) fillBorder() {
	g := v.world.Grid
	if oc, ok := g.CellAt(v.world.Origin.X, v.world.Origin.Y); ok &&
		(oc.X == 0 || oc.Y == 0 || oc.X == g.Width()-1 || oc.Y == g.Height()-1) {
		v.message = "move off the border first"
		return
	}
	g.SetBorder(1)
	v.log.Info("border filled")
}

// clear empties every cell.
func (v *Viewer) clear() {
	v.world.Grid.Clear()
	v.message = "grid cleared"
	v.log.Info("grid cleared")
}

// nextLayout replaces the world with the next embedded layout.
func (v *Viewer) nextLayout(ctx context.Context) {
	name, err := nextLayoutName(v.world.Name)
	if err != nil {
		v.message = err.Error()
		return
	}

	cfg := *v.cfg
	cfg.Layout = name
	cfg.LayoutFile = ""
	cfg.Heading = math.NaN()
	world, err := LoadWorld(ctx, &cfg)
	if err != nil {
		v.log.Error("layout load failed", zap.String("layout", name), zap.Error(err))
		v.message = err.Error()
		return
	}
	palette, err := ui.NewPalette(world.Palette)
	if err != nil {
		v.message = err.Error()
		return
	}

	v.world = world
	v.renderer = ui.NewRenderer(v.screen, palette)
	v.lastCast = nil
	v.message = "layout " + name
	v.log.Info("layout switched", zap.String("layout", name))
}

// save writes the world to the configured layout file.
func (v *Viewer) save() {
	path := v.cfg.SavePath
	if err := v.world.Layout().SaveFile(path); err != nil {
		v.log.Error("save failed", zap.String("path", path), zap.Error(err))
		v.message = err.Error()
		return
	}
	v.message = "saved " + path
	v.log.Info("layout saved", zap.String("path", path), zap.String("checksum", fmt.Sprintf("%016x", v.world.Grid.Checksum())))
}
