package main

import (
	"context"
	"fmt"
	"io"

	"github.com/samdwyer/gridcaster/internal/config"
	"github.com/samdwyer/gridcaster/internal/raycast"
	"github.com/samdwyer/gridcaster/internal/viewer"
)

// dump writes the world's grid and one cast of the configured fan to w.
func dump(ctx context.Context, w io.Writer, cfg *config.Config, world *viewer.World) error {
	g := world.Grid
	fmt.Fprintf(w, "%s: %dx%d cells of %g, checksum %016x\n", world.Name, g.Width(), g.Height(), g.CellSize(), g.Checksum())
	fmt.Fprint(w, g.String())
	fmt.Fprintf(w, "origin (%.2f, %.2f) heading %.2f\n", world.Origin.X, world.Origin.Y, world.Heading)

	start, step := raycast.FieldOfView(world.Heading, cfg.FOV, cfg.Rays)
	rays, err := raycast.NewCaster().CastFanConcurrent(ctx, g, world.Origin, start, step, cfg.Rays, cfg.Workers)
	if err != nil {
		return err
	}

	for i, r := range rays {
		if r.Hit {
			fmt.Fprintf(w, "ray %d %.2f: hit %s side of cell (%d,%d) value %d at (%.2f, %.2f), distance %.2f\n",
				i, r.Angle, r.Side, r.HitCell.X, r.HitCell.Y, r.HitValue, r.HitPoint.X, r.HitPoint.Y, r.Distance)
			continue
		}
		fmt.Fprintf(w, "ray %d %.2f: miss, leaves at (%.2f, %.2f)\n", i, r.Angle, r.End.X, r.End.Y)
	}
	return nil
}
