package raycast

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/gridcaster/internal/telemetry"
)

// CastFanConcurrent casts the same rays as CastFan, split across up to
// workers goroutines (GOMAXPROCS when workers <= 0). Results are in ray
// order. The grid must not be modified until the call returns; cast against
// a clone when edits may happen concurrently.
func (c *Caster) CastFanConcurrent(ctx context.Context, g Grid, origin Point, start, step float64, count, workers int) ([]Result, error) {
	tracer := telemetry.Tracer("raycast")
	ctx, span := tracer.Start(ctx, "raycast.fan")
	defer span.End()

	if count <= 0 {
		return []Result{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}

	results := make([]Result, count)
	eg, ctx := errgroup.WithContext(ctx)

	chunk := (count + workers - 1) / workers
	for lo := 0; lo < count; lo += chunk {
		hi := min(lo+chunk, count)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := c.Cast(g, origin, start+float64(i)*step)
				if err != nil {
					return fmt.Errorf("ray %d: %w", i, err)
				}
				results[i] = r
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	hits := 0
	for i := range results {
		if results[i].Hit {
			hits++
		}
	}
	span.SetAttributes(
		attribute.Int("raycast.rays", count),
		attribute.Int("raycast.hits", hits),
		attribute.Int("raycast.workers", workers),
		attribute.Float64("raycast.start_angle", start),
		attribute.Float64("raycast.step_angle", step),
	)

	return results, nil
}
