package raycast

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/gridcaster/internal/grid"
)

func TestCastFanConcurrentMatchesSequential(t *testing.T) {
	g := newGrid(t, 20, 15, 4,
		grid.Cell{X: 3, Y: 3}, grid.Cell{X: 15, Y: 2}, grid.Cell{X: 9, Y: 12}, grid.Cell{X: 1, Y: 10},
	)
	g.SetBorder(2)
	origin := Point{X: 41.3, Y: 29.9}
	c := NewCaster()

	want, err := c.CastFan(g, origin, 3, 0.75, 480)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 8, 1000} {
		got, err := c.CastFanConcurrent(context.Background(), g, origin, 3, 0.75, 480, workers)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers %d", workers)
	}
}

func TestCastFanConcurrentEmpty(t *testing.T) {
	g := newGrid(t, 2, 2, 1)

	got, err := NewCaster().CastFanConcurrent(context.Background(), g, Point{X: 1, Y: 1}, 0, 1, 0, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCastFanConcurrentErrors(t *testing.T) {
	g := newGrid(t, 4, 4, 1)
	c := NewCaster()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CastFanConcurrent(ctx, g, Point{X: 2, Y: 2}, 0, 1, 64, 2)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = c.CastFanConcurrent(context.Background(), g, Point{X: 2, Y: 2}, 0, math.Inf(1), 8, 2)
	assert.ErrorIs(t, err, ErrInvalidAngle)
}

func TestCastFanConcurrentRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	g := newGrid(t, 5, 5, 10)
	g.SetBorder(1)

	_, err := NewCaster().CastFanConcurrent(context.Background(), g, Point{X: 25, Y: 25}, 0, 90, 4, 2)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "raycast.fan", spans[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(4), attrs["raycast.rays"].AsInt64())
	assert.Equal(t, int64(4), attrs["raycast.hits"].AsInt64())
	assert.Equal(t, int64(2), attrs["raycast.workers"].AsInt64())
}
