package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/gridcaster/internal/config"
	"github.com/samdwyer/gridcaster/internal/grid"
	"github.com/samdwyer/gridcaster/internal/raycast"
	"github.com/samdwyer/gridcaster/internal/viewer"
)

func TestDump(t *testing.T) {
	g := grid.MustNew(4, 3, 10)
	require.NoError(t, g.Set(3, 1, 2))

	cfg := config.Default()
	cfg.Rays = 2
	cfg.FOV = 360
	world := &viewer.World{Name: "dump", Grid: g, Origin: raycast.Point{X: 15, Y: 15}}

	var buf bytes.Buffer
	require.NoError(t, dump(context.Background(), &buf, cfg, world))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "dump: 4x3 cells of 10, checksum "))
	assert.Equal(t, "0  0  0  2", lines[2])
	assert.Equal(t, "origin (15.00, 15.00) heading 0.00", lines[4])
	assert.Equal(t, "ray 0 0.00: hit vertical side of cell (3,1) value 2 at (30.00, 15.00), distance 15.00", lines[5])
	assert.Equal(t, "ray 1 180.00: miss, leaves at (0.00, 15.00)", lines[6])
}
