package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{-90, 270},
		{-360, 0},
		{725, 5},
		{-725, 355},
		{359.5, 359.5},
	}

	for _, tt := range tests {
		got, err := NormalizeAngle(tt.in)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "NormalizeAngle(%v)", tt.in)
	}

	// Tiny negative angles must not round up to 360.
	got, err := NormalizeAngle(-1e-14)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 360.0)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NormalizeAngle(bad)
		assert.ErrorIs(t, err, ErrInvalidAngle)
	}
}

func TestDirection(t *testing.T) {
	// Axis angles are exact so the perpendicular family is skipped.
	exact := map[float64][2]float64{
		0:    {1, 0},
		90:   {0, 1},
		180:  {-1, 0},
		270:  {0, -1},
		-90:  {0, -1},
		450:  {0, 1},
		-180: {-1, 0},
	}
	for angle, want := range exact {
		dx, dy := Direction(angle)
		assert.Equal(t, want[0], dx, "angle %v", angle)
		assert.Equal(t, want[1], dy, "angle %v", angle)
	}

	for a := 0.5; a < 360; a += 11.25 {
		dx, dy := Direction(a)
		assert.InDelta(t, 1, math.Hypot(dx, dy), 1e-12)
		assert.InDelta(t, math.Cos(a*math.Pi/180), dx, 1e-12)
		assert.InDelta(t, math.Sin(a*math.Pi/180), dy, 1e-12)
	}

	dx, dy := Direction(math.NaN())
	assert.True(t, math.IsNaN(dx))
	assert.True(t, math.IsNaN(dy))
}

func TestFieldOfView(t *testing.T) {
	start, step := FieldOfView(0, 60, 7)
	assert.Equal(t, -30.0, start)
	assert.Equal(t, 10.0, step)

	start, step = FieldOfView(90, 360, 4)
	assert.Equal(t, 90.0, start)
	assert.Equal(t, 90.0, step)

	start, step = FieldOfView(123, 90, 1)
	assert.Equal(t, 123.0, start)
	assert.Zero(t, step)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "none", SideNone.String())
	assert.Equal(t, "vertical", SideVertical.String())
	assert.Equal(t, "horizontal", SideHorizontal.String())
	assert.Equal(t, "unknown", Side(9).String())
}
