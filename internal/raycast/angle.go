package raycast

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAngle is returned for NaN or infinite angles.
var ErrInvalidAngle = errors.New("raycast: invalid angle")

// NormalizeAngle maps an angle in degrees into [0, 360).
func NormalizeAngle(a float64) (float64, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAngle, a)
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-14 + 360 rounds to 360.
	if a >= 360 {
		a = 0
	}
	return a, nil
}

// Direction returns the unit vector for an angle in degrees, 0 pointing
// along +x and 90 along +y. Multiples of 90 give exact axis vectors so that
// the perpendicular component is exactly zero.
func Direction(a float64) (float64, float64) {
	a, err := NormalizeAngle(a)
	if err != nil {
		return math.NaN(), math.NaN()
	}

	switch a {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}

	rad := a * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// FieldOfView returns the start angle and step of a fan of rays rays
// centred on heading and spanning fov degrees. A full circle is split into
// rays equal steps without repeating the first ray.
func FieldOfView(heading, fov float64, rays int) (float64, float64) {
	if rays <= 1 {
		return heading, 0
	}
	if fov >= 360 {
		return heading, 360 / float64(rays)
	}
	return heading - fov/2, fov / float64(rays-1)
}
