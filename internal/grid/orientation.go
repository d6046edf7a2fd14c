package grid

import (
	"fmt"
	"strings"
)

// Orientation is the axis a line of cells runs along.
type Orientation int

const (
	// Horizontal lines step along x.
	Horizontal Orientation = iota
	// Vertical lines step along y.
	Vertical
)

// String returns the short name used in layout files.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		return "unknown"
	}
}

// ParseOrientation accepts "h", "horizontal", "v" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

func (o Orientation) delta() (int, int, error) {
	switch o {
	case Horizontal:
		return 1, 0, nil
	case Vertical:
		return 0, 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
}
