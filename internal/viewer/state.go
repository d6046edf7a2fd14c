// Package viewer provides the interactive terminal loop that casts a fan of
// rays over a grid and lets the user move, turn and edit cells.
package viewer

// State represents what input currently does.
type State int

const (
	// StateSweep is the default mode: the full fan is cast and clicks move
	// the origin.
	StateSweep State = iota
	// StateEdit casts only the heading ray and clicks toggle cells.
	StateEdit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSweep:
		return "sweep"
	case StateEdit:
		return "edit"
	default:
		return "unknown"
	}
}
