// Package animation picks the character's locomotion clip and cross-fades between clips.
package animation

// State is the locomotion animation being shown.
type State uint8

const (
	Idle State = iota
	Walk
	Run
)

// States lists every state in declaration order.
var States = [...]State{Idle, Walk, Run}

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Walk:
		return "Walk"
	case Run:
		return "Run"
	}
	return "Unknown"
}

// Valid reports whether s is one of Idle, Walk or Run.
func (s State) Valid() bool {
	return s <= Run
}

// Next returns the state for the given movement input and run toggle.
func Next(moving, run bool) State {
	switch {
	case !moving:
		return Idle
	case run:
		return Run
	default:
		return Walk
	}
}
