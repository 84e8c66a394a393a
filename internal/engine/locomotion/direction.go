package locomotion

import (
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/pkg/math"
)

// DirectionOffset maps held movement keys to a heading relative to the camera.
// Forward is 0, left is +π/2. Conflicting keys resolve by checking forward,
// then back, then left, then right.
func DirectionOffset(s input.Snapshot) float32 {
	switch {
	case s.Forward:
		switch {
		case s.Left:
			return math.Pi / 4
		case s.Right:
			return -math.Pi / 4
		}
		return 0
	case s.Back:
		switch {
		case s.Left:
			return 3 * math.Pi / 4
		case s.Right:
			return -3 * math.Pi / 4
		}
		return math.Pi
	case s.Left:
		return math.HalfPi
	case s.Right:
		return -math.HalfPi
	}
	return 0
}
