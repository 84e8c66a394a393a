package locomotion

import "fmt"

// Mode selects how movement intent reaches the physics body.
type Mode string

const (
	// ModeLook drives the body's velocity and reads its position back.
	ModeLook Mode = "look"
	// ModeOrbit moves the character directly and drags the body along.
	ModeOrbit Mode = "orbit"
)

// ParseMode validates a mode name from config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLook, ModeOrbit:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown locomotion mode %q", s)
}

// Tuning holds movement constants.
type Tuning struct {
	WalkVelocity float32
	RunVelocity  float32

	// Look mode only.
	DeltaScale   float32 // multiplies dt when building the input vector
	Smoothing    float32 // lerp factor toward the target horizontal velocity
	JumpVelocity float32
	ModelYOffset float32 // visual model sits this far below the body center

	// Orbit mode only.
	RotateStep float32 // max facing change per update, radians
}

// LookTuning returns the defaults for physics-driven movement.
func LookTuning() Tuning {
	return Tuning{
		WalkVelocity: 3,
		RunVelocity:  5,
		DeltaScale:   100,
		Smoothing:    0.1,
		JumpVelocity: 10,
		ModelYOffset: 0.7,
		RotateStep:   0.2,
	}
}

// OrbitTuning returns the defaults for kinematic movement.
func OrbitTuning() Tuning {
	t := LookTuning()
	t.WalkVelocity = 2
	t.RunVelocity = 7
	return t
}

// Velocity returns the speed for the run toggle.
func (t Tuning) Velocity(run bool) float32 {
	if run {
		return t.RunVelocity
	}
	return t.WalkVelocity
}
