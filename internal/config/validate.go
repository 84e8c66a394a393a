package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/strider/internal/engine/camera"
	"github.com/Faultbox/strider/internal/engine/input"
)

// Validate reports every setting the playground cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.FOV > 0 && c.Graphics.FOV < 180,
		"graphics.fov: %v out of range (0, 180)", c.Graphics.FOV)

	if _, err := input.ParseBindings(c.Controls.Bindings); err != nil {
		errs = append(errs, fmt.Errorf("controls.bindings: %w", err))
	}

	l := c.Locomotion
	check(l.Mode == "look" || l.Mode == "orbit", "locomotion.mode: unknown mode %q", l.Mode)
	check(l.Look.WalkVelocity > 0 && l.Look.RunVelocity > 0, "locomotion.look: velocities must be positive")
	check(l.Orbit.WalkVelocity > 0 && l.Orbit.RunVelocity > 0, "locomotion.orbit: velocities must be positive")
	check(l.DeltaScale > 0, "locomotion.delta_scale: must be positive")
	check(l.Smoothing > 0 && l.Smoothing <= 1, "locomotion.smoothing: %v out of range (0, 1]", l.Smoothing)
	check(l.JumpVelocity > 0, "locomotion.jump_velocity: must be positive")
	check(l.RotateStep > 0, "locomotion.rotate_step: must be positive")

	check(c.Camera.Sensitivity > 0, "camera.sensitivity: must be positive")
	check(c.Camera.PitchLimit > 0 && c.Camera.PitchLimit <= camera.DefaultPitchLimit,
		"camera.pitch_limit: %v out of range (0, π/2.5]", c.Camera.PitchLimit)
	check(c.Camera.OrbitDistance > 0, "camera.orbit_distance: must be positive")

	check(c.Physics.Gravity >= 0, "physics.gravity: must not be negative")
	check(c.Physics.Iterations > 0, "physics.iterations: must be positive")
	check(c.Physics.MaxStep > 0, "physics.max_step: must be positive")
	check(c.Physics.GroundGraceFrames >= 0, "physics.ground_grace_frames: must not be negative")

	check(c.Animation.FadeDuration >= 0, "animation.fade_duration: must not be negative")

	return errors.Join(errs...)
}
