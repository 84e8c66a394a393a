package game

import (
	"fmt"

	"github.com/Faultbox/strider/internal/config"
	"github.com/Faultbox/strider/internal/engine/animation"
	"github.com/Faultbox/strider/internal/engine/camera"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/engine/locomotion"
	"github.com/Faultbox/strider/pkg/math"
)

// Settings is the tuning a Coordinator is built with.
type Settings struct {
	Mode   locomotion.Mode
	Tuning locomotion.Tuning

	LookSensitivity float32
	PitchLimit      float32
	CameraOffset    math.Vec3
	OrbitDistance   float32

	GroundGraceFrames int
	FadeDuration      float32
	Bindings          input.Bindings
}

// DefaultSettings returns look-mode defaults.
func DefaultSettings() Settings {
	return Settings{
		Mode:            locomotion.ModeLook,
		Tuning:          locomotion.LookTuning(),
		LookSensitivity: camera.DefaultLookSensitivity,
		PitchLimit:      camera.DefaultPitchLimit,
		CameraOffset:    camera.DefaultLookOffset,
		OrbitDistance:   5,
		FadeDuration:    animation.DefaultFadeDuration,
		Bindings:        input.DefaultBindings(),
	}
}

// SettingsFromConfig converts a validated config.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	mode, err := locomotion.ParseMode(cfg.Locomotion.Mode)
	if err != nil {
		return Settings{}, err
	}
	bindings, err := input.ParseBindings(cfg.Controls.Bindings)
	if err != nil {
		return Settings{}, fmt.Errorf("controls: %w", err)
	}

	l := cfg.Locomotion
	speed := l.Look
	if mode == locomotion.ModeOrbit {
		speed = l.Orbit
	}

	off := cfg.Camera.Offset
	return Settings{
		Mode: mode,
		Tuning: locomotion.Tuning{
			WalkVelocity: speed.WalkVelocity,
			RunVelocity:  speed.RunVelocity,
			DeltaScale:   l.DeltaScale,
			Smoothing:    l.Smoothing,
			JumpVelocity: l.JumpVelocity,
			ModelYOffset: l.ModelYOffset,
			RotateStep:   l.RotateStep,
		},
		LookSensitivity:   cfg.Camera.Sensitivity,
		PitchLimit:        cfg.Camera.PitchLimit,
		CameraOffset:      math.Vec3{X: off.X, Y: off.Y, Z: off.Z},
		OrbitDistance:     cfg.Camera.OrbitDistance,
		GroundGraceFrames: cfg.Physics.GroundGraceFrames,
		FadeDuration:      cfg.Animation.FadeDuration,
		Bindings:          bindings,
	}, nil
}
