// Package config handles playground configuration loading and management.
package config

import "github.com/Faultbox/strider/internal/engine/camera"

// Config holds all settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Controls   ControlsConfig   `yaml:"controls"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Camera     CameraConfig     `yaml:"camera"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Animation  AnimationConfig  `yaml:"animation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
}

// ControlsConfig maps action names to key names.
type ControlsConfig struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// SpeedConfig is a walk/run velocity pair.
type SpeedConfig struct {
	WalkVelocity float32 `yaml:"walk_velocity"`
	RunVelocity  float32 `yaml:"run_velocity"`
}

// LocomotionConfig holds movement tuning.
type LocomotionConfig struct {
	Mode         string      `yaml:"mode"` // look or orbit
	Look         SpeedConfig `yaml:"look"`
	Orbit        SpeedConfig `yaml:"orbit"`
	DeltaScale   float32     `yaml:"delta_scale"`
	Smoothing    float32     `yaml:"smoothing"`
	JumpVelocity float32     `yaml:"jump_velocity"`
	ModelYOffset float32     `yaml:"model_y_offset"`
	RotateStep   float32     `yaml:"rotate_step"`
}

// Vec3Config is a YAML-friendly vector.
type Vec3Config struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// CameraConfig holds camera tuning.
type CameraConfig struct {
	Sensitivity   float32    `yaml:"sensitivity"`
	PitchLimit    float32    `yaml:"pitch_limit"` // radians
	Offset        Vec3Config `yaml:"offset"`
	OrbitDistance float32    `yaml:"orbit_distance"`
}

// PhysicsConfig holds solver and ground detection settings.
type PhysicsConfig struct {
	Gravity           float32 `yaml:"gravity"`
	Iterations        int     `yaml:"iterations"`
	MaxStep           float32 `yaml:"max_step"` // seconds; longer frames are clamped
	GroundGraceFrames int     `yaml:"ground_grace_frames"`
}

// AnimationConfig holds clip blending settings.
type AnimationConfig struct {
	FadeDuration float32 `yaml:"fade_duration"` // seconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":2112"; empty disables
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        75,
		},
		Controls: ControlsConfig{
			Bindings: map[string][]string{
				"forward": {"W", "Up"},
				"back":    {"S", "Down"},
				"left":    {"A", "Left"},
				"right":   {"D", "Right"},
				"jump":    {"Space"},
				"run":     {"ShiftLeft"},
			},
		},
		Locomotion: LocomotionConfig{
			Mode:         "look",
			Look:         SpeedConfig{WalkVelocity: 3, RunVelocity: 5},
			Orbit:        SpeedConfig{WalkVelocity: 2, RunVelocity: 7},
			DeltaScale:   100,
			Smoothing:    0.1,
			JumpVelocity: 10,
			ModelYOffset: 0.7,
			RotateStep:   0.2,
		},
		Camera: CameraConfig{
			Sensitivity:   0.0005,
			PitchLimit:    camera.DefaultPitchLimit,
			Offset:        Vec3Config{X: -0.65, Y: -0.85, Z: -2.0},
			OrbitDistance: 5,
		},
		Physics: PhysicsConfig{
			Gravity:           9.82,
			Iterations:        10,
			MaxStep:           0.05,
			GroundGraceFrames: 0,
		},
		Animation: AnimationConfig{
			FadeDuration: 0.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
