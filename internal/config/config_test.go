package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test locomotion defaults
	if cfg.Locomotion.Mode != "look" {
		t.Errorf("expected mode 'look', got %s", cfg.Locomotion.Mode)
	}
	if cfg.Locomotion.Look.WalkVelocity != 3 || cfg.Locomotion.Look.RunVelocity != 5 {
		t.Errorf("expected look velocities 3/5, got %v/%v",
			cfg.Locomotion.Look.WalkVelocity, cfg.Locomotion.Look.RunVelocity)
	}
	if cfg.Locomotion.Orbit.WalkVelocity != 2 || cfg.Locomotion.Orbit.RunVelocity != 7 {
		t.Errorf("expected orbit velocities 2/7, got %v/%v",
			cfg.Locomotion.Orbit.WalkVelocity, cfg.Locomotion.Orbit.RunVelocity)
	}
	if cfg.Locomotion.JumpVelocity != 10 {
		t.Errorf("expected jump velocity 10, got %v", cfg.Locomotion.JumpVelocity)
	}

	// Test camera defaults
	if cfg.Camera.Sensitivity != 0.0005 {
		t.Errorf("expected sensitivity 0.0005, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Camera.Offset != (Vec3Config{X: -0.65, Y: -0.85, Z: -2.0}) {
		t.Errorf("unexpected camera offset %+v", cfg.Camera.Offset)
	}

	// Test physics defaults
	if cfg.Physics.GroundGraceFrames != 0 {
		t.Errorf("expected grace window off by default, got %d", cfg.Physics.GroundGraceFrames)
	}

	if cfg.Animation.FadeDuration != 0.2 {
		t.Errorf("expected fade 0.2, got %v", cfg.Animation.FadeDuration)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Metrics.Listen != "" {
		t.Errorf("expected metrics disabled, got %s", cfg.Metrics.Listen)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

controls:
  bindings:
    forward: [Up]
    jump: [Space]

locomotion:
  mode: orbit
  orbit:
    walk_velocity: 2.5
    run_velocity: 8
  smoothing: 0.25

camera:
  sensitivity: 0.001

physics:
  ground_grace_frames: 6

logging:
  level: "debug"
  log_file: "strider.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if len(cfg.Controls.Bindings) != 2 {
		t.Errorf("expected file bindings to replace defaults, got %v", cfg.Controls.Bindings)
	}

	if cfg.Locomotion.Mode != "orbit" {
		t.Errorf("expected mode orbit, got %s", cfg.Locomotion.Mode)
	}
	if cfg.Locomotion.Orbit.RunVelocity != 8 {
		t.Errorf("expected orbit run velocity 8, got %v", cfg.Locomotion.Orbit.RunVelocity)
	}
	if cfg.Locomotion.Look.WalkVelocity != 3 {
		t.Errorf("expected look walk velocity to keep default 3, got %v", cfg.Locomotion.Look.WalkVelocity)
	}
	if cfg.Locomotion.Smoothing != 0.25 {
		t.Errorf("expected smoothing 0.25, got %v", cfg.Locomotion.Smoothing)
	}

	if cfg.Camera.Sensitivity != 0.001 {
		t.Errorf("expected sensitivity 0.001, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Physics.GroundGraceFrames != 6 {
		t.Errorf("expected grace 6, got %d", cfg.Physics.GroundGraceFrames)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "strider.log" {
		t.Errorf("expected log file 'strider.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unknown mode", func(c *Config) { c.Locomotion.Mode = "fly" }, "locomotion.mode"},
		{"zero walk velocity", func(c *Config) { c.Locomotion.Look.WalkVelocity = 0 }, "locomotion.look"},
		{"negative orbit velocity", func(c *Config) { c.Locomotion.Orbit.RunVelocity = -1 }, "locomotion.orbit"},
		{"smoothing above one", func(c *Config) { c.Locomotion.Smoothing = 1.5 }, "locomotion.smoothing"},
		{"zero smoothing", func(c *Config) { c.Locomotion.Smoothing = 0 }, "locomotion.smoothing"},
		{"zero sensitivity", func(c *Config) { c.Camera.Sensitivity = 0 }, "camera.sensitivity"},
		{"pitch past vertical", func(c *Config) { c.Camera.PitchLimit = 2 }, "camera.pitch_limit"},
		{"pitch past look clamp", func(c *Config) { c.Camera.PitchLimit = 1.5 }, "camera.pitch_limit"},
		{"negative grace", func(c *Config) { c.Physics.GroundGraceFrames = -1 }, "ground_grace_frames"},
		{"unknown key", func(c *Config) { c.Controls.Bindings["jump"] = []string{"F13"} }, "controls.bindings"},
		{"bad size", func(c *Config) { c.Graphics.Width = 0 }, "graphics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAcceptsPitchAtClamp(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	cfg.Camera.PitchLimit = 0.5
	if err := cfg.Validate(); err != nil {
		t.Errorf("pitch limit 0.5 rejected: %v", err)
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Locomotion.Mode = "fly"
	cfg.Camera.Sensitivity = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{"locomotion.mode", "camera.sensitivity"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error mentioning %q, got %v", want, err)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mode flag",
			setup: func() {
				*flagMode = "orbit"
			},
			verify: func(cfg *Config) {
				if cfg.Locomotion.Mode != "orbit" {
					t.Errorf("expected mode orbit, got %s", cfg.Locomotion.Mode)
				}
			},
			teardown: func() {
				*flagMode = ""
			},
		},
		{
			name: "metrics flag",
			setup: func() {
				*flagMetrics = ":2112"
			},
			verify: func(cfg *Config) {
				if cfg.Metrics.Listen != ":2112" {
					t.Errorf("expected metrics listen :2112, got %s", cfg.Metrics.Listen)
				}
			},
			teardown: func() {
				*flagMetrics = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("expected path %s, got %s", configPath, path)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("locomotion:\n  mode: swim\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, _, err := Load(); err == nil {
		t.Error("expected invalid mode to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Locomotion.Mode = "orbit"
	cfg.Camera.OrbitDistance = 9
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Locomotion.Mode != "orbit" || loaded.Camera.OrbitDistance != 9 {
		t.Errorf("saved values not restored: %+v", loaded.Locomotion)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  sensitivity: 0.001\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	w, err := WatchWithDebounce(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("camera:\n  sensitivity: 0.002\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-w.Updates():
		if cfg.Camera.Sensitivity != 0.002 {
			t.Errorf("expected reloaded sensitivity 0.002, got %v", cfg.Camera.Sensitivity)
		}
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("locomotion:\n  mode: look\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	w, err := WatchWithDebounce(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("locomotion:\n  mode: swim\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case <-w.Updates():
		t.Fatal("invalid config must not be delivered")
	case err := <-w.Errors():
		if !strings.Contains(err.Error(), "locomotion.mode") {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte{}, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("updates channel should be closed")
	}
}
