package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/config"
	"github.com/Faultbox/strider/internal/engine/animation"
	"github.com/Faultbox/strider/internal/engine/camera"
	"github.com/Faultbox/strider/internal/engine/debug"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/engine/locomotion"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/internal/engine/renderer"
	"github.com/Faultbox/strider/internal/game"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/internal/metrics"
	"github.com/Faultbox/strider/internal/platform/sdlhost"
	"github.com/Faultbox/strider/pkg/math"
)

// Character collision box, meters.
const (
	characterWidth  = 0.6
	characterHeight = 1.4
	characterMass   = 70
)

// platform is a static box; collision covers its X/Y extent, Depth is visual.
type platform struct {
	X, Y, Width, Height, Depth float32
}

var platforms = []platform{
	{X: 4, Y: 0.5, Width: 2, Height: 1, Depth: 4},
	{X: 8, Y: 1.5, Width: 3, Height: 0.4, Depth: 4},
	{X: -5, Y: 1, Width: 2.5, Height: 2, Depth: 6},
}

var stateColors = map[animation.State]renderer.Color{
	animation.Idle: {R: 0.7, G: 0.7, B: 0.75},
	animation.Walk: {R: 0.3, G: 0.55, B: 0.9},
	animation.Run:  {R: 0.95, G: 0.55, B: 0.2},
}

type playground struct {
	cfg     *config.Config
	running bool

	window   *sdlhost.Window
	renderer *renderer.Renderer
	input    *sdlhost.Input

	world *physics.World
	body  *physics.CharacterBody
	mixer *animation.ClipMixer
	orbit *camera.OrbitCamera
	coord *game.Coordinator

	metrics *metrics.Metrics
	server  *metrics.Server
	watcher *config.Watcher
	shots   *debug.Screenshots

	screenshotPending bool

	log *zap.Logger
}

func newPlayground(cfg *config.Config, path string) (*playground, error) {
	p := &playground{
		cfg: cfg,
		log: logger.Named("playground"),
	}
	ok := false
	defer func() {
		if !ok {
			p.Close()
		}
	}()

	p.metrics = metrics.New()
	if cfg.Metrics.Listen != "" {
		p.server = p.metrics.Serve(cfg.Metrics.Listen)
	}

	var err error
	p.window, err = sdlhost.NewWindow(sdlhost.Config{
		Title:      "Strider",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context, so it comes after the window.
	w, h := p.window.DrawableSize()
	p.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, FOV: cfg.Graphics.FOV})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	p.input = sdlhost.NewInput()
	p.shots = debug.NewScreenshots("screenshots", "strider")

	p.buildScene()

	settings, err := game.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	deps := game.Deps{
		Body:     p.body,
		Contacts: p.world,
		Mixer:    p.mixer,
		Clips:    p.clips(),
		Pointer:  p.input,
		Metrics:  p.metrics,
	}
	if settings.Mode == locomotion.ModeOrbit {
		p.orbit = camera.NewOrbitCamera()
		p.orbit.Distance = settings.OrbitDistance
		p.orbit.SetTarget(p.body.Position().Add(math.Vec3{Y: locomotion.TargetHeight}))
		deps.Orbit = p.orbit
	}
	p.coord, err = game.New(deps, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}
	p.coord.Subscribe(game.EventLock, func() { p.log.Info("controls engaged") })
	p.coord.Subscribe(game.EventUnlock, func() { p.log.Info("controls released, click to resume") })

	if path != "" {
		if p.watcher, err = config.Watch(path); err != nil {
			p.log.Warn("config hot reload disabled", zap.Error(err))
		}
	}

	ok = true
	return p, nil
}

func (p *playground) buildScene() {
	phys := p.cfg.Physics
	p.world = physics.NewWorld(physics.WorldConfig{Gravity: phys.Gravity, Iterations: phys.Iterations})
	p.world.AddGround(0, 100)
	for _, pl := range platforms {
		p.world.AddPlatform(pl.X, pl.Y, pl.Width, pl.Height)
	}
	p.body = p.world.NewCharacter(math.Vec3{Y: 3}, characterWidth, characterHeight, characterMass)

	p.mixer = animation.NewMixer()
}

func (p *playground) clips() animation.ClipSet {
	return animation.ClipSet{
		animation.Idle: p.mixer.Add("idle", 2.0),
		animation.Walk: p.mixer.Add("walk", 1.0),
		animation.Run:  p.mixer.Add("run", 0.7),
	}
}

// Run drives the frame loop until the window closes.
func (p *playground) Run() error {
	p.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	p.log.Info("starting frame loop, click to engage controls")

	for p.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if dt > p.cfg.Physics.MaxStep {
			dt = p.cfg.Physics.MaxStep
		}

		if p.input.Update() {
			p.running = false
			break
		}
		p.handleEvents()
		p.pollConfig()

		// Contacts raised inside Step are applied at the start of Update.
		p.world.Step(float64(dt))
		p.coord.Update(dt)

		p.render()
		if p.screenshotPending {
			p.screenshotPending = false
			p.capture()
		}
		p.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := p.coord.Character()
			p.window.SetTitle(fmt.Sprintf("Strider - %d fps - %s", frameCount, st.CurrentAnimation))
			p.log.Debug("fps", zap.Int("count", frameCount), zap.Bool("grounded", st.Grounded))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (p *playground) handleEvents() {
	for _, ev := range p.input.Events() {
		switch ev.Type {
		case sdlhost.EventWindowResize:
			p.renderer.Resize(p.window.DrawableSize())
		case sdlhost.EventMouseDown:
			if p.coord.State() == game.Disabled {
				if err := p.coord.Lock(); err != nil {
					p.log.Warn("could not engage controls", zap.Error(err))
				}
			}
		case sdlhost.EventKeyDown:
			switch ev.Key {
			case input.KeyEscape:
				p.coord.Unlock()
				continue
			case input.KeyF12:
				p.screenshotPending = true
				continue
			}
			if !ev.Repeat {
				p.coord.KeyChange(ev.Key, true)
			}
		case sdlhost.EventKeyUp:
			p.coord.KeyChange(ev.Key, false)
		case sdlhost.EventMouseMove:
			if p.input.PointerLocked() {
				p.coord.LookDelta(ev.DX, ev.DY)
			}
		case sdlhost.EventMouseWheel:
			if p.orbit != nil {
				p.orbit.HandleZoom(ev.DY)
			}
		case sdlhost.EventPointerLock:
			p.coord.HandlePointerLockChange(ev.Locked)
		}
	}
}

func (p *playground) pollConfig() {
	if p.watcher == nil {
		return
	}
	select {
	case cfg := <-p.watcher.Updates():
		s, err := game.SettingsFromConfig(cfg)
		if err != nil {
			p.log.Warn("reloaded config rejected", zap.Error(err))
			return
		}
		p.coord.ApplySettings(s)
		p.metrics.ConfigReload()
	case err := <-p.watcher.Errors():
		p.log.Warn("config reload failed", zap.Error(err))
	default:
	}
}

func (p *playground) render() {
	p.renderer.Begin(p.coord.CameraPose().ViewMatrix())

	p.renderer.DrawGrid(0, renderer.Color{R: 0.3, G: 0.3, B: 0.35})
	for _, pl := range platforms {
		p.renderer.DrawBox(math.Translate(pl.X, pl.Y, 0),
			math.Vec3{X: pl.Width, Y: pl.Height, Z: pl.Depth},
			renderer.Color{R: 0.45, G: 0.5, B: 0.4})
	}

	st := p.coord.Character()
	body := math.Compose(p.body.Position(), st.Orientation, math.Vec3{X: 1, Y: 1, Z: 1})
	p.renderer.DrawBox(body,
		math.Vec3{X: characterWidth, Y: characterHeight, Z: characterWidth},
		stateColors[st.CurrentAnimation])
	// Facing marker on the -Z side.
	p.renderer.DrawBox(body.Mul(math.Translate(0, 0.4, -characterWidth/2)),
		math.Vec3{X: 0.15, Y: 0.15, Z: 0.2},
		renderer.Color{R: 0.9, G: 0.9, B: 0.9})

	p.renderer.End()
}

func (p *playground) capture() {
	pixels, w, h := p.renderer.ReadPixels()
	path, err := p.shots.Save(pixels, w, h)
	if err != nil {
		p.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	p.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse order of creation.
func (p *playground) Close() {
	p.log.Info("closing playground")

	if p.watcher != nil {
		p.watcher.Close()
	}
	if p.coord != nil {
		p.coord.Dispose()
	}
	if err := p.server.Close(2 * time.Second); err != nil {
		p.log.Warn("metrics shutdown", zap.Error(err))
	}
	if p.renderer != nil {
		p.renderer.Close()
	}
	if p.window != nil {
		p.window.Close()
	}
}
