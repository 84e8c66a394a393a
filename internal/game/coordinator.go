// Package game wires input, ground detection, locomotion, animation and the
// camera into one frame coordinator with an explicit enabled/disabled lifecycle.
package game

import (
	"errors"
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/animation"
	"github.com/Faultbox/strider/internal/engine/camera"
	"github.com/Faultbox/strider/internal/engine/event"
	"github.com/Faultbox/strider/internal/engine/ground"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/engine/locomotion"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/internal/metrics"
	"github.com/Faultbox/strider/pkg/math"
)

// ErrPointerLockRefused is returned by Lock when the host will not capture the pointer.
var ErrPointerLockRefused = errors.New("game: pointer lock refused")

// PointerLocker captures and releases the pointer. Hosts report the outcome
// asynchronously through Coordinator.HandlePointerLockChange.
type PointerLocker interface {
	SetPointerLocked(locked bool) error
}

// OrbitView is the orbit camera as used in orbit mode.
type OrbitView interface {
	camera.OrbitTarget
	HandleDrag(dx, dy float32)
	Pose() camera.Pose
}

// Deps are the collaborators a Coordinator drives. The coordinator never owns
// the physics world or the window.
type Deps struct {
	Body     physics.Body
	Contacts physics.ContactSource
	Model    locomotion.Transform // optional
	Mixer    animation.Mixer
	Clips    animation.ClipSet
	Pointer  PointerLocker
	Orbit    OrbitView        // orbit mode; a default OrbitCamera is created when nil
	Metrics  *metrics.Metrics // optional
}

// Lifecycle is the coordinator's enabled state.
type Lifecycle uint8

const (
	Disabled Lifecycle = iota
	Enabled
)

func (l Lifecycle) String() string {
	if l == Enabled {
		return "enabled"
	}
	return "disabled"
}

// Event is a payload-free lifecycle notification.
type Event uint8

const (
	EventLock Event = iota
	EventUnlock
)

func (e Event) String() string {
	switch e {
	case EventLock:
		return "lock"
	case EventUnlock:
		return "unlock"
	}
	return "unknown"
}

// Coordinator runs one character's per-frame update.
type Coordinator struct {
	settings Settings
	state    Lifecycle
	disposed bool

	sampler    *input.Sampler
	monitor    *ground.Monitor
	look       *camera.LookRig
	orbit      OrbitView
	orbitNode  camera.Node
	selector   *animation.Selector
	controller *locomotion.Controller
	pointer    PointerLocker
	metrics    *metrics.Metrics

	onLock    event.Dispatcher[struct{}]
	onUnlock  event.Dispatcher[struct{}]
	contactSb *event.Subscription

	pose camera.Pose
	log  *zap.Logger
}

// New builds every component from deps and s. It starts Disabled.
func New(deps Deps, s Settings) (*Coordinator, error) {
	if deps.Body == nil {
		return nil, errors.New("game: nil body")
	}
	if deps.Mixer == nil {
		return nil, errors.New("game: nil animation mixer")
	}

	log := logger.Named("game")

	selector, err := animation.NewSelector(deps.Mixer, deps.Clips, animation.Idle)
	if err != nil {
		return nil, fmt.Errorf("animation setup: %w", err)
	}
	selector.SetFadeDuration(s.FadeDuration)

	monitor := ground.NewMonitor(deps.Body.ID(), ground.WithGraceFrames(s.GroundGraceFrames))

	c := &Coordinator{
		settings: s,
		sampler:  input.NewSampler(s.Bindings),
		monitor:  monitor,
		selector: selector,
		pointer:  deps.Pointer,
		metrics:  deps.Metrics,
		log:      log,
	}

	var strategy locomotion.Strategy
	switch s.Mode {
	case locomotion.ModeLook:
		c.look = camera.NewLookRig()
		c.look.Sensitivity = s.LookSensitivity
		c.look.PitchLimit = s.PitchLimit
		c.look.Offset = s.CameraOffset
		strategy = locomotion.NewLookRelative(s.Tuning)
	case locomotion.ModeOrbit:
		c.orbit = deps.Orbit
		if c.orbit == nil {
			oc := camera.NewOrbitCamera()
			oc.Distance = s.OrbitDistance
			oc.SetTarget(deps.Body.Position().Add(math.Vec3{Y: locomotion.TargetHeight}))
			c.orbit = oc
		}
		strategy = locomotion.NewOrbitRelative(c.orbit, s.Tuning)
	default:
		return nil, fmt.Errorf("game: unknown locomotion mode %q", s.Mode)
	}

	c.controller, err = locomotion.NewController(locomotion.Rig{
		Body:      deps.Body,
		Model:     deps.Model,
		Ground:    monitor,
		Animation: selector,
	}, strategy)
	if err != nil {
		return nil, err
	}

	if deps.Contacts != nil {
		c.contactSb = monitor.Attach(deps.Contacts)
	}
	c.refreshPose()

	log.Info("coordinator ready",
		zap.String("mode", string(s.Mode)),
		zap.Int("ground_grace_frames", s.GroundGraceFrames))
	return c, nil
}

// Lock asks the host to capture the pointer. The coordinator enables once the
// host confirms through HandlePointerLockChange.
func (c *Coordinator) Lock() error {
	if c.disposed || c.state == Enabled {
		return nil
	}
	if c.pointer == nil {
		c.HandlePointerLockChange(true)
		return nil
	}
	if err := c.pointer.SetPointerLocked(true); err != nil {
		c.log.Warn("pointer lock refused", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPointerLockRefused, err)
	}
	return nil
}

// Unlock asks the host to release the pointer.
func (c *Coordinator) Unlock() {
	if c.disposed || c.state == Disabled {
		return
	}
	if c.pointer == nil {
		c.HandlePointerLockChange(false)
		return
	}
	if err := c.pointer.SetPointerLocked(false); err != nil {
		c.log.Warn("pointer release failed", zap.Error(err))
	}
}

// HandlePointerLockChange is the host's lock/unlock signal.
func (c *Coordinator) HandlePointerLockChange(locked bool) {
	if c.disposed {
		return
	}
	switch {
	case locked && c.state == Disabled:
		c.state = Enabled
		c.sampler.SetEnabled(true)
		c.log.Info("controls enabled")
		c.metrics.LockChange(EventLock.String())
		c.onLock.Emit(struct{}{})
	case !locked && c.state == Enabled:
		c.state = Disabled
		c.sampler.SetEnabled(false)
		c.log.Info("controls disabled")
		c.metrics.LockChange(EventUnlock.String())
		c.onUnlock.Emit(struct{}{})
	}
}

// Subscribe registers fn for ev.
func (c *Coordinator) Subscribe(ev Event, fn func()) *event.Subscription {
	wrapped := func(struct{}) { fn() }
	switch ev {
	case EventLock:
		return c.onLock.Subscribe(wrapped)
	case EventUnlock:
		return c.onUnlock.Subscribe(wrapped)
	}
	c.log.Warn("subscribe to unknown event", zap.Stringer("event", ev))
	return &event.Subscription{}
}

// KeyChange forwards a key event. Ignored while disabled.
func (c *Coordinator) KeyChange(key input.Key, pressed bool) {
	c.sampler.OnKeyChange(key, pressed)
}

// LookDelta forwards relative pointer motion. Ignored while disabled.
func (c *Coordinator) LookDelta(dx, dy float32) {
	c.sampler.OnLookDelta(dx, dy)
}

// Update runs one frame. While disabled only queued contacts are applied;
// the character, camera and animation are left untouched.
func (c *Coordinator) Update(dt float32) {
	if c.disposed {
		return
	}
	c.monitor.Flush()

	if c.state == Disabled {
		c.sampler.Consume()
		c.monitor.Tick()
		return
	}

	prev := c.controller.State()
	snap := c.sampler.Consume()

	var yaw float32
	if c.look != nil {
		c.look.HandleLook(snap.LookDX, snap.LookDY)
		yaw = c.look.Yaw()
	} else {
		c.orbit.HandleDrag(snap.LookDX, snap.LookDY)
		yaw = camera.YawToward(c.orbit.Position(), prev.Position)
	}

	st := c.controller.Update(dt, snap, yaw)
	c.refreshPose()
	c.monitor.Tick()

	if st.Jumped {
		c.metrics.Jump()
		c.log.Debug("jump")
	}
	if st.CurrentAnimation != prev.CurrentAnimation {
		c.metrics.Transition(st.CurrentAnimation.String())
	}
	c.metrics.Frame(dt, st.Grounded)
}

func (c *Coordinator) refreshPose() {
	st := c.controller.State()
	if c.look != nil {
		c.pose = c.look.Pose(st.Position)
		return
	}
	c.pose = c.orbit.Pose()
	c.orbitNode.Position = c.pose.Position
	c.orbitNode.Orientation = c.pose.Orientation
}

// ApplySettings swaps tuning at runtime. Mode and grace window changes need a
// rebuild and are ignored here.
func (c *Coordinator) ApplySettings(s Settings) {
	if c.disposed {
		return
	}
	if s.Mode != c.settings.Mode {
		c.log.Warn("mode change requires restart",
			zap.String("current", string(c.settings.Mode)),
			zap.String("requested", string(s.Mode)))
	}
	if s.GroundGraceFrames != c.settings.GroundGraceFrames {
		c.log.Warn("ground grace change requires restart")
	}

	strategy := c.controller.Strategy()
	if s.Mode != c.settings.Mode {
		// The reloaded speeds belong to the other mode.
		cur := strategy.Tuning()
		s.Tuning.WalkVelocity = cur.WalkVelocity
		s.Tuning.RunVelocity = cur.RunVelocity
	}
	strategy.SetTuning(s.Tuning)
	c.selector.SetFadeDuration(s.FadeDuration)
	if c.look != nil {
		c.look.Sensitivity = s.LookSensitivity
		c.look.PitchLimit = s.PitchLimit
		c.look.Offset = s.CameraOffset
	}
	if s.Bindings == nil {
		s.Bindings = c.settings.Bindings
	}
	if !maps.Equal(s.Bindings, c.settings.Bindings) {
		c.sampler.SetBindings(s.Bindings)
	}

	s.Mode = c.settings.Mode
	s.GroundGraceFrames = c.settings.GroundGraceFrames
	c.settings = s
	c.log.Info("settings applied")
}

// State returns the lifecycle state.
func (c *Coordinator) State() Lifecycle {
	return c.state
}

// Mode returns the locomotion mode.
func (c *Coordinator) Mode() locomotion.Mode {
	return c.settings.Mode
}

// CameraNode returns the transform the renderer attaches the camera to.
func (c *Coordinator) CameraNode() *camera.Node {
	if c.look != nil {
		return c.look.Node()
	}
	return &c.orbitNode
}

// CameraPose returns the pose computed by the last update.
func (c *Coordinator) CameraPose() camera.Pose {
	return c.pose
}

// Character returns the character state after the last update.
func (c *Coordinator) Character() locomotion.CharacterState {
	return c.controller.State()
}

// Model returns the visual transform driven by the controller.
func (c *Coordinator) Model() locomotion.Transform {
	return c.controller.Model()
}

// Dispose releases the pointer, detaches every listener and drops the character.
// The coordinator is unusable afterwards.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	if c.state == Enabled && c.pointer != nil {
		if err := c.pointer.SetPointerLocked(false); err != nil {
			c.log.Warn("pointer release failed", zap.Error(err))
		}
	}
	c.state = Disabled
	c.sampler.SetEnabled(false)

	c.contactSb.Unsubscribe()
	c.onLock.Clear()
	c.onUnlock.Clear()
	c.monitor.Reset()
	c.controller.Dispose()

	c.disposed = true
	c.log.Info("coordinator disposed")
}
