// Package locomotion turns sampled input into character movement.
//
// A Controller owns the character state and delegates the coupling between
// intent and physics to a Strategy: LookRelative pushes velocity into the body
// and reads its resolved position back, OrbitRelative moves the character
// itself and drags the body along.
package locomotion

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/animation"
	"github.com/Faultbox/strider/internal/engine/ground"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/pkg/math"
)

// CharacterState is the controller's view of the character after an update.
type CharacterState struct {
	Position           math.Vec3
	Orientation        math.Quat
	HorizontalVelocity math.Vec2 // world X, Z
	Grounded           bool
	RunToggle          bool
	CurrentAnimation   animation.State

	// Jumped is set when this update launched a jump.
	Jumped bool
}

// Rig bundles the collaborators a controller acts on.
type Rig struct {
	Body      physics.Body
	Model     Transform
	Ground    *ground.Monitor
	Animation *animation.Selector // optional
}

// Controller runs one strategy against one character.
type Controller struct {
	rig      Rig
	strategy Strategy
	state    CharacterState
	disposed bool
	log      *zap.Logger
}

// NewController creates a controller. The character starts where the body is.
func NewController(rig Rig, strategy Strategy) (*Controller, error) {
	if rig.Body == nil {
		return nil, errors.New("locomotion: nil body")
	}
	if rig.Ground == nil {
		return nil, errors.New("locomotion: nil ground monitor")
	}
	if strategy == nil {
		return nil, errors.New("locomotion: nil strategy")
	}
	if rig.Model == nil {
		rig.Model = NewModel(rig.Body.Position())
	}

	c := &Controller{
		rig:      rig,
		strategy: strategy,
		log:      logger.Named("locomotion"),
	}
	c.state = CharacterState{
		Position:    rig.Body.Position(),
		Orientation: rig.Body.Orientation(),
	}
	if rig.Animation != nil {
		c.state.CurrentAnimation = rig.Animation.Current()
	}
	c.log.Debug("controller created", zap.String("mode", string(strategy.Mode())))
	return c, nil
}

// Update advances the character by dt seconds using snap and the camera heading yaw.
func (c *Controller) Update(dt float32, snap input.Snapshot, yaw float32) CharacterState {
	if c.disposed {
		return c.state
	}

	st := c.state
	st.Jumped = false
	if snap.Run {
		st.RunToggle = !st.RunToggle
		c.log.Debug("run toggled", zap.Bool("run", st.RunToggle))
	}

	moving := snap.Moving()
	c.strategy.Move(c.rig, &st, Frame{
		DT:     dt,
		Input:  snap,
		Yaw:    yaw,
		Offset: DirectionOffset(snap),
		Moving: moving,
	})
	st.Grounded = c.rig.Ground.Grounded()

	if c.rig.Animation != nil {
		c.rig.Animation.Update(dt, moving, st.RunToggle)
		st.CurrentAnimation = c.rig.Animation.Current()
	}

	c.state = st
	return st
}

// State returns the result of the last update.
func (c *Controller) State() CharacterState {
	return c.state
}

// Strategy returns the active strategy.
func (c *Controller) Strategy() Strategy {
	return c.strategy
}

// Model returns the visual transform.
func (c *Controller) Model() Transform {
	return c.rig.Model
}

// Dispose drops the character state. Later updates do nothing.
func (c *Controller) Dispose() {
	c.disposed = true
	c.state = CharacterState{}
}
