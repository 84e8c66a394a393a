package physics

import (
	gomath "math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/event"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/pkg/math"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

// WorldConfig holds solver settings.
type WorldConfig struct {
	Gravity    float32 // downward acceleration, world units/s²
	Iterations int
}

// DefaultWorldConfig returns Earth-like gravity in meters.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:    9.82,
		Iterations: 10,
	}
}

// World simulates the vertical X/Y slice of the scene with Chipmunk.
// Depth (Z) carries no collision geometry; characters integrate it from their
// Z velocity on each step.
type World struct {
	space      *cp.Space
	ids        map[*cp.Body]BodyID
	characters []*CharacterBody
	contacts   event.Dispatcher[Contact]
	log        *zap.Logger
}

// NewWorld creates an empty world.
func NewWorld(cfg WorldConfig) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: -float64(cfg.Gravity)})

	w := &World{
		space: space,
		ids:   make(map[*cp.Body]BodyID),
		log:   logger.Named("physics"),
	}
	w.setupHandlers()
	return w
}

// AddGround adds an infinite-looking static floor at height y.
func (w *World) AddGround(y, halfWidth float32) BodyID {
	body := cp.NewStaticBody()
	w.space.AddBody(body)
	seg := cp.NewSegment(body,
		cp.Vector{X: -float64(halfWidth), Y: float64(y)},
		cp.Vector{X: float64(halfWidth), Y: float64(y)},
		0.05)
	seg.SetFriction(0.8)
	seg.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(seg)
	return w.register(body)
}

// AddPlatform adds a static box centered at (x, y) in the slice.
func (w *World) AddPlatform(x, y, width, height float32) BodyID {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: float64(x), Y: float64(y)})
	w.space.AddBody(body)
	box := cp.NewBox(body, float64(width), float64(height), 0)
	box.SetFriction(0.8)
	box.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(box)
	return w.register(body)
}

// NewCharacter adds an upright dynamic box body for a character.
func (w *World) NewCharacter(pos math.Vec3, width, height, mass float32) *CharacterBody {
	body := cp.NewBody(float64(mass), gomath.Inf(1))
	body.SetPosition(cp.Vector{X: float64(pos.X), Y: float64(pos.Y)})
	w.space.AddBody(body)

	shape := cp.NewBox(body, float64(width), float64(height), 0)
	// Zero friction: horizontal velocity is owned by the controller.
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	w.space.AddShape(shape)

	c := &CharacterBody{
		id:          w.register(body),
		body:        body,
		z:           pos.Z,
		orientation: math.QuatIdentity(),
	}
	w.characters = append(w.characters, c)
	w.log.Debug("character body added", zap.Stringer("id", c.id), zap.Float32("x", pos.X), zap.Float32("y", pos.Y))
	return c
}

// SubscribeContacts implements ContactSource.
func (w *World) SubscribeContacts(fn func(Contact)) *event.Subscription {
	return w.contacts.Subscribe(fn)
}

// Step advances the simulation. Contact listeners are called from inside Step.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, c := range w.characters {
		c.z += c.vz * float32(dt)
	}
}

func (w *World) register(body *cp.Body) BodyID {
	id := NewBodyID()
	w.ids[body] = id
	return id
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeSolid)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		idA, okA := world.ids[shapeA.Body()]
		idB, okB := world.ids[shapeB.Body()]
		if !okA || !okB {
			return true
		}
		n := arb.Normal()
		world.contacts.Emit(Contact{
			BodyA:  idA,
			BodyB:  idB,
			Normal: math.Vec3{X: float32(n.X), Y: float32(n.Y)},
		})
		return true
	}
}

// CharacterBody is a Body backed by a Chipmunk dynamic body plus an integrated depth axis.
type CharacterBody struct {
	id          BodyID
	body        *cp.Body
	z, vz       float32
	orientation math.Quat
}

// ID implements Body.
func (c *CharacterBody) ID() BodyID { return c.id }

// Position implements Body.
func (c *CharacterBody) Position() math.Vec3 {
	p := c.body.Position()
	return math.Vec3{X: float32(p.X), Y: float32(p.Y), Z: c.z}
}

// SetPosition implements Body.
func (c *CharacterBody) SetPosition(p math.Vec3) {
	c.body.SetPosition(cp.Vector{X: float64(p.X), Y: float64(p.Y)})
	c.z = p.Z
}

// Orientation implements Body. Chipmunk keeps the box upright, so the
// orientation is carried alongside for collision-follower use only.
func (c *CharacterBody) Orientation() math.Quat { return c.orientation }

// SetOrientation implements Body.
func (c *CharacterBody) SetOrientation(q math.Quat) { c.orientation = q }

// Velocity implements Body.
func (c *CharacterBody) Velocity() math.Vec3 {
	v := c.body.Velocity()
	return math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: c.vz}
}

// SetVelocity implements Body.
func (c *CharacterBody) SetVelocity(v math.Vec3) {
	c.body.SetVelocityVector(cp.Vector{X: float64(v.X), Y: float64(v.Y)})
	c.vz = v.Z
}
