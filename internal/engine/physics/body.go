// Package physics defines the rigid-body collaborator contract used by the controllers
// and a Chipmunk-backed implementation of it.
package physics

import (
	"github.com/google/uuid"

	"github.com/Faultbox/strider/internal/engine/event"
	"github.com/Faultbox/strider/pkg/math"
)

// BodyID identifies a body across collision notifications.
type BodyID uuid.UUID

// NewBodyID returns a fresh random identity.
func NewBodyID() BodyID {
	return BodyID(uuid.New())
}

// String returns the canonical UUID form.
func (id BodyID) String() string {
	return uuid.UUID(id).String()
}

// Contact is one collision notification. Normal points from BodyA toward BodyB,
// so its sign depends on which body the solver listed first.
type Contact struct {
	BodyA  BodyID
	BodyB  BodyID
	Normal math.Vec3
}

// Involves reports whether id is one of the two parties.
func (c Contact) Involves(id BodyID) bool {
	return c.BodyA == id || c.BodyB == id
}

// Body is a handle to a simulated rigid body. The solver owns it; controllers only
// read and assign its state.
type Body interface {
	ID() BodyID
	Position() math.Vec3
	SetPosition(p math.Vec3)
	Orientation() math.Quat
	SetOrientation(q math.Quat)
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
}

// ContactSource delivers collision notifications for the bodies it simulates.
type ContactSource interface {
	SubscribeContacts(fn func(Contact)) *event.Subscription
}
