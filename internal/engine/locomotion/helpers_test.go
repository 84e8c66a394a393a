package locomotion

import (
	"github.com/Faultbox/strider/internal/engine/ground"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/pkg/math"
)

type fakeBody struct {
	id  physics.BodyID
	pos math.Vec3
	rot math.Quat
	vel math.Vec3
}

func newFakeBody(p math.Vec3) *fakeBody {
	return &fakeBody{id: physics.NewBodyID(), pos: p, rot: math.QuatIdentity()}
}

func (b *fakeBody) ID() physics.BodyID { return b.id }
func (b *fakeBody) Position() math.Vec3 { return b.pos }
func (b *fakeBody) SetPosition(p math.Vec3) { b.pos = p }
func (b *fakeBody) Orientation() math.Quat { return b.rot }
func (b *fakeBody) SetOrientation(q math.Quat) { b.rot = q }
func (b *fakeBody) Velocity() math.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v math.Vec3) { b.vel = v }

type fakeOrbit struct {
	pos    math.Vec3
	target math.Vec3
}

func (o *fakeOrbit) Position() math.Vec3 { return o.pos }
func (o *fakeOrbit) SetTarget(t math.Vec3) { o.target = t }

func (o *fakeOrbit) Translate(d math.Vec3) {
	o.pos = o.pos.Add(d)
	o.target = o.target.Add(d)
}

func land(m *ground.Monitor, self physics.BodyID) {
	m.HandleContact(physics.Contact{BodyA: physics.NewBodyID(), BodyB: self, Normal: math.UnitY})
}
