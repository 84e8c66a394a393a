package locomotion

import "github.com/Faultbox/strider/pkg/math"

// Transform is the visual node the character is drawn with.
type Transform interface {
	Position() math.Vec3
	SetPosition(p math.Vec3)
	Orientation() math.Quat
	SetOrientation(q math.Quat)
}

// Model is a plain Transform.
type Model struct {
	pos math.Vec3
	rot math.Quat
}

// NewModel returns a model at p facing -Z.
func NewModel(p math.Vec3) *Model {
	return &Model{pos: p, rot: math.QuatIdentity()}
}

func (m *Model) Position() math.Vec3 { return m.pos }
func (m *Model) SetPosition(p math.Vec3) { m.pos = p }
func (m *Model) Orientation() math.Quat { return m.rot }
func (m *Model) SetOrientation(q math.Quat) { m.rot = q }

// Matrix returns the model matrix.
func (m *Model) Matrix() math.Mat4 {
	return math.Compose(m.pos, m.rot, math.Vec3{X: 1, Y: 1, Z: 1})
}
