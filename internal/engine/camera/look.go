package camera

import (
	"github.com/Faultbox/strider/pkg/math"
)

// Defaults for the pointer-look rig.
const (
	DefaultLookSensitivity = 0.0005
	DefaultPitchLimit      = math.Pi / 2.5
)

// DefaultLookOffset places the camera over the right shoulder, behind the body.
var DefaultLookOffset = math.Vec3{X: -0.65, Y: -0.85, Z: -2.0}

// LookRig is a yaw node holding a pitch node holding the camera.
// Pointer motion turns the yaw node and tilts the pitch node.
type LookRig struct {
	Sensitivity float32
	PitchLimit  float32
	Offset      math.Vec3

	yaw   float32
	pitch float32
	node  Node
}

// NewLookRig creates a rig with default tuning, looking down -Z.
func NewLookRig() *LookRig {
	return &LookRig{
		Sensitivity: DefaultLookSensitivity,
		PitchLimit:  DefaultPitchLimit,
		Offset:      DefaultLookOffset,
		node:        Node{Orientation: math.QuatIdentity()},
	}
}

// HandleLook applies a relative pointer delta.
func (r *LookRig) HandleLook(dx, dy float32) {
	r.yaw -= dx * r.Sensitivity
	r.pitch -= dy * r.Sensitivity
	r.pitch = math.Clamp(r.pitch, -r.PitchLimit, r.PitchLimit)
}

// Yaw returns the accumulated heading. It is not wrapped.
func (r *LookRig) Yaw() float32 {
	return r.yaw
}

// Pitch returns the clamped tilt.
func (r *LookRig) Pitch() float32 {
	return r.pitch
}

// SetAngles overrides yaw and pitch; pitch is clamped.
func (r *LookRig) SetAngles(yaw, pitch float32) {
	r.yaw = yaw
	r.pitch = math.Clamp(pitch, -r.PitchLimit, r.PitchLimit)
}

// YawQuat returns the rotation of the yaw node alone.
func (r *LookRig) YawQuat() math.Quat {
	return math.QuatFromYaw(r.yaw)
}

// Pose places the camera for a body at bodyPos and moves the yaw node there.
func (r *LookRig) Pose(bodyPos math.Vec3) Pose {
	q := math.QuatFromEuler(r.pitch, r.yaw, 0, math.OrderYXZ)

	r.node.Position = bodyPos
	r.node.Orientation = r.YawQuat()

	return Pose{
		Yaw:         r.yaw,
		Pitch:       r.pitch,
		Offset:      r.Offset,
		Position:    bodyPos.Sub(r.Offset.Rotate(q)),
		Orientation: q,
	}
}

// Node returns the yaw node.
func (r *LookRig) Node() *Node {
	return &r.node
}
