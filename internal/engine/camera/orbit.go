package camera

import (
	gomath "math"

	"github.com/Faultbox/strider/pkg/math"
)

// OrbitTarget is the camera contract used by kinematic locomotion: it reads
// the camera position and drags the camera along with the character.
type OrbitTarget interface {
	Position() math.Vec3
	SetTarget(t math.Vec3)
	Translate(delta math.Vec3)
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from target
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera with defaults sized for a human character.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.35,
		RotationY:       0.0,
		MinDistance:     2.0,
		MaxDistance:     15.0,
		MinPitch:        0.05,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.UnitY)
}

// Pose returns the current placement as a Pose.
func (c *OrbitCamera) Pose() Pose {
	pos := c.Position()
	return Pose{
		Yaw:         c.RotationY,
		Pitch:       -c.RotationX,
		Offset:      pos.Sub(c.Target),
		Position:    pos,
		Orientation: math.QuatFromEuler(-c.RotationX, c.RotationY, 0, math.OrderYXZ),
	}
}

// SetTarget moves the orbit center. The angles are kept, so the camera follows.
func (c *OrbitCamera) SetTarget(t math.Vec3) {
	c.Target = t
}

// Translate shifts camera and target together.
func (c *OrbitCamera) Translate(delta math.Vec3) {
	c.Target = c.Target.Add(delta)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
