// Package camera places the third-person camera relative to the character.
package camera

import (
	"github.com/Faultbox/strider/pkg/math"
)

// Pose is the camera placement derived for one frame.
type Pose struct {
	Yaw   float32
	Pitch float32

	// Offset is the local displacement the pose was built from.
	Offset math.Vec3

	Position    math.Vec3
	Orientation math.Quat
}

// ViewMatrix returns the view matrix for this pose.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.ViewFromPose(p.Position, p.Orientation)
}

// Forward returns the direction the camera looks along.
func (p Pose) Forward() math.Vec3 {
	return math.Vec3{Z: -1}.Rotate(p.Orientation)
}

// Node is a transform a renderer can attach children to.
type Node struct {
	Position    math.Vec3
	Orientation math.Quat
}

// Matrix returns the node's model matrix.
func (n *Node) Matrix() math.Mat4 {
	return math.Compose(n.Position, n.Orientation, math.Vec3{X: 1, Y: 1, Z: 1})
}

// YawToward returns the heading from the character to the camera on the XZ plane.
func YawToward(cameraPos, characterPos math.Vec3) float32 {
	return math.Atan2(cameraPos.X-characterPos.X, cameraPos.Z-characterPos.Z)
}
