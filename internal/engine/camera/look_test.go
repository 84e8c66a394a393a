package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/strider/pkg/math"
)

const eps = 1e-4

func TestPitchClampedForAnyDelta(t *testing.T) {
	deltas := []float32{-1e9, -1e6, -5000, -1, 0, 1, 5000, 1e6, 1e9}
	for _, first := range deltas {
		for _, second := range deltas {
			r := NewLookRig()
			r.HandleLook(0, first)
			r.HandleLook(0, second)
			assert.LessOrEqual(t, r.Pitch(), DefaultPitchLimit)
			assert.GreaterOrEqual(t, r.Pitch(), -DefaultPitchLimit)
		}
	}
}

func TestHandleLookSigns(t *testing.T) {
	r := NewLookRig()
	r.HandleLook(100, 100)

	assert.InDelta(t, -0.05, r.Yaw(), eps)
	assert.InDelta(t, -0.05, r.Pitch(), eps)
}

func TestYawIsUnbounded(t *testing.T) {
	r := NewLookRig()
	for i := 0; i < 100; i++ {
		r.HandleLook(-1e5, 0)
	}
	assert.Greater(t, r.Yaw(), 2*math.Pi)
}

func TestPoseAtRest(t *testing.T) {
	r := NewLookRig()
	body := math.Vec3{X: 1, Y: 2, Z: 3}
	p := r.Pose(body)

	// Identity rotation: camera sits at body minus offset.
	assert.InDelta(t, 1.65, p.Position.X, eps)
	assert.InDelta(t, 2.85, p.Position.Y, eps)
	assert.InDelta(t, 5.0, p.Position.Z, eps)
	assert.InDelta(t, 1, p.Orientation.W, eps)

	fwd := p.Forward()
	assert.InDelta(t, -1, fwd.Z, eps)
	assert.Equal(t, body, r.Node().Position)
}

func TestPoseFollowsYaw(t *testing.T) {
	r := NewLookRig()
	r.SetAngles(math.HalfPi, 0)
	p := r.Pose(math.Vec3{})

	// Facing -X: the offset rotates a quarter turn.
	assert.InDelta(t, 2.0, p.Position.X, eps)
	assert.InDelta(t, 0.85, p.Position.Y, eps)
	assert.InDelta(t, -0.65, p.Position.Z, eps)

	fwd := p.Forward()
	assert.InDelta(t, -1, fwd.X, eps)

	yawFwd := math.Vec3{Z: -1}.Rotate(r.Node().Orientation)
	assert.InDelta(t, -1, yawFwd.X, eps)
	assert.InDelta(t, 0, yawFwd.Y, eps)
}

func TestPitchDoesNotTiltYawNode(t *testing.T) {
	r := NewLookRig()
	r.SetAngles(0, 2)
	r.Pose(math.Vec3{})

	fwd := math.Vec3{Z: -1}.Rotate(r.Node().Orientation)
	assert.InDelta(t, 0, fwd.Y, eps)
	assert.InDelta(t, DefaultPitchLimit, r.Pitch(), eps)
}

func TestYawToward(t *testing.T) {
	char := math.Vec3{}
	assert.InDelta(t, 0, YawToward(math.Vec3{Z: 5}, char), eps)
	assert.InDelta(t, math.HalfPi, YawToward(math.Vec3{X: 5}, char), eps)
	assert.InDelta(t, math.Pi, YawToward(math.Vec3{Z: -5}, char), eps)
}
