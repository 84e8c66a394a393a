package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/strider/internal/engine/animation"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/pkg/math"
)

func TestLandAndJumpOnChipmunkWorld(t *testing.T) {
	world := physics.NewWorld(physics.DefaultWorldConfig())
	world.AddGround(0, 50)
	body := world.NewCharacter(math.Vec3{Y: 3}, 0.6, 1.4, 70)

	mixer := animation.NewMixer()
	coord, err := New(Deps{
		Body:     body,
		Contacts: world,
		Mixer:    mixer,
		Clips: animation.ClipSet{
			animation.Idle: mixer.Add("idle", 2),
			animation.Walk: mixer.Add("walk", 1),
			animation.Run:  mixer.Add("run", 0.8),
		},
	}, DefaultSettings())
	require.NoError(t, err)
	defer coord.Dispose()

	require.NoError(t, coord.Lock())
	require.Equal(t, Enabled, coord.State())

	const dt = 1.0 / 60
	for i := 0; i < 180; i++ {
		world.Step(dt)
		coord.Update(dt)
	}
	st := coord.Character()
	require.True(t, st.Grounded, "should have landed")
	assert.InDelta(t, 0.7, st.Position.Y, 0.15)
	assert.InDelta(t, st.Position.Y-0.7, coord.Model().Position().Y, 1e-5)

	coord.KeyChange(input.KeySpace, true)
	world.Step(dt)
	coord.Update(dt)
	assert.InDelta(t, 10, body.Velocity().Y, 1e-4)
	assert.False(t, coord.Character().Grounded)

	// Walk forward while airborne and after landing; depth comes from Z velocity.
	coord.KeyChange(input.KeySpace, false)
	coord.KeyChange(input.KeyW, true)
	for i := 0; i < 240; i++ {
		world.Step(dt)
		coord.Update(dt)
	}
	st = coord.Character()
	assert.True(t, st.Grounded)
	assert.Less(t, st.Position.Z, float32(-1))
	assert.Equal(t, animation.Walk, st.CurrentAnimation)
}
