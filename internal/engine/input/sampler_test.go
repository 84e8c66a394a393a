package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledSampler() *Sampler {
	s := NewSampler(nil)
	s.SetEnabled(true)
	return s
}

func TestMovementKeysAreLevelTriggered(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyW, true)
	s.OnKeyChange(KeyD, true)

	first := s.Consume()
	second := s.Consume()
	assert.True(t, first.Forward && first.Right)
	assert.True(t, second.Forward && second.Right, "held keys persist across consumes")

	s.OnKeyChange(KeyW, false)
	third := s.Consume()
	assert.False(t, third.Forward)
	assert.True(t, third.Right)
}

func TestArrowKeysShareActions(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyW, true)
	s.OnKeyChange(KeyUp, true)
	s.OnKeyChange(KeyW, false)

	assert.True(t, s.Consume().Forward, "Up still holds forward")

	s.OnKeyChange(KeyLeft, true)
	s.OnKeyChange(KeyDown, true)
	snap := s.Consume()
	assert.True(t, snap.Left)
	assert.True(t, snap.Back)
}

func TestLookDeltaAccumulatesAndResets(t *testing.T) {
	s := enabledSampler()
	s.OnLookDelta(3, -1)
	s.OnLookDelta(2, 4)

	snap := s.Consume()
	assert.Equal(t, float32(5), snap.LookDX)
	assert.Equal(t, float32(3), snap.LookDY)

	snap = s.Consume()
	assert.Zero(t, snap.LookDX)
	assert.Zero(t, snap.LookDY)
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeySpace, true)
	// Key repeat while held.
	s.OnKeyChange(KeySpace, true)

	snap := s.Consume()
	assert.True(t, snap.Jump)
	assert.True(t, snap.JumpHeld)

	s.OnKeyChange(KeySpace, true)
	snap = s.Consume()
	assert.False(t, snap.Jump, "held jump must not re-trigger")
	assert.True(t, snap.JumpHeld)

	s.OnKeyChange(KeySpace, false)
	s.OnKeyChange(KeySpace, true)
	assert.True(t, s.Consume().Jump, "release then press is a new edge")
}

func TestRunToggleEdge(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyShiftLeft, true)
	assert.True(t, s.Consume().Run)
	assert.False(t, s.Consume().Run)
}

func TestDisabledDropsInput(t *testing.T) {
	s := NewSampler(nil)
	s.OnKeyChange(KeyW, true)
	s.OnKeyChange(KeySpace, true)
	s.OnLookDelta(10, 10)

	assert.Equal(t, Snapshot{}, s.Consume())
}

func TestDisableReleasesHeldKeys(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyW, true)
	s.OnLookDelta(1, 1)

	s.SetEnabled(false)
	s.SetEnabled(true)

	assert.Equal(t, Snapshot{}, s.Consume())
}

func TestSetBindingsKeepsBoundHeldKeys(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyW, true)
	s.OnKeyChange(KeyA, true)

	s.SetBindings(Bindings{KeyW: ActionBack, KeyD: ActionRight})
	snap := s.Consume()
	assert.True(t, snap.Back, "W is still down and now means back")
	assert.False(t, snap.Forward)
	assert.False(t, snap.Left, "A is no longer bound")

	s.OnKeyChange(KeyW, false)
	assert.False(t, s.Consume().Back)
}

func TestSetBindingsSameMapKeepsMovement(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyUp, true)
	s.SetBindings(DefaultBindings())
	assert.True(t, s.Consume().Forward)
}

func TestUnboundKeyIgnored(t *testing.T) {
	s := enabledSampler()
	s.OnKeyChange(KeyEscape, true)
	assert.Equal(t, Snapshot{}, s.Consume())
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string][]string{
		"forward": {"w", "Up"},
		"jump":    {"Space"},
	})
	require.NoError(t, err)
	assert.Equal(t, ActionForward, b[KeyW])
	assert.Equal(t, ActionForward, b[KeyUp])
	assert.Equal(t, ActionJump, b[KeySpace])
	assert.NotContains(t, b, KeyS)
}

func TestParseBindingsErrors(t *testing.T) {
	_, err := ParseBindings(map[string][]string{"fly": {"W"}})
	assert.Error(t, err)

	_, err = ParseBindings(map[string][]string{"forward": {"Tab"}})
	assert.Error(t, err)

	_, err = ParseBindings(map[string][]string{"forward": {"W"}, "back": {"W"}})
	assert.Error(t, err)
}

func TestKeyAndActionNames(t *testing.T) {
	assert.Equal(t, "ShiftLeft", KeyShiftLeft.String())
	assert.Equal(t, "Unknown", Key(999).String())
	assert.Equal(t, "jump", ActionJump.String())

	k, err := ParseKey("space")
	require.NoError(t, err)
	assert.Equal(t, KeySpace, k)
}
