package locomotion

import (
	"github.com/Faultbox/strider/internal/engine/camera"
	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/pkg/math"
)

// Frame is the per-update input a strategy works from.
type Frame struct {
	DT     float32
	Input  input.Snapshot
	Yaw    float32 // camera heading
	Offset float32 // DirectionOffset of Input
	Moving bool
}

// Strategy applies movement intent to the character and its physics body.
type Strategy interface {
	Mode() Mode
	Tuning() Tuning
	SetTuning(t Tuning)
	Move(rig Rig, st *CharacterState, f Frame)
}

// LookRelative drives the physics body's velocity and follows where the solver puts it.
type LookRelative struct {
	tuning Tuning
}

// NewLookRelative creates the physics-driven strategy.
func NewLookRelative(t Tuning) *LookRelative {
	return &LookRelative{tuning: t}
}

func (s *LookRelative) Mode() Mode { return ModeLook }
func (s *LookRelative) Tuning() Tuning { return s.tuning }
func (s *LookRelative) SetTuning(t Tuning) { s.tuning = t }

// InputVector builds the local-space movement vector for one update.
// On opposing keys the later assignment wins.
func (s *LookRelative) InputVector(in input.Snapshot, run bool, dt float32) math.Vec3 {
	step := s.tuning.Velocity(run) * dt * s.tuning.DeltaScale

	var v math.Vec3
	if in.Forward {
		v.Z = -step
	}
	if in.Back {
		v.Z = step
	}
	if in.Left {
		v.X = -step
	}
	if in.Right {
		v.X = step
	}
	return v
}

func (s *LookRelative) Move(rig Rig, st *CharacterState, f Frame) {
	yawQ := math.QuatFromYaw(f.Yaw)
	target := s.InputVector(f.Input, st.RunToggle, f.DT).Rotate(yawQ)

	vel := rig.Body.Velocity()
	h := vel.XZ().Lerp(target.XZ(), s.tuning.Smoothing)
	vel = vel.WithXZ(h)

	if f.Input.Jump && rig.Ground.ConsumeJump() {
		vel.Y = s.tuning.JumpVelocity
		st.Jumped = true
	}
	rig.Body.SetVelocity(vel)
	rig.Body.SetOrientation(yawQ)

	pos := rig.Body.Position()
	rig.Model.SetPosition(pos.Sub(math.Vec3{Y: s.tuning.ModelYOffset}))
	rig.Model.SetOrientation(yawQ)

	st.Position = pos
	st.Orientation = yawQ
	st.HorizontalVelocity = h
}

// OrbitRelative moves the character directly, turning it toward the camera-relative
// heading, and drags the orbit camera and physics body along.
type OrbitRelative struct {
	tuning Tuning
	camera camera.OrbitTarget
}

// NewOrbitRelative creates the kinematic strategy around cam.
func NewOrbitRelative(cam camera.OrbitTarget, t Tuning) *OrbitRelative {
	return &OrbitRelative{tuning: t, camera: cam}
}

// TargetHeight is how far above the character the orbit camera looks.
const TargetHeight = 1.0

func (s *OrbitRelative) Mode() Mode { return ModeOrbit }
func (s *OrbitRelative) Tuning() Tuning { return s.tuning }
func (s *OrbitRelative) SetTuning(t Tuning) { s.tuning = t }

func (s *OrbitRelative) Move(rig Rig, st *CharacterState, f Frame) {
	st.HorizontalVelocity = math.Vec2{}

	if f.Moving {
		heading := f.Yaw + f.Offset
		st.Orientation = st.Orientation.RotateTowards(math.QuatFromYaw(heading), s.tuning.RotateStep)

		// Camera forward on the ground plane, turned by the offset.
		dir := math.Vec3{Z: -1}.RotateY(heading)
		speed := s.tuning.Velocity(st.RunToggle)
		delta := dir.Scale(speed * f.DT)

		st.Position = st.Position.Add(delta)
		st.HorizontalVelocity = dir.XZ().Scale(speed)
		s.camera.Translate(delta)
	}
	s.camera.SetTarget(st.Position.Add(math.Vec3{Y: TargetHeight}))

	rig.Model.SetPosition(st.Position)
	rig.Model.SetOrientation(st.Orientation)

	bodyPos := rig.Body.Position()
	rig.Body.SetPosition(bodyPos.WithXZ(st.Position.XZ()))
	rig.Body.SetOrientation(st.Orientation)
}
