package input

// Snapshot is the input state handed to the controller once per frame.
type Snapshot struct {
	Forward, Back, Left, Right bool

	// Look delta accumulated since the previous snapshot, in pointer units.
	LookDX, LookDY float32

	// Run is set when the run toggle was pressed since the previous snapshot.
	Run bool
	// Jump is set when jump went from released to pressed since the previous snapshot.
	Jump bool
	// JumpHeld reports the level of the jump key.
	JumpHeld bool
}

// Moving reports whether any movement key is held.
func (s Snapshot) Moving() bool {
	return s.Forward || s.Back || s.Left || s.Right
}

// Sampler accumulates key and look events between frames.
// Movement keys are level-triggered; jump and run are latched on their press edge.
type Sampler struct {
	bindings Bindings
	enabled  bool

	held           map[Key]bool
	lookDX, lookDY float32
	jumpEdge       bool
	runEdge        bool
}

// NewSampler creates a disabled sampler using b (DefaultBindings when nil).
func NewSampler(b Bindings) *Sampler {
	if b == nil {
		b = DefaultBindings()
	}
	return &Sampler{
		bindings: b,
		held:     make(map[Key]bool),
	}
}

// SetBindings replaces the key map. Held keys that are still bound stay held;
// keys the new map no longer binds are released.
func (s *Sampler) SetBindings(b Bindings) {
	if b == nil {
		b = DefaultBindings()
	}
	s.bindings = b
	for k := range s.held {
		if a, ok := b[k]; !ok || a == ActionNone {
			delete(s.held, k)
		}
	}
}

// SetEnabled turns sampling on or off. Turning it off drops everything pending,
// since release events arriving while disabled would be lost.
func (s *Sampler) SetEnabled(enabled bool) {
	if !enabled {
		s.Reset()
	}
	s.enabled = enabled
}

// Enabled reports whether events are being recorded.
func (s *Sampler) Enabled() bool {
	return s.enabled
}

// OnKeyChange records a key press or release. Unbound keys are ignored.
func (s *Sampler) OnKeyChange(key Key, pressed bool) {
	if !s.enabled {
		return
	}
	action, ok := s.bindings[key]
	if !ok || action == ActionNone {
		return
	}

	if !pressed {
		delete(s.held, key)
		return
	}

	// Key repeat delivers presses for a key that is already down.
	if s.held[key] {
		return
	}
	s.held[key] = true

	switch action {
	case ActionJump:
		s.jumpEdge = true
	case ActionRun:
		s.runEdge = true
	}
}

// OnLookDelta accumulates relative pointer motion.
func (s *Sampler) OnLookDelta(dx, dy float32) {
	if !s.enabled {
		return
	}
	s.lookDX += dx
	s.lookDY += dy
}

// Consume returns the current snapshot and clears the look delta and edges.
func (s *Sampler) Consume() Snapshot {
	snap := Snapshot{
		Forward:  s.actionHeld(ActionForward),
		Back:     s.actionHeld(ActionBack),
		Left:     s.actionHeld(ActionLeft),
		Right:    s.actionHeld(ActionRight),
		LookDX:   s.lookDX,
		LookDY:   s.lookDY,
		Run:      s.runEdge,
		Jump:     s.jumpEdge,
		JumpHeld: s.actionHeld(ActionJump),
	}
	s.lookDX, s.lookDY = 0, 0
	s.jumpEdge, s.runEdge = false, false
	return snap
}

// Reset releases every key and drops pending deltas and edges.
func (s *Sampler) Reset() {
	clear(s.held)
	s.lookDX, s.lookDY = 0, 0
	s.jumpEdge, s.runEdge = false, false
}

func (s *Sampler) actionHeld(a Action) bool {
	for k := range s.held {
		if s.bindings[k] == a {
			return true
		}
	}
	return false
}
