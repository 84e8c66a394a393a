package animation

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/logger"
)

// DefaultFadeDuration is the cross-fade length in seconds.
const DefaultFadeDuration = 0.2

// ErrMissingClip is returned when a clip set lacks a state.
var ErrMissingClip = errors.New("animation: missing clip")

// ErrUnknownState is returned for a State outside Idle, Walk and Run.
var ErrUnknownState = errors.New("animation: unknown state")

// Selector keeps exactly one current state and cross-fades on every change.
type Selector struct {
	mixer   Mixer
	clips   ClipSet
	current State
	fade    float32
	log     *zap.Logger
}

// NewSelector validates clips and starts playing the initial state.
func NewSelector(mixer Mixer, clips ClipSet, initial State) (*Selector, error) {
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, initial)
	}
	for _, st := range States {
		if clips[st] == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingClip, st)
		}
	}

	s := &Selector{
		mixer:   mixer,
		clips:   clips,
		current: initial,
		fade:    DefaultFadeDuration,
		log:     logger.Named("animation"),
	}
	clips[initial].Play()
	return s, nil
}

// SetFadeDuration changes the cross-fade length used by later transitions.
func (s *Selector) SetFadeDuration(seconds float32) {
	if seconds >= 0 {
		s.fade = seconds
	}
}

// Current returns the active state.
func (s *Selector) Current() State {
	return s.current
}

// Update selects the state for this frame and advances the mixer.
// It reports whether a transition started.
func (s *Selector) Update(dt float32, moving, runToggle bool) bool {
	next := Next(moving, runToggle)
	changed := next != s.current
	if changed {
		prev := s.clips[s.current]
		in := s.clips[next]

		prev.FadeOut(s.fade)
		in.Reset()
		in.FadeIn(s.fade)
		in.Play()

		s.log.Debug("transition",
			zap.Stringer("from", s.current),
			zap.Stringer("to", next))
		s.current = next
	}

	s.mixer.Advance(dt)
	return changed
}
