package sdlhost

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/input"
	"github.com/Faultbox/strider/internal/logger"
)

// EventType identifies a host event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseWheel
	EventPointerLock
)

// Event is a processed SDL event.
type Event struct {
	Type   EventType
	Key    input.Key
	Repeat bool
	Width  int
	Height int
	DX, DY float32 // relative motion, or wheel delta
	Button uint8
	Locked bool // EventPointerLock
}

// Input polls SDL and owns pointer capture.
type Input struct {
	events  []Event
	pending []Event
	locked  bool
	log     *zap.Logger
}

// NewInput creates an input pump.
func NewInput() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		log:    logger.Named("sdlinput"),
	}
}

// SetPointerLocked captures or releases the pointer using SDL relative mouse
// mode. The change is reported as an EventPointerLock on the next Update.
func (i *Input) SetPointerLocked(locked bool) error {
	if rc := sdl.SetRelativeMouseMode(locked); rc != 0 {
		return fmt.Errorf("SDL_SetRelativeMouseMode(%v): %w", locked, sdl.GetError())
	}
	if i.locked != locked {
		i.locked = locked
		i.pending = append(i.pending, Event{Type: EventPointerLock, Locked: locked})
	}
	return nil
}

// PointerLocked reports whether the pointer is captured.
func (i *Input) PointerLocked() bool {
	return i.locked
}

// Update polls SDL events and converts them to host events.
// Returns true if the window should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.events = append(i.events, i.pending...)
	i.pending = i.pending[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				if i.locked {
					if err := i.SetPointerLocked(false); err != nil {
						i.log.Warn("release on focus loss failed", zap.Error(err))
					}
					i.events = append(i.events, i.pending...)
					i.pending = i.pending[:0]
				}
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:    KeyFromScancode(e.Keysym.Scancode),
				Repeat: e.Repeat != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouseMove,
				DX:   float32(e.XRel),
				DY:   float32(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					Button: e.Button,
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type: EventMouseWheel,
				DX:   float32(e.X),
				DY:   float32(e.Y),
			})
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
