// Package ground tracks whether the character is standing on something.
//
// The flag is event driven: a contact whose normal points up against the
// character sets it, and only a consumed jump (or an expired grace window)
// clears it. There is no per-frame ground probe.
package ground

import (
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/event"
	"github.com/Faultbox/strider/internal/engine/physics"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/pkg/math"
)

// MinUpDot is the smallest normal·up that counts as standing on a surface.
const MinUpDot = 0.5

// Option configures a Monitor.
type Option func(*Monitor)

// WithGraceFrames makes Grounded report false once n ticks pass without a
// qualifying contact. Zero disables the window.
func WithGraceFrames(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.grace = uint64(n)
		}
	}
}

// Monitor watches contacts for one body.
type Monitor struct {
	self     physics.BodyID
	grace    uint64
	grounded bool

	frame       uint64
	lastContact uint64

	pending []physics.Contact
	log     *zap.Logger
}

// NewMonitor creates a monitor for the body identified by self. It starts airborne.
func NewMonitor(self physics.BodyID, opts ...Option) *Monitor {
	m := &Monitor{
		self: self,
		log:  logger.Named("ground"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes to src. Contacts are queued and applied on Flush.
func (m *Monitor) Attach(src physics.ContactSource) *event.Subscription {
	return src.SubscribeContacts(m.Enqueue)
}

// Enqueue stores a contact for the next Flush. Safe to call from inside a
// solver step.
func (m *Monitor) Enqueue(c physics.Contact) {
	m.pending = append(m.pending, c)
}

// Flush applies every queued contact in arrival order.
func (m *Monitor) Flush() {
	for _, c := range m.pending {
		m.HandleContact(c)
	}
	m.pending = m.pending[:0]
}

// Pending returns the number of queued contacts.
func (m *Monitor) Pending() int {
	return len(m.pending)
}

// HandleContact applies one contact immediately.
func (m *Monitor) HandleContact(c physics.Contact) {
	var normal math.Vec3
	switch m.self {
	case c.BodyA:
		// Normal points away from us; flip it so it points toward us.
		normal = c.Normal.Neg()
	case c.BodyB:
		normal = c.Normal
	default:
		m.log.Debug("ignoring foreign contact",
			zap.Stringer("a", c.BodyA),
			zap.Stringer("b", c.BodyB))
		return
	}

	if normal.Dot(math.UnitY) <= MinUpDot {
		return
	}
	if !m.grounded {
		m.log.Debug("landed", zap.Uint64("frame", m.frame))
	}
	m.grounded = true
	m.lastContact = m.frame
}

// Grounded reports whether a jump would be allowed now.
func (m *Monitor) Grounded() bool {
	if !m.grounded {
		return false
	}
	if m.grace > 0 && m.frame-m.lastContact > m.grace {
		return false
	}
	return true
}

// ConsumeJump reports whether the character may jump and leaves it airborne.
func (m *Monitor) ConsumeJump() bool {
	ok := m.Grounded()
	m.grounded = false
	return ok
}

// Tick advances the frame counter used by the grace window.
func (m *Monitor) Tick() {
	m.frame++
	if m.grounded && m.grace > 0 && m.frame-m.lastContact > m.grace {
		m.grounded = false
		m.log.Debug("grace expired", zap.Uint64("frame", m.frame))
	}
}

// Frame returns the number of ticks seen.
func (m *Monitor) Frame() uint64 {
	return m.frame
}

// Reset drops queued contacts and marks the body airborne.
func (m *Monitor) Reset() {
	m.pending = m.pending[:0]
	m.grounded = false
}
