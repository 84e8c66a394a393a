// Package event provides synchronous listener lists with explicit subscription handles.
package event

// Subscription detaches a listener when Unsubscribe is called.
// Unsubscribe is idempotent and safe on a nil receiver.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the listener. Later calls do nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Active reports whether the listener is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Dispatcher delivers values of type T to listeners in subscription order.
// It is not safe for concurrent use; all calls happen on the frame loop.
type Dispatcher[T any] struct {
	nextID   uint64
	handlers []entry[T]
}

// Subscribe attaches fn and returns its handle.
func (d *Dispatcher[T]) Subscribe(fn func(T)) *Subscription {
	d.nextID++
	id := d.nextID
	d.handlers = append(d.handlers, entry[T]{id: id, fn: fn})
	return &Subscription{cancel: func() { d.remove(id) }}
}

// Emit calls every listener with v. Listeners may unsubscribe while being called.
func (d *Dispatcher[T]) Emit(v T) {
	if len(d.handlers) == 0 {
		return
	}
	handlers := make([]entry[T], len(d.handlers))
	copy(handlers, d.handlers)
	for _, h := range handlers {
		h.fn(v)
	}
}

// Len returns the number of attached listeners.
func (d *Dispatcher[T]) Len() int {
	return len(d.handlers)
}

// Clear detaches every listener.
func (d *Dispatcher[T]) Clear() {
	d.handlers = nil
}

func (d *Dispatcher[T]) remove(id uint64) {
	for i, h := range d.handlers {
		if h.id == id {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
}
