package events

import "sync"

// Stream is a synchronous fan-out of UI input events. Handlers run on the
// publishing goroutine, in subscription order, so a Bubble Tea model can
// publish from Update and observe the effects before returning.
type Stream[E any] struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []listener[E]
}

type listener[E any] struct {
	id      uint64
	handler func(E)
}

// NewStream creates an empty stream
func NewStream[E any]() *Stream[E] {
	return &Stream[E]{}
}

// Subscribe registers handler and returns a func that removes it
func (s *Stream[E]) Subscribe(handler func(E)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[E]{id: id, handler: handler})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish sends event to all listeners
func (s *Stream[E]) Publish(event E) {
	s.mu.RLock()
	listeners := make([]listener[E], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.handler(event)
	}
}

// Len returns the number of listeners
func (s *Stream[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}
