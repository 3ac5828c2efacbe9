// Package bus is a small in-process event bus used to observe gesture
// lifecycle events (session start/end, reset, render) without coupling
// the engine to its observers.
package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one notification. Data is event-type specific.
type Event struct {
	Type   string
	Source string
	Time   time.Time
	Data   any
}

// Handler consumes events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Subscription identifies one registered handler and can cancel it.
type Subscription struct {
	id        string
	eventType string
	bus       *Bus
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string { return s.id }

// EventType returns the event type the subscription listens for.
func (s *Subscription) EventType() string { return s.eventType }

// Cancel removes the handler; it is safe to call more than once.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if subs, ok := s.bus.handlers[s.eventType]; ok {
		delete(subs, s.id)
		if len(subs) == 0 {
			delete(s.bus.handlers, s.eventType)
		}
	}
}

// Bus routes events by exact type match. The zero value is not usable;
// call New.
type Bus struct {
	mu sync.RWMutex
	// handlers: eventType -> subscription id -> handler
	handlers map[string]map[string]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[string]map[string]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[string]Handler)
	}
	b.handlers[eventType][id] = h

	return &Subscription{id: id, eventType: eventType, bus: b}
}

// Publish delivers the event to every handler subscribed to its type,
// synchronously, in unspecified order.
func (b *Bus) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.RLock()
	subs := b.handlers[ev.Type]
	hs := make([]Handler, 0, len(subs))
	for _, h := range subs {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(ev)
	}
}
