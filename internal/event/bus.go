// Package event implements the in-process notification bus that presentation
// layers and sibling services subscribe to.
package event

import (
	"log/slog"
	"sync"

	"github.com/mcoot/protocasual/internal/dependencies/clock"
	"github.com/mcoot/protocasual/internal/model"
)

// Handler receives a published event
type Handler func(model.Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously, in subscription order.
// Dispatch iterates a snapshot of the subscriber list, so handlers may
// subscribe or unsubscribe re-entrantly; changes apply to the next Publish.
type Bus struct {
	mu     sync.Mutex
	subs   map[model.EventType][]subscription
	all    []subscription
	nextID uint64

	clock  clock.Clock
	logger *slog.Logger
}

// NewBus creates an empty Bus
func NewBus(clk clock.Clock, logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[model.EventType][]subscription),
		clock:  clk,
		logger: logger.With(slog.String("component", "event-bus")),
	}
}

// Subscribe registers a handler for one event type and returns a function that removes it
func (b *Bus) Subscribe(t model.EventType, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscription{id: id, handler: h})
	return func() { b.remove(t, id) }
}

// SubscribeAll registers a handler that receives every event
func (b *Bus) SubscribeAll(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: h})
	return func() { b.removeAll(id) }
}

func (b *Bus) remove(t model.EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = without(b.subs[t], id)
}

func (b *Bus) removeAll(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = without(b.all, id)
}

// without returns a fresh slice so in-flight snapshots are never mutated
func without(subs []subscription, id uint64) []subscription {
	out := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Publish stamps and dispatches an event to its subscribers, then to catch-all subscribers
func (b *Bus) Publish(t model.EventType, payload any) {
	ev := model.Event{
		Type:      t,
		Timestamp: b.clock.Now(),
		Payload:   payload,
	}

	b.mu.Lock()
	typed := b.subs[t]
	all := b.all
	b.mu.Unlock()

	for _, s := range typed {
		b.dispatch(s, ev)
	}
	for _, s := range all {
		b.dispatch(s, ev)
	}
}

func (b *Bus) dispatch(s subscription, ev model.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				slog.String("event", string(ev.Type)),
				slog.Any("error", r))
		}
	}()
	s.handler(ev)
}

// SubscriberCount returns the number of handlers registered for a type
func (b *Bus) SubscriberCount(t model.EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[t])
}

// Recorder collects every published event, for tests and debugging surfaces
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// NewRecorder subscribes a Recorder to every event on the bus
func NewRecorder(b *Bus) *Recorder {
	r := &Recorder{}
	b.SubscribeAll(func(ev model.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, ev)
	})
	return r
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(t model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset clears the recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
