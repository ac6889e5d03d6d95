package mocks

import (
	"context"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
)

// TrackedEvent is one call recorded by MockSink
type TrackedEvent struct {
	Name   string
	Params analytics.Params
}

// MockSink records analytics events for assertions
type MockSink struct {
	Events []TrackedEvent
}

// Ensure MockSink implements Sink
var _ analytics.Sink = (*MockSink)(nil)

// NewMockSink creates an empty MockSink
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Track records the event
func (s *MockSink) Track(_ context.Context, name string, params analytics.Params) {
	s.Events = append(s.Events, TrackedEvent{Name: name, Params: params})
}

// Named returns the recorded events with the given name
func (s *MockSink) Named(name string) []TrackedEvent {
	var out []TrackedEvent
	for _, e := range s.Events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
