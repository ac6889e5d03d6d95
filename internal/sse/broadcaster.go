package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
)

// Frame is the JSON body of one streamed event
type Frame struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload,omitempty"`
}

// Broadcaster forwards every bus event to a hub
type Broadcaster struct {
	hub         *Hub
	unsubscribe func()
	logger      *slog.Logger
}

// NewBroadcaster subscribes to every event on bus
func NewBroadcaster(bus *event.Bus, hub *Hub, logger *slog.Logger) *Broadcaster {
	b := &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
	b.unsubscribe = bus.SubscribeAll(b.forward)
	return b
}

func (b *Broadcaster) forward(ev model.Event) {
	if b.hub.ClientCount() == 0 {
		return
	}
	body, err := json.Marshal(Frame{Type: ev.Type, Timestamp: ev.Timestamp, Payload: ev.Payload})
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("event", string(ev.Type)),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(string(ev.Type), string(body))
}

// Hub returns the hub events are forwarded to
func (b *Broadcaster) Hub() *Hub { return b.hub }

// Close stops forwarding and shuts the hub down
func (b *Broadcaster) Close() {
	b.unsubscribe()
	b.hub.Close()
}
