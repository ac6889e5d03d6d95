// Package analytics provides best-effort event sinks. The core calls a Sink
// but never depends on its result.
package analytics

import (
	"context"
	"log/slog"
	"sort"
)

// Event names emitted by the core services
const (
	EventPurchase            = "purchase"
	EventTutorialStep        = "tutorial_step"
	EventLevelStart          = "level_start"
	EventLevelComplete       = "level_complete"
	EventLevelFail           = "level_fail"
	EventAchievementUnlocked = "achievement_unlocked"
	EventDailyRewardClaimed  = "daily_reward_claimed"
)

// Params carries named event parameters
type Params map[string]any

// Sink receives named analytics events
type Sink interface {
	Track(ctx context.Context, name string, params Params)
}

// Toggles enables or disables categories of events
type Toggles struct {
	Enabled        bool `yaml:"enabled"`
	LevelEvents    bool `yaml:"level_events"`
	PurchaseEvents bool `yaml:"purchase_events"`
	TutorialEvents bool `yaml:"tutorial_events"`
}

// AllEnabled returns toggles with every category on
func AllEnabled() Toggles {
	return Toggles{Enabled: true, LevelEvents: true, PurchaseEvents: true, TutorialEvents: true}
}

// Allows reports whether an event name passes the toggles
func (t Toggles) Allows(name string) bool {
	if !t.Enabled {
		return false
	}
	switch name {
	case EventLevelStart, EventLevelComplete, EventLevelFail:
		return t.LevelEvents
	case EventPurchase:
		return t.PurchaseEvents
	case EventTutorialStep:
		return t.TutorialEvents
	}
	return true
}

// Filtered wraps a Sink and drops events the toggles reject
func Filtered(sink Sink, toggles Toggles) Sink {
	return &filteredSink{next: sink, toggles: toggles}
}

type filteredSink struct {
	next    Sink
	toggles Toggles
}

func (f *filteredSink) Track(ctx context.Context, name string, params Params) {
	if f.toggles.Allows(name) {
		f.next.Track(ctx, name, params)
	}
}

// Nop discards every event
type Nop struct{}

// Track does nothing
func (Nop) Track(context.Context, string, Params) {}

// LogSink writes events to a structured logger
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With(slog.String("component", "analytics"))}
}

// Track logs the event at debug level with its parameters as attributes
func (s *LogSink) Track(ctx context.Context, name string, params Params) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys)+1)
	attrs = append(attrs, slog.String("event", name))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, params[k]))
	}
	s.logger.DebugContext(ctx, "analytics event", attrs...)
}

var (
	_ Sink = Nop{}
	_ Sink = (*LogSink)(nil)
	_ Sink = (*filteredSink)(nil)
)
