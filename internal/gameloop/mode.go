package gameloop

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/protocasual/internal/model"
)

// GameMode is the set of hooks the Manager drives on the active mode
type GameMode interface {
	Name() string
	Initialize()
	OnStart()
	OnPause()
	OnResume()
	OnComplete()
	OnFail()
	Cleanup()
	Update(delta time.Duration)
}

// BaseMode implements every hook as a no-op. Embed it and override what a mode needs.
type BaseMode struct {
	ModeName string
}

func (b BaseMode) Name() string       { return b.ModeName }
func (BaseMode) Initialize()          {}
func (BaseMode) OnStart()             {}
func (BaseMode) OnPause()             {}
func (BaseMode) OnResume()            {}
func (BaseMode) OnComplete()          {}
func (BaseMode) OnFail()              {}
func (BaseMode) Cleanup()             {}
func (BaseMode) Update(time.Duration) {}

// Factory builds a fresh mode instance
type Factory func() GameMode

// Modes maps mode names to factories. The first registration of a name wins.
type Modes struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewModes creates an empty mode registry
func NewModes() *Modes {
	return &Modes{factories: make(map[string]Factory)}
}

// Register adds a factory under name and reports whether it was added
func (m *Modes) Register(name string, f Factory) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" || f == nil {
		return false
	}
	if _, exists := m.factories[name]; exists {
		return false
	}
	m.factories[name] = f
	m.order = append(m.order, name)
	return true
}

// New instantiates the mode registered under name
func (m *Modes) New(name string) (GameMode, error) {
	m.mu.RLock()
	f, ok := m.factories[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameMode, name)
	}
	return f(), nil
}

// Names lists registered modes in registration order
func (m *Modes) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}
