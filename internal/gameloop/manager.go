// Package gameloop implements the game lifecycle state machine and game modes.
package gameloop

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
)

const (
	TimeScaleNormal = 1.0
	TimeScaleFrozen = 0.0
)

// LevelSource reports the level being played, for analytics
type LevelSource interface {
	CurrentLevel() int
}

// ManagerInterface is the game lifecycle capability
type ManagerInterface interface {
	State() model.GameState
	ChangeState(ctx context.Context, next model.GameState) bool
	Tick(delta time.Duration)
	Elapsed() time.Duration
	Running() bool
	TimeScale() float64
	Mode() GameMode
	SetMode(mode GameMode)
	SetModeByName(name string) error
	ModeNames() []string
	Play(ctx context.Context) bool
	Pause(ctx context.Context) bool
	Resume(ctx context.Context) bool
	Complete(ctx context.Context) bool
	Fail(ctx context.Context) bool
	Restart(ctx context.Context) bool
	ReturnToMenu(ctx context.Context) bool
	Snapshot() Snapshot
}

// Snapshot is a read-only view of the manager
type Snapshot struct {
	State     model.GameState `json:"state"`
	Mode      string          `json:"mode,omitempty"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
	Running   bool            `json:"running"`
	TimeScale float64         `json:"time_scale"`
}

// Manager is the single game lifecycle state machine. It starts in Boot.
type Manager struct {
	state         model.GameState
	mode          GameMode
	modes         *Modes
	elapsed       time.Duration
	running       bool
	timeScale     float64
	transitioning bool
	restarting    bool

	levels    LevelSource
	analytics analytics.Sink
	bus       *event.Bus
	logger    *slog.Logger
}

// Ensure Manager implements ManagerInterface
var _ ManagerInterface = (*Manager)(nil)

// NewManager creates a manager in Boot. levels may be nil.
func NewManager(modes *Modes, levels LevelSource, sink analytics.Sink, bus *event.Bus, logger *slog.Logger) *Manager {
	if modes == nil {
		modes = NewModes()
	}
	return &Manager{
		state:     model.GameStateBoot,
		modes:     modes,
		timeScale: TimeScaleNormal,
		levels:    levels,
		analytics: sink,
		bus:       bus,
		logger:    logger.With(slog.String("component", "gameloop")),
	}
}

func (m *Manager) State() model.GameState { return m.state }
func (m *Manager) Elapsed() time.Duration { return m.elapsed }
func (m *Manager) Running() bool          { return m.running }
func (m *Manager) TimeScale() float64     { return m.timeScale }
func (m *Manager) Mode() GameMode         { return m.mode }
func (m *Manager) ModeNames() []string    { return m.modes.Names() }

// Snapshot captures the current state
func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{
		State:     m.state,
		Elapsed:   m.elapsed,
		Running:   m.running,
		TimeScale: m.timeScale,
	}
	if m.mode != nil {
		snap.Mode = m.mode.Name()
	}
	return snap
}

// ChangeState transitions to next. It is a no-op when next is the current
// state or when called from inside another transition's hooks.
func (m *Manager) ChangeState(ctx context.Context, next model.GameState) bool {
	if next == m.state || m.transitioning {
		return false
	}
	m.transitioning = true
	defer func() { m.transitioning = false }()

	prev := m.state
	m.state = next

	m.exit(prev)
	m.enter(ctx, prev, next)

	m.logger.Debug("game state changed", slog.String("from", string(prev)), slog.String("to", string(next)))
	m.bus.Publish(model.EventGameStateChanged, model.GameStateChangedPayload{Previous: prev, Current: next})
	return true
}

func (m *Manager) exit(state model.GameState) {
	switch state {
	case model.GameStatePlaying:
		m.running = false
	case model.GameStatePaused:
		m.timeScale = TimeScaleNormal
	}
}

func (m *Manager) enter(ctx context.Context, prev, state model.GameState) {
	switch state {
	case model.GameStatePlaying:
		if prev == model.GameStatePaused && !m.restarting {
			m.running = true
			if m.mode != nil {
				m.mode.OnStart()
				m.mode.OnResume()
			}
			m.bus.Publish(model.EventGameStarted, nil)
			m.bus.Publish(model.EventGameResumed, nil)
			return
		}
		m.startRound(ctx)
	case model.GameStatePaused:
		m.timeScale = TimeScaleFrozen
		if m.mode != nil {
			m.mode.OnPause()
		}
		m.bus.Publish(model.EventGamePaused, nil)
	case model.GameStateCompleted:
		if m.mode != nil {
			m.mode.OnComplete()
		}
		m.bus.Publish(model.EventGameCompleted, nil)
	case model.GameStateFailed:
		if m.mode != nil {
			m.mode.OnFail()
		}
		m.bus.Publish(model.EventGameFailed, nil)
		m.track(ctx, analytics.EventLevelFail)
	}
}

func (m *Manager) startRound(ctx context.Context) {
	m.elapsed = 0
	m.running = true
	if m.mode != nil {
		m.mode.OnStart()
	}
	m.bus.Publish(model.EventGameStarted, nil)
	m.track(ctx, analytics.EventLevelStart)
}

func (m *Manager) track(ctx context.Context, name string) {
	params := analytics.Params{"elapsed_ms": m.elapsed.Milliseconds()}
	if m.levels != nil {
		params["level"] = m.levels.CurrentLevel()
	}
	if m.mode != nil {
		params["mode"] = m.mode.Name()
	}
	m.analytics.Track(ctx, name, params)
}

// Tick advances elapsed time by delta scaled by the time scale and forwards it to the mode.
// It does nothing unless the game is running.
func (m *Manager) Tick(delta time.Duration) {
	if !m.running || delta <= 0 {
		return
	}
	scaled := time.Duration(float64(delta) * m.timeScale)
	m.elapsed += scaled
	if m.mode != nil {
		m.mode.Update(scaled)
	}
}

// SetMode tears down the active mode and initializes mode in its place
func (m *Manager) SetMode(mode GameMode) {
	if m.mode != nil {
		m.mode.Cleanup()
	}
	m.mode = mode
	if m.mode != nil {
		m.mode.Initialize()
		m.logger.Info("game mode set", slog.String("mode", m.mode.Name()))
	}
}

// SetModeByName instantiates a registered mode and makes it active
func (m *Manager) SetModeByName(name string) error {
	mode, err := m.modes.New(name)
	if err != nil {
		m.logger.Error("game mode not found", slog.String("mode", name))
		return err
	}
	m.SetMode(mode)
	return nil
}

func (m *Manager) Play(ctx context.Context) bool     { return m.ChangeState(ctx, model.GameStatePlaying) }
func (m *Manager) Pause(ctx context.Context) bool    { return m.ChangeState(ctx, model.GameStatePaused) }
func (m *Manager) Complete(ctx context.Context) bool { return m.ChangeState(ctx, model.GameStateCompleted) }
func (m *Manager) Fail(ctx context.Context) bool     { return m.ChangeState(ctx, model.GameStateFailed) }

// Resume returns to Playing from Paused, keeping elapsed time
func (m *Manager) Resume(ctx context.Context) bool {
	if m.state != model.GameStatePaused {
		return false
	}
	return m.ChangeState(ctx, model.GameStatePlaying)
}

// Restart reinitializes the active mode and starts a fresh round.
// Elapsed time resets even when restarting from Paused or Playing.
// Restarting mid-round publishes a Playing to Playing state change.
func (m *Manager) Restart(ctx context.Context) bool {
	if m.transitioning {
		return false
	}
	m.timeScale = TimeScaleNormal
	if m.mode != nil {
		m.mode.Cleanup()
		m.mode.Initialize()
	}
	if m.state == model.GameStatePlaying {
		m.transitioning = true
		defer func() { m.transitioning = false }()
		m.startRound(ctx)
		m.bus.Publish(model.EventGameStateChanged, model.GameStateChangedPayload{
			Previous: model.GameStatePlaying,
			Current:  model.GameStatePlaying,
		})
		return true
	}
	m.restarting = true
	defer func() { m.restarting = false }()
	return m.ChangeState(ctx, model.GameStatePlaying)
}

// ReturnToMenu tears down the active mode and goes to Menu
func (m *Manager) ReturnToMenu(ctx context.Context) bool {
	m.timeScale = TimeScaleNormal
	if m.mode != nil {
		m.mode.Cleanup()
	}
	return m.ChangeState(ctx, model.GameStateMenu)
}
