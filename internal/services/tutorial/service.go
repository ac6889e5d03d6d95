// Package tutorial runs the linear onboarding flow and owns its subtree.
package tutorial

import (
	"context"
	"log/slog"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
)

// State is the tutorial's position in its lifecycle
type State string

const (
	StateNotStarted State = "not_started"
	StateActive     State = "active"
	StateCompleted  State = "completed"
)

// ServiceInterface is the tutorial capability
type ServiceInterface interface {
	State() State
	IsActive() bool
	IsCompleted() bool
	CurrentStepIndex() int
	CurrentStep() (model.TutorialStep, bool)
	StartTutorial(ctx context.Context)
	AutoStart(ctx context.Context) bool
	CompleteCurrentStep(ctx context.Context)
	SkipTutorial(ctx context.Context)
	Reset(ctx context.Context)
}

// Service mutates PlayerData.Tutorial. Active is session state and is not persisted.
type Service struct {
	store     playerdata.StoreInterface
	progress  *model.TutorialProgress
	cfg       model.TutorialConfig
	analytics analytics.Sink
	bus       *event.Bus
	logger    *slog.Logger

	active bool
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a tutorial service
func New(
	store playerdata.StoreInterface,
	cfg model.TutorialConfig,
	sink analytics.Sink,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	s := &Service{
		store:     store,
		progress:  &store.Data().Tutorial,
		cfg:       cfg,
		analytics: sink,
		bus:       bus,
		logger:    logger.With(slog.String("component", "tutorial")),
	}
	bus.Subscribe(model.EventPlayerDataReset, func(model.Event) { s.active = false })
	bus.Subscribe(model.EventPlayerDataLoaded, func(model.Event) { s.active = false })
	return s
}

func (s *Service) State() State {
	switch {
	case s.progress.Completed:
		return StateCompleted
	case s.active:
		return StateActive
	}
	return StateNotStarted
}

func (s *Service) IsActive() bool        { return s.active }
func (s *Service) IsCompleted() bool     { return s.progress.Completed }
func (s *Service) CurrentStepIndex() int { return s.progress.CurrentStep }

// CurrentStep returns the active step definition
func (s *Service) CurrentStep() (model.TutorialStep, bool) {
	if !s.active {
		return model.TutorialStep{}, false
	}
	return s.step(s.progress.CurrentStep)
}

func (s *Service) step(i int) (model.TutorialStep, bool) {
	if i < 0 || i >= len(s.cfg.Steps) {
		return model.TutorialStep{}, false
	}
	return s.cfg.Steps[i], true
}

// StartTutorial activates the first step. No-op once completed or with no steps.
func (s *Service) StartTutorial(ctx context.Context) {
	if s.progress.Completed || len(s.cfg.Steps) == 0 {
		return
	}
	s.active = true
	s.progress.CurrentStep = 0
	s.store.Save(ctx)

	s.logger.Info("tutorial started")
	s.stepStarted(ctx, 0)
}

// AutoStart starts the tutorial when configured to and not yet completed
func (s *Service) AutoStart(ctx context.Context) bool {
	if !s.cfg.AutoStart || s.progress.Completed || s.active || len(s.cfg.Steps) == 0 {
		return false
	}
	s.StartTutorial(ctx)
	return true
}

// CompleteCurrentStep finishes the active step and advances or completes
func (s *Service) CompleteCurrentStep(ctx context.Context) {
	if !s.active {
		return
	}
	idx := s.progress.CurrentStep
	step, ok := s.step(idx)
	if !ok {
		return
	}

	s.bus.Publish(model.EventTutorialStepCompleted, model.TutorialStepPayload{StepIndex: idx, StepID: step.ID})
	s.track(ctx, idx, step.ID, "completed")

	next := idx + 1
	if next >= len(s.cfg.Steps) {
		s.finish(ctx)
		return
	}
	s.progress.CurrentStep = next
	s.store.Save(ctx)
	s.stepStarted(ctx, next)
}

// SkipTutorial forces completion when skipping is allowed
func (s *Service) SkipTutorial(ctx context.Context) {
	if !s.cfg.AllowSkip || s.progress.Completed {
		return
	}
	s.logger.Info("tutorial skipped", slog.Int("step", s.progress.CurrentStep))
	s.finish(ctx)
}

// Reset returns to NotStarted at step 0
func (s *Service) Reset(ctx context.Context) {
	s.progress.Completed = false
	s.progress.CurrentStep = 0
	s.active = false
	s.store.Save(ctx)
}

func (s *Service) stepStarted(ctx context.Context, idx int) {
	step, _ := s.step(idx)
	s.bus.Publish(model.EventTutorialStepStarted, model.TutorialStepPayload{StepIndex: idx, StepID: step.ID})
	s.track(ctx, idx, step.ID, "started")
}

func (s *Service) finish(ctx context.Context) {
	s.progress.Completed = true
	s.active = false
	s.store.Save(ctx)

	s.logger.Info("tutorial completed")
	s.bus.Publish(model.EventTutorialCompleted, nil)
}

func (s *Service) track(ctx context.Context, idx int, id, phase string) {
	s.analytics.Track(ctx, analytics.EventTutorialStep, analytics.Params{
		"step_index": idx,
		"step_id":    id,
		"phase":      phase,
	})
}
