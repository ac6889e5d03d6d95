// Package scheduler runs the periodic maintenance jobs of a long-lived process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mcoot/protocasual/internal/factory"
)

// Job names
const (
	JobValidateStreak = "validate-streak"
	JobCheckpoint     = "checkpoint"
)

// Config holds job intervals. A non-positive interval disables that job.
type Config struct {
	StreakCheckInterval time.Duration
	CheckpointInterval  time.Duration
}

// Scheduler re-validates the daily streak and checkpoints the save on a timer
type Scheduler struct {
	sched  gocron.Scheduler
	app    *factory.App
	logger *slog.Logger
}

// New creates a scheduler with its jobs registered but not started
func New(app *factory.App, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	logger = logger.With(slog.String("component", "scheduler"))
	sched, err := gocron.NewScheduler(gocron.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	s := &Scheduler{sched: sched, app: app, logger: logger}

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context)
	}{
		{JobValidateStreak, cfg.StreakCheckInterval, s.ValidateStreak},
		{JobCheckpoint, cfg.CheckpointInterval, s.Checkpoint},
	}
	for _, j := range jobs {
		if j.interval <= 0 {
			continue
		}
		run := j.run
		_, err := sched.NewJob(
			gocron.DurationJob(j.interval),
			gocron.NewTask(func() { run(context.Background()) }),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.sched.Jobs())))
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// JobNames lists the registered jobs
func (s *Scheduler) JobNames() []string {
	var names []string
	for _, j := range s.sched.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

// ValidateStreak expires a stale daily reward streak
func (s *Scheduler) ValidateStreak(ctx context.Context) {
	s.app.Lock()
	defer s.app.Unlock()
	if s.app.DailyReward.ValidateStreak(ctx) {
		s.logger.Info("daily streak expired")
	}
}

// Checkpoint writes the current save to the backend
func (s *Scheduler) Checkpoint(ctx context.Context) {
	s.app.Lock()
	defer s.app.Unlock()
	if err := s.app.Store.Checkpoint(ctx); err != nil {
		s.logger.Warn("checkpoint failed", slog.Any("error", err))
	}
}
