// Package progress tracks linear level advancement.
package progress

import (
	"context"
	"log/slog"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/services/reward"
)

// ServiceInterface is the level progress capability
type ServiceInterface interface {
	CurrentLevel() int
	CompleteLevel(ctx context.Context) int
	Reset(ctx context.Context)
}

// Service owns PlayerData.Progress
type Service struct {
	store     playerdata.StoreInterface
	progress  *model.LevelProgress
	rewards   reward.ServiceInterface
	analytics analytics.Sink
	bus       *event.Bus
	logger    *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a progress service
func New(
	store playerdata.StoreInterface,
	rewards reward.ServiceInterface,
	sink analytics.Sink,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		progress:  &store.Data().Progress,
		rewards:   rewards,
		analytics: sink,
		bus:       bus,
		logger:    logger.With(slog.String("component", "progress")),
	}
}

func (s *Service) CurrentLevel() int {
	return s.progress.CurrentLevel
}

// CompleteLevel grants the current level's reward and advances to the next level.
// It returns the new current level.
func (s *Service) CompleteLevel(ctx context.Context) int {
	completed := s.progress.CurrentLevel
	s.rewards.GrantLevelReward(ctx, completed)

	s.progress.CurrentLevel = completed + 1
	s.store.Save(ctx)

	s.logger.Info("level completed", slog.Int("level", completed))
	s.bus.Publish(model.EventLevelCompleted, model.LevelCompletedPayload{LevelIndex: completed, NextLevel: s.progress.CurrentLevel})
	s.analytics.Track(ctx, analytics.EventLevelComplete, analytics.Params{"level": completed})
	return s.progress.CurrentLevel
}

func (s *Service) Reset(ctx context.Context) {
	s.progress.CurrentLevel = 0
	s.store.Save(ctx)
}
