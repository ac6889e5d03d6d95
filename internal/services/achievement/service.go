// Package achievement tracks threshold achievements and grants their rewards on unlock.
package achievement

import (
	"context"
	"log/slog"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/services/reward"
)

// Status is a read-only snapshot of one achievement
type Status struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Progress    int    `json:"progress"`
	Required    int    `json:"required"`
	Unlocked    bool   `json:"unlocked"`
}

// ServiceInterface is the achievement capability
type ServiceInterface interface {
	AddProgress(ctx context.Context, id string, amount int)
	IsUnlocked(id string) bool
	GetProgress(id string) int
	GetAll() []Status
	Reset(ctx context.Context)
}

// Service owns PlayerData.Achievements
type Service struct {
	store       playerdata.StoreInterface
	data        *model.PlayerData
	definitions map[string]model.AchievementDefinition
	order       []string
	rewards     reward.ServiceInterface
	analytics   analytics.Sink
	bus         *event.Bus
	logger      *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates an achievement service over the given definitions.
// Definitions with an empty id are ignored; the first of a duplicated id wins.
func New(
	store playerdata.StoreInterface,
	defs []model.AchievementDefinition,
	rewards reward.ServiceInterface,
	sink analytics.Sink,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	s := &Service{
		store:       store,
		data:        store.Data(),
		definitions: make(map[string]model.AchievementDefinition, len(defs)),
		rewards:     rewards,
		analytics:   sink,
		bus:         bus,
		logger:      logger.With(slog.String("component", "achievement")),
	}
	for _, def := range defs {
		if def.ID == "" {
			continue
		}
		if _, dup := s.definitions[def.ID]; dup {
			continue
		}
		s.definitions[def.ID] = def
		s.order = append(s.order, def.ID)
	}
	return s
}

func (s *Service) entries() map[string]*model.AchievementProgress {
	if s.data.Achievements == nil {
		s.data.Achievements = make(map[string]*model.AchievementProgress)
	}
	return s.data.Achievements
}

func (s *Service) entry(id string) *model.AchievementProgress {
	entries := s.entries()
	e, ok := entries[id]
	if !ok || e == nil {
		e = &model.AchievementProgress{}
		entries[id] = e
	}
	return e
}

// AddProgress adds amount to an achievement and unlocks it at its threshold.
// Ids without a definition accumulate progress but never unlock.
func (s *Service) AddProgress(ctx context.Context, id string, amount int) {
	if id == "" || amount <= 0 {
		return
	}
	if s.IsUnlocked(id) {
		return
	}

	e := s.entry(id)
	e.Progress += amount

	def, defined := s.definitions[id]
	if !defined {
		s.logger.Debug("progress on undefined achievement", slog.String("achievement", id))
	}
	unlocked := defined && e.Progress >= def.RequiredProgress
	if unlocked {
		e.Unlocked = true
	}
	s.store.Save(ctx)

	s.bus.Publish(model.EventAchievementProgress, model.AchievementProgressPayload{AchievementID: id, Progress: e.Progress})
	if !unlocked {
		return
	}

	s.logger.Info("achievement unlocked", slog.String("achievement", id))
	s.bus.Publish(model.EventAchievementUnlocked, model.AchievementUnlockedPayload{AchievementID: id})
	if len(def.Rewards) > 0 {
		s.rewards.GrantRewards(ctx, def.Rewards)
	}
	s.analytics.Track(ctx, analytics.EventAchievementUnlocked, analytics.Params{
		"achievement_id": id,
		"progress":       e.Progress,
	})
}

func (s *Service) IsUnlocked(id string) bool {
	e, ok := s.entries()[id]
	return ok && e != nil && e.Unlocked
}

func (s *Service) GetProgress(id string) int {
	if e, ok := s.entries()[id]; ok && e != nil {
		return e.Progress
	}
	return 0
}

// GetAll lists every defined achievement in declaration order
func (s *Service) GetAll() []Status {
	out := make([]Status, 0, len(s.order))
	for _, id := range s.order {
		def := s.definitions[id]
		e := s.entry(id)
		out = append(out, Status{
			ID:          id,
			DisplayName: def.DisplayName,
			Progress:    e.Progress,
			Required:    def.RequiredProgress,
			Unlocked:    e.Unlocked,
		})
	}
	return out
}

// Definition returns the configured definition for id
func (s *Service) Definition(id string) (model.AchievementDefinition, bool) {
	def, ok := s.definitions[id]
	return def, ok
}

func (s *Service) Reset(ctx context.Context) {
	clear(s.entries())
	s.store.Save(ctx)
}
