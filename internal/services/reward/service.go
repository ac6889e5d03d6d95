// Package reward applies reward bundles to the wallet and inventory.
package reward

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/inventory"
)

// ServiceInterface is the reward capability
type ServiceInterface interface {
	GrantRewards(ctx context.Context, entries []model.RewardEntry)
	GrantLevelReward(ctx context.Context, levelIndex int) bool
	LevelReward(levelIndex int) ([]model.RewardEntry, bool)
}

// Service is a stateless dispatcher over the currency and inventory services
type Service struct {
	currency     currency.ServiceInterface
	inventory    inventory.ServiceInterface
	levelRewards map[int][]model.RewardEntry
	bus          *event.Bus
	logger       *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a reward service. The level mapping is built once from levels.
func New(
	wallet currency.ServiceInterface,
	inv inventory.ServiceInterface,
	levels []model.LevelReward,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	mapping := make(map[int][]model.RewardEntry, len(levels))
	for _, lr := range levels {
		mapping[lr.Level] = slices.Clone(lr.Rewards)
	}
	return &Service{
		currency:     wallet,
		inventory:    inv,
		levelRewards: mapping,
		bus:          bus,
		logger:       logger.With(slog.String("component", "reward")),
	}
}

// GrantRewards applies each entry with a positive amount, then publishes one batched notification
func (s *Service) GrantRewards(ctx context.Context, entries []model.RewardEntry) {
	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		if e.Amount <= 0 {
			continue
		}
		switch e.Type {
		case model.RewardSoftCurrency:
			s.currency.AddSoft(ctx, e.Amount)
		case model.RewardHardCurrency:
			s.currency.AddHard(ctx, e.Amount)
		case model.RewardItem:
			s.inventory.AddItem(ctx, e.RewardID, e.Amount)
		default:
			s.logger.Warn("unknown reward type", slog.String("type", string(e.Type)))
		}
	}
	s.bus.Publish(model.EventRewardsGranted, model.RewardsGrantedPayload{Rewards: slices.Clone(entries)})
}

// GrantLevelReward grants the rewards mapped to levelIndex. Unmapped levels are a logged no-op.
func (s *Service) GrantLevelReward(ctx context.Context, levelIndex int) bool {
	entries, ok := s.levelRewards[levelIndex]
	if !ok {
		s.logger.Info("no reward configured for level", slog.Int("level", levelIndex))
		return false
	}
	s.GrantRewards(ctx, entries)
	return true
}

// LevelReward returns the rewards mapped to levelIndex
func (s *Service) LevelReward(levelIndex int) ([]model.RewardEntry, bool) {
	entries, ok := s.levelRewards[levelIndex]
	return slices.Clone(entries), ok
}
