// Package dailyreward owns the login streak subtree.
package dailyreward

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/dependencies/clock"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/services/reward"
)

// ServiceInterface is the daily login reward capability
type ServiceInterface interface {
	Streak() int
	LastClaimTime() (time.Time, bool)
	CanClaimToday() bool
	PeekTodayReward() []model.RewardEntry
	TryClaim(ctx context.Context) bool
	ValidateStreak(ctx context.Context) bool
	Reset(ctx context.Context)
}

// Service mutates PlayerData.DailyReward. Claims are limited to one per UTC calendar day.
type Service struct {
	store     playerdata.StoreInterface
	daily     *model.DailyReward
	cfg       model.DailyRewardConfig
	rewards   reward.ServiceInterface
	clock     clock.Clock
	analytics analytics.Sink
	bus       *event.Bus
	logger    *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates the service and immediately expires a stale streak
func New(
	ctx context.Context,
	store playerdata.StoreInterface,
	cfg model.DailyRewardConfig,
	rewards reward.ServiceInterface,
	clk clock.Clock,
	sink analytics.Sink,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	if cfg.CycleDays <= 0 {
		cfg.CycleDays = model.DefaultCycleDays
	}
	if cfg.StreakExpiryHours <= 0 {
		cfg.StreakExpiryHours = model.DefaultStreakExpiryHours
	}
	s := &Service{
		store:     store,
		daily:     &store.Data().DailyReward,
		cfg:       cfg,
		rewards:   rewards,
		clock:     clk,
		analytics: sink,
		bus:       bus,
		logger:    logger.With(slog.String("component", "daily-reward")),
	}
	s.ValidateStreak(ctx)
	return s
}

func (s *Service) Streak() int {
	return s.daily.Streak
}

// LastClaimTime returns the last claim, false if never claimed
func (s *Service) LastClaimTime() (time.Time, bool) {
	if s.daily.LastClaimTime == nil {
		return time.Time{}, false
	}
	return *s.daily.LastClaimTime, true
}

// CanClaimToday is true if never claimed or the current UTC date is after the last claim's
func (s *Service) CanClaimToday() bool {
	if s.daily.LastClaimTime == nil {
		return true
	}
	return clock.IsLaterUTCDay(s.clock.Now(), *s.daily.LastClaimTime)
}

// PeekTodayReward returns the rewards the next claim would grant
func (s *Service) PeekTodayReward() []model.RewardEntry {
	day, ok := s.today()
	if !ok {
		return []model.RewardEntry{}
	}
	return slices.Clone(day.Rewards)
}

func (s *Service) today() (model.DayReward, bool) {
	if len(s.cfg.Days) == 0 {
		return model.DayReward{}, false
	}
	idx := s.daily.Streak % s.cfg.CycleDays
	idx = max(0, min(idx, len(s.cfg.Days)-1))
	return s.cfg.Days[idx], true
}

// TryClaim grants today's rewards and advances the streak
func (s *Service) TryClaim(ctx context.Context) bool {
	if !s.CanClaimToday() {
		return false
	}
	s.ValidateStreak(ctx)

	day, ok := s.today()
	if !ok {
		s.logger.Warn("no daily rewards configured")
		return false
	}
	s.rewards.GrantRewards(ctx, day.Rewards)

	now := s.clock.Now()
	s.daily.Streak++
	s.daily.LastClaimTime = &now
	s.store.Save(ctx)

	s.logger.Info("daily reward claimed", slog.Int("streak", s.daily.Streak))
	s.bus.Publish(model.EventDailyRewardClaimed, model.DailyRewardClaimedPayload{
		Streak:  s.daily.Streak,
		Rewards: slices.Clone(day.Rewards),
	})
	s.analytics.Track(ctx, analytics.EventDailyRewardClaimed, analytics.Params{
		"streak": s.daily.Streak,
		"label":  day.Label,
	})
	return true
}

// ValidateStreak zeroes the streak once the last claim is older than the expiry window.
// Returns true if the streak was reset.
func (s *Service) ValidateStreak(ctx context.Context) bool {
	if s.daily.LastClaimTime == nil || s.daily.Streak == 0 {
		return false
	}
	expiry := time.Duration(s.cfg.StreakExpiryHours) * time.Hour
	if s.clock.Now().Sub(*s.daily.LastClaimTime) <= expiry {
		return false
	}
	s.logger.Info("streak expired, resetting", slog.Int("streak", s.daily.Streak))
	s.daily.Streak = 0
	s.store.Save(ctx)
	return true
}

// Reset zeroes streak and claim time
func (s *Service) Reset(ctx context.Context) {
	s.daily.Streak = 0
	s.daily.LastClaimTime = nil
	s.store.Save(ctx)
}
