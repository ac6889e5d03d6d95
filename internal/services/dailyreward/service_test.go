package dailyreward

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/inventory"
	"github.com/mcoot/protocasual/internal/services/reward"
	"github.com/mcoot/protocasual/internal/testutil/fixture"
)

type ServiceSuite struct {
	suite.Suite
	fx       *fixture.Fixture
	cfg      model.DailyRewardConfig
	currency *currency.Service
	rewards  *reward.Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fx = fixture.New()
	s.ctx = s.fx.Ctx
	s.currency = currency.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	inv := inventory.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	s.rewards = reward.New(s.currency, inv, nil, s.fx.Bus, s.fx.Logger)

	s.cfg = model.DailyRewardConfig{CycleDays: 7, StreakExpiryHours: 48}
	for day := 1; day <= 5; day++ {
		s.cfg.Days = append(s.cfg.Days, model.DayReward{
			Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: day * 10}},
		})
	}
}

func (s *ServiceSuite) newService() *Service {
	return New(s.ctx, s.fx.Store, s.cfg, s.rewards, s.fx.Clock, s.fx.Analytics, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) setClaim(streak int, at time.Time) {
	s.fx.Data().DailyReward = model.DailyReward{Streak: streak, LastClaimTime: &at}
}

func (s *ServiceSuite) TestFirstClaim() {
	svc := s.newService()
	s.True(svc.CanClaimToday())

	s.True(svc.TryClaim(s.ctx))

	s.Equal(1, svc.Streak())
	s.Equal(10, s.currency.Soft())
	last, ok := svc.LastClaimTime()
	s.True(ok)
	s.Equal(s.fx.Clock.Now(), last)

	persisted := s.fx.Persisted().DailyReward
	s.Equal(1, persisted.Streak)
	s.Require().NotNil(persisted.LastClaimTime)

	claimed := s.fx.Recorder.OfType(model.EventDailyRewardClaimed)
	s.Require().Len(claimed, 1)
	s.Equal(1, claimed[0].Payload.(model.DailyRewardClaimedPayload).Streak)
	s.Len(s.fx.Analytics.Named(analytics.EventDailyRewardClaimed), 1)
}

func (s *ServiceSuite) TestStreakScenarioYesterday() {
	// Claimed late yesterday, now just after midnight UTC
	s.fx.Clock.Set(time.Date(2024, 1, 5, 0, 5, 0, 0, time.UTC))
	s.setClaim(3, time.Date(2024, 1, 4, 23, 50, 0, 0, time.UTC))
	svc := s.newService()

	s.True(svc.CanClaimToday())
	s.Equal([]model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 40}}, svc.PeekTodayReward())

	s.True(svc.TryClaim(s.ctx))
	s.Equal(4, svc.Streak())
	s.Equal(40, s.currency.Soft())

	s.False(svc.TryClaim(s.ctx))
	s.Equal(4, svc.Streak())
}

func (s *ServiceSuite) TestSameDayNotClaimable() {
	s.setClaim(1, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC))
	s.fx.Clock.Set(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC))

	s.False(s.newService().CanClaimToday())
}

func (s *ServiceSuite) TestStreakExpiresOnConstruction() {
	s.setClaim(5, fixture.Start)
	s.fx.Clock.Advance(49 * time.Hour)

	svc := s.newService()

	s.Equal(0, svc.Streak())
	s.Equal(0, s.fx.Persisted().DailyReward.Streak)
}

func (s *ServiceSuite) TestStreakWithinWindowKept() {
	s.setClaim(5, fixture.Start)
	s.fx.Clock.Advance(47 * time.Hour)

	s.Equal(5, s.newService().Streak())
}

func (s *ServiceSuite) TestValidateStreakLater() {
	svc := s.newService()
	s.True(svc.TryClaim(s.ctx))

	s.fx.Clock.Advance(72 * time.Hour)
	s.True(svc.ValidateStreak(s.ctx))
	s.Equal(0, svc.Streak())
	s.False(svc.ValidateStreak(s.ctx))
}

func (s *ServiceSuite) TestPeekClampsIntoTable() {
	// Cycle of 7 but only 5 configured days: indices 5 and 6 clamp to the last day
	s.setClaim(6, fixture.Start)
	svc := s.newService()
	s.Equal(50, svc.PeekTodayReward()[0].Amount)

	s.fx.Data().DailyReward.Streak = 7
	s.Equal(10, svc.PeekTodayReward()[0].Amount)
}

func (s *ServiceSuite) TestNoDaysConfigured() {
	s.cfg.Days = nil
	svc := s.newService()

	s.Empty(svc.PeekTodayReward())
	s.False(svc.TryClaim(s.ctx))
	s.Equal(0, svc.Streak())
}

func (s *ServiceSuite) TestReset() {
	svc := s.newService()
	svc.TryClaim(s.ctx)

	svc.Reset(s.ctx)

	s.Equal(0, svc.Streak())
	_, ok := svc.LastClaimTime()
	s.False(ok)
	s.True(svc.CanClaimToday())
	s.Nil(s.fx.Persisted().DailyReward.LastClaimTime)
}

func (s *ServiceSuite) TestConsecutiveDays() {
	svc := s.newService()
	for day := 1; day <= 3; day++ {
		s.True(svc.TryClaim(s.ctx))
		s.fx.Clock.AdvanceDays(1)
	}
	s.Equal(3, svc.Streak())
	s.Equal(10+20+30, s.currency.Soft())
}
