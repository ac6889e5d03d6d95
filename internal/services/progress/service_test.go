package progress

import (
	"context"
	"testing"

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
	fx      *fixture.Fixture
	ctx     context.Context
	wallet  *currency.Service
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fx = fixture.New()
	s.ctx = s.fx.Ctx
	s.wallet = currency.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	inv := inventory.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	rewards := reward.New(s.wallet, inv, []model.LevelReward{
		{Level: 0, Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 25}}},
	}, s.fx.Bus, s.fx.Logger)
	s.service = New(s.fx.Store, rewards, s.fx.Analytics, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) TestCompleteLevelGrantsAndAdvances() {
	s.Equal(1, s.service.CompleteLevel(s.ctx))

	s.Equal(25, s.wallet.Soft())
	s.Equal(1, s.fx.Persisted().Progress.CurrentLevel)

	events := s.fx.Recorder.OfType(model.EventLevelCompleted)
	s.Require().Len(events, 1)
	s.Equal(model.LevelCompletedPayload{LevelIndex: 0, NextLevel: 1}, events[0].Payload)
	s.Len(s.fx.Analytics.Named(analytics.EventLevelComplete), 1)
}

func (s *ServiceSuite) TestUnmappedLevelStillAdvances() {
	s.service.CompleteLevel(s.ctx)
	s.Equal(2, s.service.CompleteLevel(s.ctx))
	s.Equal(25, s.wallet.Soft())
}

func (s *ServiceSuite) TestReset() {
	s.service.CompleteLevel(s.ctx)
	s.service.Reset(s.ctx)

	s.Equal(0, s.service.CurrentLevel())
	s.Equal(0, s.fx.Persisted().Progress.CurrentLevel)
}
