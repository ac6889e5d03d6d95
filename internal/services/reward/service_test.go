package reward

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/inventory"
	"github.com/mcoot/protocasual/internal/testutil/fixture"
)

type ServiceSuite struct {
	suite.Suite
	fx        *fixture.Fixture
	currency  *currency.Service
	inventory *inventory.Service
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fx = fixture.New()
	s.ctx = s.fx.Ctx
	s.currency = currency.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	s.inventory = inventory.New(s.fx.Store, s.fx.Bus, s.fx.Logger)
	s.service = New(s.currency, s.inventory, []model.LevelReward{
		{Level: 0, Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 50}}},
		{Level: 3, Rewards: []model.RewardEntry{
			{Type: model.RewardHardCurrency, Amount: 2},
			{Type: model.RewardItem, RewardID: "potion", Amount: 1},
		}},
	}, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) TestGrantRewardsAppliesEachEntry() {
	entries := []model.RewardEntry{
		{Type: model.RewardSoftCurrency, Amount: 10},
		{Type: model.RewardHardCurrency, Amount: 3},
		{Type: model.RewardItem, RewardID: "potion", Amount: 2},
	}

	s.service.GrantRewards(s.ctx, entries)

	s.Equal(10, s.currency.Soft())
	s.Equal(3, s.currency.Hard())
	s.Equal(2, s.inventory.GetQuantity("potion"))

	granted := s.fx.Recorder.OfType(model.EventRewardsGranted)
	s.Require().Len(granted, 1)
	s.Equal(model.RewardsGrantedPayload{Rewards: entries}, granted[0].Payload)
}

func (s *ServiceSuite) TestGrantRewardsSkipsNonPositive() {
	s.service.GrantRewards(s.ctx, []model.RewardEntry{
		{Type: model.RewardSoftCurrency, Amount: 0},
		{Type: model.RewardItem, RewardID: "potion", Amount: -1},
		{Type: "mystery", Amount: 5},
		{Type: model.RewardHardCurrency, Amount: 1},
	})

	s.Equal(0, s.currency.Soft())
	s.Equal(1, s.currency.Hard())
	s.False(s.inventory.HasItem("potion"))
	s.Len(s.fx.Recorder.OfType(model.EventRewardsGranted), 1)
}

func (s *ServiceSuite) TestGrantEmptyIsNoop() {
	s.service.GrantRewards(s.ctx, nil)
	s.Empty(s.fx.Recorder.Events())
}

func (s *ServiceSuite) TestGrantLevelReward() {
	s.True(s.service.GrantLevelReward(s.ctx, 3))

	s.Equal(2, s.currency.Hard())
	s.Equal(1, s.inventory.GetQuantity("potion"))
}

func (s *ServiceSuite) TestGrantLevelRewardUnmapped() {
	s.False(s.service.GrantLevelReward(s.ctx, 1))
	s.Empty(s.fx.Recorder.Events())
}

func (s *ServiceSuite) TestLevelRewardReturnsCopy() {
	entries, ok := s.service.LevelReward(0)
	s.Require().True(ok)
	entries[0].Amount = 999

	again, _ := s.service.LevelReward(0)
	s.Equal(50, again[0].Amount)
}
