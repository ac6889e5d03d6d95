package achievement

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
	rewards := reward.New(s.wallet, inv, nil, s.fx.Bus, s.fx.Logger)

	defs := []model.AchievementDefinition{
		{ID: "first_win", RequiredProgress: 1, Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 50}}},
		{ID: "collector", RequiredProgress: 10},
		{ID: "first_win", RequiredProgress: 99},
		{ID: ""},
	}
	s.service = New(s.fx.Store, defs, rewards, s.fx.Analytics, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) TestFirstWinUnlocksOnce() {
	s.service.AddProgress(s.ctx, "first_win", 1)

	s.True(s.service.IsUnlocked("first_win"))
	s.Equal(1, s.service.GetProgress("first_win"))
	s.Len(s.fx.Recorder.OfType(model.EventAchievementUnlocked), 1)
	s.Equal(50, s.wallet.Soft())
	s.Len(s.fx.Analytics.Named(analytics.EventAchievementUnlocked), 1)

	s.service.AddProgress(s.ctx, "first_win", 1)

	s.Equal(1, s.service.GetProgress("first_win"))
	s.Len(s.fx.Recorder.OfType(model.EventAchievementUnlocked), 1)
	s.Len(s.fx.Recorder.OfType(model.EventAchievementProgress), 1)
	s.Equal(50, s.wallet.Soft())
}

func (s *ServiceSuite) TestProgressAccumulates() {
	for range 9 {
		s.service.AddProgress(s.ctx, "collector", 1)
	}
	s.False(s.service.IsUnlocked("collector"))
	s.Equal(9, s.service.GetProgress("collector"))

	s.service.AddProgress(s.ctx, "collector", 5)
	s.True(s.service.IsUnlocked("collector"))
	s.Equal(14, s.service.GetProgress("collector"))

	persisted := s.fx.Persisted().Achievements["collector"]
	s.Require().NotNil(persisted)
	s.Equal(model.AchievementProgress{Progress: 14, Unlocked: true}, *persisted)
}

func (s *ServiceSuite) TestInvalidInputIsNoop() {
	s.service.AddProgress(s.ctx, "", 1)
	s.service.AddProgress(s.ctx, "collector", 0)
	s.service.AddProgress(s.ctx, "collector", -3)

	s.Empty(s.fx.Recorder.Events())
	s.Equal(0, s.service.GetProgress("collector"))
}

func (s *ServiceSuite) TestUndefinedNeverUnlocks() {
	s.service.AddProgress(s.ctx, "secret", 1000)

	s.Equal(1000, s.service.GetProgress("secret"))
	s.False(s.service.IsUnlocked("secret"))
	s.Empty(s.fx.Recorder.OfType(model.EventAchievementUnlocked))
}

func (s *ServiceSuite) TestFirstDuplicateDefinitionWins() {
	def, ok := s.service.Definition("first_win")
	s.True(ok)
	s.Equal(1, def.RequiredProgress)
}

func (s *ServiceSuite) TestGetAll() {
	s.service.AddProgress(s.ctx, "collector", 3)

	all := s.service.GetAll()
	s.Equal([]Status{
		{ID: "first_win", Progress: 0, Required: 1},
		{ID: "collector", Progress: 3, Required: 10},
	}, all)
	s.Contains(s.fx.Data().Achievements, "first_win")
}

func (s *ServiceSuite) TestUnknownReadsDefault() {
	s.False(s.service.IsUnlocked("nope"))
	s.Equal(0, s.service.GetProgress("nope"))
}

func (s *ServiceSuite) TestReset() {
	s.service.AddProgress(s.ctx, "first_win", 1)
	s.service.Reset(s.ctx)

	s.False(s.service.IsUnlocked("first_win"))
	s.Empty(s.fx.Persisted().Achievements)

	s.service.AddProgress(s.ctx, "first_win", 1)
	s.True(s.service.IsUnlocked("first_win"))
}

func (s *ServiceSuite) TestStoreResetClearsProgress() {
	s.service.AddProgress(s.ctx, "collector", 4)
	s.fx.Store.Reset(s.ctx)

	s.Equal(0, s.service.GetProgress("collector"))
}
