package currency

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/testutil/fixture"
)

type ServiceSuite struct {
	suite.Suite
	fx      *fixture.Fixture
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fx = fixture.New()
	s.ctx = s.fx.Ctx
	s.service = New(s.fx.Store, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) persistedWallet() model.Currency {
	return s.fx.Persisted().Currency
}

func (s *ServiceSuite) TestAddSoft() {
	s.service.AddSoft(s.ctx, 100)

	s.Equal(100, s.service.Soft())
	s.Equal(100, s.persistedWallet().Soft)

	events := s.fx.Recorder.OfType(model.EventCurrencyChanged)
	s.Require().Len(events, 1)
	s.Equal(model.CurrencyChangedPayload{Soft: 100}, events[0].Payload)
}

func (s *ServiceSuite) TestAddNonPositiveIsNoop() {
	s.service.AddSoft(s.ctx, 0)
	s.service.AddHard(s.ctx, -5)

	s.Equal(0, s.service.Soft())
	s.Equal(0, s.service.Hard())
	s.Empty(s.fx.Recorder.OfType(model.EventCurrencyChanged))
}

func (s *ServiceSuite) TestSpendHard() {
	s.service.AddHard(s.ctx, 10)
	s.fx.Recorder.Reset()

	s.True(s.service.SpendHard(s.ctx, 4))
	s.Equal(6, s.service.Hard())
	s.Equal(6, s.persistedWallet().Hard)
	s.Len(s.fx.Recorder.OfType(model.EventCurrencyChanged), 1)
}

func (s *ServiceSuite) TestSpendInsufficientLeavesBalance() {
	s.service.AddSoft(s.ctx, 50)
	s.fx.Recorder.Reset()

	s.False(s.service.SpendSoft(s.ctx, 51))
	s.Equal(50, s.service.Soft())
	s.Empty(s.fx.Recorder.Events())
}

func (s *ServiceSuite) TestSpendExactBalance() {
	s.service.AddSoft(s.ctx, 50)
	s.True(s.service.SpendSoft(s.ctx, 50))
	s.Equal(0, s.service.Soft())
}

func (s *ServiceSuite) TestSpendNonPositiveFails() {
	s.service.AddSoft(s.ctx, 50)
	s.False(s.service.SpendSoft(s.ctx, 0))
	s.False(s.service.SpendSoft(s.ctx, -1))
	s.Equal(50, s.service.Soft())
}

func (s *ServiceSuite) TestHas() {
	s.service.AddHard(s.ctx, 3)

	s.True(s.service.HasHard(3))
	s.False(s.service.HasHard(4))
	s.True(s.service.HasSoft(0))
	s.True(s.service.Has(model.CurrencyHard, 2))
	s.False(s.service.Has("gems", 0))
}

func (s *ServiceSuite) TestUnknownKindIgnored() {
	s.service.Add(s.ctx, "gems", 10)
	s.False(s.service.Spend(s.ctx, "gems", 1))
	s.Equal(0, s.service.Balance("gems"))
}

func (s *ServiceSuite) TestSurvivesStoreReset() {
	s.service.AddSoft(s.ctx, 30)
	s.fx.Store.Reset(s.ctx)

	s.Equal(0, s.service.Soft())
	s.service.AddSoft(s.ctx, 5)
	s.Equal(5, s.fx.Store.Data().Currency.Soft)
}

func (s *ServiceSuite) TestBalanceNeverNegative() {
	rng := rand.New(rand.NewPCG(1, 2))
	expected := 0
	for range 500 {
		n := rng.IntN(40) - 5
		if rng.IntN(2) == 0 {
			s.service.AddSoft(s.ctx, n)
			if n > 0 {
				expected += n
			}
		} else {
			ok := s.service.SpendSoft(s.ctx, n)
			s.Equal(n > 0 && n <= expected, ok)
			if ok {
				expected -= n
			}
		}
		s.GreaterOrEqual(s.service.Soft(), 0)
		s.Equal(expected, s.service.Soft())
	}
}
