// Package currency owns the soft/hard wallet subtree.
package currency

import (
	"context"
	"log/slog"

	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
)

// ServiceInterface is the wallet capability
type ServiceInterface interface {
	Soft() int
	Hard() int
	Balance(kind model.CurrencyKind) int
	AddSoft(ctx context.Context, n int)
	AddHard(ctx context.Context, n int)
	Add(ctx context.Context, kind model.CurrencyKind, n int)
	SpendSoft(ctx context.Context, n int) bool
	SpendHard(ctx context.Context, n int) bool
	Spend(ctx context.Context, kind model.CurrencyKind, n int) bool
	HasSoft(n int) bool
	HasHard(n int) bool
	Has(kind model.CurrencyKind, n int) bool
}

// Service mutates PlayerData.Currency. Balances never go negative.
type Service struct {
	store  playerdata.StoreInterface
	wallet *model.Currency
	bus    *event.Bus
	logger *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a currency service over the store's wallet subtree
func New(store playerdata.StoreInterface, bus *event.Bus, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		wallet: &store.Data().Currency,
		bus:    bus,
		logger: logger.With(slog.String("component", "currency")),
	}
}

func (s *Service) Soft() int { return s.wallet.Soft }
func (s *Service) Hard() int { return s.wallet.Hard }

// Balance returns the balance of one denomination
func (s *Service) Balance(kind model.CurrencyKind) int {
	if p := s.balance(kind); p != nil {
		return *p
	}
	return 0
}

func (s *Service) AddSoft(ctx context.Context, n int) { s.Add(ctx, model.CurrencySoft, n) }
func (s *Service) AddHard(ctx context.Context, n int) { s.Add(ctx, model.CurrencyHard, n) }

func (s *Service) SpendSoft(ctx context.Context, n int) bool {
	return s.Spend(ctx, model.CurrencySoft, n)
}

func (s *Service) SpendHard(ctx context.Context, n int) bool {
	return s.Spend(ctx, model.CurrencyHard, n)
}

func (s *Service) HasSoft(n int) bool { return s.wallet.Soft >= n }
func (s *Service) HasHard(n int) bool { return s.wallet.Hard >= n }

// Has reports whether the denomination covers n
func (s *Service) Has(kind model.CurrencyKind, n int) bool {
	p := s.balance(kind)
	return p != nil && *p >= n
}

// Add increments a balance. Non-positive amounts are ignored.
func (s *Service) Add(ctx context.Context, kind model.CurrencyKind, n int) {
	p := s.balance(kind)
	if p == nil || n <= 0 {
		return
	}
	*p += n
	s.logger.Debug("currency added", slog.String("kind", string(kind)), slog.Int("amount", n), slog.Int("balance", *p))
	s.commit(ctx)
}

// Spend decrements a balance, failing without mutation if it cannot cover n
func (s *Service) Spend(ctx context.Context, kind model.CurrencyKind, n int) bool {
	p := s.balance(kind)
	if p == nil || n <= 0 || *p < n {
		return false
	}
	*p -= n
	s.logger.Debug("currency spent", slog.String("kind", string(kind)), slog.Int("amount", n), slog.Int("balance", *p))
	s.commit(ctx)
	return true
}

func (s *Service) balance(kind model.CurrencyKind) *int {
	switch kind {
	case model.CurrencySoft:
		return &s.wallet.Soft
	case model.CurrencyHard:
		return &s.wallet.Hard
	}
	return nil
}

func (s *Service) commit(ctx context.Context) {
	s.store.Save(ctx)
	s.bus.Publish(model.EventCurrencyChanged, model.CurrencyChangedPayload{
		Soft: s.wallet.Soft,
		Hard: s.wallet.Hard,
	})
}
