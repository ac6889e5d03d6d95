// Package store sells catalog items for wallet currency.
package store

import (
	"context"
	"log/slog"

	"github.com/mcoot/protocasual/internal/catalog"
	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/inventory"
)

// ServiceInterface is the purchase capability
type ServiceInterface interface {
	CanPurchase(itemID string) bool
	TryPurchase(ctx context.Context, itemID string, preferHard bool) bool
}

// Service orchestrates catalog, wallet and inventory. It owns no subtree.
type Service struct {
	catalog   catalog.CatalogInterface
	currency  currency.ServiceInterface
	inventory inventory.ServiceInterface
	analytics analytics.Sink
	bus       *event.Bus
	logger    *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a store service
func New(
	items catalog.CatalogInterface,
	wallet currency.ServiceInterface,
	inv inventory.ServiceInterface,
	sink analytics.Sink,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:   items,
		currency:  wallet,
		inventory: inv,
		analytics: sink,
		bus:       bus,
		logger:    logger.With(slog.String("component", "store")),
	}
}

// CanPurchase reports whether itemID exists, is not an owned non-stackable,
// and one of its nonzero prices is affordable
func (s *Service) CanPurchase(itemID string) bool {
	item, ok := s.catalog.Get(itemID)
	if !ok {
		return false
	}
	if s.alreadyOwned(item) {
		return false
	}
	_, _, ok = s.resolvePrice(item, false)
	return ok
}

// TryPurchase pays for and grants one unit of itemID.
// Price order: hard when preferred and affordable, then soft, then hard.
func (s *Service) TryPurchase(ctx context.Context, itemID string, preferHard bool) bool {
	item, ok := s.catalog.Get(itemID)
	if !ok {
		s.logger.Warn("item not found in catalog", slog.String("item_id", itemID))
		return false
	}
	if s.alreadyOwned(item) {
		s.logger.Debug("already owns non-stackable item", slog.String("item_id", itemID))
		return false
	}

	kind, price, ok := s.resolvePrice(item, preferHard)
	if !ok {
		s.logger.Debug("not enough currency", slog.String("item_id", itemID))
		return false
	}
	if !s.currency.Spend(ctx, kind, price) {
		return false
	}
	s.inventory.AddItem(ctx, itemID, 1)

	s.logger.Info("item purchased",
		slog.String("item_id", itemID),
		slog.String("currency", string(kind)),
		slog.Int("price", price))

	payload := model.PurchaseCompletedPayload{ItemID: itemID, Currency: kind, PricePaid: price}
	s.bus.Publish(model.EventPurchaseCompleted, payload)
	s.analytics.Track(ctx, analytics.EventPurchase, analytics.Params{
		"item_id":  itemID,
		"currency": string(kind),
		"price":    price,
	})
	return true
}

func (s *Service) alreadyOwned(item model.Item) bool {
	return !item.Stackable && s.inventory.HasItem(item.ID)
}

func (s *Service) resolvePrice(item model.Item, preferHard bool) (model.CurrencyKind, int, bool) {
	hardOK := item.HardPrice > 0 && s.currency.HasHard(item.HardPrice)
	softOK := item.SoftPrice > 0 && s.currency.HasSoft(item.SoftPrice)
	switch {
	case preferHard && hardOK:
		return model.CurrencyHard, item.HardPrice, true
	case softOK:
		return model.CurrencySoft, item.SoftPrice, true
	case hardOK:
		return model.CurrencyHard, item.HardPrice, true
	}
	return "", 0, false
}
