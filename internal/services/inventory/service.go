// Package inventory owns the item stack subtree.
package inventory

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
)

// ServiceInterface is the inventory capability
type ServiceInterface interface {
	AddItem(ctx context.Context, id string, amount int)
	RemoveItem(ctx context.Context, id string, amount int) bool
	HasItem(id string) bool
	GetQuantity(id string) int
	Items() []model.InventoryItem
	Clear(ctx context.Context)
}

// Service mutates PlayerData.Inventory. Present stacks always have Quantity > 0.
type Service struct {
	store     playerdata.StoreInterface
	inventory *model.Inventory
	bus       *event.Bus
	logger    *slog.Logger

	// index is a cache over inventory.Items, rebuilt whenever the save is replaced
	index map[string]*model.InventoryItem
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates an inventory service and builds its index
func New(store playerdata.StoreInterface, bus *event.Bus, logger *slog.Logger) *Service {
	s := &Service{
		store:     store,
		inventory: &store.Data().Inventory,
		bus:       bus,
		logger:    logger.With(slog.String("component", "inventory")),
	}
	s.rebuildIndex()
	bus.Subscribe(model.EventPlayerDataReset, func(model.Event) { s.rebuildIndex() })
	bus.Subscribe(model.EventPlayerDataLoaded, func(model.Event) { s.rebuildIndex() })
	return s
}

func (s *Service) rebuildIndex() {
	s.index = make(map[string]*model.InventoryItem, len(s.inventory.Items))
	for _, it := range s.inventory.Items {
		s.index[it.ItemID] = it
	}
}

// AddItem creates or grows a stack. Empty ids and non-positive amounts are ignored.
func (s *Service) AddItem(ctx context.Context, id string, amount int) {
	if id == "" || amount <= 0 {
		return
	}
	it, ok := s.index[id]
	if !ok {
		it = &model.InventoryItem{ItemID: id}
		s.inventory.Items = append(s.inventory.Items, it)
		s.index[id] = it
	}
	it.Quantity += amount

	s.logger.Debug("item added", slog.String("item_id", id), slog.Int("amount", amount), slog.Int("quantity", it.Quantity))
	s.commit(ctx, id, it.Quantity)
}

// RemoveItem shrinks a stack, deleting it at zero. Fails without mutation on underflow.
func (s *Service) RemoveItem(ctx context.Context, id string, amount int) bool {
	if amount <= 0 {
		return false
	}
	it, ok := s.index[id]
	if !ok || it.Quantity < amount {
		return false
	}
	it.Quantity -= amount
	if it.Quantity == 0 {
		delete(s.index, id)
		s.inventory.Items = slices.DeleteFunc(s.inventory.Items, func(e *model.InventoryItem) bool {
			return e == it
		})
	}

	s.logger.Debug("item removed", slog.String("item_id", id), slog.Int("amount", amount), slog.Int("quantity", it.Quantity))
	s.commit(ctx, id, it.Quantity)
	return true
}

func (s *Service) HasItem(id string) bool {
	_, ok := s.index[id]
	return ok
}

// GetQuantity returns the stack size, 0 if absent
func (s *Service) GetQuantity(id string) int {
	if it, ok := s.index[id]; ok {
		return it.Quantity
	}
	return 0
}

// Items returns a snapshot of the stacks in insertion order
func (s *Service) Items() []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(s.inventory.Items))
	for _, it := range s.inventory.Items {
		out = append(out, *it)
	}
	return out
}

// Clear empties the inventory
func (s *Service) Clear(ctx context.Context) {
	s.inventory.Items = []*model.InventoryItem{}
	s.index = make(map[string]*model.InventoryItem)
	s.logger.Info("inventory cleared")
	s.commit(ctx, "", 0)
}

func (s *Service) commit(ctx context.Context, id string, quantity int) {
	s.store.Save(ctx)
	s.bus.Publish(model.EventInventoryChanged, model.InventoryChangedPayload{ItemID: id, Quantity: quantity})
}
