// Package equipment owns the slot-to-item bindings.
package equipment

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/protocasual/internal/catalog"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/services/inventory"
)

// ServiceInterface is the equipment capability
type ServiceInterface interface {
	Equip(ctx context.Context, slot, itemID string) bool
	Unequip(ctx context.Context, slot string) bool
	Equipped(slot string) (string, bool)
	IsEquipped(itemID string) bool
	Slots() []model.EquipmentSlot
}

// Service mutates PlayerData.Equipment. Each slot holds at most one item, and
// only owned items may be equipped.
type Service struct {
	store     playerdata.StoreInterface
	equipment *model.Equipment
	inventory inventory.ServiceInterface
	catalog   catalog.CatalogInterface
	bus       *event.Bus
	logger    *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates an equipment service. Items that leave the inventory are unequipped.
func New(
	store playerdata.StoreInterface,
	inv inventory.ServiceInterface,
	items catalog.CatalogInterface,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	s := &Service{
		store:     store,
		equipment: &store.Data().Equipment,
		inventory: inv,
		catalog:   items,
		bus:       bus,
		logger:    logger.With(slog.String("component", "equipment")),
	}
	bus.Subscribe(model.EventInventoryChanged, s.onInventoryChanged)
	return s
}

// Equip binds itemID to slot, replacing whatever was there
func (s *Service) Equip(ctx context.Context, slot, itemID string) bool {
	if slot == "" || itemID == "" {
		return false
	}
	if !s.inventory.HasItem(itemID) {
		s.logger.Debug("cannot equip unowned item", slog.String("item_id", itemID))
		return false
	}
	if item, ok := s.catalog.Get(itemID); ok && !item.Equippable {
		s.logger.Debug("item is not equippable", slog.String("item_id", itemID))
		return false
	}

	if i := s.find(slot); i >= 0 {
		if s.equipment.Slots[i].ItemID == itemID {
			return true
		}
		s.equipment.Slots[i].ItemID = itemID
	} else {
		s.equipment.Slots = append(s.equipment.Slots, model.EquipmentSlot{SlotName: slot, ItemID: itemID})
	}

	s.logger.Debug("item equipped", slog.String("slot", slot), slog.String("item_id", itemID))
	s.commit(ctx, slot, itemID)
	return true
}

// Unequip empties slot. Returns false if nothing was equipped there.
func (s *Service) Unequip(ctx context.Context, slot string) bool {
	i := s.find(slot)
	if i < 0 {
		return false
	}
	s.equipment.Slots = slices.Delete(s.equipment.Slots, i, i+1)
	s.commit(ctx, slot, "")
	return true
}

func (s *Service) Equipped(slot string) (string, bool) {
	if i := s.find(slot); i >= 0 {
		return s.equipment.Slots[i].ItemID, true
	}
	return "", false
}

func (s *Service) IsEquipped(itemID string) bool {
	return slices.ContainsFunc(s.equipment.Slots, func(e model.EquipmentSlot) bool {
		return e.ItemID == itemID
	})
}

// Slots returns a snapshot of the bindings
func (s *Service) Slots() []model.EquipmentSlot {
	return slices.Clone(s.equipment.Slots)
}

func (s *Service) find(slot string) int {
	return slices.IndexFunc(s.equipment.Slots, func(e model.EquipmentSlot) bool {
		return e.SlotName == slot
	})
}

func (s *Service) onInventoryChanged(ev model.Event) {
	p, ok := ev.Payload.(model.InventoryChangedPayload)
	if !ok || p.Quantity > 0 {
		return
	}
	for _, slot := range s.Slots() {
		if p.ItemID == "" || slot.ItemID == p.ItemID {
			s.Unequip(context.Background(), slot.SlotName)
		}
	}
}

func (s *Service) commit(ctx context.Context, slot, itemID string) {
	s.store.Save(ctx)
	s.bus.Publish(model.EventEquipmentChanged, model.EquipmentChangedPayload{SlotName: slot, ItemID: itemID})
}
