package handler

import (
	"net/http"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/services/equipment"
	"github.com/mcoot/protocasual/internal/services/inventory"
)

// InventoryHandler handles inventory and equipment endpoints
type InventoryHandler struct {
	inventory inventory.ServiceInterface
	equipment equipment.ServiceInterface
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inv inventory.ServiceInterface, equip equipment.ServiceInterface) *InventoryHandler {
	return &InventoryHandler{inventory: inv, equipment: equip}
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Inventory{Items: h.inventory.Items()})
}

// Add handles POST /api/v1/inventory/add
func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := parseItem(w, r)
	if !ok {
		return
	}
	h.inventory.AddItem(r.Context(), req.ItemID, req.Amount)
	response.JSON(w, http.StatusOK, response.Inventory{Items: h.inventory.Items()})
}

// Remove handles POST /api/v1/inventory/remove
func (h *InventoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := parseItem(w, r)
	if !ok {
		return
	}
	if !h.inventory.RemoveItem(r.Context(), req.ItemID, req.Amount) {
		WriteError(w, apierr.NewConflictError(apierr.CodeInsufficientItems, "Not enough "+req.ItemID))
		return
	}
	response.JSON(w, http.StatusOK, response.Inventory{Items: h.inventory.Items()})
}

// Equipment handles GET /api/v1/equipment
func (h *InventoryHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Equipment{Slots: h.equipment.Slots()})
}

// Equip handles POST /api/v1/equipment/equip
func (h *InventoryHandler) Equip(w http.ResponseWriter, r *http.Request) {
	var req request.EquipRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Slot == "" || req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("slot and item_id are required"))
		return
	}
	if !h.equipment.Equip(r.Context(), req.Slot, req.ItemID) {
		WriteError(w, apierr.NewConflictError(apierr.CodeNotEquippable, "Item is not owned or cannot be equipped"))
		return
	}
	response.JSON(w, http.StatusOK, response.Equipment{Slots: h.equipment.Slots()})
}

// Unequip handles POST /api/v1/equipment/unequip
func (h *InventoryHandler) Unequip(w http.ResponseWriter, r *http.Request) {
	var req request.EquipRequest
	if !decode(w, r, &req) {
		return
	}
	if !h.equipment.Unequip(r.Context(), req.Slot) {
		WriteError(w, apierr.NewConflictError(apierr.CodeSlotEmpty, "Slot is empty"))
		return
	}
	response.JSON(w, http.StatusOK, response.Equipment{Slots: h.equipment.Slots()})
}

func parseItem(w http.ResponseWriter, r *http.Request) (request.ItemRequest, bool) {
	var req request.ItemRequest
	if !decode(w, r, &req) {
		return req, false
	}
	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("item_id is required"))
		return req, false
	}
	if req.Amount == 0 {
		req.Amount = 1
	}
	if req.Amount < 0 {
		WriteError(w, NewInvalidRequestError("amount must be positive"))
		return req, false
	}
	return req, true
}
