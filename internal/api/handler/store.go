package handler

import (
	"net/http"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/catalog"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/inventory"
	"github.com/mcoot/protocasual/internal/services/store"
)

// StoreHandler handles catalog and purchase endpoints
type StoreHandler struct {
	catalog   catalog.CatalogInterface
	store     store.ServiceInterface
	currency  currency.ServiceInterface
	inventory inventory.ServiceInterface
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(
	items catalog.CatalogInterface,
	shop store.ServiceInterface,
	wallet currency.ServiceInterface,
	inv inventory.ServiceInterface,
) *StoreHandler {
	return &StoreHandler{catalog: items, store: shop, currency: wallet, inventory: inv}
}

// Catalog handles GET /api/v1/catalog
func (h *StoreHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.All()
	if category := r.URL.Query().Get("category"); category != "" {
		items = h.catalog.GetByCategory(category)
	} else if itemType := r.URL.Query().Get("type"); itemType != "" {
		items = h.catalog.GetByType(model.ItemType(itemType))
	}
	response.JSON(w, http.StatusOK, response.Catalog{Items: items})
}

// Purchase handles POST /api/v1/store/purchase
func (h *StoreHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("item_id is required"))
		return
	}
	if !h.catalog.Contains(req.ItemID) {
		WriteError(w, model.ErrItemNotFound)
		return
	}
	if !h.store.TryPurchase(r.Context(), req.ItemID, req.PreferHard) {
		WriteError(w, apierr.NewConflictError(apierr.CodePurchaseRejected, "Item is unaffordable or already owned"))
		return
	}
	response.JSON(w, http.StatusOK, response.Purchase{
		ItemID:   req.ItemID,
		Quantity: h.inventory.GetQuantity(req.ItemID),
		Wallet:   response.Wallet{Soft: h.currency.Soft(), Hard: h.currency.Hard()},
	})
}
