package handler

import (
	"net/http"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/currency"
)

// WalletHandler handles currency endpoints
type WalletHandler struct {
	currency currency.ServiceInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallet currency.ServiceInterface) *WalletHandler {
	return &WalletHandler{currency: wallet}
}

// Get handles GET /api/v1/wallet
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.wallet())
}

// Add handles POST /api/v1/wallet/add
func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request) {
	kind, amount, ok := h.parse(w, r)
	if !ok {
		return
	}
	h.currency.Add(r.Context(), kind, amount)
	response.JSON(w, http.StatusOK, h.wallet())
}

// Spend handles POST /api/v1/wallet/spend
func (h *WalletHandler) Spend(w http.ResponseWriter, r *http.Request) {
	kind, amount, ok := h.parse(w, r)
	if !ok {
		return
	}
	if !h.currency.Spend(r.Context(), kind, amount) {
		WriteError(w, apierr.NewConflictError(apierr.CodeInsufficientFunds, "Not enough "+string(kind)+" currency"))
		return
	}
	response.JSON(w, http.StatusOK, h.wallet())
}

func (h *WalletHandler) parse(w http.ResponseWriter, r *http.Request) (model.CurrencyKind, int, bool) {
	var req request.CurrencyRequest
	if !decode(w, r, &req) {
		return "", 0, false
	}
	kind, err := model.ParseCurrencyKind(req.Currency)
	if err != nil {
		WriteError(w, err)
		return "", 0, false
	}
	if req.Amount <= 0 {
		WriteError(w, NewInvalidRequestError("amount must be positive"))
		return "", 0, false
	}
	return kind, req.Amount, true
}

func (h *WalletHandler) wallet() response.Wallet {
	return response.Wallet{Soft: h.currency.Soft(), Hard: h.currency.Hard()}
}
