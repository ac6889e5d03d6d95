package handler

import (
	"net/http"

	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/playerdata"
)

// SaveHandler exposes the player data record
type SaveHandler struct {
	store playerdata.StoreInterface
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(store playerdata.StoreInterface) *SaveHandler {
	return &SaveHandler{store: store}
}

// Get handles GET /api/v1/save
func (h *SaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.write(w)
}

// Checkpoint handles POST /api/v1/save
func (h *SaveHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Checkpoint(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	h.write(w)
}

// Reset handles POST /api/v1/save/reset
func (h *SaveHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset(r.Context())
	h.write(w)
}

func (h *SaveHandler) write(w http.ResponseWriter) {
	body, err := playerdata.Encode(h.store.Data())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Save{
		Key:      h.store.Key(),
		ReadOnly: h.store.ReadOnly(),
		Data:     body,
	})
}
