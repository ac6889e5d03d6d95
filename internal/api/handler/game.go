package handler

import (
	"net/http"
	"time"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/gameloop"
	"github.com/mcoot/protocasual/internal/model"
)

// GameHandler handles the game lifecycle endpoints
type GameHandler struct {
	game gameloop.ManagerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(game gameloop.ManagerInterface) *GameHandler {
	return &GameHandler{game: game}
}

// Get handles GET /api/v1/game/state
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.state())
}

// Update handles POST /api/v1/game/state
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.GameStateRequest
	if !decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	if req.Mode != "" {
		if err := h.game.SetModeByName(req.Mode); err != nil {
			WriteError(w, err)
			return
		}
	}

	changed := true
	switch {
	case req.State != "":
		state, err := model.ParseGameState(req.State)
		if err != nil {
			WriteError(w, err)
			return
		}
		changed = h.game.ChangeState(ctx, state)
	case req.Action != "":
		act, ok := actions[req.Action]
		if !ok {
			WriteError(w, NewInvalidRequestError("unknown action "+req.Action))
			return
		}
		changed = act(h.game, r)
	}
	if !changed {
		WriteError(w, apierr.NewConflictError(apierr.CodeInvalidTransition, "Transition had no effect"))
		return
	}

	if req.TickMillis > 0 {
		h.game.Tick(time.Duration(req.TickMillis) * time.Millisecond)
	}
	response.JSON(w, http.StatusOK, h.state())
}

var actions = map[string]func(gameloop.ManagerInterface, *http.Request) bool{
	"play":     func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Play(r.Context()) },
	"pause":    func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Pause(r.Context()) },
	"resume":   func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Resume(r.Context()) },
	"complete": func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Complete(r.Context()) },
	"fail":     func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Fail(r.Context()) },
	"restart":  func(m gameloop.ManagerInterface, r *http.Request) bool { return m.Restart(r.Context()) },
	"menu":     func(m gameloop.ManagerInterface, r *http.Request) bool { return m.ReturnToMenu(r.Context()) },
}

func (h *GameHandler) state() response.Game {
	return response.Game{Snapshot: h.game.Snapshot(), Modes: h.game.ModeNames()}
}
