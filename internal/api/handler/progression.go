package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/achievement"
	"github.com/mcoot/protocasual/internal/services/dailyreward"
	"github.com/mcoot/protocasual/internal/services/leaderboard"
	"github.com/mcoot/protocasual/internal/services/progress"
	"github.com/mcoot/protocasual/internal/services/tutorial"
)

// ProgressionHandler handles the meta-progression endpoints
type ProgressionHandler struct {
	daily        dailyreward.ServiceInterface
	tutorial     tutorial.ServiceInterface
	achievements achievement.ServiceInterface
	leaderboards leaderboard.ServiceInterface
	progress     progress.ServiceInterface
}

// NewProgressionHandler creates a new progression handler
func NewProgressionHandler(
	daily dailyreward.ServiceInterface,
	tut tutorial.ServiceInterface,
	achievements achievement.ServiceInterface,
	boards leaderboard.ServiceInterface,
	levels progress.ServiceInterface,
) *ProgressionHandler {
	return &ProgressionHandler{
		daily:        daily,
		tutorial:     tut,
		achievements: achievements,
		leaderboards: boards,
		progress:     levels,
	}
}

// Daily handles GET /api/v1/daily
func (h *ProgressionHandler) Daily(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.dailyState())
}

// ClaimDaily handles POST /api/v1/daily/claim
func (h *ProgressionHandler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	if !h.daily.TryClaim(r.Context()) {
		WriteError(w, apierr.NewConflictError(apierr.CodeAlreadyClaimed, "Daily reward already claimed today"))
		return
	}
	response.JSON(w, http.StatusOK, h.dailyState())
}

func (h *ProgressionHandler) dailyState() response.DailyReward {
	resp := response.DailyReward{
		Streak:        h.daily.Streak(),
		CanClaimToday: h.daily.CanClaimToday(),
		TodayReward:   h.daily.PeekTodayReward(),
	}
	if t, ok := h.daily.LastClaimTime(); ok {
		resp.LastClaimTime = &t
	}
	return resp
}

// Tutorial handles GET /api/v1/tutorial
func (h *ProgressionHandler) Tutorial(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.tutorialState())
}

// TutorialAction handles POST /api/v1/tutorial/{action}
func (h *ProgressionHandler) TutorialAction(w http.ResponseWriter, r *http.Request) {
	switch mux.Vars(r)["action"] {
	case "start":
		h.tutorial.StartTutorial(r.Context())
	case "complete":
		h.tutorial.CompleteCurrentStep(r.Context())
	case "skip":
		h.tutorial.SkipTutorial(r.Context())
	case "reset":
		h.tutorial.Reset(r.Context())
	default:
		WriteError(w, NewInvalidRequestError("action must be start, complete, skip or reset"))
		return
	}
	response.JSON(w, http.StatusOK, h.tutorialState())
}

func (h *ProgressionHandler) tutorialState() response.Tutorial {
	resp := response.Tutorial{
		State:       string(h.tutorial.State()),
		CurrentStep: h.tutorial.CurrentStepIndex(),
	}
	if step, ok := h.tutorial.CurrentStep(); ok {
		resp.Step = &step
	}
	return resp
}

// Achievements handles GET /api/v1/achievements
func (h *ProgressionHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Achievements{Achievements: h.achievements.GetAll()})
}

// AddAchievementProgress handles POST /api/v1/achievements/{id}/progress
func (h *ProgressionHandler) AddAchievementProgress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req := request.ProgressRequest{Amount: 1}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		WriteError(w, NewInvalidRequestError("amount must be positive"))
		return
	}
	h.achievements.AddProgress(r.Context(), id, req.Amount)
	response.JSON(w, http.StatusOK, achievement.Status{
		ID:       id,
		Progress: h.achievements.GetProgress(id),
		Unlocked: h.achievements.IsUnlocked(id),
	})
}

// Leaderboard handles GET /api/v1/leaderboards/{id}?limit=n
func (h *ProgressionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit := leaderboard.DefaultLoadCount
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}
	response.JSON(w, http.StatusOK, h.board(id, h.leaderboards.LoadLeaderboard(id, limit)))
}

// SubmitScore handles POST /api/v1/leaderboards/{id}
func (h *ProgressionHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req request.ScoreRequest
	if !decode(w, r, &req) {
		return
	}
	h.leaderboards.SubmitScore(r.Context(), id, req.Score)
	response.JSON(w, http.StatusOK, h.board(id, h.leaderboards.GetCachedEntries(id)))
}

func (h *ProgressionHandler) board(id string, entries []model.LeaderboardEntry) response.Leaderboard {
	def := h.leaderboards.Definition(id)
	resp := response.Leaderboard{
		ID:         id,
		Descending: def.Descending,
		MaxEntries: def.MaxEntries,
		Entries:    entries,
	}
	if best, ok := h.leaderboards.GetPlayerBest(id); ok {
		resp.PlayerBest = &best
	}
	return resp
}

// Progress handles GET /api/v1/progress
func (h *ProgressionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Progress{CurrentLevel: h.progress.CurrentLevel()})
}

// CompleteLevel handles POST /api/v1/progress/complete
func (h *ProgressionHandler) CompleteLevel(w http.ResponseWriter, r *http.Request) {
	level := h.progress.CompleteLevel(r.Context())
	response.JSON(w, http.StatusOK, response.Progress{CurrentLevel: level})
}
