package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/protocasual/internal/api/handler"
	"github.com/mcoot/protocasual/internal/api/middleware"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/catalog"
	"github.com/mcoot/protocasual/internal/factory"
	"github.com/mcoot/protocasual/internal/gameloop"
	basemw "github.com/mcoot/protocasual/internal/middleware"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/registry"
	"github.com/mcoot/protocasual/internal/services/achievement"
	"github.com/mcoot/protocasual/internal/services/currency"
	"github.com/mcoot/protocasual/internal/services/dailyreward"
	"github.com/mcoot/protocasual/internal/services/equipment"
	"github.com/mcoot/protocasual/internal/services/inventory"
	"github.com/mcoot/protocasual/internal/services/leaderboard"
	"github.com/mcoot/protocasual/internal/services/progress"
	"github.com/mcoot/protocasual/internal/services/store"
	"github.com/mcoot/protocasual/internal/services/tutorial"
	"github.com/mcoot/protocasual/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	App    *factory.App
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	app := cfg.App
	reg := app.Registry

	// Handlers depend on capabilities, resolved from the app's registry
	wallet := registry.MustGet[currency.ServiceInterface](reg)
	inv := registry.MustGet[inventory.ServiceInterface](reg)

	saveHandler := handler.NewSaveHandler(registry.MustGet[playerdata.StoreInterface](reg))
	walletHandler := handler.NewWalletHandler(wallet)
	inventoryHandler := handler.NewInventoryHandler(inv, registry.MustGet[equipment.ServiceInterface](reg))
	storeHandler := handler.NewStoreHandler(
		registry.MustGet[catalog.CatalogInterface](reg),
		registry.MustGet[store.ServiceInterface](reg),
		wallet,
		inv,
	)
	progressionHandler := handler.NewProgressionHandler(
		registry.MustGet[dailyreward.ServiceInterface](reg),
		registry.MustGet[tutorial.ServiceInterface](reg),
		registry.MustGet[achievement.ServiceInterface](reg),
		registry.MustGet[leaderboard.ServiceInterface](reg),
		registry.MustGet[progress.ServiceInterface](reg),
	)
	gameHandler := handler.NewGameHandler(registry.MustGet[gameloop.ManagerInterface](reg))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check stays outside the service lock
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Event stream is long-lived so it never takes the service lock
	stream := api.NewRoute().Subrouter()
	stream.Use(middleware.Recovery(cfg.Logger), mux.MiddlewareFunc(basemw.Logging(cfg.Logger)))
	stream.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, app.Events.Hub(), w.Header().Get(basemw.RequestIDHeader))
	}).Methods(http.MethodGet)

	core := api.NewRoute().Subrouter()
	core.Use(middleware.Stack(cfg.Logger, app)...)

	// Save routes
	core.HandleFunc("/save", saveHandler.Get).Methods(http.MethodGet)
	core.HandleFunc("/save", saveHandler.Checkpoint).Methods(http.MethodPost)
	core.HandleFunc("/save/reset", saveHandler.Reset).Methods(http.MethodPost)

	// Economy routes
	core.HandleFunc("/wallet", walletHandler.Get).Methods(http.MethodGet)
	core.HandleFunc("/wallet/add", walletHandler.Add).Methods(http.MethodPost)
	core.HandleFunc("/wallet/spend", walletHandler.Spend).Methods(http.MethodPost)
	core.HandleFunc("/inventory", inventoryHandler.List).Methods(http.MethodGet)
	core.HandleFunc("/inventory/add", inventoryHandler.Add).Methods(http.MethodPost)
	core.HandleFunc("/inventory/remove", inventoryHandler.Remove).Methods(http.MethodPost)
	core.HandleFunc("/equipment", inventoryHandler.Equipment).Methods(http.MethodGet)
	core.HandleFunc("/equipment/equip", inventoryHandler.Equip).Methods(http.MethodPost)
	core.HandleFunc("/equipment/unequip", inventoryHandler.Unequip).Methods(http.MethodPost)
	core.HandleFunc("/catalog", storeHandler.Catalog).Methods(http.MethodGet)
	core.HandleFunc("/store/purchase", storeHandler.Purchase).Methods(http.MethodPost)

	// Meta-progression routes
	core.HandleFunc("/daily", progressionHandler.Daily).Methods(http.MethodGet)
	core.HandleFunc("/daily/claim", progressionHandler.ClaimDaily).Methods(http.MethodPost)
	core.HandleFunc("/tutorial", progressionHandler.Tutorial).Methods(http.MethodGet)
	core.HandleFunc("/tutorial/{action}", progressionHandler.TutorialAction).Methods(http.MethodPost)
	core.HandleFunc("/achievements", progressionHandler.Achievements).Methods(http.MethodGet)
	core.HandleFunc("/achievements/{id}/progress", progressionHandler.AddAchievementProgress).Methods(http.MethodPost)
	core.HandleFunc("/leaderboards/{id}", progressionHandler.Leaderboard).Methods(http.MethodGet)
	core.HandleFunc("/leaderboards/{id}", progressionHandler.SubmitScore).Methods(http.MethodPost)
	core.HandleFunc("/progress", progressionHandler.Progress).Methods(http.MethodGet)
	core.HandleFunc("/progress/complete", progressionHandler.CompleteLevel).Methods(http.MethodPost)

	// Game lifecycle routes
	core.HandleFunc("/game/state", gameHandler.Get).Methods(http.MethodGet)
	core.HandleFunc("/game/state", gameHandler.Update).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", SchemaVersion: model.CurrentSchemaVersion})
}
