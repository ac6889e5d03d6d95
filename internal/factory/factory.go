// Package factory is the composition root: it builds the backend, the player
// data store, every service and the game loop, and binds them in a registry.
package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/protocasual/internal/catalog"
	"github.com/mcoot/protocasual/internal/config"
	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/dependencies/clock"
	"github.com/mcoot/protocasual/internal/dependencies/random"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/gameloop"
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
	"github.com/mcoot/protocasual/internal/services/reward"
	"github.com/mcoot/protocasual/internal/services/store"
	"github.com/mcoot/protocasual/internal/services/tutorial"
	"github.com/mcoot/protocasual/internal/sse"
	"github.com/mcoot/protocasual/internal/storage"
	"github.com/mcoot/protocasual/internal/storage/memory"
	"github.com/mcoot/protocasual/internal/storage/objectstore"
	redisstorage "github.com/mcoot/protocasual/internal/storage/redis"
	"github.com/mcoot/protocasual/internal/storage/sqlite"
)

// App contains all wired application components.
// Services assume one call in flight; callers on other goroutines hold Lock.
type App struct {
	mu sync.Mutex

	Content  *config.Content
	Registry *registry.Registry

	// Infrastructure
	Backend   storage.Backend
	Clock     clock.Clock
	Random    random.Random
	Bus       *event.Bus
	Store     *playerdata.Store
	Analytics analytics.Sink
	Events    *sse.Broadcaster

	// Economy
	Catalog   *catalog.Catalog
	Currency  *currency.Service
	Inventory *inventory.Service
	Equipment *equipment.Service
	Shop      *store.Service

	// Meta-progression
	Rewards      *reward.Service
	DailyReward  *dailyreward.Service
	Tutorial     *tutorial.Service
	Achievements *achievement.Service
	Leaderboards *leaderboard.Service
	Progress     *progress.Service

	// Game lifecycle
	Modes *gameloop.Modes
	Game  *gameloop.Manager

	shutdownAnalytics func(context.Context) error
	logger            *slog.Logger
}

// Dependencies are the external collaborators an App is built from
type Dependencies struct {
	Backend   storage.Backend
	Clock     clock.Clock
	Random    random.Random
	Analytics analytics.Sink
	// AnalyticsShutdown flushes the sink on Close; nil when nothing to flush
	AnalyticsShutdown func(context.Context) error
	Logger            *slog.Logger
}

// New creates a new application with all dependencies wired from cfg
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	content, err := config.LoadContent(cfg.ContentFile, logger)
	if err != nil {
		return nil, err
	}

	sink, shutdown, err := NewAnalytics(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	deps := Dependencies{
		Backend:           backend,
		Clock:             clock.New(),
		Random:            random.New(),
		Analytics:         sink,
		AnalyticsShutdown: shutdown,
		Logger:            logger,
	}
	return newWithDependencies(ctx, cfg.SaveKey, content, deps), nil
}

// NewBackend opens the persistence backend selected by cfg.Storage
func NewBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory, "":
		return memory.New(), nil
	case config.StorageSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		return redisstorage.New(redisCfg)
	case config.StorageS3:
		s3Cfg := objectstore.DefaultConfig()
		s3Cfg.Bucket = cfg.S3Bucket
		s3Cfg.Prefix = cfg.S3Prefix
		s3Cfg.Region = cfg.S3Region
		s3Cfg.Endpoint = cfg.S3Endpoint
		s3Cfg.AccessKeyID = cfg.S3AccessKey
		s3Cfg.SecretAccessKey = cfg.S3SecretKey
		return objectstore.New(ctx, s3Cfg)
	}
	return nil, fmt.Errorf("%w: unknown storage type %q", model.ErrInvalidConfig, cfg.Storage)
}

// AnalyticsServiceName identifies this process on exported analytics spans
const AnalyticsServiceName = "protocasual"

// NewAnalytics builds the sink selected by cfg.Analytics and the function
// that flushes it. The otel sink owns an SDK tracer provider.
func NewAnalytics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (analytics.Sink, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Analytics {
	case config.AnalyticsOTel:
		provider, err := analytics.NewTracerProvider(ctx, analytics.ProviderConfig{
			ServiceName: AnalyticsServiceName,
			Endpoint:    cfg.OTelEndpoint,
		})
		if err != nil {
			return nil, noop, err
		}
		return analytics.NewOTelSink(provider), provider.Shutdown, nil
	case config.AnalyticsNone:
		return analytics.Nop{}, noop, nil
	}
	return analytics.NewLogSink(logger), noop, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(ctx context.Context, saveKey string, content *config.Content, deps Dependencies) *App {
	logger := deps.Logger
	bus := event.NewBus(deps.Clock, logger)
	sink := analytics.Filtered(deps.Analytics, content.Analytics)

	data := playerdata.New(deps.Backend, saveKey, deps.Random, bus, logger)
	data.Load(ctx)

	items := catalog.New(content.Items, logger)
	wallet := currency.New(data, bus, logger)
	inv := inventory.New(data, bus, logger)
	equip := equipment.New(data, inv, items, bus, logger)
	shop := store.New(items, wallet, inv, sink, bus, logger)

	rewards := reward.New(wallet, inv, content.LevelRewards, bus, logger)
	daily := dailyreward.New(ctx, data, content.DailyReward, rewards, deps.Clock, sink, bus, logger)
	tut := tutorial.New(data, content.Tutorial, sink, bus, logger)
	achievements := achievement.New(data, content.Achievements, rewards, sink, bus, logger)
	boards := leaderboard.New(data, content.Leaderboards, bus, logger)
	levels := progress.New(data, rewards, sink, bus, logger)

	modes := gameloop.NewModes()
	game := gameloop.NewManager(modes, levels, sink, bus, logger)
	modes.Register(gameloop.ModeEndless, func() gameloop.GameMode { return gameloop.NewEndless() })
	modes.Register(gameloop.ModeTimed, func() gameloop.GameMode {
		return gameloop.NewTimed(gameloop.DefaultTimeLimit, func() { game.Fail(context.Background()) })
	})

	// A completed round advances the player's level
	bus.Subscribe(model.EventGameCompleted, func(model.Event) {
		levels.CompleteLevel(context.Background())
	})

	hub := sse.NewHub(logger)
	go hub.Run()

	app := &App{
		Content:      content,
		Registry:     registry.New(logger),
		Backend:      deps.Backend,
		Clock:        deps.Clock,
		Random:       deps.Random,
		Bus:          bus,
		Store:        data,
		Analytics:    sink,
		Events:       sse.NewBroadcaster(bus, hub, logger),
		Catalog:      items,
		Currency:     wallet,
		Inventory:    inv,
		Equipment:    equip,
		Shop:         shop,
		Rewards:      rewards,
		DailyReward:  daily,
		Tutorial:     tut,
		Achievements: achievements,
		Leaderboards: boards,
		Progress:     levels,
		Modes:        modes,
		Game:         game,

		shutdownAnalytics: deps.AnalyticsShutdown,
		logger:            logger.With(slog.String("component", "app")),
	}
	app.register()

	tut.AutoStart(ctx)
	game.ChangeState(ctx, model.GameStateMenu)
	return app
}

// register binds every capability interface in the registry
func (a *App) register() {
	r := a.Registry
	registry.Register[storage.Backend](r, a.Backend)
	registry.Register[clock.Clock](r, a.Clock)
	registry.Register[random.Random](r, a.Random)
	registry.Register[*event.Bus](r, a.Bus)
	registry.Register[analytics.Sink](r, a.Analytics)
	registry.Register[playerdata.StoreInterface](r, a.Store)
	registry.Register[catalog.CatalogInterface](r, a.Catalog)
	registry.Register[currency.ServiceInterface](r, a.Currency)
	registry.Register[inventory.ServiceInterface](r, a.Inventory)
	registry.Register[equipment.ServiceInterface](r, a.Equipment)
	registry.Register[store.ServiceInterface](r, a.Shop)
	registry.Register[reward.ServiceInterface](r, a.Rewards)
	registry.Register[dailyreward.ServiceInterface](r, a.DailyReward)
	registry.Register[tutorial.ServiceInterface](r, a.Tutorial)
	registry.Register[achievement.ServiceInterface](r, a.Achievements)
	registry.Register[leaderboard.ServiceInterface](r, a.Leaderboards)
	registry.Register[progress.ServiceInterface](r, a.Progress)
	registry.Register[gameloop.ManagerInterface](r, a.Game)
}

// Lock serializes service access for callers outside the game loop goroutine
func (a *App) Lock() { a.mu.Lock() }

// Unlock releases Lock
func (a *App) Unlock() { a.mu.Unlock() }

// Close disconnects event streams, checkpoints the save and closes the backend
func (a *App) Close(ctx context.Context) error {
	a.Lock()
	defer a.Unlock()
	a.Events.Close()
	if err := a.Store.Checkpoint(ctx); err != nil && !a.Store.ReadOnly() {
		a.logger.Error("final checkpoint failed", slog.Any("error", err))
	}
	if a.shutdownAnalytics != nil {
		if err := a.shutdownAnalytics(ctx); err != nil {
			a.logger.Error("analytics flush failed", slog.Any("error", err))
		}
	}
	return a.Backend.Close()
}
