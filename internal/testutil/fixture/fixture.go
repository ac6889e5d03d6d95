// Package fixture wires a player data store over memory storage for service tests.
package fixture

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/protocasual/internal/dependencies/mocks"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
	"github.com/mcoot/protocasual/internal/storage/memory"
	"github.com/mcoot/protocasual/internal/testutil"
)

// Start is the mock clock's initial time
var Start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Fixture bundles the collaborators every service test needs
type Fixture struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Clock     *mocks.MockClock
	Random    *mocks.MockRandom
	Backend   *memory.Storage
	Bus       *event.Bus
	Recorder  *event.Recorder
	Store     *playerdata.Store
	Analytics *mocks.MockSink
}

// New builds a fixture with a loaded, empty save
func New() *Fixture {
	f := &Fixture{
		Ctx:       context.Background(),
		Logger:    testutil.NopLogger(),
		Clock:     mocks.NewMockClock(Start),
		Random:    mocks.NewMockRandom(),
		Backend:   memory.New(),
		Analytics: &mocks.MockSink{},
	}
	f.Random.UUIDResults = []string{testutil.FixedPlayerID}
	f.Bus = event.NewBus(f.Clock, f.Logger)
	f.Recorder = event.NewRecorder(f.Bus)
	f.Store = playerdata.New(f.Backend, "", f.Random, f.Bus, f.Logger)
	f.Store.Load(f.Ctx)
	return f
}

// Data returns the live aggregate
func (f *Fixture) Data() *model.PlayerData {
	return f.Store.Data()
}

// Persisted decodes what is currently in the backend through a fresh store
func (f *Fixture) Persisted() *model.PlayerData {
	fresh := playerdata.New(f.Backend, "", mocks.NewMockRandom(), event.NewBus(f.Clock, f.Logger), f.Logger)
	return fresh.Load(f.Ctx)
}
