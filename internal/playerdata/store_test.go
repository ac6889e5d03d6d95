package playerdata

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/dependencies/mocks"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/storage/memory"
	"github.com/mcoot/protocasual/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	backend  *memory.Storage
	random   *mocks.MockRandom
	bus      *event.Bus
	recorder *event.Recorder
	store    *Store
	ctx      context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = memory.New()
	s.random = mocks.NewMockRandom()
	s.random.UUIDResults = []string{testutil.FixedPlayerID}
	s.bus = event.NewBus(mocks.NewMockClock(time.Now()), testutil.NopLogger())
	s.recorder = event.NewRecorder(s.bus)
	s.store = s.newStore()
}

func (s *StoreSuite) newStore() *Store {
	return New(s.backend, "", s.random, s.bus, testutil.NopLogger())
}

func (s *StoreSuite) TestLoadCreatesAndPersistsDefaults() {
	data := s.store.Load(s.ctx)

	s.Equal(model.CurrentSchemaVersion, data.Version)
	s.Equal(model.PlayerID(testutil.FixedPlayerID), data.Profile.PlayerID)
	s.Equal(model.DefaultDisplayName, data.Profile.DisplayName)
	s.Empty(data.Inventory.Items)

	ok, err := s.backend.HasKey(s.ctx, DefaultSaveKey)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreSuite) TestLoadIsIdempotent() {
	first := s.store.Load(s.ctx)
	first.Currency.Soft = 42

	second := s.store.Load(s.ctx)
	s.Same(first, second)
	s.Equal(42, second.Currency.Soft)
}

func (s *StoreSuite) TestRoundTrip() {
	data := s.store.Load(s.ctx)
	claim := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	data.Currency = model.Currency{Soft: 120, Hard: 7}
	data.Inventory.Items = append(data.Inventory.Items, &model.InventoryItem{ItemID: "sword", Quantity: 1})
	data.Equipment.Slots = append(data.Equipment.Slots, model.EquipmentSlot{SlotName: "weapon", ItemID: "sword"})
	data.DailyReward = model.DailyReward{Streak: 3, LastClaimTime: &claim}
	data.Tutorial = model.TutorialProgress{CurrentStep: 2}
	data.Progress.CurrentLevel = 4
	data.Leaderboards["high_score"] = []model.LeaderboardEntry{
		{PlayerID: data.Profile.PlayerID, DisplayName: "You", Score: 900, Rank: 1},
	}
	data.Achievements["first_win"] = &model.AchievementProgress{Progress: 1, Unlocked: true}
	s.store.Save(s.ctx)

	reloaded := s.newStore().Load(s.ctx)
	s.Equal(data, reloaded)
}

func (s *StoreSuite) TestResetKeepsPointerAndPublishes() {
	data := s.store.Load(s.ctx)
	wallet := &data.Currency
	data.Currency.Soft = 50
	s.store.Save(s.ctx)

	s.store.Reset(s.ctx)

	s.Same(data, s.store.Data())
	s.Equal(0, wallet.Soft)
	s.NotEqual(model.PlayerID(testutil.FixedPlayerID), data.Profile.PlayerID)
	s.Len(s.recorder.OfType(model.EventPlayerDataReset), 1)

	reloaded := s.newStore().Load(s.ctx)
	s.Equal(0, reloaded.Currency.Soft)
}

func (s *StoreSuite) TestReloadOverwritesInPlace() {
	data := s.store.Load(s.ctx)

	other := s.newStore()
	other.Load(s.ctx).Currency.Hard = 9
	other.Save(s.ctx)

	s.Require().NoError(s.store.Reload(s.ctx))
	s.Equal(9, data.Currency.Hard)
	s.Len(s.recorder.OfType(model.EventPlayerDataLoaded), 1)
}

func (s *StoreSuite) TestCorruptRecordFallsBackToDefaults() {
	s.Require().NoError(s.backend.Save(s.ctx, DefaultSaveKey, []byte("{not json")))

	data := s.store.Load(s.ctx)
	s.Equal(model.CurrentSchemaVersion, data.Version)
	s.Equal(0, data.Currency.Soft)
}

func (s *StoreSuite) TestNewerSchemaIsNeverOverwritten() {
	future := []byte(`{"version":99,"currency":{"soft":5,"hard":0}}`)
	s.Require().NoError(s.backend.Save(s.ctx, DefaultSaveKey, future))

	s.store.Load(s.ctx)
	s.True(s.store.ReadOnly())

	s.store.Save(s.ctx)
	s.ErrorIs(s.store.Checkpoint(s.ctx), model.ErrUnsupportedSchema)

	raw, err := s.backend.Load(s.ctx, DefaultSaveKey)
	s.Require().NoError(err)
	s.JSONEq(string(future), string(raw))
}

// flakyBackend fails the next failLoads Load calls
type flakyBackend struct {
	*memory.Storage
	failLoads int
}

func (b *flakyBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if b.failLoads > 0 {
		b.failLoads--
		return nil, errors.New("connection refused")
	}
	return b.Storage.Load(ctx, key)
}

func (s *StoreSuite) TestLoadFailureNeverOverwritesSave() {
	saved := []byte(`{"version":3,"profile":{"player_id":"p1","display_name":"Ann"},"currency":{"soft":5000,"hard":0}}`)
	s.Require().NoError(s.backend.Save(s.ctx, DefaultSaveKey, saved))
	flaky := &flakyBackend{Storage: s.backend, failLoads: 1}
	store := New(flaky, "", s.random, s.bus, testutil.NopLogger())

	data := store.Load(s.ctx)
	s.Equal(0, data.Currency.Soft)
	s.True(store.ReadOnly())

	data.Currency.Soft = 1
	store.Save(s.ctx)
	s.ErrorIs(store.Checkpoint(s.ctx), model.ErrSaveUnavailable)

	raw, err := s.backend.Load(s.ctx, DefaultSaveKey)
	s.Require().NoError(err)
	s.JSONEq(string(saved), string(raw))

	s.Require().NoError(store.Reload(s.ctx))
	s.False(store.ReadOnly())
	s.Equal(5000, store.Data().Currency.Soft)
	s.NoError(store.Checkpoint(s.ctx))
}

func (s *StoreSuite) TestCheckpointBeforeLoadRespectsLoadFailure() {
	saved := []byte(`{"version":3,"currency":{"soft":70,"hard":0}}`)
	s.Require().NoError(s.backend.Save(s.ctx, DefaultSaveKey, saved))
	store := New(&flakyBackend{Storage: s.backend, failLoads: 1}, "", s.random, s.bus, testutil.NopLogger())

	s.ErrorIs(store.Checkpoint(s.ctx), model.ErrSaveUnavailable)

	raw, err := s.backend.Load(s.ctx, DefaultSaveKey)
	s.Require().NoError(err)
	s.JSONEq(string(saved), string(raw))
}

func (s *StoreSuite) TestUnknownSubtreesSurviveSave() {
	record := []byte(`{"version":3,"profile":{"player_id":"p1","display_name":"Ann"},"season_pass":{"tier":4}}`)
	s.Require().NoError(s.backend.Save(s.ctx, DefaultSaveKey, record))

	s.store.Load(s.ctx).Currency.Soft = 10
	s.store.Save(s.ctx)

	raw, err := s.backend.Load(s.ctx, DefaultSaveKey)
	s.Require().NoError(err)
	var doc map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &doc))
	s.JSONEq(`{"tier":4}`, string(doc["season_pass"]))
	s.JSONEq(`{"soft":10,"hard":0}`, string(doc["currency"]))
}
