// Package playerdata owns the single live PlayerData aggregate and its
// persistence through a storage backend.
package playerdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/protocasual/internal/dependencies/random"
	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/storage"
)

// DefaultSaveKey is the backend key the aggregate is stored under
const DefaultSaveKey = "player_data"

// StoreInterface is the capability services use to read and persist player data
type StoreInterface interface {
	Load(ctx context.Context) *model.PlayerData
	Data() *model.PlayerData
	Save(ctx context.Context)
	Checkpoint(ctx context.Context) error
	Reset(ctx context.Context)
	Reload(ctx context.Context) error
	Key() string
	ReadOnly() bool
}

// Store holds the one live PlayerData instance.
// Reset and Reload overwrite the aggregate in place, so pointers into its
// subtrees remain valid for the life of the Store.
type Store struct {
	backend storage.Backend
	key     string
	random  random.Random
	bus     *event.Bus
	logger  *slog.Logger

	data   *model.PlayerData
	loaded bool
	// readOnly is set when the stored record came from a newer build or
	// could not be read at all; readOnlyErr is what Checkpoint reports.
	readOnly    bool
	readOnlyErr error
}

// Ensure Store implements StoreInterface
var _ StoreInterface = (*Store)(nil)

// New creates a Store over the given backend. An empty key uses DefaultSaveKey.
func New(backend storage.Backend, key string, rnd random.Random, bus *event.Bus, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultSaveKey
	}
	return &Store{
		backend: backend,
		key:     key,
		random:  rnd,
		bus:     bus,
		logger:  logger.With(slog.String("component", "player-data"), slog.String("key", key)),
		data:    &model.PlayerData{},
	}
}

// Key returns the backend key this store writes
func (s *Store) Key() string {
	return s.key
}

// Load reads the aggregate from the backend on first call and returns the live instance on every call
func (s *Store) Load(ctx context.Context) *model.PlayerData {
	if s.loaded {
		return s.data
	}
	data, fresh := s.read(ctx)
	*s.data = *data
	s.loaded = true
	if fresh {
		s.Save(ctx)
	}
	return s.data
}

// Data returns the live aggregate, loading it if needed
func (s *Store) Data() *model.PlayerData {
	return s.Load(context.Background())
}

// read decodes the stored record, falling back to defaults. fresh reports
// whether defaults were created and need persisting.
func (s *Store) read(ctx context.Context) (data *model.PlayerData, fresh bool) {
	raw, err := s.backend.Load(ctx, s.key)
	if errors.Is(err, model.ErrKeyNotFound) {
		s.logger.Info("no save found, creating defaults")
		return s.defaults(), true
	}
	if err != nil {
		s.setReadOnly(fmt.Errorf("%w: %w", model.ErrSaveUnavailable, err))
		s.logger.Error("failed to load save, using defaults with persistence disabled", slog.Any("error", err))
		return s.defaults(), false
	}

	data, err = Decode(raw, s.random)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedSchema) {
			s.setReadOnly(err)
			s.logger.Error("save written by a newer schema, persistence disabled", slog.Any("error", err))
		} else {
			s.logger.Error("failed to decode save, using defaults", slog.Any("error", err))
		}
		return s.defaults(), false
	}

	s.logger.Debug("save loaded", slog.Int("version", data.Version))
	return data, false
}

func (s *Store) setReadOnly(err error) {
	s.readOnly = true
	s.readOnlyErr = err
}

func (s *Store) clearReadOnly() {
	s.readOnly = false
	s.readOnlyErr = nil
}

func (s *Store) defaults() *model.PlayerData {
	return model.NewPlayerData(model.PlayerID(s.random.UUID()))
}

// Save serializes the full aggregate to the backend. Failures are logged and
// the in-memory aggregate stays authoritative.
func (s *Store) Save(ctx context.Context) {
	if err := s.Checkpoint(ctx); err != nil {
		s.logger.Error("failed to save player data", slog.Any("error", err))
	}
}

// Checkpoint is Save with the error returned rather than logged
func (s *Store) Checkpoint(ctx context.Context) error {
	s.Load(ctx)
	if s.readOnly {
		return s.readOnlyErr
	}
	body, err := Encode(s.data)
	if err != nil {
		return err
	}
	return s.backend.Save(ctx, s.key, body)
}

// Reset deletes the stored record, recreates defaults in place and persists them
func (s *Store) Reset(ctx context.Context) {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		s.logger.Error("failed to delete save", slog.Any("error", err))
	}
	*s.data = *s.defaults()
	s.loaded = true
	s.clearReadOnly()
	s.Save(ctx)

	s.logger.Info("player data reset", slog.String("player_id", string(s.data.Profile.PlayerID)))
	s.bus.Publish(model.EventPlayerDataReset, nil)
}

// Reload discards in-memory state and re-reads the backend record in place
func (s *Store) Reload(ctx context.Context) error {
	raw, err := s.backend.Load(ctx, s.key)
	if err != nil {
		return err
	}
	data, err := Decode(raw, s.random)
	if err != nil {
		return err
	}
	*s.data = *data
	s.loaded = true
	s.clearReadOnly()

	s.bus.Publish(model.EventPlayerDataLoaded, nil)
	return nil
}

// ReadOnly reports whether persistence is disabled for this session
func (s *Store) ReadOnly() bool {
	return s.readOnly
}
