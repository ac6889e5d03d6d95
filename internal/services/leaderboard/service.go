// Package leaderboard keeps local ranked boards for the player profile.
package leaderboard

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/mcoot/protocasual/internal/event"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/playerdata"
)

// DefaultLoadCount is the page size used by LoadLeaderboard when none is given
const DefaultLoadCount = 10

// ServiceInterface is the leaderboard capability
type ServiceInterface interface {
	SubmitScore(ctx context.Context, id string, score int)
	LoadLeaderboard(id string, maxEntries int) []model.LeaderboardEntry
	GetPlayerBest(id string) (model.LeaderboardEntry, bool)
	GetCachedEntries(id string) []model.LeaderboardEntry
	Definition(id string) model.LeaderboardDefinition
}

// Service owns PlayerData.Leaderboards. Reads go through a cache refreshed after each write.
type Service struct {
	store       playerdata.StoreInterface
	data        *model.PlayerData
	definitions map[string]model.LeaderboardDefinition
	cache       map[string][]model.LeaderboardEntry
	bus         *event.Bus
	logger      *slog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a leaderboard service over the given board definitions
func New(
	store playerdata.StoreInterface,
	defs []model.LeaderboardDefinition,
	bus *event.Bus,
	logger *slog.Logger,
) *Service {
	s := &Service{
		store:       store,
		data:        store.Data(),
		definitions: make(map[string]model.LeaderboardDefinition, len(defs)),
		bus:         bus,
		logger:      logger.With(slog.String("component", "leaderboard")),
	}
	for _, def := range defs {
		if def.ID == "" {
			continue
		}
		if _, dup := s.definitions[def.ID]; !dup {
			s.definitions[def.ID] = def
		}
	}
	s.rebuildCache()

	bus.Subscribe(model.EventPlayerDataReset, func(model.Event) { s.rebuildCache() })
	bus.Subscribe(model.EventPlayerDataLoaded, func(model.Event) { s.rebuildCache() })
	return s
}

// Definition returns the board's configuration. Unconfigured boards rank
// higher scores first and hold DefaultLeaderboardCapacity entries.
func (s *Service) Definition(id string) model.LeaderboardDefinition {
	def, ok := s.definitions[id]
	if !ok {
		def = model.LeaderboardDefinition{ID: id, Descending: true}
	}
	if def.MaxEntries <= 0 {
		def.MaxEntries = model.DefaultLeaderboardCapacity
	}
	return def
}

func (s *Service) rebuildCache() {
	s.cache = make(map[string][]model.LeaderboardEntry, len(s.data.Leaderboards))
	for id, entries := range s.data.Leaderboards {
		s.cache[id] = slices.Clone(entries)
	}
}

// SubmitScore records score for the local player when it beats their existing entry
func (s *Service) SubmitScore(ctx context.Context, id string, score int) {
	if id == "" {
		return
	}
	if s.data.Leaderboards == nil {
		s.data.Leaderboards = make(map[string][]model.LeaderboardEntry)
	}
	def := s.Definition(id)
	board := s.data.Leaderboards[id]
	playerID := s.data.Profile.PlayerID

	idx := slices.IndexFunc(board, func(e model.LeaderboardEntry) bool { return e.PlayerID == playerID })
	if idx >= 0 {
		if !better(score, board[idx].Score, def.Descending) {
			return
		}
		board[idx].Score = score
		board[idx].DisplayName = s.data.Profile.DisplayName
	} else {
		board = append(board, model.LeaderboardEntry{
			PlayerID:    playerID,
			DisplayName: s.data.Profile.DisplayName,
			Score:       score,
		})
	}

	s.data.Leaderboards[id] = rank(board, def)
	s.store.Save(ctx)
	s.rebuildCache()

	s.logger.Info("score submitted", slog.String("leaderboard", id), slog.Int("score", score))
	s.bus.Publish(model.EventScoreSubmitted, model.ScoreSubmittedPayload{LeaderboardID: id, Score: score})
}

func better(score, current int, descending bool) bool {
	if descending {
		return score > current
	}
	return score < current
}

// rank sorts stably by score, assigns 1-based ranks and truncates to capacity
func rank(board []model.LeaderboardEntry, def model.LeaderboardDefinition) []model.LeaderboardEntry {
	slices.SortStableFunc(board, func(a, b model.LeaderboardEntry) int {
		if def.Descending {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Score, b.Score)
	})
	if len(board) > def.MaxEntries {
		board = board[:def.MaxEntries]
	}
	for i := range board {
		board[i].Rank = i + 1
	}
	return board
}

// LoadLeaderboard publishes and returns up to maxEntries cached entries.
// A non-positive maxEntries uses DefaultLoadCount.
func (s *Service) LoadLeaderboard(id string, maxEntries int) []model.LeaderboardEntry {
	if maxEntries <= 0 {
		maxEntries = DefaultLoadCount
	}
	entries := s.cache[id]
	page := slices.Clone(entries[:min(maxEntries, len(entries))])
	if page == nil {
		page = []model.LeaderboardEntry{}
	}
	s.bus.Publish(model.EventLeaderboardLoaded, model.LeaderboardLoadedPayload{LeaderboardID: id, Entries: page})
	return slices.Clone(page)
}

// GetPlayerBest returns the local player's entry on the board
func (s *Service) GetPlayerBest(id string) (model.LeaderboardEntry, bool) {
	playerID := s.data.Profile.PlayerID
	for _, e := range s.cache[id] {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return model.LeaderboardEntry{}, false
}

func (s *Service) GetCachedEntries(id string) []model.LeaderboardEntry {
	entries := slices.Clone(s.cache[id])
	if entries == nil {
		return []model.LeaderboardEntry{}
	}
	return entries
}
