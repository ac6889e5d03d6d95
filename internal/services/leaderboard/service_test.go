package leaderboard

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/testutil"
	"github.com/mcoot/protocasual/internal/testutil/fixture"
)

type ServiceSuite struct {
	suite.Suite
	fx      *fixture.Fixture
	ctx     context.Context
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.fx = fixture.New()
	s.ctx = s.fx.Ctx
	s.service = New(s.fx.Store, []model.LeaderboardDefinition{
		{ID: "high_score", Descending: true, MaxEntries: 3},
		{ID: "fastest_time", Descending: false, MaxEntries: 3},
	}, s.fx.Bus, s.fx.Logger)
}

func (s *ServiceSuite) seed(id string, scores ...int) {
	board := make([]model.LeaderboardEntry, 0, len(scores))
	for i, score := range scores {
		board = append(board, model.LeaderboardEntry{
			PlayerID: model.PlayerID(string(rune('a' + i))),
			Score:    score,
		})
	}
	s.fx.Data().Leaderboards[id] = board
	s.service.rebuildCache()
}

func (s *ServiceSuite) assertRanked(id string) {
	def := s.service.Definition(id)
	entries := s.service.GetCachedEntries(id)
	s.LessOrEqual(len(entries), def.MaxEntries)
	for i, e := range entries {
		s.Equal(i+1, e.Rank)
		if i == 0 {
			continue
		}
		if def.Descending {
			s.GreaterOrEqual(entries[i-1].Score, e.Score)
		} else {
			s.LessOrEqual(entries[i-1].Score, e.Score)
		}
	}
}

func (s *ServiceSuite) TestFirstSubmission() {
	s.service.SubmitScore(s.ctx, "high_score", 120)

	best, ok := s.service.GetPlayerBest("high_score")
	s.True(ok)
	s.Equal(model.LeaderboardEntry{
		PlayerID:    testutil.FixedPlayerID,
		DisplayName: model.DefaultDisplayName,
		Score:       120,
		Rank:        1,
	}, best)
	s.Len(s.fx.Recorder.OfType(model.EventScoreSubmitted), 1)
	s.Equal(s.service.GetCachedEntries("high_score"), s.fx.Persisted().Leaderboards["high_score"])
}

func (s *ServiceSuite) TestOnlyBetterScoresReplace() {
	s.service.SubmitScore(s.ctx, "high_score", 100)
	s.service.SubmitScore(s.ctx, "high_score", 90)
	s.service.SubmitScore(s.ctx, "high_score", 100)

	best, _ := s.service.GetPlayerBest("high_score")
	s.Equal(100, best.Score)
	s.Len(s.fx.Recorder.OfType(model.EventScoreSubmitted), 1)

	s.service.SubmitScore(s.ctx, "high_score", 150)
	best, _ = s.service.GetPlayerBest("high_score")
	s.Equal(150, best.Score)
	s.Len(s.service.GetCachedEntries("high_score"), 1)
}

func (s *ServiceSuite) TestAscendingBoard() {
	s.service.SubmitScore(s.ctx, "fastest_time", 30)
	s.service.SubmitScore(s.ctx, "fastest_time", 45)
	s.service.SubmitScore(s.ctx, "fastest_time", 25)

	best, _ := s.service.GetPlayerBest("fastest_time")
	s.Equal(25, best.Score)
}

func (s *ServiceSuite) TestSortedRankedAndTruncated() {
	s.seed("high_score", 50, 70, 70)
	s.service.SubmitScore(s.ctx, "high_score", 60)

	entries := s.service.GetCachedEntries("high_score")
	s.Require().Len(entries, 3)
	s.Equal([]model.PlayerID{"b", "c", testutil.FixedPlayerID}, []model.PlayerID{entries[0].PlayerID, entries[1].PlayerID, entries[2].PlayerID})
	s.assertRanked("high_score")
}

func (s *ServiceSuite) TestStableTieBreak() {
	s.seed("high_score", 10)
	s.service.SubmitScore(s.ctx, "high_score", 10)

	entries := s.service.GetCachedEntries("high_score")
	s.Equal(model.PlayerID("a"), entries[0].PlayerID)
	s.Equal(model.PlayerID(testutil.FixedPlayerID), entries[1].PlayerID)
}

func (s *ServiceSuite) TestRankInvariantHolds() {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		s.seed("high_score", rng.IntN(100), rng.IntN(100), rng.IntN(100))
		s.service.SubmitScore(s.ctx, "high_score", rng.IntN(100))
		s.assertRanked("high_score")

		s.seed("fastest_time", rng.IntN(100), rng.IntN(100))
		s.service.SubmitScore(s.ctx, "fastest_time", rng.IntN(100))
		s.assertRanked("fastest_time")
	}
}

func (s *ServiceSuite) TestUnconfiguredBoardDefaults() {
	def := s.service.Definition("weekly")
	s.True(def.Descending)
	s.Equal(model.DefaultLeaderboardCapacity, def.MaxEntries)

	s.service.SubmitScore(s.ctx, "weekly", 5)
	s.service.SubmitScore(s.ctx, "weekly", 8)
	best, ok := s.service.GetPlayerBest("weekly")
	s.True(ok)
	s.Equal(8, best.Score)
}

func (s *ServiceSuite) TestEmptyIDIsNoop() {
	s.service.SubmitScore(s.ctx, "", 5)
	s.Empty(s.fx.Recorder.Events())
}

func (s *ServiceSuite) TestLoadLeaderboard() {
	s.seed("high_score", 90, 80, 70)
	s.service.SubmitScore(s.ctx, "high_score", 100)

	page := s.service.LoadLeaderboard("high_score", 2)
	s.Len(page, 2)
	s.Equal(100, page[0].Score)

	loaded := s.fx.Recorder.OfType(model.EventLeaderboardLoaded)
	s.Require().Len(loaded, 1)
	payload := loaded[0].Payload.(model.LeaderboardLoadedPayload)
	s.Equal("high_score", payload.LeaderboardID)
	s.Equal(page, payload.Entries)

	s.Empty(s.service.LoadLeaderboard("missing", 0))
	s.Len(s.service.LoadLeaderboard("high_score", 0), 3)
}

func (s *ServiceSuite) TestCacheIsACopy() {
	s.service.SubmitScore(s.ctx, "high_score", 10)
	entries := s.service.GetCachedEntries("high_score")
	entries[0].Score = 9999

	best, _ := s.service.GetPlayerBest("high_score")
	s.Equal(10, best.Score)
}

func (s *ServiceSuite) TestCacheRebuiltOnReset() {
	s.service.SubmitScore(s.ctx, "high_score", 10)
	s.fx.Store.Reset(s.ctx)

	_, ok := s.service.GetPlayerBest("high_score")
	s.False(ok)
	s.Empty(s.service.GetCachedEntries("high_score"))
}
