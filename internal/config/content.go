package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/model"
)

// Content is the read-only game content the services are configured from
type Content struct {
	Items        []model.Item                  `yaml:"items"`
	LevelRewards []model.LevelReward           `yaml:"level_rewards"`
	DailyReward  model.DailyRewardConfig       `yaml:"daily_reward"`
	Achievements []model.AchievementDefinition `yaml:"achievements"`
	Leaderboards []model.LeaderboardDefinition `yaml:"leaderboards"`
	Tutorial     model.TutorialConfig          `yaml:"tutorial"`
	Analytics    analytics.Toggles             `yaml:"analytics"`
}

// LoadContent parses a YAML content file. An empty path returns DefaultContent.
func LoadContent(path string, logger *slog.Logger) (*Content, error) {
	if path == "" {
		c := DefaultContent()
		c.Validate(logger)
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return ParseContent(raw, logger)
}

// ParseContent decodes YAML content and validates it
func ParseContent(raw []byte, logger *slog.Logger) (*Content, error) {
	c := &Content{Analytics: analytics.AllEnabled()}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%w: parse content: %v", model.ErrInvalidConfig, err)
	}
	c.Validate(logger)
	return c, nil
}

// Validate drops definitions with empty or duplicate ids and fills unset sizes.
// Skipped entries are logged rather than failing the load.
func (c *Content) Validate(logger *slog.Logger) {
	logger = logger.With(slog.String("component", "content"))

	c.Items = dedupe(c.Items, func(i model.Item) string { return i.ID }, "item", logger)
	c.Achievements = dedupe(c.Achievements, func(a model.AchievementDefinition) string { return a.ID }, "achievement", logger)
	c.Leaderboards = dedupe(c.Leaderboards, func(l model.LeaderboardDefinition) string { return l.ID }, "leaderboard", logger)

	for i := range c.Achievements {
		if c.Achievements[i].RequiredProgress < 1 {
			c.Achievements[i].RequiredProgress = 1
		}
	}
	for i := range c.Leaderboards {
		if c.Leaderboards[i].MaxEntries <= 0 {
			c.Leaderboards[i].MaxEntries = model.DefaultLeaderboardCapacity
		}
	}

	seenLevels := make(map[int]struct{}, len(c.LevelRewards))
	levels := c.LevelRewards[:0]
	for _, lr := range c.LevelRewards {
		if lr.Level < 0 {
			logger.Warn("level reward has negative level, skipped", slog.Int("level", lr.Level))
			continue
		}
		if _, dup := seenLevels[lr.Level]; dup {
			logger.Error("duplicate level reward, skipped", slog.Int("level", lr.Level))
			continue
		}
		seenLevels[lr.Level] = struct{}{}
		levels = append(levels, lr)
	}
	c.LevelRewards = levels

	if c.DailyReward.CycleDays <= 0 {
		c.DailyReward.CycleDays = model.DefaultCycleDays
	}
	if c.DailyReward.StreakExpiryHours <= 0 {
		c.DailyReward.StreakExpiryHours = model.DefaultStreakExpiryHours
	}

	for i := range c.Tutorial.Steps {
		if c.Tutorial.Steps[i].ID == "" {
			c.Tutorial.Steps[i].ID = fmt.Sprintf("step_%d", i)
		}
	}

	logger.Debug("content loaded",
		slog.Int("items", len(c.Items)),
		slog.Int("achievements", len(c.Achievements)),
		slog.Int("leaderboards", len(c.Leaderboards)),
		slog.Int("tutorial_steps", len(c.Tutorial.Steps)))
}

func dedupe[T any](in []T, id func(T) string, kind string, logger *slog.Logger) []T {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		key := id(v)
		if key == "" {
			logger.Warn("definition has empty id, skipped", slog.String("kind", kind))
			continue
		}
		if _, dup := seen[key]; dup {
			logger.Error("duplicate definition id, skipped", slog.String("kind", kind), slog.String("id", key))
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DefaultContent is the built-in content used when no file is configured
func DefaultContent() *Content {
	return &Content{
		Items: []model.Item{
			{ID: "sword", DisplayName: "Sword", Type: model.ItemTypeEquipment, Category: "weapons", SoftPrice: 80, Equippable: true},
			{ID: "shield", DisplayName: "Shield", Type: model.ItemTypeEquipment, Category: "armor", SoftPrice: 120, HardPrice: 10, Equippable: true},
			{ID: "golden_hat", DisplayName: "Golden Hat", Type: model.ItemTypeCosmetic, Category: "hats", HardPrice: 25, Equippable: true},
			{ID: "red_skin", DisplayName: "Red Skin", Type: model.ItemTypeCosmetic, Category: "skins", SoftPrice: 200},
			{ID: "potion", DisplayName: "Potion", Type: model.ItemTypeConsumable, Category: "boosts", SoftPrice: 20, Stackable: true},
			{ID: "revive", DisplayName: "Revive", Type: model.ItemTypeConsumable, Category: "boosts", HardPrice: 5, Stackable: true},
		},
		LevelRewards: []model.LevelReward{
			{Level: 0, Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 50}}},
			{Level: 1, Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 75}}},
			{Level: 2, Rewards: []model.RewardEntry{
				{Type: model.RewardSoftCurrency, Amount: 100},
				{Type: model.RewardItem, RewardID: "potion", Amount: 1},
			}},
			{Level: 4, Rewards: []model.RewardEntry{{Type: model.RewardHardCurrency, Amount: 5}}},
		},
		DailyReward: model.DailyRewardConfig{
			CycleDays:         7,
			StreakExpiryHours: 48,
			Days: []model.DayReward{
				{Label: "Day 1", Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 25}}},
				{Label: "Day 2", Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 50}}},
				{Label: "Day 3", Rewards: []model.RewardEntry{{Type: model.RewardItem, RewardID: "potion", Amount: 2}}},
				{Label: "Day 4", Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 100}}},
				{Label: "Day 5", Rewards: []model.RewardEntry{{Type: model.RewardHardCurrency, Amount: 2}}},
				{Label: "Day 6", Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 150}}},
				{Label: "Day 7", Rewards: []model.RewardEntry{
					{Type: model.RewardHardCurrency, Amount: 10},
					{Type: model.RewardItem, RewardID: "revive", Amount: 1},
				}},
			},
		},
		Achievements: []model.AchievementDefinition{
			{ID: "first_win", DisplayName: "First Win", RequiredProgress: 1,
				Rewards: []model.RewardEntry{{Type: model.RewardSoftCurrency, Amount: 100}}},
			{ID: "collector", DisplayName: "Collector", RequiredProgress: 10,
				Rewards: []model.RewardEntry{{Type: model.RewardHardCurrency, Amount: 5}}},
			{ID: "marathon", DisplayName: "Marathon", RequiredProgress: 50, Hidden: true},
		},
		Leaderboards: []model.LeaderboardDefinition{
			{ID: "high_score", DisplayName: "High Score", MaxEntries: 100, Descending: true},
			{ID: "fastest_time", DisplayName: "Fastest Time", MaxEntries: 50, Descending: false},
		},
		Tutorial: model.TutorialConfig{
			AutoStart: true,
			AllowSkip: true,
			Steps: []model.TutorialStep{
				{ID: "welcome", Title: "Welcome", Message: "Tap to begin"},
				{ID: "move", Title: "Move", Message: "Swipe to move"},
				{ID: "shop", Title: "Shop", Message: "Spend coins in the store"},
			},
		},
		Analytics: analytics.AllEnabled(),
	}
}
