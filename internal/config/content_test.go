package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/testutil"
)

const sampleContent = `
items:
  - id: sword
    display_name: Sword
    type: equipment
    category: weapons
    soft_price: 80
    equippable: true
  - id: sword
    display_name: Duplicate
  - display_name: No Id
  - id: potion
    type: consumable
    soft_price: 20
    stackable: true
level_rewards:
  - level: 0
    rewards:
      - type: soft_currency
        amount: 50
  - level: 0
    rewards: []
  - level: -1
daily_reward:
  days:
    - label: Day 1
      rewards:
        - type: item
          reward_id: potion
          amount: 1
achievements:
  - id: first_win
    required_progress: 0
leaderboards:
  - id: high_score
    descending: true
tutorial:
  allow_skip: true
  steps:
    - id: welcome
    - title: Untitled
analytics:
  enabled: true
  level_events: false
`

func TestParseContentValidates(t *testing.T) {
	c, err := ParseContent([]byte(sampleContent), testutil.NopLogger())
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "Sword", c.Items[0].DisplayName)
	assert.Equal(t, model.ItemTypeConsumable, c.Items[1].Type)

	require.Len(t, c.LevelRewards, 1)
	assert.Equal(t, 50, c.LevelRewards[0].Rewards[0].Amount)

	assert.Equal(t, model.DefaultCycleDays, c.DailyReward.CycleDays)
	assert.Equal(t, model.DefaultStreakExpiryHours, c.DailyReward.StreakExpiryHours)
	assert.Equal(t, "potion", c.DailyReward.Days[0].Rewards[0].RewardID)

	assert.Equal(t, 1, c.Achievements[0].RequiredProgress)
	assert.Equal(t, model.DefaultLeaderboardCapacity, c.Leaderboards[0].MaxEntries)

	assert.Equal(t, "step_1", c.Tutorial.Steps[1].ID)
	assert.True(t, c.Tutorial.AllowSkip)

	assert.True(t, c.Analytics.Enabled)
	assert.False(t, c.Analytics.LevelEvents)
}

func TestParseContentRejectsBadYAML(t *testing.T) {
	_, err := ParseContent([]byte("items: [unterminated"), testutil.NopLogger())
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestLoadContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleContent), 0o600))

	c, err := LoadContent(path, testutil.NopLogger())
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestLoadContentDefaults(t *testing.T) {
	c, err := LoadContent("", testutil.NopLogger())
	require.NoError(t, err)

	assert.NotEmpty(t, c.Items)
	assert.Len(t, c.DailyReward.Days, 7)
	assert.True(t, c.Analytics.Enabled)
}

func TestLoadContentMissingFile(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "missing.yaml"), testutil.NopLogger())
	assert.Error(t, err)
}
