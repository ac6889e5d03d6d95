package model

// LevelReward maps a level index to the rewards granted for completing it
type LevelReward struct {
	Level   int           `yaml:"level" json:"level"`
	Rewards []RewardEntry `yaml:"rewards" json:"rewards"`
}

// DayReward is one day of the daily login cycle
type DayReward struct {
	Label   string        `yaml:"label" json:"label"`
	Rewards []RewardEntry `yaml:"rewards" json:"rewards"`
}

// DailyRewardConfig configures the login streak
type DailyRewardConfig struct {
	CycleDays         int         `yaml:"cycle_days" json:"cycle_days"`
	StreakExpiryHours int         `yaml:"streak_expiry_hours" json:"streak_expiry_hours"`
	Days              []DayReward `yaml:"days" json:"days"`
}

// AchievementDefinition is a configured achievement
type AchievementDefinition struct {
	ID               string        `yaml:"id" json:"id"`
	DisplayName      string        `yaml:"display_name" json:"display_name"`
	Description      string        `yaml:"description" json:"description,omitempty"`
	RequiredProgress int           `yaml:"required_progress" json:"required_progress"`
	Rewards          []RewardEntry `yaml:"rewards" json:"rewards,omitempty"`
	Hidden           bool          `yaml:"hidden" json:"hidden"`
}

// LeaderboardDefinition configures one board
type LeaderboardDefinition struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	MaxEntries  int    `yaml:"max_entries" json:"max_entries"`
	// Descending ranks higher scores first
	Descending bool `yaml:"descending" json:"descending"`
}

// TutorialStep is one configured tutorial step
type TutorialStep struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Message string `yaml:"message" json:"message"`
}

// TutorialConfig configures the tutorial flow
type TutorialConfig struct {
	AutoStart bool           `yaml:"auto_start" json:"auto_start"`
	AllowSkip bool           `yaml:"allow_skip" json:"allow_skip"`
	Steps     []TutorialStep `yaml:"steps" json:"steps"`
}

// Default sizes applied when content leaves them unset
const (
	DefaultCycleDays           = 7
	DefaultStreakExpiryHours   = 48
	DefaultLeaderboardCapacity = 100
)
