package response

import (
	"encoding/json"
	"time"

	"github.com/mcoot/protocasual/internal/gameloop"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/services/achievement"
)

// Wallet represents both currency balances
type Wallet struct {
	Soft int `json:"soft"`
	Hard int `json:"hard"`
}

// Inventory lists owned stacks
type Inventory struct {
	Items []model.InventoryItem `json:"items"`
}

// Catalog lists purchasable items
type Catalog struct {
	Items []model.Item `json:"items"`
}

// Purchase is the response after a successful purchase
type Purchase struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Wallet   Wallet `json:"wallet"`
}

// Equipment lists occupied slots
type Equipment struct {
	Slots []model.EquipmentSlot `json:"slots"`
}

// DailyReward represents the streak and today's claim
type DailyReward struct {
	Streak        int                 `json:"streak"`
	LastClaimTime *time.Time          `json:"last_claim_time"`
	CanClaimToday bool                `json:"can_claim_today"`
	TodayReward   []model.RewardEntry `json:"today_reward"`
}

// Tutorial represents the tutorial state
type Tutorial struct {
	State       string              `json:"state"`
	CurrentStep int                 `json:"current_step"`
	Step        *model.TutorialStep `json:"step,omitempty"`
}

// Achievements lists every defined achievement
type Achievements struct {
	Achievements []achievement.Status `json:"achievements"`
}

// Leaderboard represents one board page
type Leaderboard struct {
	ID         string                   `json:"id"`
	Descending bool                     `json:"descending"`
	MaxEntries int                      `json:"max_entries"`
	Entries    []model.LeaderboardEntry `json:"entries"`
	PlayerBest *model.LeaderboardEntry  `json:"player_best"`
}

// Progress represents the current level
type Progress struct {
	CurrentLevel int `json:"current_level"`
}

// Game represents the lifecycle state machine
type Game struct {
	gameloop.Snapshot
	Modes []string `json:"modes"`
}

// Save describes the persisted record
type Save struct {
	Key      string          `json:"key"`
	ReadOnly bool            `json:"read_only"`
	Data     json.RawMessage `json:"data"`
}

// Health is the health check response
type Health struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
}
