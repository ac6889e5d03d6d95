package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Player data events
	EventPlayerDataReset  EventType = "player_data_reset"
	EventPlayerDataLoaded EventType = "player_data_loaded"

	// Economy events
	EventCurrencyChanged   EventType = "currency_changed"
	EventInventoryChanged  EventType = "inventory_changed"
	EventEquipmentChanged  EventType = "equipment_changed"
	EventPurchaseCompleted EventType = "purchase_completed"

	// Meta-progression events
	EventRewardsGranted        EventType = "rewards_granted"
	EventDailyRewardClaimed    EventType = "daily_reward_claimed"
	EventTutorialStepStarted   EventType = "tutorial_step_started"
	EventTutorialStepCompleted EventType = "tutorial_step_completed"
	EventTutorialCompleted     EventType = "tutorial_completed"
	EventAchievementProgress   EventType = "achievement_progress"
	EventAchievementUnlocked   EventType = "achievement_unlocked"
	EventScoreSubmitted        EventType = "score_submitted"
	EventLeaderboardLoaded     EventType = "leaderboard_loaded"
	EventLevelCompleted        EventType = "level_completed"

	// Game lifecycle events
	EventGameStateChanged EventType = "game_state_changed"
	EventGameStarted      EventType = "game_started"
	EventGamePaused       EventType = "game_paused"
	EventGameResumed      EventType = "game_resumed"
	EventGameCompleted    EventType = "game_completed"
	EventGameFailed       EventType = "game_failed"
)

// Event is the base structure for all notifications
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any // Type-specific data, nil for signal-only events
}

// CurrencyChangedPayload contains the wallet after a mutation
type CurrencyChangedPayload struct {
	Soft int
	Hard int
}

// InventoryChangedPayload contains the affected item and its new quantity
type InventoryChangedPayload struct {
	ItemID   string // Empty when the inventory was cleared
	Quantity int
}

// EquipmentChangedPayload contains the slot that changed
type EquipmentChangedPayload struct {
	SlotName string
	ItemID   string // Empty when the slot was cleared
}

// PurchaseCompletedPayload contains data for purchase completed events
type PurchaseCompletedPayload struct {
	ItemID    string
	Currency  CurrencyKind
	PricePaid int
}

// UsedHardCurrency reports whether the purchase was paid in hard currency
func (p PurchaseCompletedPayload) UsedHardCurrency() bool {
	return p.Currency == CurrencyHard
}

// RewardsGrantedPayload contains the full batch that was applied
type RewardsGrantedPayload struct {
	Rewards []RewardEntry
}

// DailyRewardClaimedPayload contains data for daily reward claimed events
type DailyRewardClaimedPayload struct {
	Streak  int
	Rewards []RewardEntry
}

// TutorialStepPayload contains data for tutorial step events
type TutorialStepPayload struct {
	StepIndex int
	StepID    string
}

// AchievementProgressPayload contains data for achievement progress events
type AchievementProgressPayload struct {
	AchievementID string
	Progress      int
}

// AchievementUnlockedPayload contains data for achievement unlocked events
type AchievementUnlockedPayload struct {
	AchievementID string
}

// ScoreSubmittedPayload contains data for score submitted events
type ScoreSubmittedPayload struct {
	LeaderboardID string
	Score         int
}

// LeaderboardLoadedPayload contains data for leaderboard loaded events
type LeaderboardLoadedPayload struct {
	LeaderboardID string
	Entries       []LeaderboardEntry
}

// LevelCompletedPayload contains data for level completed events
type LevelCompletedPayload struct {
	LevelIndex int
	NextLevel  int
}

// GameStateChangedPayload contains data for game state changed events
type GameStateChangedPayload struct {
	Previous GameState
	Current  GameState
}
