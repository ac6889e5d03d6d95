package model

import (
	"encoding/json"
	"time"
)

// CurrentSchemaVersion is the PlayerData layout written by this build
const CurrentSchemaVersion = 3

// PlayerID uniquely identifies a local player profile
type PlayerID string

// PlayerData is the root aggregate of all persistent player state.
// Each subtree is owned by exactly one service.
type PlayerData struct {
	Version      int                             `json:"version"`
	Profile      Profile                         `json:"profile"`
	Currency     Currency                        `json:"currency"`
	Inventory    Inventory                       `json:"inventory"`
	Equipment    Equipment                       `json:"equipment"`
	DailyReward  DailyReward                     `json:"daily_reward"`
	Tutorial     TutorialProgress                `json:"tutorial"`
	Progress     LevelProgress                   `json:"progress"`
	Leaderboards map[string][]LeaderboardEntry   `json:"leaderboards"`
	Achievements map[string]*AchievementProgress `json:"achievements"`

	// Unknown carries top-level subtrees this build does not understand
	Unknown map[string]json.RawMessage `json:"-"`
}

// Profile identifies the local player
type Profile struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
}

// Currency is the dual-denomination wallet
type Currency struct {
	Soft int `json:"soft"`
	Hard int `json:"hard"`
}

// InventoryItem is a single owned stack. Quantity is always > 0 while present.
type InventoryItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Inventory is the ordered list of owned stacks, unique by ItemID
type Inventory struct {
	Items []*InventoryItem `json:"items"`
}

// EquipmentSlot binds an item to a named slot
type EquipmentSlot struct {
	SlotName string `json:"slot_name"`
	ItemID   string `json:"item_id"`
}

// Equipment holds at most one entry per slot name
type Equipment struct {
	Slots []EquipmentSlot `json:"slots"`
}

// DailyReward tracks the login streak
type DailyReward struct {
	Streak        int        `json:"streak"`
	LastClaimTime *time.Time `json:"last_claim_time,omitempty"` // nil if never claimed
}

// TutorialProgress is the persisted part of the tutorial state machine
type TutorialProgress struct {
	Completed   bool `json:"completed"`
	CurrentStep int  `json:"current_step"`
}

// LevelProgress tracks linear level advancement
type LevelProgress struct {
	CurrentLevel int `json:"current_level"`
}

// LeaderboardEntry is one ranked row on a board
type LeaderboardEntry struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	Score       int      `json:"score"`
	Rank        int      `json:"rank"` // 1-based position after sorting
}

// AchievementProgress is the persisted state of one achievement
type AchievementProgress struct {
	Progress int  `json:"progress"`
	Unlocked bool `json:"unlocked"`
}

// NewPlayerData returns the default aggregate for a fresh profile
func NewPlayerData(playerID PlayerID) *PlayerData {
	return &PlayerData{
		Version: CurrentSchemaVersion,
		Profile: Profile{
			PlayerID:    playerID,
			DisplayName: DefaultDisplayName,
		},
		Inventory:    Inventory{Items: []*InventoryItem{}},
		Equipment:    Equipment{Slots: []EquipmentSlot{}},
		Leaderboards: make(map[string][]LeaderboardEntry),
		Achievements: make(map[string]*AchievementProgress),
	}
}

// DefaultDisplayName is shown for the local player on boards
const DefaultDisplayName = "You"

// Normalize fills in any subtree left empty by an older or partial record
func (d *PlayerData) Normalize() {
	if d.Inventory.Items == nil {
		d.Inventory.Items = []*InventoryItem{}
	}
	if d.Equipment.Slots == nil {
		d.Equipment.Slots = []EquipmentSlot{}
	}
	if d.Leaderboards == nil {
		d.Leaderboards = make(map[string][]LeaderboardEntry)
	}
	if d.Achievements == nil {
		d.Achievements = make(map[string]*AchievementProgress)
	}
	if d.Profile.DisplayName == "" {
		d.Profile.DisplayName = DefaultDisplayName
	}
	if d.Currency.Soft < 0 {
		d.Currency.Soft = 0
	}
	if d.Currency.Hard < 0 {
		d.Currency.Hard = 0
	}
	if d.Progress.CurrentLevel < 0 {
		d.Progress.CurrentLevel = 0
	}
	if d.DailyReward.Streak < 0 {
		d.DailyReward.Streak = 0
	}
	if d.Tutorial.CurrentStep < 0 {
		d.Tutorial.CurrentStep = 0
	}

	// Drop stacks that violate the quantity floor and fold duplicate ids
	// into the first stack for that id
	items := d.Inventory.Items[:0]
	byID := make(map[string]*InventoryItem, len(d.Inventory.Items))
	for _, it := range d.Inventory.Items {
		if it == nil || it.ItemID == "" || it.Quantity <= 0 {
			continue
		}
		if first, ok := byID[it.ItemID]; ok {
			first.Quantity += it.Quantity
			continue
		}
		byID[it.ItemID] = it
		items = append(items, it)
	}
	d.Inventory.Items = items

	for id, a := range d.Achievements {
		if a == nil {
			delete(d.Achievements, id)
		}
	}
}
