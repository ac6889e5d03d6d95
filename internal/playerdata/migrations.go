package playerdata

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcoot/protocasual/internal/dependencies/random"
	"github.com/mcoot/protocasual/internal/model"
)

// migration upgrades a document from one version to the next
type migration func(doc document, rnd random.Random) error

// migrations is keyed by the version a step upgrades from
var migrations = map[int]migration{
	0: migrateLegacyInventory,
	1: migrateAddMetaSubtrees,
	2: migrateAddProfile,
}

// migrate applies every step from version up to the current schema, in order
func migrate(doc document, version int, rnd random.Random) error {
	for v := version; v < model.CurrentSchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return fmt.Errorf("%w: no migration from v%d", model.ErrUnsupportedSchema, v)
		}
		if err := step(doc, rnd); err != nil {
			return fmt.Errorf("migrate v%d to v%d: %w", v, v+1, err)
		}
		raw, _ := json.Marshal(v + 1)
		doc["version"] = raw
	}
	return nil
}

// legacyInventory is the pre-v1 shape: owned ids plus a consumable counter map
type legacyInventory struct {
	OwnedItemIDs      []string       `json:"ownedItemIds"`
	ConsumableAmounts map[string]int `json:"consumableAmounts"`
}

// migrateLegacyInventory folds ownedItemIds/consumableAmounts into the inventory item list
func migrateLegacyInventory(doc document, _ random.Random) error {
	var legacy legacyInventory
	if raw, ok := doc["ownedItemIds"]; ok {
		if err := json.Unmarshal(raw, &legacy.OwnedItemIDs); err != nil {
			return fmt.Errorf("ownedItemIds: %w", err)
		}
	}
	if raw, ok := doc["consumableAmounts"]; ok {
		if err := json.Unmarshal(raw, &legacy.ConsumableAmounts); err != nil {
			return fmt.Errorf("consumableAmounts: %w", err)
		}
	}
	delete(doc, "ownedItemIds")
	delete(doc, "consumableAmounts")

	if _, ok := doc["inventory"]; ok {
		return nil
	}

	var items []*model.InventoryItem
	index := make(map[string]*model.InventoryItem)
	add := func(id string, n int) {
		if id == "" || n <= 0 {
			return
		}
		if it, ok := index[id]; ok {
			it.Quantity += n
			return
		}
		it := &model.InventoryItem{ItemID: id, Quantity: n}
		index[id] = it
		items = append(items, it)
	}

	for _, id := range legacy.OwnedItemIDs {
		if _, ok := index[id]; !ok {
			add(id, 1)
		}
	}
	ids := make([]string, 0, len(legacy.ConsumableAmounts))
	for id := range legacy.ConsumableAmounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		add(id, legacy.ConsumableAmounts[id])
	}

	if items == nil {
		items = []*model.InventoryItem{}
	}
	return doc.setIfMissing("inventory", model.Inventory{Items: items})
}

// migrateAddMetaSubtrees adds the subtrees introduced for daily rewards, tutorial, boards and achievements
func migrateAddMetaSubtrees(doc document, _ random.Random) error {
	if err := doc.setIfMissing("daily_reward", model.DailyReward{}); err != nil {
		return err
	}
	if err := doc.setIfMissing("tutorial", model.TutorialProgress{}); err != nil {
		return err
	}
	if err := doc.setIfMissing("leaderboards", map[string][]model.LeaderboardEntry{}); err != nil {
		return err
	}
	return doc.setIfMissing("achievements", map[string]*model.AchievementProgress{})
}

// legacyLocalPlayerID is the fixed identity boards used before profiles existed
const legacyLocalPlayerID = "local_player"

// migrateAddProfile gives the save a stable player identity and level progress,
// re-keying board entries written under the old fixed identity
func migrateAddProfile(doc document, rnd random.Random) error {
	if _, ok := doc["profile"]; !ok {
		profile := model.Profile{
			PlayerID:    model.PlayerID(rnd.UUID()),
			DisplayName: model.DefaultDisplayName,
		}
		if err := doc.setIfMissing("profile", profile); err != nil {
			return err
		}
		if err := rekeyLegacyEntries(doc, profile.PlayerID); err != nil {
			return err
		}
	}
	return doc.setIfMissing("progress", model.LevelProgress{})
}

func rekeyLegacyEntries(doc document, id model.PlayerID) error {
	raw, ok := doc["leaderboards"]
	if !ok {
		return nil
	}
	var boards map[string][]model.LeaderboardEntry
	if err := json.Unmarshal(raw, &boards); err != nil {
		return fmt.Errorf("leaderboards: %w", err)
	}
	for _, entries := range boards {
		for i := range entries {
			if entries[i].PlayerID == legacyLocalPlayerID {
				entries[i].PlayerID = id
			}
		}
	}
	out, err := json.Marshal(boards)
	if err != nil {
		return err
	}
	doc["leaderboards"] = out
	return nil
}
