package playerdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/protocasual/internal/dependencies/mocks"
	"github.com/mcoot/protocasual/internal/model"
)

func TestDecodeLegacyRecordMigratesToCurrent(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.UUIDResults = []string{"player-uuid"}
	legacy := []byte(`{
		"currency": {"soft": 30, "hard": 2},
		"ownedItemIds": ["hat", "sword", "hat"],
		"consumableAmounts": {"potion": 3, "bomb": 0, "hat": 2}
	}`)

	data, err := Decode(legacy, rnd)
	require.NoError(t, err)

	assert.Equal(t, model.CurrentSchemaVersion, data.Version)
	assert.Equal(t, model.Currency{Soft: 30, Hard: 2}, data.Currency)
	assert.Equal(t, []*model.InventoryItem{
		{ItemID: "hat", Quantity: 3},
		{ItemID: "sword", Quantity: 1},
		{ItemID: "potion", Quantity: 3},
	}, data.Inventory.Items)
	assert.Equal(t, model.PlayerID("player-uuid"), data.Profile.PlayerID)
	assert.NotNil(t, data.Leaderboards)
	assert.NotNil(t, data.Achievements)
	assert.Nil(t, data.Unknown, "legacy inventory fields are consumed, not preserved")
}

func TestDecodeV2RekeysLegacyBoardEntries(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.UUIDResults = []string{"player-uuid"}
	v2 := []byte(`{
		"version": 2,
		"leaderboards": {"high_score": [
			{"player_id": "local_player", "display_name": "You", "score": 50, "rank": 1}
		]}
	}`)

	data, err := Decode(v2, rnd)
	require.NoError(t, err)

	require.Len(t, data.Leaderboards["high_score"], 1)
	assert.Equal(t, model.PlayerID("player-uuid"), data.Leaderboards["high_score"][0].PlayerID)
	assert.Equal(t, 0, data.Progress.CurrentLevel)
}

func TestDecodeMissingSubtreesGetDefaults(t *testing.T) {
	data, err := Decode([]byte(`{"version":3}`), mocks.NewMockRandom())
	require.NoError(t, err)

	assert.NotNil(t, data.Inventory.Items)
	assert.NotNil(t, data.Equipment.Slots)
	assert.NotEmpty(t, data.Profile.PlayerID)
	assert.Equal(t, model.DefaultDisplayName, data.Profile.DisplayName)
}

func TestDecodeDropsInvalidStacksAndClampsBalances(t *testing.T) {
	record := []byte(`{
		"version": 3,
		"currency": {"soft": -5, "hard": 1},
		"inventory": {"items": [{"item_id": "a", "quantity": 0}, {"item_id": "", "quantity": 2}, {"item_id": "b", "quantity": 2}]}
	}`)

	data, err := Decode(record, mocks.NewMockRandom())
	require.NoError(t, err)

	assert.Equal(t, 0, data.Currency.Soft)
	assert.Equal(t, []*model.InventoryItem{{ItemID: "b", Quantity: 2}}, data.Inventory.Items)
}

func TestDecodeMergesDuplicateStacks(t *testing.T) {
	record := []byte(`{"version":3,"inventory":{"items":[
		{"item_id":"gem","quantity":2},
		{"item_id":"sword","quantity":1},
		{"item_id":"gem","quantity":3}
	]}}`)

	data, err := Decode(record, mocks.NewMockRandom())
	require.NoError(t, err)

	assert.Equal(t, []*model.InventoryItem{
		{ItemID: "gem", Quantity: 5},
		{ItemID: "sword", Quantity: 1},
	}, data.Inventory.Items)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"newer version", `{"version": 4}`},
		{"non-numeric version", `{"version": "three"}`},
		{"negative version", `{"version": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.record), mocks.NewMockRandom())
			assert.ErrorIs(t, err, model.ErrUnsupportedSchema)
		})
	}
}

func TestEncodeDoesNotLetUnknownShadowKnown(t *testing.T) {
	withUnknown := model.NewPlayerData("p1")
	withUnknown.Currency.Soft = 3
	withUnknown.Unknown = map[string]json.RawMessage{
		"currency": json.RawMessage(`{"soft":999}`),
		"extra":    json.RawMessage(`true`),
	}

	body, err := Encode(withUnknown)
	require.NoError(t, err)

	decoded, err := Decode(body, mocks.NewMockRandom())
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Currency.Soft)
	assert.JSONEq(t, `true`, string(decoded.Unknown["extra"]))
}
