package request

// CurrencyRequest is the request body for wallet add and spend
type CurrencyRequest struct {
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
}

// ItemRequest is the request body for inventory add and remove
type ItemRequest struct {
	ItemID string `json:"item_id"`
	Amount int    `json:"amount"`
}

// PurchaseRequest is the request body for buying an item
type PurchaseRequest struct {
	ItemID     string `json:"item_id"`
	PreferHard bool   `json:"prefer_hard,omitempty"`
}

// EquipRequest is the request body for equipping or unequipping a slot
type EquipRequest struct {
	Slot   string `json:"slot"`
	ItemID string `json:"item_id,omitempty"`
}

// ProgressRequest is the request body for adding achievement progress
type ProgressRequest struct {
	Amount int `json:"amount"`
}

// ScoreRequest is the request body for submitting a leaderboard score
type ScoreRequest struct {
	Score int `json:"score"`
}

// GameStateRequest is the request body for driving the game loop.
// Exactly one of State, Action or Mode is used; TickMillis advances a running game.
type GameStateRequest struct {
	State      string `json:"state,omitempty"`
	Action     string `json:"action,omitempty"`
	Mode       string `json:"mode,omitempty"`
	TickMillis int    `json:"tick_ms,omitempty"`
}
