package model

// RewardType identifies what a reward entry grants
type RewardType string

const (
	RewardSoftCurrency RewardType = "soft_currency"
	RewardHardCurrency RewardType = "hard_currency"
	RewardItem         RewardType = "item"
)

// RewardEntry is a single grant. RewardID is the item id for item rewards.
type RewardEntry struct {
	RewardID string     `yaml:"reward_id" json:"reward_id,omitempty"`
	Type     RewardType `yaml:"type" json:"type"`
	Amount   int        `yaml:"amount" json:"amount"`
}
