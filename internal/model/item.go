package model

import "fmt"

// ItemType classifies catalog items
type ItemType string

const (
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeCosmetic   ItemType = "cosmetic"
	ItemTypeEquipment  ItemType = "equipment"
	ItemTypeCurrency   ItemType = "currency"
)

// Item is a read-only catalog definition
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Type        ItemType `yaml:"type" json:"type"`
	Category    string   `yaml:"category" json:"category"`
	SoftPrice   int      `yaml:"soft_price" json:"soft_price"`
	HardPrice   int      `yaml:"hard_price" json:"hard_price"`
	Stackable   bool     `yaml:"stackable" json:"stackable"`
	Equippable  bool     `yaml:"equippable" json:"equippable"`
}

// CurrencyKind names a wallet denomination
type CurrencyKind string

const (
	CurrencySoft CurrencyKind = "soft"
	CurrencyHard CurrencyKind = "hard"
)

// ParseCurrencyKind converts a name into a CurrencyKind. Empty means soft.
func ParseCurrencyKind(s string) (CurrencyKind, error) {
	switch k := CurrencyKind(s); k {
	case "":
		return CurrencySoft, nil
	case CurrencySoft, CurrencyHard:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}
