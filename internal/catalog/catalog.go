// Package catalog provides read-only item definitions with O(1) lookup by id.
package catalog

import (
	"log/slog"

	"github.com/mcoot/protocasual/internal/model"
)

// CatalogInterface is the item lookup capability consumed by the store and equipment services
type CatalogInterface interface {
	Get(id string) (model.Item, bool)
	Contains(id string) bool
	All() []model.Item
	GetByCategory(category string) []model.Item
	GetByType(t model.ItemType) []model.Item
}

// Catalog is an immutable item table
type Catalog struct {
	items  []model.Item
	lookup map[string]int
}

// Ensure Catalog implements CatalogInterface
var _ CatalogInterface = (*Catalog)(nil)

// New indexes items, skipping empty and duplicate ids. Declaration order is kept.
func New(items []model.Item, logger *slog.Logger) *Catalog {
	logger = logger.With(slog.String("component", "catalog"))
	c := &Catalog{
		items:  make([]model.Item, 0, len(items)),
		lookup: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if it.ID == "" {
			logger.Warn("item has empty id, skipped", slog.String("display_name", it.DisplayName))
			continue
		}
		if _, dup := c.lookup[it.ID]; dup {
			logger.Error("duplicate item id, skipped", slog.String("item_id", it.ID))
			continue
		}
		c.lookup[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	logger.Info("catalog loaded", slog.Int("items", len(c.items)))
	return c
}

// Get returns the definition for id
func (c *Catalog) Get(id string) (model.Item, bool) {
	i, ok := c.lookup[id]
	if !ok {
		return model.Item{}, false
	}
	return c.items[i], true
}

// Contains reports whether id is defined
func (c *Catalog) Contains(id string) bool {
	_, ok := c.lookup[id]
	return ok
}

// All returns a copy of every definition
func (c *Catalog) All() []model.Item {
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) GetByCategory(category string) []model.Item {
	return c.filter(func(it model.Item) bool { return it.Category == category })
}

func (c *Catalog) GetByType(t model.ItemType) []model.Item {
	return c.filter(func(it model.Item) bool { return it.Type == t })
}

func (c *Catalog) filter(keep func(model.Item) bool) []model.Item {
	out := []model.Item{}
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
