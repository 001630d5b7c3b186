// Package hero defines the hero aggregate: a hero, the single inventory it
// owns, and the wire codec used for the remote copy of the pair.
package hero

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// EntityType is the core.Entity type reported by heroes
const EntityType = "hero"

// Hero is the identity half of a profile
type Hero struct {
	ID          string
	Name        string
	Description string
	Level       int
	Class       Class
	CardImage   string
	InventoryID string
}

var _ core.Entity = (*Hero)(nil)

// GetID returns the hero id
func (h *Hero) GetID() string {
	return h.ID
}

// GetType returns the entity type
func (h *Hero) GetType() string {
	return EntityType
}

// Validate checks the hero identity fields
func (h *Hero) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", h.ID, vb)
	errors.ValidateRequired("Name", h.Name, vb)
	if !h.Class.IsValid() {
		vb.Fieldf("Class", "unknown class %q", h.Class)
	}
	if h.Level < 1 {
		vb.Field("Level", "must be at least 1")
	}
	return vb.Build()
}

// ResolvedInventoryID returns InventoryID, or the conventional
// "<heroId>-inventory" when it is blank
func (h *Hero) ResolvedInventoryID() string {
	if strings.TrimSpace(h.InventoryID) != "" {
		return h.InventoryID
	}
	return DefaultInventoryID(h.ID)
}

// DefaultInventoryID returns the conventional inventory id for heroID
func DefaultInventoryID(heroID string) string {
	return heroID + "-inventory"
}

// Clone returns a copy of the hero
func (h *Hero) Clone() *Hero {
	if h == nil {
		return nil
	}
	out := *h
	return &out
}

type inventoryOptions struct {
	id       string
	gold     int
	capacity int
}

// InventoryOption customizes CreateInventory
type InventoryOption func(*inventoryOptions)

// WithInventoryID overrides the inventory id
func WithInventoryID(id string) InventoryOption {
	return func(o *inventoryOptions) {
		o.id = id
	}
}

// WithGold sets the starting gold
func WithGold(gold int) InventoryOption {
	return func(o *inventoryOptions) {
		o.gold = gold
	}
}

// WithCapacity sets the capacity
func WithCapacity(capacity int) InventoryOption {
	return func(o *inventoryOptions) {
		o.capacity = capacity
	}
}

// CreateInventory returns a fresh empty inventory bound to the hero.
// Defaults: id from ResolvedInventoryID, no gold, inventory.DefaultCapacity.
func (h *Hero) CreateInventory(opts ...InventoryOption) *inventory.Inventory {
	o := &inventoryOptions{
		id:       h.ResolvedInventoryID(),
		capacity: inventory.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(o)
	}
	return inventory.New(o.id, h.ID, o.gold, o.capacity)
}
