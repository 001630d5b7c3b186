// Package inventory implements the capacity-bounded item container owned by
// a hero. It performs no I/O and is not safe for concurrent use.
package inventory

import (
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
)

// DefaultCapacity is the number of items a fresh inventory holds
const DefaultCapacity = 30

// Inventory is an ordered, capacity-bounded collection of items
type Inventory struct {
	ID       string
	HeroID   string
	Gold     int
	Capacity int

	items []*item.Item
}

// New returns an empty inventory
func New(id, heroID string, gold, capacity int) *Inventory {
	return &Inventory{
		ID:       id,
		HeroID:   heroID,
		Gold:     gold,
		Capacity: capacity,
	}
}

// AddItem adds it to the inventory.
//
// A stackable item whose id matches a stackable item already held merges
// into it without consulting capacity. Any other item sharing an id with a
// held item is refused. Otherwise the item is appended if there is room.
// Returns false, leaving the inventory unchanged, when the item was refused.
func (inv *Inventory) AddItem(it *item.Item) bool {
	if it == nil {
		return false
	}

	for _, held := range inv.items {
		if held.ID != it.ID {
			continue
		}
		if held.CanStackWith(it) {
			held.Quantity += it.Quantity
			return true
		}
		return false
	}

	if inv.IsFull() {
		return false
	}
	inv.items = append(inv.items, it.Clone())
	return true
}

// RemoveItem removes the first item with itemID
func (inv *Inventory) RemoveItem(itemID string) bool {
	for idx, held := range inv.items {
		if held.ID == itemID {
			inv.items = append(inv.items[:idx], inv.items[idx+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll clears the inventory and adds items in order with AddItem
// semantics. Returns the number of items that were refused.
func (inv *Inventory) ReplaceAll(items []*item.Item) int {
	inv.items = nil
	dropped := 0
	for _, it := range items {
		if !inv.AddItem(it) {
			dropped++
		}
	}
	return dropped
}

// Item returns a copy of the item with itemID
func (inv *Inventory) Item(itemID string) (*item.Item, bool) {
	for _, held := range inv.items {
		if held.ID == itemID {
			return held.Clone(), true
		}
	}
	return nil, false
}

// ItemsByCategory returns copies of the held items in category, in order
func (inv *Inventory) ItemsByCategory(category item.Category) []*item.Item {
	var out []*item.Item
	for _, held := range inv.items {
		if held.Category == category {
			out = append(out, held.Clone())
		}
	}
	return out
}

// AllItems returns copies of every held item in insertion order
func (inv *Inventory) AllItems() []*item.Item {
	out := make([]*item.Item, len(inv.items))
	for idx, held := range inv.items {
		out[idx] = held.Clone()
	}
	return out
}

// Len returns the number of distinct items held
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// IsFull reports whether a new distinct item would be refused
func (inv *Inventory) IsFull() bool {
	return len(inv.items) >= inv.Capacity
}

// Clone returns a deep copy of the inventory
func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	out := *inv
	out.items = make([]*item.Item, len(inv.items))
	for idx, held := range inv.items {
		out.items[idx] = held.Clone()
	}
	return &out
}

// Equal reports whether both inventories hold the same values in the same order
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv == nil || other == nil {
		return inv == other
	}
	if inv.ID != other.ID || inv.HeroID != other.HeroID ||
		inv.Gold != other.Gold || inv.Capacity != other.Capacity ||
		len(inv.items) != len(other.items) {
		return false
	}
	for idx := range inv.items {
		if !inv.items[idx].Equal(other.items[idx]) {
			return false
		}
	}
	return true
}
