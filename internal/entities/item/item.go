// Package item holds the item taxonomy: categories, subcategories, equipment
// slots and rarities, and the single constructor that enforces their
// invariants.
package item

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Reasons reported by InvalidItemError and MalformedItemError
const (
	ReasonMissingID             errors.Reason = "missing_id"
	ReasonMissingName           errors.Reason = "missing_name"
	ReasonMissingCategory       errors.Reason = "missing_category"
	ReasonUnknownCategory       errors.Reason = "unknown_category"
	ReasonUnknownSubcategory    errors.Reason = "unknown_subcategory"
	ReasonSubcategoryMismatch   errors.Reason = "subcategory_mismatch"
	ReasonUnknownRarity         errors.Reason = "unknown_rarity"
	ReasonNotStackableCategory  errors.Reason = "not_stackable_category"
	ReasonInvalidQuantity       errors.Reason = "invalid_quantity"
	ReasonUnknownSlot           errors.Reason = "unknown_slot"
	ReasonDuplicateSlot         errors.Reason = "duplicate_slot"
	ReasonSlotsRequired         errors.Reason = "slots_required"
	ReasonSlotNotAllowed        errors.Reason = "slot_not_allowed"
	ReasonSlotsForbidden        errors.Reason = "slots_forbidden"
	ReasonWeaponStatsNotAllowed errors.Reason = "weapon_stats_not_allowed"
	ReasonInvalidWeaponStats    errors.Reason = "invalid_weapon_stats"
	ReasonIconRequired          errors.Reason = "icon_required"
	ReasonInvalidField          errors.Reason = "invalid_field"
)

// WeaponStats holds the combat numbers of a weapon
type WeaponStats struct {
	Damage      int
	Element     string
	AttackSpeed float64
}

// Item is a validated inventory item. Build it with New or FromMap; fields
// are exported for reading and the inventory adjusts Quantity when stacking.
type Item struct {
	ID           string
	Name         string
	Description  string
	IconPath     string
	Category     Category
	Subcategory  Subcategory
	Rarity       Rarity
	Stackable    bool
	Quantity     int
	AllowedSlots []Slot
	WeaponStats  *WeaponStats
}

// Params describes an item to construct.
//
// Subcategory may be empty, in which case it is inferred from the icon path
// and name. A nil AllowedSlots is derived from the category and
// subcategory; a non-nil slice is validated as given. Quantity 0 resolves
// to 1. An empty Rarity resolves to Common.
type Params struct {
	ID           string
	Name         string
	Description  string
	IconPath     string
	Category     Category
	Subcategory  Subcategory
	Rarity       Rarity
	Stackable    bool
	Quantity     int
	AllowedSlots []Slot
	WeaponStats  *WeaponStats
}

// New validates p and returns the item it describes.
// Returns errors.CodeInvalidArgument wrapping an InvalidItemError if any
// invariant is violated.
func New(p Params) (*Item, error) {
	id := p.ID
	if strings.TrimSpace(id) == "" {
		return nil, errors.InvalidItem(ReasonMissingID, p.ID, "id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.InvalidItem(ReasonMissingName, id, "name is required")
	}
	if !p.Category.IsValid() {
		return nil, errors.InvalidItem(ReasonUnknownCategory, id, "unknown category %q", p.Category)
	}

	subcategory := p.Subcategory
	if subcategory == "" {
		subcategory = InferSubcategory(p.Category, p.IconPath, p.Name)
	}
	if !subcategory.IsValid() {
		return nil, errors.InvalidItem(ReasonUnknownSubcategory, id, "unknown subcategory %q", subcategory)
	}
	if subcategory.Category() != p.Category {
		return nil, errors.InvalidItem(ReasonSubcategoryMismatch, id,
			"subcategory %s belongs to %s, not %s", subcategory, subcategory.Category(), p.Category)
	}

	rarity := p.Rarity
	if rarity == "" {
		rarity = RarityCommon
	}
	if !rarity.IsValid() {
		return nil, errors.InvalidItem(ReasonUnknownRarity, id, "unknown rarity %q", rarity)
	}

	if p.Stackable && !p.Category.IsStackable() {
		return nil, errors.InvalidItem(ReasonNotStackableCategory, id, "category %s cannot stack", p.Category)
	}

	quantity := p.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, errors.InvalidItem(ReasonInvalidQuantity, id, "quantity must be at least 1, got %d", quantity)
	}
	if !p.Stackable && quantity != 1 {
		return nil, errors.InvalidItem(ReasonInvalidQuantity, id, "non-stackable item must have quantity 1, got %d", quantity)
	}

	slots := p.AllowedSlots
	if slots == nil {
		slots = DefaultSlots(p.Category, subcategory)
	}
	if err := validateSlots(id, p.Category, slots); err != nil {
		return nil, err
	}

	if p.WeaponStats != nil {
		if p.Category != CategoryWeapons {
			return nil, errors.InvalidItem(ReasonWeaponStatsNotAllowed, id, "weapon stats on %s item", p.Category)
		}
		if p.WeaponStats.Damage < 0 || p.WeaponStats.AttackSpeed < 0 {
			return nil, errors.InvalidItem(ReasonInvalidWeaponStats, id, "weapon stats must not be negative")
		}
	}

	if p.Category.RequiresIcon() && strings.TrimSpace(p.IconPath) == "" {
		return nil, errors.InvalidItem(ReasonIconRequired, id, "category %s requires an icon", p.Category)
	}

	it := &Item{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		IconPath:     p.IconPath,
		Category:     p.Category,
		Subcategory:  subcategory,
		Rarity:       rarity,
		Stackable:    p.Stackable,
		Quantity:     quantity,
		AllowedSlots: slices.Clone(slots),
		WeaponStats:  cloneStats(p.WeaponStats),
	}
	if it.AllowedSlots == nil {
		it.AllowedSlots = []Slot{}
	}
	return it, nil
}

func validateSlots(id string, category Category, slots []Slot) error {
	seen := make(map[Slot]struct{}, len(slots))
	for _, slot := range slots {
		if !slot.IsValid() {
			return errors.InvalidItem(ReasonUnknownSlot, id, "unknown slot %q", slot)
		}
		if _, dup := seen[slot]; dup {
			return errors.InvalidItem(ReasonDuplicateSlot, id, "slot %s listed twice", slot)
		}
		seen[slot] = struct{}{}
	}

	if !category.IsEquippable() {
		if len(slots) > 0 {
			return errors.InvalidItem(ReasonSlotsForbidden, id, "category %s cannot be equipped", category)
		}
		return nil
	}

	if len(slots) == 0 {
		return errors.InvalidItem(ReasonSlotsRequired, id, "category %s requires at least one slot", category)
	}
	for _, slot := range slots {
		if !category.AllowsSlot(slot) {
			return errors.InvalidItem(ReasonSlotNotAllowed, id, "slot %s not allowed for %s", slot, category)
		}
	}
	return nil
}

// Params returns the construction parameters that reproduce the item
func (i *Item) Params() Params {
	return Params{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		IconPath:     i.IconPath,
		Category:     i.Category,
		Subcategory:  i.Subcategory,
		Rarity:       i.Rarity,
		Stackable:    i.Stackable,
		Quantity:     i.Quantity,
		AllowedSlots: slices.Clone(i.AllowedSlots),
		WeaponStats:  cloneStats(i.WeaponStats),
	}
}

// CanEquip reports whether the item may be placed in slot
func (i *Item) CanEquip(slot Slot) bool {
	return slices.Contains(i.AllowedSlots, slot)
}

// CanStackWith reports whether other merges into i when added to an inventory
func (i *Item) CanStackWith(other *Item) bool {
	return other != nil && i.Stackable && other.Stackable && i.ID == other.ID
}

// Clone returns a deep copy of the item
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.AllowedSlots = slices.Clone(i.AllowedSlots)
	if out.AllowedSlots == nil {
		out.AllowedSlots = []Slot{}
	}
	out.WeaponStats = cloneStats(i.WeaponStats)
	return &out
}

// Equal reports whether two items carry the same values
func (i *Item) Equal(other *Item) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.ID != other.ID ||
		i.Name != other.Name ||
		i.Description != other.Description ||
		i.IconPath != other.IconPath ||
		i.Category != other.Category ||
		i.Subcategory != other.Subcategory ||
		i.Rarity != other.Rarity ||
		i.Stackable != other.Stackable ||
		i.Quantity != other.Quantity {
		return false
	}
	if !slices.Equal(i.AllowedSlots, other.AllowedSlots) {
		return false
	}
	if i.WeaponStats == nil || other.WeaponStats == nil {
		return i.WeaponStats == other.WeaponStats
	}
	return *i.WeaponStats == *other.WeaponStats
}

func cloneStats(stats *WeaponStats) *WeaponStats {
	if stats == nil {
		return nil
	}
	out := *stats
	return &out
}
