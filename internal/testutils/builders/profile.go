// Package builders provides test data builders for creating test fixtures
package builders

import (
	"fmt"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
)

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	hero     *hero.Hero
	gold     int
	capacity int
	items    []*item.Item
}

// NewProfileBuilder creates a new builder with minimal defaults
func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		hero: &hero.Hero{
			ID:    "hero-test-123",
			Name:  "Zed",
			Level: 1,
			Class: hero.ClassMage,
		},
		capacity: inventory.DefaultCapacity,
	}
}

// WithHeroID sets the hero id
func (b *ProfileBuilder) WithHeroID(id string) *ProfileBuilder {
	b.hero.ID = id
	return b
}

// WithName sets the hero name
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.hero.Name = name
	return b
}

// WithClass sets the hero class
func (b *ProfileBuilder) WithClass(c hero.Class) *ProfileBuilder {
	b.hero.Class = c
	return b
}

// WithLevel sets the hero level
func (b *ProfileBuilder) WithLevel(level int) *ProfileBuilder {
	b.hero.Level = level
	return b
}

// WithInventoryID sets the inventory id
func (b *ProfileBuilder) WithInventoryID(id string) *ProfileBuilder {
	b.hero.InventoryID = id
	return b
}

// WithGold sets the inventory gold
func (b *ProfileBuilder) WithGold(gold int) *ProfileBuilder {
	b.gold = gold
	return b
}

// WithCapacity sets the inventory capacity
func (b *ProfileBuilder) WithCapacity(capacity int) *ProfileBuilder {
	b.capacity = capacity
	return b
}

// WithItems appends items
func (b *ProfileBuilder) WithItems(items ...*item.Item) *ProfileBuilder {
	b.items = append(b.items, items...)
	return b
}

// WithRunes appends n distinct stackable runes
func (b *ProfileBuilder) WithRunes(n int) *ProfileBuilder {
	for i := 0; i < n; i++ {
		b.items = append(b.items, Rune(fmt.Sprintf("rune-%02d", i), 1))
	}
	return b
}

// Build creates the profile. Items beyond capacity are silently dropped.
func (b *ProfileBuilder) Build() *hero.Profile {
	h := b.hero.Clone()
	if h.InventoryID == "" {
		h.InventoryID = hero.DefaultInventoryID(h.ID)
	}
	inv := h.CreateInventory(hero.WithGold(b.gold), hero.WithCapacity(b.capacity))
	inv.ReplaceAll(b.items)
	return hero.NewProfile(h, inv)
}

// Rune returns a stackable rune
func Rune(id string, quantity int) *item.Item {
	return mustItem(item.Params{
		ID:          id,
		Name:        "Rune " + id,
		Category:    item.CategoryRunesGems,
		Subcategory: item.SubcategoryRune,
		Stackable:   true,
		Quantity:    quantity,
	})
}

// Sword returns a main hand sword
func Sword(id string) *item.Item {
	return mustItem(item.Params{
		ID:          id,
		Name:        "Sword " + id,
		IconPath:    "weapons/sword.png",
		Category:    item.CategoryWeapons,
		Subcategory: item.SubcategorySword,
		Rarity:      item.RarityRare,
		WeaponStats: &item.WeaponStats{Damage: 12, Element: "SLASHING", AttackSpeed: 1.1},
	})
}

// Helmet returns a head armor piece
func Helmet(id string) *item.Item {
	return mustItem(item.Params{
		ID:          id,
		Name:        "Helmet " + id,
		IconPath:    "armor/helmet.png",
		Category:    item.CategoryArmor,
		Subcategory: item.SubcategoryHelmet,
	})
}

func mustItem(p item.Params) *item.Item {
	it, err := item.New(p)
	if err != nil {
		panic(fmt.Sprintf("invalid test item %s: %v", p.ID, err))
	}
	return it
}
