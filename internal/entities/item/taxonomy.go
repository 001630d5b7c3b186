package item

import (
	"strings"
)

// Category is the top-level classification of an item
type Category string

// Item categories
const (
	CategoryWeapons           Category = "WEAPONS"
	CategoryArmor             Category = "ARMOR"
	CategoryShields           Category = "SHIELDS"
	CategoryAccessories       Category = "ACCESSORIES"
	CategoryConsumables       Category = "CONSUMABLES"
	CategorySpellsScrolls     Category = "SPELLS_SCROLLS"
	CategoryRunesGems         Category = "RUNES_GEMS"
	CategoryCraftingMaterials Category = "CRAFTING_MATERIALS"
	CategoryQuestItems        Category = "QUEST_ITEMS"
	CategoryGoldCurrency      Category = "GOLD_CURRENCY"
)

// AllCategories returns every category in display order
func AllCategories() []Category {
	return []Category{
		CategoryWeapons,
		CategoryArmor,
		CategoryShields,
		CategoryAccessories,
		CategoryConsumables,
		CategorySpellsScrolls,
		CategoryRunesGems,
		CategoryCraftingMaterials,
		CategoryQuestItems,
		CategoryGoldCurrency,
	}
}

// String returns the wire name of the category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is one of the known categories
func (c Category) IsValid() bool {
	_, ok := categorySlots[c]
	return ok
}

// IsStackable reports whether items of this category may stack
func (c Category) IsStackable() bool {
	switch c {
	case CategoryConsumables, CategoryRunesGems, CategoryCraftingMaterials, CategoryGoldCurrency:
		return true
	default:
		return false
	}
}

// IsEquippable reports whether items of this category occupy equipment slots
func (c Category) IsEquippable() bool {
	return len(categorySlots[c]) > 0
}

// RequiresIcon reports whether items of this category must carry an icon path
func (c Category) RequiresIcon() bool {
	switch c {
	case CategoryWeapons, CategoryArmor, CategoryShields, CategoryAccessories,
		CategoryConsumables, CategorySpellsScrolls:
		return true
	default:
		return false
	}
}

// ValidSlots returns the slots an item of this category may be placed in
func (c Category) ValidSlots() []Slot {
	slots := categorySlots[c]
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// AllowsSlot reports whether slot is valid for the category
func (c Category) AllowsSlot(slot Slot) bool {
	for _, s := range categorySlots[c] {
		if s == slot {
			return true
		}
	}
	return false
}

var categorySlots = map[Category][]Slot{
	CategoryWeapons:           {SlotMainHand, SlotOffHand},
	CategoryArmor:             {SlotHead, SlotChest, SlotHands, SlotFeet, SlotCloak},
	CategoryShields:           {SlotOffHand},
	CategoryAccessories:       {SlotRing1, SlotRing2, SlotAmulet, SlotBelt},
	CategoryConsumables:       {},
	CategorySpellsScrolls:     {},
	CategoryRunesGems:         {},
	CategoryCraftingMaterials: {},
	CategoryQuestItems:        {},
	CategoryGoldCurrency:      {},
}

// Singular names written by older clients
var categoryAliases = map[string]Category{
	"WEAPON":           CategoryWeapons,
	"SHIELD":           CategoryShields,
	"ACCESSORY":        CategoryAccessories,
	"CONSUMABLE":       CategoryConsumables,
	"SPELLSCROLL":      CategorySpellsScrolls,
	"RUNEGEM":          CategoryRunesGems,
	"CRAFTINGMATERIAL": CategoryCraftingMaterials,
	"QUESTITEM":        CategoryQuestItems,
	"CURRENCY":         CategoryGoldCurrency,
}

// ParseCategory resolves a category name. Matching ignores case and
// separators, so "Spells/Scrolls", "spells_scrolls" and the legacy
// "SPELL_SCROLL" all resolve to CategorySpellsScrolls.
func ParseCategory(s string) (Category, bool) {
	key := compact(s)
	for _, c := range AllCategories() {
		if compact(string(c)) == key {
			return c, true
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c, true
	}
	return "", false
}

// Subcategory refines a category
type Subcategory string

// Item subcategories, grouped by parent category
const (
	SubcategorySword    Subcategory = "SWORD"
	SubcategoryAxe      Subcategory = "AXE"
	SubcategoryCrossbow Subcategory = "CROSSBOW"
	SubcategoryRod      Subcategory = "ROD"
	SubcategoryDagger   Subcategory = "DAGGER"
	SubcategoryStaff    Subcategory = "STAFF"
	SubcategoryBow      Subcategory = "BOW"

	SubcategoryHelmet Subcategory = "HELMET"
	SubcategoryChest  Subcategory = "CHEST"
	SubcategoryGloves Subcategory = "GLOVES"
	SubcategoryBoots  Subcategory = "BOOTS"
	SubcategoryCloak  Subcategory = "CLOAK"
	SubcategoryRobes  Subcategory = "ROBES"
	SubcategoryShirt  Subcategory = "SHIRT"

	SubcategoryBuckler      Subcategory = "BUCKLER"
	SubcategoryTower        Subcategory = "TOWER"
	SubcategoryMagicBarrier Subcategory = "MAGIC_BARRIER"

	SubcategoryRing   Subcategory = "RING"
	SubcategoryAmulet Subcategory = "AMULET"
	SubcategoryBelt   Subcategory = "BELT"
	SubcategoryCharm  Subcategory = "CHARM"

	SubcategoryPotionHealth Subcategory = "POTION_HEALTH"
	SubcategoryPotionMana   Subcategory = "POTION_MANA"
	SubcategoryElixir       Subcategory = "ELIXIR"
	SubcategoryFood         Subcategory = "FOOD"

	SubcategorySpell  Subcategory = "SPELL"
	SubcategoryScroll Subcategory = "SCROLL"

	SubcategoryRune Subcategory = "RUNE"
	SubcategoryGem  Subcategory = "GEM"

	SubcategoryOre     Subcategory = "ORE"
	SubcategoryHerb    Subcategory = "HERB"
	SubcategoryEssence Subcategory = "ESSENCE"
	SubcategoryLeather Subcategory = "LEATHER"
	SubcategoryWood    Subcategory = "WOOD"

	SubcategoryKey      Subcategory = "KEY"
	SubcategoryMap      Subcategory = "MAP"
	SubcategoryArtifact Subcategory = "ARTIFACT"

	SubcategoryGold  Subcategory = "GOLD"
	SubcategoryToken Subcategory = "TOKEN"
	SubcategoryShard Subcategory = "SHARD"
)

var subcategoryParents = map[Subcategory]Category{
	SubcategorySword:    CategoryWeapons,
	SubcategoryAxe:      CategoryWeapons,
	SubcategoryCrossbow: CategoryWeapons,
	SubcategoryRod:      CategoryWeapons,
	SubcategoryDagger:   CategoryWeapons,
	SubcategoryStaff:    CategoryWeapons,
	SubcategoryBow:      CategoryWeapons,

	SubcategoryHelmet: CategoryArmor,
	SubcategoryChest:  CategoryArmor,
	SubcategoryGloves: CategoryArmor,
	SubcategoryBoots:  CategoryArmor,
	SubcategoryCloak:  CategoryArmor,
	SubcategoryRobes:  CategoryArmor,
	SubcategoryShirt:  CategoryArmor,

	SubcategoryBuckler:      CategoryShields,
	SubcategoryTower:        CategoryShields,
	SubcategoryMagicBarrier: CategoryShields,

	SubcategoryRing:   CategoryAccessories,
	SubcategoryAmulet: CategoryAccessories,
	SubcategoryBelt:   CategoryAccessories,
	SubcategoryCharm:  CategoryAccessories,

	SubcategoryPotionHealth: CategoryConsumables,
	SubcategoryPotionMana:   CategoryConsumables,
	SubcategoryElixir:       CategoryConsumables,
	SubcategoryFood:         CategoryConsumables,

	SubcategorySpell:  CategorySpellsScrolls,
	SubcategoryScroll: CategorySpellsScrolls,

	SubcategoryRune: CategoryRunesGems,
	SubcategoryGem:  CategoryRunesGems,

	SubcategoryOre:     CategoryCraftingMaterials,
	SubcategoryHerb:    CategoryCraftingMaterials,
	SubcategoryEssence: CategoryCraftingMaterials,
	SubcategoryLeather: CategoryCraftingMaterials,
	SubcategoryWood:    CategoryCraftingMaterials,

	SubcategoryKey:      CategoryQuestItems,
	SubcategoryMap:      CategoryQuestItems,
	SubcategoryArtifact: CategoryQuestItems,

	SubcategoryGold:  CategoryGoldCurrency,
	SubcategoryToken: CategoryGoldCurrency,
	SubcategoryShard: CategoryGoldCurrency,
}

// String returns the wire name of the subcategory
func (s Subcategory) String() string {
	return string(s)
}

// IsValid checks if the subcategory is known
func (s Subcategory) IsValid() bool {
	_, ok := subcategoryParents[s]
	return ok
}

// Category returns the parent category, or "" for unknown subcategories
func (s Subcategory) Category() Category {
	return subcategoryParents[s]
}

// ParseSubcategory resolves a subcategory name ignoring case and separators
func ParseSubcategory(s string) (Subcategory, bool) {
	key := compact(s)
	for sub := range subcategoryParents {
		if compact(string(sub)) == key {
			return sub, true
		}
	}
	return "", false
}

// Slot is an equipment attachment point on a hero
type Slot string

// Equipment slots
const (
	SlotMainHand Slot = "MAIN_HAND"
	SlotOffHand  Slot = "OFF_HAND"
	SlotHead     Slot = "HEAD"
	SlotChest    Slot = "CHEST"
	SlotHands    Slot = "HANDS"
	SlotFeet     Slot = "FEET"
	SlotCloak    Slot = "CLOAK"
	SlotRing1    Slot = "RING1"
	SlotRing2    Slot = "RING2"
	SlotAmulet   Slot = "AMULET"
	SlotBelt     Slot = "BELT"
)

// AllSlots returns every equipment slot
func AllSlots() []Slot {
	return []Slot{
		SlotMainHand,
		SlotOffHand,
		SlotHead,
		SlotChest,
		SlotHands,
		SlotFeet,
		SlotCloak,
		SlotRing1,
		SlotRing2,
		SlotAmulet,
		SlotBelt,
	}
}

// String returns the wire name of the slot
func (s Slot) String() string {
	return string(s)
}

// IsValid checks if the slot is known
func (s Slot) IsValid() bool {
	for _, slot := range AllSlots() {
		if slot == s {
			return true
		}
	}
	return false
}

// ParseSlot resolves a slot name ignoring case and separators
func ParseSlot(s string) (Slot, bool) {
	key := compact(s)
	for _, slot := range AllSlots() {
		if compact(string(slot)) == key {
			return slot, true
		}
	}
	return "", false
}

// Rarity grades how rare an item is
type Rarity string

// Item rarities
const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// AllRarities returns the rarities from most to least common
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// String returns the wire name of the rarity
func (r Rarity) String() string {
	return string(r)
}

// IsValid checks if the rarity is known
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// ParseRarity resolves a rarity name ignoring case
func ParseRarity(s string) (Rarity, bool) {
	key := compact(s)
	for _, r := range AllRarities() {
		if string(r) == key {
			return r, true
		}
	}
	return "", false
}

// compact upper-cases s and strips separators so enum names can be
// compared regardless of how a client spelled them.
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		switch r {
		case '_', '-', ' ', '/', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
