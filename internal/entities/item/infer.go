package item

import (
	"strings"
)

// keywordRule maps a lower-cased keyword to a subcategory. Rules are
// evaluated in order, so "crossbow" must precede "bow".
type keywordRule struct {
	keyword     string
	subcategory Subcategory
	nameOnly    bool
}

type inferenceRules struct {
	rules    []keywordRule
	fallback Subcategory
}

// subcategoryKeywords is a heuristic. Callers that know the subcategory
// should always pass it explicitly.
var subcategoryKeywords = map[Category]inferenceRules{
	CategoryWeapons: {
		rules: []keywordRule{
			{keyword: "crossbow", subcategory: SubcategoryCrossbow},
			{keyword: "rod", subcategory: SubcategoryRod},
			{keyword: "staff", subcategory: SubcategoryStaff},
			{keyword: "dagger", subcategory: SubcategoryDagger},
			{keyword: "axe", subcategory: SubcategoryAxe},
			{keyword: "bow", subcategory: SubcategoryBow},
		},
		fallback: SubcategorySword,
	},
	CategoryArmor: {
		rules: []keywordRule{
			{keyword: "helm", subcategory: SubcategoryHelmet},
			{keyword: "glove", subcategory: SubcategoryGloves},
			{keyword: "boot", subcategory: SubcategoryBoots},
			{keyword: "cloak", subcategory: SubcategoryCloak},
			{keyword: "robe", subcategory: SubcategoryRobes},
			{keyword: "shirt", subcategory: SubcategoryShirt},
		},
		fallback: SubcategoryChest,
	},
	CategoryShields: {
		rules: []keywordRule{
			{keyword: "buckler", subcategory: SubcategoryBuckler, nameOnly: true},
			{keyword: "tower", subcategory: SubcategoryTower, nameOnly: true},
		},
		fallback: SubcategoryMagicBarrier,
	},
	CategoryAccessories: {
		rules: []keywordRule{
			{keyword: "ring", subcategory: SubcategoryRing, nameOnly: true},
			{keyword: "amulet", subcategory: SubcategoryAmulet, nameOnly: true},
			{keyword: "talisman", subcategory: SubcategoryAmulet, nameOnly: true},
			{keyword: "belt", subcategory: SubcategoryBelt, nameOnly: true},
		},
		fallback: SubcategoryCharm,
	},
	CategoryConsumables: {
		rules: []keywordRule{
			{keyword: "mana", subcategory: SubcategoryPotionMana, nameOnly: true},
			{keyword: "potion", subcategory: SubcategoryPotionHealth, nameOnly: true},
			{keyword: "elixir", subcategory: SubcategoryElixir, nameOnly: true},
		},
		fallback: SubcategoryFood,
	},
	CategorySpellsScrolls: {
		rules: []keywordRule{
			{keyword: "scroll", subcategory: SubcategoryScroll, nameOnly: true},
		},
		fallback: SubcategorySpell,
	},
	CategoryRunesGems: {
		rules: []keywordRule{
			{keyword: "gem", subcategory: SubcategoryGem, nameOnly: true},
		},
		fallback: SubcategoryRune,
	},
	CategoryCraftingMaterials: {
		rules: []keywordRule{
			{keyword: "ore", subcategory: SubcategoryOre, nameOnly: true},
			{keyword: "herb", subcategory: SubcategoryHerb, nameOnly: true},
			{keyword: "leather", subcategory: SubcategoryLeather, nameOnly: true},
			{keyword: "wood", subcategory: SubcategoryWood, nameOnly: true},
		},
		fallback: SubcategoryEssence,
	},
	CategoryQuestItems: {
		rules: []keywordRule{
			{keyword: "key", subcategory: SubcategoryKey, nameOnly: true},
			{keyword: "map", subcategory: SubcategoryMap, nameOnly: true},
		},
		fallback: SubcategoryArtifact,
	},
	CategoryGoldCurrency: {
		rules: []keywordRule{
			{keyword: "token", subcategory: SubcategoryToken, nameOnly: true},
			{keyword: "shard", subcategory: SubcategoryShard, nameOnly: true},
		},
		fallback: SubcategoryGold,
	},
}

// InferSubcategory picks a subcategory for category from keywords in the
// icon path and name. It returns "" for unknown categories.
func InferSubcategory(category Category, iconPath, name string) Subcategory {
	table, ok := subcategoryKeywords[category]
	if !ok {
		return ""
	}

	icon := strings.ToLower(iconPath)
	lowerName := strings.ToLower(name)
	for _, rule := range table.rules {
		if strings.Contains(lowerName, rule.keyword) {
			return rule.subcategory
		}
		if !rule.nameOnly && strings.Contains(icon, rule.keyword) {
			return rule.subcategory
		}
	}
	return table.fallback
}

// DefaultSlots returns the slots an item gets when the caller does not
// supply any.
func DefaultSlots(category Category, subcategory Subcategory) []Slot {
	switch category {
	case CategoryWeapons:
		if subcategory == SubcategoryDagger {
			return []Slot{SlotMainHand, SlotOffHand}
		}
		return []Slot{SlotMainHand}
	case CategoryArmor:
		switch subcategory {
		case SubcategoryHelmet:
			return []Slot{SlotHead}
		case SubcategoryGloves:
			return []Slot{SlotHands}
		case SubcategoryBoots:
			return []Slot{SlotFeet}
		case SubcategoryCloak:
			return []Slot{SlotCloak}
		default:
			return []Slot{SlotChest}
		}
	case CategoryShields:
		return []Slot{SlotOffHand}
	case CategoryAccessories:
		switch subcategory {
		case SubcategoryRing:
			return []Slot{SlotRing1, SlotRing2}
		case SubcategoryAmulet, SubcategoryCharm:
			return []Slot{SlotAmulet}
		case SubcategoryBelt:
			return []Slot{SlotBelt}
		default:
			return []Slot{}
		}
	default:
		return []Slot{}
	}
}
