package codex

import (
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// classWeapons is the starting weapon of each class
var classWeapons = map[hero.Class]item.Params{
	hero.ClassWarrior: {
		Name:        "Iron Longsword",
		Description: "A dependable blade for the front line.",
		IconPath:    "weapons/sword.png",
		Subcategory: item.SubcategorySword,
		WeaponStats: &item.WeaponStats{Damage: 24, Element: "SLASHING", AttackSpeed: 1.25},
	},
	hero.ClassRanger: {
		Name:        "Hunter's Crossbow",
		Description: "Fires heavy bolts from a safe distance.",
		IconPath:    "weapons/crossbow.png",
		Subcategory: item.SubcategoryCrossbow,
		WeaponStats: &item.WeaponStats{Damage: 22, Element: "PIERCING", AttackSpeed: 1.4},
	},
	hero.ClassMage: {
		Name:        "Apprentice Rod",
		Description: "Channels raw arcane energy.",
		IconPath:    "weapons/rod.png",
		Subcategory: item.SubcategoryRod,
		WeaponStats: &item.WeaponStats{Damage: 18, Element: "ARCANE", AttackSpeed: 1.15},
	},
	hero.ClassPriestess: {
		Name:        "Sacred Rod",
		Description: "Blessed wood that answers prayer.",
		IconPath:    "weapons/rod.png",
		Subcategory: item.SubcategoryRod,
		WeaponStats: &item.WeaponStats{Damage: 16, Element: "HOLY", AttackSpeed: 1.2},
	},
}

// starterItems holds one representative item per non-weapon category, in
// category order
var starterItems = []item.Params{
	{
		Name:        "Light Chestplate",
		Description: "Basic protection for the torso.",
		IconPath:    "armor/chest.png",
		Category:    item.CategoryArmor,
		Subcategory: item.SubcategoryChest,
	},
	{
		Name:        "Aegis Ward",
		Description: "A shimmering barrier held in the off hand.",
		IconPath:    "armor/helmet.png",
		Category:    item.CategoryShields,
		Subcategory: item.SubcategoryMagicBarrier,
	},
	{
		Name:        "Charm of Balance",
		Description: "Keeps its bearer steady.",
		IconPath:    "armor/gloves.png",
		Category:    item.CategoryAccessories,
		Subcategory: item.SubcategoryCharm,
	},
	{
		Name:        "Vitality Potion",
		Description: "Restores a portion of health.",
		IconPath:    "items/potion.png",
		Category:    item.CategoryConsumables,
		Subcategory: item.SubcategoryPotionHealth,
		Stackable:   true,
		Quantity:    5,
	},
	{
		Name:        "Scroll of Sparks",
		Description: "Unleashes a crackling burst when read.",
		IconPath:    "items/scroll.png",
		Category:    item.CategorySpellsScrolls,
		Subcategory: item.SubcategoryScroll,
		Rarity:      item.RarityRare,
	},
	{
		Name:        "Rune of Empowerment",
		Description: "Strengthens equipment it is bound to.",
		IconPath:    "items/rune.png",
		Category:    item.CategoryRunesGems,
		Subcategory: item.SubcategoryRune,
		Stackable:   true,
		Quantity:    5,
	},
	{
		Name:        "Bundle of Materials",
		Description: "Ore and herbs gathered on the road.",
		Category:    item.CategoryCraftingMaterials,
		Subcategory: item.SubcategoryOre,
		Stackable:   true,
		Quantity:    5,
	},
	{
		Name:        "Sigil of the First Quest",
		Description: "Proof of a journey begun.",
		Category:    item.CategoryQuestItems,
		Subcategory: item.SubcategoryArtifact,
		Rarity:      item.RarityRare,
	},
	{
		Name:        "Pouch of Gold",
		Description: "A few coins for the road.",
		Category:    item.CategoryGoldCurrency,
		Subcategory: item.SubcategoryGold,
		Stackable:   true,
		Quantity:    5,
	},
}

// ClassWeapon builds the starting weapon of class c for the hero with the
// given id
func ClassWeapon(heroID string, c hero.Class) (*item.Item, error) {
	params, ok := classWeapons[c]
	if !ok {
		return nil, errors.InvalidArgumentf("no starting weapon for class %q", c)
	}
	params.ID = heroID + "_weapon"
	params.Category = item.CategoryWeapons
	params.Rarity = item.RarityCommon
	params.AllowedSlots = []item.Slot{item.SlotMainHand}
	return item.New(params)
}

// DefaultLoadout builds the starting items of a new hero: the class weapon
// followed by one item from every other category
func DefaultLoadout(h *hero.Hero) ([]*item.Item, error) {
	weapon, err := ClassWeapon(h.ID, h.Class)
	if err != nil {
		return nil, err
	}

	items := make([]*item.Item, 0, len(starterItems)+1)
	items = append(items, weapon)
	for _, params := range starterItems {
		params.ID = h.ID + "_" + strings.ToLower(string(params.Category)) + "_01"
		it, err := item.New(params)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// hasMainHandWeapon reports whether any held weapon can go in the main hand
func hasMainHandWeapon(items []*item.Item) bool {
	for _, it := range items {
		if it.Category == item.CategoryWeapons && it.CanEquip(item.SlotMainHand) {
			return true
		}
	}
	return false
}
