package item

// RarityInfo is the display metadata of a rarity
type RarityInfo struct {
	Rarity      Rarity
	DisplayName string
	ColorHex    string
}

// CategoryInfo is the display metadata of a category
type CategoryInfo struct {
	Category    Category
	DisplayName string
	Description string
	SlotType    string
}

// Slot types reported by CategoryInfo
const (
	SlotTypeEquipment = "EQUIPMENT"
	SlotTypeStack     = "STACK"
	SlotTypeBag       = "BAG"
)

// DefaultRarityInfo returns the display metadata for every rarity
func DefaultRarityInfo() []RarityInfo {
	return []RarityInfo{
		{Rarity: RarityCommon, DisplayName: "Common", ColorHex: "#BDBDBD"},
		{Rarity: RarityRare, DisplayName: "Rare", ColorHex: "#4FC3F7"},
		{Rarity: RarityEpic, DisplayName: "Epic", ColorHex: "#9575CD"},
		{Rarity: RarityLegendary, DisplayName: "Legendary", ColorHex: "#FFB300"},
	}
}

var categoryText = map[Category][2]string{
	CategoryWeapons:           {"Weapons", "Weapons and tools of battle."},
	CategoryArmor:             {"Armor", "Helmets, chestplates and protective gear."},
	CategoryShields:           {"Shields", "Shields and defensive wards."},
	CategoryAccessories:       {"Accessories", "Rings and amulets."},
	CategoryConsumables:       {"Consumables", "Potions and supplies."},
	CategorySpellsScrolls:     {"Spells & Scrolls", "Magic spells and scrolls."},
	CategoryRunesGems:         {"Runes & Gems", "Magic stones and runes."},
	CategoryCraftingMaterials: {"Crafting Materials", "Materials for crafting."},
	CategoryQuestItems:        {"Quest Items", "Items tied to quests."},
	CategoryGoldCurrency:      {"Gold & Currency", "Coin and trade goods."},
}

// DefaultCategoryInfo returns the display metadata for every category in
// display order
func DefaultCategoryInfo() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryText))
	for _, c := range AllCategories() {
		slotType := SlotTypeBag
		switch {
		case c.IsEquippable():
			slotType = SlotTypeEquipment
		case c.IsStackable():
			slotType = SlotTypeStack
		}
		text := categoryText[c]
		out = append(out, CategoryInfo{
			Category:    c,
			DisplayName: text[0],
			Description: text[1],
			SlotType:    slotType,
		})
	}
	return out
}
