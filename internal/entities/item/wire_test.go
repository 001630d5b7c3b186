package item_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

func sampleItems(t *testing.T) []*item.Item {
	t.Helper()

	params := []item.Params{
		{
			ID:          "warrior_weapon",
			Name:        "Iron Sword",
			IconPath:    "weapons/sword.png",
			Category:    item.CategoryWeapons,
			Subcategory: item.SubcategorySword,
			Rarity:      item.RarityEpic,
			WeaponStats: &item.WeaponStats{Damage: 24, Element: "SLASHING", AttackSpeed: 1.25},
		},
		{
			ID:           "ring",
			Name:         "Ring of Focus",
			IconPath:     "accessories/ring.png",
			Category:     item.CategoryAccessories,
			AllowedSlots: []item.Slot{item.SlotRing2, item.SlotRing1},
		},
		{
			ID:        "potion",
			Name:      "Vitality Potion",
			IconPath:  "items/potion.png",
			Category:  item.CategoryConsumables,
			Stackable: true,
			Quantity:  5,
		},
		{
			ID:       "sigil",
			Name:     "Sigil of the First Quest",
			Category: item.CategoryQuestItems,
			Rarity:   item.RarityRare,
		},
	}

	items := make([]*item.Item, 0, len(params))
	for _, p := range params {
		it, err := item.New(p)
		require.NoError(t, err)
		items = append(items, it)
	}
	return items
}

func TestRoundTrip(t *testing.T) {
	for _, it := range sampleItems(t) {
		t.Run(it.ID, func(t *testing.T) {
			decoded, err := item.FromMap(it.ToMap())
			require.NoError(t, err)
			assert.True(t, it.Equal(decoded), "expected %+v, got %+v", it, decoded)
		})
	}
}

func TestRoundTripThroughJSON(t *testing.T) {
	for _, it := range sampleItems(t) {
		t.Run(it.ID, func(t *testing.T) {
			raw, err := json.Marshal(it.ToMap())
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(raw, &doc))

			decoded, err := item.FromMap(doc)
			require.NoError(t, err)
			assert.True(t, it.Equal(decoded))
		})
	}
}

func TestToMapConvertsToStruct(t *testing.T) {
	for _, it := range sampleItems(t) {
		st, err := structpb.NewStruct(it.ToMap())
		require.NoError(t, err)

		decoded, err := item.FromMap(st.AsMap())
		require.NoError(t, err)
		assert.True(t, it.Equal(decoded))
	}
}

func TestFromMapDefaultsAndAliases(t *testing.T) {
	doc := map[string]any{
		"id":       "shield-7",
		"name":     "Oak Buckler",
		"icon":     "shields/buckler.png",
		"category": "shield",
		"rarity":   "MYTHIC",
	}

	it, err := item.FromMap(doc)
	require.NoError(t, err)
	assert.Equal(t, item.CategoryShields, it.Category)
	assert.Equal(t, item.SubcategoryBuckler, it.Subcategory)
	assert.Equal(t, item.RarityCommon, it.Rarity)
	assert.Equal(t, []item.Slot{item.SlotOffHand}, it.AllowedSlots)
	assert.Equal(t, 1, it.Quantity)
}

func TestFromMapAcceptsIconPathKey(t *testing.T) {
	it, err := item.FromMap(map[string]any{
		"id":       "scroll",
		"name":     "Scroll of Sparks",
		"iconPath": "items/scroll.png",
		"category": "spells_scrolls",
	})
	require.NoError(t, err)
	assert.Equal(t, "items/scroll.png", it.IconPath)
}

func TestFromMapMalformed(t *testing.T) {
	testCases := []struct {
		name   string
		doc    map[string]any
		reason errors.Reason
	}{
		{
			name:   "missing id",
			doc:    map[string]any{"name": "x", "category": "RUNES_GEMS"},
			reason: item.ReasonMissingID,
		},
		{
			name:   "missing name",
			doc:    map[string]any{"id": "x", "category": "RUNES_GEMS"},
			reason: item.ReasonMissingName,
		},
		{
			name:   "missing category",
			doc:    map[string]any{"id": "x", "name": "x"},
			reason: item.ReasonMissingCategory,
		},
		{
			name:   "unknown category",
			doc:    map[string]any{"id": "x", "name": "x", "category": "VEHICLES"},
			reason: item.ReasonUnknownCategory,
		},
		{
			name:   "unknown subcategory",
			doc:    map[string]any{"id": "x", "name": "x", "category": "RUNES_GEMS", "subcategory": "PEBBLE"},
			reason: item.ReasonUnknownSubcategory,
		},
		{
			name:   "unknown slot",
			doc:    map[string]any{"id": "x", "name": "x", "icon": "a.png", "category": "WEAPONS", "allowedSlots": []any{"TAIL"}},
			reason: item.ReasonUnknownSlot,
		},
		{
			name:   "stackable armor",
			doc:    map[string]any{"id": "x", "name": "x", "icon": "a.png", "category": "ARMOR", "stackable": true, "quantity": 2.0},
			reason: item.ReasonNotStackableCategory,
		},
		{
			name:   "fractional quantity",
			doc:    map[string]any{"id": "x", "name": "x", "category": "RUNES_GEMS", "stackable": true, "quantity": 2.5},
			reason: item.ReasonInvalidField,
		},
		{
			name:   "explicit zero quantity",
			doc:    map[string]any{"id": "rune-1", "name": "Fire Rune", "category": "RUNES_GEMS", "stackable": true, "quantity": 0.0},
			reason: item.ReasonInvalidQuantity,
		},
		{
			name:   "null quantity",
			doc:    map[string]any{"id": "rune-1", "name": "Fire Rune", "category": "RUNES_GEMS", "stackable": true, "quantity": nil},
			reason: item.ReasonInvalidQuantity,
		},
		{
			name:   "negative quantity",
			doc:    map[string]any{"id": "rune-1", "name": "Fire Rune", "category": "RUNES_GEMS", "stackable": true, "quantity": json.Number("-3")},
			reason: item.ReasonInvalidQuantity,
		},
		{
			name:   "quantity beyond int range",
			doc:    map[string]any{"id": "rune-1", "name": "Fire Rune", "category": "RUNES_GEMS", "stackable": true, "quantity": math.Pow(2, 70)},
			reason: item.ReasonInvalidField,
		},
		{
			name:   "damage beyond int range",
			doc:    map[string]any{"id": "x", "name": "x", "icon": "a.png", "category": "WEAPONS", "weaponStats": map[string]any{"damage": -math.Pow(2, 70)}},
			reason: item.ReasonInvalidField,
		},
		{
			name:   "weapon stats wrong shape",
			doc:    map[string]any{"id": "x", "name": "x", "icon": "a.png", "category": "WEAPONS", "weaponStats": "fast"},
			reason: item.ReasonInvalidField,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := item.FromMap(tc.doc)
			require.Error(t, err)
			assert.Nil(t, it)
			assert.True(t, errors.IsMalformedItem(err))
			assert.True(t, errors.IsDataLoss(err))
			assert.Equal(t, tc.reason, errors.ReasonOf(err))
		})
	}
}

func TestFromMapMissingQuantityDefaultsToOne(t *testing.T) {
	it, err := item.FromMap(map[string]any{
		"id":        "rune-1",
		"name":      "Fire Rune",
		"category":  "RUNES_GEMS",
		"stackable": true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, it.Quantity)
}

func TestToIntRange(t *testing.T) {
	testCases := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{name: "float whole", in: 42.0, want: 42},
		{name: "json number", in: json.Number("7"), want: 7},
		{name: "int64", in: int64(-5), want: -5},
		{name: "float above range", in: math.Pow(2, 70), wantErr: true},
		{name: "float below range", in: -math.Pow(2, 70), wantErr: true},
		{name: "float at two to the 63", in: math.Pow(2, 63), wantErr: true},
		{name: "json number above range", in: json.Number("99999999999999999999"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := item.ToInt(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
