package hero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

func TestCreateInventoryDefaults(t *testing.T) {
	h := &hero.Hero{ID: "hero-1", Name: "Zed", Level: 1, Class: hero.ClassMage}

	inv := h.CreateInventory()
	assert.Equal(t, "hero-1-inventory", inv.ID)
	assert.Equal(t, "hero-1", inv.HeroID)
	assert.Equal(t, 0, inv.Gold)
	assert.Equal(t, inventory.DefaultCapacity, inv.Capacity)
	assert.Equal(t, 0, inv.Len())
}

func TestCreateInventoryOptions(t *testing.T) {
	h := &hero.Hero{ID: "hero-1", InventoryID: "bag-9"}

	inv := h.CreateInventory(hero.WithGold(15), hero.WithCapacity(40))
	assert.Equal(t, "bag-9", inv.ID)
	assert.Equal(t, 15, inv.Gold)
	assert.Equal(t, 40, inv.Capacity)

	inv = h.CreateInventory(hero.WithInventoryID("bag-10"))
	assert.Equal(t, "bag-10", inv.ID)
}

func TestHeroValidate(t *testing.T) {
	testCases := []struct {
		name    string
		hero    hero.Hero
		wantErr bool
	}{
		{
			name: "valid",
			hero: hero.Hero{ID: "h", Name: "Ayla", Level: 1, Class: hero.ClassRanger},
		},
		{
			name:    "missing id",
			hero:    hero.Hero{Name: "Ayla", Level: 1, Class: hero.ClassRanger},
			wantErr: true,
		},
		{
			name:    "unknown class",
			hero:    hero.Hero{ID: "h", Name: "Ayla", Level: 1, Class: "BARD"},
			wantErr: true,
		},
		{
			name:    "zero level",
			hero:    hero.Hero{ID: "h", Name: "Ayla", Class: hero.ClassMage},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.hero.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestParseClass(t *testing.T) {
	testCases := map[string]hero.Class{
		"warrior":            hero.ClassWarrior,
		"MAGE":               hero.ClassMage,
		"hunter":             hero.ClassRanger,
		"Priest":             hero.ClassPriestess,
		"MYSTICAL_PRIESTESS": hero.ClassPriestess,
		"mystical priestess": hero.ClassPriestess,
	}
	for input, want := range testCases {
		got, ok := hero.ParseClass(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := hero.ParseClass("bard")
	assert.False(t, ok)
}

func TestClassMetadata(t *testing.T) {
	for _, c := range hero.AllClasses() {
		meta := hero.DefaultClassMetadata(c)
		assert.Equal(t, c, meta.Class)
		assert.NotEmpty(t, meta.Name)
		assert.NotEmpty(t, meta.WeaponProficiency)
		assert.NotEmpty(t, meta.ArmorProficiency)
		assert.NotEmpty(t, c.Description())
	}
	assert.Equal(t, "heroes/priestess_card.png", hero.ClassPriestess.CardImage())
}

func newRune(t *testing.T, id string, quantity int) *item.Item {
	t.Helper()
	it, err := item.New(item.Params{
		ID:        id,
		Name:      "Rune " + id,
		Category:  item.CategoryRunesGems,
		Stackable: true,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return it
}

func TestProfileCloneAndEqual(t *testing.T) {
	h := &hero.Hero{ID: "hero-1", Name: "Zed", Level: 3, Class: hero.ClassMage}
	inv := h.CreateInventory(hero.WithGold(10))
	require.True(t, inv.AddItem(newRune(t, "r1", 2)))
	p := hero.NewProfile(h, inv)

	cp := p.Clone()
	require.True(t, p.Equal(cp))

	cp.Hero.Name = "Other"
	assert.False(t, p.Equal(cp))
	assert.Equal(t, "Zed", p.Hero.Name)

	cp = p.Clone()
	cp.Inventory.Gold = 11
	assert.False(t, p.Equal(cp))

	assert.Equal(t, "hero-1", p.GetID())
	assert.Equal(t, hero.ProfileEntityType, p.GetType())
}
