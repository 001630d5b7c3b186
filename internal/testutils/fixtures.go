package testutils

import (
	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/testutils/builders"
)

const (
	// TestHeroID is the default hero id for test fixtures
	TestHeroID = "hero-test-001"

	// TestHeroName is the default hero name for test fixtures
	TestHeroName = "Zed"
)

// CreateTestHero creates a level 1 hero of class c
func CreateTestHero(heroID string, c hero.Class) *hero.Hero {
	return &hero.Hero{
		ID:          heroID,
		Name:        TestHeroName,
		Description: c.Description(),
		Level:       1,
		Class:       c,
		CardImage:   c.CardImage(),
		InventoryID: hero.DefaultInventoryID(heroID),
	}
}

// CreateTestProfile creates a mage profile holding n stackable runes
func CreateTestProfile(heroID string, n int) *hero.Profile {
	return builders.NewProfileBuilder().
		WithHeroID(heroID).
		WithRunes(n).
		Build()
}
