package hero

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
)

// ProfileEntityType is the core.Entity type reported by profiles
const ProfileEntityType = "hero_profile"

// Profile pairs a hero with its inventory. It is persisted and synced as a
// unit.
type Profile struct {
	Hero      *Hero
	Inventory *inventory.Inventory
}

var _ core.Entity = (*Profile)(nil)

// NewProfile pairs h with inv
func NewProfile(h *Hero, inv *inventory.Inventory) *Profile {
	return &Profile{Hero: h, Inventory: inv}
}

// GetID returns the hero id
func (p *Profile) GetID() string {
	if p.Hero == nil {
		return ""
	}
	return p.Hero.ID
}

// GetType returns the entity type
func (p *Profile) GetType() string {
	return ProfileEntityType
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	return &Profile{
		Hero:      p.Hero.Clone(),
		Inventory: p.Inventory.Clone(),
	}
}

// Equal reports whether both profiles hold the same values
func (p *Profile) Equal(other *Profile) bool {
	if p == nil || other == nil {
		return p == other
	}
	if (p.Hero == nil) != (other.Hero == nil) {
		return false
	}
	if p.Hero != nil && *p.Hero != *other.Hero {
		return false
	}
	return p.Inventory.Equal(other.Inventory)
}
