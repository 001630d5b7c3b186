package hero

import (
	"strings"
)

// Class is a hero class
type Class string

// Hero classes
const (
	ClassWarrior   Class = "WARRIOR"
	ClassMage      Class = "MAGE"
	ClassRanger    Class = "RANGER"
	ClassPriestess Class = "PRIESTESS"
)

// AllClasses returns every hero class
func AllClasses() []Class {
	return []Class{ClassWarrior, ClassMage, ClassRanger, ClassPriestess}
}

// String returns the wire name of the class
func (c Class) String() string {
	return string(c)
}

// IsValid checks if the class is known
func (c Class) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassRanger, ClassPriestess:
		return true
	default:
		return false
	}
}

// DisplayName returns the class name shown to players
func (c Class) DisplayName() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	case ClassRanger:
		return "Ranger"
	case ClassPriestess:
		return "Priestess"
	default:
		return string(c)
	}
}

// Description returns the lobby blurb for the class
func (c Class) Description() string {
	switch c {
	case ClassWarrior:
		return "A mighty close-quarters fighter."
	case ClassMage:
		return "Master of runes and magic."
	case ClassRanger:
		return "An agile archer with hidden tactics."
	case ClassPriestess:
		return "Healer and ally of the light."
	default:
		return ""
	}
}

// CardImage returns the default card asset for the class
func (c Class) CardImage() string {
	if !c.IsValid() {
		return ""
	}
	return "heroes/" + strings.ToLower(string(c)) + "_card.png"
}

var classAliases = map[string]Class{
	"HUNTER":             ClassRanger,
	"PRIEST":             ClassPriestess,
	"MYSTICALPRIESTESS":  ClassPriestess,
	"MYSTICAL_PRIESTESS": ClassPriestess,
}

// ParseClass resolves a class name ignoring case. Legacy names HUNTER,
// PRIEST and MYSTICAL_PRIESTESS are accepted.
func ParseClass(s string) (Class, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	if c := Class(key); c.IsValid() {
		return c, true
	}
	if c, ok := classAliases[key]; ok {
		return c, true
	}
	return "", false
}

// ClassMetadata describes the proficiencies of a class
type ClassMetadata struct {
	Class             Class
	Name              string
	WeaponProficiency string
	ArmorProficiency  string
}

// DefaultClassMetadata returns the reference metadata for c
func DefaultClassMetadata(c Class) ClassMetadata {
	meta := ClassMetadata{Class: c, Name: c.DisplayName()}
	switch c {
	case ClassWarrior:
		meta.WeaponProficiency = "Swords"
		meta.ArmorProficiency = "Plate Armor"
	case ClassRanger:
		meta.WeaponProficiency = "Crossbows"
		meta.ArmorProficiency = "Leather Armor"
	case ClassMage:
		meta.WeaponProficiency = "Magic Rods"
		meta.ArmorProficiency = "Mystic Robes"
	case ClassPriestess:
		meta.WeaponProficiency = "Sacred Rods"
		meta.ArmorProficiency = "Blessed Vestments"
	}
	return meta
}
