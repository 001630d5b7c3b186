package hero

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Wire keys of the remote profile document
const (
	FieldHeroID      = "heroId"
	FieldHeroName    = "heroName"
	FieldHeroClass   = "heroClass"
	FieldDescription = "description"
	FieldLevel       = "level"
	FieldCardImage   = "cardImage"
	FieldInventoryID = "inventoryId"
	FieldGold        = "gold"
	FieldCapacity    = "capacity"
	FieldItems       = "items"
)

// ToMap encodes the profile as a remote document
func (p *Profile) ToMap() map[string]any {
	items := p.Inventory.AllItems()
	encoded := make([]any, len(items))
	for idx, it := range items {
		encoded[idx] = it.ToMap()
	}

	return map[string]any{
		FieldHeroID:      p.Hero.ID,
		FieldHeroName:    p.Hero.Name,
		FieldHeroClass:   string(p.Hero.Class),
		FieldDescription: p.Hero.Description,
		FieldLevel:       p.Hero.Level,
		FieldCardImage:   p.Hero.CardImage,
		FieldInventoryID: p.Inventory.ID,
		FieldGold:        p.Inventory.Gold,
		FieldCapacity:    p.Inventory.Capacity,
		FieldItems:       encoded,
	}
}

// DecodeReport describes what was lost while decoding a remote inventory
type DecodeReport struct {
	// Malformed holds one error per item entry that failed to decode
	Malformed []error
	// Dropped counts decoded items the inventory refused
	Dropped int
}

// Truncated reports whether any remote item did not make it into the
// decoded inventory
func (r *DecodeReport) Truncated() bool {
	return len(r.Malformed) > 0 || r.Dropped > 0
}

// DecodeRemoteInventory builds an inventory from a remote profile document.
//
// The inventory id falls back to the local one, capacity falls back to the
// local capacity when absent or not positive, and absent gold decodes as 0.
// Item entries that fail to decode are skipped and recorded in the report.
// With a nil local, fallbacks come from the document's hero id and
// inventory.DefaultCapacity.
func DecodeRemoteInventory(doc map[string]any, local *inventory.Inventory) (*inventory.Inventory, *DecodeReport) {
	report := &DecodeReport{}

	heroID, _ := doc[FieldHeroID].(string)
	fallbackID := DefaultInventoryID(heroID)
	fallbackCapacity := inventory.DefaultCapacity
	if local != nil {
		heroID = local.HeroID
		fallbackID = local.ID
		fallbackCapacity = local.Capacity
	}

	id, _ := doc[FieldInventoryID].(string)
	if strings.TrimSpace(id) == "" {
		id = fallbackID
	}

	gold := 0
	if raw, ok := doc[FieldGold]; ok && raw != nil {
		if v, err := item.ToInt(raw); err == nil {
			gold = v
		} else {
			report.Malformed = append(report.Malformed, fmt.Errorf("%s: %w", FieldGold, err))
		}
	}

	capacity := fallbackCapacity
	if raw, ok := doc[FieldCapacity]; ok && raw != nil {
		if v, err := item.ToInt(raw); err == nil && v > 0 {
			capacity = v
		}
	}

	inv := inventory.New(id, heroID, gold, capacity)

	entries, _ := doc[FieldItems].([]any)
	decoded := make([]*item.Item, 0, len(entries))
	for idx, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			report.Malformed = append(report.Malformed, fmt.Errorf("items[%d]: expected object, got %T", idx, entry))
			continue
		}
		it, err := item.FromMap(m)
		if err != nil {
			report.Malformed = append(report.Malformed, err)
			continue
		}
		decoded = append(decoded, it)
	}
	report.Dropped = inv.ReplaceAll(decoded)

	return inv, report
}

// DecodeProfile builds a whole profile from a profile document, as sent by
// clients. The hero fields must describe a valid hero; a missing level
// decodes as 1. The inventory decodes like DecodeRemoteInventory without a
// local copy.
func DecodeProfile(doc map[string]any) (*Profile, *DecodeReport, error) {
	if doc == nil {
		return nil, nil, errors.InvalidArgument("profile document is required")
	}

	h := &Hero{Level: 1}
	h.ID, _ = doc[FieldHeroID].(string)
	h.Name, _ = doc[FieldHeroName].(string)
	h.Description, _ = doc[FieldDescription].(string)
	h.CardImage, _ = doc[FieldCardImage].(string)

	rawClass, _ := doc[FieldHeroClass].(string)
	class, ok := ParseClass(rawClass)
	if !ok {
		return nil, nil, errors.InvalidArgumentf("unknown hero class %q", rawClass)
	}
	h.Class = class

	if raw, ok := doc[FieldLevel]; ok && raw != nil {
		level, err := item.ToInt(raw)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid hero level")
		}
		h.Level = level
	}

	if err := h.Validate(); err != nil {
		return nil, nil, err
	}

	inv, report := DecodeRemoteInventory(doc, nil)
	h.InventoryID = inv.ID
	return NewProfile(h, inv), report, nil
}
