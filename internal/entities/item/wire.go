package item

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Wire keys of the remote item document
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldIcon         = "icon"
	FieldCategory     = "category"
	FieldSubcategory  = "subcategory"
	FieldRarity       = "rarity"
	FieldStackable    = "stackable"
	FieldQuantity     = "quantity"
	FieldAllowedSlots = "allowedSlots"
	FieldWeaponStats  = "weaponStats"

	fieldIconPath    = "iconPath"
	fieldDamage      = "damage"
	fieldElement     = "element"
	fieldAttackSpeed = "attackSpeed"
)

// ToMap encodes the item in the remote wire format. Lists are []any and
// nested objects map[string]any so the result converts to JSON and
// structpb without further work.
func (i *Item) ToMap() map[string]any {
	slots := make([]any, len(i.AllowedSlots))
	for idx, slot := range i.AllowedSlots {
		slots[idx] = string(slot)
	}

	m := map[string]any{
		FieldID:           i.ID,
		FieldName:         i.Name,
		FieldDescription:  i.Description,
		FieldIcon:         i.IconPath,
		FieldCategory:     string(i.Category),
		FieldSubcategory:  string(i.Subcategory),
		FieldRarity:       string(i.Rarity),
		FieldStackable:    i.Stackable,
		FieldQuantity:     i.Quantity,
		FieldAllowedSlots: slots,
	}
	if i.WeaponStats != nil {
		m[FieldWeaponStats] = map[string]any{
			fieldDamage:      i.WeaponStats.Damage,
			fieldElement:     i.WeaponStats.Element,
			fieldAttackSpeed: i.WeaponStats.AttackSpeed,
		}
	}
	return m
}

// FromMap decodes an item from the remote wire format.
//
// Missing or unknown rarity decodes as Common. Enum names match ignoring
// case, and legacy singular category names are accepted. Any other problem,
// including a decoded value that violates an item invariant, returns
// errors.CodeDataLoss wrapping a MalformedItemError.
func FromMap(m map[string]any) (*Item, error) {
	id := stringField(m, FieldID)
	if strings.TrimSpace(id) == "" {
		return nil, errors.MalformedItem(ReasonMissingID, "", nil, "item document has no id")
	}
	name := stringField(m, FieldName)
	if strings.TrimSpace(name) == "" {
		return nil, errors.MalformedItem(ReasonMissingName, id, nil, "item document has no name")
	}

	rawCategory := stringField(m, FieldCategory)
	if strings.TrimSpace(rawCategory) == "" {
		return nil, errors.MalformedItem(ReasonMissingCategory, id, nil, "item document has no category")
	}
	category, ok := ParseCategory(rawCategory)
	if !ok {
		return nil, errors.MalformedItem(ReasonUnknownCategory, id, nil, "unknown category %q", rawCategory)
	}

	var subcategory Subcategory
	if raw := stringField(m, FieldSubcategory); strings.TrimSpace(raw) != "" {
		subcategory, ok = ParseSubcategory(raw)
		if !ok {
			return nil, errors.MalformedItem(ReasonUnknownSubcategory, id, nil, "unknown subcategory %q", raw)
		}
	}

	rarity, ok := ParseRarity(stringField(m, FieldRarity))
	if !ok {
		rarity = RarityCommon
	}

	icon := stringField(m, FieldIcon)
	if icon == "" {
		icon = stringField(m, fieldIconPath)
	}

	stackable, err := boolField(m, FieldStackable)
	if err != nil {
		return nil, errors.MalformedItem(ReasonInvalidField, id, err, "bad %s", FieldStackable)
	}
	quantity, err := intField(m, FieldQuantity)
	if err != nil {
		return nil, errors.MalformedItem(ReasonInvalidField, id, err, "bad %s", FieldQuantity)
	}
	// an explicit value below 1 is malformed even though Params reads 0 as unset
	if _, present := m[FieldQuantity]; present && quantity < 1 {
		return nil, errors.MalformedItem(ReasonInvalidQuantity, id, nil,
			"quantity must be at least 1, got %v", m[FieldQuantity])
	}

	slots, err := slotsField(m)
	if err != nil {
		return nil, errors.MalformedItem(ReasonUnknownSlot, id, err, "bad %s", FieldAllowedSlots)
	}

	stats, err := weaponStatsField(m)
	if err != nil {
		return nil, errors.MalformedItem(ReasonInvalidField, id, err, "bad %s", FieldWeaponStats)
	}

	it, err := New(Params{
		ID:           id,
		Name:         name,
		Description:  stringField(m, FieldDescription),
		IconPath:     icon,
		Category:     category,
		Subcategory:  subcategory,
		Rarity:       rarity,
		Stackable:    stackable,
		Quantity:     quantity,
		AllowedSlots: slots,
		WeaponStats:  stats,
	})
	if err != nil {
		return nil, errors.MalformedItem(errors.ReasonOf(err), id, err, "decoded item violates invariants")
	}
	return it, nil
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func boolField(m map[string]any, key string) (bool, error) {
	switch v := m[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("expected bool, got %T", v)
	}
}

func intField(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, nil
	}
	return toInt(v)
}

// toInt accepts the numeric shapes produced by JSON, structpb and
// go-redis decoding.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("number %d out of range", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected whole number, got %v", n)
		}
		if n < math.MinInt || n >= math.MaxInt {
			return 0, fmt.Errorf("number %v out of range", n)
		}
		return int(n), nil
	case float32:
		return toInt(float64(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return toInt(i)
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// ToInt converts a decoded wire number to int
func ToInt(v any) (int, error) {
	return toInt(v)
}

func slotsField(m map[string]any) ([]Slot, error) {
	raw, ok := m[FieldAllowedSlots]
	if !ok || raw == nil {
		return nil, nil
	}

	var names []string
	switch list := raw.(type) {
	case []any:
		for _, v := range list {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("slot must be a string, got %T", v)
			}
			names = append(names, s)
		}
	case []string:
		names = list
	default:
		return nil, fmt.Errorf("expected list, got %T", raw)
	}

	slots := make([]Slot, 0, len(names))
	for _, name := range names {
		slot, ok := ParseSlot(name)
		if !ok {
			return nil, fmt.Errorf("unknown slot %q", name)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func weaponStatsField(m map[string]any) (*WeaponStats, error) {
	raw, ok := m[FieldWeaponStats]
	if !ok || raw == nil {
		return nil, nil
	}
	sm, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", raw)
	}

	stats := &WeaponStats{Element: stringField(sm, fieldElement)}
	if v, ok := sm[fieldDamage]; ok && v != nil {
		damage, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("damage: %w", err)
		}
		stats.Damage = damage
	}
	if v, ok := sm[fieldAttackSpeed]; ok && v != nil {
		speed, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("attackSpeed: %w", err)
		}
		stats.AttackSpeed = speed
	}
	return stats, nil
}
