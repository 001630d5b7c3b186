package client

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
)

func printState(resp *structpb.Struct) {
	fields := resp.AsMap()
	fmt.Printf("Hero ID: %v\n", fields[hero.FieldHeroID])
	fmt.Printf("Status: %v\n", fields[codexv1alpha1.FieldStatus])
	if msg, ok := fields[codexv1alpha1.FieldMessage]; ok {
		fmt.Printf("Message: %v\n", msg)
	}

	doc, ok := fields[codexv1alpha1.FieldProfile].(map[string]any)
	if !ok {
		return
	}
	fmt.Printf("Name: %v (%v, level %v)\n", doc[hero.FieldHeroName], doc[hero.FieldHeroClass], doc[hero.FieldLevel])
	fmt.Printf("Inventory: %v\n", doc[hero.FieldInventoryID])
	fmt.Printf("Gold: %v\n", doc[hero.FieldGold])

	items, _ := doc[hero.FieldItems].([]any)
	fmt.Printf("Items (%d/%v):\n", len(items), doc[hero.FieldCapacity])
	for _, entry := range items {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("  - %v x%v [%v/%v, %v]\n",
			m[item.FieldName], m[item.FieldQuantity], m[item.FieldCategory], m[item.FieldSubcategory], m[item.FieldRarity])
	}
}
