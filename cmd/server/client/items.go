package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
)

var (
	itemID          string
	itemName        string
	itemCategory    string
	itemSubcategory string
	itemRarity      string
	itemIcon        string
	itemQuantity    int
	itemStackable   bool
)

var addItemCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Add an item to a hero's inventory",
	Long:  `Add an item to the hero's inventory. Stackable items with an id already held merge their quantities.`,
	RunE:  runAddItem,
}

var removeItemCmd = &cobra.Command{
	Use:   "remove-item",
	Short: "Remove an item from a hero's inventory",
	RunE:  runRemoveItem,
}

func init() {
	addItemCmd.Flags().StringVar(&itemID, "item-id", "", "Item ID (required)")
	addItemCmd.Flags().StringVar(&itemName, "item-name", "", "Item name (required)")
	addItemCmd.Flags().StringVar(&itemCategory, "category", "", "Item category (required)")
	addItemCmd.Flags().StringVar(&itemSubcategory, "subcategory", "", "Item subcategory, inferred when empty")
	addItemCmd.Flags().StringVar(&itemRarity, "rarity", "COMMON", "Item rarity")
	addItemCmd.Flags().StringVar(&itemIcon, "icon", "", "Item icon path")
	addItemCmd.Flags().IntVar(&itemQuantity, "quantity", 1, "Item quantity")
	addItemCmd.Flags().BoolVar(&itemStackable, "stackable", false, "Whether the item stacks")
	_ = addItemCmd.MarkFlagRequired("item-id")   // nolint:errcheck // safe to ignore in init
	_ = addItemCmd.MarkFlagRequired("item-name") // nolint:errcheck // safe to ignore in init
	_ = addItemCmd.MarkFlagRequired("category")  // nolint:errcheck // safe to ignore in init

	removeItemCmd.Flags().StringVar(&itemID, "item-id", "", "Item ID (required)")
	_ = removeItemCmd.MarkFlagRequired("item-id") // nolint:errcheck // safe to ignore in init
}

func runAddItem(_ *cobra.Command, _ []string) error {
	it, err := itemFromFlags()
	if err != nil {
		return err
	}
	return changeInventory(func(p *hero.Profile) error {
		return addItem(p, it)
	})
}

func runRemoveItem(_ *cobra.Command, _ []string) error {
	return changeInventory(func(p *hero.Profile) error {
		return removeItem(p, itemID)
	})
}

// changeInventory prepares the hero's profile, applies change and saves the
// result
func changeInventory(change func(*hero.Profile) error) error {
	client, cleanup, err := createCodexClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	prepared, err := prepareProfile(ctx, client, 1, "")
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	p, err := profileFromState(prepared)
	if err != nil {
		return err
	}
	if err := change(p); err != nil {
		return err
	}

	req, err := structpb.NewStruct(p.ToMap())
	if err != nil {
		return err
	}
	resp, err := client.UpdateInventory(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	fmt.Printf("✅ Inventory updated\n\n")
	printState(resp)
	return nil
}

func itemFromFlags() (*item.Item, error) {
	category, ok := item.ParseCategory(itemCategory)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown category %q", itemCategory)
	}
	rarity, ok := item.ParseRarity(itemRarity)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown rarity %q", itemRarity)
	}

	var subcategory item.Subcategory
	if strings.TrimSpace(itemSubcategory) != "" {
		subcategory, ok = item.ParseSubcategory(itemSubcategory)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown subcategory %q", itemSubcategory)
		}
	}

	return item.New(item.Params{
		ID:          itemID,
		Name:        itemName,
		IconPath:    itemIcon,
		Category:    category,
		Subcategory: subcategory,
		Rarity:      rarity,
		Stackable:   itemStackable,
		Quantity:    itemQuantity,
	})
}

// addItem adds it to the profile, stacking onto a held item with the same id
func addItem(p *hero.Profile, it *item.Item) error {
	if !p.Inventory.AddItem(it) {
		if p.Inventory.IsFull() {
			return errors.FailedPrecondition("inventory is full")
		}
		return errors.InvalidArgumentf("item %s is already held and cannot stack", it.ID)
	}
	return nil
}

func removeItem(p *hero.Profile, id string) error {
	if !p.Inventory.RemoveItem(id) {
		return errors.NotFoundf("item %s is not in the inventory", id)
	}
	return nil
}

// profileFromState decodes the profile carried by a state response
func profileFromState(resp *structpb.Struct) (*hero.Profile, error) {
	doc, ok := resp.AsMap()[codexv1alpha1.FieldProfile].(map[string]any)
	if !ok {
		return nil, errors.NotFound("response carries no profile")
	}

	p, report, err := hero.DecodeProfile(doc)
	if err != nil {
		return nil, err
	}
	if report.Truncated() {
		return nil, errors.DataLossf("profile has %d unreadable and %d dropped items",
			len(report.Malformed), report.Dropped)
	}
	return p, nil
}
