package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
	"github.com/KirkDiggler/rpg-codex/internal/testutils/builders"
)

func TestAddItemStacksAndRefuses(t *testing.T) {
	p := builders.NewProfileBuilder().WithCapacity(2).WithItems(builders.Rune("rune-1", 2)).Build()

	require.NoError(t, addItem(p, builders.Rune("rune-1", 3)))
	held, ok := p.Inventory.Item("rune-1")
	require.True(t, ok)
	assert.Equal(t, 5, held.Quantity)

	require.NoError(t, addItem(p, builders.Sword("sword-1")))

	err := addItem(p, builders.Sword("sword-1"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeFailedPrecondition, errors.GetCode(err))
}

func TestAddItemDuplicateUnstackable(t *testing.T) {
	p := builders.NewProfileBuilder().WithItems(builders.Helmet("helm-1")).Build()

	err := addItem(p, builders.Helmet("helm-1"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, 1, p.Inventory.Len())
}

func TestRemoveItem(t *testing.T) {
	p := builders.NewProfileBuilder().WithItems(builders.Helmet("helm-1")).Build()

	require.NoError(t, removeItem(p, "helm-1"))
	assert.Equal(t, 0, p.Inventory.Len())

	err := removeItem(p, "helm-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestProfileFromState(t *testing.T) {
	p := builders.NewProfileBuilder().WithGold(12).WithItems(builders.Sword("sword-1")).Build()

	resp, err := structpb.NewStruct(map[string]any{
		codexv1alpha1.FieldStatus:  "loaded",
		codexv1alpha1.FieldProfile: p.ToMap(),
	})
	require.NoError(t, err)

	decoded, err := profileFromState(resp)
	require.NoError(t, err)
	assert.Equal(t, p.Hero.ID, decoded.Hero.ID)
	assert.Equal(t, 12, decoded.Inventory.Gold)
	assert.True(t, p.Inventory.Equal(decoded.Inventory))

	empty, err := structpb.NewStruct(map[string]any{codexv1alpha1.FieldStatus: "error"})
	require.NoError(t, err)
	_, err = profileFromState(empty)
	assert.True(t, errors.IsNotFound(err))
}
