package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
)

var (
	heroLevel  int
	customName string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Load or create a hero profile",
	Long:  `Load the hero's stored profile, or create it with the class starter loadout.`,
	RunE:  runPrepare,
}

func init() {
	prepareCmd.Flags().IntVar(&heroLevel, "level", 1, "Hero level")
	prepareCmd.Flags().StringVar(&customName, "custom-name", "", "Name chosen by the player")
}

func runPrepare(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCodexClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := prepareProfile(ctx, client, heroLevel, customName)
	if err != nil {
		return fmt.Errorf("failed to prepare profile: %w", err)
	}

	fmt.Printf("✅ Profile ready\n\n")
	printState(resp)
	return nil
}

// prepareProfile sends the shared hero flags as a prepare request
func prepareProfile(
	ctx context.Context,
	client codexv1alpha1.CodexServiceClient,
	level int,
	custom string,
) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{
		hero.FieldHeroID:              heroID,
		hero.FieldHeroName:            heroName,
		hero.FieldHeroClass:           heroClass,
		hero.FieldLevel:               level,
		codexv1alpha1.FieldCustomName: custom,
	})
	if err != nil {
		return nil, err
	}
	return client.PrepareHeroProfile(ctx, req)
}
