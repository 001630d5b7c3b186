package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Replace the local inventory with the remote copy",
	RunE:  runRefresh,
}

func runRefresh(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCodexClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{hero.FieldHeroID: heroID})
	if err != nil {
		return err
	}

	resp, err := client.RefreshFromRemote(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to refresh profile: %w", err)
	}

	printState(resp)
	return nil
}
