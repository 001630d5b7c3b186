package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream a hero's profile states",
	Long:  `Print every profile state the server reports for the hero until interrupted.`,
	RunE:  runWatch,
}

func runWatch(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCodexClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req, err := structpb.NewStruct(map[string]any{hero.FieldHeroID: heroID})
	if err != nil {
		return err
	}

	stream, err := client.WatchProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to watch profile: %w", err)
	}

	for {
		msg, err := stream.Recv()
		if err == io.EOF || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("watch ended: %w", err)
		}
		printState(msg)
		fmt.Println()
	}
}
