// Package client provides commands that call a running codex server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Hero identity shared by every command
	heroID    string
	heroName  string
	heroClass string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the codex server",
	Long:  `Client commands prepare, change and watch hero profiles through real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&heroID, "hero-id", "", "Hero ID (required)")
	ClientCmd.PersistentFlags().StringVar(&heroName, "name", "", "Hero name")
	ClientCmd.PersistentFlags().StringVar(&heroClass, "class", "WARRIOR", "Hero class (WARRIOR, MAGE, RANGER, PRIESTESS)")
	_ = ClientCmd.MarkPersistentFlagRequired("hero-id") // nolint:errcheck // safe to ignore in init

	ClientCmd.AddCommand(prepareCmd)
	ClientCmd.AddCommand(refreshCmd)
	ClientCmd.AddCommand(addItemCmd)
	ClientCmd.AddCommand(removeItemCmd)
	ClientCmd.AddCommand(watchCmd)
}

// createCodexClient creates a codex service client
func createCodexClient() (codexv1alpha1.CodexServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return codexv1alpha1.NewCodexServiceClient(conn), cleanup, nil
}
