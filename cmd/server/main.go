// Package main is the entry point for the codex gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-codex/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Hero profile and inventory codex",
	Long:  `Codex keeps hero profiles and inventories in a local store and mirrors them to a remote copy.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (yaml, json or toml)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
