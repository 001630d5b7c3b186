// Command scan-remote-inventories reports remote inventory documents whose
// items no longer decode
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/redis"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	collection := os.Getenv("CODEX_REMOTE_COLLECTION")
	if collection == "" {
		collection = hero_inventory.Collection
	}

	client, err := redis.NewClient(redisURL, nil)
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	repo, err := hero_inventory.NewRedis(&hero_inventory.RedisConfig{Client: client})
	if err != nil {
		log.Fatal("Failed to create remote repository:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Printf("Scanning %s for unreadable items...\n", collection)

	listed, err := repo.List(ctx, hero_inventory.ListInput{Collection: collection})
	if err != nil {
		log.Fatal("Failed to list documents:", err)
	}

	var damaged int
	for _, id := range listed.DocumentIDs {
		got, err := repo.Get(ctx, hero_inventory.GetInput{Collection: collection, DocumentID: id})
		switch {
		case errors.IsNotFound(err):
			fmt.Printf("⚠️  %s is listed but missing\n", id)
			damaged++
			continue
		case errors.IsDataLoss(err):
			fmt.Printf("❌ %s is not a JSON object: %v\n", id, err)
			damaged++
			continue
		case err != nil:
			log.Fatalf("Failed to read %s: %v", id, err)
		}

		_, report := hero.DecodeRemoteInventory(got.Document.Body, nil)
		if !report.Truncated() {
			continue
		}

		damaged++
		fmt.Printf("❌ %s (hero %v): %d unreadable, %d over capacity\n",
			id, got.Document.Body[hero.FieldHeroID], len(report.Malformed), report.Dropped)
		for _, itemErr := range report.Malformed {
			reason := errors.ReasonOf(itemErr)
			if reason == "" {
				reason = "unknown"
			}
			fmt.Printf("   - [%s] %v\n", reason, itemErr)
		}
	}

	fmt.Printf("\nChecked %d documents, %d need attention\n", len(listed.DocumentIDs), damaged)
	if damaged > 0 {
		os.Exit(1)
	}
}
