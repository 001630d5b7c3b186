// Package profile provides the local, durable store for hero profiles and
// the reference data shown alongside them
package profile

//go:generate mockgen -destination=mock/mock_repository.go -package=profilemock github.com/KirkDiggler/rpg-codex/internal/repositories/profile Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
)

// Repository defines the interface for local profile persistence
type Repository interface {
	// GetHeroWithInventory loads a hero and its inventory
	// Returns errors.InvalidArgument for an empty hero ID
	// Returns errors.NotFound if the hero has no local profile
	// Returns errors.DataLoss if stored rows no longer decode
	// Returns errors.Internal for storage failures
	GetHeroWithInventory(ctx context.Context, input GetHeroWithInventoryInput) (*GetHeroWithInventoryOutput, error)

	// UpsertHeroProfile writes the hero row, the inventory row and the full
	// item list in one transaction. Previously stored items are replaced.
	// Returns errors.InvalidArgument for incomplete profiles
	// Returns errors.Internal for storage failures
	UpsertHeroProfile(ctx context.Context, input UpsertHeroProfileInput) (*UpsertHeroProfileOutput, error)

	// UpsertHeroClassMetadata stores class proficiency metadata
	// Returns errors.Internal for storage failures
	UpsertHeroClassMetadata(ctx context.Context, input UpsertHeroClassMetadataInput) (*UpsertHeroClassMetadataOutput, error)

	// UpsertRarities stores rarity display metadata
	// Returns errors.Internal for storage failures
	UpsertRarities(ctx context.Context, input UpsertRaritiesInput) (*UpsertRaritiesOutput, error)

	// UpsertItemCategories stores category display metadata
	// Returns errors.Internal for storage failures
	UpsertItemCategories(ctx context.Context, input UpsertItemCategoriesInput) (*UpsertItemCategoriesOutput, error)

	// RecordSyncState records the outcome of the latest write for a hero
	// Returns errors.InvalidArgument for an empty hero ID
	// Returns errors.FailedPrecondition if the hero has no local profile
	// Returns errors.Internal for storage failures
	RecordSyncState(ctx context.Context, input RecordSyncStateInput) (*RecordSyncStateOutput, error)

	// GetSyncState returns the sync bookkeeping for a hero
	// Returns errors.InvalidArgument for an empty hero ID
	// Returns errors.NotFound if nothing was recorded
	// Returns errors.Internal for storage failures
	GetSyncState(ctx context.Context, input GetSyncStateInput) (*GetSyncStateOutput, error)
}

// SyncState is the local record of whether a hero's latest write reached
// the remote store
type SyncState struct {
	HeroID           string
	LocalPersistedAt time.Time
	// RemoteSyncedAt is nil until a push succeeds
	RemoteSyncedAt  *time.Time
	LastRemoteError string
	LastOperationID string
}

// Pending reports whether the latest local write has not reached the remote
func (s *SyncState) Pending() bool {
	return s.RemoteSyncedAt == nil || s.RemoteSyncedAt.Before(s.LocalPersistedAt)
}

// GetHeroWithInventoryInput defines the input for loading a profile
type GetHeroWithInventoryInput struct {
	HeroID string
}

// GetHeroWithInventoryOutput defines the output for loading a profile
type GetHeroWithInventoryOutput struct {
	Profile *hero.Profile
}

// UpsertHeroProfileInput defines the input for writing a profile
type UpsertHeroProfileInput struct {
	Profile *hero.Profile
}

// UpsertHeroProfileOutput defines the output for writing a profile
type UpsertHeroProfileOutput struct{}

// UpsertHeroClassMetadataInput defines the input for writing class metadata
type UpsertHeroClassMetadataInput struct {
	Metadata []hero.ClassMetadata
}

// UpsertHeroClassMetadataOutput defines the output for writing class metadata
type UpsertHeroClassMetadataOutput struct{}

// UpsertRaritiesInput defines the input for writing rarity metadata
type UpsertRaritiesInput struct {
	Rarities []item.RarityInfo
}

// UpsertRaritiesOutput defines the output for writing rarity metadata
type UpsertRaritiesOutput struct{}

// UpsertItemCategoriesInput defines the input for writing category metadata
type UpsertItemCategoriesInput struct {
	Categories []item.CategoryInfo
}

// UpsertItemCategoriesOutput defines the output for writing category metadata
type UpsertItemCategoriesOutput struct{}

// RecordSyncStateInput defines the input for recording sync state.
// A nil RemoteSyncedAt keeps the previously recorded value.
type RecordSyncStateInput struct {
	State SyncState
}

// RecordSyncStateOutput defines the output for recording sync state
type RecordSyncStateOutput struct {
	State *SyncState
}

// GetSyncStateInput defines the input for reading sync state
type GetSyncStateInput struct {
	HeroID string
}

// GetSyncStateOutput defines the output for reading sync state
type GetSyncStateOutput struct {
	State *SyncState
}
