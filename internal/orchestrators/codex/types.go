package codex

import (
	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile"
)

// State is a step of a profile's lifecycle within one operation
type State string

// Profile lifecycle states, in the order an operation can pass them
const (
	StateUnloaded        State = "UNLOADED"
	StateLocalHit        State = "LOCAL_HIT"
	StateLocalMiss       State = "LOCAL_MISS"
	StateDefaultCreated  State = "DEFAULT_CREATED"
	StatePersisted       State = "PERSISTED"
	StateRemoteSynced    State = "REMOTE_SYNCED"
	StateRemoteRefreshed State = "REMOTE_REFRESHED"
)

// SyncStatus is the outcome of the remote push that follows a local write
type SyncStatus string

// Sync statuses
const (
	// SyncStatusSynced means the remote copy matches the local write
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusDeferred means the local write succeeded and the push did not
	SyncStatusDeferred SyncStatus = "deferred"
	// SyncStatusSkipped means no remote store is configured
	SyncStatusSkipped SyncStatus = "skipped"
)

// SyncResult describes the remote push of one operation
type SyncResult struct {
	Status      SyncStatus
	OperationID string
	// Err is the suppressed remote failure when Status is deferred
	Err error
}

// PrepareHeroProfileInput defines the request for preparing a profile
type PrepareHeroProfileInput struct {
	Hero *hero.Hero
	// CustomName replaces the hero name when not blank
	CustomName string
}

// PrepareHeroProfileOutput defines the response for preparing a profile
type PrepareHeroProfileOutput struct {
	Profile *hero.Profile
	// Created is true when no local profile existed
	Created bool
	Sync    SyncResult
	Trace   []State
}

// UpdateInventoryInput defines the request for saving a changed profile
type UpdateInventoryInput struct {
	Profile *hero.Profile
}

// UpdateInventoryOutput defines the response for saving a changed profile
type UpdateInventoryOutput struct {
	Profile *hero.Profile
	Sync    SyncResult
	Trace   []State
}

// RefreshFromRemoteInput defines the request for pulling the remote copy
type RefreshFromRemoteInput struct {
	HeroID string
}

// RefreshFromRemoteOutput defines the response for pulling the remote copy
type RefreshFromRemoteOutput struct {
	// Profile is nil when the hero has no local profile
	Profile *hero.Profile
	// Refreshed is true when a remote document replaced the local inventory
	Refreshed bool
	// Report is set when a remote document was decoded
	Report *hero.DecodeReport
	Trace  []State
}

// SeedReferenceDataInput defines the request for storing reference data
type SeedReferenceDataInput struct {
	// Class limits class metadata to one class; empty seeds every class
	Class hero.Class
}

// SeedReferenceDataOutput defines the response for storing reference data
type SeedReferenceDataOutput struct {
	Classes    int
	Rarities   int
	Categories int
}

// GetSyncStatusInput defines the request for reading sync bookkeeping
type GetSyncStatusInput struct {
	HeroID string
}

// GetSyncStatusOutput defines the response for reading sync bookkeeping
type GetSyncStatusOutput struct {
	State *profile.SyncState
}
