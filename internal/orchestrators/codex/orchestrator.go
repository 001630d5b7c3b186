// Package codex implements the codex orchestrator, which keeps hero profiles
// consistent between the local store and the remote document store
package codex

//go:generate mockgen -destination=mock/mock_service.go -package=codexmock github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/metrics"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile"
)

// DefaultRemoteTimeout bounds a remote push or query when Config leaves
// RemoteTimeout unset
const DefaultRemoteTimeout = 5 * time.Second

// Operation names used in logs and metrics
const (
	opPrepare = "prepare_hero_profile"
	opUpdate  = "update_inventory"
	opRefresh = "refresh_from_remote"
	opSeed    = "seed_reference_data"
)

// Service defines the interface for profile consistency operations
type Service interface {
	// PrepareHeroProfile loads the hero's local profile, creating the default
	// one on first use, then persists it locally and pushes it remotely.
	// Returns errors.InvalidArgument for an invalid hero
	// Returns a LocalStoreError when the local store fails
	PrepareHeroProfile(ctx context.Context, input *PrepareHeroProfileInput) (*PrepareHeroProfileOutput, error)

	// UpdateInventory persists a changed profile locally, then pushes it remotely.
	// Returns errors.InvalidArgument for an incomplete profile
	// Returns a LocalStoreError when the local store fails
	UpdateInventory(ctx context.Context, input *UpdateInventoryInput) (*UpdateInventoryOutput, error)

	// RefreshFromRemote replaces the local inventory with the remote copy when
	// one exists and re-persists the result locally.
	// Returns errors.InvalidArgument for an empty hero ID
	// Returns a LocalStoreError when the local store fails
	RefreshFromRemote(ctx context.Context, input *RefreshFromRemoteInput) (*RefreshFromRemoteOutput, error)

	// SeedReferenceData stores class, rarity and category metadata locally
	// Returns errors.InvalidArgument for an unknown class
	// Returns a LocalStoreError when the local store fails
	SeedReferenceData(ctx context.Context, input *SeedReferenceDataInput) (*SeedReferenceDataOutput, error)

	// GetSyncStatus returns whether the hero's latest write reached the remote
	// Returns errors.NotFound when nothing was recorded for the hero
	GetSyncStatus(ctx context.Context, input *GetSyncStatusInput) (*GetSyncStatusOutput, error)
}

// Config holds the dependencies for the codex orchestrator
type Config struct {
	ProfileRepo profile.Repository
	// RemoteRepo is optional; without it pushes are skipped
	RemoteRepo hero_inventory.Repository
	// EventBus is optional; profile events are published when set
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock

	Collection           string
	RemoteTimeout        time.Duration
	EnsureMainHandWeapon bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if c.RemoteTimeout < 0 {
		vb.Field("RemoteTimeout", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	profileRepo profile.Repository
	remoteRepo  hero_inventory.Repository
	eventBus    events.EventBus
	idGen       idgen.Generator
	clock       clock.Clock

	collection           string
	remoteTimeout        time.Duration
	ensureMainHandWeapon bool
}

// NewOrchestrator creates a new codex orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		profileRepo:          cfg.ProfileRepo,
		remoteRepo:           cfg.RemoteRepo,
		eventBus:             cfg.EventBus,
		idGen:                cfg.IDGenerator,
		clock:                cfg.Clock,
		collection:           cfg.Collection,
		remoteTimeout:        cfg.RemoteTimeout,
		ensureMainHandWeapon: cfg.EnsureMainHandWeapon,
	}
	if o.idGen == nil {
		o.idGen = idgen.NewUUID("op")
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.collection == "" {
		o.collection = hero_inventory.Collection
	}
	if o.remoteTimeout == 0 {
		o.remoteTimeout = DefaultRemoteTimeout
	}

	return o, nil
}

func (o *orchestrator) PrepareHeroProfile(
	ctx context.Context,
	input *PrepareHeroProfileInput,
) (_ *PrepareHeroProfileOutput, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOperation(opPrepare, start, err) }()

	if input == nil || input.Hero == nil {
		return nil, errors.InvalidArgument("hero is required")
	}

	resolved := input.Hero.Clone()
	if name := strings.TrimSpace(input.CustomName); name != "" {
		resolved.Name = name
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	trace := []State{StateUnloaded}
	created := false

	var p *hero.Profile
	existing, err := o.profileRepo.GetHeroWithInventory(ctx, profile.GetHeroWithInventoryInput{HeroID: resolved.ID})
	switch {
	case err == nil:
		trace = append(trace, StateLocalHit)
		p = existing.Profile
		if p.Hero.Name != resolved.Name {
			// the stored inventory stays bound to the hero
			resolved.InventoryID = p.Inventory.ID
			p.Hero = resolved
		}
	case errors.IsNotFound(err):
		trace = append(trace, StateLocalMiss)
		p, err = o.createDefaultProfile(resolved)
		if err != nil {
			return nil, err
		}
		trace = append(trace, StateDefaultCreated)
		created = true
	default:
		return nil, errors.LocalStore("load", resolved.ID, err)
	}

	if o.ensureMainHandWeapon {
		if err := o.ensureWeapon(ctx, p); err != nil {
			return nil, err
		}
	}

	opID := o.idGen.Generate()
	if err := o.persistLocal(ctx, opID, p); err != nil {
		return nil, err
	}
	trace = append(trace, StatePersisted)

	sync := o.syncRemote(ctx, opID, p)
	if sync.Status == SyncStatusSynced {
		trace = append(trace, StateRemoteSynced)
	}

	slog.InfoContext(ctx, "Prepared hero profile",
		"hero_id", p.Hero.ID,
		"operation_id", opID,
		"created", created,
		"items", p.Inventory.Len(),
		"sync", sync.Status)

	return &PrepareHeroProfileOutput{
		Profile: p.Clone(),
		Created: created,
		Sync:    sync,
		Trace:   trace,
	}, nil
}

func (o *orchestrator) UpdateInventory(
	ctx context.Context,
	input *UpdateInventoryInput,
) (_ *UpdateInventoryOutput, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOperation(opUpdate, start, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateProfile(input.Profile); err != nil {
		return nil, err
	}

	p := input.Profile.Clone()
	p.Hero.InventoryID = p.Inventory.ID

	trace := []State{StateUnloaded}
	opID := o.idGen.Generate()
	if err := o.persistLocal(ctx, opID, p); err != nil {
		return nil, err
	}
	trace = append(trace, StatePersisted)

	sync := o.syncRemote(ctx, opID, p)
	if sync.Status == SyncStatusSynced {
		trace = append(trace, StateRemoteSynced)
	}

	slog.InfoContext(ctx, "Updated inventory",
		"hero_id", p.Hero.ID,
		"inventory_id", p.Inventory.ID,
		"operation_id", opID,
		"items", p.Inventory.Len(),
		"gold", p.Inventory.Gold,
		"sync", sync.Status)

	return &UpdateInventoryOutput{
		Profile: p.Clone(),
		Sync:    sync,
		Trace:   trace,
	}, nil
}

func (o *orchestrator) RefreshFromRemote(
	ctx context.Context,
	input *RefreshFromRemoteInput,
) (_ *RefreshFromRemoteOutput, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOperation(opRefresh, start, err) }()

	if input == nil || input.HeroID == "" {
		return nil, errors.InvalidArgument("hero ID is required")
	}

	trace := []State{StateUnloaded}
	existing, err := o.profileRepo.GetHeroWithInventory(ctx, profile.GetHeroWithInventoryInput{HeroID: input.HeroID})
	if errors.IsNotFound(err) {
		trace = append(trace, StateLocalMiss)
		return &RefreshFromRemoteOutput{Trace: trace}, nil
	}
	if err != nil {
		return nil, errors.LocalStore("load", input.HeroID, err)
	}
	trace = append(trace, StateLocalHit)

	local := existing.Profile
	merged := local
	out := &RefreshFromRemoteOutput{}

	doc, err := o.fetchRemote(ctx, input.HeroID)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "Remote refresh failed, keeping local profile",
			"hero_id", input.HeroID,
			"error", err)
	case doc == nil:
		slog.DebugContext(ctx, "No remote profile document",
			"hero_id", input.HeroID)
	default:
		inv, report := hero.DecodeRemoteInventory(doc.Body, local.Inventory)
		o.logDecodeReport(ctx, input.HeroID, doc.ID, report)

		h := local.Hero.Clone()
		h.InventoryID = inv.ID
		merged = hero.NewProfile(h, inv)
		out.Refreshed = true
		out.Report = report
	}

	opID := o.idGen.Generate()
	if err := o.persistLocal(ctx, opID, merged); err != nil {
		return nil, err
	}
	trace = append(trace, StatePersisted)
	if out.Refreshed {
		trace = append(trace, StateRemoteRefreshed)
		o.publish(ctx, hero.EventProfileRefreshed, merged)
	}

	slog.InfoContext(ctx, "Refreshed hero profile",
		"hero_id", input.HeroID,
		"operation_id", opID,
		"refreshed", out.Refreshed,
		"items", merged.Inventory.Len())

	out.Profile = merged.Clone()
	out.Trace = trace
	return out, nil
}

func (o *orchestrator) SeedReferenceData(
	ctx context.Context,
	input *SeedReferenceDataInput,
) (_ *SeedReferenceDataOutput, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOperation(opSeed, start, err) }()

	classes := hero.AllClasses()
	if input != nil && input.Class != "" {
		if !input.Class.IsValid() {
			return nil, errors.InvalidArgumentf("unknown class %q", input.Class)
		}
		classes = []hero.Class{input.Class}
	}

	classMeta := make([]hero.ClassMetadata, len(classes))
	for idx, c := range classes {
		classMeta[idx] = hero.DefaultClassMetadata(c)
	}
	rarities := item.DefaultRarityInfo()
	categories := item.DefaultCategoryInfo()

	if _, err := o.profileRepo.UpsertHeroClassMetadata(ctx, profile.UpsertHeroClassMetadataInput{
		Metadata: classMeta,
	}); err != nil {
		return nil, errors.LocalStore("seed classes", "", err)
	}
	if _, err := o.profileRepo.UpsertRarities(ctx, profile.UpsertRaritiesInput{
		Rarities: rarities,
	}); err != nil {
		return nil, errors.LocalStore("seed rarities", "", err)
	}
	if _, err := o.profileRepo.UpsertItemCategories(ctx, profile.UpsertItemCategoriesInput{
		Categories: categories,
	}); err != nil {
		return nil, errors.LocalStore("seed categories", "", err)
	}

	slog.InfoContext(ctx, "Seeded reference data",
		"classes", len(classMeta),
		"rarities", len(rarities),
		"categories", len(categories))

	return &SeedReferenceDataOutput{
		Classes:    len(classMeta),
		Rarities:   len(rarities),
		Categories: len(categories),
	}, nil
}

func (o *orchestrator) GetSyncStatus(
	ctx context.Context,
	input *GetSyncStatusInput,
) (*GetSyncStatusOutput, error) {
	if input == nil || input.HeroID == "" {
		return nil, errors.InvalidArgument("hero ID is required")
	}

	out, err := o.profileRepo.GetSyncState(ctx, profile.GetSyncStateInput{HeroID: input.HeroID})
	if err != nil {
		return nil, err
	}
	return &GetSyncStatusOutput{State: out.State}, nil
}

func (o *orchestrator) createDefaultProfile(h *hero.Hero) (*hero.Profile, error) {
	items, err := DefaultLoadout(h)
	if err != nil {
		return nil, err
	}

	h.InventoryID = h.ResolvedInventoryID()
	inv := h.CreateInventory()
	if dropped := inv.ReplaceAll(items); dropped > 0 {
		return nil, errors.Internalf("default loadout does not fit a new inventory (%d dropped)", dropped)
	}
	return hero.NewProfile(h, inv), nil
}

func (o *orchestrator) ensureWeapon(ctx context.Context, p *hero.Profile) error {
	if hasMainHandWeapon(p.Inventory.ItemsByCategory(item.CategoryWeapons)) {
		return nil
	}

	weapon, err := ClassWeapon(p.Hero.ID, p.Hero.Class)
	if err != nil {
		return err
	}
	if !p.Inventory.AddItem(weapon) {
		slog.WarnContext(ctx, "No room for class weapon",
			"hero_id", p.Hero.ID,
			"capacity", p.Inventory.Capacity)
		return nil
	}
	slog.InfoContext(ctx, "Added missing class weapon",
		"hero_id", p.Hero.ID,
		"item_id", weapon.ID)
	return nil
}

// persistLocal writes the profile and records it as not yet remote-synced
func (o *orchestrator) persistLocal(ctx context.Context, opID string, p *hero.Profile) error {
	if _, err := o.profileRepo.UpsertHeroProfile(ctx, profile.UpsertHeroProfileInput{Profile: p}); err != nil {
		return errors.LocalStore("persist", p.Hero.ID, err)
	}

	o.recordSyncState(ctx, profile.SyncState{
		HeroID:           p.Hero.ID,
		LocalPersistedAt: o.clock.Now(),
		LastOperationID:  opID,
	})
	o.publish(ctx, hero.EventProfilePersisted, p)
	return nil
}

// syncRemote pushes the profile to the remote store. Failures are logged and
// recorded, never returned.
func (o *orchestrator) syncRemote(ctx context.Context, opID string, p *hero.Profile) SyncResult {
	result := SyncResult{OperationID: opID}
	if o.remoteRepo == nil {
		result.Status = SyncStatusSkipped
		return result
	}

	pushCtx, cancel := context.WithTimeout(ctx, o.remoteTimeout)
	defer cancel()

	_, err := o.remoteRepo.Set(pushCtx, hero_inventory.SetInput{
		Collection: o.collection,
		DocumentID: p.Inventory.ID,
		Body:       p.ToMap(),
	})
	if err != nil {
		if !errors.IsRemoteSync(err) {
			err = errors.RemoteSync("push", p.Inventory.ID, err)
		}
		slog.WarnContext(ctx, "Remote sync deferred",
			"hero_id", p.Hero.ID,
			"inventory_id", p.Inventory.ID,
			"operation_id", opID,
			"error", err)

		o.recordSyncState(ctx, profile.SyncState{
			HeroID:           p.Hero.ID,
			LocalPersistedAt: o.clock.Now(),
			LastRemoteError:  err.Error(),
			LastOperationID:  opID,
		})
		o.publish(ctx, hero.EventProfileSyncDeferred, p)

		result.Status = SyncStatusDeferred
		result.Err = err
		return result
	}

	now := o.clock.Now()
	o.recordSyncState(ctx, profile.SyncState{
		HeroID:           p.Hero.ID,
		LocalPersistedAt: now,
		RemoteSyncedAt:   &now,
		LastOperationID:  opID,
	})
	o.publish(ctx, hero.EventProfileSynced, p)

	result.Status = SyncStatusSynced
	return result
}

// fetchRemote returns the first remote document of the hero, or nil
func (o *orchestrator) fetchRemote(ctx context.Context, heroID string) (*hero_inventory.Document, error) {
	if o.remoteRepo == nil {
		return nil, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, o.remoteTimeout)
	defer cancel()

	out, err := o.remoteRepo.Query(queryCtx, hero_inventory.QueryInput{
		Collection: o.collection,
		Field:      hero.FieldHeroID,
		Value:      heroID,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Documents) == 0 {
		return nil, nil
	}
	return out.Documents[0], nil
}

func (o *orchestrator) recordSyncState(ctx context.Context, state profile.SyncState) {
	if _, err := o.profileRepo.RecordSyncState(ctx, profile.RecordSyncStateInput{State: state}); err != nil {
		slog.WarnContext(ctx, "Failed to record sync state",
			"hero_id", state.HeroID,
			"operation_id", state.LastOperationID,
			"error", err)
	}
}

func (o *orchestrator) logDecodeReport(ctx context.Context, heroID, docID string, report *hero.DecodeReport) {
	if !report.Truncated() {
		return
	}
	metrics.MalformedItemsTotal.Add(float64(len(report.Malformed)))
	metrics.DroppedItemsTotal.Add(float64(report.Dropped))

	for _, malformed := range report.Malformed {
		slog.WarnContext(ctx, "Skipped malformed remote item",
			"hero_id", heroID,
			"document_id", docID,
			"reason", errors.ReasonOf(malformed),
			"error", malformed)
	}
	if report.Dropped > 0 {
		slog.WarnContext(ctx, "Remote inventory truncated",
			"hero_id", heroID,
			"document_id", docID,
			"dropped", report.Dropped)
	}
}

func (o *orchestrator) publish(ctx context.Context, eventType string, p *hero.Profile) {
	if o.eventBus == nil {
		return
	}
	snapshot := p.Clone()
	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, snapshot.Hero, snapshot)); err != nil {
		slog.WarnContext(ctx, "Failed to publish profile event",
			"event", eventType,
			"hero_id", p.Hero.ID,
			"error", err)
	}
}

func validateProfile(p *hero.Profile) error {
	if p == nil || p.Hero == nil || p.Inventory == nil {
		return errors.InvalidArgument("profile with hero and inventory is required")
	}
	if err := p.Hero.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Inventory.ID) == "" {
		return errors.InvalidArgument("inventory ID is required")
	}
	if p.Inventory.HeroID != "" && p.Inventory.HeroID != p.Hero.ID {
		return errors.InvalidArgumentf("inventory %s belongs to hero %s, not %s",
			p.Inventory.ID, p.Inventory.HeroID, p.Hero.ID)
	}
	return nil
}
