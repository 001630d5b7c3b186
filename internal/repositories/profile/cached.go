package profile

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// DefaultCacheSize is the number of profiles kept by NewCached when no size
// is configured
const DefaultCacheSize = 128

type cachedRepository struct {
	Repository
	profiles *lru.Cache[string, *hero.Profile]
}

// CachedConfig contains configuration for the read-through profile cache
type CachedConfig struct {
	Repository Repository
	Size       int
}

// Validate validates the CachedConfig
func (cfg *CachedConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Repository == nil {
		vb.RequiredField("Repository")
	}
	if cfg.Size < 0 {
		vb.Field("Size", "must not be negative")
	}
	return vb.Build()
}

// NewCached wraps a repository with an in-process LRU cache of profiles.
// Reads are served from the cache after the first load; writes go to the
// wrapped repository first and refresh the cache only on success.
func NewCached(cfg *CachedConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	size := cfg.Size
	if size == 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *hero.Profile](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create profile cache")
	}

	return &cachedRepository{
		Repository: cfg.Repository,
		profiles:   cache,
	}, nil
}

func (r *cachedRepository) GetHeroWithInventory(
	ctx context.Context,
	input GetHeroWithInventoryInput,
) (*GetHeroWithInventoryOutput, error) {
	if p, ok := r.profiles.Get(input.HeroID); ok {
		slog.DebugContext(ctx, "Profile cache hit", "hero_id", input.HeroID)
		return &GetHeroWithInventoryOutput{Profile: p.Clone()}, nil
	}

	out, err := r.Repository.GetHeroWithInventory(ctx, input)
	if err != nil {
		return nil, err
	}
	r.profiles.Add(input.HeroID, out.Profile.Clone())
	return out, nil
}

func (r *cachedRepository) UpsertHeroProfile(
	ctx context.Context,
	input UpsertHeroProfileInput,
) (*UpsertHeroProfileOutput, error) {
	out, err := r.Repository.UpsertHeroProfile(ctx, input)
	if err != nil {
		if input.Profile != nil && input.Profile.Hero != nil {
			r.profiles.Remove(input.Profile.Hero.ID)
		}
		return nil, err
	}
	stored := input.Profile.Clone()
	stored.Hero.InventoryID = stored.Inventory.ID
	r.profiles.Add(stored.Hero.ID, stored)
	return out, nil
}
