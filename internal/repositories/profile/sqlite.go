package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile/migrations"
)

const (
	driverName = "sqlite"
	dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	// Error messages
	errProfileNil     = "profile cannot be nil"
	errHeroNil        = "profile hero cannot be nil"
	errInventoryNil   = "profile inventory cannot be nil"
	errHeroIDEmpty    = "hero ID cannot be empty"
	errInventoryEmpty = "inventory ID cannot be empty"
)

// Open opens the SQLite database at path and applies the embedded
// migrations. The caller owns the returned handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}

	db, err := sql.Open(driverName, filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every pending schema migration
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return errors.Wrap(err, "failed to create migration provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	for _, result := range results {
		slog.DebugContext(ctx, "Applied migration",
			"version", result.Source.Version,
			"duration", result.Duration)
	}
	return nil
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite profile repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// NewSQLite creates a SQLite-backed profile repository. The database must
// already be migrated, see Open.
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{
		db:    cfg.DB,
		clock: c,
	}, nil
}

func (r *sqliteRepository) GetHeroWithInventory(
	ctx context.Context,
	input GetHeroWithInventoryInput,
) (*GetHeroWithInventoryOutput, error) {
	if input.HeroID == "" {
		return nil, errors.InvalidArgument(errHeroIDEmpty)
	}

	var (
		h            hero.Hero
		class        string
		invID        sql.NullString
		gold         sql.NullInt64
		capacity     sql.NullInt64
		heroInvField string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT h.hero_id, h.name, h.description, h.level, h.hero_class, h.card_image, h.inventory_id,
		       i.inventory_id, i.gold, i.capacity
		  FROM heroes h
		  LEFT JOIN inventories i ON i.hero_id = h.hero_id
		 WHERE h.hero_id = ?`,
		input.HeroID,
	).Scan(&h.ID, &h.Name, &h.Description, &h.Level, &class, &h.CardImage, &heroInvField,
		&invID, &gold, &capacity)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("hero %s has no local profile", input.HeroID).
			WithMeta("hero_id", input.HeroID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load hero")
	}

	parsed, ok := hero.ParseClass(class)
	if !ok {
		return nil, errors.DataLossf("hero %s has unknown class %q", input.HeroID, class)
	}
	h.Class = parsed
	h.InventoryID = heroInvField

	if !invID.Valid {
		return nil, errors.DataLossf("hero %s has no inventory row", input.HeroID)
	}

	inv := inventory.New(invID.String, h.ID, int(gold.Int64), int(capacity.Int64))
	items, err := r.loadItems(ctx, invID.String)
	if err != nil {
		return nil, err
	}
	if dropped := inv.ReplaceAll(items); dropped > 0 {
		slog.WarnContext(ctx, "Stored items exceed inventory capacity",
			"hero_id", h.ID,
			"inventory_id", inv.ID,
			"dropped", dropped)
	}

	return &GetHeroWithInventoryOutput{Profile: hero.NewProfile(&h, inv)}, nil
}

func (r *sqliteRepository) loadItems(ctx context.Context, inventoryID string) ([]*item.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, name, description, icon, rarity, category, subcategory,
		       stackable, quantity, allowed_slots, damage, element, attack_speed
		  FROM items
		 WHERE inventory_id = ?
		 ORDER BY position`,
		inventoryID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query items")
	}
	defer func() { _ = rows.Close() }()

	var items []*item.Item
	for rows.Next() {
		var (
			p           item.Params
			rarity      string
			category    string
			subcategory sql.NullString
			slotsJSON   string
			damage      sql.NullInt64
			element     sql.NullString
			attackSpeed sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IconPath, &rarity, &category, &subcategory,
			&p.Stackable, &p.Quantity, &slotsJSON, &damage, &element, &attackSpeed); err != nil {
			return nil, errors.Wrap(err, "failed to scan item")
		}

		p.Rarity = item.Rarity(rarity)
		p.Category = item.Category(category)
		if subcategory.Valid {
			p.Subcategory = item.Subcategory(subcategory.String)
		}
		var slots []string
		if err := json.Unmarshal([]byte(slotsJSON), &slots); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode allowed slots").
				WithMeta("item_id", p.ID)
		}
		p.AllowedSlots = make([]item.Slot, len(slots))
		for idx, s := range slots {
			p.AllowedSlots[idx] = item.Slot(s)
		}
		if damage.Valid || element.Valid || attackSpeed.Valid {
			p.WeaponStats = &item.WeaponStats{
				Damage:      int(damage.Int64),
				Element:     element.String,
				AttackSpeed: attackSpeed.Float64,
			}
		}

		it, err := item.New(p)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored item no longer valid").
				WithMeta("item_id", p.ID)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate items")
	}
	return items, nil
}

func (r *sqliteRepository) UpsertHeroProfile(
	ctx context.Context,
	input UpsertHeroProfileInput,
) (*UpsertHeroProfileOutput, error) {
	p := input.Profile
	if p == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if p.Hero == nil {
		return nil, errors.InvalidArgument(errHeroNil)
	}
	if p.Inventory == nil {
		return nil, errors.InvalidArgument(errInventoryNil)
	}
	if p.Hero.ID == "" {
		return nil, errors.InvalidArgument(errHeroIDEmpty)
	}
	if p.Inventory.ID == "" {
		return nil, errors.InvalidArgument(errInventoryEmpty)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	h := p.Hero
	inv := p.Inventory
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO heroes (hero_id, name, description, level, hero_class, card_image, inventory_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (hero_id) DO UPDATE SET
		    name = excluded.name,
		    description = excluded.description,
		    level = excluded.level,
		    hero_class = excluded.hero_class,
		    card_image = excluded.card_image,
		    inventory_id = excluded.inventory_id`,
		h.ID, h.Name, h.Description, h.Level, string(h.Class), h.CardImage, inv.ID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert hero")
	}

	// A hero owns exactly one inventory; drop any row left under an old id.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM inventories WHERE hero_id = ? AND inventory_id <> ?`,
		h.ID, inv.ID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to remove stale inventory")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO inventories (inventory_id, hero_id, gold, capacity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (inventory_id) DO UPDATE SET
		    hero_id = excluded.hero_id,
		    gold = excluded.gold,
		    capacity = excluded.capacity`,
		inv.ID, h.ID, inv.Gold, inv.Capacity,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert inventory")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE inventory_id = ?`, inv.ID); err != nil {
		return nil, errors.Wrap(err, "failed to clear items")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (inventory_id, item_id, position, name, description, icon, rarity, category,
		                   subcategory, stackable, quantity, allowed_slots, damage, element, attack_speed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare item insert")
	}
	defer func() { _ = stmt.Close() }()

	for position, it := range inv.AllItems() {
		slots := make([]string, len(it.AllowedSlots))
		for idx, s := range it.AllowedSlots {
			slots[idx] = string(s)
		}
		slotsJSON, err := json.Marshal(slots)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode allowed slots")
		}

		var (
			subcategory sql.NullString
			damage      sql.NullInt64
			element     sql.NullString
			attackSpeed sql.NullFloat64
		)
		if it.Subcategory != "" {
			subcategory = sql.NullString{String: string(it.Subcategory), Valid: true}
		}
		if it.WeaponStats != nil {
			damage = sql.NullInt64{Int64: int64(it.WeaponStats.Damage), Valid: true}
			element = sql.NullString{String: it.WeaponStats.Element, Valid: true}
			attackSpeed = sql.NullFloat64{Float64: it.WeaponStats.AttackSpeed, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			inv.ID, it.ID, position, it.Name, it.Description, it.IconPath, string(it.Rarity), string(it.Category),
			subcategory, it.Stackable, it.Quantity, string(slotsJSON), damage, element, attackSpeed,
		); err != nil {
			return nil, errors.Wrapf(err, "failed to insert item %s", it.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit profile")
	}

	slog.DebugContext(ctx, "Persisted hero profile",
		"hero_id", h.ID,
		"inventory_id", inv.ID,
		"items", inv.Len())

	return &UpsertHeroProfileOutput{}, nil
}

func (r *sqliteRepository) UpsertHeroClassMetadata(
	ctx context.Context,
	input UpsertHeroClassMetadataInput,
) (*UpsertHeroClassMetadataOutput, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, meta := range input.Metadata {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO hero_classes (hero_class_id, name, weapon_proficiency, armor_proficiency)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (hero_class_id) DO UPDATE SET
				    name = excluded.name,
				    weapon_proficiency = excluded.weapon_proficiency,
				    armor_proficiency = excluded.armor_proficiency`,
				string(meta.Class), meta.Name, meta.WeaponProficiency, meta.ArmorProficiency,
			); err != nil {
				return errors.Wrapf(err, "failed to upsert class %s", meta.Class)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpsertHeroClassMetadataOutput{}, nil
}

func (r *sqliteRepository) UpsertRarities(
	ctx context.Context,
	input UpsertRaritiesInput,
) (*UpsertRaritiesOutput, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, info := range input.Rarities {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO rarities (rarity_id, display_name, color_hex)
				VALUES (?, ?, ?)
				ON CONFLICT (rarity_id) DO UPDATE SET
				    display_name = excluded.display_name,
				    color_hex = excluded.color_hex`,
				string(info.Rarity), info.DisplayName, info.ColorHex,
			); err != nil {
				return errors.Wrapf(err, "failed to upsert rarity %s", info.Rarity)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpsertRaritiesOutput{}, nil
}

func (r *sqliteRepository) UpsertItemCategories(
	ctx context.Context,
	input UpsertItemCategoriesInput,
) (*UpsertItemCategoriesOutput, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, info := range input.Categories {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO item_categories (item_category_id, display_name, description, slot_type)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (item_category_id) DO UPDATE SET
				    display_name = excluded.display_name,
				    description = excluded.description,
				    slot_type = excluded.slot_type`,
				string(info.Category), info.DisplayName, info.Description, info.SlotType,
			); err != nil {
				return errors.Wrapf(err, "failed to upsert category %s", info.Category)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpsertItemCategoriesOutput{}, nil
}

func (r *sqliteRepository) RecordSyncState(
	ctx context.Context,
	input RecordSyncStateInput,
) (*RecordSyncStateOutput, error) {
	state := input.State
	if state.HeroID == "" {
		return nil, errors.InvalidArgument(errHeroIDEmpty)
	}
	if state.LocalPersistedAt.IsZero() {
		state.LocalPersistedAt = r.clock.Now()
	}

	var remoteSyncedAt sql.NullInt64
	if state.RemoteSyncedAt != nil {
		remoteSyncedAt = sql.NullInt64{Int64: toMillis(*state.RemoteSyncedAt), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_state (hero_id, local_persisted_at, remote_synced_at, last_remote_error, last_operation_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (hero_id) DO UPDATE SET
		    local_persisted_at = excluded.local_persisted_at,
		    remote_synced_at = COALESCE(excluded.remote_synced_at, sync_state.remote_synced_at),
		    last_remote_error = excluded.last_remote_error,
		    last_operation_id = excluded.last_operation_id`,
		state.HeroID, toMillis(state.LocalPersistedAt), remoteSyncedAt, state.LastRemoteError, state.LastOperationID,
	)
	if isForeignKeyViolation(err) {
		return nil, errors.FailedPrecondition("cannot record sync state for a hero without a local profile").
			WithMeta("hero_id", state.HeroID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to record sync state")
	}

	out, err := r.GetSyncState(ctx, GetSyncStateInput{HeroID: state.HeroID})
	if err != nil {
		return nil, err
	}
	return &RecordSyncStateOutput{State: out.State}, nil
}

func (r *sqliteRepository) GetSyncState(
	ctx context.Context,
	input GetSyncStateInput,
) (*GetSyncStateOutput, error) {
	if input.HeroID == "" {
		return nil, errors.InvalidArgument(errHeroIDEmpty)
	}

	var (
		state          = &SyncState{HeroID: input.HeroID}
		localPersisted int64
		remoteSynced   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT local_persisted_at, remote_synced_at, last_remote_error, last_operation_id
		  FROM sync_state
		 WHERE hero_id = ?`,
		input.HeroID,
	).Scan(&localPersisted, &remoteSynced, &state.LastRemoteError, &state.LastOperationID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("no sync state for hero %s", input.HeroID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sync state")
	}

	state.LocalPersistedAt = fromMillis(localPersisted)
	if remoteSynced.Valid {
		t := fromMillis(remoteSynced.Int64)
		state.RemoteSyncedAt = &t
	}
	return &GetSyncStateOutput{State: state}, nil
}

func (r *sqliteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
