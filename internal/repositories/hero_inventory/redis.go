package hero_inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-codex/internal/redis"
)

const (
	idsSuffix   = ":ids"
	indexMarker = ":idx:"

	// Error messages
	errCollectionEmpty = "collection cannot be empty"
	errDocumentIDEmpty = "document ID cannot be empty"
	errBodyNil         = "document body cannot be nil"
	errFieldEmpty      = "query field cannot be empty"
)

type redisRepository struct {
	client  redisclient.Client
	indexed map[string]bool
}

// RedisConfig contains configuration for the Redis document store
type RedisConfig struct {
	Client redisclient.Client
	// IndexedFields are the body fields Query can match on. Defaults to heroId.
	IndexedFields []string
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed document store. Each document is a JSON
// string under <collection>:<id>; every indexed field keeps a set of
// document ids under <collection>:idx:<field>:<value>.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fields := cfg.IndexedFields
	if len(fields) == 0 {
		fields = []string{hero.FieldHeroID}
	}
	indexed := make(map[string]bool, len(fields))
	for _, f := range fields {
		indexed[f] = true
	}

	return &redisRepository{
		client:  cfg.Client,
		indexed: indexed,
	}, nil
}

func documentKey(collection, id string) string {
	return collection + ":" + id
}

func idsKey(collection string) string {
	return collection + idsSuffix
}

func indexKey(collection, field, value string) string {
	return collection + indexMarker + field + ":" + value
}

// indexValue renders a body value as an index key component. Only scalar
// values are indexed.
func indexValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case json.Number:
		return val.String(), true
	case int, int32, int64, float32, float64, bool:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Collection == "" {
		return nil, errors.InvalidArgument(errCollectionEmpty)
	}
	if input.DocumentID == "" {
		return nil, errors.InvalidArgument(errDocumentIDEmpty)
	}
	if input.Body == nil {
		return nil, errors.InvalidArgument(errBodyNil)
	}

	data, err := json.Marshal(input.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to marshal document").
			WithMeta("document_id", input.DocumentID)
	}

	key := documentKey(input.Collection, input.DocumentID)

	// Read the previous version so stale index entries can be dropped
	previous, err := r.load(ctx, key)
	if err != nil && !errors.IsNotFound(err) {
		if errors.IsDataLoss(err) {
			slog.WarnContext(ctx, "Replacing undecodable remote document",
				"collection", input.Collection,
				"document_id", input.DocumentID,
				"error", err)
		} else {
			return nil, errors.RemoteSync("set", input.DocumentID, err)
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, idsKey(input.Collection), input.DocumentID)

	for field := range r.indexed {
		oldValue, hadOld := indexValue(previous[field])
		newValue, hasNew := indexValue(input.Body[field])
		if hadOld && (!hasNew || oldValue != newValue) {
			pipe.SRem(ctx, indexKey(input.Collection, field, oldValue), input.DocumentID)
		}
		if hasNew {
			pipe.SAdd(ctx, indexKey(input.Collection, field, newValue), input.DocumentID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.RemoteSync("set", input.DocumentID, err)
	}

	slog.DebugContext(ctx, "Stored remote document",
		"collection", input.Collection,
		"document_id", input.DocumentID,
		"bytes", len(data))

	return &SetOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Collection == "" {
		return nil, errors.InvalidArgument(errCollectionEmpty)
	}
	if input.DocumentID == "" {
		return nil, errors.InvalidArgument(errDocumentIDEmpty)
	}

	body, err := r.load(ctx, documentKey(input.Collection, input.DocumentID))
	if err != nil {
		if errors.IsNotFound(err) || errors.IsDataLoss(err) {
			return nil, err
		}
		return nil, errors.RemoteSync("get", input.DocumentID, err)
	}

	return &GetOutput{Document: &Document{ID: input.DocumentID, Body: body}}, nil
}

func (r *redisRepository) Query(ctx context.Context, input QueryInput) (*QueryOutput, error) {
	if input.Collection == "" {
		return nil, errors.InvalidArgument(errCollectionEmpty)
	}
	if input.Field == "" {
		return nil, errors.InvalidArgument(errFieldEmpty)
	}
	if !r.indexed[input.Field] {
		return nil, errors.InvalidArgumentf("field %s is not indexed", input.Field)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	ids, err := r.client.SMembers(ctx, indexKey(input.Collection, input.Field, input.Value)).Result()
	if err != nil {
		return nil, errors.RemoteSync("query", input.Value, err)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return &QueryOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = documentKey(input.Collection, id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.RemoteSync("query", input.Value, err)
	}

	docs := make([]*Document, 0, len(values))
	for i, raw := range values {
		if input.Limit > 0 && len(docs) == input.Limit {
			break
		}
		str, ok := raw.(string)
		if !ok {
			// index entry outlived its document
			slog.WarnContext(ctx, "Skipping dangling index entry",
				"collection", input.Collection,
				"document_id", ids[i])
			continue
		}
		body, err := decodeBody(str)
		if err != nil {
			slog.WarnContext(ctx, "Skipping undecodable remote document",
				"collection", input.Collection,
				"document_id", ids[i],
				"error", err)
			continue
		}
		docs = append(docs, &Document{ID: ids[i], Body: body})
	}

	return &QueryOutput{Documents: docs}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.Collection == "" {
		return nil, errors.InvalidArgument(errCollectionEmpty)
	}

	ids, err := r.client.SMembers(ctx, idsKey(input.Collection)).Result()
	if err != nil {
		return nil, errors.RemoteSync("list", input.Collection, err)
	}
	sort.Strings(ids)

	return &ListOutput{DocumentIDs: ids}, nil
}

func (r *redisRepository) load(ctx context.Context, key string) (map[string]any, error) {
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("document %s not found", key)
		}
		return nil, err
	}
	return decodeBody(result)
}

// decodeBody keeps numbers as json.Number so integer fields survive intact
func decodeBody(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode document")
	}
	if body == nil {
		return nil, errors.DataLossf("document is not an object")
	}
	return body, nil
}
