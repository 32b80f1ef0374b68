package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/internal/metrics"
)

const cacheKeyPrefix = "content:"

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedRepository 在 Repository 外包一层 Redis 读缓存。
// 写操作先落库再失效对应的文档键与集合列表键；缓存故障只记录日志，不影响读写结果。
type CachedRepository struct {
	next   Repository
	cache  cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository 构造带缓存的仓库。
func NewCachedRepository(next Repository, cache cacheClient, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

type cachedDocument struct {
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func documentKey(collection, id string) string {
	return fmt.Sprintf("%sdoc:%s:%s", cacheKeyPrefix, collection, id)
}

func listKey(collection string) string {
	return fmt.Sprintf("%slist:%s", cacheKeyPrefix, collection)
}

func (r *CachedRepository) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	key := documentKey(collection, id)
	var cached cachedDocument
	if r.load(ctx, key, &cached) {
		return cached.toDocument(collection), nil
	}

	doc, err := r.next.GetDocument(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, fromDocument(*doc))
	return doc, nil
}

func (r *CachedRepository) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	key := listKey(collection)
	var cached []cachedDocument
	if r.load(ctx, key, &cached) {
		docs := make([]Document, 0, len(cached))
		for _, c := range cached {
			docs = append(docs, *c.toDocument(collection))
		}
		return docs, nil
	}

	docs, err := r.next.ListDocuments(ctx, collection)
	if err != nil {
		return nil, err
	}
	payload := make([]cachedDocument, 0, len(docs))
	for _, d := range docs {
		payload = append(payload, fromDocument(d))
	}
	r.store(ctx, key, payload)
	return docs, nil
}

func (r *CachedRepository) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	defer r.invalidate(ctx, collection, id)
	return r.next.UpdateDocument(ctx, collection, id, fields)
}

func (r *CachedRepository) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	defer r.invalidate(ctx, collection, id)
	return r.next.SetDocument(ctx, collection, id, fields)
}

func (r *CachedRepository) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id, err := r.next.CreateDocument(ctx, collection, fields)
	r.invalidate(ctx, collection, id)
	return id, err
}

func (r *CachedRepository) DeleteDocument(ctx context.Context, collection, id string) error {
	defer r.invalidate(ctx, collection, id)
	return r.next.DeleteDocument(ctx, collection, id)
}

func (r *CachedRepository) load(ctx context.Context, key string, dst any) bool {
	raw, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookup("miss")
		} else {
			metrics.CacheLookup("error")
			r.logger.Warn("content cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheLookup("error")
		r.logger.Warn("content cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}
	metrics.CacheLookup("hit")
	return true
}

func (r *CachedRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("content cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (r *CachedRepository) invalidate(ctx context.Context, collection, id string) {
	keys := []string{listKey(collection)}
	if id != "" {
		keys = append(keys, documentKey(collection, id))
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("content cache invalidation failed",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.Any("error", err),
		)
	}
}

func fromDocument(d Document) cachedDocument {
	return cachedDocument{ID: d.ID, Fields: d.Fields, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

func (c cachedDocument) toDocument(collection string) *Document {
	fields := c.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &Document{
		Collection: collection,
		ID:         c.ID,
		Fields:     fields,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
