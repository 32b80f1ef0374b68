package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"gorm":   NewGormRepository(newTestDB(t)),
		"memory": NewMemoryRepository(),
	}
}

func TestRepository_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		id, err := repo.CreateDocument(ctx, "projects", map[string]any{"title": "Folio", "technologies": []string{"Go"}})
		if err != nil {
			t.Fatalf("%s: create: %v", name, err)
		}
		if id == "" {
			t.Fatalf("%s: expected generated id", name)
		}

		doc, err := repo.GetDocument(ctx, "projects", id)
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if doc.ID != id || doc.Fields["title"] != "Folio" {
			t.Fatalf("%s: unexpected document %+v", name, doc)
		}

		if err := repo.UpdateDocument(ctx, "projects", id, map[string]any{"description": "portfolio"}); err != nil {
			t.Fatalf("%s: update: %v", name, err)
		}
		doc, err = repo.GetDocument(ctx, "projects", id)
		if err != nil {
			t.Fatalf("%s: get after update: %v", name, err)
		}
		if doc.Fields["title"] != "Folio" || doc.Fields["description"] != "portfolio" {
			t.Fatalf("%s: update must merge top-level fields, got %+v", name, doc.Fields)
		}

		if err := repo.DeleteDocument(ctx, "projects", id); err != nil {
			t.Fatalf("%s: delete: %v", name, err)
		}
		if _, err := repo.GetDocument(ctx, "projects", id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound after delete, got %v", name, err)
		}
		if err := repo.DeleteDocument(ctx, "projects", id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound deleting twice, got %v", name, err)
		}
	}
}

func TestRepository_UpdateMissingDocument(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		err := repo.UpdateDocument(ctx, "technologies", "main", map[string]any{"categories": []any{}})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestRepository_SetDocumentReplaces(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		if err := repo.SetDocument(ctx, "blog", "main", map[string]any{"heading": "Blog", "showCount": 5}); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := repo.SetDocument(ctx, "blog", "main", map[string]any{"heading": "Writing"}); err != nil {
			t.Fatalf("%s: set again: %v", name, err)
		}
		doc, err := repo.GetDocument(ctx, "blog", "main")
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if doc.Fields["heading"] != "Writing" {
			t.Fatalf("%s: expected replaced heading, got %+v", name, doc.Fields)
		}
		if _, ok := doc.Fields["showCount"]; ok {
			t.Fatalf("%s: set must replace the whole document, got %+v", name, doc.Fields)
		}
	}
}

func TestRepository_ListDocumentsAttachesIDs(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		var ids []string
		for i := 0; i < 3; i++ {
			id, err := repo.CreateDocument(ctx, "projects", map[string]any{"title": fmt.Sprintf("p%d", i)})
			if err != nil {
				t.Fatalf("%s: create: %v", name, err)
			}
			ids = append(ids, id)
		}
		if _, err := repo.CreateDocument(ctx, "other", map[string]any{"title": "x"}); err != nil {
			t.Fatalf("%s: create other: %v", name, err)
		}

		docs, err := repo.ListDocuments(ctx, "projects")
		if err != nil {
			t.Fatalf("%s: list: %v", name, err)
		}
		if len(docs) != 3 {
			t.Fatalf("%s: expected 3 documents got %d", name, len(docs))
		}
		seen := map[string]bool{}
		for _, d := range docs {
			seen[d.ID] = true
		}
		for _, id := range ids {
			if !seen[id] {
				t.Fatalf("%s: list missing id %s", name, id)
			}
		}
	}
}

func TestMemoryRepository_ListPreservesCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := repo.CreateDocument(ctx, "projects", map[string]any{"n": i})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, id)
	}
	docs, err := repo.ListDocuments(ctx, "projects")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, d := range docs {
		if d.ID != ids[i] {
			t.Fatalf("position %d: expected %s got %s", i, ids[i], d.ID)
		}
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	if err := repo.SetDocument(ctx, "about", "main", map[string]any{"fullName": "Ada"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	doc, _ := repo.GetDocument(ctx, "about", "main")
	doc.Fields["fullName"] = "mutated"

	again, _ := repo.GetDocument(ctx, "about", "main")
	if again.Fields["fullName"] != "Ada" {
		t.Fatalf("caller mutation leaked into repository: %+v", again.Fields)
	}
}

type fakeCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	gets    int
	deleted []string
	failGet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.values[key] = v
	case string:
		c.values[key] = []byte(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingRepository struct {
	Repository
	gets int
}

func (r *countingRepository) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	r.gets++
	return r.Repository.GetDocument(ctx, collection, id)
}

func TestCachedRepository_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	backing := &countingRepository{Repository: NewMemoryRepository()}
	if err := backing.SetDocument(ctx, "contact", "main", map[string]any{"heading": "Say hi"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache := newFakeCache()
	repo := NewCachedRepository(backing, cache, time.Minute, nil)

	for i := 0; i < 3; i++ {
		doc, err := repo.GetDocument(ctx, "contact", "main")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if doc.Fields["heading"] != "Say hi" {
			t.Fatalf("unexpected fields %+v", doc.Fields)
		}
	}
	if backing.gets != 1 {
		t.Fatalf("expected a single backing read, got %d", backing.gets)
	}

	if err := repo.UpdateDocument(ctx, "contact", "main", map[string]any{"heading": "Hello"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	doc, err := repo.GetDocument(ctx, "contact", "main")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if doc.Fields["heading"] != "Hello" {
		t.Fatalf("stale cache after write: %+v", doc.Fields)
	}
	if backing.gets != 2 {
		t.Fatalf("expected re-read after invalidation, got %d reads", backing.gets)
	}
}

func TestCachedRepository_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryRepository()
	if _, err := backing.CreateDocument(ctx, "projects", map[string]any{"title": "a"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache := newFakeCache()
	cache.failGet = true
	repo := NewCachedRepository(backing, cache, time.Minute, nil)

	docs, err := repo.ListDocuments(ctx, "projects")
	if err != nil {
		t.Fatalf("list must not surface cache errors: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc got %d", len(docs))
	}
}

func TestCachedRepository_CreateInvalidatesList(t *testing.T) {
	ctx := context.Background()
	repo := NewCachedRepository(NewMemoryRepository(), newFakeCache(), time.Minute, nil)

	if docs, err := repo.ListDocuments(ctx, "projects"); err != nil || len(docs) != 0 {
		t.Fatalf("expected empty list, got %d docs err=%v", len(docs), err)
	}
	if _, err := repo.CreateDocument(ctx, "projects", map[string]any{"title": "new"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	docs, err := repo.ListDocuments(ctx, "projects")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("list must reflect the created document, got %d", len(docs))
	}
}

func TestCachedRepository_NotFoundPassesThrough(t *testing.T) {
	repo := NewCachedRepository(NewMemoryRepository(), newFakeCache(), time.Minute, nil)
	if _, err := repo.GetDocument(context.Background(), "about", "main"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
