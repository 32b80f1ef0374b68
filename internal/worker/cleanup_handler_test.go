package worker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hibiken/asynq"

	"folio/internal/content"
	"folio/internal/store"
	"folio/internal/tasks"
)

type fakeBucket struct {
	deleted []string
	failOn  string
}

func (f *fakeBucket) ObjectKeyFromURL(rawURL string) (string, bool) {
	const prefix = "https://cdn.example.com/portfolio/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, prefix), true
}

func (f *fakeBucket) DeleteObject(_ context.Context, key string) error {
	if key == f.failOn {
		return errors.New("minio unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func TestImageCleanupHandler(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	_, err := repo.CreateDocument(ctx, content.CollectionProjects, map[string]any{
		"title": "other", "imageUrl": "https://cdn.example.com/portfolio/projects/1_shared.png",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	bucket := &fakeBucket{}
	h := NewImageCleanupHandler(bucket, repo, nil)
	task, _ := tasks.NewProjectImageCleanupTask("p1", []string{
		"https://cdn.example.com/portfolio/projects/2_old.png",
		"https://cdn.example.com/portfolio/projects/1_shared.png",
		"https://elsewhere.example.com/x.png",
	}, "cid")

	if err := h.ProcessTask(ctx, task); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(bucket.deleted) != 1 || bucket.deleted[0] != "projects/2_old.png" {
		t.Fatalf("unexpected deletions %v", bucket.deleted)
	}
}

func TestImageCleanupHandler_DeleteFailureIsRetried(t *testing.T) {
	bucket := &fakeBucket{failOn: "projects/2_old.png"}
	h := NewImageCleanupHandler(bucket, store.NewMemoryRepository(), nil)
	task, _ := tasks.NewProjectImageCleanupTask("p1", []string{"https://cdn.example.com/portfolio/projects/2_old.png"}, "")

	err := h.ProcessTask(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestImageCleanupHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewImageCleanupHandler(&fakeBucket{}, store.NewMemoryRepository(), nil)
	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeProjectImageCleanup, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
