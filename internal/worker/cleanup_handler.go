package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"folio/internal/content"
	"folio/internal/store"
	"folio/internal/tasks"
)

type objectRemover interface {
	ObjectKeyFromURL(rawURL string) (string, bool)
	DeleteObject(ctx context.Context, objectKey string) error
}

// ImageCleanupHandler 消费项目图片清理任务。
type ImageCleanupHandler struct {
	blobs  objectRemover
	repo   store.Reader
	logger *slog.Logger
}

// NewImageCleanupHandler 创建任务处理器。
func NewImageCleanupHandler(blobs objectRemover, repo store.Reader, logger *slog.Logger) *ImageCleanupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCleanupHandler{blobs: blobs, repo: repo, logger: logger}
}

// ProcessTask 实现 asynq.Handler。
// 仍被其他项目引用的图片与不属于本存储桶的 URL 会被跳过。
func (h *ImageCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseProjectImageCleanup(t)
	if err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("project_id", payload.ProjectID),
	)

	referenced, err := h.referencedImages(ctx)
	if err != nil {
		log.Error("list projects failed", slog.Any("error", err))
		return err
	}

	var errs []error
	deleted := 0
	for _, u := range payload.ImageURLs {
		if referenced[u] {
			log.Info("image still referenced, skipping", slog.String("url", u))
			continue
		}
		key, ok := h.blobs.ObjectKeyFromURL(u)
		if !ok {
			log.Warn("image url outside bucket, skipping", slog.String("url", u))
			continue
		}
		if err := h.blobs.DeleteObject(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
			continue
		}
		deleted++
	}

	if err := errors.Join(errs...); err != nil {
		log.Error("image cleanup incomplete", slog.Int("deleted", deleted), slog.Any("error", err))
		return err
	}
	log.Info("image cleanup finished", slog.Int("deleted", deleted))
	return nil
}

func (h *ImageCleanupHandler) referencedImages(ctx context.Context) (map[string]bool, error) {
	docs, err := h.repo.ListDocuments(ctx, content.CollectionProjects)
	if err != nil {
		return nil, err
	}
	refs := map[string]bool{}
	for _, d := range docs {
		p, err := content.DecodeProject(d.ID, d.Fields)
		if err != nil {
			continue
		}
		for _, u := range p.AllImages() {
			refs[u] = true
		}
	}
	return refs, nil
}
