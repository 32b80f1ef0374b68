package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImageCleanupQueue 将项目图片清理任务投递到 asynq。
type ImageCleanupQueue struct {
	client        enqueuer
	correlationID func(ctx context.Context) string
}

// NewImageCleanupQueue 构造队列；correlationID 用于从请求上下文中取出追踪 ID，可为 nil。
func NewImageCleanupQueue(client enqueuer, correlationID func(ctx context.Context) string) *ImageCleanupQueue {
	return &ImageCleanupQueue{client: client, correlationID: correlationID}
}

func (q *ImageCleanupQueue) EnqueueImageCleanup(ctx context.Context, projectID string, imageURLs []string) error {
	var cid string
	if q.correlationID != nil {
		cid = q.correlationID(ctx)
	}
	task, err := NewProjectImageCleanupTask(projectID, imageURLs, cid)
	if err != nil {
		return fmt.Errorf("build cleanup task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue cleanup task: %w", err)
	}
	return nil
}
