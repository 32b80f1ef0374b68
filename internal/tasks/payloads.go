package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeProjectImageCleanup = "project:cleanup_images"
)

// ProjectImageCleanupPayload 描述需要从对象存储删除的项目图片。
type ProjectImageCleanupPayload struct {
	ProjectID     string   `json:"project_id"`
	ImageURLs     []string `json:"image_urls"`
	CorrelationID string   `json:"correlation_id"`
}

// NewProjectImageCleanupTask 构造图片清理任务；失败最多重试 5 次。
func NewProjectImageCleanupTask(projectID string, imageURLs []string, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ProjectImageCleanupPayload{
		ProjectID:     projectID,
		ImageURLs:     imageURLs,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeProjectImageCleanup, payload, asynq.MaxRetry(5), asynq.Timeout(time.Minute)), nil
}

// ParseProjectImageCleanup 解析任务负载。
func ParseProjectImageCleanup(task *asynq.Task) (ProjectImageCleanupPayload, error) {
	var p ProjectImageCleanupPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
