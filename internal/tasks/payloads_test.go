package tasks

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
)

func TestProjectImageCleanupTaskRoundTrip(t *testing.T) {
	task, err := NewProjectImageCleanupTask("p1", []string{"http://cdn/a.png"}, "cid")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TypeProjectImageCleanup {
		t.Fatalf("unexpected type %q", task.Type())
	}
	p, err := ParseProjectImageCleanup(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.ProjectID != "p1" || len(p.ImageURLs) != 1 || p.CorrelationID != "cid" {
		t.Fatalf("unexpected payload %+v", p)
	}
}

type captureEnqueuer struct {
	tasks []*asynq.Task
}

func (c *captureEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestImageCleanupQueueCarriesCorrelationID(t *testing.T) {
	capture := &captureEnqueuer{}
	q := NewImageCleanupQueue(capture, func(context.Context) string { return "req-1" })
	if err := q.EnqueueImageCleanup(context.Background(), "p1", []string{"u"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if len(capture.tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(capture.tasks))
	}
	p, err := ParseProjectImageCleanup(capture.tasks[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.CorrelationID != "req-1" {
		t.Fatalf("unexpected correlation id %q", p.CorrelationID)
	}
}
