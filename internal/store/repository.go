package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound 表示集合中不存在指定文档。
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable 表示文档库（或其缓存之外的后端）不可达。
	ErrUnavailable = errors.New("document store unavailable")
)

// Document 是仓库返回的松散类型文档：字段名到值的映射，附带其 ID。
type Document struct {
	Collection string
	ID         string
	Fields     map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reader 是展示层所需的只读部分。
type Reader interface {
	GetDocument(ctx context.Context, collection, id string) (*Document, error)
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
}

// Repository 提供按集合与文档 ID 寻址的读写操作。
// 不提供事务和乐观锁：并发写入以最后一次为准。
type Repository interface {
	Reader
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error
	SetDocument(ctx context.Context, collection, id string, fields map[string]any) error
	CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
	DeleteDocument(ctx context.Context, collection, id string) error
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func mergeFields(base, patch map[string]any) map[string]any {
	merged := cloneFields(base)
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
