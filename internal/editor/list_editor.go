// Package editor 实现后台的内容编辑流程：本地校验、整体写回、写后重新读取。
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"folio/internal/content"
	"folio/internal/schema"
	"folio/internal/store"
)

// ErrIndexOutOfRange 表示按位置操作子项时下标越界。
var ErrIndexOutOfRange = errors.New("item index out of range")

// ListEditor 编辑一个以列表字段为主体的单例文档，例如 technologies/main 的 categories。
// 提交时整体覆盖该字段，不做逐项合并；提交成功后重新读取文档作为最终状态。
type ListEditor[T any] struct {
	repo       store.Repository
	collection string
	docID      string
	field      string
	decode     func(fields map[string]any) ([]T, error)
	validate   func(items []T) ([]T, error)
	blank      func(items []T) T

	mu    sync.Mutex
	items []T
}

// Load 读取文档；文档不存在时得到空列表。
func (e *ListEditor[T]) Load(ctx context.Context) error {
	items, err := e.fetch(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
	return nil
}

func (e *ListEditor[T]) fetch(ctx context.Context) ([]T, error) {
	doc, err := e.repo.GetDocument(ctx, e.collection, e.docID)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", e.collection, e.docID, err)
	}
	items, err := e.decode(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", e.collection, e.docID, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Items 返回当前编辑状态的副本。
func (e *ListEditor[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// AddItem 在末尾追加一个带默认值的空白项，返回其下标。
func (e *ListEditor[T]) AddItem() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append(e.items, e.blank(e.items))
	return len(e.items) - 1
}

// RemoveItem 删除指定位置的子项，后续子项前移。
func (e *ListEditor[T]) RemoveItem(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	items := make([]T, 0, len(e.items)-1)
	items = append(items, e.items[:i]...)
	e.items = append(items, e.items[i+1:]...)
	return nil
}

// SetItem 替换指定位置的子项。
func (e *ListEditor[T]) SetItem(i int, item T) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	e.items[i] = item
	return nil
}

// Replace 用给定列表替换整个编辑状态。
func (e *ListEditor[T]) Replace(items []T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = make([]T, len(items))
	copy(e.items, items)
}

// Submit 校验整个列表，通过后整体写回并重新读取。
// 校验失败时返回 *schema.ValidationError，且不访问仓库。
func (e *ListEditor[T]) Submit(ctx context.Context) ([]T, error) {
	normalized, err := e.validate(e.Items())
	if err != nil {
		return nil, err
	}

	value, err := encodeList(normalized)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{e.field: value}

	if err := saveSingleton(ctx, e.repo, e.collection, e.docID, fields); err != nil {
		return nil, err
	}

	persisted, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.items = persisted
	e.mu.Unlock()
	return persisted, nil
}

// saveSingleton 先尝试合并更新，文档尚不存在时改为整体写入。
func saveSingleton(ctx context.Context, repo store.Repository, collection, id string, fields map[string]any) error {
	err := repo.UpdateDocument(ctx, collection, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		err = repo.SetDocument(ctx, collection, id, fields)
	}
	if err != nil {
		return fmt.Errorf("save %s/%s: %w", collection, id, err)
	}
	return nil
}

func encodeList[T any](items []T) (any, error) {
	wrapped, err := content.Encode(struct {
		Items []T `json:"items"`
	}{Items: items})
	if err != nil {
		return nil, err
	}
	return wrapped["items"], nil
}

// NewTechnologiesEditor 编辑 technologies/main 的 categories 列表。
func NewTechnologiesEditor(repo store.Repository) *ListEditor[content.TechnologyCategory] {
	return &ListEditor[content.TechnologyCategory]{
		repo:       repo,
		collection: content.CollectionTechnologies,
		docID:      content.MainDocID,
		field:      content.FieldCategories,
		decode: func(fields map[string]any) ([]content.TechnologyCategory, error) {
			catalog, err := content.DecodeTechnologyCatalog(fields)
			return catalog.Categories, err
		},
		validate: schema.ValidateTechnologies,
		blank: func([]content.TechnologyCategory) content.TechnologyCategory {
			return content.TechnologyCategory{Name: "", Technologies: []string{""}}
		},
	}
}

// NewSocialMediaEditor 编辑 socialMedia/main 的 platforms 列表；新项的 order 为当前长度。
func NewSocialMediaEditor(repo store.Repository) *ListEditor[content.Platform] {
	return &ListEditor[content.Platform]{
		repo:       repo,
		collection: content.CollectionSocialMedia,
		docID:      content.MainDocID,
		field:      content.FieldPlatforms,
		decode: func(fields map[string]any) ([]content.Platform, error) {
			cfg, err := content.Decode[content.SocialMediaConfig](fields)
			return cfg.Platforms, err
		},
		validate: schema.ValidateSocialMedia,
		blank: func(items []content.Platform) content.Platform {
			return content.Platform{Order: len(items)}
		},
	}
}
