package editor

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/content"
	"folio/internal/schema"
	"folio/internal/store"
)

// BlogConfigEditor 编辑 blog/main。
type BlogConfigEditor struct {
	repo      store.Repository
	showCount int
}

func NewBlogConfigEditor(repo store.Repository) *BlogConfigEditor {
	return &BlogConfigEditor{repo: repo, showCount: content.DefaultShowCount}
}

// WithDefaultShowCount 设置文档缺少 showCount 时使用的条数。
func (e *BlogConfigEditor) WithDefaultShowCount(n int) *BlogConfigEditor {
	if n > 0 {
		e.showCount = n
	}
	return e
}

// Load 返回已保存的配置；文档不存在时返回默认值（默认条数，开关全部开启）。
func (e *BlogConfigEditor) Load(ctx context.Context) (content.BlogConfig, error) {
	doc, err := e.repo.GetDocument(ctx, content.CollectionBlog, content.MainDocID)
	if errors.Is(err, store.ErrNotFound) {
		return content.NewBlogConfig(e.showCount), nil
	}
	if err != nil {
		return content.BlogConfig{}, fmt.Errorf("load blog config: %w", err)
	}
	return content.DecodeBlogConfigWithDefault(doc.Fields, e.showCount)
}

// Submit 校验并保存，返回重新读取后的配置。
func (e *BlogConfigEditor) Submit(ctx context.Context, in schema.BlogConfigInput) (content.BlogConfig, error) {
	cfg, err := schema.ValidateBlogConfig(in)
	if err != nil {
		return content.BlogConfig{}, err
	}
	fields, err := content.Encode(cfg)
	if err != nil {
		return content.BlogConfig{}, err
	}
	// heroImage 清空时也要覆盖旧值。
	fields["heroImage"] = cfg.HeroImage

	if err := saveSingleton(ctx, e.repo, content.CollectionBlog, content.MainDocID, fields); err != nil {
		return content.BlogConfig{}, err
	}
	return e.Load(ctx)
}
