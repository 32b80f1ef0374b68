// Package view 组装公开页面所需的数据。
// 文档缺失与读取失败对访客呈现相同：都使用占位文案并标记为 empty，失败只记录日志与指标。
package view

import (
	"context"
	"errors"
	"log/slog"

	"folio/internal/content"
	"folio/internal/feed"
	"folio/internal/metrics"
	"folio/internal/store"
)

// Status 描述一块页面数据的状态。
type Status string

const (
	StatusReady Status = "ready"
	StatusEmpty Status = "empty"
)

// Section 是页面中独立加载的一块数据。
type Section[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
}

func ready[T any](v T) Section[T] { return Section[T]{Status: StatusReady, Data: v} }
func empty[T any](v T) Section[T] { return Section[T]{Status: StatusEmpty, Data: v} }

// Presenter 从文档库（以及博客的 feed）读取公开页面数据。
type Presenter struct {
	repo      store.Reader
	feed      feed.Fetcher
	logger    *slog.Logger
	showCount int
}

// NewPresenter 构造 Presenter；fetcher 为 nil 时博客页只返回配置。
func NewPresenter(repo store.Reader, fetcher feed.Fetcher, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{repo: repo, feed: fetcher, logger: logger, showCount: content.DefaultShowCount}
}

// WithDefaultShowCount 设置博客配置缺少 showCount 时展示的条数。
func (p *Presenter) WithDefaultShowCount(n int) *Presenter {
	if n > 0 {
		p.showCount = n
	}
	return p
}

// document 读取单个文档；缺失或失败时返回 nil 并计入回退指标。
func (p *Presenter) document(ctx context.Context, page, collection, id string) map[string]any {
	doc, err := p.repo.GetDocument(ctx, collection, id)
	if err != nil {
		p.fallback(page, collection, err)
		return nil
	}
	return doc.Fields
}

func (p *Presenter) documents(ctx context.Context, page, collection string) ([]store.Document, bool) {
	docs, err := p.repo.ListDocuments(ctx, collection)
	if err != nil {
		p.fallback(page, collection, err)
		return nil, false
	}
	return docs, true
}

func (p *Presenter) fallback(page, collection string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		metrics.ContentFallback(page, metrics.ReasonAbsent)
		return
	}
	metrics.ContentFallback(page, metrics.ReasonError)
	p.logger.Warn("content fetch failed, rendering fallback",
		slog.String("page", page),
		slog.String("collection", collection),
		slog.Any("error", err),
	)
}

func (p *Presenter) decodeFailed(page, collection string, err error) {
	metrics.ContentFallback(page, metrics.ReasonError)
	p.logger.Warn("content decode failed, rendering fallback",
		slog.String("page", page),
		slog.String("collection", collection),
		slog.Any("error", err),
	)
}
