package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/internal/content"
	"folio/internal/feed"
)

var (
	// ErrBlogNotConfigured 表示 blog/main 不存在或无法读取。
	ErrBlogNotConfigured = errors.New("blog configuration not found")
	// ErrNoMediumUsername 表示博客配置中没有 Medium 用户名。
	ErrNoMediumUsername = errors.New("medium username is not configured")
)

// BlogProfile 是 showProfile 开启时展示的作者信息。
type BlogProfile struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Image string `json:"image,omitempty"`
}

// BlogView 是博客页数据。与其他页面不同，feed 错误会通过 FeedError 明确告知访客。
type BlogView struct {
	Config    content.BlogConfig `json:"config"`
	Profile   *BlogProfile       `json:"profile,omitempty"`
	Posts     []feed.Post        `json:"posts"`
	Total     int                `json:"total"`
	FeedError string             `json:"feedError,omitempty"`
}

// BlogFeed 读取博客配置并拉取完整文章序列（未截断），供页面与实时搜索共用。
func (p *Presenter) BlogFeed(ctx context.Context) (content.BlogConfig, *feed.Feed, error) {
	fields := p.document(ctx, "blog", content.CollectionBlog, content.MainDocID)
	if fields == nil {
		return content.BlogConfig{ShowCount: p.showCount}.WithFallbacks(), nil, ErrBlogNotConfigured
	}
	cfg, err := content.DecodeBlogConfigWithDefault(fields, p.showCount)
	if err != nil {
		p.decodeFailed("blog", content.CollectionBlog, err)
		return content.BlogConfig{ShowCount: p.showCount}.WithFallbacks(), nil, ErrBlogNotConfigured
	}
	cfg = cfg.WithFallbacks()
	if strings.TrimSpace(cfg.MediumUsername) == "" {
		return cfg, nil, ErrNoMediumUsername
	}
	if p.feed == nil {
		return cfg, nil, fmt.Errorf("%w: no feed source configured", feed.ErrFeedFetch)
	}
	f, err := p.feed.Fetch(ctx, cfg.MediumUsername)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, f, nil
}

// Blog 返回博客页：按配置截断到 showCount。
func (p *Presenter) Blog(ctx context.Context) BlogView {
	cfg, f, err := p.BlogFeed(ctx)
	view := BlogView{Config: cfg, Posts: []feed.Post{}}
	if cfg.MediumUsername != "" && cfg.ShowProfile {
		view.Profile = &BlogProfile{URL: feed.ProfileURL(cfg.MediumUsername)}
	}
	if err != nil {
		view.FeedError = err.Error()
		return view
	}
	if view.Profile != nil {
		view.Profile.Title = f.Title
		view.Profile.Image = f.Image
	}
	view.Posts = feed.Truncate(f.Posts, cfg.ShowCount)
	view.Total = len(f.Posts)
	return view
}
