// Package feed 拉取 Medium 的 RSS（经 rss2json 桥接为 JSON），并提供排序、截断与搜索。
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/metrics"
)

// ErrFeedFetch 表示 feed 拉取失败：网络错误、非 2xx、响应无法解析或 status 不是 ok。
var ErrFeedFetch = errors.New("feed fetch failed")

const (
	mediumBase     = "https://medium.com"
	defaultTimeout = 10 * time.Second
)

// Feed 是一次拉取的完整结果；Posts 已去重并按发布时间倒序，未截断。
type Feed struct {
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	ProfileURL  string `json:"profileUrl"`
	Posts       []Post `json:"posts"`
}

// Fetcher 抽象 feed 来源，便于展示层测试。
type Fetcher interface {
	Fetch(ctx context.Context, username string) (*Feed, error)
}

// Client 调用 rss2json 兼容的桥接服务。
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	formatter  DateFormatter
	logger     *slog.Logger
}

// NewClient 根据配置构造 Client；httpClient 为 nil 时使用带超时的默认客户端。
func NewClient(cfg config.FeedConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("feed base url is required")
	}
	formatter, err := NewDateFormatter(cfg.DateLocale, cfg.TimeZone)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		formatter:  formatter,
		logger:     logger,
	}, nil
}

// FeedURL 构造桥接服务地址：rss_url 指向 https://medium.com/feed/@{username}，配置了密钥时附加 api_key。
func (c *Client) FeedURL(username string) string {
	q := url.Values{}
	q.Set("rss_url", fmt.Sprintf("%s/feed/@%s", mediumBase, username))
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + q.Encode()
}

// ProfileURL 返回 Medium 个人主页地址。
func ProfileURL(username string) string {
	return fmt.Sprintf("%s/@%s", mediumBase, username)
}

// Fetch 拉取并规范化指定用户的文章。不做重试。
func (c *Client) Fetch(ctx context.Context, username string) (*Feed, error) {
	feed, err := c.fetch(ctx, username)
	if err != nil {
		metrics.FeedFetch("error")
		c.logger.Warn("medium feed fetch failed", slog.String("username", username), slog.Any("error", err))
		return nil, err
	}
	metrics.FeedFetch("ok")
	return feed, nil
}

func (c *Client) fetch(ctx context.Context, username string) (*Feed, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("%w: medium username is empty", ErrFeedFetch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL(username), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFeedFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrFeedFetch, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload rssResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFeedFetch, err)
	}
	if payload.Status != "ok" {
		msg := payload.Message
		if msg == "" {
			msg = "status " + payload.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrFeedFetch, msg)
	}

	return &Feed{
		Username:    username,
		Title:       payload.Feed.Title,
		Description: payload.Feed.Description,
		Image:       payload.Feed.Image,
		ProfileURL:  ProfileURL(username),
		Posts:       Normalize(payload.Items, c.formatter),
	}, nil
}

type rssResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Feed    rssFeed   `json:"feed"`
	Items   []rssItem `json:"items"`
}

type rssFeed struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type rssItem struct {
	Title       string   `json:"title"`
	PubDate     string   `json:"pubDate"`
	Link        string   `json:"link"`
	GUID        string   `json:"guid"`
	Author      string   `json:"author"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Categories  []string `json:"categories"`
}

var _ Fetcher = (*Client)(nil)
