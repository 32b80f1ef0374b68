package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"folio/internal/api/middleware"
	"folio/internal/debounce"
	"folio/internal/errcode"
	"folio/internal/feed"
	"folio/internal/view"
)

const (
	searchReadLimit = 4096
	pingInterval    = 30 * time.Second
	writeWait       = 5 * time.Second
)

// BlogSearchHandler 通过 WebSocket 提供博客文章的实时搜索。
type BlogSearchHandler struct {
	presenter      *view.Presenter
	delay          time.Duration
	clock          debounce.Clock
	upgrader       websocket.Upgrader
	allowedOrigins []string
}

// NewBlogSearchHandler 构造实时搜索处理器；clock 为 nil 时使用真实时钟。
func NewBlogSearchHandler(presenter *view.Presenter, delay time.Duration, clock debounce.Clock, allowedOrigins []string) *BlogSearchHandler {
	h := &BlogSearchHandler{
		presenter:      presenter,
		delay:          delay,
		clock:          clock,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *BlogSearchHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(h.allowedOrigins) == 0 {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

type searchQueryMessage struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

type searchEvent struct {
	Type      string      `json:"type"`
	Query     string      `json:"query"`
	Posts     []feed.Post `json:"posts,omitempty"`
	Searching bool        `json:"searching"`
}

// wsWriter 串行化对同一连接的写入。
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *wsWriter) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait))
}

func (w *wsWriter) close(code int, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
}

// HandleConnection 在升级前拉取一次完整文章序列，之后所有查询都在这份序列上计算。
func (h *BlogSearchHandler) HandleConnection(c *gin.Context) {
	log := middleware.LoggerFromContext(c)

	cfg, f, err := h.presenter.BlogFeed(c.Request.Context())
	switch {
	case errors.Is(err, view.ErrBlogNotConfigured), errors.Is(err, view.ErrNoMediumUsername):
		NotFound(c, err.Error())
		return
	case err != nil:
		log.Warn("blog search feed unavailable", slog.Any("error", err))
		Error(c, http.StatusBadGateway, errcode.FeedUnavailable, "blog posts are unavailable right now")
		return
	}
	if !cfg.EnableSearch {
		Conflict(c, "blog search is disabled")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(searchReadLimit)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	w := &wsWriter{conn: conn}
	errCh := make(chan error, 1)

	session := feed.NewSearchSession(f.Posts, cfg.ShowCount, debounce.New(h.delay, h.clock), func(r feed.SearchResult) {
		if err := w.writeJSON(searchEvent{Type: "results", Query: r.Query, Posts: r.Posts}); err != nil {
			report(errCh, fmt.Errorf("write results: %w", err))
			cancel()
		}
	})
	defer session.Close()

	initial := session.Snapshot()
	if err := w.writeJSON(searchEvent{Type: "results", Query: initial.Query, Posts: initial.Posts}); err != nil {
		log.Info("write initial results failed", slog.Any("error", err))
		return
	}

	go h.readLoop(ctx, w, session, errCh, cancel)
	go h.pingLoop(ctx, w, errCh, cancel)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Info("blog search connection closed", slog.Any("error", err))
	}
}

func (h *BlogSearchHandler) readLoop(
	ctx context.Context,
	w *wsWriter,
	session *feed.SearchSession,
	errCh chan<- error,
	cancel context.CancelFunc,
) {
	defer cancel()
	for {
		if ctx.Err() != nil {
			return
		}

		_, message, err := w.conn.ReadMessage()
		if err != nil {
			report(errCh, fmt.Errorf("read message: %w", err))
			return
		}

		var msg searchQueryMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.Type != "query" {
			w.close(websocket.ClosePolicyViolation, "query message required")
			report(errCh, errors.New("invalid query message"))
			return
		}

		if session.SetQuery(msg.Query) {
			if err := w.writeJSON(searchEvent{Type: "searching", Query: msg.Query, Searching: true}); err != nil {
				report(errCh, fmt.Errorf("write searching: %w", err))
				return
			}
		}
	}
}

func (h *BlogSearchHandler) pingLoop(ctx context.Context, w *wsWriter, errCh chan<- error, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ping(); err != nil {
				report(errCh, fmt.Errorf("write ping: %w", err))
				cancel()
				return
			}
		}
	}
}

// report 只保留第一个错误，不阻塞后续的发送方。
func report(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}
