package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/feed"
)

func seedBlog(t *testing.T, env *testEnv, enableSearch bool) {
	t.Helper()
	env.seed(t, content.CollectionBlog, content.MainDocID, map[string]any{
		"heading": "Writing", "description": "Notes", "mediumUsername": "ada",
		"showCount": 2, "enableSearch": enableSearch,
	})
	env.fetcher.feed = &feed.Feed{Username: "ada", Posts: []feed.Post{
		{Title: "Go generics in practice", Link: "https://medium.com/@ada/1"},
		{Title: "Postgres JSONB tricks", Link: "https://medium.com/@ada/2"},
		{Title: "Going further with Go", Link: "https://medium.com/@ada/3"},
		{Title: "Redis caching", Link: "https://medium.com/@ada/4"},
	}}
}

func dialSearch(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/blog/search"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) searchEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev searchEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func postTitles(posts []feed.Post) []string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestBlogSearch_DebouncedResults(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(t, env, true)
	conn := dialSearch(t, env)

	initial := readEvent(t, conn)
	assert.Equal(t, "results", initial.Type)
	assert.Equal(t, []string{"Go generics in practice", "Postgres JSONB tricks"}, postTitles(initial.Posts))

	require.NoError(t, conn.WriteJSON(searchQueryMessage{Type: "query", Query: "GO"}))
	searching := readEvent(t, conn)
	assert.Equal(t, "searching", searching.Type)
	assert.True(t, searching.Searching)

	env.clock.Advance(299 * time.Millisecond)
	env.clock.Advance(time.Millisecond)

	results := readEvent(t, conn)
	assert.Equal(t, "results", results.Type)
	assert.Equal(t, "GO", results.Query)
	assert.False(t, results.Searching)
	assert.Equal(t, []string{"Go generics in practice", "Going further with Go"}, postTitles(results.Posts))
}

func TestBlogSearch_RejectsNonQueryMessages(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(t, env, true)
	conn := dialSearch(t, env)
	readEvent(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"subscribe"}`)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "unexpected error: %v", err)
}

func TestBlogSearch_DisabledOrUnavailable(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(t, env, false)

	w := env.do(httptest.NewRequest(http.MethodGet, "/v1/blog/search", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	env.fetcher.err = feed.ErrFeedFetch
	w = env.do(httptest.NewRequest(http.MethodGet, "/v1/blog/search", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestBlog_FeedErrorIsSurfaced(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(t, env, true)
	env.fetcher.err = feed.ErrFeedFetch

	w := env.do(httptest.NewRequest(http.MethodGet, "/v1/blog", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, feed.ErrFeedFetch.Error(), body["feedError"])
}
