package feed

import (
	"sync"

	"folio/internal/debounce"
)

// SearchResult 是一次搜索计算后的状态。
type SearchResult struct {
	Query     string `json:"query"`
	Posts     []Post `json:"posts"`
	Searching bool   `json:"searching"`
}

// SearchSession 持有一次访问拉取到的完整文章序列，并对查询变化做防抖搜索。
// 每次计算都基于原始序列，被新输入取代的计算不会执行。
type SearchSession struct {
	mu           sync.Mutex
	all          []Post
	showCount    int
	debouncer    *debounce.Debouncer
	onResult     func(SearchResult)
	query        string
	generation   uint64
	searching    bool
	current      []Post
	computations int
}

// NewSearchSession 创建会话；初始结果为未过滤的前 showCount 篇。
func NewSearchSession(posts []Post, showCount int, d *debounce.Debouncer, onResult func(SearchResult)) *SearchSession {
	all := Truncate(posts, 0)
	return &SearchSession{
		all:       all,
		showCount: showCount,
		debouncer: d,
		onResult:  onResult,
		current:   Truncate(all, showCount),
	}
}

// SetQuery 标记为搜索中并安排一次防抖计算；返回本次调用是否刚进入搜索中状态。
func (s *SearchSession) SetQuery(query string) bool {
	s.mu.Lock()
	began := !s.searching
	s.query = query
	s.searching = true
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	s.debouncer.Schedule(func() { s.compute(generation, query) })
	return began
}

// compute 执行一次过滤；期间若有更新的查询，结果被丢弃，搜索中状态保持不变。
func (s *SearchSession) compute(generation uint64, query string) {
	posts := Search(s.all, query, s.showCount)

	s.mu.Lock()
	s.computations++
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.current = posts
	s.searching = false
	result := SearchResult{Query: query, Posts: Truncate(posts, 0)}
	callback := s.onResult
	s.mu.Unlock()

	if callback != nil {
		callback(result)
	}
}

// Snapshot 返回当前查询与最近一次计算的结果。
func (s *SearchSession) Snapshot() SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchResult{Query: s.query, Posts: Truncate(s.current, 0), Searching: s.searching}
}

// Computations 返回已执行的搜索计算次数。
func (s *SearchSession) Computations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computations
}

// Close 取消尚未执行的计算。
func (s *SearchSession) Close() {
	s.debouncer.Cancel()
}
