package feed

import (
	"strings"

	"golang.org/x/text/cases"
)

// Truncate 返回前 n 篇的副本；n <= 0 时返回全部副本。
func Truncate(posts []Post, n int) []Post {
	if n <= 0 || n > len(posts) {
		n = len(posts)
	}
	out := make([]Post, n)
	copy(out, posts[:n])
	return out
}

// Filter 返回标题或描述包含 query（忽略大小写，不去除首尾空白）的文章，结果是新切片，不修改 posts。
// 空 query 返回全部文章的副本。
func Filter(posts []Post, query string) []Post {
	if query == "" {
		return Truncate(posts, 0)
	}
	// Caser 有内部状态，不能跨 goroutine 共享。
	folder := cases.Fold()
	needle := folder.String(query)
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(folder.String(p.Title), needle) || strings.Contains(folder.String(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Search 总是从完整序列过滤，再截断到 showCount。
func Search(all []Post, query string, showCount int) []Post {
	return Truncate(Filter(all, query), showCount)
}
