package feed

import (
	"sort"
	"strings"
	"time"
)

// Post 是规范化后的文章，只在一次拉取内有效，不落库。
type Post struct {
	Title         string    `json:"title"`
	Link          string    `json:"link"`
	Author        string    `json:"author,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
	FormattedDate string    `json:"formattedDate"`
	Description   string    `json:"description"`
	Content       string    `json:"content,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Tags          []string  `json:"tags"`
}

// Normalize 将原始条目转为 Post：按链接去重（保留首次出现），再按发布时间稳定倒序。
func Normalize(items []rssItem, formatter DateFormatter) []Post {
	seen := make(map[string]struct{}, len(items))
	posts := make([]Post, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.Link)
		if key == "" {
			key = strings.TrimSpace(item.GUID)
		}
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		published := ParsePubDate(item.PubDate)
		tags := make([]string, 0, len(item.Categories))
		tags = append(tags, item.Categories...)

		posts = append(posts, Post{
			Title:         item.Title,
			Link:          item.Link,
			Author:        item.Author,
			PublishedAt:   published,
			FormattedDate: formatter.Format(published),
			Description:   item.Description,
			Content:       item.Content,
			Summary:       Summary(item.Description),
			Thumbnail:     Thumbnail(item.Thumbnail, item.Content, item.Description),
			Tags:          tags,
		})
	}
	SortNewestFirst(posts)
	return posts
}

// SortNewestFirst 按发布时间倒序排列；时间相同的保持原有顺序。
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}
