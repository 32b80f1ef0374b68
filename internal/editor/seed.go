package editor

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/content"
	"folio/internal/store"
)

// DefaultDocuments 返回每个单例集合的初始文档。blog/main 不写 showCount，读取时取配置的默认条数。
func DefaultDocuments() map[string]map[string]any {
	blog := content.DefaultBlogConfig()
	return map[string]map[string]any{
		content.CollectionHomepage: {
			"fullName":   content.FallbackFullName,
			"title":      []any{content.FallbackTitle},
			"bio":        content.FallbackBio,
			"experience": content.FallbackExperience,
		},
		content.CollectionAbout: {
			"fullName":  content.FallbackAboutName,
			"aboutText": "",
		},
		content.CollectionTechnologies: {
			content.FieldCategories: []any{},
		},
		content.CollectionBlog: {
			"heading":        content.FallbackBlogHeading,
			"description":    content.FallbackBlogText,
			"mediumUsername": "",
			"showProfile":    blog.ShowProfile,
			"showTags":       blog.ShowTags,
			"enableSearch":   blog.EnableSearch,
		},
		content.CollectionContact: {
			"heading":  content.FallbackContactHeading,
			"subtext":  content.FallbackContactSubtext,
			"showForm": true,
		},
		content.CollectionSocialMedia: {
			content.FieldPlatforms: []any{},
		},
	}
}

// SeedOrder 是写入初始文档的固定顺序。
var SeedOrder = []string{
	content.CollectionHomepage,
	content.CollectionAbout,
	content.CollectionTechnologies,
	content.CollectionBlog,
	content.CollectionContact,
	content.CollectionSocialMedia,
}

// Seed 为缺失的单例文档写入初始值；overwrite 为真时覆盖已有文档。返回实际写入的集合。
func Seed(ctx context.Context, repo store.Repository, overwrite bool) ([]string, error) {
	docs := DefaultDocuments()
	written := make([]string, 0, len(SeedOrder))
	for _, collection := range SeedOrder {
		if !overwrite {
			_, err := repo.GetDocument(ctx, collection, content.MainDocID)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return written, fmt.Errorf("check %s/%s: %w", collection, content.MainDocID, err)
			}
		}
		if err := repo.SetDocument(ctx, collection, content.MainDocID, docs[collection]); err != nil {
			return written, fmt.Errorf("seed %s/%s: %w", collection, content.MainDocID, err)
		}
		written = append(written, collection)
	}
	return written, nil
}
