package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// BlobStore 是远端对象存储的最小契约：上传字节并得到可公开解析的 URL。
type BlobStore interface {
	UploadBlob(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// ProjectImagePath 按 projects/{epoch-millis}_{原始文件名} 约定生成对象键。
func ProjectImagePath(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return fmt.Sprintf("projects/%d_%s", now.UnixMilli(), name)
}
