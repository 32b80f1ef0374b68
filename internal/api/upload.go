package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/dutchcoders/go-clamd"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"folio/internal/editor"
	"folio/internal/errcode"
)

var (
	errUploadTooLarge     = errors.New("image exceeds upload size limit")
	errUnsupportedImage   = errors.New("only png, jpeg, webp and gif images are accepted")
	errMaliciousUpload    = errors.New("malicious file detected")
	allowedImageMIMETypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}
)

type uploadScanner interface {
	Scan(r io.Reader) error
}

// clamdScanner 通过 clamd 的 INSTREAM 扫描上传内容。
type clamdScanner struct {
	addr string
}

func newUploadScanner(addr string) uploadScanner {
	if strings.TrimSpace(addr) == "" {
		return nil
	}
	return clamdScanner{addr: addr}
}

func (s clamdScanner) Scan(r io.Reader) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := clamd.NewClamd(s.addr).ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan file: %w", err)
	}
	infected := false
	for result := range results {
		if result.Status != clamd.RES_OK {
			infected = true
		}
	}
	if infected {
		return errMaliciousUpload
	}
	return nil
}

// isAllowedImageName 检查原始文件名：合法 UTF-8、长度有限、扩展名为图片。
func isAllowedImageName(name string) bool {
	if name == "" || !utf8.ValidString(name) || len(name) > 200 {
		return false
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return true
	}
	return false
}

// readImageUpload 读取表单中的 image 字段；未提交图片时返回 nil。
// 内容类型按文件头识别，不信任客户端声明；配置了 clamd 时先扫描再返回。
func readImageUpload(c *gin.Context, maxBytes int64, scanner uploadScanner) (*editor.ImageUpload, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image field: %w", err)
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return nil, errUploadTooLarge
	}
	if !isAllowedImageName(file.Filename) {
		return nil, errUnsupportedImage
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	reader := io.Reader(f)
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errUploadTooLarge
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), allowedImageMIMETypes...) {
		return nil, errUnsupportedImage
	}

	if scanner != nil {
		if err := scanner.Scan(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	}

	return &editor.ImageUpload{
		Filename:    path.Base(file.Filename),
		ContentType: detected.String(),
		Data:        data,
	}, nil
}

// writeUploadError 将上传错误映射为响应。
func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUploadTooLarge):
		Error(c, http.StatusRequestEntityTooLarge, errcode.PayloadTooLarge, err.Error())
	case errors.Is(err, errUnsupportedImage), errors.Is(err, errMaliciousUpload):
		BadRequest(c, err.Error())
	default:
		WriteError(c, err)
	}
}
