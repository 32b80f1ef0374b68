package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/api/middleware"
	"folio/internal/errcode"
	"folio/internal/schema"
	"folio/internal/store"
)

func Error(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, errcode.InvalidRequest, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, errcode.ResourceMissing, msg)
}

func Conflict(c *gin.Context, msg string) {
	Error(c, http.StatusConflict, errcode.Conflict, msg)
}

func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, errcode.SystemError, msg)
}

func TooManyRequests(c *gin.Context, msg string) {
	Error(c, http.StatusTooManyRequests, errcode.RateLimited, msg)
}

// ValidationFailed 返回 422，并逐字段列出错误。
func ValidationFailed(c *gin.Context, verr *schema.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"code":   errcode.ValidationFailed,
		"fields": verr.Fields,
	})
}

// WriteError 将领域错误映射为 HTTP 响应：校验错误 422，文档缺失 404，文档库不可达 503，其余 500。
func WriteError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr)
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "document not found")
	case errors.Is(err, store.ErrUnavailable):
		middleware.LoggerFromContext(c).Error("document store unavailable", "error", err)
		Error(c, http.StatusServiceUnavailable, errcode.StoreUnavailable, "content store unavailable")
	default:
		middleware.LoggerFromContext(c).Error("request failed", "error", err)
		Internal(c, "internal error")
	}
}
