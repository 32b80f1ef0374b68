package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/api/middleware"
	"folio/internal/email"
	"folio/internal/errcode"
	"folio/internal/metrics"
	"folio/internal/schema"
	"folio/internal/view"
)

// MessageSender 发送联系表单邮件。
type MessageSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// ContactHandler 处理访客的联系表单提交。
type ContactHandler struct {
	presenter *view.Presenter
	sender    MessageSender
	limiter   *RateLimiter
}

func NewContactHandler(presenter *view.Presenter, sender MessageSender, limiter *RateLimiter) *ContactHandler {
	return &ContactHandler{presenter: presenter, sender: sender, limiter: limiter}
}

// SubmitMessage 依次检查表单开关、字段与频率限制，然后同步发送邮件，失败不重试。
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	ctx := c.Request.Context()
	log := middleware.LoggerFromContext(c)

	if !h.presenter.ContactFormEnabled(ctx) {
		metrics.ContactMessage("disabled")
		Conflict(c, "contact form is disabled")
		return
	}

	var in schema.ContactMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	msg, err := schema.ValidateContactMessage(in)
	if err != nil {
		metrics.ContactMessage("invalid")
		WriteError(c, err)
		return
	}

	// 只有即将发送的消息占用配额。
	allowed, err := h.limiter.Allow(ctx, c.ClientIP())
	if err != nil {
		log.Warn("contact rate limiter unavailable", slog.Any("error", err))
	}
	if !allowed {
		metrics.ContactMessage("rate_limited")
		TooManyRequests(c, "too many messages, please try again later")
		return
	}

	if err := h.sender.Send(ctx, email.Message{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	}); err != nil {
		metrics.ContactMessage("failed")
		log.Error("send contact message failed", slog.Any("error", err))
		Error(c, http.StatusBadGateway, errcode.EmailFailed, "message could not be sent, please try again later")
		return
	}

	metrics.ContactMessage("sent")
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}
