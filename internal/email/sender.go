// Package email 通过 EmailJS 兼容的 HTTP 接口发送联系表单邮件。
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"folio/internal/config"
)

// ErrNotConfigured 表示缺少服务 ID、模板 ID 或公钥。
var ErrNotConfigured = errors.New("email sender is not configured")

// Message 是一封联系表单邮件的模板参数。
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type sendRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	TemplateParams Message `json:"template_params"`
}

// Sender 同步发送邮件，不做重试。
type Sender struct {
	cfg        config.EmailConfig
	httpClient *http.Client
}

// NewSender 构造 Sender；httpClient 为 nil 时使用带超时的默认客户端。
func NewSender(cfg config.EmailConfig, httpClient *http.Client) *Sender {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Sender{cfg: cfg, httpClient: httpClient}
}

// Enabled 判断是否具备发送所需的全部凭据。
func (s *Sender) Enabled() bool {
	return s.cfg.Enabled() && strings.TrimSpace(s.cfg.Endpoint) != ""
}

// Send 发送一封邮件；非 2xx 响应视为失败。
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.PublicKey,
		TemplateParams: msg,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("email service status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
