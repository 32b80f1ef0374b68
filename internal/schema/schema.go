// Package schema 定义各类可编辑内容在写入前的本地校验规则。
// 校验不访问网络；失败时返回 *ValidationError，按字段列出全部错误。
package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError 描述单个字段的校验失败，Field 为字段路径，例如 platforms[2].url。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 汇总一次校验中的全部字段错误，顺序与字段检查顺序一致。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has 判断指定字段是否存在错误。
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

type collector struct {
	errs []FieldError
}

func (c *collector) add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) required(field, value, label string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		c.add(field, "%s is required", label)
	}
	return value
}

// optionalURL 空字符串视为未填写；否则必须是合法 URL。
func (c *collector) optionalURL(field, value, label string) string {
	value = strings.TrimSpace(value)
	if value != "" && !IsURL(value) {
		c.add(field, "enter a valid %s URL", label)
	}
	return value
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.errs}
}

// IsURL 判断字符串是否为格式正确的绝对 URL。
func IsURL(value string) bool {
	return validate.Var(value, "required,url") == nil
}

// IsEmail 判断字符串是否为格式正确的邮箱地址。
func IsEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
