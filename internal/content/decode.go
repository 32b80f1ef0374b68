package content

import (
	"encoding/json"
	"fmt"
)

// DefaultShowCount 是 blog/main 缺省的展示条数。
const DefaultShowCount = 10

// Decode 将松散类型的文档字段解码为具体类型。
func Decode[T any](fields map[string]any) (T, error) {
	var out T
	err := DecodeInto(fields, &out)
	return out, err
}

// DecodeInto 在 dst 已有值的基础上解码，未出现的字段保持原值（用于缺省值）。
func DecodeInto(fields map[string]any, dst any) error {
	if fields == nil {
		return nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document fields: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode document fields: %w", err)
	}
	return nil
}

// Encode 将具体类型编码为可写入仓库的字段映射。
func Encode(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode content into fields: %w", err)
	}
	return fields, nil
}

// DefaultBlogConfig 返回表单的初始值：展示 10 条，开关全部开启。
func DefaultBlogConfig() BlogConfig {
	return NewBlogConfig(DefaultShowCount)
}

// NewBlogConfig 返回展示 showCount 条、开关全部开启的配置；showCount <= 0 时取 DefaultShowCount。
func NewBlogConfig(showCount int) BlogConfig {
	if showCount <= 0 {
		showCount = DefaultShowCount
	}
	return BlogConfig{
		ShowCount:    showCount,
		ShowProfile:  true,
		ShowTags:     true,
		EnableSearch: true,
	}
}

// DecodeBlogConfig 解码 blog/main，缺失的开关默认 true，showCount 缺失或为 0 时取 10。
func DecodeBlogConfig(fields map[string]any) (BlogConfig, error) {
	return DecodeBlogConfigWithDefault(fields, DefaultShowCount)
}

// DecodeBlogConfigWithDefault 同 DecodeBlogConfig，showCount 缺失或为 0 时取 showCount。
func DecodeBlogConfigWithDefault(fields map[string]any, showCount int) (BlogConfig, error) {
	cfg := NewBlogConfig(showCount)
	if err := DecodeInto(fields, &cfg); err != nil {
		return NewBlogConfig(showCount), err
	}
	if cfg.ShowCount == 0 {
		cfg.ShowCount = NewBlogConfig(showCount).ShowCount
	}
	return cfg, nil
}

// DecodeProject 解码 projects 文档并附上文档 ID。
func DecodeProject(id string, fields map[string]any) (Project, error) {
	p, err := Decode[Project](fields)
	if err != nil {
		return Project{}, err
	}
	p.ID = id
	if p.TechStack == nil {
		// 早期文档使用 techStack 字段。
		legacy, err := Decode[struct {
			TechStack []string `json:"techStack"`
		}](fields)
		if err != nil {
			return Project{}, err
		}
		p.TechStack = legacy.TechStack
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p, nil
}
