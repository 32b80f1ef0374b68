package schema

import "folio/internal/content"

const (
	MinShowCount = 1
	MaxShowCount = 50
)

// BlogConfigInput 是博客设置表单；开关为 nil 时取默认值 true。
type BlogConfigInput struct {
	Heading        string `json:"heading"`
	Description    string `json:"description"`
	MediumUsername string `json:"mediumUsername"`
	ShowCount      int    `json:"showCount"`
	ShowProfile    *bool  `json:"showProfile"`
	ShowTags       *bool  `json:"showTags"`
	EnableSearch   *bool  `json:"enableSearch"`
	HeroImage      string `json:"heroImage"`
}

// ValidateBlogConfig 校验博客设置。
func ValidateBlogConfig(in BlogConfigInput) (content.BlogConfig, error) {
	var c collector
	cfg := content.BlogConfig{
		Heading:        c.required("heading", in.Heading, "heading"),
		Description:    c.required("description", in.Description, "description"),
		MediumUsername: c.required("mediumUsername", in.MediumUsername, "Medium username"),
		ShowCount:      in.ShowCount,
		ShowProfile:    boolOrTrue(in.ShowProfile),
		ShowTags:       boolOrTrue(in.ShowTags),
		EnableSearch:   boolOrTrue(in.EnableSearch),
	}
	switch {
	case in.ShowCount < MinShowCount:
		c.add("showCount", "at least %d post must be shown", MinShowCount)
	case in.ShowCount > MaxShowCount:
		c.add("showCount", "at most %d posts can be shown", MaxShowCount)
	}
	cfg.HeroImage = c.optionalURL("heroImage", in.HeroImage, "image")

	if err := c.err(); err != nil {
		return content.BlogConfig{}, err
	}
	return cfg, nil
}

// BlogConfigInputFrom 将已保存的配置转换为表单值。
func BlogConfigInputFrom(cfg content.BlogConfig) BlogConfigInput {
	return BlogConfigInput{
		Heading:        cfg.Heading,
		Description:    cfg.Description,
		MediumUsername: cfg.MediumUsername,
		ShowCount:      cfg.ShowCount,
		ShowProfile:    &cfg.ShowProfile,
		ShowTags:       &cfg.ShowTags,
		EnableSearch:   &cfg.EnableSearch,
		HeroImage:      cfg.HeroImage,
	}
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
