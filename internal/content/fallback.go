package content

// 文档缺失或读取失败时使用的占位文案，保证页面不会空白。
const (
	FallbackFullName       = "Unnamed Developer"
	FallbackTitle          = "Software Developer"
	FallbackBio            = "Add a short biography..."
	FallbackExperience     = "0"
	FallbackAboutName      = "About Me"
	FallbackContactHeading = "Contact"
	FallbackContactSubtext = "You can reach me using the details below."
	FallbackBlogHeading    = "Blog"
	FallbackBlogText       = "Read my latest posts here."
)

// WithFallbacks 为首页内容补齐缺失字段。
func (h HomeContent) WithFallbacks() HomeContent {
	if h.FullName == "" {
		h.FullName = FallbackFullName
	}
	if len(h.Title) == 0 {
		h.Title = Titles{FallbackTitle}
	}
	if h.Bio == "" {
		h.Bio = FallbackBio
	}
	if h.Experience == "" {
		h.Experience = FallbackExperience
	}
	if h.SocialLinks == nil {
		h.SocialLinks = map[string]string{}
	}
	return h
}

// WithFallbacks 为“关于我”内容补齐缺失字段。
func (a AboutContent) WithFallbacks() AboutContent {
	if a.FullName == "" {
		a.FullName = FallbackAboutName
	}
	if a.Education == nil {
		a.Education = []Education{}
	}
	if a.WorkHistory == nil {
		a.WorkHistory = []WorkHistory{}
	}
	if a.Certificates == nil {
		a.Certificates = []Certificate{}
	}
	if a.Languages == nil {
		a.Languages = []LanguageSkill{}
	}
	return a
}

// WithFallbacks 为联系页内容补齐缺失字段。
func (c ContactContent) WithFallbacks() ContactContent {
	if c.Heading == "" {
		c.Heading = FallbackContactHeading
	}
	if c.Subtext == "" {
		c.Subtext = FallbackContactSubtext
	}
	if c.SocialLinks == nil {
		c.SocialLinks = map[string]string{}
	}
	return c
}

// WithFallbacks 为博客配置补齐展示文案。
func (b BlogConfig) WithFallbacks() BlogConfig {
	if b.Heading == "" {
		b.Heading = FallbackBlogHeading
	}
	if b.Description == "" {
		b.Description = FallbackBlogText
	}
	if b.ShowCount <= 0 {
		b.ShowCount = DefaultShowCount
	}
	return b
}
