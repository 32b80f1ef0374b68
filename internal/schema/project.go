package schema

import (
	"strings"

	"folio/internal/content"
)

// ProjectInput 是项目表单提交的原始值；Technologies 为逗号分隔的自由文本。
type ProjectInput struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	GithubURL    string `json:"githubUrl" form:"githubUrl"`
	DemoURL      string `json:"demoUrl" form:"demoUrl"`
	LiveURL      string `json:"liveUrl" form:"liveUrl"`
	Technologies string `json:"technologies" form:"technologies"`
	Readme       string `json:"readme" form:"readme"`
}

// ValidateProject 校验项目表单并返回规范化后的项目（不含 ID、图片与时间戳）。
func ValidateProject(in ProjectInput) (content.Project, error) {
	var c collector
	project := content.Project{
		Title:       c.required("title", in.Title, "title"),
		Description: c.required("description", in.Description, "description"),
		GithubURL:   c.optionalURL("githubUrl", in.GithubURL, "GitHub"),
		DemoURL:     c.optionalURL("demoUrl", in.DemoURL, "demo"),
		LiveURL:     c.optionalURL("liveUrl", in.LiveURL, "live"),
		TechStack:   SplitTechnologies(in.Technologies),
		Readme:      in.Readme,
	}
	if err := c.err(); err != nil {
		return content.Project{}, err
	}
	return project, nil
}

// SplitTechnologies 按逗号拆分，去除首尾空白并丢弃空段。
func SplitTechnologies(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
