package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HomeContent 是首页 hero 区域的内容。
type HomeContent struct {
	FullName     string            `json:"fullName,omitempty"`
	Title        Titles            `json:"title,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	ProfileImage string            `json:"profileImage,omitempty"`
	Experience   FlexString        `json:"experience,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
}

// Titles 既可以从单个字符串、也可以从字符串数组解码，用于轮播头衔。
type Titles []string

func (t *Titles) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if strings.TrimSpace(single) == "" {
			*t = nil
			return nil
		}
		*t = Titles{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("title must be a string or a list of strings: %w", err)
	}
	*t = many
	return nil
}

// FlexString 同时接受 JSON 字符串与数字，例如 "5+" 或 5。
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*f = ""
	case strings.HasPrefix(trimmed, "\""):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number: %w", err)
		}
		*f = FlexString(n.String())
	}
	return nil
}

// AboutContent 是“关于我”页面的内容。
type AboutContent struct {
	FullName     string          `json:"fullName,omitempty"`
	AboutText    string          `json:"aboutText,omitempty"`
	CVLink       string          `json:"cvLink,omitempty"`
	Education    []Education     `json:"education,omitempty"`
	WorkHistory  []WorkHistory   `json:"workHistory,omitempty"`
	Certificates []Certificate   `json:"certificates,omitempty"`
	Languages    []LanguageSkill `json:"languages,omitempty"`
}

// Paragraphs 按换行拆分简介，丢弃空段落。
func (a AboutContent) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(a.AboutText, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Education struct {
	School     string `json:"school"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

type WorkHistory struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Certificate struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

type LanguageSkill struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// Project 是 projects 集合中的一个文档；ID 由仓库分配，不写入字段。
type Project struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	TechStack   []string `json:"technologies"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	Readme      string   `json:"readme,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// AllImages 返回去重后的图片 URL：先 imageUrl，再 images。
func (p Project) AllImages() []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range append([]string{p.ImageURL}, p.Images...) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// PrimaryURL 返回在线演示地址，liveUrl 优先。
func (p Project) PrimaryURL() string {
	if p.LiveURL != "" {
		return p.LiveURL
	}
	return p.DemoURL
}

// BlogConfig 是 blog/main 文档。
type BlogConfig struct {
	Heading        string `json:"heading"`
	Description    string `json:"description"`
	MediumUsername string `json:"mediumUsername"`
	ShowCount      int    `json:"showCount"`
	ShowProfile    bool   `json:"showProfile"`
	ShowTags       bool   `json:"showTags"`
	EnableSearch   bool   `json:"enableSearch"`
	HeroImage      string `json:"heroImage,omitempty"`
}

// ContactContent 是 contact/main 文档。
type ContactContent struct {
	Heading     string            `json:"heading,omitempty"`
	Subtext     string            `json:"subtext,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Location    string            `json:"location,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	ShowForm    bool              `json:"showForm"`
}

// SocialMediaConfig 是 socialMedia/main 文档。
type SocialMediaConfig struct {
	Platforms []Platform `json:"platforms"`
}

// Platform 是一个社交平台链接；Order 决定展示顺序，不要求唯一或连续。
type Platform struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}
