package schema

import (
	"strings"

	"folio/internal/content"
)

// ValidateSocialMedia 校验社交平台列表：名称、URL、图标必填，order 为整数。
func ValidateSocialMedia(platforms []content.Platform) ([]content.Platform, error) {
	var c collector
	out := make([]content.Platform, 0, len(platforms))
	for i, p := range platforms {
		prefix := indexed("platforms", i)
		normalized := content.Platform{
			Name:  c.required(prefix+".name", p.Name, "platform name"),
			URL:   strings.TrimSpace(p.URL),
			Icon:  c.required(prefix+".icon", p.Icon, "icon"),
			Order: p.Order,
		}
		if !IsURL(normalized.URL) {
			c.add(prefix+".url", "enter a valid URL")
		}
		out = append(out, normalized)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateTechnologies 校验分类形态的技术目录：分类名必填，且至少包含一个非空技术名。
func ValidateTechnologies(categories []content.TechnologyCategory) ([]content.TechnologyCategory, error) {
	var c collector
	out := make([]content.TechnologyCategory, 0, len(categories))
	for i, cat := range categories {
		prefix := indexed("categories", i)
		normalized := content.TechnologyCategory{
			Name:         c.required(prefix+".name", cat.Name, "category name"),
			Technologies: make([]string, 0, len(cat.Technologies)),
			Icons:        cat.Icons,
		}
		if len(cat.Technologies) == 0 {
			c.add(prefix+".technologies", "enter at least one technology")
		}
		for j, tech := range cat.Technologies {
			name := c.required(indexed(prefix+".technologies", j), tech, "technology name")
			normalized.Technologies = append(normalized.Technologies, name)
		}
		out = append(out, normalized)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}
