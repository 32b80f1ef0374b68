package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TechnologyCatalog 的规范形态：有序的分类列表。
type TechnologyCatalog struct {
	Categories []TechnologyCategory `json:"categories"`
}

// TechnologyCategory 是一个分类及其技术名称。
// Icons 仅在从旧的映射形态迁移时携带（技术名 → 图标）。
type TechnologyCategory struct {
	Name         string            `json:"name"`
	Technologies []string          `json:"technologies"`
	Icons        map[string]string `json:"icons,omitempty"`
}

// Count 返回所有分类中技术的总数。
func (c TechnologyCatalog) Count() int {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Technologies)
	}
	return total
}

type legacyTechnology struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DecodeTechnologyCatalog 接受两种存储形态并统一为规范形态：
//   - {"categories": [{"name": ..., "technologies": [...]}]}
//   - {"<分类名>": [{"name": ..., "icon": ...}], ...}（旧形态，按分类名排序）
//
// 两者同时存在时以 categories 为准。
func DecodeTechnologyCatalog(fields map[string]any) (TechnologyCatalog, error) {
	if raw, ok := fields[FieldCategories]; ok && raw != nil {
		var catalog TechnologyCatalog
		if err := DecodeInto(map[string]any{FieldCategories: raw}, &catalog); err != nil {
			return TechnologyCatalog{}, err
		}
		for i := range catalog.Categories {
			if catalog.Categories[i].Technologies == nil {
				catalog.Categories[i].Technologies = []string{}
			}
		}
		return catalog, nil
	}
	return decodeLegacyCatalog(fields)
}

func decodeLegacyCatalog(fields map[string]any) (TechnologyCatalog, error) {
	names := make([]string, 0, len(fields))
	for name, raw := range fields {
		if _, isList := raw.([]any); !isList {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := TechnologyCatalog{Categories: make([]TechnologyCategory, 0, len(names))}
	for _, name := range names {
		data, err := json.Marshal(fields[name])
		if err != nil {
			return TechnologyCatalog{}, fmt.Errorf("encode legacy category %q: %w", name, err)
		}
		var items []legacyTechnology
		if err := json.Unmarshal(data, &items); err != nil {
			return TechnologyCatalog{}, fmt.Errorf("decode legacy category %q: %w", name, err)
		}

		category := TechnologyCategory{Name: name, Technologies: make([]string, 0, len(items))}
		for _, item := range items {
			techName := strings.TrimSpace(item.Name)
			if techName == "" {
				continue
			}
			category.Technologies = append(category.Technologies, techName)
			if item.Icon != "" {
				if category.Icons == nil {
					category.Icons = map[string]string{}
				}
				category.Icons[techName] = item.Icon
			}
		}
		catalog.Categories = append(catalog.Categories, category)
	}
	return catalog, nil
}

// LegacyFields 将规范形态转换回旧的映射形态，供仍读取旧形态的消费者使用。
func (c TechnologyCatalog) LegacyFields() map[string]any {
	out := make(map[string]any, len(c.Categories))
	for _, cat := range c.Categories {
		items := make([]any, 0, len(cat.Technologies))
		for _, tech := range cat.Technologies {
			item := map[string]any{"name": tech}
			if icon, ok := cat.Icons[tech]; ok {
				item["icon"] = icon
			}
			items = append(items, item)
		}
		out[cat.Name] = items
	}
	return out
}
