package feed

import (
	"fmt"
	"strings"
	"time"
)

// 桥接服务通常输出 "2006-01-02 15:04:05"（UTC），其余格式用于兼容原始 RSS。
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParsePubDate 解析发布时间；无法解析时返回零值。
func ParsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"tr": {"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
}

// DateFormatter 生成本地化的长日期，例如 "March 5, 2024" 或 "5 Mart 2024"。
type DateFormatter struct {
	locale   string
	location *time.Location
}

// NewDateFormatter 支持 en 与 tr；时区名为空时使用 UTC。
func NewDateFormatter(locale, timeZone string) (DateFormatter, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = "en"
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	if _, ok := monthNames[locale]; !ok {
		return DateFormatter{}, fmt.Errorf("unsupported date locale %q", locale)
	}
	loc := time.UTC
	if tz := strings.TrimSpace(timeZone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return DateFormatter{}, fmt.Errorf("load time zone %q: %w", tz, err)
		}
		loc = l
	}
	return DateFormatter{locale: locale, location: loc}, nil
}

// Format 返回长日期；零值时间返回空字符串。
func (f DateFormatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	loc := f.location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	names, ok := monthNames[f.locale]
	if !ok {
		names = monthNames["en"]
	}
	month := names[t.Month()-1]
	if f.locale == "tr" {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}
