package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 内容回退原因。
const (
	ReasonAbsent = "absent"
	ReasonError  = "error"
)

var (
	contentFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "fallback_total",
			Help:      "公开页面使用回退文案渲染的次数。",
		},
		[]string{"page", "reason"},
	)

	feedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fetch_total",
			Help:      "Medium feed 拉取次数。",
		},
		[]string{"result"},
	)

	cacheLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "内容缓存查询次数。",
		},
		[]string{"result"},
	)

	contactMessageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "messages_total",
			Help:      "联系表单提交次数。",
		},
		[]string{"result"},
	)
)

// ContentFallback 记录一次回退渲染。
func ContentFallback(page, reason string) {
	contentFallbackTotal.WithLabelValues(page, reason).Inc()
}

// FeedFetch 记录一次 feed 拉取结果（ok / error）。
func FeedFetch(result string) {
	feedFetchTotal.WithLabelValues(result).Inc()
}

// CacheLookup 记录缓存命中情况（hit / miss / error）。
func CacheLookup(result string) {
	cacheLookupTotal.WithLabelValues(result).Inc()
}

// ContactMessage 记录联系表单处理结果。
func ContactMessage(result string) {
	contactMessageTotal.WithLabelValues(result).Inc()
}
