package feed

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// firstImageSource 返回 HTML 片段中第一个带非空 src 的 <img>。
func firstImageSource(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return findImage(doc)
}

func findImage(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "img" {
		for _, attr := range n.Attr {
			if attr.Key == "src" && strings.TrimSpace(attr.Val) != "" {
				return strings.TrimSpace(attr.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if src := findImage(c); src != "" {
			return src
		}
	}
	return ""
}

// Thumbnail 依次尝试显式缩略图、content 中的首图、description 中的首图；都没有时返回空。
func Thumbnail(explicit, content, description string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	if s := firstImageSource(content); s != "" {
		return s
	}
	return firstImageSource(description)
}

// Summary 将 description 的 HTML 转为 Markdown 文本，失败时返回空。
func Summary(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(description))
	if err != nil {
		return ""
	}
	md, err := htmltomarkdown.ConvertNode(doc)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(md))
}
