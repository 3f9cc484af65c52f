package utils

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown 将回复中的 Markdown 转为 HTML，供网页渠道展示。
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
