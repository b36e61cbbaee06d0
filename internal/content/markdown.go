// Package content renders the markdown bodies bundled with stories and guides.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	htmlPolicy = newHTMLPolicy()
)

func newHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render converts markdown to sanitized HTML safe for templates.
func Render(source string) (template.HTML, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(trimmed), &buf); err != nil {
		return "", fmt.Errorf("content: render markdown: %w", err)
	}
	return Sanitize(buf.String()), nil
}

// MustRender renders source and falls back to escaped text on failure.
func MustRender(source string) template.HTML {
	out, err := Render(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return out
}

// Sanitize strips anything outside the allowed element set.
func Sanitize(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return template.HTML(strings.TrimSpace(htmlPolicy.Sanitize(trimmed)))
}
