// Package markdown renders stored news content to sanitized HTML.
package markdown

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmark_html "github.com/yuin/goldmark/renderer/html"

	"github.com/refugio-dev/refugio/internal/logger"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(goldmark_html.WithHardWraps()),
	)
	return &Renderer{md: md, policy: bluemonday.UGCPolicy()}
}

// Render converts markdown to HTML and strips anything the sanitizer
// disallows. A conversion failure degrades to escaped plain text, so the
// read path never errors on stored content.
func (r *Renderer) Render(markdown string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		logger.Log.Error("markdown conversion failed", "error", err)
		return html.EscapeString(markdown)
	}
	return r.policy.Sanitize(buf.String())
}
