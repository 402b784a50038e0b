package blog

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts post Markdown into sanitized HTML. It is stateless and
// safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer constructs the default renderer: GFM extensions, auto heading
// IDs, and a UGC sanitization policy applied to the rendered output.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts Markdown to sanitized HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("blog: render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// RenderedBody resolves the post body for a locale and renders it.
func (r *Renderer) RenderedBody(post *Post, locale string) (string, error) {
	if post == nil {
		return "", nil
	}
	return r.Render(post.Body.Resolve(locale))
}
