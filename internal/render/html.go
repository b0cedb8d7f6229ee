// Package render turns Markdown source into displayable output: HTML for
// host notifications and styled terminal text for the preview pane.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/zjrosen/mdpad/internal/log"
)

// HTML renders GitHub-flavored Markdown to HTML.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML renderer. Raw HTML in the source is escaped.
func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
	}
}

// Render converts markdown to an HTML fragment.
func (r *HTML) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return buf.String(), nil
}

// Fallback returns markdown escaped inside a <pre> block. Hosts receive it
// when a renderer fails so a notification is never dropped.
func Fallback(markdown string) string {
	return "<pre>" + html.EscapeString(markdown) + "</pre>"
}

// Must renders with r and falls back to escaped source on error.
func Must(r Renderer, markdown string) string {
	out, err := r.Render(markdown)
	if err != nil {
		log.ErrorErr(log.CatRender, "render failed, using fallback", err, "bytes", len(markdown))
		return Fallback(markdown)
	}
	return out
}
