// Package markdown renders operator-facing markdown (cycle reports) to sanitized
// HTML and strips markup from user-supplied text.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	ToHTMLSanitized(markdown string) (string, error)
	StripMarkup(s string) string
}

type markdownServiceImpl struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
	)

	return &markdownServiceImpl{
		md:     md,
		policy: bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *markdownServiceImpl) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}

// StripMarkup removes every tag from s and returns plain text.
func (s *markdownServiceImpl) StripMarkup(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(in)))
}
