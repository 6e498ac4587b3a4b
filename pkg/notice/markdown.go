package notice

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a markdown body to HTML for use with
// TemplateHTML. PushPlus renders the markdown template itself, but the
// HTML template gives control over the final markup.
func RenderMarkdown(source string) (string, error) {
	md := goldmark.New()

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
