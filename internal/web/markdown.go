package web

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//nolint:gochecknoglobals // Stateless converters, safe for concurrent use.
var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdownHTML converts generated markdown to sanitized HTML. The
// model output is untrusted, so anything outside the UGC policy is
// stripped. On a conversion error the text is shown preformatted.
func renderMarkdownHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		//nolint:gosec // Escaped before wrapping.
		return template.HTML("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}
	//nolint:gosec // Sanitized by bluemonday.
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
