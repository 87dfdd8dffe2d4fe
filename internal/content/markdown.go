package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// RenderMarkdown converts a markdown body to HTML.
func RenderMarkdown(body string) (template.HTML, error) {
	return renderWith(newMarkdown(), body)
}

func renderWith(md goldmark.Markdown, body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Render fills in the HTML of every section.
func (s *Stack) Render() error {
	md := newMarkdown()
	for i := range s.Sections {
		out, err := renderWith(md, s.Sections[i].Body)
		if err != nil {
			return fmt.Errorf("rendering section %q: %w", s.Sections[i].ID, err)
		}
		s.Sections[i].HTML = out
	}
	return nil
}
