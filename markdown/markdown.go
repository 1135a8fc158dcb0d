// Package markdown renders Markdown content to HTML, both as raw bytes for
// the static build and as a templ component for direct embedding.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

// md is the shared Goldmark instance. Raw HTML passthrough is enabled:
// content files are trusted input authored by the site owner.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts a Markdown body to HTML.
func Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render([]byte(content))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}

// Excerpt extracts up to max runes of plain text from rendered HTML,
// collapsing whitespace and skipping script/style content. Used for feed
// descriptions when a node declares none.
func Excerpt(renderedHTML string, max int) string {
	tok := xhtml.NewTokenizer(strings.NewReader(renderedHTML))
	var b strings.Builder
	skip := 0
	for {
		tt := tok.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		switch tt {
		case xhtml.StartTagToken:
			name, _ := tok.TagName()
			if n := string(name); n == "script" || n == "style" {
				skip++
			}
		case xhtml.EndTagToken:
			name, _ := tok.TagName()
			if n := string(name); (n == "script" || n == "style") && skip > 0 {
				skip--
			}
		case xhtml.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tok.Text())), " ")
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
		if b.Len() > max*4 {
			break
		}
	}
	runes := []rune(b.String())
	if len(runes) <= max {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
