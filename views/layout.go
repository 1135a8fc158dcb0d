// Package views holds the presentational components of a stanza site,
// built as plain-Go templ components so sites need no template codegen.
package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// component wraps an HTML-writing function as a templ.Component.
func component(write func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		write(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// layout writes the full HTML document: head metadata, the author sidebar,
// the content column, and the footer.
func layout(buf *bytes.Buffer, cfg SiteConfig, meta PageMeta, jsonLD string, body func(*bytes.Buffer)) {
	title := meta.Title
	if title == "" {
		title = cfg.Title
	}
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\"/>\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	buf.WriteString("<title>" + esc(title) + "</title>\n")
	if meta.Description != "" {
		buf.WriteString("<meta name=\"description\" content=\"" + esc(meta.Description) + "\"/>\n")
	}
	if meta.URL != "" {
		buf.WriteString("<link rel=\"canonical\" href=\"" + esc(meta.URL) + "\"/>\n")
		buf.WriteString("<meta property=\"og:url\" content=\"" + esc(meta.URL) + "\"/>\n")
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	buf.WriteString("<meta property=\"og:type\" content=\"" + esc(ogType) + "\"/>\n")
	buf.WriteString("<meta property=\"og:title\" content=\"" + esc(title) + "\"/>\n")
	if meta.Description != "" {
		buf.WriteString("<meta property=\"og:description\" content=\"" + esc(meta.Description) + "\"/>\n")
	}
	if meta.Image != "" {
		buf.WriteString("<meta property=\"og:image\" content=\"" + esc(meta.Image) + "\"/>\n")
	}
	buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"" + esc(cfg.Title) + "\" href=\"/rss.xml\"/>\n")
	buf.WriteString("<link rel=\"stylesheet\" href=\"/css/main.css\"/>\n")
	if jsonLD != "" {
		buf.WriteString("<script type=\"application/ld+json\">" + jsonLD + "</script>\n")
	}
	buf.WriteString("</head>\n<body>\n<div class=\"layout\">\n")

	sidebar(buf, cfg)

	buf.WriteString("<main class=\"content\">\n")
	body(buf)
	buf.WriteString("</main>\n</div>\n")

	buf.WriteString("<footer class=\"footer\">")
	if cfg.Copyright != "" {
		buf.WriteString("<p>" + esc(cfg.Copyright) + "</p>")
	}
	buf.WriteString("</footer>\n</body>\n</html>\n")
}

func sidebar(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString("<aside class=\"sidebar\">\n")
	if cfg.Author.Photo != "" {
		buf.WriteString("<a href=\"/\"><img class=\"sidebar__photo\" src=\"" + esc(cfg.Author.Photo) + "\" width=\"75\" height=\"75\" alt=\"" + esc(cfg.Author.Name) + "\"/></a>\n")
	}
	buf.WriteString("<h1 class=\"sidebar__title\"><a href=\"/\">" + esc(cfg.Title) + "</a></h1>\n")
	if cfg.Subtitle != "" {
		buf.WriteString("<p class=\"sidebar__subtitle\">" + esc(cfg.Subtitle) + "</p>\n")
	}
	if cfg.Author.Bio != "" {
		buf.WriteString("<p class=\"sidebar__bio\">" + esc(cfg.Author.Bio) + "</p>\n")
	}
	if len(cfg.Menu) > 0 {
		buf.WriteString("<nav class=\"menu\"><ul>\n")
		for _, item := range cfg.Menu {
			buf.WriteString("<li><a href=\"" + esc(item.Path) + "\">" + esc(item.Label) + "</a></li>\n")
		}
		buf.WriteString("</ul></nav>\n")
	}
	if len(cfg.Author.Contacts) > 0 {
		buf.WriteString("<ul class=\"contacts\">\n")
		for _, c := range cfg.Author.Contacts {
			buf.WriteString("<li><a href=\"" + esc(c.URL) + "\" rel=\"noopener noreferrer\">" + esc(c.Kind) + "</a></li>\n")
		}
		buf.WriteString("</ul>\n")
	}
	buf.WriteString("</aside>\n")
}

// paginationNav writes the older/newer links under a feed.
func paginationNav(buf *bytes.Buffer, pg Pagination) {
	if !pg.HasPrev && !pg.HasNext {
		return
	}
	buf.WriteString("<nav class=\"pagination\">")
	if pg.HasPrev {
		buf.WriteString("<a class=\"pagination__prev\" href=\"" + esc(pg.PrevPath) + "\">← Newer posts</a>")
	}
	if pg.HasNext {
		buf.WriteString("<a class=\"pagination__next\" href=\"" + esc(pg.NextPath) + "\">Older posts →</a>")
	}
	buf.WriteString("</nav>\n")
}
