package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// Post renders a single post page: title, body, date and tags footer.
func Post(cfg SiteConfig, post PostView) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{
			Title:       post.Title + " — " + cfg.Title,
			Description: post.Description,
			URL:         absURL(cfg.URL, post.Path),
			OGType:      "article",
			Image:       post.Image,
		}
		layout(buf, cfg, meta, BlogPostingJsonLD(cfg, post), func(buf *bytes.Buffer) {
			buf.WriteString("<article class=\"post\">\n")
			buf.WriteString("<h1 class=\"post__title\">" + esc(post.Title) + "</h1>\n")
			buf.WriteString("<div class=\"post__body\">\n")
			buf.WriteString(post.HTML)
			buf.WriteString("\n</div>\n")
			buf.WriteString("<footer class=\"post__footer\">\n")
			if post.Date != "" {
				buf.WriteString("<time class=\"post__date\" datetime=\"" + esc(post.Date) + "\">Published " + esc(displayDate(post.Date)) + "</time>\n")
			}
			if len(post.Tags) > 0 {
				buf.WriteString("<ul class=\"post__tags\">\n")
				for _, t := range post.Tags {
					buf.WriteString("<li><a href=\"" + esc(t.Path) + "\">" + esc(t.Label) + "</a></li>\n")
				}
				buf.WriteString("</ul>\n")
			}
			buf.WriteString("</footer>\n</article>\n")
		})
	})
}

// Page renders a plain content page.
func Page(cfg SiteConfig, page PageView) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{
			Title:       page.Title + " — " + cfg.Title,
			Description: page.Description,
			URL:         absURL(cfg.URL, page.Path),
			OGType:      "website",
		}
		layout(buf, cfg, meta, WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
			buf.WriteString("<article class=\"page\">\n")
			buf.WriteString("<h1 class=\"page__title\">" + esc(page.Title) + "</h1>\n")
			buf.WriteString("<div class=\"page__body\">\n")
			buf.WriteString(page.HTML)
			buf.WriteString("\n</div>\n</article>\n")
		})
	})
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{Title: "Not found — " + cfg.Title, OGType: "website"}
		layout(buf, cfg, meta, "", func(buf *bytes.Buffer) {
			buf.WriteString("<h1 class=\"page__title\">Page not found</h1>\n")
			buf.WriteString("<p>You just hit a route that doesn't exist.</p>\n")
			buf.WriteString("<p><a href=\"/\">Back to the front page</a></p>\n")
		})
	})
}
