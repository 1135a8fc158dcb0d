package views

import (
	"bytes"
	"strconv"

	"github.com/a-h/templ"
)

// feedItems writes the post list shared by the home page and tag pages.
func feedItems(buf *bytes.Buffer, posts []PostView) {
	buf.WriteString("<div class=\"feed\">\n")
	for _, p := range posts {
		buf.WriteString("<article class=\"feed__item\">\n")
		if p.Date != "" {
			buf.WriteString("<time class=\"feed__item-date\" datetime=\"" + esc(p.Date) + "\">" + esc(displayDate(p.Date)) + "</time>\n")
		}
		buf.WriteString("<h2 class=\"feed__item-title\"><a href=\"" + esc(p.Path) + "\">" + esc(p.Title) + "</a></h2>\n")
		if p.Description != "" {
			buf.WriteString("<p class=\"feed__item-description\">" + esc(p.Description) + "</p>\n")
		}
		buf.WriteString("<a class=\"feed__item-readmore\" href=\"" + esc(p.Path) + "\">Read</a>\n")
		buf.WriteString("</article>\n")
	}
	buf.WriteString("</div>\n")
}

// Home renders one page of the front-page post feed.
func Home(cfg SiteConfig, posts []PostView, pg Pagination) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{
			Title:       homeTitle(cfg, pg),
			Description: cfg.Subtitle,
			URL:         absURL(cfg.URL, indexMetaPath(pg)),
			OGType:      "website",
		}
		layout(buf, cfg, meta, WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
			feedItems(buf, posts)
			paginationNav(buf, pg)
		})
	})
}

// Tag renders one page of a tag feed.
func Tag(cfg SiteConfig, label string, posts []PostView, pg Pagination) templ.Component {
	return component(func(buf *bytes.Buffer) {
		title := label + " — " + cfg.Title
		if pg.Page > 1 {
			title = label + " — page " + strconv.Itoa(pg.Page) + " — " + cfg.Title
		}
		meta := PageMeta{
			Title:       title,
			Description: cfg.Subtitle,
			OGType:      "website",
		}
		layout(buf, cfg, meta, WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
			buf.WriteString("<h1 class=\"page__title\">" + esc(label) + "</h1>\n")
			feedItems(buf, posts)
			paginationNav(buf, pg)
		})
	})
}

// Tags renders the tags index.
func Tags(cfg SiteConfig, tags []TagCount) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := PageMeta{
			Title:  "Tags — " + cfg.Title,
			URL:    absURL(cfg.URL, "/tags/"),
			OGType: "website",
		}
		layout(buf, cfg, meta, WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
			buf.WriteString("<h1 class=\"page__title\">Tags</h1>\n<ul class=\"tags\">\n")
			for _, t := range tags {
				buf.WriteString("<li><a href=\"" + esc(t.Path) + "\">" + esc(t.Label) +
					" (" + strconv.Itoa(t.Count) + ")</a></li>\n")
			}
			buf.WriteString("</ul>\n")
		})
	})
}

func homeTitle(cfg SiteConfig, pg Pagination) string {
	if pg.Page > 1 {
		return cfg.Title + " — page " + strconv.Itoa(pg.Page)
	}
	return cfg.Title
}

func indexMetaPath(pg Pagination) string {
	if pg.Page <= 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(pg.Page-1) + "/"
}
