package stanza

import (
	"fmt"
	"sort"

	"github.com/a-h/templ"
	"github.com/eringen/stanza/views"
)

// Route maps one output path to the component that renders it. The route
// set is immutable once built.
type Route struct {
	Path      string // site-absolute; dir-style unless it names a file
	LastMod   string // optional, surfaces in the sitemap
	Component templ.Component
	NoIndex   bool // excluded from the sitemap
}

// BuildRoutes maps the node set onto the full set of page routes: one route
// per post/page node, paginated index pages, the tags index, per-tag feeds,
// and the 404 page. Output is deterministic for a given input.
func BuildRoutes(cfg SiteConfig, nodes []Node) []Route {
	v := viewConfig(cfg)
	posts, pages := splitNodes(nodes)

	var routes []Route
	for _, n := range pages {
		routes = append(routes, Route{
			Path:      n.Slug,
			LastMod:   n.Date,
			Component: views.Page(v, viewPage(n)),
		})
	}
	for _, n := range posts {
		routes = append(routes, Route{
			Path:      n.Slug,
			LastMod:   n.Date,
			Component: views.Post(v, viewPost(n)),
		})
	}
	routes = append(routes, indexRoutes(cfg, v, posts)...)
	routes = append(routes, tagRoutes(cfg, v, posts)...)
	routes = append(routes, Route{
		Path:      "/404.html",
		Component: views.NotFound(v),
		NoIndex:   true,
	})
	return routes
}

// indexRoutes paginates all posts into ceil(n/postsPerPage) front pages:
// the first at /, the rest at /page/1/, /page/2/, ...
func indexRoutes(cfg SiteConfig, v views.SiteConfig, posts []Node) []Route {
	total := pageCount(len(posts), cfg.PostsPerPage)
	routes := make([]Route, 0, total)
	for i := 0; i < total; i++ {
		slice, pg := feedPage(posts, cfg.PostsPerPage, i, total, indexPagePath)
		routes = append(routes, Route{
			Path:      indexPagePath(i),
			Component: views.Home(v, viewPosts(slice), pg),
		})
	}
	return routes
}

// tagRoutes builds the /tags/ index plus a paginated feed per tag.
func tagRoutes(cfg SiteConfig, v views.SiteConfig, posts []Node) []Route {
	type tagGroup struct {
		label string
		path  string
		posts []Node
	}
	groups := map[string]*tagGroup{}
	for _, n := range posts {
		for i, t := range n.Tags {
			slug := n.TagSlugs[i]
			g, ok := groups[slug]
			if !ok {
				g = &tagGroup{label: t, path: slug}
				groups[slug] = g
			}
			g.posts = append(g.posts, n)
		}
	}

	ordered := make([]*tagGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].path < ordered[j].path })

	counts := make([]views.TagCount, 0, len(ordered))
	for _, g := range ordered {
		counts = append(counts, views.TagCount{Label: g.label, Path: g.path, Count: len(g.posts)})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Path < counts[j].Path
	})

	routes := []Route{{Path: "/tags/", Component: views.Tags(v, counts)}}
	for _, g := range ordered {
		pagePath := tagPagePath(g.path)
		total := pageCount(len(g.posts), cfg.PostsPerPage)
		for i := 0; i < total; i++ {
			slice, pg := feedPage(g.posts, cfg.PostsPerPage, i, total, pagePath)
			routes = append(routes, Route{
				Path:      pagePath(i),
				Component: views.Tag(v, g.label, viewPosts(slice), pg),
			})
		}
	}
	return routes
}

// pageCount is ceil(n/per); an empty feed still has one (empty) page.
func pageCount(n, per int) int {
	total := (n + per - 1) / per
	if total == 0 {
		total = 1
	}
	return total
}

// feedPage slices one page out of posts and describes its position. The
// first page omits the prev link and the last omits next.
func feedPage(posts []Node, per, i, total int, pathFor func(int) string) ([]Node, views.Pagination) {
	start := i * per
	end := start + per
	if end > len(posts) {
		end = len(posts)
	}
	pg := views.Pagination{
		Page:    i + 1,
		Total:   total,
		HasPrev: i > 0,
		HasNext: i < total-1,
	}
	if pg.HasPrev {
		pg.PrevPath = pathFor(i - 1)
	}
	if pg.HasNext {
		pg.NextPath = pathFor(i + 1)
	}
	return posts[start:end], pg
}

func indexPagePath(i int) string {
	if i <= 0 {
		return "/"
	}
	return fmt.Sprintf("/page/%d/", i)
}

func tagPagePath(base string) func(int) string {
	return func(i int) string {
		if i <= 0 {
			return base
		}
		return fmt.Sprintf("%spage/%d/", base, i)
	}
}

// viewConfig maps the site configuration onto the views' model, flattening
// the contacts map into a deterministic ordered list.
func viewConfig(cfg SiteConfig) views.SiteConfig {
	v := views.SiteConfig{
		Title:     cfg.Title,
		Subtitle:  cfg.Subtitle,
		URL:       cfg.URL,
		Copyright: cfg.Copyright,
		Author: views.Author{
			Name:  cfg.Author.Name,
			Photo: cfg.Author.Photo,
			Bio:   cfg.Author.Bio,
		},
	}
	kinds := make([]string, 0, len(cfg.Author.Contacts))
	for k := range cfg.Author.Contacts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		if url := cfg.Author.Contacts[k]; url != "" {
			v.Author.Contacts = append(v.Author.Contacts, views.Contact{Kind: k, URL: url})
		}
	}
	for _, m := range cfg.Menu {
		v.Menu = append(v.Menu, views.MenuItem{Label: m.Label, Path: m.Path})
	}
	return v
}

func viewPost(n Node) views.PostView {
	p := views.PostView{
		Title:       n.Title,
		Date:        n.Date,
		HTML:        n.HTML,
		Description: n.Description,
		Path:        n.Slug,
		Image:       n.SocialImage,
	}
	for i, t := range n.Tags {
		p.Tags = append(p.Tags, views.TagRef{Label: t, Path: n.TagSlugs[i]})
	}
	return p
}

func viewPage(n Node) views.PageView {
	return views.PageView{
		Title:       n.Title,
		HTML:        n.HTML,
		Description: n.Description,
		Path:        n.Slug,
	}
}

func viewPosts(nodes []Node) []views.PostView {
	out := make([]views.PostView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, viewPost(n))
	}
	return out
}
