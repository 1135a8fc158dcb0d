package stanza

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eringen/stanza/frontmatter"
	"github.com/eringen/stanza/markdown"
)

// LoadOptions control content ingestion.
type LoadOptions struct {
	Drafts bool        // include nodes marked draft: true
	Cache  *BuildCache // optional render cache; nil renders everything
}

// LoadNodes walks the content directory and builds one Node per Markdown
// file. The result is sorted by file path so ingestion order never depends
// on filesystem iteration.
func LoadNodes(contentDir string, opts LoadOptions) ([]Node, error) {
	var nodes []Node
	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(contentDir, p)
		if err != nil {
			return err
		}
		node, err := loadNode(contentDir, filepath.ToSlash(rel), opts)
		if err != nil {
			return fmt.Errorf("load %s: %w", rel, err)
		}
		if node.Draft && !opts.Drafts {
			return nil
		}
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].File < nodes[j].File })
	return nodes, nil
}

func loadNode(contentDir, rel string, opts LoadOptions) (Node, error) {
	raw, err := os.ReadFile(filepath.Join(contentDir, filepath.FromSlash(rel)))
	if err != nil {
		return Node{}, err
	}
	head, body, had, err := frontmatter.Split(raw)
	if err != nil {
		return Node{}, err
	}
	var meta frontmatter.Meta
	if had {
		if meta, err = frontmatter.Parse(head); err != nil {
			return Node{}, err
		}
	}

	node := Node{
		File:        rel,
		Kind:        strings.TrimSpace(meta.Template),
		Title:       strings.TrimSpace(meta.Title),
		Date:        strings.TrimSpace(meta.Date),
		Tags:        FilterEmpty(meta.Tags),
		MainTag:     strings.TrimSpace(meta.MainTag),
		Description: strings.TrimSpace(meta.Description),
		SocialImage: strings.TrimSpace(meta.SocialImage),
		Draft:       meta.Draft,
		Body:        string(body),
	}
	annotate(&node, strings.TrimSpace(meta.Slug))

	html, err := renderBody(rel, body, opts.Cache)
	if err != nil {
		return Node{}, err
	}
	node.HTML = html
	if node.Description == "" {
		node.Description = markdown.Excerpt(node.HTML, 160)
	}
	return node, nil
}

// annotate attaches derived slug fields to a node. An explicit frontmatter
// slug composes with the file's containing directory; otherwise the route
// derives from the file location alone, with name/index.md collapsing to
// name/. Absent fields simply skip derivation.
func annotate(n *Node, explicit string) {
	dir := path.Dir(n.File)
	name := strings.TrimSuffix(path.Base(n.File), ".md")

	if explicit != "" {
		n.Slug = routePath(dir, explicit)
	} else {
		if name == "index" && dir != "." {
			name = path.Base(dir)
			dir = path.Dir(dir)
		}
		n.Slug = routePath(dir, name)
	}

	for _, t := range n.Tags {
		n.TagSlugs = append(n.TagSlugs, TagPath(t))
	}
	if n.MainTag != "" {
		n.MainTagSlug = TagPath(n.MainTag)
	}
}

func routePath(dir, name string) string {
	if dir == "." || dir == "" {
		return "/" + name + "/"
	}
	return "/" + path.Join(dir, name) + "/"
}

func renderBody(rel string, body []byte, cache *BuildCache) (string, error) {
	render := func() (string, error) {
		out, err := markdown.Render(body)
		return string(out), err
	}
	if cache == nil {
		return render()
	}
	return cache.RenderedHTML(rel, body, render)
}

// splitNodes partitions nodes by template kind. Posts come back sorted
// newest first (slug as tiebreak) so pagination is stable across builds.
func splitNodes(nodes []Node) (posts, pages []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindPost:
			posts = append(posts, n)
		case KindPage:
			pages = append(pages, n)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		ti, oki := nodeTime(posts[i].Date)
		tj, okj := nodeTime(posts[j].Date)
		switch {
		case oki && okj && !ti.Equal(tj):
			return ti.After(tj)
		case oki != okj:
			return oki // undated posts sort last
		default:
			return posts[i].Slug < posts[j].Slug
		}
	})
	return posts, pages
}

// nodeTime parses a node date, accepting date-only and RFC 3339 stamps.
func nodeTime(date string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
