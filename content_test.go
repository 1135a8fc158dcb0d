package stanza

import (
	"os"
	"path/filepath"
	"testing"
)

func writeContent(t *testing.T, dir, rel, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func findNode(t *testing.T, nodes []Node, file string) Node {
	t.Helper()
	for _, n := range nodes {
		if n.File == file {
			return n
		}
	}
	t.Fatalf("node %s not found in %d nodes", file, len(nodes))
	return Node{}
}

func TestLoadNodesSlugFromLocation(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "pages/about.md", "---\ntemplate: page\ntitle: About\n---\nhi\n")
	writeContent(t, dir, "pages/contact/index.md", "---\ntemplate: page\ntitle: Contact\n---\nhi\n")
	writeContent(t, dir, "root.md", "no frontmatter here\n")

	nodes, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if got := findNode(t, nodes, "pages/about.md").Slug; got != "/pages/about/" {
		t.Errorf("about slug = %q", got)
	}
	// index.md collapses into its directory.
	if got := findNode(t, nodes, "pages/contact/index.md").Slug; got != "/pages/contact/" {
		t.Errorf("contact slug = %q", got)
	}
	if got := findNode(t, nodes, "root.md").Slug; got != "/root/" {
		t.Errorf("root slug = %q", got)
	}
}

func TestLoadNodesExplicitSlug(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/some-file.md",
		"---\ntemplate: post\ntitle: Hello\nslug: custom-name\ndate: \"2024-01-01\"\n---\nbody\n")

	nodes, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	// Explicit slug composes with the containing directory.
	if got := nodes[0].Slug; got != "/posts/custom-name/" {
		t.Errorf("slug = %q", got)
	}
}

func TestLoadNodesTagSlugs(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/p.md",
		"---\ntemplate: post\ntitle: P\ntags:\n  - Ruby on Rails\n  - Go\nmainTag: Ruby on Rails\n---\nbody\n")

	nodes, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	n := nodes[0]
	if len(n.TagSlugs) != 2 || n.TagSlugs[0] != "/tag/ruby-on-rails/" || n.TagSlugs[1] != "/tag/go/" {
		t.Errorf("TagSlugs = %v", n.TagSlugs)
	}
	if n.MainTagSlug != "/tag/ruby-on-rails/" {
		t.Errorf("MainTagSlug = %q", n.MainTagSlug)
	}
}

func TestLoadNodesDrafts(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/live.md", "---\ntemplate: post\ntitle: Live\n---\nbody\n")
	writeContent(t, dir, "posts/wip.md", "---\ntemplate: post\ntitle: WIP\ndraft: true\n---\nbody\n")

	nodes, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Title != "Live" {
		t.Fatalf("expected only the published node, got %v", nodes)
	}

	nodes, err = LoadNodes(dir, LoadOptions{Drafts: true})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected both nodes with drafts enabled, got %d", len(nodes))
	}
}

func TestLoadNodesDescriptionFallback(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/p.md", "---\ntemplate: post\ntitle: P\n---\nOpening sentence of the post.\n")

	nodes, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	if nodes[0].Description != "Opening sentence of the post." {
		t.Errorf("Description = %q", nodes[0].Description)
	}
}

func TestLoadNodesDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "posts/b.md", "---\ntemplate: post\ntitle: B\n---\nb\n")
	writeContent(t, dir, "posts/a.md", "---\ntemplate: post\ntitle: A\n---\na\n")
	writeContent(t, dir, "pages/z.md", "---\ntemplate: page\ntitle: Z\n---\nz\n")

	first, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	second, err := LoadNodes(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	for i := range first {
		if first[i].File != second[i].File {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i].File, second[i].File)
		}
	}
	if first[0].File != "pages/z.md" {
		t.Errorf("expected path-sorted nodes, first = %s", first[0].File)
	}
}

func TestSplitNodesSortsPostsByDate(t *testing.T) {
	nodes := []Node{
		{Kind: KindPost, Slug: "/posts/old/", Date: "2020-01-01"},
		{Kind: KindPost, Slug: "/posts/new/", Date: "2024-06-15"},
		{Kind: KindPost, Slug: "/posts/undated/"},
		{Kind: KindPage, Slug: "/pages/about/"},
		{Kind: "photo", Slug: "/photos/x/"},
	}
	posts, pages := splitNodes(nodes)
	if len(posts) != 3 || len(pages) != 1 {
		t.Fatalf("split = %d posts, %d pages", len(posts), len(pages))
	}
	if posts[0].Slug != "/posts/new/" || posts[1].Slug != "/posts/old/" {
		t.Errorf("posts not newest-first: %v", posts)
	}
	// Undated posts sort last.
	if posts[2].Slug != "/posts/undated/" {
		t.Errorf("undated post not last: %v", posts)
	}
}

func TestNodeTime(t *testing.T) {
	if _, ok := nodeTime("2024-01-15"); !ok {
		t.Error("date-only stamp rejected")
	}
	if _, ok := nodeTime("2024-01-15T10:30:00Z"); !ok {
		t.Error("RFC 3339 stamp rejected")
	}
	if _, ok := nodeTime("January 15"); ok {
		t.Error("garbage accepted")
	}
	if _, ok := nodeTime(""); ok {
		t.Error("empty accepted")
	}
}
