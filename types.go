package stanza

// Node is one ingested Markdown content file plus the fields the build
// derives from its frontmatter and location.
type Node struct {
	File string // path relative to the content directory, slash-separated
	Kind string // template kind from frontmatter: "post", "page", or ""

	Title       string
	Date        string // YYYY-MM-DD or RFC 3339
	Tags        []string
	MainTag     string
	Description string
	SocialImage string
	Draft       bool

	Slug        string   // derived route, e.g. /posts/hello-world/
	TagSlugs    []string // aligned with Tags, e.g. /tag/ruby-on-rails/
	MainTagSlug string

	Body string // raw Markdown body
	HTML string // rendered body
}

// Image describes an uploaded media file managed through the admin editor.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// Template kinds recognized by the route builder. Nodes with any other
// template kind are ingested but not routed.
const (
	KindPost = "post"
	KindPage = "page"
)
