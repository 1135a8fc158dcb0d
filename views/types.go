package views

// SiteConfig holds the site-wide values templates render: branding, author
// sidebar, and navigation. The root package maps its configuration onto
// this type so views stay free of build concerns.
type SiteConfig struct {
	Title     string
	Subtitle  string
	URL       string // canonical base URL
	Copyright string
	Author    Author
	Menu      []MenuItem
}

// Author is the sidebar author block.
type Author struct {
	Name     string
	Photo    string
	Bio      string
	Contacts []Contact // ordered for deterministic rendering
}

// Contact is one external profile link (email, github, twitter, rss, ...).
type Contact struct {
	Kind string
	URL  string
}

// MenuItem is one navigation entry.
type MenuItem struct {
	Label string
	Path  string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, optional
}

// PostView is the post-template view model.
type PostView struct {
	Title       string
	Date        string
	HTML        string
	Description string
	Path        string
	Image       string
	Tags        []TagRef
}

// PageView is the page-template view model.
type PageView struct {
	Title       string
	HTML        string
	Description string
	Path        string
}

// TagRef links a tag label to its route.
type TagRef struct {
	Label string
	Path  string
}

// TagCount is one entry of the tags index.
type TagCount struct {
	Label string
	Path  string
	Count int
}

// Pagination describes a feed page's position. The first page has no prev
// link and the last no next link.
type Pagination struct {
	Page     int // 1-based
	Total    int
	HasPrev  bool
	HasNext  bool
	PrevPath string
	NextPath string
}

// AdminEntry is one content file row in the admin dashboard and edit form.
type AdminEntry struct {
	Slug        string
	File        string
	Kind        string
	Title       string
	Date        string
	Tags        string // comma-joined for the form field
	MainTag     string
	Description string
	SocialImage string
	Draft       bool
	Body        string
}
