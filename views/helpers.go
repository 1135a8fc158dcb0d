package views

import (
	"encoding/json"
	"html"
	"net/url"
	"path"
	"strings"
	"time"
)

// esc escapes text for HTML element content and attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// absURL resolves a site-absolute route against the base URL.
func absURL(base, route string) string {
	return strings.TrimSuffix(base, "/") + route
}

// displayDate formats a frontmatter date for humans; unparseable dates are
// shown as-is.
func displayDate(date string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return date
}

// PathEscape wraps url.PathEscape for use in component expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Title,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Subtitle != "" {
		data["description"] = cfg.Subtitle
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post PostView) string {
	postURL := absURL(cfg.URL, post.Path)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	if cfg.Title != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Title,
		}
	}
	if len(post.Tags) > 0 {
		labels := make([]string, len(post.Tags))
		for i, t := range post.Tags {
			labels[i] = t.Label
		}
		data["keywords"] = strings.Join(labels, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
