package stanza

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a stanza site. It is loaded once
// at build start and treated as read-only for the remainder of the build.
type SiteConfig struct {
	URL       string `yaml:"url"`       // Canonical URL (default "http://localhost:3000")
	Title     string `yaml:"title"`     // Site title (default "Blog")
	Subtitle  string `yaml:"subtitle"`  // Tagline shown in the sidebar
	Copyright string `yaml:"copyright"` // Footer copyright line

	PostsPerPage int `yaml:"postsPerPage"` // Feed pagination size (default 8)

	Author Author     `yaml:"author"`
	Menu   []MenuItem `yaml:"menu"`

	ContentDir string `yaml:"contentDir"` // Markdown sources (default "content")
	StaticDir  string `yaml:"staticDir"`  // Copied verbatim into the output (default "static")
	OutputDir  string `yaml:"outputDir"`  // Generated site (default "public")
	CachePath  string `yaml:"cachePath"`  // Render cache SQLite path (default "data/cache.db")

	// Admin settings come from the environment, never from config.yml.
	AdminPassword string `yaml:"-"` // ADMIN_PASSWORD
	SessionSecret string `yaml:"-"` // ADMIN_SESSION_SECRET
	CookieSecure  bool   `yaml:"-"` // COOKIE_SECURE=true for HTTPS
}

// Author describes the site author shown in the sidebar and in feed metadata.
type Author struct {
	Name     string            `yaml:"name"`
	Photo    string            `yaml:"photo"`
	Bio      string            `yaml:"bio"`
	Contacts map[string]string `yaml:"contacts"`
}

// MenuItem is one entry of the site navigation menu.
type MenuItem struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// LoadConfig reads a YAML site configuration file, applies environment
// overrides, and fills in defaults.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	if v := os.Getenv("SITE_URL"); v != "" {
		c.URL = v
	}
	c.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	c.SessionSecret = os.Getenv("ADMIN_SESSION_SECRET")
	c.CookieSecure = strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true")
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 8
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.CachePath == "" {
		c.CachePath = "data/cache.db"
	}
}
