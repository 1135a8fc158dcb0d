// Package stanza is a static blog generator built with Go, Goldmark, and
// templ. Markdown content files with YAML frontmatter become a complete
// static site: posts, pages, paginated feeds, tag pages, RSS, and sitemap.
//
// A Site performs one-shot builds; the preview server in serve.go adds live
// rebuilds and a file-backed admin editor on top.
package stanza

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Site is the central build orchestrator: configuration, content, routes,
// rendered output.
type Site struct {
	Config SiteConfig
	Cache  *BuildCache
	Drafts bool
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithDrafts includes nodes marked draft: true in the build.
func WithDrafts(v bool) Option {
	return func(s *Site) { s.Drafts = v }
}

// WithCache attaches a render cache so unchanged Markdown skips re-rendering.
func WithCache(c *BuildCache) Option {
	return func(s *Site) { s.Cache = c }
}

// New creates a Site for the given configuration.
func New(cfg SiteConfig, opts ...Option) *Site {
	s := &Site{Config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build renders the whole site into Config.OutputDir: every route, the RSS
// feed, the sitemap, robots.txt, and a verbatim copy of the static dir.
func (s *Site) Build(ctx context.Context) error {
	start := time.Now()
	cfg := s.Config

	nodes, err := LoadNodes(cfg.ContentDir, LoadOptions{Drafts: s.Drafts, Cache: s.Cache})
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	routes := BuildRoutes(cfg, nodes)
	slog.Info("Rendering site", "nodes", len(nodes), "routes", len(routes), "output", cfg.OutputDir)

	for _, r := range routes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := renderToFile(ctx, outputPath(cfg.OutputDir, r.Path), r.Component); err != nil {
			return fmt.Errorf("render %s: %w", r.Path, err)
		}
	}

	posts, _ := splitNodes(nodes)
	if err := WriteRSS(filepath.Join(cfg.OutputDir, "rss.xml"), cfg, posts); err != nil {
		return fmt.Errorf("write rss: %w", err)
	}
	if err := WriteSitemap(filepath.Join(cfg.OutputDir, "sitemap.xml"), cfg, routes); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	if err := writeRobots(filepath.Join(cfg.OutputDir, "robots.txt"), cfg); err != nil {
		return fmt.Errorf("write robots: %w", err)
	}
	if err := copyStatic(cfg.StaticDir, cfg.OutputDir); err != nil {
		return fmt.Errorf("copy static: %w", err)
	}

	slog.Info("Build complete", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// outputPath maps a route to its file on disk: dir-style routes become
// path/index.html, routes naming a file (404.html) are written verbatim.
func outputPath(outDir, route string) string {
	p := strings.Trim(route, "/")
	if p == "" {
		return filepath.Join(outDir, "index.html")
	}
	if strings.Contains(path.Base(p), ".") {
		return filepath.Join(outDir, filepath.FromSlash(p))
	}
	return filepath.Join(outDir, filepath.FromSlash(p), "index.html")
}

// renderToFile writes a templ component to path, creating parent dirs.
func renderToFile(ctx context.Context, path string, cmp templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := cmp.Render(ctx, f); err != nil {
		return err
	}
	return f.Close()
}

func writeRobots(path string, cfg SiteConfig) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", cfg.URL)
	return os.WriteFile(path, []byte(body), 0o644)
}

// copyStatic copies the static dir into the output dir. A missing static
// dir is not an error.
func copyStatic(staticDir, outDir string) error {
	info, err := os.Stat(staticDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("static path %s is not a directory", staticDir)
	}

	return filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	})
}
