package stanza

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	doc := `url: "https://example.com/"
title: "Pensieve"
subtitle: "Notes of a programmer"
postsPerPage: 4
author:
  name: "John Doe"
  contacts:
    email: "mailto:john@example.com"
menu:
  - label: "Articles"
    path: "/"
contentDir: "site-content"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "Pensieve" {
		t.Errorf("Title = %q", cfg.Title)
	}
	// Trailing slash on the base URL is stripped.
	if cfg.URL != "https://example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.PostsPerPage != 4 {
		t.Errorf("PostsPerPage = %d", cfg.PostsPerPage)
	}
	if cfg.ContentDir != "site-content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	// Unset fields fall back to defaults.
	if cfg.OutputDir != "public" || cfg.StaticDir != "static" || cfg.CachePath != "data/cache.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Author.Name != "John Doe" || len(cfg.Menu) != 1 {
		t.Errorf("author/menu not parsed: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("url: \"https://example.com\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SITE_URL", "https://staging.example.com")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("ADMIN_SESSION_SECRET", "s3cret")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.URL != "https://staging.example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.AdminPassword != "hunter2" || cfg.SessionSecret != "s3cret" || !cfg.CookieSecure {
		t.Errorf("env admin settings not applied: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("title: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
