package stanza

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRebuildReloadsConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yml")
	writeConfig := func(title string) {
		t.Helper()
		doc := fmt.Sprintf(
			"url: https://example.com\ntitle: %s\ncontentDir: %s\nstaticDir: %s\noutputDir: %s\n",
			title,
			filepath.Join(root, "content"),
			filepath.Join(root, "static"),
			filepath.Join(root, "public"),
		)
		if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeConfig("First Title")
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	writeContent(t, cfg.ContentDir, "posts/hello.md",
		"---\ntemplate: post\ntitle: Hello\ndate: \"2024-01-01\"\n---\nHi.\n")
	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		t.Fatal(err)
	}

	srv := NewServer(New(cfg), ":0", cfgPath)
	srv.Rebuild(context.Background())
	if out := readOutput(t, srv.Site, "index.html"); !strings.Contains(out, "First Title") {
		t.Fatal("initial title missing from front page")
	}

	// Editing config.yml must show up in the next rebuild.
	writeConfig("Second Title")
	srv.Rebuild(context.Background())
	if srv.Site.Config.Title != "Second Title" {
		t.Errorf("Title = %q after reload", srv.Site.Config.Title)
	}
	if out := readOutput(t, srv.Site, "index.html"); !strings.Contains(out, "Second Title") {
		t.Error("updated title missing from front page")
	}

	// A broken config keeps the previous one instead of wedging the server.
	if err := os.WriteFile(cfgPath, []byte(":\nnot yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	srv.Rebuild(context.Background())
	if srv.Site.Config.Title != "Second Title" {
		t.Errorf("Title = %q after failed reload", srv.Site.Config.Title)
	}
}

func TestRebuildWithoutConfigPath(t *testing.T) {
	site := testSite(t, 5)
	srv := NewServer(site, ":0", "")
	srv.Rebuild(context.Background())
	if out := readOutput(t, srv.Site, "index.html"); !strings.Contains(out, "Test Blog") {
		t.Error("front page missing after rebuild")
	}
}
