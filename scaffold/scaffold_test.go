package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	data := Data{SiteName: "My Blog", Date: "2024-01-15"}
	if err := Generate(dir, data, false); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, rel := range []string{
		"config.yml",
		".env.example",
		".gitignore",
		"content/posts/hello-world.md",
		"content/pages/about/index.md",
		"static/css/main.css",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfg), `title: "My Blog"`) {
		t.Errorf("site name not templated: %s", cfg)
	}

	post, err := os.ReadFile(filepath.Join(dir, "content", "posts", "hello-world.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), `date: "2024-01-15"`) {
		t.Errorf("date not templated: %s", post)
	}
	if strings.Contains(string(post), "{{") {
		t.Errorf("unexpanded template syntax: %s", post)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Generate(dir, Data{SiteName: "X"}, false); err == nil {
		t.Fatal("expected error for existing file")
	}
	// The pre-existing file survives.
	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	if err != nil || string(data) != "mine" {
		t.Errorf("existing file clobbered: %q %v", data, err)
	}
}

func TestGenerateForce(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Generate(dir, Data{SiteName: "X"}, true); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `title: "X"`) {
		t.Errorf("force overwrite did not happen: %q", data)
	}
}
