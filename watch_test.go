package stanza

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 1)

	w, err := NewWatcher([]string{dir}, nil, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("change callback never fired")
	}
}

func TestWatcherSkipsMissingDir(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{filepath.Join(dir, "does-not-exist")}, nil, func() {})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// A missing watch dir must not fail startup.
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
}

func TestWatcherRelevant(t *testing.T) {
	w := &Watcher{
		dirs:  []string{"content"},
		files: []string{"config.yml"},
	}
	if !w.relevant(filepath.Join("content", "posts", "a.md")) {
		t.Error("content file not relevant")
	}
	if !w.relevant("config.yml") {
		t.Error("watched file not relevant")
	}
	if w.relevant("unrelated.txt") {
		t.Error("unrelated file relevant")
	}
}
