package stanza

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the content tree and the config file and triggers a
// debounced rebuild callback when something changes.
type Watcher struct {
	dirs     []string
	files    []string
	onChange func()

	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	stopChan   chan struct{}
	changeChan chan struct{}
	debounce   time.Duration
}

// NewWatcher creates a Watcher over the given directories (recursive) and
// individual files. onChange runs after changes settle.
func NewWatcher(dirs, files []string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		dirs:       dirs,
		files:      files,
		onChange:   onChange,
		watcher:    fsw,
		stopChan:   make(chan struct{}),
		changeChan: make(chan struct{}, 1),
		debounce:   500 * time.Millisecond,
	}, nil
}

// Start registers all watch paths and begins the event and rebuild loops.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}
	for _, file := range w.files {
		// Watching the parent dir survives editors that rename-on-save.
		if err := w.watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
	}

	slog.Info("Watching for changes", "dirs", w.dirs, "files", w.files)
	go w.eventLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop shuts down the watcher and its goroutines.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	close(w.stopChan)
	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", "error", err)
	}
}

// addTree watches dir and every subdirectory under it. A missing dir is
// skipped so a site without a static dir still serves.
func (w *Watcher) addTree(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("Watch directory missing, skipping", "dir", dir)
		return nil
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			slog.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				// New subdirectories are not watched automatically.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						slog.Error("Failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			w.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// relevant filters events from watched parent dirs down to the files and
// trees we actually care about.
func (w *Watcher) relevant(name string) bool {
	for _, f := range w.files {
		if filepath.Clean(name) == filepath.Clean(f) {
			return true
		}
	}
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, name)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.changeChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.changeChan <- struct{}{}:
	default:
	}
}
