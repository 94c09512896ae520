package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/scan"
	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

var log = logger.ForComponent("watcher")

type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
)

type FileEvent struct {
	Path string
	Type EventType
}

type Config struct {
	DebounceWindow time.Duration
	MaxBatchSize   int
	IgnorePatterns []string
}

func DefaultConfig() Config {
	return Config{
		DebounceWindow: 300 * time.Millisecond,
		MaxBatchSize:   100,
		IgnorePatterns: scan.DefaultIgnorePatterns,
	}
}

// Watcher keeps the todo store in sync with TODO comments in a source
// tree: on each debounced change batch, affected files are re-scanned and
// their pending scanned todos replaced.
type Watcher struct {
	config    Config
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	scanner   *scan.Scanner
	store     *todo.Store
	root      string
	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
}

func New(config Config, store *todo.Store) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:    config,
		fsWatcher: fsWatcher,
		scanner:   scan.NewScanner(config.IgnorePatterns),
		store:     store,
	}
	w.debouncer = NewDebouncer(config.DebounceWindow, config.MaxBatchSize, w.onFlush)

	return w, nil
}

// Watch registers root and all non-ignored subdirectories, then processes
// events until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.root = abs

	if err := w.addTree(abs); err != nil {
		return err
	}

	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	log.Info("watching", "root", abs)
	w.handleEvents(ctx)
	return nil
}

func (w *Watcher) addTree(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if w.shouldIgnore(full) {
			continue
		}
		if err := w.addTree(full); err != nil {
			log.Debug("cannot watch directory", "path", full, "error", err)
		}
	}

	return nil
}

func (w *Watcher) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.debouncer.Stop()
			w.fsWatcher.Close()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldIgnore(event.Name) {
					if err := w.addTree(event.Name); err != nil {
						log.Debug("cannot watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if fe := w.convertEvent(event); fe != nil {
				w.debouncer.Add(*fe)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) convertEvent(event fsnotify.Event) *FileEvent {
	if w.shouldIgnore(event.Name) {
		return nil
	}

	var eventType EventType
	switch {
	case event.Has(fsnotify.Create):
		eventType = EventCreate
	case event.Has(fsnotify.Write):
		eventType = EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eventType = EventDelete
	default:
		return nil
	}

	return &FileEvent{Path: event.Name, Type: eventType}
}

// onFlush reconciles one debounced batch: pending scanned todos for each
// touched file are dropped and re-imported from the file's current
// contents. Deleted files just lose their pending todos.
func (w *Watcher) onFlush(events []FileEvent) {
	for _, event := range events {
		if err := w.store.DeleteByFile(event.Path); err != nil {
			log.Warn("reconcile failed", "path", event.Path, "error", err)
			continue
		}

		if event.Type == EventDelete {
			continue
		}

		items, err := w.scanner.ScanFile(event.Path)
		if err != nil {
			log.Debug("cannot rescan file", "path", event.Path, "error", err)
			continue
		}

		imported, err := todo.ImportScanned(w.store, items)
		if err != nil {
			log.Warn("import failed", "path", event.Path, "error", err)
			continue
		}
		if imported > 0 {
			log.Info("imported todos", "path", event.Path, "count", imported)
		}
	}
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}

	rel := path
	if w.root != "" {
		if r, err := filepath.Rel(w.root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// Stop cancels the event loop started by Watch.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	w.cancel()
}
