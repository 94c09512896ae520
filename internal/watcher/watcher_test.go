package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

func startWatcher(t *testing.T, store *todo.Store, root string) {
	t.Helper()

	config := DefaultConfig()
	config.DebounceWindow = 20 * time.Millisecond

	w, err := New(config, store)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Watch(ctx, root); err != nil {
			t.Errorf("watch: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register the tree.
	time.Sleep(50 * time.Millisecond)
}

func waitForCount(t *testing.T, store *todo.Store, filter todo.Filter, want int) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		todos, err := store.GetAll(filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(todos) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	todos, _ := store.GetAll(filter)
	t.Fatalf("timed out waiting for %d todos, have %d: %+v", want, len(todos), todos)
}

func openStore(t *testing.T) *todo.Store {
	t.Helper()

	store, err := todo.Open(filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWatcherImportsNewFile(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	startWatcher(t, store, root)

	path := filepath.Join(root, "feature.go")
	if err := os.WriteFile(path, []byte("// TODO: implement the feature\n"), 0644); err != nil {
		t.Fatal(err)
	}

	waitForCount(t, store, todo.Filter{}, 1)

	todos, _ := store.GetAll(todo.Filter{})
	if todos[0].Content != "implement the feature" {
		t.Errorf("got %+v", todos[0])
	}
	if todos[0].FilePath != path {
		t.Errorf("file path: %q", todos[0].FilePath)
	}
}

func TestWatcherReconcilesEditedFile(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	startWatcher(t, store, root)

	path := filepath.Join(root, "edit.go")
	if err := os.WriteFile(path, []byte("// TODO: first version\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitForCount(t, store, todo.Filter{}, 1)

	if err := os.WriteFile(path, []byte("// TODO: second version\n// FIXME: also this\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitForCount(t, store, todo.Filter{}, 2)

	todos, _ := store.GetAll(todo.Filter{})
	for _, item := range todos {
		if item.Content == "first version" {
			t.Errorf("stale todo survived the edit: %+v", item)
		}
	}
}

func TestWatcherDropsPendingOnDelete(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	startWatcher(t, store, root)

	path := filepath.Join(root, "gone.go")
	if err := os.WriteFile(path, []byte("// TODO: short lived\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitForCount(t, store, todo.Filter{}, 1)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitForCount(t, store, todo.Filter{}, 0)
}

func TestWatcherIgnoresHiddenAndVendored(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "vendor", "dep"), 0755); err != nil {
		t.Fatal(err)
	}
	startWatcher(t, store, root)

	ignored := filepath.Join(root, "vendor", "dep", "lib.go")
	if err := os.WriteFile(ignored, []byte("// TODO: vendored\n"), 0644); err != nil {
		t.Fatal(err)
	}
	kept := filepath.Join(root, "app.go")
	if err := os.WriteFile(kept, []byte("// TODO: app level\n"), 0644); err != nil {
		t.Fatal(err)
	}

	waitForCount(t, store, todo.Filter{}, 1)

	todos, _ := store.GetAll(todo.Filter{})
	if todos[0].Content != "app level" {
		t.Errorf("wrong todo imported: %+v", todos[0])
	}
}
