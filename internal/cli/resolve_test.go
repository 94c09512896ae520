package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

func TestResolveID(t *testing.T) {
	store, err := todo.Open(filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	a, _ := store.Add("first", "", nil, "", 0)
	b, _ := store.Add("second", "", nil, "", 0)

	got, err := resolveID(store, a.ID)
	if err != nil || got != a.ID {
		t.Errorf("full id lookup failed: %v %v", got, err)
	}

	// Find a prefix unique to a.
	var prefix string
	for i := 4; i <= len(a.ID); i++ {
		if !strings.HasPrefix(b.ID, a.ID[:i]) {
			prefix = a.ID[:i]
			break
		}
	}

	got, err = resolveID(store, prefix)
	if err != nil || got != a.ID {
		t.Errorf("prefix lookup failed: %v %v", got, err)
	}

	if _, err := resolveID(store, "zzzz-not-a-uuid"); err == nil {
		t.Error("expected no-match error")
	}

	// The empty prefix matches everything.
	if _, err := resolveID(store, ""); err == nil {
		t.Error("expected ambiguity error")
	}
}
