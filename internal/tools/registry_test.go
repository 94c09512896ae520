package tools

import (
	"encoding/json"
	"testing"
)

type namedTool struct {
	name string
}

func (t *namedTool) Name() string            { return t.name }
func (t *namedTool) Description() string     { return "test tool" }
func (t *namedTool) Schema() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }
func (t *namedTool) Execute(json.RawMessage) (interface{}, error) {
	return nil, nil
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&namedTool{name: "alpha"}); err != nil {
		t.Fatal(err)
	}

	tool, ok := r.Get("alpha")
	if !ok {
		t.Fatal("registered tool not found")
	}
	if tool.Name() != "alpha" {
		t.Errorf("got %q", tool.Name())
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("unregistered tool should not resolve")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&namedTool{name: "alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&namedTool{name: "alpha"}); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	r := NewRegistry()
	r.MustRegister(&namedTool{name: "alpha"}, &namedTool{name: "alpha"})
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&namedTool{name: "charlie"}, &namedTool{name: "alpha"}, &namedTool{name: "bravo"})

	list := r.List()
	want := []string{"charlie", "alpha", "bravo"}
	if len(list) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name() != name {
			t.Errorf("position %d: got %q, want %q", i, list[i].Name(), name)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&namedTool{name: "charlie"}, &namedTool{name: "alpha"}, &namedTool{name: "bravo"})

	names := r.Names()
	want := []string{"alpha", "bravo", "charlie"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("position %d: got %q, want %q", i, names[i], name)
		}
	}
}
