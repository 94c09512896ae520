package tools

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Tool is a named operation exposed over tools/list and tools/call.
// Execute receives the raw caller-supplied arguments and returns either a
// JSON-serializable result or an error; it must never panic the process
// on remote or input failure.
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Execute(args json.RawMessage) (interface{}, error)
}

// Registry is the static tool table built once at startup. It is not
// mutated after registration, so reads need no locking.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers a set of tools and panics on a duplicate name.
// Registration happens before the read loop starts, so a duplicate is a
// programming error, not a runtime condition.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns tools in registration order so tools/list output is stable.
func (r *Registry) List() []Tool {
	result := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
