package todo

import (
	"encoding/json"
	"fmt"

	"github.com/thatguyinabeanie/todo-mcp/internal/scan"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
)

// GetTools returns the todo server's registry contents, all bound to the
// same store.
func GetTools(store *Store) []tools.Tool {
	return []tools.Tool{
		&ListTool{store: store},
		&GetTool{store: store},
		&AddTool{store: store},
		&UpdateTool{store: store},
		&CompleteTool{store: store},
		&DeleteTool{store: store},
		&SearchTool{store: store},
		&ScanTool{store: store},
		&StatsTool{store: store},
	}
}

type ListTool struct {
	store *Store
}

func (t *ListTool) Name() string { return "list_todos" }

func (t *ListTool) Description() string {
	return "List todos, optionally filtered by status, priority, or tag"
}

func (t *ListTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"status": {
				"type": "string",
				"description": "Filter by status",
				"enum": ["pending", "done"]
			},
			"priority": {
				"type": "string",
				"description": "Filter by priority",
				"enum": ["low", "medium", "high"]
			},
			"tag": {
				"type": "string",
				"description": "Only todos carrying this tag"
			}
		}
	}`)
}

func (t *ListTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Tag      string `json:"tag"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	todos, err := t.store.GetAll(Filter{
		Status:   Status(req.Status),
		Priority: Priority(req.Priority),
		Tag:      req.Tag,
	})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"todos": todos, "count": len(todos)}, nil
}

type GetTool struct {
	store *Store
}

func (t *GetTool) Name() string { return "get_todo" }

func (t *GetTool) Description() string {
	return "Fetch a single todo by id"
}

func (t *GetTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {
				"type": "string",
				"description": "Todo id"
			}
		},
		"required": ["id"]
	}`)
}

func (t *GetTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ID == "" {
		return nil, tools.NewMissingArgumentError("id")
	}

	return t.store.Get(req.ID)
}

type AddTool struct {
	store *Store
}

func (t *AddTool) Name() string { return "add_todo" }

func (t *AddTool) Description() string {
	return "Add a todo. Priority defaults to a keyword heuristic over the content when omitted."
}

func (t *AddTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"content": {
				"type": "string",
				"description": "Todo text"
			},
			"priority": {
				"type": "string",
				"enum": ["low", "medium", "high"],
				"description": "Explicit priority (optional)"
			},
			"tags": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Tags (optional)"
			},
			"file_path": {
				"type": "string",
				"description": "Source file the todo refers to (optional)"
			},
			"line": {
				"type": "integer",
				"description": "Line number in file_path (optional)"
			}
		},
		"required": ["content"]
	}`)
}

func (t *AddTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		Content  string   `json:"content"`
		Priority string   `json:"priority"`
		Tags     []string `json:"tags"`
		FilePath string   `json:"file_path"`
		Line     int      `json:"line"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Content == "" {
		return nil, tools.NewMissingArgumentError("content")
	}

	priority := Priority(req.Priority)
	if priority == "" {
		priority = InferPriority(req.Content)
	}

	return t.store.Add(req.Content, priority, req.Tags, req.FilePath, req.Line)
}

type UpdateTool struct {
	store *Store
}

func (t *UpdateTool) Name() string { return "update_todo" }

func (t *UpdateTool) Description() string {
	return "Update fields of an existing todo"
}

func (t *UpdateTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {
				"type": "string",
				"description": "Todo id"
			},
			"content": {"type": "string"},
			"priority": {
				"type": "string",
				"enum": ["low", "medium", "high"]
			},
			"tags": {
				"type": "array",
				"items": {"type": "string"}
			},
			"status": {
				"type": "string",
				"enum": ["pending", "done"]
			}
		},
		"required": ["id"]
	}`)
}

func (t *UpdateTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		ID       string    `json:"id"`
		Content  *string   `json:"content"`
		Priority *string   `json:"priority"`
		Tags     *[]string `json:"tags"`
		Status   *string   `json:"status"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ID == "" {
		return nil, tools.NewMissingArgumentError("id")
	}

	fields := Fields{Content: req.Content, Tags: req.Tags}
	if req.Priority != nil {
		p := Priority(*req.Priority)
		fields.Priority = &p
	}
	if req.Status != nil {
		s := Status(*req.Status)
		fields.Status = &s
	}

	return t.store.Update(req.ID, fields)
}

type CompleteTool struct {
	store *Store
}

func (t *CompleteTool) Name() string { return "complete_todo" }

func (t *CompleteTool) Description() string {
	return "Mark a todo as done"
}

func (t *CompleteTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {
				"type": "string",
				"description": "Todo id"
			}
		},
		"required": ["id"]
	}`)
}

func (t *CompleteTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ID == "" {
		return nil, tools.NewMissingArgumentError("id")
	}

	return t.store.Complete(req.ID)
}

type DeleteTool struct {
	store *Store
}

func (t *DeleteTool) Name() string { return "delete_todo" }

func (t *DeleteTool) Description() string {
	return "Delete a todo permanently"
}

func (t *DeleteTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {
				"type": "string",
				"description": "Todo id"
			}
		},
		"required": ["id"]
	}`)
}

func (t *DeleteTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ID == "" {
		return nil, tools.NewMissingArgumentError("id")
	}

	if err := t.store.Delete(req.ID); err != nil {
		return nil, err
	}

	return map[string]interface{}{"deleted": req.ID}, nil
}

type SearchTool struct {
	store *Store
}

func (t *SearchTool) Name() string { return "search_todos" }

func (t *SearchTool) Description() string {
	return "Full-text search over todo content and tags"
}

func (t *SearchTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Search query"
			}
		},
		"required": ["query"]
	}`)
}

func (t *SearchTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Query == "" {
		return nil, tools.NewMissingArgumentError("query")
	}

	todos, err := t.store.Search(req.Query)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"todos": todos, "count": len(todos)}, nil
}

type ScanTool struct {
	store *Store
}

func (t *ScanTool) Name() string { return "scan_todos" }

func (t *ScanTool) Description() string {
	return "Scan a directory for TODO/FIXME/HACK comment markers and import them as todos"
}

func (t *ScanTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"root": {
				"type": "string",
				"description": "Directory or file to scan"
			},
			"ignore": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Extra glob patterns to skip (optional)"
			}
		},
		"required": ["root"]
	}`)
}

func (t *ScanTool) Execute(args json.RawMessage) (interface{}, error) {
	var req struct {
		Root   string   `json:"root"`
		Ignore []string `json:"ignore"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Root == "" {
		return nil, tools.NewMissingArgumentError("root")
	}

	patterns := scan.DefaultIgnorePatterns
	if len(req.Ignore) > 0 {
		patterns = append(append([]string{}, patterns...), req.Ignore...)
	}

	scanner := scan.NewScanner(patterns)
	items, err := scanner.ScanRoot(req.Root)
	if err != nil {
		return nil, err
	}

	imported, err := ImportScanned(t.store, items)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"scanned":  len(items),
		"imported": imported,
	}, nil
}

type StatsTool struct {
	store *Store
}

func (t *StatsTool) Name() string { return "todo_stats" }

func (t *StatsTool) Description() string {
	return "Counts of todos by status and priority"
}

func (t *StatsTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *StatsTool) Execute(args json.RawMessage) (interface{}, error) {
	return t.store.Stats()
}
