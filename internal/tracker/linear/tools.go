package linear

import (
	"encoding/json"
	"fmt"

	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/internal/tracker"
)

func GetTools(client *Client) []tools.Tool {
	return []tools.Tool{
		&CreateIssueTool{client: client},
		&ListIssuesTool{client: client},
		&UpdateIssueTool{client: client},
		&SyncTodoTool{client: client},
	}
}

type CreateIssueTool struct {
	client *Client
}

func (t *CreateIssueTool) Name() string { return "create_linear_issue" }

func (t *CreateIssueTool) Description() string {
	return "Create a Linear issue in the configured team"
}

func (t *CreateIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {
				"type": "string",
				"description": "Issue title"
			},
			"description": {
				"type": "string",
				"description": "Issue description, markdown (optional)"
			},
			"priority": {
				"type": "integer",
				"description": "Linear priority 1-4, 1 is urgent (optional)"
			}
		},
		"required": ["title"]
	}`)
}

func (t *CreateIssueTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    int    `json:"priority"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Title == "" {
		return nil, tools.NewMissingArgumentError("title")
	}

	return t.client.CreateIssue(req.Title, req.Description, req.Priority)
}

type ListIssuesTool struct {
	client *Client
}

func (t *ListIssuesTool) Name() string { return "list_linear_issues" }

func (t *ListIssuesTool) Description() string {
	return "List recent issues in the configured team"
}

func (t *ListIssuesTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"limit": {
				"type": "integer",
				"description": "Maximum issues to return (default 50)"
			}
		}
	}`)
}

func (t *ListIssuesTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	issues, err := t.client.ListIssues(req.Limit)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"issues": issues, "count": len(issues)}, nil
}

type UpdateIssueTool struct {
	client *Client
}

func (t *UpdateIssueTool) Name() string { return "update_linear_issue" }

func (t *UpdateIssueTool) Description() string {
	return "Update a Linear issue's title, description, or workflow state"
}

func (t *UpdateIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {
				"type": "string",
				"description": "Issue id or identifier"
			},
			"title": {"type": "string"},
			"description": {"type": "string"},
			"state_id": {
				"type": "string",
				"description": "Workflow state id to move the issue to"
			}
		},
		"required": ["id"]
	}`)
}

func (t *UpdateIssueTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		StateID     string `json:"state_id"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.ID == "" {
		return nil, tools.NewMissingArgumentError("id")
	}

	input := map[string]interface{}{}
	if req.Title != "" {
		input["title"] = req.Title
	}
	if req.Description != "" {
		input["description"] = req.Description
	}
	if req.StateID != "" {
		input["stateId"] = req.StateID
	}
	if len(input) == 0 {
		return nil, &tools.ToolError{Code: "invalid_arguments", Message: "nothing to update: provide title, description, or state_id"}
	}

	return t.client.UpdateIssue(req.ID, input)
}

// SyncTodoTool maps todo fields onto a Linear issue.
type SyncTodoTool struct {
	client *Client
}

func (t *SyncTodoTool) Name() string { return "sync_todo_to_linear" }

func (t *SyncTodoTool) Description() string {
	return "Create a Linear issue from todo fields (content, priority, tags, file location)"
}

func (t *SyncTodoTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"content": {
				"type": "string",
				"description": "Todo text"
			},
			"priority": {
				"type": "string",
				"enum": ["low", "medium", "high"]
			},
			"tags": {
				"type": "array",
				"items": {"type": "string"}
			},
			"file_path": {"type": "string"},
			"line": {"type": "integer"}
		},
		"required": ["content"]
	}`)
}

func (t *SyncTodoTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var fields tracker.TodoFields
	if err := json.Unmarshal(args, &fields); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if fields.Content == "" {
		return nil, tools.NewMissingArgumentError("content")
	}

	return t.client.CreateIssue(fields.IssueTitle(), fields.IssueBody(), PriorityToLinear(fields.Priority))
}
