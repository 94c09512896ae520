package github

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
		&CloseIssueTool{client: client},
		&SyncTodoTool{client: client},
	}
}

type CreateIssueTool struct {
	client *Client
}

func (t *CreateIssueTool) Name() string { return "create_github_issue" }

func (t *CreateIssueTool) Description() string {
	return "Create a GitHub issue in the configured repository"
}

func (t *CreateIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {
				"type": "string",
				"description": "Issue title"
			},
			"body": {
				"type": "string",
				"description": "Issue body (optional)"
			},
			"labels": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Labels to apply (optional)"
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
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Title == "" {
		return nil, tools.NewMissingArgumentError("title")
	}

	return t.client.CreateIssue(req.Title, req.Body, req.Labels)
}

type ListIssuesTool struct {
	client *Client
}

func (t *ListIssuesTool) Name() string { return "list_github_issues" }

func (t *ListIssuesTool) Description() string {
	return "List issues in the configured repository"
}

func (t *ListIssuesTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"state": {
				"type": "string",
				"enum": ["open", "closed", "all"],
				"description": "Issue state filter (default open)"
			}
		}
	}`)
}

func (t *ListIssuesTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	issues, err := t.client.ListIssues(req.State)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"issues": issues, "count": len(issues)}, nil
}

type CloseIssueTool struct {
	client *Client
}

func (t *CloseIssueTool) Name() string { return "close_github_issue" }

func (t *CloseIssueTool) Description() string {
	return "Close an issue by number"
}

func (t *CloseIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"number": {
				"type": "integer",
				"description": "Issue number"
			}
		},
		"required": ["number"]
	}`)
}

func (t *CloseIssueTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Number == 0 {
		return nil, tools.NewMissingArgumentError("number")
	}

	return t.client.CloseIssue(req.Number)
}

// SyncTodoTool turns todo fields into a GitHub issue. Not idempotent:
// syncing the same todo twice creates two issues.
type SyncTodoTool struct {
	client *Client
}

func (t *SyncTodoTool) Name() string { return "sync_todo_to_github" }

func (t *SyncTodoTool) Description() string {
	return "Create a GitHub issue from todo fields (content, priority, tags, file location)"
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
			"file_path": {
				"type": "string",
				"description": "Source file the todo lives in (optional)"
			},
			"line": {
				"type": "integer",
				"description": "Line number (optional)"
			}
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

	return t.client.CreateIssue(fields.IssueTitle(), fields.IssueBody(), fields.IssueLabels())
}
