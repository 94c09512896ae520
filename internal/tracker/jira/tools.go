package jira

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
		&TransitionIssueTool{client: client},
		&SyncTodoTool{client: client},
	}
}

type CreateIssueTool struct {
	client *Client
}

func (t *CreateIssueTool) Name() string { return "create_jira_issue" }

func (t *CreateIssueTool) Description() string {
	return "Create a JIRA task in the configured project"
}

func (t *CreateIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"summary": {
				"type": "string",
				"description": "Issue summary"
			},
			"description": {
				"type": "string",
				"description": "Issue description (optional)"
			},
			"labels": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Labels; spaces are replaced with dashes (optional)"
			}
		},
		"required": ["summary"]
	}`)
}

func (t *CreateIssueTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		Summary     string   `json:"summary"`
		Description string   `json:"description"`
		Labels      []string `json:"labels"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Summary == "" {
		return nil, tools.NewMissingArgumentError("summary")
	}

	return t.client.CreateIssue(req.Summary, req.Description, req.Labels)
}

type ListIssuesTool struct {
	client *Client
}

func (t *ListIssuesTool) Name() string { return "list_jira_issues" }

func (t *ListIssuesTool) Description() string {
	return "Search issues with JQL; defaults to recent issues in the configured project"
}

func (t *ListIssuesTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"jql": {
				"type": "string",
				"description": "JQL query (optional)"
			},
			"limit": {
				"type": "integer",
				"description": "Maximum results (default 50)"
			}
		}
	}`)
}

func (t *ListIssuesTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		JQL   string `json:"jql"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	issues, err := t.client.SearchIssues(req.JQL, req.Limit)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"issues": issues, "count": len(issues)}, nil
}

type TransitionIssueTool struct {
	client *Client
}

func (t *TransitionIssueTool) Name() string { return "transition_jira_issue" }

func (t *TransitionIssueTool) Description() string {
	return "Move an issue to another status by transition name, e.g. Done"
}

func (t *TransitionIssueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"key": {
				"type": "string",
				"description": "Issue key, e.g. PROJ-42"
			},
			"transition": {
				"type": "string",
				"description": "Transition name"
			}
		},
		"required": ["key", "transition"]
	}`)
}

func (t *TransitionIssueTool) Execute(args json.RawMessage) (interface{}, error) {
	if err := t.client.checkConfigured(); err != nil {
		return nil, err
	}

	var req struct {
		Key        string `json:"key"`
		Transition string `json:"transition"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Key == "" {
		return nil, tools.NewMissingArgumentError("key")
	}
	if req.Transition == "" {
		return nil, tools.NewMissingArgumentError("transition")
	}

	return t.client.TransitionIssue(req.Key, req.Transition)
}

// SyncTodoTool maps todo fields onto a JIRA task.
type SyncTodoTool struct {
	client *Client
}

func (t *SyncTodoTool) Name() string { return "sync_todo_to_jira" }

func (t *SyncTodoTool) Description() string {
	return "Create a JIRA task from todo fields (content, priority, tags, file location)"
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

	return t.client.CreateIssue(fields.IssueTitle(), fields.IssueBody(), fields.IssueLabels())
}
