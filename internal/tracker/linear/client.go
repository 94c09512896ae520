package linear

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
)

// Client speaks Linear's GraphQL API. Every call is one POST with a
// query/variables document; GraphQL-level errors in a 200 response are
// surfaced the same way HTTP failures are.
type Client struct {
	cfg  config.Linear
	http *http.Client
}

func NewClient(cfg config.Linear) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) checkConfigured() error {
	if c.cfg.APIKey == "" {
		return tools.NewConfigurationError("Linear", "set LINEAR_API_KEY")
	}
	if c.cfg.TeamID == "" {
		return tools.NewConfigurationError("Linear", "set LINEAR_TEAM_ID")
	}
	return nil
}

type Issue struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	State      struct {
		Name string `json:"name"`
	} `json:"state"`
}

const createIssueMutation = `
mutation IssueCreate($input: IssueCreateInput!) {
	issueCreate(input: $input) {
		success
		issue { id identifier title url state { name } }
	}
}`

func (c *Client) CreateIssue(title, description string, priority int) (*Issue, error) {
	input := map[string]interface{}{
		"teamId": c.cfg.TeamID,
		"title":  title,
	}
	if description != "" {
		input["description"] = description
	}
	if priority > 0 {
		input["priority"] = priority
	}

	var out struct {
		IssueCreate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.query(createIssueMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, err
	}
	if !out.IssueCreate.Success {
		return nil, &tools.ToolError{Code: "api_error", Message: "Linear issueCreate reported failure"}
	}

	return &out.IssueCreate.Issue, nil
}

const listIssuesQuery = `
query TeamIssues($teamId: String!, $first: Int!) {
	team(id: $teamId) {
		issues(first: $first, orderBy: updatedAt) {
			nodes { id identifier title url state { name } }
		}
	}
}`

func (c *Client) ListIssues(limit int) ([]Issue, error) {
	if limit <= 0 {
		limit = 50
	}

	var out struct {
		Team struct {
			Issues struct {
				Nodes []Issue `json:"nodes"`
			} `json:"issues"`
		} `json:"team"`
	}
	vars := map[string]interface{}{"teamId": c.cfg.TeamID, "first": limit}
	if err := c.query(listIssuesQuery, vars, &out); err != nil {
		return nil, err
	}

	return out.Team.Issues.Nodes, nil
}

const updateIssueMutation = `
mutation IssueUpdate($id: String!, $input: IssueUpdateInput!) {
	issueUpdate(id: $id, input: $input) {
		success
		issue { id identifier title url state { name } }
	}
}`

func (c *Client) UpdateIssue(id string, input map[string]interface{}) (*Issue, error) {
	var out struct {
		IssueUpdate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueUpdate"`
	}
	vars := map[string]interface{}{"id": id, "input": input}
	if err := c.query(updateIssueMutation, vars, &out); err != nil {
		return nil, err
	}
	if !out.IssueUpdate.Success {
		return nil, &tools.ToolError{Code: "api_error", Message: "Linear issueUpdate reported failure"}
	}

	return &out.IssueUpdate.Issue, nil
}

// query posts one GraphQL document and decodes data into out.
func (c *Client) query(query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &tools.ToolError{Code: "network_error", Message: fmt.Sprintf("Linear request failed: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return tools.NewAPIError("Linear", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return &tools.ToolError{
			Code:    "api_error",
			Message: "Linear API error: " + strings.Join(messages, "; "),
		}
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

// PriorityToLinear maps todo priorities onto Linear's 1-4 scale (1 is
// urgent). Unknown values map to 0, which Linear treats as no priority.
func PriorityToLinear(priority string) int {
	switch priority {
	case "high":
		return 2
	case "medium":
		return 3
	case "low":
		return 4
	}
	return 0
}
