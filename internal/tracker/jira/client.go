package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
)

// Client wraps the JIRA REST v2 API with email:token basic auth.
type Client struct {
	cfg  config.Jira
	http *http.Client
}

func NewClient(cfg config.Jira) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) checkConfigured() error {
	if c.cfg.BaseURL == "" {
		return tools.NewConfigurationError("JIRA", "set JIRA_BASE_URL")
	}
	if c.cfg.Email == "" || c.cfg.APIToken == "" {
		return tools.NewConfigurationError("JIRA", "set JIRA_EMAIL and JIRA_API_TOKEN")
	}
	if c.cfg.Project == "" {
		return tools.NewConfigurationError("JIRA", "set JIRA_PROJECT")
	}
	return nil
}

type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description string `json:"description,omitempty"`
		Status      struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

func (c *Client) CreateIssue(summary, description string, labels []string) (*Issue, error) {
	fields := map[string]interface{}{
		"project":   map[string]string{"key": c.cfg.Project},
		"summary":   summary,
		"issuetype": map[string]string{"name": "Task"},
	}
	if description != "" {
		fields["description"] = description
	}
	if len(labels) > 0 {
		fields["labels"] = sanitizeLabels(labels)
	}

	var created struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := c.do(http.MethodPost, "/rest/api/2/issue", map[string]interface{}{"fields": fields}, &created); err != nil {
		return nil, err
	}

	issue := &Issue{ID: created.ID, Key: created.Key}
	issue.Fields.Summary = summary
	return issue, nil
}

func (c *Client) SearchIssues(jql string, limit int) ([]Issue, error) {
	if jql == "" {
		jql = fmt.Sprintf("project = %s ORDER BY created DESC", c.cfg.Project)
	}
	if limit <= 0 {
		limit = 50
	}

	path := fmt.Sprintf("/rest/api/2/search?jql=%s&maxResults=%d", url.QueryEscape(jql), limit)

	var out struct {
		Issues []Issue `json:"issues"`
	}
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out.Issues, nil
}

type transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransitionIssue moves an issue by transition name ("Done", "In
// Progress"). JIRA only accepts transition ids, so the available
// transitions are fetched first and matched case-insensitively.
func (c *Client) TransitionIssue(key, transitionName string) (*Issue, error) {
	var available struct {
		Transitions []transition `json:"transitions"`
	}
	path := fmt.Sprintf("/rest/api/2/issue/%s/transitions", key)
	if err := c.do(http.MethodGet, path, nil, &available); err != nil {
		return nil, err
	}

	var id string
	var names []string
	for _, t := range available.Transitions {
		names = append(names, t.Name)
		if strings.EqualFold(t.Name, transitionName) {
			id = t.ID
			break
		}
	}
	if id == "" {
		return nil, &tools.ToolError{
			Code:    "invalid_arguments",
			Message: fmt.Sprintf("no transition %q on %s; available: %s", transitionName, key, strings.Join(names, ", ")),
		}
	}

	payload := map[string]interface{}{
		"transition": map[string]string{"id": id},
	}
	if err := c.do(http.MethodPost, path, payload, nil); err != nil {
		return nil, err
	}

	return c.GetIssue(key)
}

func (c *Client) GetIssue(key string) (*Issue, error) {
	var issue Issue
	if err := c.do(http.MethodGet, "/rest/api/2/issue/"+key, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimSuffix(c.cfg.BaseURL, "/")+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &tools.ToolError{Code: "network_error", Message: fmt.Sprintf("JIRA request failed: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return tools.NewAPIError("JIRA", resp.StatusCode, apiMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func apiMessage(data []byte) string {
	var e struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &e); err == nil {
		var parts []string
		parts = append(parts, e.ErrorMessages...)
		for field, msg := range e.Errors {
			parts = append(parts, field+": "+msg)
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return strings.TrimSpace(string(data))
}

// sanitizeLabels makes labels JIRA-safe: no spaces allowed.
func sanitizeLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.ReplaceAll(l, " ", "-")
	}
	return out
}
