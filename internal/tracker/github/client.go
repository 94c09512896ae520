package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
)

// Client wraps the GitHub REST v3 issues API. Calls are synchronous and
// block until the response or the transport timeout.
type Client struct {
	cfg  config.GitHub
	http *http.Client
}

func NewClient(cfg config.GitHub) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// checkConfigured is called by every tool handler, not at startup, so an
// unconfigured server still serves initialize and tools/list.
func (c *Client) checkConfigured() error {
	if c.cfg.Token == "" {
		return tools.NewConfigurationError("GitHub", "set GITHUB_TOKEN")
	}
	if c.cfg.Repo == "" {
		return tools.NewConfigurationError("GitHub", "set GITHUB_REPO or run inside a repository with a GitHub origin remote")
	}
	return nil
}

type Issue struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Body    string  `json:"body,omitempty"`
	State   string  `json:"state"`
	HTMLURL string  `json:"html_url"`
	Labels  []Label `json:"labels,omitempty"`
}

type Label struct {
	Name string `json:"name"`
}

func (c *Client) CreateIssue(title, body string, labels []string) (*Issue, error) {
	payload := map[string]interface{}{
		"title": title,
	}
	if body != "" {
		payload["body"] = body
	}
	if len(labels) > 0 {
		payload["labels"] = labels
	}

	var issue Issue
	path := fmt.Sprintf("/repos/%s/issues", c.cfg.Repo)
	if err := c.do(http.MethodPost, path, payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) ListIssues(state string) ([]Issue, error) {
	if state == "" {
		state = "open"
	}

	var issues []Issue
	path := fmt.Sprintf("/repos/%s/issues?state=%s&per_page=50", c.cfg.Repo, state)
	if err := c.do(http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) CloseIssue(number int) (*Issue, error) {
	payload := map[string]interface{}{"state": "closed"}

	var issue Issue
	path := fmt.Sprintf("/repos/%s/issues/%d", c.cfg.Repo, number)
	if err := c.do(http.MethodPatch, path, payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// do issues one request and decodes the response. HTTP status >= 400 is
// returned as a ToolError carrying the service message, never as a panic
// or a raw transport fault.
func (c *Client) do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.cfg.APIURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &tools.ToolError{Code: "network_error", Message: fmt.Sprintf("GitHub request failed: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return tools.NewAPIError("GitHub", resp.StatusCode, apiMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func apiMessage(data []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(data)
}
