package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

// Client drives one MCP server over its stdio. The wire is plain
// newline-delimited JSON objects, so the plain codec matches what the
// servers speak.
type Client struct {
	conn *jsonrpc2.Conn
	cmd  *exec.Cmd
}

type stdioReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (int, error) {
	return s.writer.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	rerr := s.reader.Close()
	werr := s.writer.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

// Spawn starts a server process and connects to its stdio. The server's
// stderr is passed through so its logging stays visible.
func Spawn(ctx context.Context, command string, args ...string) (*Client, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server %s: %w", command, err)
	}

	rwc := &stdioReadWriteCloser{reader: stdout, writer: stdin}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})

	c := &Client{cmd: cmd}
	c.conn = jsonrpc2.NewConn(ctx, stream, noopHandler{})
	return c, nil
}

// Connect attaches to an already-open stream, used by tests to drive a
// server without spawning a process.
func Connect(ctx context.Context, rwc io.ReadWriteCloser) *Client {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})
	return &Client{conn: jsonrpc2.NewConn(ctx, stream, noopHandler{})}
}

type noopHandler struct{}

// Handle ignores server-initiated requests; the servers never send any.
func (noopHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {}

type InitializeResult struct {
	ProtocolVersion string              `json:"protocolVersion"`
	Capabilities    json.RawMessage     `json:"capabilities"`
	ServerInfo      protocol.ServerInfo `json:"serverInfo"`
}

func (c *Client) Initialize(ctx context.Context) (*InitializeResult, error) {
	params := map[string]interface{}{
		"protocolVersion": version.ProtocolVersion,
		"clientInfo": protocol.ServerInfo{
			Name:    "todoctl",
			Version: version.Version,
		},
	}

	var result InitializeResult
	if err := c.conn.Call(ctx, "initialize", params, &result); err != nil {
		return nil, fmt.Errorf("initialize failed: %w", err)
	}
	return &result, nil
}

func (c *Client) ListTools(ctx context.Context) ([]protocol.Tool, error) {
	var result struct {
		Tools []protocol.Tool `json:"tools"`
	}
	if err := c.conn.Call(ctx, "tools/list", map[string]interface{}{}, &result); err != nil {
		return nil, fmt.Errorf("tools/list failed: %w", err)
	}
	return result.Tools, nil
}

// CallTool invokes a named tool and returns the raw result object.
// Application-level failures come back inside the result (an error
// field), exactly as the server produced them.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (json.RawMessage, error) {
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	params := protocol.ToolCall{Name: name, Arguments: arguments}

	var result json.RawMessage
	if err := c.conn.Call(ctx, "tools/call", params, &result); err != nil {
		return nil, fmt.Errorf("tools/call %s failed: %w", name, err)
	}
	return result, nil
}

// Close tears down the connection and reaps the server process.
func (c *Client) Close() error {
	err := c.conn.Close()
	if c.cmd != nil {
		_ = c.cmd.Wait()
	}
	return err
}
