package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

type stubTool struct {
	name    string
	execute func(args json.RawMessage) (interface{}, error)
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "stub tool for tests" }

func (t *stubTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"value":{"type":"string"}}}`)
}

func (t *stubTool) Execute(args json.RawMessage) (interface{}, error) {
	if t.execute != nil {
		return t.execute(args)
	}
	return map[string]interface{}{"ok": true}, nil
}

func testServer(t *testing.T, extra ...tools.Tool) *Server {
	t.Helper()

	registry := tools.NewRegistry()
	registry.MustRegister(&stubTool{name: "echo", execute: func(args json.RawMessage) (interface{}, error) {
		var req map[string]interface{}
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, err
		}
		return map[string]interface{}{"echoed": req}, nil
	}})
	registry.MustRegister(extra...)

	return NewServer(protocol.ServerInfo{Name: "test-mcp", Version: version.Version}, registry)
}

func run(t *testing.T, s *Server, input string) []string {
	t.Helper()

	var out bytes.Buffer
	if err := s.ProcessStream(strings.NewReader(input), &out); err != nil {
		t.Fatalf("ProcessStream: %v", err)
	}

	raw := strings.TrimSpace(out.String())
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func decodeResponse(t *testing.T, line string) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, line)
	}
	return resp
}

func TestInitialize(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`+"\n")

	if len(lines) != 1 {
		t.Fatalf("expected 1 response, got %d", len(lines))
	}

	resp := decodeResponse(t, lines[0])
	if resp["id"] != float64(1) {
		t.Errorf("id not mirrored: %v", resp["id"])
	}

	result, ok := resp["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected result object, got %v", resp)
	}
	if _, ok := result["capabilities"]; !ok {
		t.Error("result missing capabilities")
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("result missing serverInfo")
	}
	if serverInfo["name"] != "test-mcp" {
		t.Errorf("unexpected server name %v", serverInfo["name"])
	}
	if serverInfo["version"] != version.Version {
		t.Errorf("unexpected server version %v", serverInfo["version"])
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("expected negotiated version 2024-11-05, got %v", result["protocolVersion"])
	}
}

func TestInitializeUnknownClientVersionFallsBack(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"1900-01-01"}}`+"\n")

	result := decodeResponse(t, lines[0])["result"].(map[string]interface{})
	if result["protocolVersion"] != version.ProtocolVersion {
		t.Errorf("expected fallback to %s, got %v", version.ProtocolVersion, result["protocolVersion"])
	}
}

func TestListTools(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`+"\n")

	result := decodeResponse(t, lines[0])["result"].(map[string]interface{})
	list, ok := result["tools"].([]interface{})
	if !ok || len(list) == 0 {
		t.Fatalf("expected non-empty tools array, got %v", result["tools"])
	}

	for _, entry := range list {
		tool := entry.(map[string]interface{})
		for _, field := range []string{"name", "description", "inputSchema"} {
			if _, ok := tool[field]; !ok {
				t.Errorf("tool descriptor missing %s: %v", field, tool)
			}
		}

		schema := tool["inputSchema"].(map[string]interface{})
		if _, ok := schema["properties"].(map[string]interface{}); !ok {
			t.Errorf("inputSchema.properties must be an object, got %T", schema["properties"])
		}
	}
}

func TestListToolsEmptySchemaProperties(t *testing.T) {
	bare := &stubTool{name: "bare"}
	s := testServer(t, &schemalessTool{bare})

	lines := run(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n")
	result := decodeResponse(t, lines[0])["result"].(map[string]interface{})

	for _, entry := range result["tools"].([]interface{}) {
		tool := entry.(map[string]interface{})
		schema := tool["inputSchema"].(map[string]interface{})
		if _, ok := schema["properties"].(map[string]interface{}); !ok {
			t.Errorf("tool %v: properties serialized as %T, want object", tool["name"], schema["properties"])
		}
	}
}

// schemalessTool declares a schema without a properties key.
type schemalessTool struct {
	*stubTool
}

func (t *schemalessTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object"}`)
}

func TestPing(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":7,"method":"ping"}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp["error"] != nil {
		t.Errorf("unexpected error: %v", resp["error"])
	}
}

func TestUnknownMethod(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":3,"method":"bogus/method"}`+"\n")

	resp := decodeResponse(t, lines[0])
	errObj, ok := resp["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected protocol error, got %v", resp)
	}
	if errObj["code"] != float64(-32601) {
		t.Errorf("expected -32601, got %v", errObj["code"])
	}
	if !strings.Contains(errObj["message"].(string), "bogus/method") {
		t.Errorf("error message should contain method name: %v", errObj["message"])
	}
}

func TestParseError(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, "not valid json\n")

	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 response, got %d", len(lines))
	}

	resp := decodeResponse(t, lines[0])
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != float64(-32700) {
		t.Errorf("expected -32700, got %v", errObj["code"])
	}
	if errObj["message"] != "Parse error" {
		t.Errorf("expected Parse error message, got %v", errObj["message"])
	}
	if _, present := resp["id"]; present {
		t.Errorf("parse error response must not carry an id: %v", resp)
	}
}

func TestCallTool(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"value":"hi"}}}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp["id"] != float64(4) {
		t.Errorf("id not mirrored: %v", resp["id"])
	}

	result := resp["result"].(map[string]interface{})
	echoed := result["echoed"].(map[string]interface{})
	if echoed["value"] != "hi" {
		t.Errorf("handler did not receive arguments: %v", result)
	}
}

func TestCallUnknownToolIsResultNotProtocolError(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"no_such_tool","arguments":{}}}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp["error"] != nil {
		t.Fatalf("unknown tool must not be a protocol error: %v", resp["error"])
	}

	result := resp["result"].(map[string]interface{})
	msg, _ := result["error"].(string)
	if !strings.Contains(msg, "no_such_tool") {
		t.Errorf("result.error should contain the tool name: %v", result)
	}
}

func TestCallToolConfigurationError(t *testing.T) {
	locked := &stubTool{name: "locked", execute: func(json.RawMessage) (interface{}, error) {
		return nil, tools.NewConfigurationError("Tracker", "set TRACKER_TOKEN")
	}}
	s := testServer(t, locked)

	lines := run(t, s, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"locked","arguments":{}}}`+"\n")

	resp := decodeResponse(t, lines[0])
	result := resp["result"].(map[string]interface{})
	if result["code"] != "configuration_error" {
		t.Errorf("expected configuration_error code, got %v", result)
	}
	if !strings.Contains(result["error"].(string), "not configured") {
		t.Errorf("expected not-configured message, got %v", result["error"])
	}
}

func TestHandlerErrorBecomesResult(t *testing.T) {
	failing := &stubTool{name: "failing", execute: func(json.RawMessage) (interface{}, error) {
		return nil, errors.New("remote exploded")
	}}
	s := testServer(t, failing)

	lines := run(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"failing","arguments":{}}}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp["error"] != nil {
		t.Fatalf("handler failure must not be a protocol error: %v", resp)
	}
	if resp["result"].(map[string]interface{})["error"] != "remote exploded" {
		t.Errorf("unexpected result: %v", resp["result"])
	}
}

func TestHandlerPanicSurvives(t *testing.T) {
	panicking := &stubTool{name: "panicking", execute: func(json.RawMessage) (interface{}, error) {
		panic("boom")
	}}
	s := testServer(t, panicking)

	input := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"panicking","arguments":{}}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	lines := run(t, s, input)

	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}

	first := decodeResponse(t, lines[0])
	if !strings.Contains(first["result"].(map[string]interface{})["error"].(string), "panicked") {
		t.Errorf("expected panic surfaced as result error: %v", first)
	}

	second := decodeResponse(t, lines[1])
	if second["id"] != float64(2) || second["error"] != nil {
		t.Errorf("loop did not survive panic: %v", second)
	}
}

func TestBadLineThenValidRequest(t *testing.T) {
	s := testServer(t)
	input := "{this is not json}\n" + `{"jsonrpc":"2.0","id":9,"method":"tools/list"}` + "\n"
	lines := run(t, s, input)

	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}

	first := decodeResponse(t, lines[0])
	if first["error"].(map[string]interface{})["code"] != float64(-32700) {
		t.Errorf("first response should be a parse error: %v", first)
	}

	second := decodeResponse(t, lines[1])
	if second["id"] != float64(9) {
		t.Errorf("second response id wrong: %v", second)
	}
	result := second["result"].(map[string]interface{})
	if _, ok := result["tools"].([]interface{}); !ok {
		t.Errorf("second response should be a full tools/list result: %v", second)
	}
}

func TestNotificationGetsNoResponse(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n")

	if len(lines) != 0 {
		t.Errorf("notification must not produce a response, got %v", lines)
	}
}

func TestMissingMethodIsMethodNotFound(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":1}`+"\n")

	resp := decodeResponse(t, lines[0])
	errObj, ok := resp["error"].(map[string]interface{})
	if !ok || errObj["code"] != float64(-32601) {
		t.Errorf("request without method should yield -32601, got %v", resp)
	}
}

func TestZeroIDMirrored(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":0,"method":"ping"}`+"\n")

	resp := decodeResponse(t, lines[0])
	id, present := resp["id"]
	if !present || id != float64(0) {
		t.Errorf("id 0 must be echoed, not dropped: %v", resp)
	}
}

func TestStringIDsMirrored(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, `{"jsonrpc":"2.0","id":"req-abc","method":"ping"}`+"\n")

	resp := decodeResponse(t, lines[0])
	if resp["id"] != "req-abc" {
		t.Errorf("string id not mirrored: %v", resp["id"])
	}
}

func TestResponseRoundTrip(t *testing.T) {
	original := &Response{
		JSONRPC: "2.0",
		ID:      json.RawMessage("42"),
		Result: map[string]interface{}{
			"tools": []interface{}{
				map[string]interface{}{"name": "a", "description": "b"},
			},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Response
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", original, decoded)
	}
}

func TestMultipleRequestsInOrder(t *testing.T) {
	s := testServer(t)
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}
{"jsonrpc":"2.0","id":2,"method":"ping"}
{"jsonrpc":"2.0","id":3,"method":"ping"}
`
	lines := run(t, s, input)

	if len(lines) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(lines))
	}
	for i, line := range lines {
		resp := decodeResponse(t, line)
		if resp["id"] != float64(i+1) {
			t.Errorf("response %d out of order: id %v", i, resp["id"])
		}
	}
}

func TestEmptyLinesSkipped(t *testing.T) {
	s := testServer(t)
	lines := run(t, s, "\n\n"+`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n\n")

	if len(lines) != 1 {
		t.Errorf("expected 1 response, got %d", len(lines))
	}
}
