package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

var log = logger.ForComponent("mcp")

// Handler dispatches decoded requests to the method table. It holds the
// only per-process state: the server identity and the static registry,
// both fixed at startup.
type Handler struct {
	info     protocol.ServerInfo
	registry *tools.Registry
}

func NewHandler(info protocol.ServerInfo, registry *tools.Registry) *Handler {
	return &Handler{
		info:     info,
		registry: registry,
	}
}

func (h *Handler) Handle(req *Request) *Response {
	resp := &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		resp.Result = h.handleInitialize(req)
	case "ping":
		resp.Result = map[string]interface{}{}
	case "notifications/initialized":
		resp.Result = map[string]interface{}{}
	case "tools/list":
		resp.Result = h.handleListTools()
	case "tools/call":
		resp.Result = h.handleCallTool(req)
	default:
		resp.Error = &protocol.JSONRPCError{
			Code:    protocol.CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return resp
}

func (h *Handler) handleInitialize(req *Request) interface{} {
	var clientVersion string
	if v, ok := req.Params["protocolVersion"].(string); ok {
		clientVersion = v
	}

	return map[string]interface{}{
		"protocolVersion": negotiateProtocolVersion(clientVersion),
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": h.info,
	}
}

func negotiateProtocolVersion(clientVersion string) string {
	for _, v := range version.SupportedProtocolVersions {
		if clientVersion == v {
			return v
		}
	}
	return version.ProtocolVersion
}

func (h *Handler) handleListTools() interface{} {
	list := h.registry.List()
	descriptors := make([]protocol.Tool, len(list))

	for i, t := range list {
		var schema map[string]interface{}
		if err := json.Unmarshal(t.Schema(), &schema); err != nil {
			schema = map[string]interface{}{"type": "object"}
		}
		// Empty schemas still serialize properties as an object, never an
		// array or null.
		if _, ok := schema["properties"]; !ok {
			schema["properties"] = map[string]interface{}{}
		}

		descriptors[i] = protocol.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		}
	}

	return map[string]interface{}{
		"tools": descriptors,
	}
}

// handleCallTool always produces a success-shaped response: unknown tools,
// bad arguments, missing credentials, and remote failures all come back as
// a result object with an error field, so the client can render them
// without special-casing protocol faults.
func (h *Handler) handleCallTool(req *Request) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panic recovered", "panic", r, "stack", string(debug.Stack()))
			result = errorResult(fmt.Errorf("tool execution panicked: %v", r))
		}
	}()

	var call protocol.ToolCall
	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return errorResult(fmt.Errorf("invalid params: %v", err))
	}
	if err := json.Unmarshal(paramsData, &call); err != nil {
		return errorResult(fmt.Errorf("invalid tool call params: %v", err))
	}

	if call.Name == "" {
		return errorResult(errors.New("tool name is required"))
	}

	tool, ok := h.registry.Get(call.Name)
	if !ok {
		return errorResult(fmt.Errorf("Unknown tool: %s", call.Name))
	}

	argsData, err := json.Marshal(call.Arguments)
	if err != nil {
		return errorResult(fmt.Errorf("invalid arguments: %v", err))
	}

	out, err := tool.Execute(argsData)
	if err != nil {
		log.Warn("tool failed", "tool", call.Name, "error", err)
		return errorResult(err)
	}

	return out
}

// errorResult renders an application error into the result envelope. A
// *tools.ToolError contributes its machine-readable code alongside the
// message.
func errorResult(err error) map[string]interface{} {
	result := map[string]interface{}{
		"error": err.Error(),
	}

	var toolErr *tools.ToolError
	if errors.As(err, &toolErr) && toolErr.Code != "" {
		result["code"] = toolErr.Code
	}

	return result
}
