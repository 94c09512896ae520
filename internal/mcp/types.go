package mcp

import "github.com/thatguyinabeanie/todo-mcp/pkg/protocol"

type Request = protocol.JSONRPCRequest
type Response = protocol.JSONRPCResponse
