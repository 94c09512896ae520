package mcp

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
)

const maxLineSize = 10 * 1024 * 1024

// Server runs the newline-delimited JSON-RPC loop: one request per input
// line, one response per output line, flushed immediately. Requests are
// handled strictly one at a time; a handler blocks the loop until it
// returns.
type Server struct {
	handler *Handler
}

func NewServer(info protocol.ServerInfo, registry *tools.Registry) *Server {
	return &Server{
		handler: NewHandler(info, registry),
	}
}

func (s *Server) HandleRequest(req *Request) *Response {
	return s.handler.Handle(req)
}

// ProcessStream reads requests from r until EOF. A malformed line yields a
// -32700 response with no id; a notification (no id) yields no response.
// Neither stops the loop.
func (s *Server) ProcessStream(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	out := protocol.NewFlushWriter(w)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := &Response{
				JSONRPC: "2.0",
				Error: &protocol.JSONRPCError{
					Code:    protocol.CodeParseError,
					Message: "Parse error",
				},
			}
			if err := s.write(encoder, out, resp); err != nil {
				return err
			}
			continue
		}

		resp := s.handler.Handle(&req)

		// Notifications get no response unless the handler failed at the
		// protocol level.
		if len(req.ID) == 0 && resp.Error == nil {
			continue
		}

		if err := s.write(encoder, out, resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Server) write(encoder *json.Encoder, out *protocol.FlushWriter, resp *Response) error {
	if err := encoder.Encode(resp); err != nil {
		return err
	}
	return out.Flush()
}
