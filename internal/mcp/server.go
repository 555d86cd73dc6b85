package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/redditmcp/reddit-mcp/pkg/protocol"
)

// Server reads newline-delimited JSON-RPC requests from a stream and
// writes one response per request.
type Server struct {
	handler *Handler
}

func NewServer(handler *Handler) *Server {
	return &Server{handler: handler}
}

func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	return s.handler.Handle(ctx, req)
}

func (s *Server) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(writer)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := &Response{
				JSONRPC: "2.0",
				ID:      nil,
				Error: &protocol.JSONRPCError{
					Code:    -32700,
					Message: "Parse error",
				},
			}
			encoder.Encode(resp)
			continue
		}

		resp := s.HandleRequest(ctx, &req)
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}
