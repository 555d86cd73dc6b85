package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/redditmcp/reddit-mcp/internal/logger"
	"github.com/redditmcp/reddit-mcp/internal/tools/redditsearch"
	"github.com/redditmcp/reddit-mcp/pkg/protocol"
	"github.com/redditmcp/reddit-mcp/pkg/version"
)

var log = logger.ForComponent("mcp")

const serverName = "reddit-mcp-tool"

// Handler is shared by every connection of a transport, so the one
// piece of cross-request state is atomic.
type Handler struct {
	dispatcher  *redditsearch.Dispatcher
	initialized atomic.Bool
}

func NewHandler(dispatcher *redditsearch.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	resp := &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		result, err := h.handleInitialize(req)
		if err != nil {
			resp.Error = &protocol.JSONRPCError{
				Code:    -32603,
				Message: err.Error(),
			}
		} else {
			resp.Result = result
		}
	case "ping":
		resp.Result = map[string]interface{}{}
	case "tools/list":
		resp.Result = h.handleListTools()
	case "tools/call":
		result, err := h.handleCallTool(ctx, req)
		if err != nil {
			resp.Error = &protocol.JSONRPCError{
				Code:    -32602,
				Message: err.Error(),
			}
		} else {
			resp.Result = result
		}
	case "notifications/initialized":
		h.initialized.Store(true)
		resp.Result = map[string]interface{}{}
	default:
		resp.Error = &protocol.JSONRPCError{
			Code:    -32601,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return resp
}

func (h *Handler) handleInitialize(req *Request) (interface{}, error) {
	initReq := struct {
		ProtocolVersion string `json:"protocolVersion"`
	}{}

	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := json.Unmarshal(paramsData, &initReq); err != nil {
		return nil, fmt.Errorf("failed to parse initialize request: %w", err)
	}

	return map[string]interface{}{
		"protocolVersion": negotiateProtocolVersion(initReq.ProtocolVersion),
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": version.Version,
		},
	}, nil
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
	return ListToolsResponse{Tools: h.dispatcher.Catalog()}
}

// handleCallTool forwards the call to the dispatcher. Tool outcomes,
// including unknown names, missing configuration, and Reddit failures,
// are always results; the only JSON-RPC error here is a request whose
// params cannot be parsed at all.
func (h *Handler) handleCallTool(ctx context.Context, req *Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()))
			result = protocol.TextResult(fmt.Sprintf("Error: tool execution panicked: %v", r))
			err = nil
		}
	}()

	callReq := struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}{}

	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := json.Unmarshal(paramsData, &callReq); err != nil {
		return nil, fmt.Errorf("failed to parse tool call request: %w", err)
	}

	return h.dispatcher.Call(ctx, callReq.Name, callReq.Arguments), nil
}
