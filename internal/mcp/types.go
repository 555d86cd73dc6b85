package mcp

import "github.com/redditmcp/reddit-mcp/pkg/protocol"

type Request = protocol.JSONRPCRequest
type Response = protocol.JSONRPCResponse
type Tool = protocol.Tool

type ListToolsResponse struct {
	Tools []Tool `json:"tools"`
}
