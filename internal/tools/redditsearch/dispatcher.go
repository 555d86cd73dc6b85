package redditsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redditmcp/reddit-mcp/internal/logger"
	"github.com/redditmcp/reddit-mcp/internal/tools"
	"github.com/redditmcp/reddit-mcp/pkg/protocol"
)

const notInitializedText = "Error: Reddit client not initialized. " +
	"Please check your configuration and ensure REDDIT_CLIENT_ID, " +
	"REDDIT_CLIENT_SECRET, and REDDIT_USER_AGENT are set."

// Dispatcher resolves tool calls against the catalog and wraps every
// outcome in a single text block. It never returns an error to its
// caller: an unknown tool, a missing client, and a failed Reddit call
// all come back as ordinary results.
type Dispatcher struct {
	client   Client
	registry *tools.Registry
	log      *slog.Logger
}

// NewDispatcher builds the catalog around the given client. A nil client
// is allowed; the catalog is still advertised and every call answers
// with the not-initialized message.
func NewDispatcher(client Client) *Dispatcher {
	registry := tools.NewRegistry()
	for _, t := range GetTools(client) {
		if err := registry.Register(t); err != nil {
			// Names are compile-time constants; a collision is a bug.
			panic(err)
		}
	}

	return &Dispatcher{
		client:   client,
		registry: registry,
		log:      logger.ForComponent("dispatcher"),
	}
}

// Catalog returns the four tool descriptors in registration order.
func (d *Dispatcher) Catalog() []protocol.Tool {
	list := d.registry.List()
	catalog := make([]protocol.Tool, 0, len(list))

	for _, t := range list {
		var schema map[string]interface{}
		if err := json.Unmarshal(t.Schema(), &schema); err != nil {
			schema = map[string]interface{}{"type": "object"}
		}

		descriptor := protocol.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		}
		if annotated, ok := t.(tools.AnnotatedTool); ok {
			descriptor.Title = annotated.Title()
			descriptor.Annotations = annotated.Annotations()
		}
		catalog = append(catalog, descriptor)
	}

	return catalog
}

// Call dispatches one tool invocation. Arguments may be nil or empty;
// missing optional parameters take their declared defaults and missing
// required parameters are forwarded as zero values, leaving enforcement
// to the Reddit API.
func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) *protocol.CallToolResult {
	if d.client == nil {
		return protocol.TextResult(notInitializedText)
	}

	if _, ok := d.registry.Get(name); !ok {
		return protocol.TextResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	result, err := d.registry.Execute(ctx, name, args)
	if err != nil {
		d.log.Error("tool call failed", "tool", name, "error", err)
		return protocol.TextResult(fmt.Sprintf("Error: %s", err))
	}

	text, ok := result.(string)
	if !ok {
		text = formatJSON(result)
	}
	return protocol.TextResult(text)
}
