// Package daemon serves the MCP handler over a unix socket for
// long-lived local clients.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/redditmcp/reddit-mcp/internal/logger"
	"github.com/redditmcp/reddit-mcp/internal/mcp"
)

var log = logger.ForComponent("daemon")

type Daemon struct {
	socketPath   string
	listener     net.Listener
	handler      *mcp.Handler
	connections  map[*jsonrpc2.Conn]bool
	connMu       sync.Mutex
	shutdown     chan struct{}
	shutdownOnce sync.Once
	startTime    time.Time
}

func NewDaemon(socketPath string, handler *mcp.Handler) *Daemon {
	return &Daemon{
		socketPath:  socketPath,
		handler:     handler,
		connections: make(map[*jsonrpc2.Conn]bool),
		shutdown:    make(chan struct{}),
		startTime:   time.Now(),
	}
}

// Start listens on the socket and blocks until SIGINT/SIGTERM.
func (d *Daemon) Start() error {
	if err := d.Listen(); err != nil {
		return err
	}
	d.handleSignals()
	return nil
}

// Listen binds the socket and begins accepting connections without
// blocking on signals. Callers own shutdown.
func (d *Daemon) Listen() error {
	if err := os.RemoveAll(d.socketPath); err != nil {
		return fmt.Errorf("failed to remove socket: %w", err)
	}

	socketDir := filepath.Dir(d.socketPath)
	if err := os.MkdirAll(socketDir, 0700); err != nil {
		return fmt.Errorf("failed to create socket dir: %w", err)
	}

	listener, err := net.Listen("unix", d.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	d.listener = listener

	if err := os.Chmod(d.socketPath, 0700); err != nil {
		return fmt.Errorf("failed to chmod socket: %w", err)
	}

	log.Info("daemon listening", "socket", d.socketPath)

	go d.acceptConnections()
	return nil
}

func (d *Daemon) acceptConnections() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			select {
			case <-d.shutdown:
				return
			default:
				continue
			}
		}

		go d.handleConnection(conn)
	}
}

func (d *Daemon) handleConnection(netConn net.Conn) {
	ctx := context.Background()
	stream := jsonrpc2.NewPlainObjectStream(netConn)
	conn := jsonrpc2.NewConn(ctx, stream, &rpcHandler{handler: d.handler})

	d.connMu.Lock()
	d.connections[conn] = true
	d.connMu.Unlock()

	<-conn.DisconnectNotify()

	d.connMu.Lock()
	delete(d.connections, conn)
	d.connMu.Unlock()
}

func (d *Daemon) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	d.Shutdown()
}

func (d *Daemon) Shutdown() {
	d.shutdownOnce.Do(func() {
		close(d.shutdown)

		if d.listener != nil {
			d.listener.Close()
		}

		d.connMu.Lock()
		for conn := range d.connections {
			conn.Close()
		}
		d.connMu.Unlock()

		os.Remove(d.socketPath)
		log.Info("daemon stopped", "uptime", d.Uptime())
	})
}

func (d *Daemon) SocketPath() string {
	return d.socketPath
}

func (d *Daemon) Uptime() time.Duration {
	return time.Since(d.startTime)
}

// rpcHandler bridges jsonrpc2 requests to the MCP handler.
type rpcHandler struct {
	handler *mcp.Handler
}

func (h *rpcHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params map[string]interface{}
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			if !req.Notif {
				conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
					Code:    jsonrpc2.CodeInvalidParams,
					Message: "invalid params",
				})
			}
			return
		}
	}

	mcpReq := &mcp.Request{
		JSONRPC: "2.0",
		Method:  req.Method,
		Params:  params,
	}
	if !req.Notif {
		mcpReq.ID = req.ID.String()
	}

	resp := h.handler.Handle(ctx, mcpReq)
	if req.Notif {
		return
	}

	if resp.Error != nil {
		conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    int64(resp.Error.Code),
			Message: resp.Error.Message,
		})
		return
	}

	if err := conn.Reply(ctx, req.ID, resp.Result); err != nil {
		log.Error("failed to send reply", "method", req.Method, "error", err)
	}
}
