// Command reddit-mcp serves the read-only Reddit tool catalog over MCP.
// It speaks JSON-RPC on stdio by default; -socket and -http select the
// unix-socket and HTTP transports.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/redditmcp/reddit-mcp/internal/config"
	"github.com/redditmcp/reddit-mcp/internal/daemon"
	"github.com/redditmcp/reddit-mcp/internal/httpserver"
	"github.com/redditmcp/reddit-mcp/internal/logger"
	"github.com/redditmcp/reddit-mcp/internal/mcp"
	"github.com/redditmcp/reddit-mcp/internal/reddit"
	"github.com/redditmcp/reddit-mcp/internal/tools/redditsearch"
)

func main() {
	socketPath := flag.String("socket", "", "serve on a unix socket at this path instead of stdio")
	httpAddr := flag.String("http", "", "serve HTTP on this address instead of stdio")
	flag.Parse()

	cfg, cfgErr := config.Load()

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.Format = cfg.LogFormat
	logger.Init(logCfg)
	log := logger.ForComponent("main")

	// A configuration failure is not fatal: the server starts anyway and
	// answers every tool call with the not-initialized message.
	var client redditsearch.Client
	if cfgErr != nil {
		log.Error("failed to initialize Reddit client", "error", cfgErr)
	} else {
		client = reddit.New(reddit.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			UserAgent:    cfg.UserAgent,
		})
		log.Info("Reddit client initialized successfully in read-only mode")
	}

	dispatcher := redditsearch.NewDispatcher(client)
	handler := mcp.NewHandler(dispatcher)

	if *socketPath == "" {
		*socketPath = cfg.SocketPath
	}
	if *httpAddr == "" {
		*httpAddr = cfg.HTTPAddr
	}

	switch {
	case *httpAddr != "":
		srv := httpserver.New(httpserver.Config{Addr: *httpAddr, Token: cfg.HTTPToken}, dispatcher)
		log.Info("serving HTTP", "addr", *httpAddr)
		if err := srv.ListenAndServe(); err != nil {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case *socketPath != "":
		d := daemon.NewDaemon(*socketPath, handler)
		if err := d.Start(); err != nil {
			log.Error("daemon failed", "error", err)
			os.Exit(1)
		}
	default:
		server := mcp.NewServer(handler)
		if err := server.ProcessStream(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Error("stdio server failed", "error", err)
			os.Exit(1)
		}
	}
}
