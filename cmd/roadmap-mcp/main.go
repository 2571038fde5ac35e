package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/pkg/mcpsrv"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create the roadmap feed client
	// Base URL and HTTP client timeout are configured via environment variables
	// (ROADMAP_BASE_URL defaults to the public Microsoft 365 roadmap endpoint)
	cfg := config.Load()
	feedClient := roadmap.New(
		roadmap.WithBaseURL(cfg.RoadmapBaseURL),
		roadmap.WithTimeout(cfg.HTTPClientTimeout),
	)

	// Create MCP server with all builtin tools
	// Configuration is loaded from environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - SNAPSHOT_TTL_MS: cached snapshot lifetime
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(feedClient)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Run the server with stdio transport
	slog.Info("starting roadmap MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
