package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/internal/logging"
	"github.com/usestring/roadmap-mcp/internal/mcp"
	"github.com/usestring/roadmap-mcp/internal/mcp/tools"
	"github.com/usestring/roadmap-mcp/internal/query"
	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/search"
	"github.com/usestring/roadmap-mcp/internal/textcache"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// Server is the roadmap MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin roadmap tools.
//
// The client parameter is required and provides access to the roadmap feed.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(c *roadmap.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}

	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Setup logging
	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create infrastructure
	texts, err := textcache.New(cfg.config.TextCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create text cache: %w", err)
	}

	repository := repo.New(c,
		repo.WithTTL(cfg.config.SnapshotTTL),
		repo.WithRefreshTimeout(cfg.config.RefreshTimeout),
	)

	// Create engines
	searchEngine := search.New(repository, texts, cfg.config)
	queryEngine := query.NewEngine()

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Client: c,
		Repo:   repository,
		Engine: searchEngine,
		Query:  queryEngine,
		Texts:  texts,
		Config: cfg.config,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Client: c,
		Repo:   repository,
		Engine: searchEngine,
		Query:  queryEngine,
		Texts:  texts,
		Config: cfg.config,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
