// Package tools contains MCP tool implementations for the roadmap server.
package tools

import (
	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/internal/query"
	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/search"
	"github.com/usestring/roadmap-mcp/internal/textcache"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client *roadmap.Client
	Repo   *repo.Repository
	Engine *search.Engine
	Query  *query.Engine
	Texts  *textcache.Cache
	Config *config.Config
}
