package mcpsrv

import (
	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/internal/query"
	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/search"
	"github.com/usestring/roadmap-mcp/internal/textcache"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client *roadmap.Client
	Repo   *repo.Repository
	Engine *search.Engine
	Query  *query.Engine
	Texts  *textcache.Cache
	Config *config.Config
}
