package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/mcp/tools"
)

// Resource URI scheme: roadmap://
// Supported URIs:
//   roadmap://feature/{id}
//   roadmap://schema

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "roadmap://feature/{id}",
		Name:        "Roadmap Feature",
		Description: "Full roadmap feature record by ID, including description, availability rings, and dates.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceFeature)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "roadmap://schema",
		Name:        "Feature Schema",
		Description: "JSON schema describing the shape of a roadmap feature record as returned by the tools.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceSchema)
}

// Resource handlers

func (s *Server) handleResourceFeature(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	f, _, err := s.deps.Engine.GetFeature(ctx, params["id"], false)
	if err != nil {
		return nil, tools.WrapEngineError(err)
	}

	return toResourceResult(req.Params.URI, f)
}

var featureSchemaJSON = sync.OnceValues(func() ([]byte, error) {
	reflector := &invopop.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	schema := reflector.Reflect(&feature.Feature{})
	schema.Title = "Roadmap Feature"
	schema.Description = "A single Microsoft 365 roadmap feature record."
	return json.MarshalIndent(schema, "", "  ")
})

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	data, err := featureSchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("reflecting feature schema: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}

// parseResourceURI extracts parameters from a resource URI.
func parseResourceURI(uri string) (map[string]string, error) {
	const scheme = "roadmap://"
	if !strings.HasPrefix(uri, scheme) {
		return nil, tools.ErrInvalidInput(fmt.Sprintf("invalid resource URI scheme: %s", uri))
	}

	path := strings.TrimPrefix(uri, scheme)
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "feature":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("feature URI requires a feature ID")
		}
		params["id"] = parts[1]

	case "schema":
		// No parameters.

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
