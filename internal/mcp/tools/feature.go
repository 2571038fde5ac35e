package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/search"
)

// GetFeatureInput is the input for roadmap_get_feature.
type GetFeatureInput struct {
	FeatureID    string `json:"feature_id" jsonschema:"Roadmap feature id, e.g. '534606'"`
	ForceRefresh bool   `json:"force_refresh,omitempty" jsonschema:"Bypass the snapshot cache and refetch the feed"`
}

// GetFeatureOutput is the output for roadmap_get_feature.
type GetFeatureOutput struct {
	Feature  *feature.Feature    `json:"feature,omitempty"`
	Snapshot search.SnapshotInfo `json:"snapshot"`
}

// ToolGetFeature returns the full record for one feature.
func ToolGetFeature(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetFeatureInput) (*sdkmcp.CallToolResult, GetFeatureOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetFeatureInput) (*sdkmcp.CallToolResult, GetFeatureOutput, error) {
		f, info, err := d.Engine.GetFeature(ctx, input.FeatureID, input.ForceRefresh)
		if err != nil {
			return nil, GetFeatureOutput{}, WrapEngineError(err)
		}

		return nil, GetFeatureOutput{
			Feature:  f,
			Snapshot: info,
		}, nil
	}
}
