package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/search"
)

// CheckCloudInput is the input for roadmap_check_cloud.
type CheckCloudInput struct {
	FeatureID     string `json:"feature_id" jsonschema:"Roadmap feature id"`
	CloudInstance string `json:"cloud_instance" jsonschema:"Cloud instance label, exact case-insensitive match ('GCC', 'GCC High', 'DoD', 'Worldwide (Standard Multi-Tenant)')"`
}

// CheckCloudOutput is the output for roadmap_check_cloud.
type CheckCloudOutput struct {
	search.Availability
	Snapshot search.SnapshotInfo `json:"snapshot"`
	Hint     string              `json:"hint,omitempty"`
}

// ToolCheckCloud reports whether a feature is scheduled for a cloud instance.
func ToolCheckCloud(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckCloudInput) (*sdkmcp.CallToolResult, CheckCloudOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckCloudInput) (*sdkmcp.CallToolResult, CheckCloudOutput, error) {
		result, info, err := d.Engine.CheckCloud(ctx, input.FeatureID, input.CloudInstance)
		if err != nil {
			return nil, CheckCloudOutput{}, WrapEngineError(err)
		}

		var hint string
		if !result.Available {
			if len(result.ListedInstances) > 0 {
				hint = fmt.Sprintf("Not scheduled for %q. Listed instances: %s.", input.CloudInstance, strings.Join(result.ListedInstances, ", "))
			} else {
				hint = "No cloud instances are listed for this feature yet."
			}
		} else if result.ReleaseDate == "" {
			hint = "Scheduled for this instance but no availability date has been announced."
		}
		if info.Stale {
			hint = appendHint(hint, "Verdict comes from a stale cached snapshot; the feed is currently unreachable.")
		}

		return nil, CheckCloudOutput{
			Availability: *result,
			Snapshot:     info,
			Hint:         hint,
		}, nil
	}
}
