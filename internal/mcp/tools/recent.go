package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/search"
)

// RecentInput is the input for roadmap_recent_additions.
type RecentInput struct {
	Days  int `json:"days" jsonschema:"Look-back window in days; must be positive (capped at 365)"`
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default: 100)"`
}

// RecentOutput is the output for roadmap_recent_additions.
type RecentOutput struct {
	TotalFound int                  `json:"total_found"`
	Days       int                  `json:"days"`
	Cutoff     time.Time            `json:"cutoff"`
	Features   []search.RecentEntry `json:"features,omitzero"`
	Snapshot   search.SnapshotInfo  `json:"snapshot"`
	Hint       string               `json:"hint,omitempty"`
}

// ToolRecentAdditions lists features added to the roadmap within a window.
func ToolRecentAdditions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RecentInput) (*sdkmcp.CallToolResult, RecentOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RecentInput) (*sdkmcp.CallToolResult, RecentOutput, error) {
		resp, err := d.Engine.RecentAdditions(ctx, input.Days, input.Limit)
		if err != nil {
			return nil, RecentOutput{}, WrapEngineError(err)
		}

		var hint string
		switch {
		case resp.TotalFound == 0:
			hint = fmt.Sprintf("Nothing added in the last %d days. Widen the window or use roadmap_search with modified_within_days to catch updates to existing features.", resp.Days)
		case resp.TotalFound > len(resp.Features):
			hint = fmt.Sprintf("Showing %d of %d. Raise limit or narrow the window.", len(resp.Features), resp.TotalFound)
		}
		if resp.Snapshot.Stale {
			hint = appendHint(hint, "Results come from a stale cached snapshot; recency is measured against the last successful fetch.")
		}

		return nil, RecentOutput{
			TotalFound: resp.TotalFound,
			Days:       resp.Days,
			Cutoff:     resp.Cutoff,
			Features:   resp.Features,
			Snapshot:   resp.Snapshot,
			Hint:       hint,
		}, nil
	}
}
