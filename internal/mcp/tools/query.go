package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/search"
)

// QueryInput is the input for roadmap_query.
type QueryInput struct {
	Expression   string `json:"expression" jsonschema:"JQ expression evaluated against the JSON array of feature objects, e.g. '.[] | select(.status == \"Launched\") | .title' or '[.[].products[]] | unique'"`
	Deduplicate  bool   `json:"deduplicate,omitempty" jsonschema:"Remove duplicate values from the output"`
	MaxResults   int    `json:"max_results,omitempty" jsonschema:"Max values to return (default: 500)"`
	ForceRefresh bool   `json:"force_refresh,omitempty" jsonschema:"Bypass the snapshot cache and refetch the feed"`
}

// QueryOutput is the output for roadmap_query.
type QueryOutput struct {
	Values   []any               `json:"values,omitzero"`
	Errors   []string            `json:"errors,omitzero"`
	RawCount int                 `json:"raw_count"`
	Snapshot search.SnapshotInfo `json:"snapshot"`
	Hint     string              `json:"hint,omitempty"`
}

// ToolQuery runs a JQ expression over the feature snapshot.
func ToolQuery(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
		if input.Expression == "" {
			return nil, QueryOutput{}, ErrInvalidInput("expression is required")
		}

		maxResults := input.MaxResults
		if maxResults <= 0 || maxResults > d.Config.MaxQueryResults {
			maxResults = d.Config.MaxQueryResults
		}

		snap, err := d.Repo.All(ctx, input.ForceRefresh)
		if err != nil {
			return nil, QueryOutput{}, WrapEngineError(err)
		}

		result, err := d.Query.Run(snap.Features, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			// Parse/compile failures are caller mistakes, not engine faults.
			return nil, QueryOutput{}, ErrInvalidInput(err.Error())
		}

		var hint string
		if len(result.Values) == 0 && len(result.Errors) == 0 {
			hint = "Expression produced no values. The input is the feature array; start with '.[]' to iterate features."
		}

		return nil, QueryOutput{
			Values:   result.Values,
			Errors:   result.Errors,
			RawCount: result.RawCount,
			Snapshot: search.SnapshotInfo{
				FetchedAt:      snap.FetchedAt,
				Stale:          snap.Stale,
				SkippedRecords: len(snap.Skipped),
			},
			Hint: hint,
		}, nil
	}
}
