package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/search"
)

// SearchInput is the input for roadmap_search.
type SearchInput struct {
	Query         string `json:"query,omitempty" jsonschema:"Keyword to match against title and description (case-insensitive substring, markup ignored)"`
	Product       string `json:"product,omitempty" jsonschema:"Product tag filter, case-insensitive partial match ('Teams' matches 'Microsoft Teams')"`
	Status        string `json:"status,omitempty" jsonschema:"Status filter, exact case-insensitive match ('In development', 'Rolling out', 'Launched')"`
	CloudInstance string `json:"cloud_instance,omitempty" jsonschema:"Cloud instance filter, exact case-insensitive match on the full label ('GCC', 'GCC High', 'DoD', 'Worldwide (Standard Multi-Tenant)'). 'GCC' never matches 'GCC High'."`
	ReleasePhase  string `json:"release_phase,omitempty" jsonschema:"Release phase filter, partial match ('General Availability', 'Preview', 'Targeted Release')"`
	Platform      string `json:"platform,omitempty" jsonschema:"Platform filter, partial match ('Web', 'Desktop', 'iOS', 'Android', 'Mac')"`
	RolloutDate   string `json:"rollout_date,omitempty" jsonschema:"Rollout date filter, partial match on the upstream label; 'December 2026' matches 'December CY2026'"`
	PreviewDate   string `json:"preview_date,omitempty" jsonschema:"Preview date filter, partial match on the upstream label"`
	DateFrom      string `json:"date_from,omitempty" jsonschema:"Lower bound on general availability date, e.g. '2026-03' or 'December CY2026'. Features without a date are excluded when a bound is set."`
	DateTo        string `json:"date_to,omitempty" jsonschema:"Upper bound on general availability date"`

	AddedWithinDays    int `json:"added_within_days,omitempty" jsonschema:"Only features added to the roadmap within this many days (1-365)"`
	ModifiedWithinDays int `json:"modified_within_days,omitempty" jsonschema:"Only features modified within this many days (1-365)"`

	Limit         int  `json:"limit,omitempty" jsonschema:"Max results (default: 10, max: 100). 0 with include_facets returns facets only."`
	Offset        int  `json:"offset,omitempty" jsonschema:"Pagination offset"`
	IncludeFacets bool `json:"include_facets,omitempty" jsonschema:"Include taxonomy facets (products, statuses, release phases, platforms, cloud instances) with counts computed from the matched set"`
	ForceRefresh  bool `json:"force_refresh,omitempty" jsonschema:"Bypass the snapshot cache and refetch the feed"`
}

// SearchOutput is the output for roadmap_search.
type SearchOutput struct {
	TotalFound int                 `json:"total_found"`
	Features   []feature.Summary   `json:"features,omitzero"`
	Facets     *search.Facets      `json:"facets,omitempty"`
	Snapshot   search.SnapshotInfo `json:"snapshot"`
	Hint       string              `json:"hint,omitempty"`
}

// ToolSearch searches roadmap features.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		sreq := &search.Request{
			Query:              input.Query,
			Product:            input.Product,
			Status:             input.Status,
			CloudInstance:      input.CloudInstance,
			ReleasePhase:       input.ReleasePhase,
			Platform:           input.Platform,
			RolloutDate:        input.RolloutDate,
			PreviewDate:        input.PreviewDate,
			AddedWithinDays:    input.AddedWithinDays,
			ModifiedWithinDays: input.ModifiedWithinDays,
			Limit:              input.Limit,
			Offset:             input.Offset,
			IncludeFacets:      input.IncludeFacets,
			ForceRefresh:       input.ForceRefresh,
		}

		if input.DateFrom != "" {
			t, ok := feature.ParseAvailabilityDate(input.DateFrom)
			if !ok {
				return nil, SearchOutput{}, ErrInvalidInput(fmt.Sprintf("unrecognized date_from %q; use '2026-03' or 'December CY2026'", input.DateFrom))
			}
			sreq.DateFrom = t
		}
		if input.DateTo != "" {
			t, ok := feature.ParseAvailabilityDate(input.DateTo)
			if !ok {
				return nil, SearchOutput{}, ErrInvalidInput(fmt.Sprintf("unrecognized date_to %q; use '2026-03' or 'December CY2026'", input.DateTo))
			}
			sreq.DateTo = t
		}

		resp, err := d.Engine.Search(ctx, sreq)
		if err != nil {
			return nil, SearchOutput{}, WrapEngineError(err)
		}

		var hint string
		switch {
		case resp.TotalFound == 0:
			hint = "No matches. Loosen filters, or set include_facets=true with no filters to discover valid filter values."
		case resp.TotalFound > len(resp.Features):
			nextOffset := input.Offset + len(resp.Features)
			hint = fmt.Sprintf("Showing %d of %d. Narrow with product/status filters, or use offset=%d for the next page.", len(resp.Features), resp.TotalFound, nextOffset)
		case len(resp.Features) == 1:
			hint = fmt.Sprintf("Single match. Use roadmap_get_feature(feature_id=%q) for the full description.", resp.Features[0].ID)
		}
		if resp.Snapshot.Stale {
			hint = appendHint(hint, "Results come from a stale cached snapshot; the feed is currently unreachable.")
		}

		return nil, SearchOutput{
			TotalFound: resp.TotalFound,
			Features:   resp.Features,
			Facets:     resp.Facets,
			Snapshot:   resp.Snapshot,
			Hint:       hint,
		}, nil
	}
}

func appendHint(hint, extra string) string {
	if hint == "" {
		return extra
	}
	return hint + " " + extra
}
