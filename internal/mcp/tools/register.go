package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: roadmap_search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "roadmap_search",
		Description: "Search the Microsoft 365 roadmap. All filters are optional and ANDed: keyword query over title+description, product (partial match), status (exact), cloud_instance (exact full label), release_phase, platform, rollout/preview date labels, availability date range, and recency windows. Results are ordered by general availability date (undated last). Set include_facets=true to discover valid filter values with counts.",
	}, ToolSearch(d))

	// Tool 2: roadmap_get_feature
	AddTool(srv, &sdkmcp.Tool{
		Name:        "roadmap_get_feature",
		Description: "Get the full record for one roadmap feature by id, including the complete description, release rings, platforms, per-ring availability schedule, and documentation links. Search results omit the description; use this to read it.",
	}, ToolGetFeature(d))

	// Tool 3: roadmap_check_cloud
	AddTool(srv, &sdkmcp.Tool{
		Name:        "roadmap_check_cloud",
		Description: "Check whether a roadmap feature is scheduled for a specific cloud instance (GCC, GCC High, DoD, Worldwide). Matching is exact on the full instance label - GCC and GCC High are different environments and never conflated. Returns the matched upstream label and the availability date only when the instance is listed.",
	}, ToolCheckCloud(d))

	// Tool 4: roadmap_recent_additions
	AddTool(srv, &sdkmcp.Tool{
		Name:        "roadmap_recent_additions",
		Description: "List features added to the roadmap within the last N days, newest first. Recency uses the feed's created date; records without one fall back to the modified date, and each entry reports which basis (recency_basis) was used.",
	}, ToolRecentAdditions(d))

	// Tool 5: roadmap_query
	AddTool(srv, &sdkmcp.Tool{
		Name:        "roadmap_query",
		Description: "Run a JQ expression over the feature snapshot for aggregations and projections the search tool does not cover (counts by status, distinct products, custom groupings). The input is the JSON array of feature objects. Prefer roadmap_search for plain filtering.",
	}, ToolQuery(d))
}
