// Package prompts contains MCP prompt implementations for the roadmap server.
package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server) {
	// Prompt 1: Check government cloud availability
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "check_gov_cloud",
		Description: "RECOMMENDED: Verify whether a feature is available in a specific government cloud (GCC, GCC High, DoD). Instance matching is exact, so this workflow avoids the common trap of assuming GCC availability implies GCC High.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "feature_hint",
				Description: "Search hint for the feature (title keywords or a known feature ID)",
				Required:    false,
			},
			{
				Name:        "cloud_instance",
				Description: "Target cloud instance label, e.g. 'GCC High' or 'DoD'",
				Required:    false,
			},
		},
	}, HandleCheckGovCloud())

	// Prompt 2: Summarize recent roadmap activity
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "whats_new",
		Description: "RECOMMENDED: Summarize features recently added to the roadmap, optionally scoped to a product. Explains the recency basis so the summary is honest about what the dates mean.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "days",
				Description: "Lookback window in days (default 30)",
				Required:    false,
			},
			{
				Name:        "product",
				Description: "Product to focus on, e.g. 'Microsoft Teams'",
				Required:    false,
			},
		},
	}, HandleWhatsNew())
}
