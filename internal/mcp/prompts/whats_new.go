package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleWhatsNew implements the recent-activity summary workflow.
func HandleWhatsNew() func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		days := "30"
		product := ""
		if args != nil {
			if v, ok := args["days"]; ok && v != "" {
				days = v
			}
			if v, ok := args["product"]; ok && v != "" {
				product = v
			}
		}

		var sb strings.Builder

		// 1. Role
		sb.WriteString("# What's New on the Roadmap\n\n")
		sb.WriteString("You are a Microsoft 365 change analyst. ")
		sb.WriteString("Your goal is to produce a short, scannable digest of features that recently entered the public roadmap.\n\n")

		// 2. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Pull recent additions** - use the lookback window below; widen it if results are sparse\n")
		sb.WriteString("2. **Scope if asked** - when a product focus is given, follow up with roadmap_search using the product filter\n")
		sb.WriteString("3. **Summarize** - group by product, lead with what changed, and include feature IDs for follow-up\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("roadmap_recent_additions(days=%s)\n", days))
		if product != "" {
			sb.WriteString(fmt.Sprintf("roadmap_search(product=%q, added_within_days=%s)\n", product, days))
		}
		sb.WriteString("```\n\n")

		// 3. Honest dating
		sb.WriteString("## Recency Basis\n\n")
		sb.WriteString("Each result reports a `recency_basis`: \"created\" means the feed's creation timestamp, ")
		sb.WriteString("\"modified\" means the record lacked one and the last-modified timestamp was used instead. ")
		sb.WriteString("When any result uses the modified basis, say so in the digest rather than presenting it as a true addition date.\n\n")

		// 4. Output format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("- One bullet per feature: **title** (ID), product(s), status, and the recency date\n")
		sb.WriteString("- Group bullets by product when more than one product appears\n")
		sb.WriteString("- Close with the window used and whether the snapshot was stale\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for summarizing recent roadmap additions",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
