package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleCheckGovCloud implements the government cloud verification workflow.
func HandleCheckGovCloud() func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		featureHint := ""
		cloudInstance := "GCC High"
		if args != nil {
			if v, ok := args["feature_hint"]; ok && v != "" {
				featureHint = v
			}
			if v, ok := args["cloud_instance"]; ok && v != "" {
				cloudInstance = v
			}
		}

		var sb strings.Builder

		// 1. Role
		sb.WriteString("# Check Government Cloud Availability\n\n")
		sb.WriteString("You are a Microsoft 365 deployment advisor for government and regulated tenants. ")
		sb.WriteString("Your goal is to give a definitive, instance-specific answer about whether a roadmap feature will reach a particular cloud.\n\n")

		// 2. Key rule
		sb.WriteString("## The One Rule That Matters\n\n")
		sb.WriteString("Cloud instance labels match **exactly**. A feature listed for \"GCC\" is NOT confirmed for \"GCC High\" or \"DoD\"; ")
		sb.WriteString("those are separate compliance boundaries with separate rollout schedules. ")
		sb.WriteString("Never infer availability in one instance from availability in another.\n\n")

		// 3. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Find the feature** - search by title keywords, or skip this step if you already have the ID\n")
		sb.WriteString("2. **Check the instance** - `roadmap_check_cloud` does the exact-label comparison for you\n")
		sb.WriteString("3. **Report** - state availability, the matched label, the planned date if one exists, and the feature's current status\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		if featureHint != "" {
			sb.WriteString(fmt.Sprintf("roadmap_search(query=%q)\n", featureHint))
		} else {
			sb.WriteString("roadmap_search(query=\"<feature keywords>\")\n")
		}
		sb.WriteString(fmt.Sprintf("roadmap_check_cloud(feature_id=\"<id from search>\", cloud_instance=%q)\n", cloudInstance))
		sb.WriteString("```\n\n")

		// 4. Output format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("- **Availability**: yes/no for the requested instance, quoting the matched label\n")
		sb.WriteString("- **Date**: the planned release date for that instance, or \"no date listed\"\n")
		sb.WriteString("- **Status**: the feature's overall rollout status\n")
		sb.WriteString("- **Caveats**: note when the snapshot is stale, and never extrapolate across instances\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for verifying cloud-instance availability",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
