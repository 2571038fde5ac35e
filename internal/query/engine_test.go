package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

func testFeatures() []*feature.Feature {
	return []*feature.Feature{
		feature.FromRecord(&roadmap.Record{ID: "1", Title: "Copilot in Word", Status: "Launched", Products: []string{"Microsoft Word"}}),
		feature.FromRecord(&roadmap.Record{ID: "2", Title: "Teams recap", Status: "Rolling out", Products: []string{"Microsoft Teams"}}),
		feature.FromRecord(&roadmap.Record{ID: "3", Title: "Outlook sharing", Status: "Launched", Products: []string{"Microsoft Outlook"}}),
	}
}

func TestRun_ExtractTitles(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(testFeatures(), `.[] | .title`, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Copilot in Word", "Teams recap", "Outlook sharing"}, result.Values)
	assert.Equal(t, 3, result.RawCount)
	assert.Empty(t, result.Errors)
}

func TestRun_SelectFilter(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(testFeatures(), `.[] | select(.status == "Launched") | .id`, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "3"}, result.Values)
}

func TestRun_Deduplicate(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(testFeatures(), `.[] | .status`, true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Launched", "Rolling out"}, result.Values)
	assert.Equal(t, 3, result.RawCount)
}

func TestRun_MaxResults(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(testFeatures(), `.[] | .id`, false, 2)
	require.NoError(t, err)
	assert.Len(t, result.Values, 2)
}

func TestRun_InvalidExpression(t *testing.T) {
	e := NewEngine()

	_, err := e.Run(testFeatures(), `.[ | broken`, false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestRun_RuntimeErrorCollected(t *testing.T) {
	e := NewEngine()

	// Indexing the array with a string key is a runtime error, not a parse error.
	result, err := e.Run(testFeatures(), `.foo`, false, 0)
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "array")
	assert.Empty(t, result.Values)
}

func TestRun_EmptyInput(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(nil, `.[] | .title`, false, 0)
	require.NoError(t, err)
	assert.NotNil(t, result.Values)
	assert.Empty(t, result.Values)
}
