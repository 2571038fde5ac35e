package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema_panicsOnNilSlice(t *testing.T) {
	type BadOutput struct {
		Items []string `json:"items"` // no omitzero → nil → null → schema expects array
	}
	assert.Panics(t, func() {
		CheckOutputSchema[BadOutput]("test_bad_tool")
	})
}

func TestCheckOutputSchema_okWithOmitzero(t *testing.T) {
	type GoodOutput struct {
		Items []string `json:"items,omitzero"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_good_tool")
	})
}

func TestCheckOutputSchema_okWithOmitempty(t *testing.T) {
	type GoodOutput struct {
		Items []string `json:"items,omitempty"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_good_tool")
	})
}

func TestCheckOutputSchema_okWithNoSlices(t *testing.T) {
	type SimpleOutput struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[SimpleOutput]("test_simple_tool")
	})
}

func TestCheckOutputSchema_okWithAny(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[any]("test_any_tool")
	})
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	// Every builtin tool output must pass the zero-value check or Register
	// would panic at startup.
	assert.NotPanics(t, func() {
		CheckOutputSchema[SearchOutput]("roadmap_search")
		CheckOutputSchema[GetFeatureOutput]("roadmap_get_feature")
		CheckOutputSchema[CheckCloudOutput]("roadmap_check_cloud")
		CheckOutputSchema[RecentOutput]("roadmap_recent_additions")
		CheckOutputSchema[QueryOutput]("roadmap_query")
	})
}
