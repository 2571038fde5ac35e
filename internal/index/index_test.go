package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

func makeFeature(id, status string, clouds ...string) *feature.Feature {
	return feature.FromRecord(&roadmap.Record{
		ID:             roadmap.FeedID(id),
		Title:          "feature " + id,
		Status:         status,
		CloudInstances: clouds,
	})
}

func TestBuild_StatusPostings(t *testing.T) {
	x := Build([]*feature.Feature{
		makeFeature("1", "Launched"),
		makeFeature("2", "In development"),
		makeFeature("3", "Launched"),
	})

	require.Equal(t, 3, x.Len())

	bm := x.Status("launched")
	require.NotNil(t, bm)
	assert.Equal(t, uint64(2), bm.GetCardinality())

	assert.Nil(t, x.Status("cancelled"))
}

func TestBuild_CloudPostings_FullLabelKeys(t *testing.T) {
	x := Build([]*feature.Feature{
		makeFeature("1", "", "GCC", "GCC High"),
		makeFeature("2", "", "GCC"),
		makeFeature("3", "", "DoD"),
	})

	gcc := x.Cloud("gcc")
	require.NotNil(t, gcc)
	assert.Equal(t, uint64(2), gcc.GetCardinality())

	// "GCC High" is a distinct key, never folded into "GCC".
	high := x.Cloud("gcc high")
	require.NotNil(t, high)
	assert.Equal(t, uint64(1), high.GetCardinality())
}

func TestByID(t *testing.T) {
	x := Build([]*feature.Feature{makeFeature("42", "Launched")})

	f, ok := x.ByID("42")
	require.True(t, ok)
	assert.Equal(t, "feature 42", f.Title)

	_, ok = x.ByID("999")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	x := Build([]*feature.Feature{
		makeFeature("1", ""),
		makeFeature("2", ""),
	})

	all := x.All()
	assert.Equal(t, uint64(2), all.GetCardinality())

	assert.Equal(t, "feature 1", x.At(0).Title)
	assert.Equal(t, "feature 2", x.At(1).Title)
}
