package textcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/roadmap-mcp/internal/feature"
)

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("GCC High"), Fold("gcc high"))
	assert.NotEqual(t, Fold("GCC"), Fold("GCC High"))
}

func TestStripMarkup_PlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "no markup here", StripMarkup("no  markup\n here"))
}

func TestStripMarkup_HTML(t *testing.T) {
	got := StripMarkup("<p>Teams admins can <b>now</b> configure this.</p>")
	assert.Equal(t, "Teams admins can now configure this.", got)
}

func TestStripMarkup_SkipsScriptAndStyle(t *testing.T) {
	got := StripMarkup("<div>visible<script>alert(1)</script><style>.x{}</style></div>")
	assert.Equal(t, "visible", got)
}

func TestSearchText_CachedPerModifiedStamp(t *testing.T) {
	c, err := New(16)
	require.NoError(t, err)

	f := &feature.Feature{ID: "1", Title: "Copilot", Description: "<p>In Word</p>", Modified: "2026-01-01T00:00:00Z"}

	first := c.SearchText(f)
	assert.Equal(t, "copilot in word", first)
	assert.Equal(t, 1, c.Len())

	// Same id and modified stamp reuses the cached entry.
	c.SearchText(f)
	assert.Equal(t, 1, c.Len())

	// A new modified stamp gets its own entry.
	edited := &feature.Feature{ID: "1", Title: "Copilot", Description: "<p>In Excel</p>", Modified: "2026-02-01T00:00:00Z"}
	assert.Equal(t, "copilot in excel", c.SearchText(edited))
	assert.Equal(t, 2, c.Len())
}
