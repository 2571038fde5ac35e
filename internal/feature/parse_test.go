package feature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecords(records ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r))
	}
	return out
}

func TestParseRecords_Valid(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100", "title": "Copilot in Word", "status": "Launched", "products": ["Microsoft Word"]}`,
		`{"id": 200, "title": "Teams feature", "generalAvailabilityDate": "2026-03"}`,
	))

	require.Len(t, features, 2)
	assert.Empty(t, skipped)

	assert.Equal(t, "100", features[0].ID)
	assert.Equal(t, "Copilot in Word", features[0].Title)
	assert.Equal(t, "Launched", features[0].Status)

	// Numeric feed ids are normalized to strings.
	assert.Equal(t, "200", features[1].ID)

	ga, ok := features[1].DisclosureTime()
	require.True(t, ok)
	assert.Equal(t, 2026, ga.Year())
}

func TestParseRecords_MissingTitleSkipped(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100"}`,
		`{"id": "200", "title": "Kept"}`,
	))

	require.Len(t, features, 1)
	assert.Equal(t, "200", features[0].ID)

	require.Len(t, skipped, 1)
	assert.Equal(t, 0, skipped[0].Index)
	assert.Equal(t, "100", skipped[0].ID)
	assert.NotEmpty(t, skipped[0].Reason)
}

func TestParseRecords_MissingIDSkipped(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"title": "No id"}`,
	))

	assert.Empty(t, features)
	require.Len(t, skipped, 1)
	assert.Empty(t, skipped[0].ID)
}

func TestParseRecords_InvalidJSONSkipped(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100", "title":`,
		`{"id": "200", "title": "Kept"}`,
	))

	require.Len(t, features, 1)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Reason, "invalid JSON")
}

func TestParseRecords_DuplicateID_FirstWins(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100", "title": "First"}`,
		`{"id": "100", "title": "Second"}`,
	))

	require.Len(t, features, 1)
	assert.Equal(t, "First", features[0].Title)

	require.Len(t, skipped, 1)
	assert.Equal(t, "duplicate id", skipped[0].Reason)
	assert.Equal(t, "100", skipped[0].ID)
}

func TestParseRecords_NullOptionalFields(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100", "title": "Nulls everywhere", "status": null, "products": null, "generalAvailabilityDate": null}`,
	))

	require.Len(t, features, 1)
	assert.Empty(t, skipped)
	assert.Empty(t, features[0].Status)
	assert.Empty(t, features[0].Products)
}

func TestParseRecords_UnknownFieldsTolerated(t *testing.T) {
	features, skipped := ParseRecords(rawRecords(
		`{"id": "100", "title": "Future fields", "someNewField": {"nested": true}}`,
	))

	require.Len(t, features, 1)
	assert.Empty(t, skipped)
}

func TestFromRecord_NormalizesSets(t *testing.T) {
	features, _ := ParseRecords(rawRecords(
		`{"id": "100", "title": "  Padded  ", "products": [" Microsoft Teams ", "Microsoft Teams", "", "Outlook"]}`,
	))
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, "Padded", f.Title)
	assert.Equal(t, []string{"Microsoft Teams", "Outlook"}, f.Products)
}

func TestRecencyTime_CreatedPreferred(t *testing.T) {
	features, _ := ParseRecords(rawRecords(
		`{"id": "1", "title": "Both", "created": "2026-01-10T00:00:00Z", "modified": "2026-02-10T00:00:00Z"}`,
		`{"id": "2", "title": "Modified only", "modified": "2026-02-10T00:00:00Z"}`,
		`{"id": "3", "title": "Neither"}`,
	))
	require.Len(t, features, 3)

	ts, basis, ok := features[0].RecencyTime()
	require.True(t, ok)
	assert.Equal(t, RecencyCreated, basis)
	assert.Equal(t, 1, int(ts.Month()))

	_, basis, ok = features[1].RecencyTime()
	require.True(t, ok)
	assert.Equal(t, RecencyModified, basis)

	_, _, ok = features[2].RecencyTime()
	assert.False(t, ok)
}
