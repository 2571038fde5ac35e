package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/internal/query"
	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/search"
	"github.com/usestring/roadmap-mcp/internal/textcache"
)

type fakeProvider struct {
	records []json.RawMessage
}

func (p *fakeProvider) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	return p.records, nil
}

func newTestDeps(t *testing.T, records ...string) *Deps {
	t.Helper()
	raws := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raws = append(raws, json.RawMessage(r))
	}

	cfg := &config.Config{
		DefaultSearchLimit:  10,
		MaxSearchLimit:      100,
		MaxQueryResults:     500,
		RecentWindowMaxDays: 365,
	}
	texts, err := textcache.New(128)
	require.NoError(t, err)
	r := repo.New(&fakeProvider{records: raws})

	return &Deps{
		Repo:   r,
		Engine: search.New(r, texts, cfg),
		Query:  query.NewEngine(),
		Texts:  texts,
		Config: cfg,
	}
}

func corpus() []string {
	return []string{
		`{"id": "101", "title": "Copilot in Word", "status": "Launched", "products": ["Microsoft Word"],
		  "cloudInstances": ["Worldwide (Standard Multi-Tenant)", "GCC"], "generalAvailabilityDate": "2026-01"}`,
		`{"id": "102", "title": "Teams meeting recap", "status": "Rolling out", "products": ["Microsoft Teams"],
		  "cloudInstances": ["GCC High"], "generalAvailabilityDate": "2026-03"}`,
	}
}

func TestToolSearch_Basic(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolSearch(d)

	_, out, err := handler(context.Background(), nil, SearchInput{Product: "Teams"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalFound)
	require.Len(t, out.Features, 1)
	assert.Equal(t, "102", out.Features[0].ID)

	// Single match points at the detail tool.
	assert.Contains(t, out.Hint, "roadmap_get_feature")
}

func TestToolSearch_DateBoundsParsed(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolSearch(d)

	_, out, err := handler(context.Background(), nil, SearchInput{DateFrom: "2026-02", DateTo: "December CY2026"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalFound)
}

func TestToolSearch_BadDateRejected(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolSearch(d)

	_, _, err := handler(context.Background(), nil, SearchInput{DateFrom: "whenever"})
	require.Error(t, err)
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolSearch_NoMatchesHint(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolSearch(d)

	_, out, err := handler(context.Background(), nil, SearchInput{Query: "nonexistent thing"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalFound)
	assert.Contains(t, out.Hint, "include_facets")
}

func TestToolGetFeature_NotFound(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolGetFeature(d)

	_, _, err := handler(context.Background(), nil, GetFeatureInput{FeatureID: "999"})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeNotFound, coded.Code)
}

func TestToolCheckCloud_ExactInstanceOnly(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolCheckCloud(d)

	_, out, err := handler(context.Background(), nil, CheckCloudInput{FeatureID: "101", CloudInstance: "GCC"})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Equal(t, "GCC", out.MatchedInstanceLabel)

	_, out, err = handler(context.Background(), nil, CheckCloudInput{FeatureID: "102", CloudInstance: "GCC"})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Contains(t, out.Hint, "GCC High")
}

func TestToolQuery_Extraction(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolQuery(d)

	_, out, err := handler(context.Background(), nil, QueryInput{Expression: `.[] | .id`})
	require.NoError(t, err)
	assert.Equal(t, []any{"101", "102"}, out.Values)
}

func TestToolQuery_EmptyExpression(t *testing.T) {
	d := newTestDeps(t, corpus()...)
	handler := ToolQuery(d)

	_, _, err := handler(context.Background(), nil, QueryInput{})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}
