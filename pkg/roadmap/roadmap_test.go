package roadmap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL))
}

func TestFetch_BareArray(t *testing.T) {
	c := newTestServer(t, http.StatusOK, `[{"id": 1, "title": "a"}, {"id": 2, "title": "b"}]`)

	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFetch_ValueEnvelope(t *testing.T) {
	c := newTestServer(t, http.StatusOK, `{"value": [{"id": 1, "title": "a"}]}`)

	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	var rec Record
	require.NoError(t, json.Unmarshal(records[0], &rec))
	assert.Equal(t, FeedID("1"), rec.ID)
}

func TestFetch_HTTPError(t *testing.T) {
	c := newTestServer(t, http.StatusServiceUnavailable, `upstream down`)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "upstream down")
}

func TestFetch_MalformedPayload(t *testing.T) {
	c := newTestServer(t, http.StatusOK, `not json`)

	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFeedID_StringAndNumber(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"id": "42"}`), &rec))
	assert.Equal(t, FeedID("42"), rec.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &rec))
	assert.Equal(t, FeedID("42"), rec.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &rec))
	assert.Equal(t, FeedID(""), rec.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": {"nested": true}}`), &rec))
}
