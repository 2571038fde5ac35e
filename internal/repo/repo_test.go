package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves canned records and counts fetches.
type fakeProvider struct {
	records []json.RawMessage
	err     error
	fetches int
}

func (p *fakeProvider) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

// fakeClock is an adjustable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func record(id, title string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"id": %q, "title": %q}`, id, title))
}

func newTestRepo(p *fakeProvider) (*Repository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	r := New(p, WithTTL(15*time.Minute), WithClock(clock.Now))
	return r, clock
}

func TestAll_FetchesAndCaches(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{record("1", "a"), record("2", "b")}}
	r, _ := newTestRepo(p)

	snap, err := r.All(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, snap.Features, 2)
	assert.False(t, snap.Stale)
	assert.Equal(t, 1, p.fetches)

	// Within the TTL the cached snapshot is served.
	again, err := r.All(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, snap, again)
	assert.Equal(t, 1, p.fetches)
}

func TestAll_RefreshesAfterTTL(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{record("1", "a")}}
	r, clock := newTestRepo(p)

	_, err := r.All(context.Background(), false)
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)

	_, err = r.All(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, p.fetches)
}

func TestAll_ForceRefresh(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{record("1", "a")}}
	r, _ := newTestRepo(p)

	_, err := r.All(context.Background(), false)
	require.NoError(t, err)

	_, err = r.All(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, p.fetches)
}

func TestAll_StaleFallbackIsFlagged(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{record("1", "a")}}
	r, clock := newTestRepo(p)

	fresh, err := r.All(context.Background(), false)
	require.NoError(t, err)
	require.False(t, fresh.Stale)

	clock.Advance(time.Hour)
	p.err = errors.New("upstream down")

	snap, err := r.All(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, snap.Stale)
	assert.Len(t, snap.Features, 1)

	// The cached state itself is never marked stale.
	assert.False(t, fresh.Stale)
}

func TestAll_NoCacheFailureIsUpstreamUnavailable(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	r, _ := newTestRepo(p)

	_, err := r.All(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAll_SkippedRecordsReported(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{
		record("1", "good"),
		json.RawMessage(`{"id": "2"}`),
	}}
	r, _ := newTestRepo(p)

	snap, err := r.All(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, snap.Features, 1)
	require.Len(t, snap.Skipped, 1)
	assert.Equal(t, "2", snap.Skipped[0].ID)
}

func TestAll_SnapshotOrderedNewestFirst(t *testing.T) {
	p := &fakeProvider{records: []json.RawMessage{
		json.RawMessage(`{"id": "1", "title": "old", "created": "2026-01-01T00:00:00Z"}`),
		json.RawMessage(`{"id": "2", "title": "new", "created": "2026-05-01T00:00:00Z"}`),
		json.RawMessage(`{"id": "3", "title": "undated"}`),
	}}
	r, _ := newTestRepo(p)

	snap, err := r.All(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, snap.Features, 3)
	assert.Equal(t, "2", snap.Features[0].ID)
	assert.Equal(t, "1", snap.Features[1].ID)
	assert.Equal(t, "3", snap.Features[2].ID)

	assert.Equal(t, 3, snap.Index.Len())
}
