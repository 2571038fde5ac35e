// Package repo implements the feature repository: a TTL-cached in-memory
// snapshot of the roadmap feed with graceful degradation to stale data.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/index"
)

// ErrUpstreamUnavailable reports a failed feed fetch with no cached snapshot
// to fall back on.
var ErrUpstreamUnavailable = errors.New("roadmap feed unavailable")

// Provider fetches raw feed records. *roadmap.Client satisfies this.
type Provider interface {
	Fetch(ctx context.Context) ([]json.RawMessage, error)
}

// Snapshot is the full in-memory feature collection from one feed fetch.
// Snapshots are immutable once published; a replacement snapshot is built
// rather than updating in place.
type Snapshot struct {
	Features  []*feature.Feature
	Index     *index.Index
	FetchedAt time.Time
	Skipped   []feature.SkipReason

	// Stale is set on snapshots returned after a failed refresh. It is a
	// property of the returned value, not of the cached state.
	Stale bool
}

// Repository caches feed snapshots with a TTL.
type Repository struct {
	provider       Provider
	ttl            time.Duration
	refreshTimeout time.Duration
	clock          func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
}

// Option configures a Repository.
type Option func(*Repository)

// WithTTL sets the maximum snapshot age before a refresh is attempted.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.ttl = ttl }
}

// WithRefreshTimeout bounds a single upstream fetch.
func WithRefreshTimeout(d time.Duration) Option {
	return func(r *Repository) { r.refreshTimeout = d }
}

// WithClock injects a time source for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) { r.clock = clock }
}

// New creates a Repository over the given provider.
func New(p Provider, opts ...Option) *Repository {
	r := &Repository{
		provider:       p,
		ttl:            15 * time.Minute,
		refreshTimeout: 45 * time.Second,
		clock:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// All returns the current snapshot, refreshing from upstream when the cache
// is missing, expired, or forceRefresh is set.
//
// On upstream failure a cached snapshot is returned with Stale set; with no
// cache the call fails with ErrUpstreamUnavailable. Concurrent refreshes are
// collapsed into one upstream fetch via singleflight.
func (r *Repository) All(ctx context.Context, forceRefresh bool) (*Snapshot, error) {
	if !forceRefresh {
		if snap := r.cached(); snap != nil {
			return snap, nil
		}
	}

	v, err, _ := r.group.Do("refresh", func() (any, error) {
		// A concurrent caller may have refreshed while this one waited.
		if !forceRefresh {
			if snap := r.cached(); snap != nil {
				return snap, nil
			}
		}
		return r.refresh(ctx)
	})
	if err == nil {
		return v.(*Snapshot), nil
	}

	// Degrade to the stale snapshot when one exists. Staleness is flagged,
	// never hidden: recency-reporting tools surface it to the caller.
	r.mu.RLock()
	prev := r.snap
	r.mu.RUnlock()
	if prev != nil {
		slog.Warn("roadmap refresh failed, serving stale snapshot",
			slog.Time("fetched_at", prev.FetchedAt),
			slog.String("error", err.Error()),
		)
		stale := *prev
		stale.Stale = true
		return &stale, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

// cached returns the stored snapshot if it is within the TTL.
func (r *Repository) cached() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snap == nil {
		return nil
	}
	if r.clock().Sub(r.snap.FetchedAt) >= r.ttl {
		return nil
	}
	return r.snap
}

func (r *Repository) refresh(ctx context.Context) (*Snapshot, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.refreshTimeout)
	defer cancel()

	start := time.Now()
	raws, err := r.provider.Fetch(fetchCtx)
	if err != nil {
		return nil, err
	}

	features, skipped := feature.ParseRecords(raws)
	sortSnapshot(features)

	snap := &Snapshot{
		Features:  features,
		Index:     index.Build(features),
		FetchedAt: r.clock(),
		Skipped:   skipped,
	}

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()

	slog.Info("roadmap snapshot refreshed",
		slog.Int("features", len(features)),
		slog.Int("skipped", len(skipped)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return snap, nil
}

// sortSnapshot orders features newest-created first (undated last), ties by
// id ascending, so snapshot order is deterministic regardless of feed order.
func sortSnapshot(features []*feature.Feature) {
	sort.SliceStable(features, func(i, j int) bool {
		ti, _, iOK := features[i].RecencyTime()
		tj, _, jOK := features[j].RecencyTime()
		switch {
		case iOK && !jOK:
			return true
		case !iOK && jOK:
			return false
		case iOK && jOK && !ti.Equal(tj):
			return ti.After(tj)
		}
		return features[i].ID < features[j].ID
	})
}
