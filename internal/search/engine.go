// Package search implements the query engine over roadmap snapshots:
// filtered search, detail lookup, cloud-availability checks, and recency
// listings. Every operation reads one snapshot from the repository and never
// mutates it.
package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/roadmap-mcp/internal/config"
	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/textcache"
)

// Engine executes queries against the repository's current snapshot.
type Engine struct {
	repo  *repo.Repository
	texts *textcache.Cache

	defaultLimit  int
	maxLimit      int
	maxWindowDays int

	clock func() time.Time
}

// New creates a query engine.
func New(r *repo.Repository, texts *textcache.Cache, cfg *config.Config) *Engine {
	return &Engine{
		repo:          r,
		texts:         texts,
		defaultLimit:  cfg.DefaultSearchLimit,
		maxLimit:      cfg.MaxSearchLimit,
		maxWindowDays: cfg.RecentWindowMaxDays,
		clock:         time.Now,
	}
}

// Search applies the request's filters (ANDed) and returns a page of
// summaries ordered by general-availability date ascending, undated features
// last, ties by id ascending. No matches is an empty result, not an error.
func (e *Engine) Search(ctx context.Context, req *Request) (*Response, error) {
	if req.Limit < 0 {
		return nil, &InvalidArgumentError{Reason: "limit must not be negative"}
	}
	if req.Offset < 0 {
		return nil, &InvalidArgumentError{Reason: "offset must not be negative"}
	}
	if !req.DateFrom.IsZero() && !req.DateTo.IsZero() && req.DateTo.Before(req.DateFrom) {
		return nil, &InvalidArgumentError{Reason: "date_to is before date_from"}
	}

	limit := req.Limit
	switch {
	case limit == 0 && req.IncludeFacets:
		// Facets-only request: original feed tooling allows limit 0 here.
	case limit == 0:
		limit = e.defaultLimit
	case limit > e.maxLimit:
		limit = e.maxLimit
	}

	snap, err := e.repo.All(ctx, req.ForceRefresh)
	if err != nil {
		return nil, err
	}

	matched := e.collect(snap, req)
	sortByDisclosure(matched)

	total := len(matched)

	start := min(req.Offset, total)
	end := min(start+limit, total)
	page := matched[start:end]

	summaries := make([]feature.Summary, 0, len(page))
	for _, f := range page {
		summaries = append(summaries, f.Summarize())
	}

	resp := &Response{
		TotalFound: total,
		Features:   summaries,
		Snapshot:   snapshotInfo(snap),
	}
	if req.IncludeFacets {
		resp.Facets = computeFacets(matched)
	}
	return resp, nil
}

// GetFeature returns the full feature for an exact id.
func (e *Engine) GetFeature(ctx context.Context, id string, forceRefresh bool) (*feature.Feature, SnapshotInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, SnapshotInfo{}, &InvalidArgumentError{Reason: "feature_id is required"}
	}

	snap, err := e.repo.All(ctx, forceRefresh)
	if err != nil {
		return nil, SnapshotInfo{}, err
	}

	f, ok := snap.Index.ByID(id)
	if !ok {
		return nil, snapshotInfo(snap), &NotFoundError{ID: id}
	}
	return f, snapshotInfo(snap), nil
}

// CheckCloud reports whether a feature is scheduled for a cloud instance.
// Matching is exact case-insensitive on the full instance label; partial
// labels never match ("GCC" does not match "GCC High").
func (e *Engine) CheckCloud(ctx context.Context, id, instance string) (*Availability, SnapshotInfo, error) {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		return nil, SnapshotInfo{}, &InvalidArgumentError{Reason: "cloud_instance is required"}
	}

	f, info, err := e.GetFeature(ctx, id, false)
	if err != nil {
		return nil, info, err
	}

	result := &Availability{
		FeatureID:       f.ID,
		Title:           f.Title,
		Status:          f.Status,
		Instance:        instance,
		ListedInstances: f.CloudInstances,
	}

	folded := textcache.Fold(instance)
	for _, label := range f.CloudInstances {
		if textcache.Fold(label) == folded {
			result.Available = true
			result.MatchedInstanceLabel = label
			result.ReleaseDate = f.GeneralAvailabilityDate
			break
		}
	}

	return result, info, nil
}

// RecentAdditions lists features whose recency timestamp falls within the
// last days days, cutoff inclusive, newest first, ties by id ascending.
// Each entry reports whether its timestamp is the created date or the
// modified-date fallback.
func (e *Engine) RecentAdditions(ctx context.Context, days, limit int) (*RecentResponse, error) {
	if days <= 0 {
		return nil, &InvalidArgumentError{Reason: "days must be a positive integer"}
	}
	if days > e.maxWindowDays {
		days = e.maxWindowDays
	}
	if limit < 0 {
		return nil, &InvalidArgumentError{Reason: "limit must not be negative"}
	}
	if limit == 0 || limit > e.maxLimit {
		limit = e.maxLimit
	}

	snap, err := e.repo.All(ctx, false)
	if err != nil {
		return nil, err
	}

	cutoff := e.clock().UTC().AddDate(0, 0, -days)

	var entries []RecentEntry
	for _, f := range snap.Features {
		ts, basis, ok := f.RecencyTime()
		if !ok || ts.Before(cutoff) {
			continue
		}
		entries = append(entries, RecentEntry{
			Summary:      f.Summarize(),
			RecencyBasis: basis,
			RecencyTime:  ts,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecencyTime.Equal(entries[j].RecencyTime) {
			return entries[i].RecencyTime.After(entries[j].RecencyTime)
		}
		return entries[i].ID < entries[j].ID
	})

	total := len(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []RecentEntry{}
	}

	return &RecentResponse{
		TotalFound: total,
		Days:       days,
		Cutoff:     cutoff,
		Features:   entries,
		Snapshot:   snapshotInfo(snap),
	}, nil
}

// collect plans exact-match filters on the snapshot index and scans the
// candidate set for the substring and date filters.
func (e *Engine) collect(snap *repo.Snapshot, req *Request) []*feature.Feature {
	candidates := snap.Index.All()

	if req.Status != "" {
		bm := snap.Index.Status(textcache.Fold(req.Status))
		if bm == nil {
			return nil
		}
		candidates = roaring.And(candidates, bm)
	}
	if req.CloudInstance != "" {
		bm := snap.Index.Cloud(textcache.Fold(req.CloudInstance))
		if bm == nil {
			return nil
		}
		candidates = roaring.And(candidates, bm)
	}

	var (
		query      = textcache.Fold(req.Query)
		product    = textcache.Fold(req.Product)
		phase      = textcache.Fold(req.ReleasePhase)
		platform   = textcache.Fold(req.Platform)
		rollout    = feature.NormalizeDateLabel(req.RolloutDate)
		preview    = feature.NormalizeDateLabel(req.PreviewDate)
		now        = e.clock().UTC()
		addedSince time.Time
		modSince   time.Time
	)
	if req.AddedWithinDays > 0 {
		addedSince = now.AddDate(0, 0, -min(req.AddedWithinDays, e.maxWindowDays))
	}
	if req.ModifiedWithinDays > 0 {
		modSince = now.AddDate(0, 0, -min(req.ModifiedWithinDays, e.maxWindowDays))
	}

	var matched []*feature.Feature

	iter := candidates.Iterator()
	for iter.HasNext() {
		f := snap.Index.At(iter.Next())

		if query != "" && !strings.Contains(e.texts.SearchText(f), query) {
			continue
		}
		if product != "" && !containsFolded(f.Products, product) {
			continue
		}
		if phase != "" && !containsFolded(f.ReleaseRings, phase) {
			continue
		}
		if platform != "" && !containsFolded(f.Platforms, platform) {
			continue
		}
		if rollout != "" {
			if f.GeneralAvailabilityDate == "" ||
				!strings.Contains(feature.NormalizeDateLabel(f.GeneralAvailabilityDate), rollout) {
				continue
			}
		}
		if preview != "" {
			if f.PreviewAvailabilityDate == "" ||
				!strings.Contains(feature.NormalizeDateLabel(f.PreviewAvailabilityDate), preview) {
				continue
			}
		}
		if !req.DateFrom.IsZero() || !req.DateTo.IsZero() {
			// A date range filter excludes undated features.
			t, ok := f.DisclosureTime()
			if !ok {
				continue
			}
			if !req.DateFrom.IsZero() && t.Before(req.DateFrom) {
				continue
			}
			if !req.DateTo.IsZero() && t.After(req.DateTo) {
				continue
			}
		}
		if !addedSince.IsZero() {
			t, okc := feature.ParseTimestamp(f.Created)
			if !okc || t.Before(addedSince) {
				continue
			}
		}
		if !modSince.IsZero() {
			t, okm := feature.ParseTimestamp(f.Modified)
			if !okm || t.Before(modSince) {
				continue
			}
		}

		matched = append(matched, f)
	}

	return matched
}

// containsFolded reports whether needle is a substring of any set element
// after case folding.
func containsFolded(set []string, needle string) bool {
	for _, s := range set {
		if strings.Contains(textcache.Fold(s), needle) {
			return true
		}
	}
	return false
}

// sortByDisclosure orders by parsed general-availability date ascending,
// undated features last, ties broken by id ascending.
func sortByDisclosure(features []*feature.Feature) {
	sort.SliceStable(features, func(i, j int) bool {
		ti, iOK := features[i].DisclosureTime()
		tj, jOK := features[j].DisclosureTime()
		switch {
		case iOK && !jOK:
			return true
		case !iOK && jOK:
			return false
		case iOK && jOK && !ti.Equal(tj):
			return ti.Before(tj)
		}
		return features[i].ID < features[j].ID
	})
}

func snapshotInfo(snap *repo.Snapshot) SnapshotInfo {
	return SnapshotInfo{
		FetchedAt:      snap.FetchedAt,
		Stale:          snap.Stale,
		SkippedRecords: len(snap.Skipped),
	}
}
