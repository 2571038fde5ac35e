package search

import (
	"fmt"
	"time"

	"github.com/usestring/roadmap-mcp/internal/feature"
)

// Request carries the search filters. All filters are optional and combine
// with logical AND; zero values mean "not filtered".
type Request struct {
	// Query is a case-insensitive substring match over title plus
	// markup-stripped description.
	Query string

	// Product is a case-insensitive substring match against any product tag
	// ("Teams" matches "Microsoft Teams"). Substring is deliberate here:
	// product naming varies, so recall wins.
	Product string

	// Status is a case-insensitive exact match.
	Status string

	// CloudInstance is a case-insensitive exact match on the full instance
	// label. Exact is deliberate: "GCC" and "GCC High" are different
	// environments and must never be conflated by a substring rule.
	CloudInstance string

	// ReleasePhase and Platform are case-insensitive substring matches.
	ReleasePhase string
	Platform     string

	// RolloutDate and PreviewDate are substring matches on the upstream
	// date labels after " CY" prefix normalization.
	RolloutDate string
	PreviewDate string

	// DateFrom and DateTo bound the parsed general-availability date.
	// Features without one are excluded whenever either bound is set.
	DateFrom time.Time
	DateTo   time.Time

	// AddedWithinDays and ModifiedWithinDays restrict to features whose
	// created (resp. modified) timestamp falls inside the window.
	AddedWithinDays    int
	ModifiedWithinDays int

	Limit         int
	Offset        int
	IncludeFacets bool
	ForceRefresh  bool
}

// SnapshotInfo reports the provenance of the snapshot a result was computed
// from. Stale and SkippedRecords surface degraded-but-successful conditions.
type SnapshotInfo struct {
	FetchedAt      time.Time `json:"fetched_at"`
	Stale          bool      `json:"stale,omitempty"`
	SkippedRecords int       `json:"skipped_records,omitempty"`
}

// Response is a search result page.
type Response struct {
	TotalFound int               `json:"total_found"`
	Features   []feature.Summary `json:"features"`
	Facets     *Facets           `json:"facets,omitempty"`
	Snapshot   SnapshotInfo      `json:"snapshot"`
}

// Availability is the verdict for one feature on one cloud instance.
type Availability struct {
	FeatureID string `json:"feature_id"`
	Title     string `json:"title"`
	Status    string `json:"status,omitempty"`
	Instance  string `json:"instance"`
	Available bool   `json:"available"`

	// MatchedInstanceLabel is the exact upstream label that matched, empty
	// when unavailable.
	MatchedInstanceLabel string `json:"matched_instance_label,omitempty"`

	// ReleaseDate is the upstream availability label, only set when the
	// instance is listed; an unlisted instance must not imply a date.
	ReleaseDate string `json:"release_date,omitempty"`

	ListedInstances []string `json:"listed_instances,omitzero"`
}

// RecentEntry is one feature in a recency listing, annotated with the
// timestamp that placed it in the window and which field it came from.
type RecentEntry struct {
	feature.Summary
	RecencyBasis feature.RecencyBasis `json:"recency_basis"`
	RecencyTime  time.Time            `json:"recency_time"`
}

// RecentResponse lists features added (or modified) within a window.
type RecentResponse struct {
	TotalFound int           `json:"total_found"`
	Days       int           `json:"days"`
	Cutoff     time.Time     `json:"cutoff"`
	Features   []RecentEntry `json:"features"`
	Snapshot   SnapshotInfo  `json:"snapshot"`
}

// NotFoundError reports a valid request for an id absent from the snapshot.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature not found: %s", e.ID)
}

// InvalidArgumentError reports an out-of-range or malformed argument.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}
