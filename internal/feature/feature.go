// Package feature defines the roadmap feature model and the fallible
// conversion from raw feed records.
package feature

import (
	"time"

	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// RecencyBasis names the timestamp backing a feature's recency ordering.
// The feed's created field is the true "added to roadmap" date, but older
// records ship without it; those fall back to the modified timestamp and
// the substitution is reported, never silent.
type RecencyBasis string

const (
	RecencyCreated  RecencyBasis = "created"
	RecencyModified RecencyBasis = "modified"
)

// Feature is one roadmap entry. Features are value objects constructed once
// per feed parse and never mutated afterwards; query code only filters and
// projects them.
type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`

	Products       []string `json:"products,omitempty"`
	CloudInstances []string `json:"cloud_instances,omitempty"`
	ReleaseRings   []string `json:"release_rings,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`

	// Upstream date labels, verbatim (e.g. "2026-03" or "December CY2026").
	GeneralAvailabilityDate string `json:"general_availability_date,omitempty"`
	PreviewAvailabilityDate string `json:"preview_availability_date,omitempty"`

	Availabilities []roadmap.Availability `json:"availabilities,omitempty"`
	MoreInfoURLs   []string               `json:"more_info_urls,omitempty"`

	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`

	// Parsed timestamps. Zero when the source label was absent or
	// unparseable.
	gaTime       time.Time
	createdTime  time.Time
	modifiedTime time.Time
}

// DisclosureTime returns the parsed general-availability date used for
// ordering and range filtering. ok is false for undated features.
func (f *Feature) DisclosureTime() (t time.Time, ok bool) {
	return f.gaTime, !f.gaTime.IsZero()
}

// RecencyTime returns the timestamp used for recency filtering and the basis
// it came from. ok is false when the record carries neither created nor
// modified.
func (f *Feature) RecencyTime() (t time.Time, basis RecencyBasis, ok bool) {
	if !f.createdTime.IsZero() {
		return f.createdTime, RecencyCreated, true
	}
	if !f.modifiedTime.IsZero() {
		return f.modifiedTime, RecencyModified, true
	}
	return time.Time{}, "", false
}

// Summary is the compact projection returned by list-shaped operations.
// It omits the description; full text comes from the detail lookup.
type Summary struct {
	ID                      string   `json:"id"`
	Title                   string   `json:"title"`
	Status                  string   `json:"status,omitempty"`
	Products                []string `json:"products,omitempty"`
	CloudInstances          []string `json:"cloud_instances,omitempty"`
	GeneralAvailabilityDate string   `json:"general_availability_date,omitempty"`
	Created                 string   `json:"created,omitempty"`
	Modified                string   `json:"modified,omitempty"`
}

// Summarize projects the feature into its list form.
func (f *Feature) Summarize() Summary {
	return Summary{
		ID:                      f.ID,
		Title:                   f.Title,
		Status:                  f.Status,
		Products:                f.Products,
		CloudInstances:          f.CloudInstances,
		GeneralAvailabilityDate: f.GeneralAvailabilityDate,
		Created:                 f.Created,
		Modified:                f.Modified,
	}
}
