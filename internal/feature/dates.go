package feature

import (
	"strings"
	"time"
)

// Availability date labels observed in the feed, most common first. Labels
// resolve to the first day of the named month (or year) in UTC.
var availabilityLayouts = []string{
	"2006-01",
	"2006-01-02",
	"January CY2006",
	"January 2006",
	"CY2006",
	"2006",
}

// ParseAvailabilityDate parses an upstream availability label ("2026-03",
// "December CY2026", "CY2026") into a sortable month-resolution time.
// ok is false for empty or unrecognized labels.
func ParseAvailabilityDate(label string) (t time.Time, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}, false
	}
	for _, layout := range availabilityLayouts {
		if ts, err := time.Parse(layout, label); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a created/modified timestamp. The feed emits RFC3339,
// but zone-less and date-only values have appeared; those are read as UTC.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// NormalizeDateLabel lowercases a date label and drops the upstream " CY"
// calendar-year prefix so "December 2026" matches "December CY2026".
func NormalizeDateLabel(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " cy", " ")
}
