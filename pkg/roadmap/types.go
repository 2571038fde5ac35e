package roadmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FeedID is an upstream feature identifier. The v2 feed serializes ids as
// JSON numbers, but string ids have been observed too; both decode to the
// canonical string form.
type FeedID string

// UnmarshalJSON accepts both string and numeric ids.
func (id *FeedID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = FeedID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("feed id must be a string or number: %w", err)
	}
	*id = FeedID(n.String())
	return nil
}

// Record is one raw feed item exactly as the upstream API serializes it.
// Every field beyond id is optional in practice; the feed schema is loose
// and has grown fields over time, so unknown fields are ignored.
type Record struct {
	ID          FeedID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`

	Products       []string `json:"products"`
	CloudInstances []string `json:"cloudInstances"`
	ReleaseRings   []string `json:"releaseRings"`
	Platforms      []string `json:"platforms"`

	GeneralAvailabilityDate string `json:"generalAvailabilityDate"`
	PreviewAvailabilityDate string `json:"previewAvailabilityDate"`

	Availabilities []Availability `json:"availabilities"`
	MoreInfoURLs   []string       `json:"moreInfoUrls"`

	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// Availability is one per-ring schedule entry on a Record.
type Availability struct {
	Ring  string `json:"ring"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// APIError is an error response from the roadmap API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("roadmap API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("roadmap API error: status %d: %s", e.StatusCode, e.Message)
}
