package feature

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// recordSchema is the contract a raw feed record must meet before it is
// turned into a Feature. The feed schema is loose: only id and title are
// hard requirements, everything else may be absent, null, or novel.
const recordSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["id", "title"],
	"properties": {
		"id": {
			"anyOf": [
				{"type": "string", "minLength": 1},
				{"type": "integer"}
			]
		},
		"title": {"type": "string", "minLength": 1},
		"description": {"type": ["string", "null"]},
		"status": {"type": ["string", "null"]},
		"products": {"type": ["array", "null"], "items": {"type": "string"}},
		"cloudInstances": {"type": ["array", "null"], "items": {"type": "string"}},
		"releaseRings": {"type": ["array", "null"], "items": {"type": "string"}},
		"platforms": {"type": ["array", "null"], "items": {"type": "string"}},
		"generalAvailabilityDate": {"type": ["string", "null"]},
		"previewAvailabilityDate": {"type": ["string", "null"]},
		"moreInfoUrls": {"type": ["array", "null"], "items": {"type": "string"}},
		"created": {"type": ["string", "null"]},
		"modified": {"type": ["string", "null"]}
	}
}`

var compiledRecordSchema = mustCompileRecordSchema()

func mustCompileRecordSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(recordSchema))
	if err != nil {
		panic(fmt.Sprintf("feature: parsing record schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", doc); err != nil {
		panic(fmt.Sprintf("feature: adding record schema resource: %v", err))
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		panic(fmt.Sprintf("feature: compiling record schema: %v", err))
	}
	return schema
}

// SkipReason describes one feed record that could not become a Feature.
type SkipReason struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ParseRecords converts raw feed records into Features. A record that fails
// schema validation or JSON decoding is skipped with a reason; a bad record
// never aborts the batch.
func ParseRecords(raws []json.RawMessage) ([]*Feature, []SkipReason) {
	features := make([]*Feature, 0, len(raws))
	var skipped []SkipReason
	seen := make(map[string]bool, len(raws))

	for i, raw := range raws {
		f, err := parseRecord(raw)
		if err != nil {
			skipped = append(skipped, SkipReason{
				Index:  i,
				ID:     peekID(raw),
				Reason: err.Error(),
			})
			continue
		}
		// Duplicate ids would break detail lookup; first record wins.
		if seen[f.ID] {
			skipped = append(skipped, SkipReason{
				Index:  i,
				ID:     f.ID,
				Reason: "duplicate id",
			})
			continue
		}
		seen[f.ID] = true
		features = append(features, f)
	}

	return features, skipped
}

func parseRecord(raw json.RawMessage) (*Feature, error) {
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledRecordSchema.Validate(value); err != nil {
		return nil, errors.New(validationReason(err))
	}

	var rec roadmap.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	return FromRecord(&rec), nil
}

// FromRecord builds a Feature from a decoded record. The record is assumed
// to have passed schema validation; set fields are trimmed and deduplicated
// and date labels parsed best-effort.
func FromRecord(rec *roadmap.Record) *Feature {
	f := &Feature{
		ID:                      string(rec.ID),
		Title:                   strings.TrimSpace(rec.Title),
		Description:             rec.Description,
		Status:                  strings.TrimSpace(rec.Status),
		Products:                normalizeSet(rec.Products),
		CloudInstances:          normalizeSet(rec.CloudInstances),
		ReleaseRings:            normalizeSet(rec.ReleaseRings),
		Platforms:               normalizeSet(rec.Platforms),
		GeneralAvailabilityDate: strings.TrimSpace(rec.GeneralAvailabilityDate),
		PreviewAvailabilityDate: strings.TrimSpace(rec.PreviewAvailabilityDate),
		Availabilities:          rec.Availabilities,
		MoreInfoURLs:            normalizeSet(rec.MoreInfoURLs),
		Created:                 strings.TrimSpace(rec.Created),
		Modified:                strings.TrimSpace(rec.Modified),
	}

	f.gaTime, _ = ParseAvailabilityDate(f.GeneralAvailabilityDate)
	f.createdTime, _ = ParseTimestamp(f.Created)
	f.modifiedTime, _ = ParseTimestamp(f.Modified)

	return f
}

// normalizeSet trims elements, drops empties, and removes duplicates while
// preserving first-occurrence order.
func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// peekID pulls the id out of an otherwise unusable record for skip reporting.
func peekID(raw json.RawMessage) string {
	var probe struct {
		ID roadmap.FeedID `json:"id"`
	}
	if json.Unmarshal(raw, &probe) != nil {
		return ""
	}
	return string(probe.ID)
}

var errPrinter = message.NewPrinter(language.English)

// validationReason flattens a schema validation error into one line.
func validationReason(err error) string {
	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return err.Error()
	}
	var msgs []string
	collectCauses(vErr, &msgs)
	if len(msgs) == 0 {
		return vErr.Error()
	}
	return strings.Join(msgs, "; ")
}

func collectCauses(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		loc := "/" + strings.Join(err.InstanceLocation, "/")
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.ErrorKind.LocalizedString(errPrinter)))
		return
	}
	for _, cause := range err.Causes {
		collectCauses(cause, out)
	}
}
