package search

import (
	"sort"

	"github.com/usestring/roadmap-mcp/internal/feature"
)

// FacetCount is one value with its occurrence count in the matched set.
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets holds taxonomy occurrence counts computed from matched features,
// after filters are applied.
type Facets struct {
	Products       []FacetCount `json:"products"`
	Statuses       []FacetCount `json:"statuses"`
	ReleasePhases  []FacetCount `json:"release_phases"`
	Platforms      []FacetCount `json:"platforms"`
	CloudInstances []FacetCount `json:"cloud_instances"`
}

// computeFacets tallies facet values over the matched features.
func computeFacets(matched []*feature.Feature) *Facets {
	products := make(map[string]int)
	statuses := make(map[string]int)
	phases := make(map[string]int)
	platforms := make(map[string]int)
	clouds := make(map[string]int)

	for _, f := range matched {
		for _, p := range f.Products {
			products[p]++
		}
		if f.Status != "" {
			statuses[f.Status]++
		}
		for _, rp := range f.ReleaseRings {
			phases[rp]++
		}
		for _, p := range f.Platforms {
			platforms[p]++
		}
		for _, ci := range f.CloudInstances {
			clouds[ci]++
		}
	}

	return &Facets{
		Products:       sortedCounts(products),
		Statuses:       sortedCounts(statuses),
		ReleasePhases:  sortedCounts(phases),
		Platforms:      sortedCounts(platforms),
		CloudInstances: sortedCounts(clouds),
	}
}

// sortedCounts orders by count descending, ties by name ascending.
func sortedCounts(m map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(m))
	for name, count := range m {
		out = append(out, FacetCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
