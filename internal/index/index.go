// Package index maintains in-memory inverted indexes over one feature
// snapshot using Roaring bitmaps.
//
// Bitmaps back the exact-match filters (status, cloud instance); substring
// filters are post-filter scans over the candidate set. An Index is built
// once per snapshot and never modified afterwards, so reads need no locking.
package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/roadmap-mcp/internal/feature"
	"github.com/usestring/roadmap-mcp/internal/textcache"
)

// Index holds the per-snapshot postings. Document ids are positions in the
// snapshot's feature slice.
type Index struct {
	docs []*feature.Feature
	byID map[string]*feature.Feature

	idxStatus map[string]*roaring.Bitmap
	idxCloud  map[string]*roaring.Bitmap
}

// Build indexes a snapshot's features.
func Build(features []*feature.Feature) *Index {
	x := &Index{
		docs:      features,
		byID:      make(map[string]*feature.Feature, len(features)),
		idxStatus: make(map[string]*roaring.Bitmap),
		idxCloud:  make(map[string]*roaring.Bitmap),
	}

	for i, f := range features {
		docID := uint32(i)
		x.byID[f.ID] = f

		if f.Status != "" {
			addPosting(x.idxStatus, textcache.Fold(f.Status), docID)
		}
		for _, ci := range f.CloudInstances {
			addPosting(x.idxCloud, textcache.Fold(ci), docID)
		}
	}

	return x
}

func addPosting(m map[string]*roaring.Bitmap, key string, docID uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(docID)
}

// Len returns the number of indexed features.
func (x *Index) Len() int {
	return len(x.docs)
}

// Docs returns the features in snapshot order. Callers must not modify the
// returned slice.
func (x *Index) Docs() []*feature.Feature {
	return x.docs
}

// At returns the feature for a document id.
func (x *Index) At(docID uint32) *feature.Feature {
	return x.docs[docID]
}

// ByID looks a feature up by its upstream id.
func (x *Index) ByID(id string) (*feature.Feature, bool) {
	f, ok := x.byID[id]
	return f, ok
}

// All returns a bitmap of every document id.
func (x *Index) All() *roaring.Bitmap {
	bm := roaring.New()
	bm.AddRange(0, uint64(len(x.docs)))
	return bm
}

// Status returns the postings for a folded status value, or nil.
func (x *Index) Status(folded string) *roaring.Bitmap {
	return x.idxStatus[folded]
}

// Cloud returns the postings for a folded cloud-instance label, or nil.
// Lookup is on the full label; "gcc" and "gcc high" are distinct keys.
func (x *Index) Cloud(folded string) *roaring.Bitmap {
	return x.idxCloud[folded]
}
