// Package types holds the small value types shared between the distance
// and vamana packages, kept separate so neither package needs to import
// the other just to exchange a search result.
package types

// Candidate is a single scored node produced during graph traversal: an
// internal node id paired with its distance to the active query under the
// index's configured metric. Smaller distance always means closer,
// regardless of metric.
type Candidate struct {
	Id       uint32
	Distance float64
}

// Filter is the polymorphic predicate applied to search results. It is
// modeled as a single-method capability rather than a closure type so
// callers can implement it on a stateful object (e.g. an allow-list backed
// by a roaring bitmap) without an allocation per query.
type Filter interface {
	Accept(id uint32) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(id uint32) bool

// Accept implements Filter.
func (f FilterFunc) Accept(id uint32) bool { return f(id) }
