package markerindex

import (
	"math"

	"github.com/cockroachdb/errors"
)

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// MaxPosition is the largest position a marker boundary may take. It stays
// below the sentinel used for unbounded spans.
const MaxPosition = posInf - 1

// Range is a closed range [Start, End] on the coordinate line.
type Range struct {
	Start int
	End   int
}

type marker[K comparable] struct {
	start     *node[K]
	end       *node[K]
	exclusive bool
}

// Index keeps marker ranges in a treap keyed by boundary position. Nodes
// store positions relative to their left ancestor, so shifting everything
// after a point only touches the nodes around that point.
//
// An Index is not safe for concurrent use.
type Index[K comparable] struct {
	root       *node[K]
	markers    map[K]*marker[K]
	priorities *prioritySource
}

// New returns an empty index. The seed determines the treap priorities and
// therefore the tree shape, never the query results.
func New[K comparable](seed int64) *Index[K] {
	return &Index[K]{
		markers:    map[K]*marker[K]{},
		priorities: newPrioritySource(seed),
	}
}

// Len returns the number of markers in the index.
func (r *Index[K]) Len() int {
	return len(r.markers)
}

// Has returns true when the marker is in the index.
func (r *Index[K]) Has(id K) bool {
	_, ok := r.markers[id]
	return ok
}

// Insert adds a marker covering [start, end].
func (r *Index[K]) Insert(id K, start, end int) error {
	if _, ok := r.markers[id]; ok {
		return errors.Wrapf(ErrDuplicateID, "marker %v", id)
	}
	if start < 0 || start > end || end > MaxPosition {
		return errors.Wrapf(ErrInvalidRange, "marker %v: [%d, %d]", id, start, end)
	}

	m := &marker[K]{
		start: r.insertNode(start),
		end:   r.insertNode(end),
	}
	m.start.startMarkers.Insert(id)
	m.end.endMarkers.Insert(id)
	if start != end {
		r.mark(r.root, id, start, end, 0, negInf, posInf)
	}
	r.markers[id] = m
	return nil
}

// Delete removes the marker and prunes the nodes it leaves without boundaries.
func (r *Index[K]) Delete(id K) error {
	m, ok := r.markers[id]
	if !ok {
		return errors.Wrapf(ErrUnknownID, "marker %v", id)
	}
	r.unmark(id, m)
	m.start.startMarkers.Delete(id)
	m.end.endMarkers.Delete(id)
	delete(r.markers, id)

	if !m.start.isBoundary() {
		r.deleteNode(m.start)
	}
	if m.end != m.start && !m.end.isBoundary() {
		r.deleteNode(m.end)
	}
	return nil
}

// SetExclusive changes how the marker reacts to splices touching its edges.
// An exclusive marker does not grow when text is inserted at its end, and
// its start moves along with text inserted at its start.
func (r *Index[K]) SetExclusive(id K, exclusive bool) error {
	m, ok := r.markers[id]
	if !ok {
		return errors.Wrapf(ErrUnknownID, "marker %v", id)
	}
	m.exclusive = exclusive
	return nil
}

// IsExclusive returns the exclusive flag of the marker.
func (r *Index[K]) IsExclusive(id K) (bool, error) {
	m, ok := r.markers[id]
	if !ok {
		return false, errors.Wrapf(ErrUnknownID, "marker %v", id)
	}
	return m.exclusive, nil
}

// GetRange returns the current range of the marker.
func (r *Index[K]) GetRange(id K) (Range, error) {
	m, ok := r.markers[id]
	if !ok {
		return Range{}, errors.Wrapf(ErrUnknownID, "marker %v", id)
	}
	return Range{Start: r.position(m.start), End: r.position(m.end)}, nil
}
