package markerindex

import (
	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// FindIntersecting adds to result every marker whose range overlaps the
// closed range [start, end]. Touching counts as overlapping, whatever the
// exclusive flag of the marker.
func (r *Index[K]) FindIntersecting(start, end int, result sets.Set[K]) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "query [%d, %d]", start, end)
	}
	if r.root != nil {
		r.findIntersecting(r.root, start, end, 0, negInf, posInf, result)
	}
	return nil
}

// findIntersecting visits the nodes whose enclosing span [lo, hi] touches
// the query. Every marker set hung off a visited node is a segment of its
// markers' ranges, so a set is taken as a whole once its segment overlaps.
func (r *Index[K]) findIntersecting(n *node[K], start, end, base, lo, hi int, result sets.Set[K]) {
	pos := base + n.leftExtent
	if lo <= end && start <= pos {
		insertAll(result, n.leftMarkers)
		if n.left != nil {
			r.findIntersecting(n.left, start, end, base, lo, pos, result)
		}
	}
	if start <= pos && pos <= end {
		insertAll(result, n.startMarkers)
		insertAll(result, n.endMarkers)
	}
	if pos <= end && start <= hi {
		insertAll(result, n.rightMarkers)
		if n.right != nil {
			r.findIntersecting(n.right, start, end, pos, pos, hi, result)
		}
	}
}

// FindContaining adds to result every marker whose range contains [start, end].
func (r *Index[K]) FindContaining(start, end int, result sets.Set[K]) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "query [%d, %d]", start, end)
	}
	atStart, atEnd := sets.New[K](), sets.New[K]()
	if err := r.FindIntersecting(start, start, atStart); err != nil {
		return err
	}
	if err := r.FindIntersecting(end, end, atEnd); err != nil {
		return err
	}
	for id := range atStart {
		if atEnd.Has(id) {
			result.Insert(id)
		}
	}
	return nil
}

// FindContainedIn adds to result every marker whose range lies within [start, end].
func (r *Index[K]) FindContainedIn(start, end int, result sets.Set[K]) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "query [%d, %d]", start, end)
	}
	starting := sets.New[K]()
	r.walk(start, end, func(n *node[K], _ int) {
		insertAll(starting, n.startMarkers)
	})
	r.walk(start, end, func(n *node[K], _ int) {
		for id := range n.endMarkers {
			if starting.Has(id) {
				result.Insert(id)
			}
		}
	})
	return nil
}

// FindStartingIn adds to result every marker starting within [start, end].
func (r *Index[K]) FindStartingIn(start, end int, result sets.Set[K]) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "query [%d, %d]", start, end)
	}
	r.walk(start, end, func(n *node[K], _ int) {
		insertAll(result, n.startMarkers)
	})
	return nil
}

// FindEndingIn adds to result every marker ending within [start, end].
func (r *Index[K]) FindEndingIn(start, end int, result sets.Set[K]) error {
	if start > end {
		return errors.Wrapf(ErrInvalidRange, "query [%d, %d]", start, end)
	}
	r.walk(start, end, func(n *node[K], _ int) {
		insertAll(result, n.endMarkers)
	})
	return nil
}

// Dump returns the range of every marker in the index.
func (r *Index[K]) Dump() map[K]Range {
	ranges := make(map[K]Range, len(r.markers))
	r.walk(negInf, posInf, func(n *node[K], pos int) {
		for id := range n.startMarkers {
			rng := ranges[id]
			rng.Start = pos
			ranges[id] = rng
		}
		for id := range n.endMarkers {
			rng := ranges[id]
			rng.End = pos
			ranges[id] = rng
		}
	})
	return ranges
}

// walk calls fn in position order for every node positioned within [start, end].
func (r *Index[K]) walk(start, end int, fn func(n *node[K], pos int)) {
	var visit func(n *node[K], base int)
	visit = func(n *node[K], base int) {
		if n == nil {
			return
		}
		pos := base + n.leftExtent
		if start < pos {
			visit(n.left, base)
		}
		if start <= pos && pos <= end {
			fn(n, pos)
		}
		if pos < end {
			visit(n.right, pos)
		}
	}
	visit(r.root, 0)
}
