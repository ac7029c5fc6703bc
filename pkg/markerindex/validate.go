package markerindex

import (
	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Validate checks the structure of the tree: parent links, heap order of the
// priorities, boundary bookkeeping and that no marker is recorded twice on the
// sides traversed by any root-to-leaf path.
func (r *Index[K]) Validate() error {
	if r.root == nil {
		if len(r.markers) != 0 {
			return errors.Newf("empty tree holds %d markers", len(r.markers))
		}
		return nil
	}
	if r.root.parent != nil {
		return errors.New("root has a parent")
	}
	for id, m := range r.markers {
		if !m.start.startMarkers.Has(id) {
			return errors.Newf("marker %v missing from its start node", id)
		}
		if !m.end.endMarkers.Has(id) {
			return errors.Newf("marker %v missing from its end node", id)
		}
	}
	return r.validate(r.root, sets.New[K]())
}

func (r *Index[K]) validate(n *node[K], seen sets.Set[K]) error {
	if !n.isBoundary() {
		return errors.Newf("node at %d has no marker boundaries", r.position(n))
	}
	for id := range n.leftMarkers {
		if seen.Has(id) {
			return errors.Newf("marker %v recorded twice on the path to %d", id, r.position(n))
		}
	}
	for id := range n.rightMarkers {
		if seen.Has(id) {
			return errors.Newf("marker %v recorded twice on the path to %d", id, r.position(n))
		}
	}
	for _, child := range []*node[K]{n.left, n.right} {
		if child == nil {
			continue
		}
		if child.parent != n {
			return errors.Newf("broken parent link below %d", r.position(n))
		}
		if child.priority > n.priority {
			return errors.Newf("heap order violated below %d", r.position(n))
		}
		if child == n.left && r.position(child) >= r.position(n) ||
			child == n.right && r.position(child) <= r.position(n) {
			return errors.Newf("search order violated below %d", r.position(n))
		}
		childSeen := seen.Clone()
		if child == n.left {
			insertAll(childSeen, n.leftMarkers)
		} else {
			insertAll(childSeen, n.rightMarkers)
		}
		if err := r.validate(child, childSeen); err != nil {
			return err
		}
	}
	return nil
}
