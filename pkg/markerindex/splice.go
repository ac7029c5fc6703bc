package markerindex

import (
	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Splice replaces the span [start, start+oldExtent) with a span of length
// newExtent and moves every marker boundary accordingly:
//   - boundaries before start stay put
//   - boundaries inside (start, start+oldExtent] move to start+newExtent
//   - boundaries after start+oldExtent shift by newExtent-oldExtent
//   - boundaries at start stay put, except for pure insertions, which push
//     the start of exclusive markers and the end of non-exclusive or empty
//     markers to start+newExtent
func (r *Index[K]) Splice(start, oldExtent, newExtent int) error {
	if start < 0 || oldExtent < 0 || newExtent < 0 || start > MaxPosition ||
		oldExtent > MaxPosition-start || newExtent > MaxPosition-start {
		return errors.Wrapf(ErrInvalidRange, "splice at %d: old extent %d, new extent %d", start, oldExtent, newExtent)
	}
	if r.root == nil || (oldExtent == 0 && newExtent == 0) {
		return nil
	}
	if grow := newExtent - oldExtent; grow > 0 {
		if last := r.lastPosition(); last > start+oldExtent && last > MaxPosition-grow {
			return errors.Wrapf(ErrInvalidRange, "splice at %d moves position %d past %d", start, last, MaxPosition)
		}
	}
	if oldExtent == 0 {
		r.spliceInsertion(start, newExtent)
	} else {
		r.spliceReplacement(start, oldExtent, newExtent)
	}
	return nil
}

// lastPosition returns the position of the rightmost node.
func (r *Index[K]) lastPosition() int {
	n := r.root
	pos := n.leftExtent
	for n.right != nil {
		n = n.right
		pos += n.leftExtent
	}
	return pos
}

// spliceReplacement handles splices removing a non-empty span. The nodes at
// start and at the old end are lifted to the top, which leaves every node
// strictly inside the span in the old end node's left subtree. That subtree
// is folded into the old end node, whose extent then becomes newExtent.
func (r *Index[K]) spliceReplacement(start, oldExtent, newExtent int) {
	startNode := r.insertNode(start)
	endNode := r.insertNode(start + oldExtent)

	endNode.priority = spliceEndPriority
	r.bubbleUp(endNode)
	startNode.priority = splicePriority
	r.bubbleUp(startNode)

	starting, ending := sets.New[K](), sets.New[K]()
	collectBoundaries(endNode.left, starting, ending)

	for id := range ending {
		// markers starting at or before start now cover [start, start+newExtent]
		if !starting.Has(id) {
			endNode.leftMarkers.Insert(id)
		}
		endNode.endMarkers.Insert(id)
		r.markers[id].end = endNode
	}
	for id := range starting {
		endNode.startMarkers.Insert(id)
		r.markers[id].start = endNode
	}
	if endNode.left != nil {
		endNode.left.parent = nil
		endNode.left = nil
	}
	endNode.leftExtent = newExtent

	if newExtent == 0 {
		// both nodes now sit at start
		for id := range endNode.startMarkers {
			startNode.startMarkers.Insert(id)
			r.markers[id].start = startNode
		}
		for id := range endNode.endMarkers {
			startNode.endMarkers.Insert(id)
			r.markers[id].end = startNode
		}
		r.replaceChild(startNode, endNode, endNode.right)
		endNode.parent, endNode.right = nil, nil
		r.settle(startNode)
		return
	}
	r.settle(startNode, endNode)
}

// spliceInsertion handles splices that remove nothing. A new node for
// start+newExtent is placed directly right of the node at start, taking the
// whole old right subtree along, which shifts it by newExtent.
func (r *Index[K]) spliceInsertion(start, newExtent int) {
	startNode := r.insertNode(start)
	startNode.priority = splicePriority
	r.bubbleUp(startNode)

	endNode := newNode(startNode, newExtent, spliceEndPriority)
	// markers crossing start are exactly those recorded on the left edge of
	// the right subtree; they now also cover the inserted span
	for n := startNode.right; n != nil; n = n.left {
		insertAll(endNode.leftMarkers, n.leftMarkers)
	}
	endNode.right = startNode.right
	if endNode.right != nil {
		endNode.right.parent = endNode
	}
	startNode.right = endNode

	for id := range startNode.endMarkers {
		m := r.markers[id]
		empty := m.start == startNode
		if m.exclusive && !empty {
			continue
		}
		startNode.endMarkers.Delete(id)
		endNode.endMarkers.Insert(id)
		m.end = endNode
		if !empty {
			endNode.leftMarkers.Insert(id)
		}
	}
	for id := range startNode.startMarkers {
		m := r.markers[id]
		if !m.exclusive {
			endNode.leftMarkers.Insert(id)
			continue
		}
		startNode.startMarkers.Delete(id)
		endNode.startMarkers.Insert(id)
		endNode.leftMarkers.Delete(id)
		m.start = endNode
	}
	r.settle(startNode, endNode)
}

// settle gives the splice boundary nodes fresh priorities, rotates them back
// into heap order and prunes the ones no marker is attached to.
func (r *Index[K]) settle(nodes ...*node[K]) {
	for _, n := range nodes {
		n.priority = r.priorities.next()
		r.bubbleDown(n)
	}
	for _, n := range nodes {
		if !n.isBoundary() {
			r.deleteNode(n)
		}
	}
}

func collectBoundaries[K comparable](n *node[K], starting, ending sets.Set[K]) {
	if n == nil {
		return
	}
	insertAll(starting, n.startMarkers)
	insertAll(ending, n.endMarkers)
	collectBoundaries(n.left, starting, ending)
	collectBoundaries(n.right, starting, ending)
}
