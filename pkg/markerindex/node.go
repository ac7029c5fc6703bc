package markerindex

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// node is a boundary position in the treap. Its absolute position is the
// sum of the leftExtents of the node and of every ancestor it sits right of.
type node[K comparable] struct {
	parent *node[K]
	left   *node[K]
	right  *node[K]

	// distance from the nearest ancestor this node is right of (0 when none)
	leftExtent int
	priority   uint64

	// markers covering [left ancestor, node] resp. [node, right ancestor]
	// that do not cover the whole span enclosing the node
	leftMarkers  sets.Set[K]
	rightMarkers sets.Set[K]

	startMarkers sets.Set[K]
	endMarkers   sets.Set[K]
}

func newNode[K comparable](parent *node[K], leftExtent int, priority uint64) *node[K] {
	return &node[K]{
		parent:       parent,
		leftExtent:   leftExtent,
		priority:     priority,
		leftMarkers:  sets.New[K](),
		rightMarkers: sets.New[K](),
		startMarkers: sets.New[K](),
		endMarkers:   sets.New[K](),
	}
}

// isBoundary returns true when a marker starts or ends at the node
func (n *node[K]) isBoundary() bool {
	return n.startMarkers.Len()+n.endMarkers.Len() > 0
}

func insertAll[K comparable](dst, src sets.Set[K]) {
	for id := range src {
		dst.Insert(id)
	}
}

// position walks up to the root and returns the absolute position of n.
func (r *Index[K]) position(n *node[K]) int {
	pos := n.leftExtent
	for c := n; c.parent != nil; c = c.parent {
		if c == c.parent.right {
			pos += c.parent.leftExtent
		}
	}
	return pos
}

// insertNode returns the node at pos, creating and balancing a new one when
// no marker boundary sits there yet. A new leaf never carries marker sets:
// no boundary exists between its neighbours, so every marker overlapping its
// span covers the whole span and is already recorded higher up.
func (r *Index[K]) insertNode(pos int) *node[K] {
	if r.root == nil {
		r.root = newNode[K](nil, pos, r.priorities.next())
		return r.root
	}
	n, base := r.root, 0
	for {
		p := base + n.leftExtent
		switch {
		case pos == p:
			return n
		case pos < p:
			if n.left == nil {
				n.left = newNode(n, pos-base, r.priorities.next())
				leaf := n.left
				r.bubbleUp(leaf)
				return leaf
			}
			n = n.left
		default:
			if n.right == nil {
				n.right = newNode(n, pos-p, r.priorities.next())
				leaf := n.right
				r.bubbleUp(leaf)
				return leaf
			}
			base = p
			n = n.right
		}
	}
}

// deleteNode rotates n down to a leaf and unlinks it. n must not be a
// boundary of any marker, in which case its marker sets are empty once it
// is a leaf.
func (r *Index[K]) deleteNode(n *node[K]) {
	for n.left != nil || n.right != nil {
		switch {
		case n.left == nil:
			r.rotateLeft(n.right)
		case n.right == nil:
			r.rotateRight(n.left)
		case n.left.priority > n.right.priority:
			r.rotateRight(n.left)
		default:
			r.rotateLeft(n.right)
		}
	}
	r.replaceChild(n.parent, n, nil)
	n.parent = nil
}

func (r *Index[K]) bubbleUp(n *node[K]) {
	for n.parent != nil && n.priority > n.parent.priority {
		if n == n.parent.left {
			r.rotateRight(n)
		} else {
			r.rotateLeft(n)
		}
	}
}

func (r *Index[K]) bubbleDown(n *node[K]) {
	for {
		child := n.left
		if child == nil || (n.right != nil && n.right.priority > child.priority) {
			child = n.right
		}
		if child == nil || child.priority <= n.priority {
			return
		}
		if child == n.left {
			r.rotateRight(child)
		} else {
			r.rotateLeft(child)
		}
	}
}

func (r *Index[K]) replaceChild(parent, old, n *node[K]) {
	switch {
	case parent == nil:
		r.root = n
	case parent.left == old:
		parent.left = n
	default:
		parent.right = n
	}
	if n != nil {
		n.parent = parent
	}
}

// rotateLeft lifts pivot above its parent. Only the marker sets of the two
// rotated nodes change; every subtree keeps its enclosing span.
func (r *Index[K]) rotateLeft(pivot *node[K]) {
	root := pivot.parent
	r.replaceChild(root.parent, root, pivot)

	root.right = pivot.left
	if root.right != nil {
		root.right.parent = root
	}
	pivot.left = root
	root.parent = pivot

	pivot.leftExtent += root.leftExtent

	insertAll(pivot.rightMarkers, root.rightMarkers)
	for id := range pivot.leftMarkers {
		if root.leftMarkers.Has(id) {
			root.leftMarkers.Delete(id)
		} else {
			pivot.leftMarkers.Delete(id)
			root.rightMarkers.Insert(id)
		}
	}
}

// rotateRight is the mirror of rotateLeft.
func (r *Index[K]) rotateRight(pivot *node[K]) {
	root := pivot.parent
	r.replaceChild(root.parent, root, pivot)

	root.left = pivot.right
	if root.left != nil {
		root.left.parent = root
	}
	pivot.right = root
	root.parent = pivot

	root.leftExtent -= pivot.leftExtent

	insertAll(pivot.leftMarkers, root.leftMarkers)
	for id := range pivot.rightMarkers {
		if root.rightMarkers.Has(id) {
			root.rightMarkers.Delete(id)
		} else {
			pivot.rightMarkers.Delete(id)
			root.leftMarkers.Insert(id)
		}
	}
}

// mark records id in the marker sets of the nodes whose segments tile
// [start, end]. Only nodes whose span is partially covered are visited.
func (r *Index[K]) mark(n *node[K], id K, start, end, base, lo, hi int) {
	pos := base + n.leftExtent
	if lo != negInf && start <= lo && pos <= end {
		n.leftMarkers.Insert(id)
	} else if n.left != nil && start < pos && lo < end {
		r.mark(n.left, id, start, end, base, lo, pos)
	}
	if hi != posInf && start <= pos && hi <= end {
		n.rightMarkers.Insert(id)
	} else if n.right != nil && pos < end && start < hi {
		r.mark(n.right, id, start, end, pos, pos, hi)
	}
}

// unmark removes id from every marker set on the paths from its boundary
// nodes to the root, which is where all of its segments live.
func (r *Index[K]) unmark(id K, m *marker[K]) {
	for n := m.start; n != nil; n = n.parent {
		n.leftMarkers.Delete(id)
		n.rightMarkers.Delete(id)
	}
	for n := m.end; n != nil; n = n.parent {
		n.leftMarkers.Delete(id)
		n.rightMarkers.Delete(id)
	}
}
