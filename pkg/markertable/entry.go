package markertable

import (
	"fmt"
	"sort"

	"github.com/henderiw/markeridx/pkg/markerindex"
	"k8s.io/apimachinery/pkg/labels"
)

type Entry interface {
	ID() string
	Range() markerindex.Range
	Exclusive() bool
	Labels() labels.Set
	String() string
}

type entry struct {
	id        string
	rng       markerindex.Range
	exclusive bool
	labels    labels.Set
}

type Entries []Entry

func (r entry) ID() string               { return r.id }
func (r entry) Range() markerindex.Range { return r.rng }
func (r entry) Exclusive() bool          { return r.exclusive }
func (r entry) Labels() labels.Set       { return r.labels }
func (r entry) String() string {
	return fmt.Sprintf("id: %s, range: [%d, %d], exclusive: %t, labels: %s",
		r.id, r.rng.Start, r.rng.End, r.exclusive, r.labels.String())
}

func NewEntry(id string, rng markerindex.Range, exclusive bool, labels labels.Set) Entry {
	return entry{
		id:        id,
		rng:       rng,
		exclusive: exclusive,
		labels:    labels,
	}
}

// IDs returns the ids of the entries in order
func (r Entries) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, e := range r {
		ids = append(ids, e.ID())
	}
	return ids
}

// sort orders entries by start, end and id
func (r Entries) sort() {
	sort.Slice(r, func(i, j int) bool {
		a, b := r[i].Range(), r[j].Range()
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return r[i].ID() < r[j].ID()
	})
}
