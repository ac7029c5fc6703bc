// Package oracle is a plain list of markers that applies splices to every
// marker one by one. It is slow on purpose and serves as the reference the
// marker index is checked against.
package oracle

import (
	"fmt"
	"sort"
)

type Marker struct {
	ID        string
	Start     int
	End       int
	Exclusive bool
}

type Model struct {
	markers []*Marker
}

func New() *Model {
	return &Model{}
}

func (r *Model) Insert(id string, start, end int, exclusive bool) error {
	if r.find(id) >= 0 {
		return fmt.Errorf("marker %s already exists", id)
	}
	r.markers = append(r.markers, &Marker{ID: id, Start: start, End: end, Exclusive: exclusive})
	return nil
}

func (r *Model) Delete(id string) error {
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("marker %s not found", id)
	}
	r.markers = append(r.markers[:i], r.markers[i+1:]...)
	return nil
}

func (r *Model) SetExclusive(id string, exclusive bool) error {
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("marker %s not found", id)
	}
	r.markers[i].Exclusive = exclusive
	return nil
}

func (r *Model) Get(id string) (Marker, error) {
	i := r.find(id)
	if i < 0 {
		return Marker{}, fmt.Errorf("marker %s not found", id)
	}
	return *r.markers[i], nil
}

// Splice moves both boundaries of every marker. A boundary moves when the
// splice starts before it, or when the splice ends exactly on it and the
// boundary absorbs edits at its edge: the start of an exclusive marker, the
// end of a non-exclusive or empty one.
func (r *Model) Splice(start, oldExtent, newExtent int) {
	oldEnd := start + oldExtent
	newEnd := start + newExtent
	delta := newExtent - oldExtent

	for _, m := range r.markers {
		empty := m.Start == m.End

		if start < m.Start || m.Exclusive && oldEnd == m.Start {
			if oldEnd <= m.Start {
				m.Start += delta
			} else {
				m.Start = newEnd
			}
		}

		if start < m.End || (!m.Exclusive || empty) && oldEnd == m.End {
			if oldEnd <= m.End {
				m.End += delta
			} else {
				m.End = newEnd
			}
		}
	}
}

// Intersecting returns the sorted ids of the markers overlapping [start, end].
func (r *Model) Intersecting(start, end int) []string {
	ids := []string{}
	for _, m := range r.markers {
		if m.Start <= end && start <= m.End {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Markers returns a copy of every marker in insertion order.
func (r *Model) Markers() []Marker {
	markers := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		markers = append(markers, *m)
	}
	return markers
}

func (r *Model) Len() int {
	return len(r.markers)
}

func (r *Model) find(id string) int {
	for i, m := range r.markers {
		if m.ID == id {
			return i
		}
	}
	return -1
}
