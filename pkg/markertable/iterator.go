package markertable

type Iterator struct {
	current int
	entries Entries
}

func (r *Iterator) Entry() Entry {
	return r.entries[r.current]
}

func (r *Iterator) ID() string {
	return r.entries[r.current].ID()
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.entries)
}

// Overlaps returns true when the current entry overlaps the previous one.
func (r *Iterator) Overlaps() bool {
	if r.current < 1 {
		return false
	}
	return r.entries[r.current-1].Range().End >= r.entries[r.current].Range().Start
}
