package oracle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplice(t *testing.T) {
	cases := map[string]struct {
		marker   Marker
		splice   [3]int
		expected [2]int
	}{
		"InsertBefore":              {marker: Marker{Start: 10, End: 20}, splice: [3]int{5, 0, 3}, expected: [2]int{13, 23}},
		"InsertAfter":               {marker: Marker{Start: 10, End: 20}, splice: [3]int{25, 0, 3}, expected: [2]int{10, 20}},
		"InsertAtStart":             {marker: Marker{Start: 10, End: 20}, splice: [3]int{10, 0, 5}, expected: [2]int{10, 25}},
		"InsertAtStartExclusive":    {marker: Marker{Start: 10, End: 20, Exclusive: true}, splice: [3]int{10, 0, 5}, expected: [2]int{15, 25}},
		"InsertAtEnd":               {marker: Marker{Start: 10, End: 20}, splice: [3]int{20, 0, 5}, expected: [2]int{10, 25}},
		"InsertAtEndExclusive":      {marker: Marker{Start: 10, End: 20, Exclusive: true}, splice: [3]int{20, 0, 5}, expected: [2]int{10, 20}},
		"InsertAtEmpty":             {marker: Marker{Start: 10, End: 10}, splice: [3]int{10, 0, 5}, expected: [2]int{10, 15}},
		"InsertAtEmptyExclusive":    {marker: Marker{Start: 10, End: 10, Exclusive: true}, splice: [3]int{10, 0, 5}, expected: [2]int{15, 15}},
		"DeleteInside":              {marker: Marker{Start: 10, End: 20}, splice: [3]int{12, 4, 0}, expected: [2]int{10, 16}},
		"DeleteAll":                 {marker: Marker{Start: 10, End: 20}, splice: [3]int{5, 20, 0}, expected: [2]int{5, 5}},
		"ReplaceAcrossStart":        {marker: Marker{Start: 10, End: 20}, splice: [3]int{5, 10, 2}, expected: [2]int{7, 12}},
		"ReplaceAcrossEnd":          {marker: Marker{Start: 10, End: 20}, splice: [3]int{15, 10, 2}, expected: [2]int{10, 17}},
		"DeleteEndingAtStart":       {marker: Marker{Start: 10, End: 20}, splice: [3]int{5, 5, 0}, expected: [2]int{5, 15}},
		"DeleteStartingAtEnd":       {marker: Marker{Start: 10, End: 20}, splice: [3]int{20, 5, 0}, expected: [2]int{10, 20}},
		"ReplaceEndingAtEnd":        {marker: Marker{Start: 10, End: 20}, splice: [3]int{15, 5, 1}, expected: [2]int{10, 16}},
		"ReplaceEndingAtEndExclude": {marker: Marker{Start: 10, End: 20, Exclusive: true}, splice: [3]int{15, 5, 1}, expected: [2]int{10, 16}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := New()
			m := tc.marker
			assert.NoError(t, r.Insert("m", m.Start, m.End, m.Exclusive))
			r.Splice(tc.splice[0], tc.splice[1], tc.splice[2])
			got, err := r.Get("m")
			assert.NoError(t, err)
			if diff := cmp.Diff(tc.expected, [2]int{got.Start, got.End}); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestModel(t *testing.T) {
	r := New()
	assert.NoError(t, r.Insert("a", 0, 5, false))
	assert.NoError(t, r.Insert("b", 3, 9, true))
	assert.NoError(t, r.Insert("c", 12, 12, false))
	assert.Error(t, r.Insert("a", 1, 1, false))
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, []string{"a", "b"}, r.Intersecting(4, 4))
	assert.Equal(t, []string{"b", "c"}, r.Intersecting(9, 12))
	assert.Equal(t, []string{}, r.Intersecting(20, 30))

	assert.NoError(t, r.SetExclusive("a", true))
	assert.Error(t, r.SetExclusive("z", true))
	a, err := r.Get("a")
	assert.NoError(t, err)
	assert.True(t, a.Exclusive)

	assert.NoError(t, r.Delete("b"))
	assert.Error(t, r.Delete("b"))
	_, err = r.Get("b")
	assert.Error(t, err)

	want := []Marker{
		{ID: "a", Start: 0, End: 5, Exclusive: true},
		{ID: "c", Start: 12, End: 12},
	}
	if diff := cmp.Diff(want, r.Markers()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}
