package markerindex

import (
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

var queryRanges = map[string]Range{
	"a": {Start: 0, End: 5},
	"b": {Start: 3, End: 9},
	"c": {Start: 5, End: 5},
	"d": {Start: 10, End: 20},
	"e": {Start: 12, End: 14},
	"f": {Start: 2, End: 30},
}

func newQueryIndex(t *testing.T) *Index[string] {
	r := New[string](2024)
	for id, rng := range queryRanges {
		assert.NoError(t, r.Insert(id, rng.Start, rng.End))
	}
	return r
}

func sorted(s sets.Set[string]) []string {
	ids := s.UnsortedList()
	sort.Strings(ids)
	return ids
}

func TestFindIntersecting(t *testing.T) {
	cases := map[string]struct {
		query    Range
		expected []string
	}{
		"Point":         {query: Range{5, 5}, expected: []string{"a", "b", "c", "f"}},
		"TouchEnd":      {query: Range{9, 10}, expected: []string{"b", "d", "f"}},
		"Inside":        {query: Range{13, 13}, expected: []string{"d", "e", "f"}},
		"BeforeAll":     {query: Range{-5, -1}, expected: []string{}},
		"AfterAll":      {query: Range{31, 40}, expected: []string{}},
		"LastPosition":  {query: Range{30, 30}, expected: []string{"f"}},
		"Everything":    {query: Range{0, 100}, expected: []string{"a", "b", "c", "d", "e", "f"}},
		"GapBetweenTwo": {query: Range{21, 29}, expected: []string{"f"}},
	}
	r := newQueryIndex(t)
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			found := sets.New[string]()
			assert.NoError(t, r.FindIntersecting(tc.query.Start, tc.query.End, found))
			assert.Equal(t, tc.expected, sorted(found))
		})
	}

	err := r.FindIntersecting(4, 3, sets.New[string]())
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestFindContaining(t *testing.T) {
	r := newQueryIndex(t)

	found := sets.New[string]()
	assert.NoError(t, r.FindContaining(4, 5, found))
	assert.Equal(t, []string{"a", "b", "f"}, sorted(found))

	found = sets.New[string]()
	assert.NoError(t, r.FindContaining(12, 14, found))
	assert.Equal(t, []string{"d", "e", "f"}, sorted(found))

	assert.True(t, errors.Is(r.FindContaining(2, 1, found), ErrInvalidRange))
}

func TestFindContainedIn(t *testing.T) {
	r := newQueryIndex(t)

	found := sets.New[string]()
	assert.NoError(t, r.FindContainedIn(0, 9, found))
	assert.Equal(t, []string{"a", "b", "c"}, sorted(found))

	found = sets.New[string]()
	assert.NoError(t, r.FindContainedIn(11, 20, found))
	assert.Equal(t, []string{"e"}, sorted(found))
}

func TestFindStartingAndEndingIn(t *testing.T) {
	r := newQueryIndex(t)

	found := sets.New[string]()
	assert.NoError(t, r.FindStartingIn(2, 5, found))
	assert.Equal(t, []string{"b", "c", "f"}, sorted(found))

	found = sets.New[string]()
	assert.NoError(t, r.FindEndingIn(5, 14, found))
	assert.Equal(t, []string{"a", "b", "c", "e"}, sorted(found))

	assert.True(t, errors.Is(r.FindStartingIn(3, 2, found), ErrInvalidRange))
	assert.True(t, errors.Is(r.FindEndingIn(3, 2, found), ErrInvalidRange))
}

func TestFindIntersectingAfterSplice(t *testing.T) {
	r := newQueryIndex(t)
	// collapse [4, 12) to nothing: b, c and the start of d and e meet at 4
	assert.NoError(t, r.Splice(4, 8, 0))
	assert.NoError(t, r.Validate())

	found := sets.New[string]()
	assert.NoError(t, r.FindIntersecting(4, 4, found))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, sorted(found))

	found = sets.New[string]()
	assert.NoError(t, r.FindIntersecting(9, 20, found))
	assert.Equal(t, []string{"d", "f"}, sorted(found))
}

func TestDump(t *testing.T) {
	r := newQueryIndex(t)
	assert.Equal(t, queryRanges, r.Dump())
	assert.Equal(t, map[string]Range{}, New[string](0).Dump())
}
