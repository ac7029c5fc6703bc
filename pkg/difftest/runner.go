// Package difftest drives a marker index and the plain-list oracle with the
// same random operations and reports the first point where they disagree.
package difftest

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/henderiw/markeridx/pkg/markerindex"
	"github.com/henderiw/markeridx/pkg/oracle"
)

type OpKind string

const (
	OpInsert OpKind = "insert"
	OpSplice OpKind = "splice"
	OpDelete OpKind = "delete"
)

// Op is one recorded operation of a run.
type Op struct {
	Kind      OpKind
	ID        string
	Start     int
	End       int
	OldExtent int
	NewExtent int
	Exclusive bool
}

// MismatchError reports a run in which the index diverged from the oracle.
type MismatchError struct {
	Seed   int64
	Ops    []Op
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("seed %d: after %d ops: %s", e.Seed, len(e.Ops), e.Reason)
}

type Runner struct {
	ops     int
	queries int
	log     logr.Logger
}

type Option func(*Runner)

// WithOps sets the number of operations per run.
func WithOps(n int) Option {
	return func(r *Runner) { r.ops = n }
}

// WithQueries sets the number of intersection queries checked at the end of a run.
func WithQueries(n int) Option {
	return func(r *Runner) { r.queries = n }
}

func WithLogger(log logr.Logger) Option {
	return func(r *Runner) { r.log = log }
}

func New(opts ...Option) *Runner {
	r := &Runner{
		ops:     50,
		queries: 10,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type run struct {
	seed   int64
	rnd    *rand.Rand
	index  *markerindex.Index[string]
	model  *oracle.Model
	ops    []Op
	nextID int
}

// Run performs one randomized sequence: 60% inserts, 20% splices and 20%
// deletes. The tree is validated and every range compared after each
// operation; intersection queries are compared at the end.
func (r *Runner) Run(seed int64) error {
	x := &run{
		seed:  seed,
		rnd:   newRand(seed),
		index: markerindex.New[string](seed),
		model: oracle.New(),
	}
	log := r.log.WithValues("seed", seed)

	for i := 0; i < r.ops; i++ {
		var err error
		switch n := x.rnd.IntN(10); {
		case n >= 4:
			err = x.insert()
		case n >= 2:
			err = x.splice()
		case x.model.Len() > 0:
			err = x.delete()
		default:
			continue
		}
		if err != nil {
			return x.mismatch("%v", err)
		}
		log.V(4).Info("applied", "op", x.ops[len(x.ops)-1])
		if err := x.index.Validate(); err != nil {
			return x.mismatch("invalid tree: %v", err)
		}
		if err := x.verifyRanges(); err != nil {
			return err
		}
	}

	for i := 0; i < r.queries; i++ {
		if err := x.verifyIntersection(x.randomRange()); err != nil {
			return err
		}
	}
	log.V(2).Info("run passed", "ops", len(x.ops), "markers", x.model.Len())
	return nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func (x *run) insert() error {
	x.nextID++
	id := fmt.Sprintf("m%d", x.nextID)
	rng := x.randomRange()
	exclusive := x.rnd.IntN(2) == 1
	x.ops = append(x.ops, Op{Kind: OpInsert, ID: id, Start: rng.Start, End: rng.End, Exclusive: exclusive})

	if err := x.index.Insert(id, rng.Start, rng.End); err != nil {
		return err
	}
	if exclusive {
		if err := x.index.SetExclusive(id, true); err != nil {
			return err
		}
	}
	return x.model.Insert(id, rng.Start, rng.End, exclusive)
}

func (x *run) splice() error {
	rng := x.randomRange()
	newExtent := 0
	for x.rnd.IntN(2) == 1 {
		newExtent += x.rnd.IntN(10)
	}
	oldExtent := rng.End - rng.Start
	x.ops = append(x.ops, Op{Kind: OpSplice, Start: rng.Start, OldExtent: oldExtent, NewExtent: newExtent})

	if err := x.index.Splice(rng.Start, oldExtent, newExtent); err != nil {
		return err
	}
	x.model.Splice(rng.Start, oldExtent, newExtent)
	return nil
}

func (x *run) delete() error {
	markers := x.model.Markers()
	id := markers[x.rnd.IntN(len(markers))].ID
	x.ops = append(x.ops, Op{Kind: OpDelete, ID: id})

	if err := x.index.Delete(id); err != nil {
		return err
	}
	return x.model.Delete(id)
}

// randomRange picks a start in [0, 100) and walks the end away from it in
// steps of at most 10.
func (x *run) randomRange() markerindex.Range {
	start := x.rnd.IntN(100)
	end := start
	for x.rnd.IntN(3) > 0 {
		end += x.rnd.IntN(21) - 10
	}
	end = max(end, 0)
	if start <= end {
		return markerindex.Range{Start: start, End: end}
	}
	return markerindex.Range{Start: end, End: start}
}

func (x *run) verifyRanges() error {
	for _, m := range x.model.Markers() {
		got, err := x.index.GetRange(m.ID)
		if err != nil {
			return x.mismatch("marker %s: %v", m.ID, err)
		}
		want := markerindex.Range{Start: m.Start, End: m.End}
		if got != want {
			return x.mismatch("marker %s: -want +got:\n%s", m.ID, cmp.Diff(want, got))
		}
	}
	if x.index.Len() != x.model.Len() {
		return x.mismatch("index holds %d markers, oracle %d", x.index.Len(), x.model.Len())
	}
	return nil
}

func (x *run) verifyIntersection(q markerindex.Range) error {
	found := sets.New[string]()
	if err := x.index.FindIntersecting(q.Start, q.End, found); err != nil {
		return x.mismatch("query [%d, %d]: %v", q.Start, q.End, err)
	}
	got := found.UnsortedList()
	sort.Strings(got)
	want := x.model.Intersecting(q.Start, q.End)
	if diff := cmp.Diff(want, got); diff != "" {
		return x.mismatch("query [%d, %d]: -want +got:\n%s", q.Start, q.End, diff)
	}
	return nil
}

func (x *run) mismatch(format string, args ...any) error {
	return errors.WithStack(&MismatchError{
		Seed:   x.seed,
		Ops:    append([]Op(nil), x.ops...),
		Reason: fmt.Sprintf(format, args...),
	})
}
