package markertable

import (
	"sync"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/henderiw/markeridx/pkg/markerindex"
)

type Table interface {
	Get(id string) (Entry, error)
	Has(id string) bool
	Insert(id string, rng markerindex.Range, labels labels.Set) error
	SetExclusive(id string, exclusive bool) error
	Release(id string) error
	ReleaseByLabel(selector labels.Selector) error
	Splice(start, oldExtent, newExtent int) error
	FindIntersecting(start, end int) (Entries, error)
	FindContaining(start, end int) (Entries, error)
	GetByLabel(selector labels.Selector) Entries
	GetAll() Entries
	Iterate() *Iterator
	Count() int
}

type Option func(*table)

// WithLogger sets the logger used for operation tracing at V(4).
func WithLogger(log logr.Logger) Option {
	return func(r *table) {
		r.log = log
	}
}

// WithSeed sets the seed of the underlying index.
func WithSeed(seed int64) Option {
	return func(r *table) {
		r.seed = seed
	}
}

// New returns a table of markers identified by name. The name labels the
// table's metrics.
func New(name string, opts ...Option) Table {
	r := &table{
		m:      new(sync.RWMutex),
		name:   name,
		labels: map[string]labels.Set{},
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.index = markerindex.New[string](r.seed)
	r.metrics = newTableMetrics(name)
	r.log = r.log.WithValues("table", name)
	return r
}

type table struct {
	m       *sync.RWMutex
	name    string
	seed    int64
	index   *markerindex.Index[string]
	labels  map[string]labels.Set
	log     logr.Logger
	metrics *tableMetrics
}

func (r *table) Get(id string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if _, err := r.index.GetRange(id); err != nil {
		return nil, err
	}
	return r.entry(id), nil
}

func (r *table) Has(id string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.index.Has(id)
}

func (r *table) Insert(id string, rng markerindex.Range, labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	r.log.V(4).Info("insert", "id", id, "range", FormatRange(rng))
	if err := r.index.Insert(id, rng.Start, rng.End); err != nil {
		return r.metrics.observe(r.metrics.inserts, err)
	}
	r.labels[id] = copyLabels(labels)
	return r.metrics.observe(r.metrics.inserts, nil)
}

func (r *table) SetExclusive(id string, exclusive bool) error {
	r.m.Lock()
	defer r.m.Unlock()

	r.log.V(4).Info("set exclusive", "id", id, "exclusive", exclusive)
	return r.metrics.observe(r.metrics.exclusive, r.index.SetExclusive(id, exclusive))
}

func (r *table) Release(id string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.release(id)
}

func (r *table) release(id string) error {
	r.log.V(4).Info("release", "id", id)
	if err := r.index.Delete(id); err != nil {
		return r.metrics.observe(r.metrics.releases, err)
	}
	delete(r.labels, id)
	return r.metrics.observe(r.metrics.releases, nil)
}

func (r *table) ReleaseByLabel(selector labels.Selector) error {
	r.m.Lock()
	defer r.m.Unlock()

	for _, e := range r.getByLabel(selector) {
		if err := r.release(e.ID()); err != nil {
			return err
		}
	}
	return nil
}

func (r *table) Splice(start, oldExtent, newExtent int) error {
	r.m.Lock()
	defer r.m.Unlock()

	r.log.V(4).Info("splice", "start", start, "oldExtent", oldExtent, "newExtent", newExtent)
	return r.metrics.observe(r.metrics.splices, r.index.Splice(start, oldExtent, newExtent))
}

func (r *table) FindIntersecting(start, end int) (Entries, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	ids := sets.New[string]()
	if err := r.metrics.observe(r.metrics.queries, r.index.FindIntersecting(start, end, ids)); err != nil {
		return nil, err
	}
	return r.entries(ids), nil
}

func (r *table) FindContaining(start, end int) (Entries, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	ids := sets.New[string]()
	if err := r.metrics.observe(r.metrics.queries, r.index.FindContaining(start, end, ids)); err != nil {
		return nil, err
	}
	return r.entries(ids), nil
}

func (r *table) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.getByLabel(selector)
}

func (r *table) getByLabel(selector labels.Selector) Entries {
	ids := sets.New[string]()
	for id, l := range r.labels {
		if selector.Matches(l) {
			ids.Insert(id)
		}
	}
	return r.entries(ids)
}

func (r *table) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries(sets.KeySet(r.labels))
}

func (r *table) Iterate() *Iterator {
	return &Iterator{
		current: -1,
		entries: r.GetAll(),
	}
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.index.Len()
}

func (r *table) entry(id string) Entry {
	rng, _ := r.index.GetRange(id)
	exclusive, _ := r.index.IsExclusive(id)
	return NewEntry(id, rng, exclusive, r.labels[id])
}

func (r *table) entries(ids sets.Set[string]) Entries {
	entries := make(Entries, 0, ids.Len())
	for id := range ids {
		entries = append(entries, r.entry(id))
	}
	entries.sort()
	return entries
}

func copyLabels(l labels.Set) labels.Set {
	if l == nil {
		return labels.Set{}
	}
	return labels.Merge(nil, l)
}
