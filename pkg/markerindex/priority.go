package markerindex

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	// reserved for the two boundary nodes lifted to the top during a splice
	splicePriority    = math.MaxUint64
	spliceEndPriority = math.MaxUint64 - 1
)

// prioritySource hands out treap priorities derived from the seed and a
// running counter, so equal seeds and equal operation sequences build equal
// tree shapes.
type prioritySource struct {
	seed    uint64
	counter uint64
	buf     [16]byte
}

func newPrioritySource(seed int64) *prioritySource {
	return &prioritySource{seed: uint64(seed)}
}

func (r *prioritySource) next() uint64 {
	binary.LittleEndian.PutUint64(r.buf[:8], r.seed)
	binary.LittleEndian.PutUint64(r.buf[8:], r.counter)
	r.counter++
	// keep clear of the reserved splice priorities
	return xxhash.Sum64(r.buf[:]) >> 1
}
