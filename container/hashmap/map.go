// Package hashmap implements an open-addressed hash map generic over an
// allocator.
//
// The bucket array is a single allocator block (or collector-visible
// storage for pointer-bearing keys or values). Collisions are resolved
// by linear probing over a power-of-two bucket count; deletions leave a
// tombstone so probe sequences for keys that hashed past the slot keep
// working. Iteration order is unspecified and must not be relied on.
//
// Two documented thresholds drive rehashing, both checked on insert:
//
//   - Occupancy (live + tombstones) above MaxLoadNum/MaxLoadDen of
//     capacity rehashes, doubling when the live load alone is above
//     half, clearing tombstones at the same size otherwise.
//   - Tombstones alone above a quarter of capacity rehash at the same
//     size to reclaim probe density.
//
// A failed rehash (mem.ErrOutOfMemory) leaves the map untouched.
//
// Maps are not safe for concurrent use.
package hashmap

import (
	"fmt"
	"hash/maphash"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

// Load-factor threshold: rehash when occupied slots (live + tombstone)
// exceed MaxLoadNum/MaxLoadDen of capacity.
const (
	MaxLoadNum = 3
	MaxLoadDen = 4
)

// minBuckets is the smallest bucket array allocated; always a power of
// two.
const minBuckets = 8

// Slot occupancy states.
const (
	slotEmpty uint8 = iota
	slotLive
	slotTombstone
)

type entry[K comparable, V any] struct {
	key   K
	value V
	state uint8
}

// Map is an open-addressed hash map from K to V backed by an allocator.
type Map[K comparable, V any] struct {
	a          alloc.Allocator
	seed       maphash.Seed
	span       alloc.Span[entry[K, V]]
	size       int
	tombstones int
}

// New returns an empty map drawing bucket storage from a. A nil
// allocator falls back to the process-wide heap allocator. The
// allocator must outlive the map.
func New[K comparable, V any](a alloc.Allocator) *Map[K, V] {
	if a == nil {
		a = alloc.Default
	}
	return &Map[K, V]{a: a, seed: maphash.MakeSeed()}
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.size }

// Cap returns the current bucket count.
func (m *Map[K, V]) Cap() int { return m.span.Len() }

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	buckets := m.span.Items()
	if len(buckets) == 0 {
		return zero, false
	}
	mask := uint64(len(buckets) - 1)
	for i := maphash.Comparable(m.seed, key) & mask; ; i = (i + 1) & mask {
		e := &buckets[i]
		switch e.state {
		case slotEmpty:
			return zero, false
		case slotLive:
			if e.key == key {
				return e.value, true
			}
		}
		// Tombstones keep the probe going.
	}
}

// Put stores value under key, replacing any previous value.
func (m *Map[K, V]) Put(key K, value V) error {
	if err := m.ensure(); err != nil {
		return err
	}
	buckets := m.span.Items()
	mask := uint64(len(buckets) - 1)
	grave := -1
	for i := maphash.Comparable(m.seed, key) & mask; ; i = (i + 1) & mask {
		e := &buckets[i]
		switch e.state {
		case slotLive:
			if e.key == key {
				e.value = value
				return nil
			}
		case slotTombstone:
			// Remember the first tombstone but keep probing: the key
			// may live further along the sequence.
			if grave < 0 {
				grave = int(i)
			}
		case slotEmpty:
			if grave >= 0 {
				e = &buckets[grave]
				m.tombstones--
			}
			*e = entry[K, V]{key: key, value: value, state: slotLive}
			m.size++
			return nil
		}
	}
}

// Delete removes key and returns the value it held. The slot becomes a
// tombstone so probe sequences past it stay intact.
func (m *Map[K, V]) Delete(key K) (V, error) {
	var zero V
	buckets := m.span.Items()
	if len(buckets) == 0 {
		return zero, fmt.Errorf("%w: key not present", mem.ErrNotFound)
	}
	mask := uint64(len(buckets) - 1)
	for i := maphash.Comparable(m.seed, key) & mask; ; i = (i + 1) & mask {
		e := &buckets[i]
		switch e.state {
		case slotEmpty:
			return zero, fmt.Errorf("%w: key not present", mem.ErrNotFound)
		case slotLive:
			if e.key == key {
				out := e.value
				*e = entry[K, V]{state: slotTombstone}
				m.size--
				m.tombstones++
				return out, nil
			}
		}
	}
}

// Range calls f for every live entry until f returns false. The order
// is unspecified. The map must not be mutated during iteration.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	for i := range m.span.Items() {
		e := &m.span.Items()[i]
		if e.state == slotLive && !f(e.key, e.value) {
			return
		}
	}
}

// Reserve grows the bucket array so that n entries fit without further
// rehashing.
func (m *Map[K, V]) Reserve(n int) error {
	want := nextPow2(n * MaxLoadDen / MaxLoadNum)
	if want <= m.span.Len() {
		return nil
	}
	return m.rehash(want)
}

// Clear destroys every entry but keeps the bucket array.
func (m *Map[K, V]) Clear() {
	m.span.Clear()
	m.size = 0
	m.tombstones = 0
}

// Close destroys the map's contents and releases the bucket array. The
// map is reusable afterwards as an empty map.
func (m *Map[K, V]) Close() error {
	m.size = 0
	m.tombstones = 0
	return alloc.ReleaseSpan(m.a, &m.span)
}

// ensure guarantees a free slot exists for one insertion under the
// documented load thresholds.
func (m *Map[K, V]) ensure() error {
	capacity := m.span.Len()
	if capacity == 0 {
		return m.rehash(minBuckets)
	}
	switch {
	case (m.size+m.tombstones+1)*MaxLoadDen > capacity*MaxLoadNum:
		if (m.size+1)*2 > capacity {
			return m.rehash(capacity * 2)
		}
		// Density comes from tombstones, not live entries: same-size
		// rehash reclaims them.
		return m.rehash(capacity)
	case m.tombstones*4 > capacity:
		return m.rehash(capacity)
	}
	return nil
}

// rehash moves every live entry into a fresh bucket array of newCap
// slots (a power of two). On failure the map is left untouched.
func (m *Map[K, V]) rehash(newCap int) error {
	next, err := alloc.NewSpan[entry[K, V]](m.a, newCap)
	if err != nil {
		return err
	}
	next.Clear()

	buckets := next.Items()
	mask := uint64(newCap - 1)
	for i := range m.span.Items() {
		e := &m.span.Items()[i]
		if e.state != slotLive {
			continue
		}
		j := maphash.Comparable(m.seed, e.key) & mask
		for buckets[j].state == slotLive {
			j = (j + 1) & mask
		}
		buckets[j] = *e
	}

	old := m.span
	m.span = next
	m.tombstones = 0
	old.Clear()
	return alloc.ReleaseSpan(m.a, &old)
}

func nextPow2(n int) int {
	p := minBuckets
	for p < n {
		p <<= 1
	}
	return p
}
