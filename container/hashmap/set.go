package hashmap

import "github.com/joshuapare/memkit/mem/alloc"

// Set is a hash set of K, a thin veneer over Map with empty values.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet returns an empty set drawing storage from a. A nil allocator
// falls back to the process-wide heap allocator.
func NewSet[K comparable](a alloc.Allocator) *Set[K] {
	return &Set[K]{m: New[K, struct{}](a)}
}

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.m.Len() }

// Add inserts key. Adding an existing member is a no-op.
func (s *Set[K]) Add(key K) error {
	return s.m.Put(key, struct{}{})
}

// Contains reports membership.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.m.Get(key)
	return ok
}

// Delete removes key, failing with mem.ErrNotFound when absent.
func (s *Set[K]) Delete(key K) error {
	_, err := s.m.Delete(key)
	return err
}

// Range calls f for every member until f returns false, in unspecified
// order.
func (s *Set[K]) Range(f func(key K) bool) {
	s.m.Range(func(k K, _ struct{}) bool { return f(k) })
}

// Clear removes every member but keeps the storage.
func (s *Set[K]) Clear() { s.m.Clear() }

// Close destroys the set's contents and releases its storage.
func (s *Set[K]) Close() error { return s.m.Close() }
