// Package vector implements a dynamic array generic over an element
// type and an allocator.
//
// Storage is a single allocator block (or collector-visible storage for
// pointer-bearing element types, see mem/alloc.Span). When an insertion
// would exceed capacity the vector grows to max(cap*GrowthFactor,
// cap+1), trying an in-place extension before relocating. Relocation
// invalidates every slice previously returned by Items.
//
// A failed growth (mem.ErrOutOfMemory) leaves the vector exactly as it
// was: no partial mutation is observable.
//
// Relocation acquires the new block before releasing the old one, so an
// alloc.Stack can back a vector only while growth happens in place.
//
// Vectors are not safe for concurrent use.
package vector

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/arith"
	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

// GrowthFactor is the multiplicative capacity increase applied when the
// vector must reallocate.
const GrowthFactor = 2

// Vector is a growable array of T backed by an allocator.
type Vector[T any] struct {
	a    alloc.Allocator
	span alloc.Span[T]
	size int
}

// New returns an empty vector drawing storage from a. A nil allocator
// falls back to the process-wide heap allocator. The allocator must
// outlive the vector.
func New[T any](a alloc.Allocator) *Vector[T] {
	if a == nil {
		a = alloc.Default
	}
	return &Vector[T]{a: a}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the element count the current storage can hold without
// reallocation.
func (v *Vector[T]) Cap() int { return v.span.Len() }

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", mem.ErrOutOfBounds, i, v.size)
	}
	return v.span.Items()[i], nil
}

// Set overwrites the element at index i.
func (v *Vector[T]) Set(i int, val T) error {
	if i < 0 || i >= v.size {
		return fmt.Errorf("%w: index %d, size %d", mem.ErrOutOfBounds, i, v.size)
	}
	v.span.Items()[i] = val
	return nil
}

// Items returns the live elements as a slice. The slice is invalidated
// by any operation that grows, shrinks or closes the vector.
func (v *Vector[T]) Items() []T {
	return v.span.Items()[:v.size]
}

// Append adds val at the end, growing storage when full.
func (v *Vector[T]) Append(val T) error {
	if err := v.ensure(v.size + 1); err != nil {
		return err
	}
	v.span.Items()[v.size] = val
	v.size++
	return nil
}

// AppendSlice adds vals in order, computing the required capacity once
// so the whole call reallocates at most once.
func (v *Vector[T]) AppendSlice(vals ...T) error {
	if len(vals) == 0 {
		return nil
	}
	need, ok := arith.AddOverflowSafe(v.size, len(vals))
	if !ok {
		return mem.ErrOutOfMemory
	}
	if err := v.ensure(need); err != nil {
		return err
	}
	copy(v.span.Items()[v.size:], vals)
	v.size = need
	return nil
}

// Insert places val at index i, shifting the tail right by one slot.
// i may equal Len, making Insert an append.
func (v *Vector[T]) Insert(i int, val T) error {
	if i < 0 || i > v.size {
		return fmt.Errorf("%w: index %d, size %d", mem.ErrOutOfBounds, i, v.size)
	}
	if err := v.ensure(v.size + 1); err != nil {
		return err
	}
	items := v.span.Items()
	copy(items[i+1:v.size+1], items[i:v.size])
	items[i] = val
	v.size++
	return nil
}

// Remove deletes and returns the element at index i, shifting the tail
// left by one slot. Capacity is unchanged.
func (v *Vector[T]) Remove(i int) (T, error) {
	var zero T
	if i < 0 || i >= v.size {
		return zero, fmt.Errorf("%w: index %d, size %d", mem.ErrOutOfBounds, i, v.size)
	}
	items := v.span.Items()
	out := items[i]
	copy(items[i:v.size-1], items[i+1:v.size])
	items[v.size-1] = zero
	v.size--
	return out, nil
}

// Pop deletes and returns the last element without touching capacity.
func (v *Vector[T]) Pop() (T, error) {
	var zero T
	if v.size == 0 {
		return zero, fmt.Errorf("%w: pop on empty vector", mem.ErrOutOfBounds)
	}
	out := v.span.Items()[v.size-1]
	v.span.Items()[v.size-1] = zero
	v.size--
	return out, nil
}

// Clear destroys every element but keeps the storage.
func (v *Vector[T]) Clear() {
	clear(v.span.Items()[:v.size])
	v.size = 0
}

// Reserve grows capacity to at least n elements without changing Len.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.span.Len() {
		return nil
	}
	return v.relocate(n)
}

// Shrink reallocates storage down to exactly Len elements. Shrinking is
// never automatic.
func (v *Vector[T]) Shrink() error {
	if v.size == v.span.Len() {
		return nil
	}
	return v.relocate(v.size)
}

// Close destroys all elements and releases the storage. The vector is
// reusable afterwards as an empty vector.
func (v *Vector[T]) Close() error {
	v.Clear()
	return alloc.ReleaseSpan(v.a, &v.span)
}

// ensure makes room for need elements, growing by GrowthFactor when
// capacity is exceeded.
func (v *Vector[T]) ensure(need int) error {
	if need <= v.span.Len() {
		return nil
	}
	newCap, ok := arith.CapForGrowth(v.span.Len(), need)
	if !ok {
		return mem.ErrOutOfMemory
	}
	if alloc.GrowSpan(v.a, &v.span, newCap) {
		return nil
	}
	return v.relocate(newCap)
}

// relocate moves the live elements into fresh storage of n slots and
// releases the old block. On failure the vector is left untouched.
func (v *Vector[T]) relocate(n int) error {
	next, err := alloc.NewSpan[T](v.a, n)
	if err != nil {
		return err
	}
	copy(next.Items(), v.span.Items()[:v.size])
	old := v.span
	v.span = next
	clear(old.Items()[:v.size])
	return alloc.ReleaseSpan(v.a, &old)
}
