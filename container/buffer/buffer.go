// Package buffer implements a growable byte buffer backed by an
// allocator.
//
// A Buffer is the byte specialization of the dynamic array: the bytes
// in [0, Len) are always valid and contiguous, so Bytes and String are
// zero-copy views. Every append operation computes its total space
// requirement up front and therefore acquires at most one new block per
// call, however many bytes the call appends.
//
// Relocation acquires the new block before releasing the old one, so an
// alloc.Stack can back a buffer only while growth happens in place.
//
// Buffers are not safe for concurrent use.
package buffer

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/arith"
	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

// GrowthFactor is the multiplicative capacity increase applied when the
// buffer must reallocate.
const GrowthFactor = 2

// Buffer is a growable byte/character buffer.
type Buffer struct {
	a    alloc.Allocator
	span alloc.Span[byte]
	size int
}

// New returns an empty buffer drawing storage from a. A nil allocator
// falls back to the process-wide heap allocator. The allocator must
// outlive the buffer.
func New(a alloc.Allocator) *Buffer {
	if a == nil {
		a = alloc.Default
	}
	return &Buffer{a: a}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.size }

// Cap returns the byte count the current storage can hold without
// reallocation.
func (b *Buffer) Cap() int { return b.span.Len() }

// Bytes returns the contents as a read-only view. It is invalidated by
// any operation that grows or closes the buffer.
func (b *Buffer) Bytes() []byte {
	return b.span.Items()[:b.size]
}

// String returns a copy of the contents.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Byte returns the byte at index i.
func (b *Buffer) Byte(i int) (byte, error) {
	if i < 0 || i >= b.size {
		return 0, fmt.Errorf("%w: index %d, size %d", mem.ErrOutOfBounds, i, b.size)
	}
	return b.span.Items()[i], nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.ensure(b.size + 1); err != nil {
		return err
	}
	b.span.Items()[b.size] = c
	b.size++
	return nil
}

// Write appends p, reallocating at most once.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	need, ok := arith.AddOverflowSafe(b.size, len(p))
	if !ok {
		return 0, mem.ErrOutOfMemory
	}
	if err := b.ensure(need); err != nil {
		return 0, err
	}
	copy(b.span.Items()[b.size:], p)
	b.size = need
	return len(p), nil
}

// WriteString appends s, reallocating at most once.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	need, ok := arith.AddOverflowSafe(b.size, len(s))
	if !ok {
		return 0, mem.ErrOutOfMemory
	}
	if err := b.ensure(need); err != nil {
		return 0, err
	}
	copy(b.span.Items()[b.size:], s)
	b.size = need
	return len(s), nil
}

// Truncate discards all but the first n bytes. Capacity is unchanged.
func (b *Buffer) Truncate(n int) error {
	if n < 0 || n > b.size {
		return fmt.Errorf("%w: truncate to %d, size %d", mem.ErrOutOfBounds, n, b.size)
	}
	b.size = n
	return nil
}

// Reset empties the buffer, keeping the storage.
func (b *Buffer) Reset() { b.size = 0 }

// Grow reserves capacity for at least n more bytes without changing
// Len.
func (b *Buffer) Grow(n int) error {
	if n < 0 {
		return mem.ErrInvalidRequest
	}
	need, ok := arith.AddOverflowSafe(b.size, n)
	if !ok {
		return mem.ErrOutOfMemory
	}
	if need <= b.span.Len() {
		return nil
	}
	return b.relocate(need)
}

// Close releases the storage. The buffer is reusable afterwards as an
// empty buffer.
func (b *Buffer) Close() error {
	b.size = 0
	return alloc.ReleaseSpan(b.a, &b.span)
}

func (b *Buffer) ensure(need int) error {
	if need <= b.span.Len() {
		return nil
	}
	newCap, ok := arith.CapForGrowth(b.span.Len(), need)
	if !ok {
		return mem.ErrOutOfMemory
	}
	if alloc.GrowSpan(b.a, &b.span, newCap) {
		return nil
	}
	return b.relocate(newCap)
}

// relocate moves the contents into fresh storage of n bytes. On failure
// the buffer is left untouched.
func (b *Buffer) relocate(n int) error {
	next, err := alloc.NewSpan[byte](b.a, n)
	if err != nil {
		return err
	}
	copy(next.Items(), b.span.Items()[:b.size])
	old := b.span
	b.span = next
	return alloc.ReleaseSpan(b.a, &old)
}
