package alloc

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/arith"
	"github.com/joshuapare/memkit/mem"
)

// Span is typed element storage for containers: a fixed number of T
// slots backed either by an allocator block (viewed via unsafe.Slice)
// or, for element types the garbage collector must trace, by
// collector-visible storage. The dispatch happens once, at NewSpan,
// based on mem.Trivial.
//
// Slots are not zeroed on acquisition; reused allocator memory carries
// stale bytes. Callers that read before writing must Clear first.
type Span[T any] struct {
	items  []T
	block  mem.Block
	native bool
}

// NewSpan acquires storage for n slots of T from a. n == 0 yields an
// empty span holding no memory.
func NewSpan[T any](a Allocator, n int) (Span[T], error) {
	if n < 0 {
		return Span[T]{}, mem.ErrInvalidRequest
	}
	if n == 0 {
		return Span[T]{}, nil
	}
	esize := mem.SizeOf[T]()
	if esize == 0 || !mem.Trivial[T]() {
		// Pointer-bearing (or zero-size) elements stay on the Go heap
		// so the collector can trace them.
		return Span[T]{items: make([]T, n), native: true}, nil
	}
	size, ok := arith.MulOverflowSafe(esize, n)
	if !ok {
		return Span[T]{}, mem.ErrOutOfMemory
	}
	blk, err := a.Acquire(size, mem.AlignOf[T]())
	if err != nil {
		return Span[T]{}, err
	}
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(blk.Bytes())))
	return Span[T]{items: unsafe.Slice(ptr, n), block: blk}, nil
}

// GrowSpan tries to extend s in place to n slots, first over slack the
// issuing allocator left in the block, then via the allocator's Grow
// capability. New slots carry stale bytes. Returns false when the span
// must be relocated instead.
func GrowSpan[T any](a Allocator, s *Span[T], n int) bool {
	if s.native || s.block.IsZero() || n <= len(s.items) {
		return false
	}
	esize := mem.SizeOf[T]()
	size, ok := arith.MulOverflowSafe(esize, n)
	if !ok {
		return false
	}
	if s.block.Size() < size && !a.Grow(&s.block, size) {
		return false
	}
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(s.block.Bytes())))
	s.items = unsafe.Slice(ptr, n)
	return true
}

// ReleaseSpan returns the span's storage to a and empties the span.
// Native storage is cleared so element references drop, then left to
// the collector.
func ReleaseSpan[T any](a Allocator, s *Span[T]) error {
	if s.native {
		clear(s.items)
		s.items = nil
		s.native = false
		return nil
	}
	blk := s.block
	s.items = nil
	s.block = mem.Block{}
	if blk.IsZero() {
		return nil
	}
	return a.Release(blk)
}

// Items returns the slot slice. Valid until the span is grown,
// released, or (for block-backed spans) the issuing allocator is reset.
func (s *Span[T]) Items() []T { return s.items }

// Len returns the number of slots.
func (s *Span[T]) Len() int { return len(s.items) }

// Native reports whether the span bypasses the allocator for
// collector-visible storage.
func (s *Span[T]) Native() bool { return s.native }

// Clear zeroes every slot.
func (s *Span[T]) Clear() { clear(s.items) }
