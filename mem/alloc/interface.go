package alloc

import "github.com/joshuapare/memkit/mem"

// Allocator defines the capability every allocation strategy satisfies.
//
// Implementations:
//   - Heap: adapter over the Go runtime allocator
//   - Arena: monotonic bump allocator with bulk Reset
//   - Pool: fixed-size chunk free list
//   - Stack: LIFO-ordered region allocator
//   - Counting, Checked: instrumentation and validation wrappers
//
// This interface enables different allocation strategies while keeping
// the containers agnostic to where their storage comes from.
type Allocator interface {
	// Acquire returns a block of at least size bytes whose base address
	// satisfies align, a power of two. Fails with mem.ErrOutOfMemory
	// when the request cannot be satisfied and mem.ErrInvalidRequest
	// when it violates the allocator's structural constraints.
	Acquire(size, align int) (mem.Block, error)

	// Release returns a previously acquired, still-live block.
	// Releasing a block twice or releasing a block acquired from a
	// different allocator is a contract violation; only the validating
	// implementations detect it (mem.ErrDoubleFree), elsewhere the
	// behavior is undefined.
	Release(b mem.Block) error

	// Grow reports whether b could be extended in place to newSize
	// bytes, updating b on success. Returning false is always correct;
	// callers must treat relocation as the fallback path.
	Grow(b *mem.Block, newSize int) bool
}

// checkRequest validates the common Acquire preconditions.
func checkRequest(size, align int) error {
	if size <= 0 || !mem.IsPowerOfTwo(align) {
		return mem.ErrInvalidRequest
	}
	return nil
}
