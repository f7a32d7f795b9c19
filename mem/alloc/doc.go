// Package alloc provides the allocator capability and its concrete
// implementations.
//
// # Overview
//
// Every container in memkit obtains its storage through the Allocator
// interface:
//
//   - Acquire(size, align): get a block of at least size bytes aligned
//     to align
//   - Release(block): return a previously acquired block
//   - Grow(block, newSize): optionally extend a block in place
//
// # Implementations
//
// Heap: thin adapter over the Go runtime allocator
//
//   - Backs blocks with make([]byte), over-allocating to honor
//     alignments above the runtime's natural alignment
//   - Tracks issued blocks so they stay collector-visible wherever the
//     handle is stored, and so double or foreign release is detected
//
// Arena: monotonic bump allocator over a pre-reserved region
//
//   - O(1) acquire, Release is a no-op
//   - Reset rewinds to the start of the region, invalidating every
//     block issued since construction or the previous Reset
//   - Grow succeeds only for the most recent allocation
//
// Pool: fixed-size chunk allocator
//
//   - Free list threaded through the free chunks themselves
//   - O(1) acquire and release; grows by whole backing buffers
//   - Acquire beyond the chunk size fails with ErrInvalidRequest
//
// Stack: LIFO allocator over a pre-reserved region
//
//   - Release must occur in reverse acquire order; the top-of-stack
//     check is O(1) and violations fail with ErrInvalidRequest
//
// # Wrappers
//
// Counting tallies acquire/release/grow traffic for tests and tuning.
// Checked validates release discipline (double free, foreign block) and
// is meant for debug builds; the base allocators stay on the fast path.
//
// # Typed storage
//
// Span bridges raw blocks and Go element types. For element types that
// contain no Go pointers it views a block as []T via unsafe.Slice; for
// pointer-bearing types it falls back to collector-visible storage so
// the garbage collector can trace the elements. Containers never touch
// unsafe directly.
//
// # Usage Example
//
//	a, err := alloc.NewArena(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	blk, err := a.Acquire(256, 8)
//	if err != nil {
//	    return err
//	}
//	copy(blk.Bytes(), payload)
//
//	a.Reset() // blk and everything else issued so far is now invalid
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize
// access externally.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/mem: Block, alignment, error taxonomy
//   - github.com/joshuapare/memkit/container/vector: block-backed array
package alloc
