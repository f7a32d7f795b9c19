// Package mem provides the low-level memory primitives shared by every
// allocator and container in memkit.
//
// # Overview
//
// The central type is Block, a handle to a contiguous region of raw
// memory described by its backing bytes and the alignment it was issued
// with. Blocks are produced by the allocators in mem/alloc and consumed
// by the containers; exactly one owner holds a live Block at any time.
//
// The package also carries:
//
//   - Alignment arithmetic (AlignUp, Padding, IsPowerOfTwo) used by all
//     allocator implementations.
//   - Type introspection (SizeOf, AlignOf, Trivial) used to decide at
//     container construction whether an element type may live in raw,
//     untraced memory.
//   - The shared error taxonomy (ErrOutOfMemory, ErrOutOfBounds,
//     ErrNotFound, ErrInvalidRequest, ErrDoubleFree).
//
// # Trivial Types
//
// A type is trivial when it contains no Go pointers: no pointers, maps,
// channels, functions, interfaces, slices or strings anywhere in its
// layout. Trivial values may be stored in allocator-issued blocks, which
// the garbage collector does not scan. Non-trivial values must stay in
// collector-visible storage; the containers handle this dispatch
// automatically (see mem/alloc.Span).
//
// # Errors
//
// All errors are sentinel values meant for errors.Is. Operations return
// them to the immediate caller; nothing is logged or retained as global
// state.
//
// # Thread Safety
//
// Nothing in this package or its consumers is safe for concurrent
// mutation. Callers must synchronize externally.
package mem
