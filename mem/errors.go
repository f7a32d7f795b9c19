package mem

import "errors"

var (
	// ErrOutOfMemory indicates an allocator could not satisfy an acquire
	// request (region exhausted, pool drained, host allocation failed).
	ErrOutOfMemory = errors.New("mem: out of memory")

	// ErrOutOfBounds indicates an index-based access past a container's
	// current size.
	ErrOutOfBounds = errors.New("mem: index out of bounds")

	// ErrNotFound indicates a removal or lookup referenced a key or
	// position not present in the container.
	ErrNotFound = errors.New("mem: not found")

	// ErrInvalidRequest indicates a request violating an allocator's
	// structural constraints (oversized pool chunk, non-power-of-two
	// alignment, out-of-order stack release).
	ErrInvalidRequest = errors.New("mem: invalid request")

	// ErrDoubleFree indicates a release of a block that is not live:
	// already released, or never issued by this allocator. Only the
	// validating allocators (heap, Checked) detect this; elsewhere it is
	// a documented precondition violation.
	ErrDoubleFree = errors.New("mem: double free")
)
