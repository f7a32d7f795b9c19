package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/arith"
	"github.com/joshuapare/memkit/internal/region"
	"github.com/joshuapare/memkit/mem"
)

// stackFrame records one live allocation: where its block starts and
// what the bump offset was before it (so release can also unwind the
// alignment padding).
type stackFrame struct {
	start int
	prev  int
}

// Stack is a LIFO allocator over a single pre-reserved region. Acquire
// bumps an offset like Arena, but blocks are individually reclaimable
// as long as releases happen in exact reverse acquire order. The
// top-of-stack check is O(1), so out-of-order release is detected in
// every build and fails with mem.ErrInvalidRequest.
//
// A Stack suits container backing only while growth stays in place:
// container relocation acquires the new block before releasing the old
// one, which is out of LIFO order and fails.
type Stack struct {
	buf     []byte
	base    uintptr
	off     int
	frames  []stackFrame
	release func() error
}

// NewStack reserves capacity bytes of backing memory for LIFO
// allocation.
func NewStack(capacity int) (*Stack, error) {
	if capacity <= 0 {
		return nil, mem.ErrInvalidRequest
	}
	buf, release, err := region.Reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mem.ErrOutOfMemory, err)
	}
	return &Stack{
		buf:     buf,
		base:    uintptr(unsafe.Pointer(unsafe.SliceData(buf))),
		release: release,
	}, nil
}

// Acquire pushes a new block onto the stack.
func (s *Stack) Acquire(size, align int) (mem.Block, error) {
	if err := checkRequest(size, align); err != nil {
		return mem.Block{}, err
	}
	pad := mem.Padding(s.base+uintptr(s.off), align)
	start, ok := arith.AddOverflowSafe(s.off, pad)
	var end int
	if ok {
		end, ok = arith.AddOverflowSafe(start, size)
	}
	if !ok || end > len(s.buf) {
		return mem.Block{}, fmt.Errorf("%w: stack exhausted (used=%d cap=%d need=%d)",
			mem.ErrOutOfMemory, s.off, len(s.buf), size)
	}
	s.frames = append(s.frames, stackFrame{start: start, prev: s.off})
	s.off = end
	return mem.NewBlock(s.buf[start:end:end], align), nil
}

// Release pops the top block. Releasing anything other than the most
// recently acquired live block violates the LIFO contract and fails
// with mem.ErrInvalidRequest, leaving the stack unchanged.
func (s *Stack) Release(b mem.Block) error {
	if b.IsZero() {
		return nil
	}
	if len(s.frames) == 0 {
		return fmt.Errorf("%w: release on empty stack", mem.ErrInvalidRequest)
	}
	top := s.frames[len(s.frames)-1]
	if b.Addr() != s.base+uintptr(top.start) {
		return fmt.Errorf("%w: release out of LIFO order", mem.ErrInvalidRequest)
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.off = top.prev
	return nil
}

// Grow extends the top block over the region's remaining tail.
func (s *Stack) Grow(b *mem.Block, newSize int) bool {
	if b.IsZero() || len(s.frames) == 0 || newSize <= b.Size() {
		return false
	}
	top := s.frames[len(s.frames)-1]
	if b.Addr() != s.base+uintptr(top.start) {
		return false
	}
	end, ok := arith.AddOverflowSafe(top.start, newSize)
	if !ok || end > len(s.buf) {
		return false
	}
	s.off = end
	*b = mem.NewBlock(s.buf[top.start:end:end], b.Align())
	return true
}

// Reset pops every live block at once, rewinding to an empty stack.
func (s *Stack) Reset() {
	s.off = 0
	s.frames = s.frames[:0]
}

// Depth returns the number of live blocks.
func (s *Stack) Depth() int { return len(s.frames) }

// Used returns the bytes consumed by live blocks, padding included.
func (s *Stack) Used() int { return s.off }

// Close releases the backing region. The stack must not be used
// afterwards.
func (s *Stack) Close() error {
	s.buf = nil
	s.off = 0
	s.frames = nil
	if s.release == nil {
		return nil
	}
	rel := s.release
	s.release = nil
	return rel()
}

// Compile-time interface check
var _ Allocator = (*Stack)(nil)
