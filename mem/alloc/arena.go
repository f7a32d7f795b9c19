package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/arith"
	"github.com/joshuapare/memkit/internal/region"
	"github.com/joshuapare/memkit/mem"
)

// Arena is a monotonic bump allocator over a single pre-reserved
// region. Acquire advances an offset, Release is a no-op, and Reset
// rewinds the offset to zero in one step, invalidating every block
// issued since construction or the previous Reset. Callers must not
// touch arena-backed blocks or containers across a Reset.
//
// Grow succeeds only for the most recent allocation, extending the
// bump pointer over the region's remaining tail.
type Arena struct {
	buf     []byte
	base    uintptr
	off     int
	lastOff int // start of the most recent allocation, -1 when none
	release func() error
}

// NewArena reserves capacity bytes of backing memory and returns an
// arena carving blocks from it. On unix the region comes from an
// anonymous mapping; elsewhere from the Go heap.
func NewArena(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, mem.ErrInvalidRequest
	}
	buf, release, err := region.Reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mem.ErrOutOfMemory, err)
	}
	return &Arena{
		buf:     buf,
		base:    uintptr(unsafe.Pointer(unsafe.SliceData(buf))),
		lastOff: -1,
		release: release,
	}, nil
}

// Acquire carves the next size bytes, skipping whatever padding the
// requested alignment demands. Fails with mem.ErrOutOfMemory once the
// region is exhausted.
func (a *Arena) Acquire(size, align int) (mem.Block, error) {
	if err := checkRequest(size, align); err != nil {
		return mem.Block{}, err
	}
	pad := mem.Padding(a.base+uintptr(a.off), align)
	start, ok := arith.AddOverflowSafe(a.off, pad)
	var end int
	if ok {
		end, ok = arith.AddOverflowSafe(start, size)
	}
	if !ok || end > len(a.buf) {
		return mem.Block{}, fmt.Errorf("%w: arena exhausted (used=%d cap=%d need=%d)",
			mem.ErrOutOfMemory, a.off, len(a.buf), size)
	}
	a.lastOff = start
	a.off = end
	return mem.NewBlock(a.buf[start:end:end], align), nil
}

// Release is a no-op: individual arena blocks are never reclaimed, only
// the whole region via Reset.
func (a *Arena) Release(b mem.Block) error {
	return nil
}

// Grow extends b in place when it is the most recent allocation and the
// region's tail still has room.
func (a *Arena) Grow(b *mem.Block, newSize int) bool {
	if b.IsZero() || a.lastOff < 0 || newSize <= b.Size() {
		return false
	}
	if b.Addr() != a.base+uintptr(a.lastOff) {
		return false
	}
	end, ok := arith.AddOverflowSafe(a.lastOff, newSize)
	if !ok || end > len(a.buf) {
		return false
	}
	a.off = end
	*b = mem.NewBlock(a.buf[a.lastOff:end:end], b.Align())
	return true
}

// Reset rewinds the arena to empty. Every block issued since the last
// reset becomes invalid; subsequent acquires reuse the region from
// offset zero.
func (a *Arena) Reset() {
	a.off = 0
	a.lastOff = -1
}

// Used returns the number of bytes consumed since the last reset,
// padding included.
func (a *Arena) Used() int { return a.off }

// Cap returns the total capacity of the backing region.
func (a *Arena) Cap() int { return len(a.buf) }

// Close releases the backing region. The arena must not be used
// afterwards.
func (a *Arena) Close() error {
	a.buf = nil
	a.off = 0
	a.lastOff = -1
	if a.release == nil {
		return nil
	}
	rel := a.release
	a.release = nil
	return rel()
}

// Compile-time interface check
var _ Allocator = (*Arena)(nil)
