package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
)

// Heap is a thin adapter over the Go runtime allocator. Blocks are
// backed by make([]byte); requests whose alignment exceeds what the
// runtime guarantees are satisfied by over-allocating and offsetting to
// the first aligned byte.
//
// Heap keeps every issued block in a live set. This serves two jobs:
// the backing memory stays reachable by the collector even when the
// only handle to it sits inside raw (untraced) memory, and releasing a
// block that is not live is caught and reported as mem.ErrDoubleFree
// instead of silently corrupting state.
type Heap struct {
	// live maps the base address of each issued block to its raw
	// backing slice (which may start before the aligned base).
	live map[uintptr][]byte
}

// NewHeap returns a heap allocator with an empty live set.
func NewHeap() *Heap {
	return &Heap{live: make(map[uintptr][]byte)}
}

// Default is the process-wide heap allocator containers fall back to
// when constructed without an explicit allocator. Like every allocator
// it is not safe for concurrent use without external locking.
var Default = NewHeap()

// Acquire allocates size bytes aligned to align from the Go heap.
func (h *Heap) Acquire(size, align int) (mem.Block, error) {
	if err := checkRequest(size, align); err != nil {
		return mem.Block{}, err
	}

	// The runtime aligns allocations of this size to at least 8 bytes;
	// over-allocate only when the caller wants more than that.
	raw := make([]byte, size+align-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := mem.Padding(base, align)
	buf := raw[off : off+size : off+size]

	blk := mem.NewBlock(buf, align)
	h.live[blk.Addr()] = raw
	return blk, nil
}

// Release returns a block to the runtime by dropping it from the live
// set; the collector reclaims the backing once unreferenced.
func (h *Heap) Release(b mem.Block) error {
	if b.IsZero() {
		return nil
	}
	addr := b.Addr()
	if _, ok := h.live[addr]; !ok {
		return fmt.Errorf("%w: block %#x is not live in this heap", mem.ErrDoubleFree, addr)
	}
	delete(h.live, addr)
	return nil
}

// Grow is unsupported; the Go runtime offers no in-place resize.
func (h *Heap) Grow(b *mem.Block, newSize int) bool {
	return false
}

// Outstanding returns the number of live blocks, for leak assertions in
// tests.
func (h *Heap) Outstanding() int {
	return len(h.live)
}

// Compile-time interface check
var _ Allocator = (*Heap)(nil)
