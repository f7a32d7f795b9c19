package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
)

// chunkAlign is the alignment every pool chunk satisfies.
const chunkAlign = 8

// poolNode is the free-list link written into the first bytes of a free
// chunk, so the free list costs no memory beyond the chunks themselves.
type poolNode struct {
	next *poolNode
}

// Pool issues fixed-size chunks from a free list, giving O(1) acquire
// and release for uniform allocation patterns. When the free list runs
// dry the pool grows by a whole backing buffer of chunksPerBuffer
// chunks.
//
// Release performs no validation: returning a block that did not come
// from this pool, or returning one twice, corrupts the free list. Wrap
// the pool in Checked to catch that during development.
type Pool struct {
	chunkSize int // declared usable size
	stride    int // chunkSize rounded up to chunkAlign, >= pointer size
	perBuffer int
	free      *poolNode
	buffers   [][]byte
	liveChunk int
}

// NewPool returns a pool issuing chunks of chunkSize usable bytes,
// growing chunksPerBuffer chunks at a time.
func NewPool(chunkSize, chunksPerBuffer int) (*Pool, error) {
	if chunkSize <= 0 || chunksPerBuffer <= 0 {
		return nil, mem.ErrInvalidRequest
	}
	stride := mem.AlignUp(chunkSize, chunkAlign)
	if stride < int(unsafe.Sizeof(poolNode{})) {
		stride = chunkAlign
	}
	return &Pool{
		chunkSize: chunkSize,
		stride:    stride,
		perBuffer: chunksPerBuffer,
	}, nil
}

// ChunkSize returns the declared usable chunk size.
func (p *Pool) ChunkSize() int { return p.chunkSize }

// Acquire pops a chunk from the free list, growing the pool by one
// backing buffer when empty. Requests larger than the chunk size, or
// aligned stricter than the chunks are, fail with mem.ErrInvalidRequest.
func (p *Pool) Acquire(size, align int) (mem.Block, error) {
	if err := checkRequest(size, align); err != nil {
		return mem.Block{}, err
	}
	if size > p.chunkSize {
		return mem.Block{}, fmt.Errorf("%w: size %d exceeds pool chunk size %d",
			mem.ErrInvalidRequest, size, p.chunkSize)
	}
	if align > chunkAlign {
		return mem.Block{}, fmt.Errorf("%w: alignment %d exceeds pool chunk alignment %d",
			mem.ErrInvalidRequest, align, chunkAlign)
	}
	if p.free == nil {
		p.addBuffer()
	}
	node := p.free
	p.free = node.next
	node.next = nil
	p.liveChunk++

	buf := unsafe.Slice((*byte)(unsafe.Pointer(node)), p.stride)
	return mem.NewBlock(buf, chunkAlign), nil
}

// Release threads the chunk back onto the free list.
func (p *Pool) Release(b mem.Block) error {
	if b.IsZero() {
		return nil
	}
	node := (*poolNode)(unsafe.Pointer(unsafe.SliceData(b.Bytes())))
	node.next = p.free
	p.free = node
	p.liveChunk--
	return nil
}

// Grow is unsupported: chunk sizes are fixed by design.
func (p *Pool) Grow(b *mem.Block, newSize int) bool {
	return false
}

// Outstanding returns the number of chunks currently issued.
func (p *Pool) Outstanding() int { return p.liveChunk }

// addBuffer allocates one backing buffer and threads its chunks onto
// the free list, first chunk on top so acquisition order is
// deterministic.
func (p *Pool) addBuffer() {
	raw := make([]byte, p.stride*p.perBuffer+chunkAlign-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	buf := raw[mem.Padding(base, chunkAlign):]
	p.buffers = append(p.buffers, raw)

	for i := p.perBuffer - 1; i >= 0; i-- {
		node := (*poolNode)(unsafe.Pointer(unsafe.SliceData(buf[i*p.stride:])))
		node.next = p.free
		p.free = node
	}
}

// Compile-time interface check
var _ Allocator = (*Pool)(nil)
