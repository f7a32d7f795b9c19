package mem

import "unsafe"

// Block is a handle to a contiguous region of raw memory issued by an
// allocator: backing bytes plus the alignment the region was issued
// with. A Block is owned by exactly one call-site at a time; ownership
// transfers from allocator to container on acquire and back on release.
//
// The zero Block is the "no memory" value.
type Block struct {
	buf   []byte
	align int
}

// NewBlock wraps buf as a Block issued with the given alignment.
// Intended for allocator implementations; containers obtain Blocks from
// an Allocator, never construct them.
func NewBlock(buf []byte, align int) Block {
	return Block{buf: buf, align: align}
}

// Size returns the usable size of the block in bytes.
func (b Block) Size() int { return len(b.buf) }

// Align returns the alignment the block was issued with.
func (b Block) Align() int { return b.align }

// Bytes returns the block's backing bytes. The caller must not grow the
// slice; writes within [0, Size()) are the point.
func (b Block) Bytes() []byte { return b.buf }

// Addr returns the base address of the block, or 0 for the zero Block.
// It identifies the block for release bookkeeping; the address stays
// stable for the block's lifetime because the issuing allocator keeps
// the backing region alive.
func (b Block) Addr() uintptr {
	if len(b.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
}

// IsZero reports whether b holds no memory.
func (b Block) IsZero() bool { return len(b.buf) == 0 }
