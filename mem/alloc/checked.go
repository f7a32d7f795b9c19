package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/mem"
)

// Checked wraps an allocator with release-discipline validation: a
// block released twice, or released to an allocator that never issued
// it, fails fast with mem.ErrDoubleFree before reaching the wrapped
// allocator. The base allocators skip these checks; wrap them with
// Checked in debug configurations and leave the fast path alone in
// release builds.
type Checked struct {
	inner Allocator
	live  map[uintptr]int // block base address -> issued size
}

// NewChecked wraps inner with release validation.
func NewChecked(inner Allocator) *Checked {
	return &Checked{inner: inner, live: make(map[uintptr]int)}
}

// Acquire forwards to the wrapped allocator, recording the block.
func (c *Checked) Acquire(size, align int) (mem.Block, error) {
	blk, err := c.inner.Acquire(size, align)
	if err == nil {
		c.live[blk.Addr()] = blk.Size()
	}
	return blk, err
}

// Release validates the block is live before forwarding.
func (c *Checked) Release(b mem.Block) error {
	if b.IsZero() {
		return nil
	}
	addr := b.Addr()
	if _, ok := c.live[addr]; !ok {
		return fmt.Errorf("%w: block %#x was not issued or was already released",
			mem.ErrDoubleFree, addr)
	}
	if err := c.inner.Release(b); err != nil {
		return err
	}
	delete(c.live, addr)
	return nil
}

// Grow forwards to the wrapped allocator, keeping the live record in
// sync on success.
func (c *Checked) Grow(b *mem.Block, newSize int) bool {
	addr := b.Addr()
	if !c.inner.Grow(b, newSize) {
		return false
	}
	delete(c.live, addr)
	c.live[b.Addr()] = b.Size()
	return true
}

// Outstanding returns the number of live blocks, for leak assertions.
func (c *Checked) Outstanding() int { return len(c.live) }

// Compile-time interface check
var _ Allocator = (*Checked)(nil)
