package alloc

import "github.com/joshuapare/memkit/mem"

// Counting wraps an allocator and tallies its traffic: number of
// acquires, releases and successful in-place grows, plus the bytes
// currently outstanding. It adds no validation and changes no
// semantics; tests use it to assert reallocation counts and leak-free
// teardown.
type Counting struct {
	inner       Allocator
	acquires    int
	releases    int
	grows       int
	outstanding int
}

// NewCounting wraps inner with traffic counters.
func NewCounting(inner Allocator) *Counting {
	return &Counting{inner: inner}
}

// Acquire forwards to the wrapped allocator, counting successes.
func (c *Counting) Acquire(size, align int) (mem.Block, error) {
	blk, err := c.inner.Acquire(size, align)
	if err == nil {
		c.acquires++
		c.outstanding += blk.Size()
	}
	return blk, err
}

// Release forwards to the wrapped allocator, counting successes.
func (c *Counting) Release(b mem.Block) error {
	err := c.inner.Release(b)
	if err == nil && !b.IsZero() {
		c.releases++
		c.outstanding -= b.Size()
	}
	return err
}

// Grow forwards to the wrapped allocator, counting successful in-place
// extensions.
func (c *Counting) Grow(b *mem.Block, newSize int) bool {
	old := b.Size()
	if !c.inner.Grow(b, newSize) {
		return false
	}
	c.grows++
	c.outstanding += b.Size() - old
	return true
}

// Acquires returns the number of successful Acquire calls.
func (c *Counting) Acquires() int { return c.acquires }

// Releases returns the number of successful Release calls.
func (c *Counting) Releases() int { return c.releases }

// Grows returns the number of successful in-place Grow calls.
func (c *Counting) Grows() int { return c.grows }

// OutstandingBytes returns the bytes currently held by callers.
func (c *Counting) OutstandingBytes() int { return c.outstanding }

// ResetCounters zeroes every counter without touching the wrapped
// allocator.
func (c *Counting) ResetCounters() {
	c.acquires, c.releases, c.grows, c.outstanding = 0, 0, 0, 0
}

// Compile-time interface check
var _ Allocator = (*Counting)(nil)
