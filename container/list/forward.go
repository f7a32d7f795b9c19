package list

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

// fnode is a singly linked node, one allocator block each.
type fnode[T any] struct {
	value T
	next  *fnode[T]
	block mem.Block
}

// ForwardList is a singly linked list supporting O(1) front operations.
// It spends one pointer less per node than List and is the right shape
// for free lists and work queues drained from the front.
type ForwardList[T any] struct {
	a      alloc.Allocator
	head   *fnode[T]
	size   int
	native bool
}

// NewForward returns an empty singly linked list drawing node storage
// from a. A nil allocator falls back to the process-wide heap
// allocator.
func NewForward[T any](a alloc.Allocator) *ForwardList[T] {
	if a == nil {
		a = alloc.Default
	}
	return &ForwardList[T]{a: a, native: !mem.Trivial[T]()}
}

// ForwardNodeSize returns the bytes one node occupies, for Pool sizing.
func ForwardNodeSize[T any]() int {
	return mem.SizeOf[fnode[T]]()
}

// Len returns the number of elements.
func (l *ForwardList[T]) Len() int { return l.size }

// PushFront inserts v at the front.
func (l *ForwardList[T]) PushFront(v T) error {
	var n *fnode[T]
	if l.native {
		n = &fnode[T]{value: v}
	} else {
		blk, err := l.a.Acquire(mem.SizeOf[fnode[T]](), mem.AlignOf[fnode[T]]())
		if err != nil {
			return err
		}
		n = (*fnode[T])(unsafe.Pointer(unsafe.SliceData(blk.Bytes())))
		*n = fnode[T]{value: v, block: blk}
	}
	n.next = l.head
	l.head = n
	l.size++
	return nil
}

// Front returns the first element without removing it.
func (l *ForwardList[T]) Front() (T, error) {
	var zero T
	if l.head == nil {
		return zero, fmt.Errorf("%w: front of empty list", mem.ErrOutOfBounds)
	}
	return l.head.value, nil
}

// PopFront removes and returns the first element.
func (l *ForwardList[T]) PopFront() (T, error) {
	var zero T
	if l.head == nil {
		return zero, fmt.Errorf("%w: pop on empty list", mem.ErrOutOfBounds)
	}
	n := l.head
	l.head = n.next
	l.size--

	out := n.value
	blk := n.block
	*n = fnode[T]{}
	if l.native {
		return out, nil
	}
	return out, l.a.Release(blk)
}

// Clear removes every element, releasing each node's block.
func (l *ForwardList[T]) Clear() error {
	n := l.head
	l.head, l.size = nil, 0
	for n != nil {
		next := n.next
		blk := n.block
		*n = fnode[T]{}
		if !l.native {
			if err := l.a.Release(blk); err != nil {
				return err
			}
		}
		n = next
	}
	return nil
}

// Close destroys the list's contents. Equivalent to Clear.
func (l *ForwardList[T]) Close() error { return l.Clear() }
