// Package list implements allocator-backed linked lists.
//
// Every node lives in its own allocator block, so insertion and removal
// never relocate surviving elements: a *Node stays valid until the node
// itself is removed or the list is closed. This makes a Pool the
// natural allocator for lists, since every node has the same size.
//
// Lists are not safe for concurrent use.
package list

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

// Node is a position in a List. It stays valid across mutations of
// other elements and is invalidated only by its own removal.
type Node[T any] struct {
	value T
	next  *Node[T]
	prev  *Node[T]
	owner *List[T]
	block mem.Block
}

// Value returns the element stored at this position.
func (n *Node[T]) Value() T { return n.value }

// SetValue overwrites the element stored at this position.
func (n *Node[T]) SetValue(v T) { n.value = v }

// Next returns the following position, or nil at the back.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the preceding position, or nil at the front.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// List is a doubly linked list of T with one allocator block per node.
type List[T any] struct {
	a      alloc.Allocator
	head   *Node[T]
	tail   *Node[T]
	size   int
	native bool
}

// New returns an empty list drawing node storage from a. A nil
// allocator falls back to the process-wide heap allocator. The
// allocator must outlive the list.
func New[T any](a alloc.Allocator) *List[T] {
	if a == nil {
		a = alloc.Default
	}
	return &List[T]{a: a, native: !mem.Trivial[T]()}
}

// NodeSize returns the bytes one node occupies, useful for sizing a
// Pool that will back the list.
func NodeSize[T any]() int {
	return mem.SizeOf[Node[T]]()
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// Front returns the first position, or nil when empty.
func (l *List[T]) Front() *Node[T] { return l.head }

// Back returns the last position, or nil when empty.
func (l *List[T]) Back() *Node[T] { return l.tail }

// PushFront inserts v at the front.
func (l *List[T]) PushFront(v T) (*Node[T], error) {
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.size++
	return n, nil
}

// PushBack inserts v at the back.
func (l *List[T]) PushBack(v T) (*Node[T], error) {
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
	return n, nil
}

// InsertBefore inserts v immediately before at.
func (l *List[T]) InsertBefore(at *Node[T], v T) (*Node[T], error) {
	if at == nil || at.owner != l {
		return nil, fmt.Errorf("%w: position does not belong to this list", mem.ErrNotFound)
	}
	if at.prev == nil {
		return l.PushFront(v)
	}
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
	l.size++
	return n, nil
}

// InsertAfter inserts v immediately after at.
func (l *List[T]) InsertAfter(at *Node[T], v T) (*Node[T], error) {
	if at == nil || at.owner != l {
		return nil, fmt.Errorf("%w: position does not belong to this list", mem.ErrNotFound)
	}
	if at.next == nil {
		return l.PushBack(v)
	}
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}
	n.next = at.next
	n.prev = at
	at.next.prev = n
	at.next = n
	l.size++
	return n, nil
}

// Remove unlinks the node and returns its element. Positions belonging
// to another list, or already removed, fail with mem.ErrNotFound.
// Every other position in the list stays valid.
func (l *List[T]) Remove(n *Node[T]) (T, error) {
	var zero T
	if n == nil || n.owner != l {
		return zero, fmt.Errorf("%w: position does not belong to this list", mem.ErrNotFound)
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.size--
	out := n.value
	return out, l.freeNode(n)
}

// Find returns the first position whose element satisfies pred, or nil.
// O(n).
func (l *List[T]) Find(pred func(T) bool) *Node[T] {
	for n := l.head; n != nil; n = n.next {
		if pred(n.value) {
			return n
		}
	}
	return nil
}

// Clear removes every element, releasing each node's block.
func (l *List[T]) Clear() error {
	n := l.head
	l.head, l.tail, l.size = nil, nil, 0
	for n != nil {
		next := n.next
		if err := l.freeNode(n); err != nil {
			return err
		}
		n = next
	}
	return nil
}

// Close destroys the list's contents. Equivalent to Clear; the list is
// reusable afterwards.
func (l *List[T]) Close() error { return l.Clear() }

// newNode acquires and initializes one node. Pointer-bearing element
// types use collector-visible nodes; everything else lives in a raw
// block.
func (l *List[T]) newNode(v T) (*Node[T], error) {
	if l.native {
		return &Node[T]{value: v, owner: l}, nil
	}
	blk, err := l.a.Acquire(mem.SizeOf[Node[T]](), mem.AlignOf[Node[T]]())
	if err != nil {
		return nil, err
	}
	n := (*Node[T])(unsafe.Pointer(unsafe.SliceData(blk.Bytes())))
	*n = Node[T]{value: v, owner: l, block: blk}
	return n, nil
}

// freeNode destroys a node and returns its block.
func (l *List[T]) freeNode(n *Node[T]) error {
	blk := n.block
	*n = Node[T]{} // drops the owner tag, so a second Remove is NotFound
	if l.native {
		return nil
	}
	return l.a.Release(blk)
}
