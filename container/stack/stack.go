// Package stack implements a LIFO container over allocator-backed
// list nodes.
//
// Push and Pop are O(1); each element lives in its own allocator block,
// so a Pool sized with list.ForwardNodeSize is the natural backing for
// heavy push/pop churn.
//
// Stacks are not safe for concurrent use.
package stack

import (
	"github.com/joshuapare/memkit/container/list"
	"github.com/joshuapare/memkit/mem/alloc"
)

// Stack is a last-in-first-out container of T.
type Stack[T any] struct {
	l *list.ForwardList[T]
}

// New returns an empty stack drawing node storage from a. A nil
// allocator falls back to the process-wide heap allocator.
func New[T any](a alloc.Allocator) *Stack[T] {
	return &Stack[T]{l: list.NewForward[T](a)}
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int { return s.l.Len() }

// Push places v on top.
func (s *Stack[T]) Push(v T) error {
	return s.l.PushFront(v)
}

// Pop removes and returns the top element, failing with
// mem.ErrOutOfBounds when empty.
func (s *Stack[T]) Pop() (T, error) {
	return s.l.PopFront()
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	return s.l.Front()
}

// Clear removes every element, releasing each node's block.
func (s *Stack[T]) Clear() error { return s.l.Clear() }

// Close destroys the stack's contents. Equivalent to Clear.
func (s *Stack[T]) Close() error { return s.l.Close() }
