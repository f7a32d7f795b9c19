package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/container/list"
	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

func TestStack_PushPopOrder(t *testing.T) {
	s := New[int](nil)
	defer s.Close()

	for i := range 10 {
		require.NoError(t, s.Push(i))
	}
	assert.Equal(t, 10, s.Len())

	for want := 9; want >= 0; want-- {
		top, err := s.Peek()
		require.NoError(t, err)
		assert.Equal(t, want, top)

		got, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Zero(t, s.Len())
}

func TestStack_EmptyAccess(t *testing.T) {
	s := New[string](nil)
	defer s.Close()

	_, err := s.Pop()
	assert.ErrorIs(t, err, mem.ErrOutOfBounds)
	_, err = s.Peek()
	assert.ErrorIs(t, err, mem.ErrOutOfBounds)
}

func TestStack_PoolBacked(t *testing.T) {
	p, err := alloc.NewPool(list.ForwardNodeSize[uint64](), 32)
	require.NoError(t, err)

	s := New[uint64](p)
	for i := range 100 {
		require.NoError(t, s.Push(uint64(i)))
	}
	assert.Equal(t, 100, p.Outstanding())

	for range 100 {
		_, err := s.Pop()
		require.NoError(t, err)
	}
	assert.Zero(t, p.Outstanding(), "every pop returns its node to the pool")
}

func TestStack_Clear(t *testing.T) {
	s := New[int](nil)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	require.NoError(t, s.Clear())
	assert.Zero(t, s.Len())

	// Reusable after Clear.
	require.NoError(t, s.Push(3))
	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	require.NoError(t, s.Close())
}
