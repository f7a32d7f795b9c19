package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

func collect[T any](l *List[T]) []T {
	var out []T
	for n := l.Front(); n != nil; n = n.Next() {
		out = append(out, n.Value())
	}
	return out
}

func TestList_PushOrder(t *testing.T) {
	l := New[int](nil)
	defer l.Close()

	for i := 1; i <= 3; i++ {
		_, err := l.PushBack(i * 10)
		require.NoError(t, err)
	}
	_, err := l.PushFront(5)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 10, 20, 30}, collect(l))
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 5, l.Front().Value())
	assert.Equal(t, 30, l.Back().Value())
}

func TestList_ReverseIteration(t *testing.T) {
	l := New[int](nil)
	defer l.Close()

	for i := range 5 {
		_, err := l.PushBack(i)
		require.NoError(t, err)
	}

	var out []int
	for n := l.Back(); n != nil; n = n.Prev() {
		out = append(out, n.Value())
	}
	assert.Equal(t, []int{4, 3, 2, 1, 0}, out)
}

func TestList_RemoveKeepsOtherPositionsValid(t *testing.T) {
	l := New[int](nil)
	defer l.Close()

	a, err := l.PushBack(1)
	require.NoError(t, err)
	b, err := l.PushBack(2)
	require.NoError(t, err)
	c, err := l.PushBack(3)
	require.NoError(t, err)

	got, err := l.Remove(b)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// a and c survive removal of b untouched.
	assert.Equal(t, 1, a.Value())
	assert.Equal(t, 3, c.Value())
	assert.Same(t, c, a.Next())
	assert.Same(t, a, c.Prev())
	assert.Equal(t, []int{1, 3}, collect(l))
}

func TestList_RemoveForeignPosition(t *testing.T) {
	l1 := New[int](nil)
	l2 := New[int](nil)
	defer l1.Close()
	defer l2.Close()

	n, err := l1.PushBack(1)
	require.NoError(t, err)

	_, err = l2.Remove(n)
	assert.ErrorIs(t, err, mem.ErrNotFound, "position from another list")

	_, err = l1.Remove(nil)
	assert.ErrorIs(t, err, mem.ErrNotFound)
}

func TestList_RemoveTwice(t *testing.T) {
	l := New[int](nil)
	defer l.Close()

	n, err := l.PushBack(1)
	require.NoError(t, err)

	_, err = l.Remove(n)
	require.NoError(t, err)
	_, err = l.Remove(n)
	assert.ErrorIs(t, err, mem.ErrNotFound, "removed position is no longer a member")
}

func TestList_InsertAround(t *testing.T) {
	l := New[string](nil)
	defer l.Close()

	mid, err := l.PushBack("m")
	require.NoError(t, err)

	_, err = l.InsertBefore(mid, "a")
	require.NoError(t, err)
	_, err = l.InsertAfter(mid, "z")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "m", "z"}, collect(l))
}

func TestList_Find(t *testing.T) {
	l := New[int](nil)
	defer l.Close()

	for i := range 10 {
		_, err := l.PushBack(i)
		require.NoError(t, err)
	}

	n := l.Find(func(v int) bool { return v == 7 })
	require.NotNil(t, n)
	assert.Equal(t, 7, n.Value())

	assert.Nil(t, l.Find(func(v int) bool { return v > 100 }))
}

func TestList_PoolBackedNodes(t *testing.T) {
	p, err := alloc.NewPool(NodeSize[int64](), 16)
	require.NoError(t, err)

	l := New[int64](p)
	for i := range 50 {
		_, err := l.PushBack(int64(i))
		require.NoError(t, err)
	}
	assert.Equal(t, 50, p.Outstanding(), "one chunk per node")

	require.NoError(t, l.Close())
	assert.Zero(t, p.Outstanding(), "close returns every node to the pool")
}

func TestList_HeapLeakFree(t *testing.T) {
	h := alloc.NewHeap()
	l := New[uint32](h)

	for i := range 20 {
		_, err := l.PushFront(uint32(i))
		require.NoError(t, err)
	}
	for l.Len() > 10 {
		_, err := l.Remove(l.Front())
		require.NoError(t, err)
	}
	assert.Equal(t, 10, h.Outstanding())

	require.NoError(t, l.Close())
	assert.Zero(t, h.Outstanding())
}

func TestList_PointerElements(t *testing.T) {
	l := New[string](nil)
	defer l.Close()

	_, err := l.PushBack("alpha")
	require.NoError(t, err)
	_, err = l.PushBack("beta")
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, collect(l))
}

func TestForwardList_LIFOOrder(t *testing.T) {
	l := NewForward[int](nil)
	defer l.Close()

	for i := range 3 {
		require.NoError(t, l.PushFront(i))
	}
	assert.Equal(t, 3, l.Len())

	for want := 2; want >= 0; want-- {
		front, err := l.Front()
		require.NoError(t, err)
		assert.Equal(t, want, front)

		got, err := l.PopFront()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := l.PopFront()
	assert.ErrorIs(t, err, mem.ErrOutOfBounds)
	_, err = l.Front()
	assert.ErrorIs(t, err, mem.ErrOutOfBounds)
}

func TestForwardList_PoolBacked(t *testing.T) {
	p, err := alloc.NewPool(ForwardNodeSize[int](), 8)
	require.NoError(t, err)

	l := NewForward[int](p)
	for i := range 30 {
		require.NoError(t, l.PushFront(i))
	}
	assert.Equal(t, 30, p.Outstanding())

	require.NoError(t, l.Clear())
	assert.Zero(t, l.Len())
	assert.Zero(t, p.Outstanding())
}
