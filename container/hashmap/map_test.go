package hashmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/alloc"
)

func TestMap_PutGet(t *testing.T) {
	m := New[string, int](nil)
	defer m.Close()

	require.NoError(t, m.Put("one", 1))
	require.NoError(t, m.Put("two", 2))
	require.NoError(t, m.Put("three", 3))
	assert.Equal(t, 3, m.Len())

	got, ok := m.Get("two")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	_, ok = m.Get("four")
	assert.False(t, ok)
}

func TestMap_PutReplaces(t *testing.T) {
	m := New[int, string](nil)
	defer m.Close()

	require.NoError(t, m.Put(1, "a"))
	require.NoError(t, m.Put(1, "b"))
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestMap_DeleteThenLookup(t *testing.T) {
	m := New[int, int](nil)
	defer m.Close()

	const n = 200
	for i := range n {
		require.NoError(t, m.Put(i, i*i))
	}

	// Remove every third key.
	for i := 0; i < n; i += 3 {
		got, err := m.Delete(i)
		require.NoError(t, err)
		assert.Equal(t, i*i, got)
	}

	// Removed keys are gone; the rest still map to their values.
	for i := range n {
		got, ok := m.Get(i)
		if i%3 == 0 {
			assert.False(t, ok, "key %d was deleted", i)
		} else {
			require.True(t, ok, "key %d must survive", i)
			assert.Equal(t, i*i, got)
		}
	}
}

func TestMap_DeleteMissing(t *testing.T) {
	m := New[string, int](nil)
	defer m.Close()

	_, err := m.Delete("ghost")
	assert.ErrorIs(t, err, mem.ErrNotFound)

	require.NoError(t, m.Put("real", 1))
	_, err = m.Delete("ghost")
	assert.ErrorIs(t, err, mem.ErrNotFound)
}

func TestMap_GrowsPastLoadFactor(t *testing.T) {
	m := New[int, int](alloc.NewHeap())
	defer m.Close()

	for i := range 1000 {
		require.NoError(t, m.Put(i, i))
	}
	assert.Equal(t, 1000, m.Len())
	// Live load stays under the documented threshold.
	assert.LessOrEqual(t, m.Len()*MaxLoadDen, m.Cap()*MaxLoadNum)

	for i := range 1000 {
		got, ok := m.Get(i)
		require.True(t, ok, "key %d", i)
		require.Equal(t, i, got)
	}
}

func TestMap_TombstonesReclaimed(t *testing.T) {
	m := New[int, int](nil)
	defer m.Close()

	// Churn the same small key range so tombstones accumulate without
	// the live count growing.
	for round := range 50 {
		for i := range 4 {
			require.NoError(t, m.Put(round*4+i, i))
		}
		for i := range 4 {
			_, err := m.Delete(round*4 + i)
			require.NoError(t, err)
		}
	}
	assert.Zero(t, m.Len())
	assert.LessOrEqual(t, m.Cap(), 64,
		"churn without growth must not balloon the table")

	// The next insert purges accumulated tombstones with a same-size
	// rehash.
	require.NoError(t, m.Put(9999, 1))
	assert.Zero(t, m.tombstones)
}

func TestMap_RangeVisitsEverything(t *testing.T) {
	m := New[int, string](nil)
	defer m.Close()

	want := map[int]string{}
	for i := range 50 {
		v := fmt.Sprintf("v%d", i)
		want[i] = v
		require.NoError(t, m.Put(i, v))
	}

	got := map[int]string{}
	m.Range(func(k int, v string) bool {
		got[k] = v
		return true
	})
	assert.Equal(t, want, got)
}

func TestMap_RangeEarlyStop(t *testing.T) {
	m := New[int, int](nil)
	defer m.Close()

	for i := range 20 {
		require.NoError(t, m.Put(i, i))
	}
	visited := 0
	m.Range(func(int, int) bool {
		visited++
		return visited < 5
	})
	assert.Equal(t, 5, visited)
}

func TestMap_Reserve(t *testing.T) {
	c := alloc.NewCounting(alloc.NewHeap())
	m := New[int, int](c)
	defer m.Close()

	require.NoError(t, m.Reserve(500))
	after := c.Acquires()
	for i := range 500 {
		require.NoError(t, m.Put(i, i))
	}
	assert.Equal(t, after, c.Acquires(), "reserved map must not rehash while filling")
	assert.Equal(t, 500, m.Len())
}

func TestMap_TrivialEntriesUseAllocator(t *testing.T) {
	c := alloc.NewCounting(alloc.NewHeap())
	m := New[uint64, uint64](c)
	defer m.Close()

	require.NoError(t, m.Put(1, 2))
	assert.Positive(t, c.Acquires(), "trivial keys and values live in allocator blocks")
}

func TestMap_FailedRehashLeavesMapIntact(t *testing.T) {
	a, err := alloc.NewArena(512)
	require.NoError(t, err)
	defer a.Close()

	m := New[int64, int64](a)
	require.NoError(t, m.Put(1, 10))
	require.NoError(t, m.Put(2, 20))

	// Exhaust the arena so the next rehash cannot allocate.
	for {
		if _, err := a.Acquire(8, 8); err != nil {
			break
		}
	}

	sizeBefore := m.Len()
	var rehashErr error
	for i := int64(100); i < 200; i++ {
		if err := m.Put(i, i); err != nil {
			rehashErr = err
			break
		}
	}
	require.ErrorIs(t, rehashErr, mem.ErrOutOfMemory)

	assert.GreaterOrEqual(t, m.Len(), sizeBefore)
	got, ok := m.Get(1)
	require.True(t, ok, "pre-failure entries survive a failed rehash")
	assert.Equal(t, int64(10), got)
}

func TestMap_CloseReleasesStorage(t *testing.T) {
	h := alloc.NewHeap()
	m := New[int, int](h)
	for i := range 100 {
		require.NoError(t, m.Put(i, i))
	}
	require.NoError(t, m.Close())
	assert.Zero(t, h.Outstanding())
	assert.Zero(t, m.Len())

	// Reusable after Close.
	require.NoError(t, m.Put(7, 7))
	got, ok := m.Get(7)
	require.True(t, ok)
	assert.Equal(t, 7, got)
	require.NoError(t, m.Close())
}

func TestMap_StringKeysStayNative(t *testing.T) {
	c := alloc.NewCounting(alloc.NewHeap())
	m := New[string, int](c)
	defer m.Close()

	require.NoError(t, m.Put("k", 1))
	assert.Zero(t, c.Acquires(), "pointer-bearing entries must not enter raw memory")
}

func TestSet_Membership(t *testing.T) {
	s := NewSet[string](nil)
	defer s.Close()

	require.NoError(t, s.Add("a"))
	require.NoError(t, s.Add("b"))
	require.NoError(t, s.Add("a"), "re-adding is a no-op")
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	require.NoError(t, s.Delete("a"))
	assert.False(t, s.Contains("a"))
	assert.ErrorIs(t, s.Delete("a"), mem.ErrNotFound)
}

func TestSet_Range(t *testing.T) {
	s := NewSet[int](nil)
	defer s.Close()

	for i := range 10 {
		require.NoError(t, s.Add(i))
	}
	seen := map[int]bool{}
	s.Range(func(k int) bool {
		seen[k] = true
		return true
	})
	assert.Len(t, seen, 10)
}
