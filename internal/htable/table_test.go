package htable_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/htable"
)

func newIntTable() *htable.Table[int, int] {
	return htable.New(htable.Config[int, int]{
		Hash:  hook.HashInt[int],
		Equal: hook.EqualOrdered[int],
	})
}

func TestPlaceholderIsSafeToRead(t *testing.T) {
	tbl := newIntTable()
	require.Equal(t, 0, tbl.Len())
	require.Equal(t, 0, tbl.Capacity())
	_, ok := tbl.Get(42)
	require.False(t, ok)
	require.False(t, tbl.Contains(42))
	require.False(t, tbl.Erase(42))
}

func TestInsertGetReplace(t *testing.T) {
	tbl := newIntTable()
	p, ok := tbl.Insert(1, 10, true)
	require.True(t, ok)
	require.Equal(t, 10, *p)

	got, found := tbl.Get(1)
	require.True(t, found)
	require.Equal(t, 10, *got)

	p, ok = tbl.Insert(1, 20, true)
	require.True(t, ok)
	require.Equal(t, 20, *p)
	require.Equal(t, 1, tbl.Len())

	p, ok = tbl.Insert(1, 999, false)
	require.True(t, ok)
	require.Equal(t, 20, *p) // replace=false keeps existing value
}

func TestRehashPreservesAllEntries(t *testing.T) {
	tbl := newIntTable()
	const n = 1_000_000
	for i := 0; i < n; i++ {
		_, ok := tbl.Insert(i, i*i, true)
		require.True(t, ok)
	}
	require.Equal(t, n, tbl.Len())
	for i := 0; i < n; i += 997 {
		v, ok := tbl.Get(i)
		require.True(t, ok)
		require.Equal(t, i*i, *v)
	}
}

func TestEraseAllThreeCases(t *testing.T) {
	tbl := newIntTable()
	for i := 0; i < 5000; i++ {
		tbl.Insert(i, i, true)
	}
	for i := 0; i < 5000; i++ {
		require.True(t, tbl.Erase(i))
	}
	require.Equal(t, 0, tbl.Len())
	for i := 0; i < 5000; i++ {
		_, ok := tbl.Get(i)
		require.False(t, ok)
	}
}

func TestRandomizedAgainstMapInvariant(t *testing.T) {
	tbl := newIntTable()
	model := map[int]int{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50000; i++ {
		key := rng.Intn(3000)
		switch rng.Intn(4) {
		case 0, 1:
			v := rng.Int()
			_, ok := tbl.Insert(key, v, true)
			require.True(t, ok)
			model[key] = v
		case 2:
			ok := tbl.Erase(key)
			_, existed := model[key]
			require.Equal(t, existed, ok)
			delete(model, key)
		case 3:
			v, ok := tbl.Get(key)
			mv, existed := model[key]
			require.Equal(t, existed, ok)
			if ok {
				require.Equal(t, mv, *v)
			}
		}
	}
	require.Equal(t, len(model), tbl.Len())
	for k, v := range model {
		got, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, v, *got)
	}
}

func TestEraseDuringIterationAdvanceFlag(t *testing.T) {
	tbl := newIntTable()
	for i := 0; i < 8000; i++ {
		tbl.Insert(i, i, true)
	}
	seen := map[int]bool{}
	for c := tbl.First(); c != tbl.End(); {
		k := tbl.Key(c)
		if k%5 == 0 {
			if tbl.EraseAt(c) {
				c = tbl.Next(c)
			}
			continue
		}
		require.False(t, seen[k])
		seen[k] = true
		c = tbl.Next(c)
	}
	for k := range seen {
		require.NotZero(t, k%5)
	}
	require.Equal(t, 8000-8000/5, tbl.Len())
}

func TestReserveShrink(t *testing.T) {
	tbl := newIntTable()
	require.True(t, tbl.Reserve(10000))
	bigCap := tbl.Capacity()
	require.GreaterOrEqual(t, bigCap, 10000)

	for i := 0; i < 5; i++ {
		tbl.Insert(i, i, true)
	}
	require.True(t, tbl.Shrink())
	require.Less(t, tbl.Capacity(), bigCap)

	for i := 0; i < 5; i++ {
		tbl.Erase(i)
	}
	require.True(t, tbl.Shrink())
	require.Equal(t, 0, tbl.Capacity())
}

func TestCloneIndependence(t *testing.T) {
	tbl := newIntTable()
	for i := 0; i < 500; i++ {
		tbl.Insert(i, i, true)
	}
	clone, ok := tbl.Clone()
	require.True(t, ok)

	clone.Insert(0, -1, true)
	orig, _ := tbl.Get(0)
	require.Equal(t, 0, *orig)
	cloned, _ := clone.Get(0)
	require.Equal(t, -1, *cloned)
}

func TestFallibleAllocatorOnInsertAndReserve(t *testing.T) {
	limited := alloc.NewLimited(8)
	tbl := htable.New(htable.Config[int, int]{
		Hash:  hook.HashInt[int],
		Equal: hook.EqualOrdered[int],
		Alloc: limited,
	})

	for i := 0; i < 7; i++ {
		_, ok := tbl.Insert(i, i, true)
		require.True(t, ok)
	}
	_, ok := tbl.Insert(100, 100, true)
	require.False(t, ok)

	require.False(t, tbl.Reserve(10000))
}

func TestCleanupThenReinitIsNoOp(t *testing.T) {
	tbl := newIntTable()
	tbl.Insert(1, 1, true)
	tbl.Destroy()
	tbl.Destroy() // repeated cleanup on a placeholder is a no-op
	require.Equal(t, 0, tbl.Len())
	require.Equal(t, 0, tbl.Capacity())

	_, ok := tbl.Insert(2, 2, true)
	require.True(t, ok)
}
