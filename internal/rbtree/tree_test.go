package rbtree_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/rbtree"
)

func newIntTree() *rbtree.Tree[int, int] {
	return rbtree.New(rbtree.Config[int, int]{Compare: hook.CompareOrdered[int]})
}

func TestInsertGetErase(t *testing.T) {
	tr := newIntTree()
	_, ok := tr.Get(1)
	require.False(t, ok)

	p, inserted := tr.Insert(1, 100, true)
	require.True(t, inserted)
	require.Equal(t, 100, *p)

	got, ok := tr.Get(1)
	require.True(t, ok)
	require.Equal(t, 100, *got)

	p, _ = tr.Insert(1, 200, true)
	require.Equal(t, 200, *p)
	require.Equal(t, 1, tr.Len())

	require.True(t, tr.Erase(1))
	require.False(t, tr.Erase(1))
	require.Equal(t, 0, tr.Len())
}

func TestInOrderIteration(t *testing.T) {
	tr := newIntTree()
	values := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	for _, v := range values {
		tr.Insert(v, v, true)
	}

	var got []int
	for n := tr.First(); n != tr.Nil(); n = tr.Next(n) {
		got = append(got, tr.Key(n))
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	require.Equal(t, sorted, got)

	var rev []int
	for n := tr.Last(); n != tr.Nil(); n = tr.Prev(n) {
		rev = append(rev, tr.Key(n))
	}
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	require.Equal(t, sorted, rev)
}

func TestBoundedQueries(t *testing.T) {
	tr := newIntTree()
	for _, v := range []int{10, 20, 30, 40, 50} {
		tr.Insert(v, v, true)
	}
	n := tr.FirstAtOrAfter(25)
	require.Equal(t, 30, tr.Key(n))

	n = tr.LastAtOrBefore(25)
	require.Equal(t, 20, tr.Key(n))

	n = tr.FirstAtOrAfter(100)
	require.Equal(t, tr.Nil(), n)

	n = tr.LastAtOrBefore(0)
	require.Equal(t, tr.Nil(), n)
}

func TestRandomizedAgainstMapInvariant(t *testing.T) {
	tr := newIntTree()
	model := map[int]int{}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20000; i++ {
		key := rng.Intn(2000)
		switch rng.Intn(3) {
		case 0:
			tr.Insert(key, key, true)
			model[key] = key
		case 1:
			ok := tr.Erase(key)
			_, existed := model[key]
			require.Equal(t, existed, ok)
			delete(model, key)
		case 2:
			v, ok := tr.Get(key)
			mv, mok := model[key]
			require.Equal(t, mok, ok)
			if ok {
				require.Equal(t, mv, *v)
			}
		}
	}
	require.Equal(t, len(model), tr.Len())

	var got []int
	for n := tr.First(); n != tr.Nil(); n = tr.Next(n) {
		got = append(got, tr.Key(n))
	}
	require.True(t, sort.IntsAreSorted(got))
	require.Equal(t, len(model), len(got))
}

func TestEraseDuringIterationKeepsCursorValid(t *testing.T) {
	tr := newIntTree()
	for i := 0; i < 100; i++ {
		tr.Insert(i, i, true)
	}
	for n := tr.First(); n != tr.Nil(); {
		next := tr.Next(n)
		if tr.Key(n)%2 == 0 {
			tr.EraseNode(n)
		}
		n = next
	}
	var got []int
	for n := tr.First(); n != tr.Nil(); n = tr.Next(n) {
		got = append(got, tr.Key(n))
	}
	for _, v := range got {
		require.NotZero(t, v%2)
	}
	require.Equal(t, 50, len(got))
}

func TestCloneIndependence(t *testing.T) {
	tr := newIntTree()
	for i := 0; i < 50; i++ {
		tr.Insert(i, i, true)
	}
	clone, ok := tr.Clone()
	require.True(t, ok)

	clone.Insert(0, -1, true)
	orig, _ := tr.Get(0)
	require.Equal(t, 0, *orig)
	cloned, _ := clone.Get(0)
	require.Equal(t, -1, *cloned)
}
