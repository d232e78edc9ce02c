package hashset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/hashset"
	"github.com/gramework/containers/hook"
)

func newIntSet() *hashset.Set[int] {
	return hashset.New[int](hook.WithHash[int](hook.HashInt[int]), hook.WithCompare[int](hook.CompareOrdered[int]))
}

func TestAddContainsRemove(t *testing.T) {
	s := newIntSet()
	require.True(t, s.Add(1))
	require.True(t, s.Add(2))
	require.True(t, s.Add(1)) // duplicate, no-op
	require.Equal(t, 2, s.Len())

	require.True(t, s.Contains(1))
	require.False(t, s.Contains(3))

	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1))
	require.Equal(t, 1, s.Len())
}

func TestSetAlgebra(t *testing.T) {
	a := newIntSet()
	b := newIntSet()
	for _, v := range []int{1, 2, 3} {
		a.Add(v)
	}
	for _, v := range []int{2, 3, 4} {
		b.Add(v)
	}

	opt := hook.WithHash[int](hook.HashInt[int])
	cmp := hook.WithCompare[int](hook.CompareOrdered[int])

	u := hashset.Union(a, b, opt, cmp)
	require.Equal(t, 4, u.Len())

	i := hashset.Intersect(a, b, opt, cmp)
	require.Equal(t, 2, i.Len())
	require.True(t, i.Contains(2))
	require.True(t, i.Contains(3))

	d := hashset.Difference(a, b, opt, cmp)
	require.Equal(t, 1, d.Len())
	require.True(t, d.Contains(1))
}

func TestRangeAndEraseAt(t *testing.T) {
	s := newIntSet()
	for i := 0; i < 1000; i++ {
		s.Add(i)
	}
	count := 0
	s.Range(func(int) bool { count++; return true })
	require.Equal(t, 1000, count)

	for c := s.First(); c != s.End(); {
		if s.At(c)%2 == 0 {
			if s.EraseAt(c) {
				c = s.Next(c)
			}
			continue
		}
		c = s.Next(c)
	}
	require.Equal(t, 500, s.Len())
}
