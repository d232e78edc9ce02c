package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/orderedmap"
)

func newIntMap() *orderedmap.Map[int, string] {
	return orderedmap.New[int, string](hook.WithCompare[int](hook.CompareOrdered[int]))
}

func TestOrderedPutGetDelete(t *testing.T) {
	m := newIntMap()
	m.Put(3, "c")
	m.Put(1, "a")
	m.Put(2, "b")

	var keys []int
	m.Range(func(k int, v string) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, []int{1, 2, 3}, keys)

	v, ok := m.Get(2)
	require.True(t, ok)
	require.Equal(t, "b", *v)

	require.True(t, m.Delete(2))
	require.False(t, m.Contains(2))
}

func TestRangeBetween(t *testing.T) {
	m := newIntMap()
	for i := 0; i < 10; i++ {
		m.Put(i, "")
	}
	var got []int
	m.RangeBetween(3, 7, func(k int, _ string) bool {
		got = append(got, k)
		return true
	})
	require.Equal(t, []int{3, 4, 5, 6, 7}, got)
}
