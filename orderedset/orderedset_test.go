package orderedset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/orderedset"
)

func TestOrderedSetAddRangeRemove(t *testing.T) {
	s := orderedset.New[int](hook.WithCompare[int](hook.CompareOrdered[int]))
	for _, v := range []int{5, 1, 4, 2, 3} {
		require.True(t, s.Add(v))
	}
	var got []int
	s.Range(func(v int) bool { got = append(got, v); return true })
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)

	require.True(t, s.Remove(3))
	require.False(t, s.Contains(3))
	require.Equal(t, 4, s.Len())
}

func TestOrderedSetRangeBetween(t *testing.T) {
	s := orderedset.New[int](hook.WithCompare[int](hook.CompareOrdered[int]))
	for i := 0; i < 10; i++ {
		s.Add(i)
	}
	var got []int
	s.RangeBetween(3, 6, func(v int) bool { got = append(got, v); return true })
	require.Equal(t, []int{3, 4, 5, 6}, got)
}
