package vec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/vec"
)

func TestPushInsertErase(t *testing.T) {
	v := vec.New[int]()
	for i := 0; i < 5; i++ {
		require.True(t, v.Push(i))
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, v.Data())

	require.True(t, v.Insert(2, 100))
	require.Equal(t, []int{0, 1, 100, 2, 3, 4}, v.Data())

	v.Erase(2)
	require.Equal(t, []int{0, 1, 2, 3, 4}, v.Data())
}

func TestDestroyHookFiresOnErase(t *testing.T) {
	var destroyed []int
	v := vec.New[int](vec.WithDestroy(func(x *int) { destroyed = append(destroyed, *x) }))
	v.Push(1)
	v.Push(2)
	v.Erase(0)
	require.Equal(t, []int{1}, destroyed)

	v.Clear()
	require.Equal(t, []int{1, 2}, destroyed)
}

func TestShrinkAndClone(t *testing.T) {
	v := vec.New[int]()
	for i := 0; i < 100; i++ {
		v.Push(i)
	}
	for i := 0; i < 90; i++ {
		v.Pop()
	}
	require.True(t, v.Shrink())
	require.Equal(t, v.Len(), v.Cap())

	clone, ok := v.Clone()
	require.True(t, ok)
	clone.Push(999)
	require.NotEqual(t, v.Len(), clone.Len())
}
