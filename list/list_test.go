package list_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/list"
)

func collect(l *list.List[int]) []int {
	var got []int
	l.Range(func(v *int) bool { got = append(got, *v); return true })
	return got
}

func TestPushFrontBackAndRemove(t *testing.T) {
	l := list.New[int]()
	l.PushBack(2)
	l.PushBack(3)
	c, _ := l.PushFront(1)
	require.Equal(t, []int{1, 2, 3}, collect(l))

	l.Remove(c)
	require.Equal(t, []int{2, 3}, collect(l))
	require.Equal(t, 2, l.Len())
}

func TestEndStableOnEmptyList(t *testing.T) {
	l := list.New[int]()
	require.Equal(t, l.End(), l.Front())
	require.Equal(t, l.End(), l.Back())
}

func TestSpliceMovesSingleElementBetweenLists(t *testing.T) {
	a := list.New[int]()
	a.PushBack(1)
	a.PushBack(2)
	b := list.New[int]()
	cThree, _ := b.PushBack(3)
	b.PushBack(4)

	ok := a.Splice(a.End(), b, cThree)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, collect(a))
	require.Equal(t, []int{4}, collect(b))
	require.Equal(t, 1, b.Len())
}

func TestSpliceToOwnPositionIsNoOpButSucceeds(t *testing.T) {
	a := list.New[int]()
	a.PushBack(1)
	c2, _ := a.PushBack(2)
	a.PushBack(3)

	ok := a.Splice(c2, a, c2)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, collect(a))
	require.Equal(t, 3, a.Len())
}

func TestDestroyHookOnRemoveAndClear(t *testing.T) {
	var destroyed []int
	l := list.New[int](list.WithDestroy(func(v *int) { destroyed = append(destroyed, *v) }))
	l.PushBack(1)
	l.PushBack(2)
	l.Clear()
	require.Equal(t, []int{1, 2}, destroyed)
}
