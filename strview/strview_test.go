package strview_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/hashmap"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/strview"
)

func TestBorrowLooksUpWithoutOwning(t *testing.T) {
	m := hashmap.New[string, int](hook.WithHash[string](hook.HashString), hook.WithCompare[string](hook.CompareOrdered[string]))
	m.Put(strview.Own([]byte("alpha")), 1)

	raw := []byte("alpha")
	v, ok := m.Get(strview.Borrow(raw))
	require.True(t, ok)
	require.Equal(t, 1, *v)
}

func TestOwnIsIndependentOfSourceBytes(t *testing.T) {
	m := hashmap.New[string, int](hook.WithHash[string](hook.HashString), hook.WithCompare[string](hook.CompareOrdered[string]))
	raw := []byte("beta")
	key := strview.Own(raw)
	m.Put(key, 2)

	raw[0] = 'X'
	v, ok := m.Get("beta")
	require.True(t, ok)
	require.Equal(t, 2, *v)
}
