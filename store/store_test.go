package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/store"
)

func TestPutGetDelete(t *testing.T) {
	s := store.New()
	s.Put("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.True(t, s.Delete("a"))
	_, ok = s.Get("a")
	require.False(t, ok)
}
