package strbuf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramework/containers/strbuf"
)

func TestPushInsertErase(t *testing.T) {
	s := strbuf.NewByte()
	for _, c := range []byte("hello") {
		require.True(t, s.Push(c))
	}
	require.Equal(t, "hello", string(s.Data()))

	require.True(t, s.Insert(5, []byte(" world")))
	require.Equal(t, "hello world", string(s.Data()))

	s.Erase(5, 11)
	require.Equal(t, "hello", string(s.Data()))
}

func TestPushFmtDirectConcatenation(t *testing.T) {
	s := strbuf.NewByte()
	ok := s.PushFmt(
		strbuf.IntArg(7).Hex(4),
		strbuf.StringArg(" "),
		strbuf.FloatArg(3.5),
		strbuf.StringArg(" "),
		strbuf.StringArg("x"),
	)
	require.True(t, ok)
	require.Equal(t, "0007 3.50 x", string(s.Data()))
}

// TestFormattedPushScenario is spec.md §8 scenario 5, worked literally:
// push a run of heterogeneous args, insert a clause mid-string, then
// erase the sentence it displaced.
func TestFormattedPushScenario(t *testing.T) {
	s := strbuf.NewByte()
	require.True(t, s.PushAll([]byte("The ")))

	ok := s.PushFmt(
		strbuf.StringArg("Hornet CB900F"),
		strbuf.StringArg(" is a motorcycle that was manufactured by "),
		strbuf.StringArg("Honda"),
		strbuf.StringArg(" from "),
		strbuf.IntArg(2002),
		strbuf.StringArg(" to "),
		strbuf.IntArg(2007),
		strbuf.StringArg(".\nIt makes "),
		strbuf.FloatArg(103.0),
		strbuf.StringArg("hp and "),
		strbuf.FloatArg(84.9),
		strbuf.StringArg("Nm of torque.\n"),
	)
	require.True(t, ok)
	require.Equal(t,
		"The Hornet CB900F is a motorcycle that was manufactured by Honda from 2002 to 2007.\nIt makes 103.00hp and 84.90Nm of torque.\n",
		string(s.Data()))

	require.True(t, s.InsertFmt(17, strbuf.StringArg(", also known as the 919,")))
	require.Equal(t,
		"The Hornet CB900F, also known as the 919, is a motorcycle that was manufactured by Honda from 2002 to 2007.\nIt makes 103.00hp and 84.90Nm of torque.\n",
		string(s.Data()))

	s.Erase(108, 108+41)
	require.Equal(t,
		"The Hornet CB900F, also known as the 919, is a motorcycle that was manufactured by Honda from 2002 to 2007.\n",
		string(s.Data()))
}

func TestCloneIndependence(t *testing.T) {
	s := strbuf.NewByte()
	s.PushAll([]byte("abc"))
	clone, ok := s.Clone()
	require.True(t, ok)
	clone.Push('d')
	require.Equal(t, "abc", string(s.Data()))
	require.Equal(t, "abcd", string(clone.Data()))
}
