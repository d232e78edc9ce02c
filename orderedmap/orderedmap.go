// Package orderedmap is the sorted associative container from spec.md
// §3: key/value pairs kept in key order via internal/rbtree's red-black
// tree core, giving O(log n) lookup/insert/erase and O(log n) bounded
// range queries that hashmap.Map cannot offer.
package orderedmap

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/nocopy"
	"github.com/gramework/containers/internal/rbtree"
)

// Map is an ordered map from K to V.
type Map[K comparable, V any] struct {
	t       *rbtree.Tree[K, V]
	compare hook.CompareFn[K]
	nocopy  nocopy.Guard
}

// New constructs an empty Map. Compare is required: bind it with
// hook.WithCompare (hook.CompareOrdered serves built-in ordered types).
// New selects no default on its own; a Map built without a compare hook
// panics with hook.ErrNoCompare on its first comparison.
func New[K comparable, V any](opts ...hook.Option[K]) *Map[K, V] {
	h := hook.New(opts...)
	compare := h.Compare
	if compare == nil {
		compare = func(K, K) int { panic(hook.ErrNoCompare) }
	}
	a := h.Alloc
	if a == nil {
		a = alloc.Default
	}
	return &Map[K, V]{
		compare: compare,
		t: rbtree.New(rbtree.Config[K, V]{
			Compare:    compare,
			DestroyKey: h.Destroy,
			Alloc:      a,
		}),
	}
}

func (m *Map[K, V]) Len() int { return m.t.Len() }

func (m *Map[K, V]) Get(key K) (*V, bool) { return m.t.Get(key) }

func (m *Map[K, V]) Contains(key K) bool { return m.t.Contains(key) }

func (m *Map[K, V]) Put(key K, value V) (*V, bool) { return m.t.Insert(key, value, true) }

func (m *Map[K, V]) PutIfAbsent(key K, value V) (*V, bool) { return m.t.Insert(key, value, false) }

func (m *Map[K, V]) Delete(key K) bool { return m.t.Erase(key) }

func (m *Map[K, V]) Clear() { m.t.Clear() }

func (m *Map[K, V]) Destroy() { m.t.Destroy() }

func (m *Map[K, V]) Clone() (*Map[K, V], bool) {
	t, ok := m.t.Clone()
	if !ok {
		return nil, false
	}
	return &Map[K, V]{t: t, compare: m.compare}, true
}

type cursor = rbtree.Node

func (m *Map[K, V]) First() cursor          { return m.t.First() }
func (m *Map[K, V]) Last() cursor           { return m.t.Last() }
func (m *Map[K, V]) End() cursor            { return m.t.Nil() }
func (m *Map[K, V]) Next(cur cursor) cursor { return m.t.Next(cur) }
func (m *Map[K, V]) Prev(cur cursor) cursor { return m.t.Prev(cur) }

// LowerBound returns a cursor to the first entry with key >= key.
func (m *Map[K, V]) LowerBound(key K) cursor { return m.t.FirstAtOrAfter(key) }

// UpperBound returns a cursor to the last entry with key <= key.
func (m *Map[K, V]) UpperBound(key K) cursor { return m.t.LastAtOrBefore(key) }

func (m *Map[K, V]) KeyAt(cur cursor) K    { return m.t.Key(cur) }
func (m *Map[K, V]) ValueAt(cur cursor) *V { return m.t.Elem(cur) }

// EraseAt removes the entry at cur. Unlike hashmap.Map.EraseAt, the tree
// core never needs an advance flag: erase frees only cur's own node and
// moves no other entry between nodes (see internal/rbtree's eraseNode
// doc comment), so a cursor taken with Next(cur) before the call stays
// valid.
func (m *Map[K, V]) EraseAt(cur cursor) { m.t.EraseNode(cur) }

// Range iterates every key/value pair in ascending key order, stopping
// early if yield returns false.
func (m *Map[K, V]) Range(yield func(K, V) bool) {
	for c := m.First(); c != m.End(); c = m.Next(c) {
		if !yield(m.KeyAt(c), *m.ValueAt(c)) {
			return
		}
	}
}

// RangeBetween iterates every entry with key in [lo, hi], ascending.
func (m *Map[K, V]) RangeBetween(lo, hi K, yield func(K, V) bool) {
	for c := m.LowerBound(lo); c != m.End() && m.compare(m.KeyAt(c), hi) <= 0; c = m.Next(c) {
		if !yield(m.KeyAt(c), *m.ValueAt(c)) {
			return
		}
	}
}
