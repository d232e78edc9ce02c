// Package orderedset is the sorted set container from spec.md §3,
// implemented by instantiating internal/rbtree with an empty element
// type, the same way hashset instantiates internal/htable.
package orderedset

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/nocopy"
	"github.com/gramework/containers/internal/rbtree"
)

// Set is a sorted collection of distinct T values.
type Set[T comparable] struct {
	t       *rbtree.Tree[T, struct{}]
	compare hook.CompareFn[T]
	nocopy  nocopy.Guard
}

// New constructs an empty Set.
func New[T comparable](opts ...hook.Option[T]) *Set[T] {
	h := hook.New(opts...)
	compare := h.Compare
	if compare == nil {
		compare = func(T, T) int { panic(hook.ErrNoCompare) }
	}
	a := h.Alloc
	if a == nil {
		a = alloc.Default
	}
	return &Set[T]{
		compare: compare,
		t: rbtree.New(rbtree.Config[T, struct{}]{
			Compare: compare,
			Alloc:   a,
		}),
	}
}

func (s *Set[T]) Len() int { return s.t.Len() }

func (s *Set[T]) Contains(v T) bool { return s.t.Contains(v) }

// Add inserts v, reporting false only on allocator failure.
func (s *Set[T]) Add(v T) bool {
	_, ok := s.t.Insert(v, struct{}{}, false)
	return ok
}

func (s *Set[T]) Remove(v T) bool { return s.t.Erase(v) }

func (s *Set[T]) Clear() { s.t.Clear() }

func (s *Set[T]) Destroy() { s.t.Destroy() }

func (s *Set[T]) Clone() (*Set[T], bool) {
	t, ok := s.t.Clone()
	if !ok {
		return nil, false
	}
	return &Set[T]{t: t, compare: s.compare}, true
}

type cursor = rbtree.Node

func (s *Set[T]) First() cursor          { return s.t.First() }
func (s *Set[T]) Last() cursor           { return s.t.Last() }
func (s *Set[T]) End() cursor            { return s.t.Nil() }
func (s *Set[T]) Next(cur cursor) cursor { return s.t.Next(cur) }
func (s *Set[T]) Prev(cur cursor) cursor { return s.t.Prev(cur) }

// LowerBound returns a cursor to the first member >= v.
func (s *Set[T]) LowerBound(v T) cursor { return s.t.FirstAtOrAfter(v) }

// UpperBound returns a cursor to the last member <= v.
func (s *Set[T]) UpperBound(v T) cursor { return s.t.LastAtOrBefore(v) }

func (s *Set[T]) At(cur cursor) T { return s.t.Key(cur) }

func (s *Set[T]) EraseAt(cur cursor) { s.t.EraseNode(cur) }

// Range iterates every member in ascending order.
func (s *Set[T]) Range(yield func(T) bool) {
	for c := s.First(); c != s.End(); c = s.Next(c) {
		if !yield(s.At(c)) {
			return
		}
	}
}

// RangeBetween iterates every member v with lo <= v <= hi, ascending.
func (s *Set[T]) RangeBetween(lo, hi T, yield func(T) bool) {
	for c := s.LowerBound(lo); c != s.End() && s.compare(s.At(c), hi) <= 0; c = s.Next(c) {
		if !yield(s.At(c)) {
			return
		}
	}
}
