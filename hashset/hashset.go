// Package hashset is the unordered set container from spec.md §3,
// implemented by instantiating internal/htable with an empty element
// type — the same hybrid open-addressing core hashmap.Map uses, with
// zero extra storage per entry since struct{} occupies no space.
package hashset

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/htable"
	"github.com/gramework/containers/internal/nocopy"
)

// Set is an unordered collection of distinct T values.
type Set[T comparable] struct {
	t      *htable.Table[T, struct{}]
	nocopy nocopy.Guard
}

// New constructs an empty Set.
func New[T comparable](opts ...hook.Option[T]) *Set[T] {
	h := hook.New(opts...)
	equal, ok := h.EqualOrFromCompare()
	if !ok {
		equal = func(a, b T) bool { return a == b }
	}
	hash := h.Hash
	if hash == nil {
		hash = func(T) uint64 { panic(hook.ErrNoHash) }
	}
	a := h.Alloc
	if a == nil {
		a = alloc.Default
	}
	return &Set[T]{
		t: htable.New(htable.Config[T, struct{}]{
			Hash:    hash,
			Equal:   equal,
			MaxLoad: h.MaxLoad,
			Alloc:   a,
		}),
	}
}

// Len reports the number of elements.
func (s *Set[T]) Len() int { return s.t.Len() }

// Capacity reports the current bucket count.
func (s *Set[T]) Capacity() int { return s.t.Capacity() }

// Contains reports whether v is a member.
func (s *Set[T]) Contains(v T) bool { return s.t.Contains(v) }

// Add inserts v, reporting false only on allocator failure. Re-adding an
// existing member is a no-op that still reports true.
func (s *Set[T]) Add(v T) bool {
	_, ok := s.t.Insert(v, struct{}{}, false)
	return ok
}

// Remove deletes v, reporting whether it was present.
func (s *Set[T]) Remove(v T) bool { return s.t.Erase(v) }

// Reserve ensures capacity for at least n members.
func (s *Set[T]) Reserve(n int) bool { return s.t.Reserve(n) }

// Shrink releases unused backing storage.
func (s *Set[T]) Shrink() bool { return s.t.Shrink() }

// Clear removes every member but keeps storage allocated.
func (s *Set[T]) Clear() { s.t.Clear() }

// Destroy clears the set and releases its storage.
func (s *Set[T]) Destroy() { s.t.Destroy() }

// Clone returns an independent set with the same members.
func (s *Set[T]) Clone() (*Set[T], bool) {
	t, ok := s.t.Clone()
	if !ok {
		return nil, false
	}
	return &Set[T]{t: t}, true
}

type cursor = uint64

// First, End, and Next walk every member in unspecified order.
func (s *Set[T]) First() cursor       { return s.t.First() }
func (s *Set[T]) End() cursor         { return s.t.End() }
func (s *Set[T]) Next(cur cursor) cursor { return s.t.Next(cur) }

// At dereferences a cursor from First/Next.
func (s *Set[T]) At(cur cursor) T { return s.t.Key(cur) }

// EraseAt removes the member at cur; see hashmap.Map.EraseAt for the
// advance-flag semantics this mirrors.
func (s *Set[T]) EraseAt(cur cursor) bool { return s.t.EraseAt(cur) }

// Range iterates every member, stopping early if yield returns false.
func (s *Set[T]) Range(yield func(T) bool) {
	for c := s.First(); c != s.End(); c = s.Next(c) {
		if !yield(s.At(c)) {
			return
		}
	}
}

// Union returns a new set containing every element present in either
// s or other, per spec.md §7's supplemental set-algebra helpers note.
func Union[T comparable](s, other *Set[T], opts ...hook.Option[T]) *Set[T] {
	out := New(opts...)
	s.Range(func(v T) bool { out.Add(v); return true })
	other.Range(func(v T) bool { out.Add(v); return true })
	return out
}

// Intersect returns a new set containing only elements present in both
// s and other.
func Intersect[T comparable](s, other *Set[T], opts ...hook.Option[T]) *Set[T] {
	out := New(opts...)
	s.Range(func(v T) bool {
		if other.Contains(v) {
			out.Add(v)
		}
		return true
	})
	return out
}

// Difference returns a new set containing elements of s not present in
// other.
func Difference[T comparable](s, other *Set[T], opts ...hook.Option[T]) *Set[T] {
	out := New(opts...)
	s.Range(func(v T) bool {
		if !other.Contains(v) {
			out.Add(v)
		}
		return true
	})
	return out
}
