// Package list is the doubly linked list container from spec.md
// §3/§4.4: a sentinel node whose next/prev both point at itself when the
// list is empty, so End()/Front()/Back() are always valid cursors, even
// before any element is ever pushed, matching the "list" row of spec.md
// §3's placeholder-state table.
package list

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/nocopy"
)

type node[T any] struct {
	value T
	next  *node[T]
	prev  *node[T]
}

// List is a doubly linked list of T.
type List[T any] struct {
	sentinel *node[T]
	size     int
	destroy  hook.DestroyFn[T]
	a        alloc.Allocator
	nocopy   nocopy.Guard
}

// Option configures a List at construction.
type Option[T any] func(*List[T])

// WithDestroy binds a destroy hook fired on Remove/Clear/Destroy.
func WithDestroy[T any](f hook.DestroyFn[T]) Option[T] {
	return func(l *List[T]) { l.destroy = f }
}

// WithAlloc binds a non-default allocator.
func WithAlloc[T any](a alloc.Allocator) Option[T] {
	return func(l *List[T]) { l.a = a }
}

// New constructs an empty List. The sentinel node itself is always
// allocated up front (it is O(1), fixed-size, and never resized), so
// End() is stable from construction and remains the same node identity
// for the list's entire lifetime.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{a: alloc.Default}
	l.sentinel = &node[T]{}
	l.sentinel.next = l.sentinel
	l.sentinel.prev = l.sentinel
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len reports the number of elements.
func (l *List[T]) Len() int { return l.size }

// Cursor is an opaque list position. End() is the sentinel; every other
// Cursor refers to a live element.
type Cursor[T any] struct{ n *node[T] }

// End returns the sentinel cursor, one past Back() and one before
// Front().
func (l *List[T]) End() Cursor[T] { return Cursor[T]{l.sentinel} }

// Front returns the first element's cursor, or End() if empty.
func (l *List[T]) Front() Cursor[T] { return Cursor[T]{l.sentinel.next} }

// Back returns the last element's cursor, or End() if empty.
func (l *List[T]) Back() Cursor[T] { return Cursor[T]{l.sentinel.prev} }

// Next and Prev walk from a cursor.
func (c Cursor[T]) next() Cursor[T] { return Cursor[T]{c.n.next} }
func (c Cursor[T]) prev() Cursor[T] { return Cursor[T]{c.n.prev} }

func (l *List[T]) Next(c Cursor[T]) Cursor[T] { return c.next() }
func (l *List[T]) Prev(c Cursor[T]) Cursor[T] { return c.prev() }

// At dereferences a cursor to a live element.
func (c Cursor[T]) At() *T { return &c.n.value }

func (l *List[T]) newNode(value T) (*node[T], bool) {
	if !l.a.Reserve(1) {
		return nil, false
	}
	return &node[T]{value: value}, true
}

// insertBefore splices a new node holding value in immediately before at.
func (l *List[T]) insertBefore(at *node[T], value T) (Cursor[T], bool) {
	n, ok := l.newNode(value)
	if !ok {
		return Cursor[T]{}, false
	}
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
	l.size++
	return Cursor[T]{n}, true
}

// PushFront inserts value at the front.
func (l *List[T]) PushFront(value T) (Cursor[T], bool) {
	return l.insertBefore(l.sentinel.next, value)
}

// PushBack inserts value at the back.
func (l *List[T]) PushBack(value T) (Cursor[T], bool) {
	return l.insertBefore(l.sentinel, value)
}

// InsertBefore splices value in immediately before c.
func (l *List[T]) InsertBefore(c Cursor[T], value T) (Cursor[T], bool) {
	return l.insertBefore(c.n, value)
}

// Remove splices c out, firing the destroy hook, and returns the cursor
// to the element that followed it (End() if c was Back()).
func (l *List[T]) Remove(c Cursor[T]) Cursor[T] {
	n := c.n
	if l.destroy != nil {
		l.destroy(&n.value)
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	next := n.next
	l.a.Release(1)
	l.size--
	return Cursor[T]{next}
}

// Clear removes every element, firing the destroy hook for each, but
// keeps the sentinel (the list's only permanent allocation).
func (l *List[T]) Clear() {
	for c := l.Front(); c != l.End(); {
		c = l.Remove(c)
	}
}

func (c Cursor[T]) eq(o Cursor[T]) bool { return c.n == o.n }

// Destroy clears the list. The sentinel itself is never released; a
// destroyed List is safe to reuse exactly like a freshly constructed one.
func (l *List[T]) Destroy() { l.Clear() }

// Splice takes the single element at srcCursor out of src and re-links
// it immediately before dest in l — an O(1) pointer relink, per spec.md
// §4.4, that never touches the element's payload. dest and srcCursor may
// name positions in the same list. Splicing an element to its own
// current position (dest and srcCursor naming the same node) is a no-op
// but still reports success, per spec.md §8.
func (l *List[T]) Splice(dest Cursor[T], src *List[T], srcCursor Cursor[T]) bool {
	n := srcCursor.n
	if n == dest.n {
		return true
	}

	n.prev.next = n.next
	n.next.prev = n.prev
	src.size--

	n.prev = dest.n.prev
	n.next = dest.n
	dest.n.prev.next = n
	dest.n.prev = n
	l.size++

	return true
}

// Range iterates every element front to back, stopping early if yield
// returns false.
func (l *List[T]) Range(yield func(*T) bool) {
	for c := l.Front(); c != l.End(); c = l.Next(c) {
		if !yield(c.At()) {
			return
		}
	}
}

// Clone returns an independent list with shallow copies of every
// element, in the same order.
func (l *List[T]) Clone() (*List[T], bool) {
	dst := New(WithDestroy(l.destroy), WithAlloc[T](l.a))
	for c := l.Front(); c != l.End(); c = l.Next(c) {
		if _, ok := dst.PushBack(*c.At()); !ok {
			return nil, false
		}
	}
	return dst, true
}
