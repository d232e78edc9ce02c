// Package vec is the dynamic array container from spec.md §3/§4.4: a
// contiguous, geometrically growing (doubling) slice of T with an
// optional destroy hook run on removal.
package vec

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/nocopy"
)

// Vec is a growable array of T.
type Vec[T any] struct {
	data    []T
	destroy hook.DestroyFn[T]
	a       alloc.Allocator
	nocopy  nocopy.Guard
}

// Option configures a Vec at construction.
type Option[T any] func(*Vec[T])

// WithDestroy binds a destroy hook, fired on Erase, Clear, Destroy, and
// the replace path of Set.
func WithDestroy[T any](f hook.DestroyFn[T]) Option[T] {
	return func(v *Vec[T]) { v.destroy = f }
}

// WithAlloc binds a non-default allocator.
func WithAlloc[T any](a alloc.Allocator) Option[T] {
	return func(v *Vec[T]) { v.a = a }
}

// New constructs an empty, zero-allocation Vec.
func New[T any](opts ...Option[T]) *Vec[T] {
	v := &Vec[T]{a: alloc.Default}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Len reports the number of elements.
func (v *Vec[T]) Len() int { return len(v.data) }

// Cap reports the current backing capacity.
func (v *Vec[T]) Cap() int { return cap(v.data) }

// At returns a pointer to the element at idx.
func (v *Vec[T]) At(idx int) *T { return &v.data[idx] }

// Data returns the live element slice.
func (v *Vec[T]) Data() []T { return v.data }

func (v *Vec[T]) growTo(n int) bool {
	if n <= cap(v.data) {
		return true
	}
	newCap := cap(v.data)
	if newCap < 1 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
	}
	if !v.a.Reserve(newCap - cap(v.data)) {
		return false
	}
	grown := make([]T, len(v.data), newCap)
	copy(grown, v.data)
	if cap(v.data) > 0 {
		v.a.Release(cap(v.data))
	}
	v.data = grown
	return true
}

// Push appends value. Returns false only on allocator failure.
func (v *Vec[T]) Push(value T) bool {
	if !v.growTo(len(v.data) + 1) {
		return false
	}
	v.data = append(v.data, value)
	return true
}

// Insert splices value in at idx (0 <= idx <= Len()).
func (v *Vec[T]) Insert(idx int, value T) bool {
	if !v.growTo(len(v.data) + 1) {
		return false
	}
	var zero T
	v.data = append(v.data, zero)
	copy(v.data[idx+1:], v.data[idx:len(v.data)-1])
	v.data[idx] = value
	return true
}

// Set replaces the element at idx, firing the destroy hook on the
// outgoing value first.
func (v *Vec[T]) Set(idx int, value T) {
	v.destroyAt(idx)
	v.data[idx] = value
}

// Erase removes the element at idx, firing the destroy hook first.
func (v *Vec[T]) Erase(idx int) {
	v.destroyAt(idx)
	copy(v.data[idx:], v.data[idx+1:])
	var zero T
	v.data[len(v.data)-1] = zero
	v.data = v.data[:len(v.data)-1]
}

// Pop removes and returns the last element.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	if len(v.data) == 0 {
		return zero, false
	}
	last := v.data[len(v.data)-1]
	v.data[len(v.data)-1] = zero
	v.data = v.data[:len(v.data)-1]
	return last, true
}

func (v *Vec[T]) destroyAt(idx int) {
	if v.destroy != nil {
		v.destroy(&v.data[idx])
	}
}

// Shrink releases unused backing capacity.
func (v *Vec[T]) Shrink() bool {
	if len(v.data) == cap(v.data) {
		return true
	}
	if len(v.data) == 0 {
		if cap(v.data) > 0 {
			v.a.Release(cap(v.data))
			v.data = nil
		}
		return true
	}
	if !v.a.Reserve(len(v.data)) {
		return false
	}
	shrunk := make([]T, len(v.data))
	copy(shrunk, v.data)
	v.a.Release(cap(v.data))
	v.data = shrunk
	return true
}

// Clear destroys every element but keeps backing storage allocated.
func (v *Vec[T]) Clear() {
	for i := range v.data {
		v.destroyAt(i)
	}
	v.data = v.data[:0]
}

// Destroy clears the Vec and releases its storage.
func (v *Vec[T]) Destroy() {
	v.Clear()
	if cap(v.data) > 0 {
		v.a.Release(cap(v.data))
	}
	v.data = nil
}

// Clone returns an independent Vec with shallow copies of every element.
func (v *Vec[T]) Clone() (*Vec[T], bool) {
	dst := New(WithDestroy(v.destroy), WithAlloc[T](v.a))
	if len(v.data) == 0 {
		return dst, true
	}
	if !dst.growTo(len(v.data)) {
		return nil, false
	}
	dst.data = append(dst.data, v.data...)
	return dst, true
}
