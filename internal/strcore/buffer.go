// Package strcore is strbuf.String's core: a growable, always
// null-terminated character buffer parameterized over character width,
// per spec.md §4.3. Growth is geometric (double the capacity, minimum 2
// characters) the same way vec.Vec and internal/htable's bucket array
// grow, just measured in characters instead of elements or buckets.
package strcore

import "github.com/gramework/containers/alloc"

// Char is the set of character widths the buffer supports: byte
// strings, UTF-16-ish code units, and UTF-32/rune-width storage.
type Char interface {
	~uint8 | ~uint16 | ~uint32
}

// Buffer is a growable sequence of C, always kept null-terminated (a
// zero-value C appended past the logical length) so a caller working
// with Data can treat it like a C string without a separate copy.
type Buffer[C Char] struct {
	data  []C
	count int
	alloc alloc.Allocator
}

// New constructs an empty, zero-allocation buffer.
func New[C Char](a alloc.Allocator) *Buffer[C] {
	if a == nil {
		a = alloc.Default
	}
	return &Buffer[C]{alloc: a}
}

// Len reports the number of characters, excluding the trailing
// terminator.
func (b *Buffer[C]) Len() int { return b.count }

// Cap reports the current character capacity, excluding the terminator
// slot.
func (b *Buffer[C]) Cap() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data) - 1
}

// Data returns the live character slice (length Len, not including the
// terminator, which always follows it in the backing array).
func (b *Buffer[C]) Data() []C { return b.data[:b.count] }

// growTo ensures capacity for at least n characters plus the terminator,
// doubling (minimum 2) from the current capacity.
func (b *Buffer[C]) growTo(n int) bool {
	if n <= b.Cap() {
		return true
	}
	newCap := b.Cap()
	if newCap < 2 {
		newCap = 2
	}
	for newCap < n {
		newCap *= 2
	}
	if !b.alloc.Reserve(newCap + 1 - len(b.data)) {
		return false
	}
	grown := make([]C, newCap+1)
	copy(grown, b.data)
	if len(b.data) > 0 {
		b.alloc.Release(len(b.data))
	}
	b.data = grown
	return true
}

func (b *Buffer[C]) terminate() {
	b.data[b.count] = 0
}

// Push appends c. Returns false only on allocator failure.
func (b *Buffer[C]) Push(c C) bool {
	if !b.growTo(b.count + 1) {
		return false
	}
	b.data[b.count] = c
	b.count++
	b.terminate()
	return true
}

// PushAll appends every character of s.
func (b *Buffer[C]) PushAll(s []C) bool {
	if !b.growTo(b.count + len(s)) {
		return false
	}
	copy(b.data[b.count:], s)
	b.count += len(s)
	b.terminate()
	return true
}

// Insert splices s into the buffer at index idx (0 <= idx <= Len()).
func (b *Buffer[C]) Insert(idx int, s []C) bool {
	if !b.growTo(b.count + len(s)) {
		return false
	}
	copy(b.data[idx+len(s):b.count+len(s)], b.data[idx:b.count])
	copy(b.data[idx:idx+len(s)], s)
	b.count += len(s)
	b.terminate()
	return true
}

// Erase removes the half-open range [lo, hi).
func (b *Buffer[C]) Erase(lo, hi int) {
	copy(b.data[lo:], b.data[hi:b.count])
	b.count -= hi - lo
	b.terminate()
}

// Resize sets the logical length to n, padding with fill if growing.
func (b *Buffer[C]) Resize(n int, fill C) bool {
	if n <= b.count {
		b.count = n
		b.terminate()
		return true
	}
	if !b.growTo(n) {
		return false
	}
	for i := b.count; i < n; i++ {
		b.data[i] = fill
	}
	b.count = n
	b.terminate()
	return true
}

// Shrink releases any backing storage beyond what Len currently needs.
func (b *Buffer[C]) Shrink() bool {
	if b.count == 0 {
		if len(b.data) > 0 {
			b.alloc.Release(len(b.data))
			b.data = nil
		}
		return true
	}
	if b.count == b.Cap() {
		return true
	}
	if !b.alloc.Reserve(b.count + 1) {
		return false
	}
	shrunk := make([]C, b.count+1)
	copy(shrunk, b.data[:b.count])
	b.alloc.Release(len(b.data))
	b.data = shrunk
	b.terminate()
	return true
}

// Clear empties the buffer but keeps its backing storage.
func (b *Buffer[C]) Clear() {
	b.count = 0
	if len(b.data) > 0 {
		b.terminate()
	}
}

// Destroy clears the buffer and releases its storage.
func (b *Buffer[C]) Destroy() {
	if len(b.data) > 0 {
		b.alloc.Release(len(b.data))
	}
	b.data = nil
	b.count = 0
}

// Clone returns an independent buffer with the same contents.
func (b *Buffer[C]) Clone() (*Buffer[C], bool) {
	dst := New[C](b.alloc)
	if b.count == 0 {
		return dst, true
	}
	if !dst.PushAll(b.Data()) {
		return nil, false
	}
	return dst, true
}
