// Package strbuf is the dynamic string container from spec.md §3: a
// growable, null-terminated character buffer over internal/strcore, plus
// its structured formatter, exposed as String[C] for any supported
// character width.
package strbuf

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/internal/nocopy"
	"github.com/gramework/containers/internal/strcore"
)

// Arg and the numeric mode setters are strcore's, re-exported here so
// callers never import internal/strcore directly.
type Arg = strcore.Arg

func StringArg(s string) Arg   { return strcore.StringArg(s) }
func IntArg(v int64) Arg       { return strcore.IntArg(v) }
func FloatArg(v float64) Arg   { return strcore.FloatArg(v) }

// String is a growable character sequence over character width C.
type String[C strcore.Char] struct {
	b      *strcore.Buffer[C]
	nocopy nocopy.Guard
}

// New constructs an empty string, optionally bound to a, a non-default
// allocator.
func New[C strcore.Char](a alloc.Allocator) *String[C] {
	return &String[C]{b: strcore.New[C](a)}
}

// Len reports the number of characters, excluding the terminator.
func (s *String[C]) Len() int { return s.b.Len() }

// Cap reports the current character capacity.
func (s *String[C]) Cap() int { return s.b.Cap() }

// Data returns the live character slice.
func (s *String[C]) Data() []C { return s.b.Data() }

// Push appends a single character.
func (s *String[C]) Push(c C) bool { return s.b.Push(c) }

// PushAll appends every character of chars.
func (s *String[C]) PushAll(chars []C) bool { return s.b.PushAll(chars) }

// Insert splices chars in at index idx.
func (s *String[C]) Insert(idx int, chars []C) bool { return s.b.Insert(idx, chars) }

// Erase removes the half-open range [lo, hi).
func (s *String[C]) Erase(lo, hi int) { s.b.Erase(lo, hi) }

// Resize sets the logical length, padding with fill if growing.
func (s *String[C]) Resize(n int, fill C) bool { return s.b.Resize(n, fill) }

// Shrink releases unused backing storage.
func (s *String[C]) Shrink() bool { return s.b.Shrink() }

// Clear empties the string but keeps storage allocated.
func (s *String[C]) Clear() { s.b.Clear() }

// Destroy clears the string and releases its storage.
func (s *String[C]) Destroy() { s.b.Destroy() }

// Clone returns an independent string with the same contents.
func (s *String[C]) Clone() (*String[C], bool) {
	b, ok := s.b.Clone()
	if !ok {
		return nil, false
	}
	return &String[C]{b: b}, true
}

// PushFmt appends every arg, in order, to the end of the string — string
// args copied verbatim, numeric args rendered per their current mode
// (dec/hex/oct/sci/shortest). There is no template: this is direct
// concatenation, per spec.md §4.3's push_fmt. Up to strcore.MaxArgs Args
// are honored; extras are dropped.
func (s *String[C]) PushFmt(args ...Arg) bool {
	return strcore.PushFmt(s.b, args...)
}

// InsertFmt splices every arg, in order, into the string starting at
// index idx, per spec.md §4.3's insert_fmt.
func (s *String[C]) InsertFmt(idx int, args ...Arg) bool {
	return strcore.InsertFmt(s.b, idx, args...)
}

// Byte is the conventional 1-byte-character instantiation.
type Byte = String[byte]

// NewByte constructs an empty byte string with the default allocator.
func NewByte() *Byte { return New[byte](nil) }
