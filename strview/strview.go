// Package strview is the heterogeneous string-lookup shim from spec.md
// §4.3's "Heterogeneous lookup shim" design note: a way to probe a
// string-keyed hashmap/hashset/orderedmap/orderedset with a raw []byte
// without first allocating a string copy of it.
//
// Borrow and Own are kept as two separate functions, per spec.md §9's
// design note, so the allocating path is always visible at the call
// site rather than hidden behind an implicit conversion: Borrow performs
// Go's usual zero-copy []byte-to-string reinterpretation (valid only
// because every lookup-only container method treats its key argument as
// read-only and keeps no reference to it beyond the call), and Own
// allocates a real, independently-owned copy safe to store as a map key.
package strview

import (
	"errors"
	"unsafe"
)

// ErrEmptyKey is returned by callers that choose to treat a zero-length
// key as invalid; strview itself imposes no such restriction.
var ErrEmptyKey = errors.New("strview: empty key not permitted")

// Borrow reinterprets b as a string with zero allocation and zero copy,
// for use as a lookup-only key (Get/Contains) against a string-keyed
// hashmap/hashset/orderedmap/orderedset. The caller must not mutate b
// for as long as the returned string might still be read — which, for a
// single Get/Contains call, is only for the duration of that call.
// Never store the result of Borrow as a map's own key; use Own instead.
func Borrow(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Own copies b into a freshly allocated string, safe to retain as a
// map's own key past the lifetime of the original slice — the insertion
// path, for Put/Add calls.
func Own(b []byte) string {
	return string(b)
}
