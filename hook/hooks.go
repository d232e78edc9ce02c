// Package hook defines the per-type capability hooks that spec.md §6 binds
// at container instantiation: destroy, three-way compare, equality, hash,
// and max-load. The source registers these through a macro/_Generic
// dispatch scheme; spec.md §9 Design Notes says a systems-language port
// should instead let the language's own generics bind them, so here they
// are ordinary functional options applied to a generic Hooks[K] value.
package hook

import (
	"errors"

	"github.com/gramework/containers/alloc"
)

// MetricsBinding names the Prometheus namespace/name pair a container
// should register a metrics.Collector under. Left unset, no Collector is
// constructed, keeping instrumentation fully opt-in per
// internal/metrics' package doc.
type MetricsBinding struct {
	Namespace string
	Name      string
}

// ErrNoHash is the value hashmap and hashset panic with when they need
// to hash a key and no hash function was bound.
var ErrNoHash = errors.New("hook: no hash function bound for this key type")

// ErrNoCompare is the value orderedmap and orderedset panic with when
// they need to compare keys and no three-way compare was bound.
var ErrNoCompare = errors.New("hook: no three-way compare function bound for this key type")

// DefaultMaxLoad is spec.md §6's default max-load factor for hash
// map/set, applied when no Option overrides it.
const DefaultMaxLoad = 0.9

// Hash computes a 64-bit digest of a key. Required by hashmap/hashset.
type HashFn[K any] func(K) uint64

// Compare returns negative, zero, or positive as a < b, a == b, a > b.
// Required by orderedmap/orderedset; used by hashmap/hashset as an
// equality fallback when no Equal hook is bound.
type CompareFn[K any] func(a, b K) int

// Equal reports whether two keys are equivalent. Used by hashmap/hashset.
type EqualFn[K any] func(a, b K) bool

// Destroy releases resources owned by an element or key just before its
// slot is reused or freed. Invoked on erase/clear/cleanup, never on a
// successful lookup.
type DestroyFn[T any] func(*T)

// Hooks bundles the capability hooks bound to a single type parameter.
// A container is built from one Hooks[K] for its key type (the element
// type, for sets). The map constructors take no hooks for the value
// type, so no destroy hook runs on map values.
type Hooks[K any] struct {
	Hash    HashFn[K]
	Compare CompareFn[K]
	Equal   EqualFn[K]
	Destroy DestroyFn[K]
	MaxLoad float64
	Alloc   alloc.Allocator
	Metrics *MetricsBinding
}

// Option mutates a Hooks[K] under construction.
type Option[K any] func(*Hooks[K])

// WithHash binds the hash hook.
func WithHash[K any](f HashFn[K]) Option[K] {
	return func(h *Hooks[K]) { h.Hash = f }
}

// WithCompare binds the three-way compare hook.
func WithCompare[K any](f CompareFn[K]) Option[K] {
	return func(h *Hooks[K]) { h.Compare = f }
}

// WithEqual binds the equality hook directly, bypassing the
// compare-derived fallback.
func WithEqual[K any](f EqualFn[K]) Option[K] {
	return func(h *Hooks[K]) { h.Equal = f }
}

// WithDestroy binds the destroy hook.
func WithDestroy[K any](f DestroyFn[K]) Option[K] {
	return func(h *Hooks[K]) { h.Destroy = f }
}

// WithMaxLoad overrides DefaultMaxLoad. Panics if not in (0, 1), matching
// spec.md §6's documented domain for the hook.
func WithMaxLoad[K any](f float64) Option[K] {
	if f <= 0 || f >= 1 {
		panic("hook: MaxLoad must be in (0, 1)")
	}
	return func(h *Hooks[K]) { h.MaxLoad = f }
}

// WithAlloc binds a non-default allocator, letting a caller exercise the
// fallible-allocation paths spec.md §7 requires (alloc.Limited, in
// tests) instead of the process-wide unlimited allocator.
func WithAlloc[K any](a alloc.Allocator) Option[K] {
	return func(h *Hooks[K]) { h.Alloc = a }
}

// WithMetrics requests that the container register a Prometheus
// collector under namespace/name, polling its own Len/Capacity. Opt-in
// per-container; nothing is registered against any global registry.
func WithMetrics[K any](namespace, name string) Option[K] {
	return func(h *Hooks[K]) { h.Metrics = &MetricsBinding{Namespace: namespace, Name: name} }
}

// New builds a Hooks[K] from defaults plus the given options. Callers
// that want the library's built-in defaults for integers or strings
// should start from Ints[K]() or Strings() rather than New, and layer
// options on top.
func New[K any](opts ...Option[K]) Hooks[K] {
	h := Hooks[K]{MaxLoad: DefaultMaxLoad}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// EqualOrFromCompare returns the bound Equal hook, or one derived from
// Compare if only that was bound — matching spec.md §6 ("equal ... used
// by hash map/set; defaults derived from the compare hook").
func (h Hooks[K]) EqualOrFromCompare() (EqualFn[K], bool) {
	if h.Equal != nil {
		return h.Equal, true
	}
	if h.Compare != nil {
		cmp := h.Compare
		return func(a, b K) bool { return cmp(a, b) == 0 }, true
	}
	return nil, false
}
