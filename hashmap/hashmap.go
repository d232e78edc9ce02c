// Package hashmap is the generic, associative hash table container spec.md
// §3 describes: unordered key/value pairs, amortized O(1) lookup/insert
// via internal/htable's open-addressing core. Where the original typed
// each instantiation through a macro, Map[K, V] is an ordinary generic
// type.
package hashmap

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/htable"
	"github.com/gramework/containers/internal/metrics"
	"github.com/gramework/containers/internal/nocopy"
)

// Map is a hash map from K to V. The zero value is NOT ready to use —
// construct one with New so the required hash/equal hooks are bound;
// this mirrors spec.md §3's placeholder state, which still requires an
// init call before population, just without a heap allocation.
type Map[K comparable, V any] struct {
	t       *htable.Table[K, V]
	metrics *metrics.Collector
	nocopy  nocopy.Guard
}

// New constructs an empty Map. Hash is required: bind it with
// hook.WithHash (hook.HashInt and hook.HashString serve integer and
// string keys). New selects no default hash on its own; a Map built
// without one panics with hook.ErrNoHash the first time it hashes a key.
func New[K comparable, V any](opts ...hook.Option[K]) *Map[K, V] {
	h := hook.New(opts...)
	equal, ok := h.EqualOrFromCompare()
	if !ok {
		equal = defaultEqual[K]()
	}
	if h.Hash == nil {
		h.Hash = defaultHash[K]()
	}
	a := h.Alloc
	if a == nil {
		a = alloc.Default
	}
	m := &Map[K, V]{
		t: htable.New(htable.Config[K, V]{
			Hash:       h.Hash,
			Equal:      equal,
			DestroyKey: h.Destroy,
			MaxLoad:    h.MaxLoad,
			Alloc:      a,
		}),
	}
	if h.Metrics != nil {
		m.metrics = metrics.New(h.Metrics.Namespace, h.Metrics.Name,
			func() float64 { return float64(m.Len()) },
			func() float64 { return float64(m.Capacity()) },
		)
	}
	return m
}

// Metrics returns the Collector registered via hook.WithMetrics, or nil
// if none was requested. The caller registers it with whatever
// prometheus.Registerer it uses; New never registers it automatically.
func (m *Map[K, V]) Metrics() *metrics.Collector { return m.metrics }

// defaultHash is bound when no hash hook was given; it panics with
// hook.ErrNoHash when called. defaultEqual is bound when neither an Equal
// nor a Compare hook was given; it compares keys with ==.
func defaultHash[K comparable]() hook.HashFn[K] {
	return func(K) uint64 { panic(hook.ErrNoHash) }
}

func defaultEqual[K comparable]() hook.EqualFn[K] {
	return func(a, b K) bool { return a == b }
}

// Len reports the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Capacity reports the current bucket count.
func (m *Map[K, V]) Capacity() int { return m.t.Capacity() }

// Get returns a pointer to the value stored for key, or (nil, false).
// The pointer is invalidated by any later Insert/Delete that triggers a
// rehash, per spec.md §4.1.
func (m *Map[K, V]) Get(key K) (*V, bool) { return m.t.Get(key) }

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool { return m.t.Contains(key) }

// Put inserts key/value, replacing any existing value for key, and
// returns a pointer to the stored value.
func (m *Map[K, V]) Put(key K, value V) (*V, bool) {
	return m.t.Insert(key, value, true)
}

// PutIfAbsent inserts key/value only if key is not already present.
// When key already exists, it returns a pointer to the existing value.
func (m *Map[K, V]) PutIfAbsent(key K, value V) (*V, bool) {
	return m.t.Insert(key, value, false)
}

// Delete removes key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool { return m.t.Erase(key) }

// Reserve ensures capacity for at least n entries without triggering a
// mid-insert rehash, per spec.md §4.1.
func (m *Map[K, V]) Reserve(n int) bool { return m.t.Reserve(n) }

// Shrink releases unused backing storage.
func (m *Map[K, V]) Shrink() bool { return m.t.Shrink() }

// Clear destroys every entry but keeps storage allocated.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// Destroy clears the map and releases its storage, returning it to the
// placeholder state.
func (m *Map[K, V]) Destroy() { m.t.Destroy() }

// Clone returns an independent map holding shallow copies of every entry.
func (m *Map[K, V]) Clone() (*Map[K, V], bool) {
	t, ok := m.t.Clone()
	if !ok {
		return nil, false
	}
	return &Map[K, V]{t: t}, true
}

// cursor is an opaque iteration position into a Map, returned by First
// and Next.
type cursor = uint64

// First returns the cursor of the first entry, or End() if empty.
func (m *Map[K, V]) First() cursor { return m.t.First() }

// End returns the sentinel cursor one past the last entry.
func (m *Map[K, V]) End() cursor { return m.t.End() }

// Next returns the cursor of the next entry after cur, or End().
func (m *Map[K, V]) Next(cur cursor) cursor { return m.t.Next(cur) }

// KeyAt and ValueAt dereference a cursor from First/Next.
func (m *Map[K, V]) KeyAt(cur cursor) K      { return m.t.Key(cur) }
func (m *Map[K, V]) ValueAt(cur cursor) *V   { return m.t.Elem(cur) }

// EraseAt removes the entry at cur and reports whether the caller should
// advance to Next before continuing iteration, or stay at cur because a
// relocated, not-yet-visited entry now occupies it. See spec.md §4.1's
// discussion of erase during iteration.
func (m *Map[K, V]) EraseAt(cur cursor) bool { return m.t.EraseAt(cur) }

// Range iterates every key/value pair in unspecified order, stopping
// early if yield returns false. This is a supplemental feature — Go's
// range-over-func iterators have no equivalent in the original macro
// library, which only exposed cursor-style for/next loops.
func (m *Map[K, V]) Range(yield func(K, V) bool) {
	for c := m.First(); c != m.End(); c = m.Next(c) {
		if !yield(m.KeyAt(c), *m.ValueAt(c)) {
			return
		}
	}
}
