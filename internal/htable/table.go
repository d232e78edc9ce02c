package htable

import (
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/kirillDanshin/dlog"

	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
)

// Debug gates dlog tracing of rehash/grow/shrink events, the same
// always-cheap-when-off style the teacher's m.go/store/cache used dlog in.
var Debug = false

func trace(format string, args ...interface{}) {
	if Debug {
		dlog.D(format, args...)
	}
}

const initialCapacity = 8

// maxGrowRetries bounds the "double capacity and retry" loop spec.md
// §4.1 describes for displacement exhaustion, so a pathological hash
// function can't spin forever.
const maxGrowRetries = 24

var errNeedsBiggerTable = errors.New("htable: displacement exhausted or allocator denied growth")

type bucket[K comparable, V any] struct {
	key  K
	elem V
}

// Table is the generic hash table core. hashmap.Map[K,V] wraps
// Table[K,V] directly; hashset.Set[T] wraps Table[T, struct{}], which
// collapses the bucket layout to just the key the way spec.md §3
// describes for sets, for free, via Go's zero-size struct{}.
type Table[K comparable, V any] struct {
	buckets []bucket[K, V]
	meta    []meta
	size    int
	capMask uint64

	hash        hook.HashFn[K]
	equal       hook.EqualFn[K]
	destroyKey  hook.DestroyFn[K]
	destroyElem hook.DestroyFn[V]
	maxLoad     float64
	alloc       alloc.Allocator
}

// Config binds the capability hooks and allocator a Table needs. Hash
// and Equal are required; the rest are optional.
type Config[K comparable, V any] struct {
	Hash        hook.HashFn[K]
	Equal       hook.EqualFn[K]
	DestroyKey  hook.DestroyFn[K]
	DestroyElem hook.DestroyFn[V]
	MaxLoad     float64
	Alloc       alloc.Allocator
}

// New constructs a placeholder (zero-allocation) table, matching spec.md
// §3: "a freshly constructed container requires zero allocation and all
// read operations are safe".
func New[K comparable, V any](cfg Config[K, V]) *Table[K, V] {
	if cfg.MaxLoad <= 0 || cfg.MaxLoad >= 1 {
		cfg.MaxLoad = hook.DefaultMaxLoad
	}
	if cfg.Alloc == nil {
		cfg.Alloc = alloc.Default
	}
	return &Table[K, V]{
		hash:        cfg.Hash,
		equal:       cfg.Equal,
		destroyKey:  cfg.DestroyKey,
		destroyElem: cfg.DestroyElem,
		maxLoad:     cfg.MaxLoad,
		alloc:       cfg.Alloc,
	}
}

// Len reports the number of live entries.
func (t *Table[K, V]) Len() int { return t.size }

// Capacity reports the current bucket count (0 for a placeholder table).
func (t *Table[K, V]) Capacity() int { return len(t.buckets) }

// Get performs spec.md §4.1's get(key): hash, mask to the home bucket,
// bail out immediately if the home bucket isn't the start of a chain,
// otherwise walk the chain comparing cached hash fragments before calling
// the equality hook. It writes nothing.
func (t *Table[K, V]) Get(key K) (*V, bool) {
	if len(t.meta) == 0 {
		return nil, false
	}
	h := t.hash(key)
	home := h & t.capMask
	if !t.meta[home].isHome() {
		return nil, false
	}
	frag := fragmentOf(h)
	cur := home
	for {
		cm := t.meta[cur]
		if cm.fragment() == frag && t.equal(t.buckets[cur].key, key) {
			return &t.buckets[cur].elem, true
		}
		d := cm.displacement()
		if d == DisplacementLimit {
			return nil, false
		}
		cur = probeFrom(home, d, t.capMask)
	}
}

// Contains is Get without reifying a pointer to the element, matching
// the STL-style existence check the original exercises
// (original_source/tests/tests_against_stl.cpp).
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

type insertResult int

const (
	resultDone insertResult = iota
	resultRetry
)

// Insert implements spec.md §4.1's insert(key, value, replace) →
// pointer-or-null, including the rehash-and-retry loop on load-factor or
// displacement-limit pressure. It returns (nil, false) only when a growth
// step fails on every attempt up to maxGrowRetries, either because the
// bound allocator refuses it or because reinsertion still exhausts the
// displacement limit.
func (t *Table[K, V]) Insert(key K, value V, replace bool) (*V, bool) {
	for {
		if len(t.meta) == 0 {
			if !t.rehashTo(initialCapacity) {
				return nil, false
			}
		}
		h := t.hash(key)
		ptr, status := t.insertOnce(h, key, value, replace, true)
		if status == resultDone {
			return ptr, true
		}
		if !t.rehashTo(len(t.buckets) * 2) {
			return nil, false
		}
	}
}

// insertOnce attempts a single insert at the table's current capacity.
// checkLoad is false during rehash reinsertion, where the destination
// capacity was already sized for every live element and the load-factor
// check must be skipped per spec.md §4.1 ("reinsert ... using an insert
// path that skips the duplicate-key check and load-factor check").
func (t *Table[K, V]) insertOnce(h uint64, key K, value V, replace bool, checkLoad bool) (*V, insertResult) {
	capMask := t.capMask
	home := h & capMask
	frag := fragmentOf(h)
	m := t.meta[home]

	if !m.isHome() {
		if checkLoad && !t.hasRoom() {
			return nil, resultRetry
		}
		if !m.isEmpty() {
			if !t.evict(home) {
				return nil, resultRetry
			}
		}
		t.buckets[home] = bucket[K, V]{key: key, elem: value}
		t.meta[home] = makeMeta(frag, true, DisplacementLimit)
		t.size++
		return &t.buckets[home].elem, resultDone
	}

	cur := home
	for {
		cm := t.meta[cur]
		if cm.fragment() == frag && t.equal(t.buckets[cur].key, key) {
			if replace {
				t.destroyAt(cur)
				t.buckets[cur] = bucket[K, V]{key: key, elem: value}
				t.meta[cur] = makeMeta(frag, cm.isHome(), cm.displacement())
			}
			return &t.buckets[cur].elem, resultDone
		}
		d := cm.displacement()
		if d == DisplacementLimit {
			break
		}
		cur = probeFrom(home, d, capMask)
	}

	if checkLoad && !t.hasRoom() {
		return nil, resultRetry
	}
	newDisp, newIdx, ok := t.findEmptySlot(home, capMask)
	if !ok {
		return nil, resultRetry
	}

	// Walk from home again to find the chain predecessor whose
	// next-displacement exceeds newDisp, keeping the chain sorted by
	// displacement (spec.md §4.1: "Link the new bucket in at that point
	// so chains stay sorted by displacement").
	pred := home
	for {
		pm := t.meta[pred]
		pd := pm.displacement()
		if pd == DisplacementLimit || pd > newDisp {
			break
		}
		pred = probeFrom(home, pd, capMask)
	}
	predMeta := t.meta[pred]
	t.buckets[newIdx] = bucket[K, V]{key: key, elem: value}
	t.meta[newIdx] = makeMeta(frag, false, predMeta.displacement())
	t.meta[pred] = makeMeta(predMeta.fragment(), predMeta.isHome(), newDisp)
	t.size++
	return &t.buckets[newIdx].elem, resultDone
}

func (t *Table[K, V]) hasRoom() bool {
	return float64(t.size+1) <= float64(len(t.buckets))*t.maxLoad
}

// findEmptySlot scans quadratically from home for the first empty
// bucket, per spec.md §4.1 ("scan for the earliest empty bucket
// reachable from B by quadratic probing").
func (t *Table[K, V]) findEmptySlot(home uint64, capMask uint64) (uint16, uint64, bool) {
	for n := uint16(1); n < DisplacementLimit; n++ {
		idx := probeFrom(home, n, capMask)
		if t.meta[idx].isEmpty() {
			return n, idx, true
		}
	}
	return 0, 0, false
}

// evict implements spec.md §4.1's eviction(bucket B): pos holds a key
// that does not belong there (its "is home" bit is unset). Relocate it to
// a fresh slot reachable from its true home, relinking its chain in
// place, so the caller can claim pos as a fresh home bucket.
func (t *Table[K, V]) evict(pos uint64) bool {
	capMask := t.capMask
	victim := t.buckets[pos]
	victimMeta := t.meta[pos]
	trueHome := t.hash(victim.key) & capMask

	pred := trueHome
	for {
		pm := t.meta[pred]
		d := pm.displacement()
		if d == DisplacementLimit {
			return false // invariant violation: pos unreachable from its true home
		}
		next := probeFrom(trueHome, d, capMask)
		if next == pos {
			break
		}
		pred = next
	}

	newDisp, newIdx, ok := t.findEmptySlot(trueHome, capMask)
	if !ok {
		return false
	}

	t.buckets[newIdx] = victim
	t.meta[newIdx] = makeMeta(victimMeta.fragment(), victimMeta.isHome(), victimMeta.displacement())

	predMeta := t.meta[pred]
	t.meta[pred] = makeMeta(predMeta.fragment(), predMeta.isHome(), newDisp)

	t.meta[pos] = emptyMeta
	return true
}

// Erase implements spec.md §4.1's erase(key), covering all three cases
// (lone occupant, chain tail, chain interior) described there.
func (t *Table[K, V]) Erase(key K) bool {
	if len(t.meta) == 0 {
		return false
	}
	h := t.hash(key)
	home := h & t.capMask
	if !t.meta[home].isHome() {
		return false
	}
	frag := fragmentOf(h)

	var pred uint64
	hasPred := false
	cur := home
	for {
		cm := t.meta[cur]
		if cm.fragment() == frag && t.equal(t.buckets[cur].key, key) {
			t.eraseAt(cur, home, pred, hasPred)
			return true
		}
		d := cm.displacement()
		if d == DisplacementLimit {
			return false
		}
		pred = cur
		hasPred = true
		cur = probeFrom(home, d, t.capMask)
	}
}

// eraseAt removes the occupant at cur, whose chain home is home and
// whose immediate chain predecessor is pred (meaningful only if
// hasPred).
func (t *Table[K, V]) eraseAt(cur, home, pred uint64, hasPred bool) {
	capMask := t.capMask
	curMeta := t.meta[cur]
	t.destroyAt(cur)

	if curMeta.displacement() == DisplacementLimit {
		// Case 1/2: cur is the chain's tail (lone occupant if !hasPred).
		if hasPred {
			pm := t.meta[pred]
			t.meta[pred] = makeMeta(pm.fragment(), pm.isHome(), DisplacementLimit)
		}
		t.meta[cur] = emptyMeta
		t.size--
		return
	}

	// Case 3: cur is interior. Find the chain's tail L and L's immediate
	// predecessor lpred (which may be cur itself), then move L's
	// contents into cur and splice L out.
	lpred := cur
	lpredDisp := curMeta.displacement()
	lcur := probeFrom(home, lpredDisp, capMask)
	for t.meta[lcur].displacement() != DisplacementLimit {
		lpred = lcur
		lpredDisp = t.meta[lcur].displacement()
		lcur = probeFrom(home, lpredDisp, capMask)
	}

	lMeta := t.meta[lcur]
	t.buckets[cur] = t.buckets[lcur]
	if lpred == cur {
		t.meta[cur] = makeMeta(lMeta.fragment(), curMeta.isHome(), DisplacementLimit)
	} else {
		t.meta[cur] = makeMeta(lMeta.fragment(), curMeta.isHome(), curMeta.displacement())
		pm := t.meta[lpred]
		t.meta[lpred] = makeMeta(pm.fragment(), pm.isHome(), DisplacementLimit)
	}
	t.meta[lcur] = emptyMeta
	t.size--
}

// EraseAt erases the occupied bucket at physical index idx (as returned
// by First/Next) and reports whether the caller's iterator should
// advance before its next step, or stay to re-examine idx because case 3
// relocated a not-yet-visited entry there. See spec.md §4.1's erase
// discussion of the interior case.
func (t *Table[K, V]) EraseAt(idx uint64) bool {
	key := t.buckets[idx].key
	h := t.hash(key)
	home := h & t.capMask
	capMask := t.capMask

	var pred uint64
	hasPred := false
	cur := home
	for cur != idx {
		pred = cur
		hasPred = true
		cur = probeFrom(home, t.meta[cur].displacement(), capMask)
	}

	interior := t.meta[idx].displacement() != DisplacementLimit
	var movedFrom uint64
	if interior {
		lcur := probeFrom(home, t.meta[idx].displacement(), capMask)
		for t.meta[lcur].displacement() != DisplacementLimit {
			lcur = probeFrom(home, t.meta[lcur].displacement(), capMask)
		}
		movedFrom = lcur
	}

	t.eraseAt(idx, home, pred, hasPred)

	if !interior {
		return true
	}
	return movedFrom < idx
}

func (t *Table[K, V]) destroyAt(idx uint64) {
	if t.destroyKey != nil {
		t.destroyKey(&t.buckets[idx].key)
	}
	if t.destroyElem != nil {
		t.destroyElem(&t.buckets[idx].elem)
	}
}

// Reserve implements spec.md §4.1's reserve(n): ensure capacity such that
// n <= capacity*maxLoad, rounding up to a power of two with an 8-bucket
// floor.
func (t *Table[K, V]) Reserve(n int) bool {
	want := requiredCapacity(n, t.maxLoad)
	if want <= len(t.buckets) {
		return true
	}
	return t.rehashTo(want)
}

// Shrink implements spec.md §4.1's shrink(): pick the smallest adequate
// power-of-two capacity, or free the allocation entirely and return to
// the placeholder state if the table is empty.
func (t *Table[K, V]) Shrink() bool {
	if t.size == 0 {
		if len(t.buckets) > 0 {
			t.alloc.Release(len(t.buckets))
			t.buckets = nil
			t.meta = nil
			t.capMask = 0
			trace("htable: shrink to placeholder")
		}
		return true
	}
	want := requiredCapacity(t.size, t.maxLoad)
	if want >= len(t.buckets) {
		return true
	}
	return t.rehashTo(want)
}

func requiredCapacity(n int, maxLoad float64) int {
	capacity := initialCapacity
	for float64(n) > float64(capacity)*maxLoad {
		capacity *= 2
	}
	return capacity
}

// rehashTo reinserts every live entry into a table of newCapacity,
// doubling and retrying on displacement exhaustion per spec.md §4.1's
// failure semantics. The retry count is bounded using
// github.com/cenkalti/backoff/v4 with a zero interval — there is no
// wall-clock wait involved, only the attempt-counting backoff.Retry
// already provides.
func (t *Table[K, V]) rehashTo(newCapacity int) bool {
	if newCapacity < initialCapacity {
		newCapacity = initialCapacity
	}
	attempt := newCapacity
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(0), maxGrowRetries)
	err := backoff.Retry(func() error {
		if t.tryRehash(attempt) {
			return nil
		}
		trace("htable: rehash to %d failed, doubling", attempt)
		attempt *= 2
		return errNeedsBiggerTable
	}, b)
	return err == nil
}

func (t *Table[K, V]) tryRehash(newCapacity int) bool {
	if !t.alloc.Reserve(newCapacity) {
		return false
	}

	dst := &Table[K, V]{
		buckets: make([]bucket[K, V], newCapacity),
		meta:    make([]meta, newCapacity+4),
		capMask: uint64(newCapacity - 1),
		hash:    t.hash,
		equal:   t.equal,
		maxLoad: t.maxLoad,
		alloc:   t.alloc,
	}
	dst.meta[newCapacity] = 1

	oldCapacity := len(t.buckets)
	for i := 0; i < oldCapacity; i++ {
		if t.meta[i].isEmpty() {
			continue
		}
		h := t.hash(t.buckets[i].key)
		if _, status := dst.insertOnce(h, t.buckets[i].key, t.buckets[i].elem, false, false); status != resultDone {
			t.alloc.Release(newCapacity)
			return false
		}
	}

	if oldCapacity > 0 {
		t.alloc.Release(oldCapacity)
	}
	t.buckets = dst.buckets
	t.meta = dst.meta
	t.capMask = dst.capMask
	t.size = oldCapacity // corrected below; every old live bucket was reinserted
	t.size = t.countLive(oldCapacity)
	trace("htable: rehashed to capacity %d (size %d)", newCapacity, t.size)
	return true
}

func (t *Table[K, V]) countLive(_ int) int {
	// size is exactly the number of entries reinserted, which equals the
	// pre-rehash size; recomputed defensively rather than trusted blindly.
	n := 0
	for i := range t.meta[:len(t.buckets)] {
		if !t.meta[i].isEmpty() {
			n++
		}
	}
	return n
}

// Clear destroys every live element but keeps the current backing
// storage allocated.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		if !t.meta[i].isEmpty() {
			t.destroyAt(uint64(i))
			t.meta[i] = emptyMeta
		}
	}
	t.size = 0
}

// Destroy clears the table and releases its backing storage back to the
// allocator, returning it to the placeholder state. Calling Destroy on an
// already-placeholder table is a no-op, matching spec.md §8's
// "cleanup(c); init(c) ... repeated cleanup on a placeholder is a no-op".
func (t *Table[K, V]) Destroy() {
	t.Clear()
	if len(t.buckets) > 0 {
		t.alloc.Release(len(t.buckets))
		t.buckets = nil
		t.meta = nil
		t.capMask = 0
	}
}

// Clone produces an independent table with its own storage, holding
// shallow copies of every live (key, element) pair — per spec.md §5, the
// caller is responsible for any deep copy an owned resource needs. On
// allocation failure partway through, the partial clone is discarded
// without invoking destroy hooks, since it never took ownership of the
// copied payloads (spec.md §4.2 states the analogous rule for the tree
// core's Clone).
func (t *Table[K, V]) Clone() (*Table[K, V], bool) {
	dst := New(Config[K, V]{
		Hash:        t.hash,
		Equal:       t.equal,
		DestroyKey:  t.destroyKey,
		DestroyElem: t.destroyElem,
		MaxLoad:     t.maxLoad,
		Alloc:       t.alloc,
	})
	if t.size == 0 {
		return dst, true
	}
	if !dst.Reserve(t.size) {
		return nil, false
	}
	for i := range t.buckets {
		if t.meta[i].isEmpty() {
			continue
		}
		if _, ok := dst.Insert(t.buckets[i].key, t.buckets[i].elem, false); !ok {
			dst.buckets, dst.meta = nil, nil
			return nil, false
		}
	}
	return dst, true
}

// First returns the first occupied bucket's cursor, or End() if the
// table is empty.
func (t *Table[K, V]) First() uint64 { return t.advanceFrom(0) }

// End returns the cursor one past the last bucket.
func (t *Table[K, V]) End() uint64 { return uint64(len(t.buckets)) }

// Next returns the next occupied bucket's cursor after idx, or End().
func (t *Table[K, V]) Next(idx uint64) uint64 { return t.advanceFrom(idx + 1) }

// Key and Elem dereference a cursor returned by First/Next.
func (t *Table[K, V]) Key(idx uint64) K    { return t.buckets[idx].key }
func (t *Table[K, V]) Elem(idx uint64) *V  { return &t.buckets[idx].elem }

// advanceFrom returns the first occupied bucket at or after idx, scanning
// the metadata array four words (64 bits) at a time, per spec.md §4.1's
// iteration description; the four trailing stopper words (the first set
// to 1, the rest to 0) guarantee the scan terminates at capacity without
// a per-step bounds check.
func (t *Table[K, V]) advanceFrom(idx uint64) uint64 {
	capacity := uint64(len(t.buckets))
	if capacity == 0 {
		return 0
	}
	i := idx
	for i < capacity && i&3 != 0 {
		if !t.meta[i].isEmpty() {
			return i
		}
		i++
	}
	for {
		if uint64(t.meta[i])|uint64(t.meta[i+1])|uint64(t.meta[i+2])|uint64(t.meta[i+3]) != 0 {
			for k := uint64(0); k < 4; k++ {
				if !t.meta[i+k].isEmpty() {
					return i + k
				}
			}
		}
		i += 4
	}
}
