// Package rbtree is the ordered-map/ordered-set core: a red-black tree
// with a single shared sentinel node standing in for every leaf and
// every empty tree's root, per spec.md §4.2. Erasing a node with two
// children moves its in-order successor node itself into the erased
// node's place in the tree (transplant, not copy): no key or value is
// copied between nodes, so a cursor to any node other than the erased
// one, the successor included, still refers to the same key after the
// erase.
package rbtree

import (
	"github.com/gramework/containers/alloc"
	"github.com/gramework/containers/hook"
)

type color bool

const (
	red   color = false
	black color = true
)

// Node is an index into Tree's node slice; the shared sentinel occupies
// index 0, matching the "explicit sentinel node rather than a nil
// pointer" layout spec.md §4.2 calls for so fix-up code never needs a
// nil check.
type Node uint32

const nilNode Node = 0

type node[K comparable, V any] struct {
	key    K
	elem   V
	parent Node
	left   Node
	right  Node
	color  color
	free   bool // true if this slot is on the freelist, not live
}

// Tree is the generic red-black tree core. orderedmap.Map[K,V] wraps
// Tree[K,V]; orderedset.Set[T] wraps Tree[T, struct{}].
type Tree[K comparable, V any] struct {
	nodes   []node[K, V]
	root    Node
	freeTop Node // head of an intrusive freelist threaded through .right
	size    int

	compare     hook.CompareFn[K]
	destroyKey  hook.DestroyFn[K]
	destroyElem hook.DestroyFn[V]
	alloc       alloc.Allocator
}

// Config binds the hooks a Tree needs.
type Config[K comparable, V any] struct {
	Compare     hook.CompareFn[K]
	DestroyKey  hook.DestroyFn[K]
	DestroyElem hook.DestroyFn[V]
	Alloc       alloc.Allocator
}

// New constructs a placeholder tree: a single sentinel node, zero live
// entries, no further allocation until the first insert.
func New[K comparable, V any](cfg Config[K, V]) *Tree[K, V] {
	if cfg.Alloc == nil {
		cfg.Alloc = alloc.Default
	}
	t := &Tree[K, V]{
		compare:     cfg.Compare,
		destroyKey:  cfg.DestroyKey,
		destroyElem: cfg.DestroyElem,
		alloc:       cfg.Alloc,
	}
	t.nodes = make([]node[K, V], 1) // index 0: the sentinel, always black
	t.nodes[0].color = black
	return t
}

func (t *Tree[K, V]) Len() int { return t.size }

func (t *Tree[K, V]) isNil(n Node) bool { return n == nilNode }

func (t *Tree[K, V]) colorOf(n Node) color {
	if t.isNil(n) {
		return black
	}
	return t.nodes[n].color
}

// alloc1 returns a fresh node index, reusing a freed slot when one is
// available, and growing the backing slice otherwise.
func (t *Tree[K, V]) alloc1() (Node, bool) {
	if t.freeTop != nilNode {
		n := t.freeTop
		t.freeTop = t.nodes[n].right
		return n, true
	}
	if !t.alloc.Reserve(1) {
		return nilNode, false
	}
	t.nodes = append(t.nodes, node[K, V]{})
	return Node(len(t.nodes) - 1), true
}

func (t *Tree[K, V]) free1(n Node) {
	t.nodes[n] = node[K, V]{right: t.freeTop, free: true}
	t.freeTop = n
}

// Get returns a pointer to the value stored for key, or (nil, false).
func (t *Tree[K, V]) Get(key K) (*V, bool) {
	n := t.root
	for !t.isNil(n) {
		c := t.compare(key, t.nodes[n].key)
		switch {
		case c < 0:
			n = t.nodes[n].left
		case c > 0:
			n = t.nodes[n].right
		default:
			return &t.nodes[n].elem, true
		}
	}
	return nil, false
}

func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

func (t *Tree[K, V]) leftRotate(x Node) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if !t.isNil(t.nodes[y].left) {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	if t.isNil(t.nodes[x].parent) {
		t.root = y
	} else if x == t.nodes[t.nodes[x].parent].left {
		t.nodes[t.nodes[x].parent].left = y
	} else {
		t.nodes[t.nodes[x].parent].right = y
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

func (t *Tree[K, V]) rightRotate(x Node) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if !t.isNil(t.nodes[y].right) {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	if t.isNil(t.nodes[x].parent) {
		t.root = y
	} else if x == t.nodes[t.nodes[x].parent].right {
		t.nodes[t.nodes[x].parent].right = y
	} else {
		t.nodes[t.nodes[x].parent].left = y
	}
	t.nodes[y].right = x
	t.nodes[x].parent = y
}

// Insert inserts key/value, replacing the existing value if replace is
// true and key is already present. Returns (nil, false) only if the
// bound allocator refuses to grow.
func (t *Tree[K, V]) Insert(key K, value V, replace bool) (*V, bool) {
	var parent Node = nilNode
	cur := t.root
	var lastCmp int
	for !t.isNil(cur) {
		parent = cur
		lastCmp = t.compare(key, t.nodes[cur].key)
		switch {
		case lastCmp < 0:
			cur = t.nodes[cur].left
		case lastCmp > 0:
			cur = t.nodes[cur].right
		default:
			if replace {
				t.destroyAt(cur)
				t.nodes[cur].key = key
				t.nodes[cur].elem = value
			}
			return &t.nodes[cur].elem, true
		}
	}

	n, ok := t.alloc1()
	if !ok {
		return nil, false
	}
	t.nodes[n] = node[K, V]{key: key, elem: value, parent: parent, left: nilNode, right: nilNode, color: red}
	if t.isNil(parent) {
		t.root = n
	} else if lastCmp < 0 {
		t.nodes[parent].left = n
	} else {
		t.nodes[parent].right = n
	}
	t.size++
	t.insertFixup(n)
	return &t.nodes[n].elem, true
}

func (t *Tree[K, V]) insertFixup(z Node) {
	for t.colorOf(t.nodes[z].parent) == red {
		parent := t.nodes[z].parent
		grandparent := t.nodes[parent].parent
		if parent == t.nodes[grandparent].left {
			uncle := t.nodes[grandparent].right
			if t.colorOf(uncle) == red {
				t.nodes[parent].color = black
				t.nodes[uncle].color = black
				t.nodes[grandparent].color = red
				z = grandparent
				continue
			}
			if z == t.nodes[parent].right {
				z = parent
				t.leftRotate(z)
				parent = t.nodes[z].parent
				grandparent = t.nodes[parent].parent
			}
			t.nodes[parent].color = black
			t.nodes[grandparent].color = red
			t.rightRotate(grandparent)
		} else {
			uncle := t.nodes[grandparent].left
			if t.colorOf(uncle) == red {
				t.nodes[parent].color = black
				t.nodes[uncle].color = black
				t.nodes[grandparent].color = red
				z = grandparent
				continue
			}
			if z == t.nodes[parent].left {
				z = parent
				t.rightRotate(z)
				parent = t.nodes[z].parent
				grandparent = t.nodes[parent].parent
			}
			t.nodes[parent].color = black
			t.nodes[grandparent].color = red
			t.leftRotate(grandparent)
		}
	}
	t.nodes[t.root].color = black
}

// transplant replaces the subtree rooted at u with the subtree rooted at
// v, fixing up v's parent link. It does not touch u's own child/key
// fields — the caller that's about to free u owns that.
func (t *Tree[K, V]) transplant(u, v Node) {
	parent := t.nodes[u].parent
	if t.isNil(parent) {
		t.root = v
	} else if u == t.nodes[parent].left {
		t.nodes[parent].left = v
	} else {
		t.nodes[parent].right = v
	}
	t.nodes[v].parent = parent
}

func (t *Tree[K, V]) minimum(n Node) Node {
	for !t.isNil(t.nodes[n].left) {
		n = t.nodes[n].left
	}
	return n
}

func (t *Tree[K, V]) maximum(n Node) Node {
	for !t.isNil(t.nodes[n].right) {
		n = t.nodes[n].right
	}
	return n
}

// Erase removes key, reporting whether it was present.
func (t *Tree[K, V]) Erase(key K) bool {
	n := t.root
	for !t.isNil(n) {
		c := t.compare(key, t.nodes[n].key)
		switch {
		case c < 0:
			n = t.nodes[n].left
		case c > 0:
			n = t.nodes[n].right
		default:
			t.eraseNode(n)
			return true
		}
	}
	return false
}

// EraseNode removes the entry at cursor n, the same operation Erase
// performs after a lookup, exposed directly for cursor-based iteration
// (orderedmap.Map.EraseAt/orderedset.Set.EraseAt).
func (t *Tree[K, V]) EraseNode(n Node) { t.eraseNode(n) }

// eraseNode implements standard CLRS red-black delete: when the target
// has two children, its in-order successor node is unlinked from its old
// position and transplanted into the target's place, and the target's
// node is freed; no key/value is copied. A cursor held on the successor
// (or on any other surviving node) stays valid; only a cursor on the
// erased target is invalidated.
func (t *Tree[K, V]) eraseNode(z Node) {
	t.destroyAt(z)

	y := z
	yOriginalColor := t.colorOf(y)
	var x, xParent Node

	if t.isNil(t.nodes[z].left) {
		x = t.nodes[z].right
		xParent = t.nodes[z].parent
		t.transplant(z, t.nodes[z].right)
	} else if t.isNil(t.nodes[z].right) {
		x = t.nodes[z].left
		xParent = t.nodes[z].parent
		t.transplant(z, t.nodes[z].left)
	} else {
		y = t.minimum(t.nodes[z].right)
		yOriginalColor = t.colorOf(y)
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			xParent = y
		} else {
			xParent = t.nodes[y].parent
			t.transplant(y, t.nodes[y].right)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.transplant(z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].color = t.nodes[z].color
	}

	if yOriginalColor == black {
		t.eraseFixup(x, xParent)
	}
	t.free1(z)
	t.size--
}

func (t *Tree[K, V]) eraseFixup(x, parent Node) {
	for x != t.root && t.colorOf(x) == black {
		if x == t.nodes[parent].left {
			w := t.nodes[parent].right
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[parent].color = red
				t.leftRotate(parent)
				w = t.nodes[parent].right
			}
			if t.colorOf(t.nodes[w].left) == black && t.colorOf(t.nodes[w].right) == black {
				t.nodes[w].color = red
				x = parent
				parent = t.nodes[x].parent
				continue
			}
			if t.colorOf(t.nodes[w].right) == black {
				t.nodes[t.nodes[w].left].color = black
				t.nodes[w].color = red
				t.rightRotate(w)
				w = t.nodes[parent].right
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = black
			t.nodes[t.nodes[w].right].color = black
			t.leftRotate(parent)
			x = t.root
		} else {
			w := t.nodes[parent].left
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[parent].color = red
				t.rightRotate(parent)
				w = t.nodes[parent].left
			}
			if t.colorOf(t.nodes[w].right) == black && t.colorOf(t.nodes[w].left) == black {
				t.nodes[w].color = red
				x = parent
				parent = t.nodes[x].parent
				continue
			}
			if t.colorOf(t.nodes[w].left) == black {
				t.nodes[t.nodes[w].right].color = black
				t.nodes[w].color = red
				t.leftRotate(w)
				w = t.nodes[parent].left
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = black
			t.nodes[t.nodes[w].left].color = black
			t.rightRotate(parent)
			x = t.root
		}
	}
	t.nodes[x].color = black
}

func (t *Tree[K, V]) destroyAt(n Node) {
	if t.destroyKey != nil {
		t.destroyKey(&t.nodes[n].key)
	}
	if t.destroyElem != nil {
		t.destroyElem(&t.nodes[n].elem)
	}
}

// First returns the in-order first node, or Nil() if the tree is empty.
func (t *Tree[K, V]) First() Node {
	if t.isNil(t.root) {
		return nilNode
	}
	return t.minimum(t.root)
}

// Last returns the in-order last node, or Nil() if the tree is empty.
func (t *Tree[K, V]) Last() Node {
	if t.isNil(t.root) {
		return nilNode
	}
	return t.maximum(t.root)
}

// Nil is the cursor value denoting "no node" (end of iteration, or
// not-found).
func (t *Tree[K, V]) Nil() Node { return nilNode }

// Next returns the in-order successor of n.
func (t *Tree[K, V]) Next(n Node) Node {
	if !t.isNil(t.nodes[n].right) {
		return t.minimum(t.nodes[n].right)
	}
	p := t.nodes[n].parent
	for !t.isNil(p) && n == t.nodes[p].right {
		n = p
		p = t.nodes[p].parent
	}
	return p
}

// Prev returns the in-order predecessor of n.
func (t *Tree[K, V]) Prev(n Node) Node {
	if !t.isNil(t.nodes[n].left) {
		return t.maximum(t.nodes[n].left)
	}
	p := t.nodes[n].parent
	for !t.isNil(p) && n == t.nodes[p].left {
		n = p
		p = t.nodes[p].parent
	}
	return p
}

// FirstAtOrAfter returns the first node whose key is >= key (a lower
// bound), or Nil() if every key is smaller — spec.md §4.2's bounded
// range query.
func (t *Tree[K, V]) FirstAtOrAfter(key K) Node {
	n := t.root
	var best Node = nilNode
	for !t.isNil(n) {
		if t.compare(t.nodes[n].key, key) >= 0 {
			best = n
			n = t.nodes[n].left
		} else {
			n = t.nodes[n].right
		}
	}
	return best
}

// LastAtOrBefore returns the last node whose key is <= key (an upper
// bound), or Nil() if every key is larger.
func (t *Tree[K, V]) LastAtOrBefore(key K) Node {
	n := t.root
	var best Node = nilNode
	for !t.isNil(n) {
		if t.compare(t.nodes[n].key, key) <= 0 {
			best = n
			n = t.nodes[n].right
		} else {
			n = t.nodes[n].left
		}
	}
	return best
}

// Key and Elem dereference a cursor from First/Last/Next/Prev.
func (t *Tree[K, V]) Key(n Node) K   { return t.nodes[n].key }
func (t *Tree[K, V]) Elem(n Node) *V { return &t.nodes[n].elem }

// Clear destroys every entry but keeps the node slice allocated.
func (t *Tree[K, V]) Clear() {
	t.inorderDo(t.root, func(n Node) { t.destroyAt(n) })
	t.nodes = t.nodes[:1]
	t.root = nilNode
	t.freeTop = nilNode
	t.size = 0
}

func (t *Tree[K, V]) inorderDo(n Node, f func(Node)) {
	if t.isNil(n) {
		return
	}
	t.inorderDo(t.nodes[n].left, f)
	f(n)
	t.inorderDo(t.nodes[n].right, f)
}

// Destroy clears the tree and releases its storage.
func (t *Tree[K, V]) Destroy() {
	reserved := len(t.nodes) - 1
	t.Clear()
	if reserved > 0 {
		t.alloc.Release(reserved)
	}
	t.nodes = t.nodes[:1]
}

// Clone returns an independent tree with the same key/value pairs,
// rebuilt iteratively via ordinary inserts rather than by copying node
// indices, so the clone's node slice is dense and its own freelist is
// empty — mirroring spec.md §4.2's note that Clone rebuilds structure
// rather than duplicating internal layout verbatim.
func (t *Tree[K, V]) Clone() (*Tree[K, V], bool) {
	dst := New(Config[K, V]{
		Compare:     t.compare,
		DestroyKey:  t.destroyKey,
		DestroyElem: t.destroyElem,
		Alloc:       t.alloc,
	})
	for n := t.First(); !t.isNil(n); n = t.Next(n) {
		if _, ok := dst.Insert(t.nodes[n].key, t.nodes[n].elem, false); !ok {
			return nil, false
		}
	}
	return dst, true
}
