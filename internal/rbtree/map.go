// Package rbtree is the persistent key/value store backing every piece of
// mutable-looking state the engine actually threads by value: Substitution
// (engine/substitution.go), Queue (engine/queue.go), and OccurrenceIndex
// (engine/occurrence.go). A case-split frame snapshot (engine/casesplit.go's
// snapshot) is just copying the three structures built on these maps, which
// is only O(1) because
// Set never mutates a node that an older snapshot might still be reading —
// it appends a new one and relinks the path down to it, leaving every
// previous root valid forever.
package rbtree

import "cmp"

type color int8

const (
	red color = iota
	black
)

// Map is a persistent (copy-on-write) map: Set never mutates an existing
// node, it appends new nodes and returns a tree whose root points through
// them, so every Map value taken before a Set remains a valid, unaffected
// view. Nodes live in a flat slice rather than as individually heap-allocated
// structs with pointers, which is what makes Snapshot — severing a Map from
// the slice it was built from — a cheap slice re-slice instead of a deep
// copy. The insert/rebalance algorithm is Okasaki's persistent red-black
// tree (Purely Functional Data Structures); the growth-limited SafeSet this
// engine never calls is correspondingly not carried — this package keeps
// exactly the operations the constraint solver's three backing stores
// actually call: Set, Get, ForEach, Snapshot, Len.
type Map[K cmp.Ordered, V any] struct {
	nodes []Node[K, V]
	root  int
}

// Len reports how many nodes this tree's history has ever allocated, not
// the number of live keys — every Set that overwrites an existing key still
// appends a node down the rebalanced path. Diagnostic use only.
func (t *Map[K, V]) Len() int {
	return len(t.nodes)
}

// Snapshot returns a copy of t that shares the existing node array but is
// severed from it at the current length (a full slice expression with
// cap==len). Node entries are never mutated in place, only appended, so the
// shared prefix stays valid forever; forcing cap==len means the next Set on
// either the snapshot or the original reallocates rather than racing to
// append into the same backing array slot. This is what gives the tree its
// O(1) branch-point snapshot despite being backed by a flat slice.
func (t *Map[K, V]) Snapshot() Map[K, V] {
	return Map[K, V]{
		nodes: t.nodes[:len(t.nodes):len(t.nodes)],
		root:  t.root,
	}
}

// Set stores a pair of key and value, growing the node slice as needed.
func (t *Map[K, V]) Set(key K, value V) {
	elem := elem[K, V]{key: key, value: value}
	id := insert(t, t.root, elem)

	if n := t.nodes[id]; n.color == red {
		id = addNode(t, Node[K, V]{
			color: black,
			left:  n.left,
			elem:  n.elem,
			right: n.right,
		})
	}

	t.root = id
}

// Get returns the associated value for a key.
func (t *Map[K, V]) Get(key K) (V, bool) {
	var zero V

	if len(t.nodes) == 0 {
		return zero, false
	}

	id := t.root
	for {
		if id < 0 {
			return zero, false
		}

		var (
			n = t.nodes[id]
			e = n.elem
		)
		switch {
		case key < e.key:
			id = n.left
		case key > e.key:
			id = n.right
		default:
			return e.value, true
		}
	}
}

// ForEach walks the tree in ascending key order, calling f for every
// key/value pair. Persistent maps have no cheap "delete", so callers that
// need pop-min-style access (the constraint queue) rebuild from a ForEach
// walk rather than mutate the tree in place.
func (t *Map[K, V]) ForEach(f func(key K, value V)) {
	if len(t.nodes) == 0 {
		return
	}
	var walk func(id int)
	walk = func(id int) {
		if id < 0 {
			return
		}
		n := t.nodes[id]
		walk(n.left)
		f(n.elem.key, n.elem.value)
		walk(n.right)
	}
	walk(t.root)
}

// Node is a node of binary search tree.
// It resides in Map as an element of the Node slice.
// Exposed just for size reference.
type Node[K cmp.Ordered, V any] struct {
	color       color
	left, right int
	elem        elem[K, V]
}

type elem[K cmp.Ordered, V any] struct {
	key   K
	value V
}

func insert[K cmp.Ordered, V any](tree *Map[K, V], id int, elem elem[K, V]) int {
	if id <= 0 {
		return addNode(tree, Node[K, V]{
			color: red,
			left:  -1,
			elem:  elem,
			right: -1,
		})
	}
	switch b := tree.nodes[id]; {
	case elem.key < b.elem.key:
		l := insert(tree, b.left, elem)
		id := addNode(tree, Node[K, V]{
			color: b.color,
			left:  l,
			elem:  b.elem,
			right: b.right,
		})
		return balance(tree, id)
	case elem.key > b.elem.key:
		r := insert(tree, b.right, elem)
		id := addNode(tree, Node[K, V]{
			color: b.color,
			left:  b.left,
			elem:  b.elem,
			right: r,
		})
		return balance(tree, id)
	default:
		return addNode(tree, Node[K, V]{
			color: b.color,
			left:  b.left,
			elem:  elem,
			right: b.right,
		})
	}
}

func balance[K cmp.Ordered, V any](tree *Map[K, V], id int) int {
	var (
		a, b, c, d int
		x, y, z    elem[K, V]
	)
	switch node := tree.nodes[id]; {
	case node.left >= 0 && tree.nodes[node.left].color == red:
		switch l := tree.nodes[node.left]; {
		case l.left >= 0 && tree.nodes[l.left].color == red:
			ll := tree.nodes[l.left]
			a = ll.left
			b = ll.right
			c = l.right
			d = node.right
			x = ll.elem
			y = l.elem
			z = node.elem
		case l.right >= 0 && tree.nodes[l.right].color == red:
			lr := tree.nodes[l.right]
			a = l.left
			b = lr.left
			c = lr.right
			d = node.right
			x = l.elem
			y = lr.elem
			z = node.elem
		default:
			return id
		}
	case node.right >= 0 && tree.nodes[node.right].color == red:
		switch r := tree.nodes[node.right]; {
		case r.left >= 0 && tree.nodes[r.left].color == red:
			rl := tree.nodes[r.left]
			a = node.left
			b = rl.left
			c = rl.right
			d = r.right
			x = node.elem
			y = rl.elem
			z = r.elem
		case r.right >= 0 && tree.nodes[r.right].color == red:
			rr := tree.nodes[r.right]
			a = node.left
			b = r.left
			c = rr.left
			d = rr.right
			x = node.elem
			y = r.elem
			z = rr.elem
		default:
			return id
		}
	default:
		return id
	}
	l := addNode(tree, Node[K, V]{
		color: black,
		left:  a,
		elem:  x,
		right: b,
	})
	r := addNode(tree, Node[K, V]{
		color: black,
		left:  c,
		elem:  z,
		right: d,
	})
	return addNode(tree, Node[K, V]{
		color: red,
		left:  l,
		elem:  y,
		right: r,
	})
}

// addNode appends node and returns its index. The tree never reuses or
// mutates an existing slot, which is the entire persistence guarantee: any
// Map value taken before this call still resolves through its old root to
// the old nodes, untouched by the append.
func addNode[K cmp.Ordered, V any](tree *Map[K, V], node Node[K, V]) int {
	tree.nodes = append(tree.nodes, node)
	return len(tree.nodes) - 1
}
