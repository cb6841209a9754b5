// Package trie implements the token-keyed prefix tree that backs the
// dictionary, the streaming matcher, and the regex compiler.
//
// Grounded on itgcl-ahocorasick's node struct (child map[rune]*node plus
// sidecar output/index fields), generalized from rune keys to generic
// ordered keys and from a boolean "is this an output node" flag to an
// explicit Optional replacement slot, per the "sentinel for absent
// replacement" design note: a node without a pattern ending on it and a
// node whose pattern maps to an empty-string replacement must be
// distinguishable, so the sidecar is a sum type, not a bare map lookup.
package trie

import (
	"cmp"
	"slices"
)

// Optional distinguishes "no replacement stored" from "replacement stored,
// and it happens to be the zero value" (e.g. an empty string).
type Optional[V any] struct {
	Value   V
	Present bool
}

// Node is a single trie node: a key-to-child map, plus the sidecar
// replacement. The two roles are deliberately kept apart rather than
// collapsed into one container.
type Node[K cmp.Ordered, V any] struct {
	children    map[K]*Node[K, V]
	replacement Optional[V]
}

// Descend returns the child reached by tok, if any. O(1) average.
func (n *Node[K, V]) Descend(tok K) (*Node[K, V], bool) {
	if n.children == nil {
		return nil, false
	}
	c, ok := n.children[tok]
	return c, ok
}

// EnsureChild returns the child reached by tok, creating it if absent.
func (n *Node[K, V]) EnsureChild(tok K) *Node[K, V] {
	if n.children == nil {
		n.children = make(map[K]*Node[K, V])
	}
	c, ok := n.children[tok]
	if !ok {
		c = &Node[K, V]{}
		n.children[tok] = c
	}
	return c
}

// RemoveChild detaches tok from n, used by pruning during pop/delete.
func (n *Node[K, V]) RemoveChild(tok K) {
	delete(n.children, tok)
}

// HasReplacement reports whether a pattern terminates at n.
func (n *Node[K, V]) HasReplacement() bool {
	return n.replacement.Present
}

// Replacement returns the stored replacement and whether one is present.
func (n *Node[K, V]) Replacement() (V, bool) {
	return n.replacement.Value, n.replacement.Present
}

// SetReplacement stores v as n's replacement, overwriting any prior value.
func (n *Node[K, V]) SetReplacement(v V) {
	n.replacement = Optional[V]{Value: v, Present: true}
}

// ClearReplacement removes n's replacement, if any.
func (n *Node[K, V]) ClearReplacement() {
	var zero Optional[V]
	n.replacement = zero
}

// ChildCount returns the number of live children.
func (n *Node[K, V]) ChildCount() int {
	return len(n.children)
}

// ChildrenKeys returns child keys in ascending order, for deterministic
// iteration and regex compilation.
func (n *Node[K, V]) ChildrenKeys() []K {
	keys := make([]K, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
