package trie

import "github.com/trieplace/trieplace/internal/token"

// Trie owns a root node and the tokenizer used to turn string keys into
// token paths. Keys are always string-typed tokens in this port (both
// shipped tokenizers emit strings); the Node type above stays generic so a
// caller with a non-string alphabet can still reuse it directly.
type Trie[V any] struct {
	root      *Node[string, V]
	Tokenizer token.Tokenizer
}

// New builds an empty trie keyed by t.
func New[V any](t token.Tokenizer) *Trie[V] {
	return &Trie[V]{root: &Node[string, V]{}, Tokenizer: t}
}

// Root returns the trie's root node. The root never carries a replacement.
func (t *Trie[V]) Root() *Node[string, V] {
	return t.root
}

// TokenizeKey materializes key through the trie's tokenizer.
func (t *Trie[V]) TokenizeKey(key string) []string {
	return token.TokenizeAll(t.Tokenizer, key)
}

// Walk descends from the root along toks, stopping at the first missing
// child. It returns the deepest node reached, how many tokens were
// consumed, and whether the full path existed.
func (t *Trie[V]) Walk(toks []string) (node *Node[string, V], depth int, complete bool) {
	n := t.root
	for i, tok := range toks {
		child, ok := n.Descend(tok)
		if !ok {
			return n, i, false
		}
		n = child
	}
	return n, len(toks), true
}

// EnsurePath descends from the root along toks, creating nodes as needed,
// and returns the terminal node.
func (t *Trie[V]) EnsurePath(toks []string) *Node[string, V] {
	n := t.root
	for _, tok := range toks {
		n = n.EnsureChild(tok)
	}
	return n
}

// WalkPath is like Walk but returns every node visited, root first, for
// callers (pop/delete) that need to prune ancestors read-only-first.
func (t *Trie[V]) WalkPath(toks []string) (path []*Node[string, V], complete bool) {
	path = make([]*Node[string, V], 0, len(toks)+1)
	n := t.root
	path = append(path, n)
	for _, tok := range toks {
		child, ok := n.Descend(tok)
		if !ok {
			return path, false
		}
		path = append(path, child)
		n = child
	}
	return path, true
}
