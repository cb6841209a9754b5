// Package dict implements the mapping operations (insert, lookup, delete,
// iterate, range-delete, bulk load) over a trie.Trie: component C of the
// engine.
package dict

import (
	"sort"
	"sync"

	"github.com/trieplace/trieplace/internal/token"
	"github.com/trieplace/trieplace/internal/trie"
)

// progressInterval is how often BulkUpdate reports progress.
const progressInterval = 50_000

// Dict is a concurrency-safe dictionary of pattern -> replacement pairs
// backed by a trie. All keys are materialized through the trie's
// tokenizer before descent, so two keys that tokenize identically collide.
type Dict[V any] struct {
	mu sync.RWMutex
	t  *trie.Trie[V]
}

// New returns an empty dictionary tokenized by tok.
func New[V any](tok token.Tokenizer) *Dict[V] {
	return &Dict[V]{t: trie.New[V](tok)}
}

// Trie exposes the backing trie read-only, for the matcher, find-all, and
// regex compiler, none of which may mutate it while in use.
func (d *Dict[V]) Trie() *trie.Trie[V] {
	return d.t
}

// Contains reports whether key terminates at a node with a replacement.
func (d *Dict[V]) Contains(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	node, _, complete := d.t.Walk(d.t.TokenizeKey(key))
	return complete && node.HasReplacement()
}

// Get returns the replacement stored at key, or ErrNotFound.
func (d *Dict[V]) Get(key string) (V, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	node, _, complete := d.t.Walk(d.t.TokenizeKey(key))
	if !complete || !node.HasReplacement() {
		var zero V
		return zero, notFoundErr(key)
	}
	v, _ := node.Replacement()
	return v, nil
}

// Insert creates the path for key as needed and overwrites any prior
// replacement at the terminal node. Empty patterns are rejected.
func (d *Dict[V]) Insert(key string, value V) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	toks := d.t.TokenizeKey(key)
	if len(toks) == 0 {
		return invalidInputErr(key)
	}
	d.t.EnsurePath(toks).SetReplacement(value)
	return nil
}

// SetDefault inserts value at key only if no replacement is present there
// yet, and returns the replacement now stored (new or pre-existing).
func (d *Dict[V]) SetDefault(key string, value V) (V, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	toks := d.t.TokenizeKey(key)
	if len(toks) == 0 {
		var zero V
		return zero, invalidInputErr(key)
	}
	node := d.t.EnsurePath(toks)
	if !node.HasReplacement() {
		node.SetReplacement(value)
	}
	v, _ := node.Replacement()
	return v, nil
}

// Pop removes the replacement at key and prunes now-childless,
// replacement-less ancestors. Descent is read-only until the key is
// confirmed present, so a miss never creates nodes (the source's pop used
// set_default-style descent, which mutated the trie on a miss; this is the
// latent bug the port deliberately does not replicate).
func (d *Dict[V]) Pop(key string) (V, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	toks := d.t.TokenizeKey(key)
	return d.popLocked(toks, key)
}

// PopFirst removes the lexicographically first key in the dictionary.
func (d *Dict[V]) PopFirst() (string, V, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pairs := d.collectLocked()
	if len(pairs) == 0 {
		var zero V
		return "", zero, notFoundErr("")
	}
	first := pairs[0]
	v, err := d.popLocked(d.t.TokenizeKey(first.Key), first.Key)
	return first.Key, v, err
}

func (d *Dict[V]) popLocked(toks []string, key string) (V, error) {
	path, complete := d.t.WalkPath(toks)
	terminal := path[len(path)-1]
	if !complete || !terminal.HasReplacement() {
		var zero V
		return zero, notFoundErr(key)
	}
	v, _ := terminal.Replacement()
	terminal.ClearReplacement()
	prune(path, toks)
	return v, nil
}

// prune walks back toward the root, deleting each node that has no
// replacement and no remaining children, stopping at the first node that
// violates either condition.
func prune[V any](path []*trie.Node[string, V], toks []string) {
	for i := len(path) - 1; i >= 1; i-- {
		n := path[i]
		if n.HasReplacement() || n.ChildCount() > 0 {
			return
		}
		path[i-1].RemoveChild(toks[i-1])
	}
}

// KV is one (key, value) pair yielded by Iter and consumed by BulkUpdate.
type KV[V any] struct {
	Key   string
	Value V
}

// Iter returns every (key, value) pair in ascending order of the
// reconstructed key string, per the External Interfaces contract.
func (d *Dict[V]) Iter() []KV[V] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.collectLocked()
}

func (d *Dict[V]) collectLocked() []KV[V] {
	var out []KV[V]
	var walk func(n *trie.Node[string, V], prefix string)
	walk = func(n *trie.Node[string, V], prefix string) {
		if v, ok := n.Replacement(); ok {
			out = append(out, KV[V]{Key: prefix, Value: v})
		}
		for _, tok := range n.ChildrenKeys() {
			child, _ := n.Descend(tok)
			walk(child, prefix+tok)
		}
	}
	walk(d.t.Root(), "")
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// RangeDelete removes every key k with lo <= k < hi (string comparison on
// the reconstructed key) and returns how many keys were removed.
func (d *Dict[V]) RangeDelete(lo, hi string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	pairs := d.collectLocked()
	n := 0
	for _, p := range pairs {
		if p.Key >= lo && p.Key < hi {
			if _, err := d.popLocked(d.t.TokenizeKey(p.Key), p.Key); err == nil {
				n++
			}
		}
	}
	return n
}

// BulkUpdate repeatedly inserts pairs, calling progress every 50,000
// items (and once more at the end if the total isn't a multiple of that).
func (d *Dict[V]) BulkUpdate(pairs []KV[V], progress func(done int)) error {
	for i, p := range pairs {
		if err := d.Insert(p.Key, p.Value); err != nil {
			return err
		}
		if progress != nil && (i+1)%progressInterval == 0 {
			progress(i + 1)
		}
	}
	if progress != nil && len(pairs)%progressInterval != 0 {
		progress(len(pairs))
	}
	return nil
}
