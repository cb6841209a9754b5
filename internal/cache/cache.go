// Package cache memoizes expensive dictionary-derived artifacts (compiled
// regex strings, hydrated dictionaries) behind a content hash of the pattern pairs
// that produced them, so a server handling repeated requests against an
// unchanged dictionary does not redo the work per request.
package cache

import (
	"sort"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/trieplace/trieplace/internal/dict"
)

// DigestPairs returns a content hash of pairs, stable under reordering:
// callers pass dict.Iter()'s output, which is already sorted, but this
// sorts defensively so the digest never depends on caller iteration order.
func DigestPairs(pairs []dict.KV[string]) uint64 {
	sorted := make([]dict.KV[string], len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	h := xxhash.New()
	for _, kv := range sorted {
		_, _ = h.WriteString(kv.Key)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(kv.Value)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// RegexCache memoizes compiled regex strings by dictionary digest.
type RegexCache struct {
	lru *lru.Cache
}

// NewRegexCache returns a RegexCache holding up to size entries.
func NewRegexCache(size int) (*RegexCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &RegexCache{lru: c}, nil
}

// Get returns the cached pattern for digest, if present.
func (c *RegexCache) Get(digest uint64) (string, bool) {
	v, ok := c.lru.Get(digest)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Put stores pattern under digest.
func (c *RegexCache) Put(digest uint64, pattern string) {
	c.lru.Add(digest, pattern)
}

// TrieCache memoizes a hydrated *dict.Dict by dictionary digest. It is
// generic over the replacement value type so it can cache any Dict, not
// just string-valued ones.
type TrieCache[V any] struct {
	lru *lru.Cache
}

// NewTrieCache returns a TrieCache holding up to size entries.
func NewTrieCache[V any](size int) (*TrieCache[V], error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &TrieCache[V]{lru: c}, nil
}

// Get returns the cached dictionary for digest, if present.
func (c *TrieCache[V]) Get(digest uint64) (*dict.Dict[V], bool) {
	v, ok := c.lru.Get(digest)
	if !ok {
		return nil, false
	}
	return v.(*dict.Dict[V]), true
}

// Put stores d under digest.
func (c *TrieCache[V]) Put(digest uint64, d *dict.Dict[V]) {
	c.lru.Add(digest, d)
}
