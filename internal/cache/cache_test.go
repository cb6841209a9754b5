package cache

import (
	"testing"

	"github.com/trieplace/trieplace/internal/dict"
)

func TestDigestPairsStableUnderReordering(t *testing.T) {
	a := []dict.KV[string]{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	b := []dict.KV[string]{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}
	if DigestPairs(a) != DigestPairs(b) {
		t.Fatalf("digest should not depend on input order")
	}
}

func TestDigestPairsChangesWithContent(t *testing.T) {
	a := []dict.KV[string]{{Key: "a", Value: "1"}}
	b := []dict.KV[string]{{Key: "a", Value: "2"}}
	if DigestPairs(a) == DigestPairs(b) {
		t.Fatalf("digest should change when a value changes")
	}
}

func TestRegexCacheGetPut(t *testing.T) {
	c, err := NewRegexCache(8)
	if err != nil {
		t.Fatalf("NewRegexCache: %v", err)
	}
	if _, ok := c.Get(1); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Put(1, "a|b")
	got, ok := c.Get(1)
	if !ok || got != "a|b" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestTrieCacheGetPut(t *testing.T) {
	c, err := NewTrieCache[string](8)
	if err != nil {
		t.Fatalf("NewTrieCache: %v", err)
	}
	d := dict.New[string](nil)
	c.Put(42, d)
	got, ok := c.Get(42)
	if !ok || got != d {
		t.Fatalf("expected to get back the same dict instance")
	}
}
