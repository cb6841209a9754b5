package regexgen

import (
	"regexp"
	"testing"

	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/token"
)

func buildDict(t *testing.T, keys ...string) *dict.Dict[string] {
	t.Helper()
	d := dict.New[string](token.Identity{})
	for _, k := range keys {
		if err := d.Insert(k, ""); err != nil {
			t.Fatalf("insert %q: %v", k, err)
		}
	}
	return d
}

// checkAgreement compiles tr to a regex, anchors it for whole-string
// matching, and verifies it accepts exactly the given keys (not the
// non-keys), realizing invariant 8 ("regex agreement") from spec.md 8.
func checkAgreement(t *testing.T, d *dict.Dict[string], keys, nonKeys []string) {
	t.Helper()
	pattern := Compile(d.Trie(), DefaultOptions())
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		t.Fatalf("compiled pattern %q is not valid regexp: %v", pattern, err)
	}
	for _, k := range keys {
		if !re.MatchString(k) {
			t.Errorf("pattern %q should match key %q", pattern, k)
		}
	}
	for _, k := range nonKeys {
		if re.MatchString(k) {
			t.Errorf("pattern %q should not match %q", pattern, k)
		}
	}
}

func TestRegexAgreementBasic(t *testing.T) {
	d := buildDict(t, "mad", "gas", "madagascar", "car")
	checkAgreement(t, d,
		[]string{"mad", "gas", "madagascar", "car"},
		[]string{"ma", "madagasca", "ca", "carr", ""},
	)
}

func TestRegexAgreementSingleChildInlinesWithoutGroup(t *testing.T) {
	d := buildDict(t, "cat")
	pattern := Compile(d.Trie(), DefaultOptions())
	if pattern == "" {
		t.Fatalf("expected non-empty pattern")
	}
	// No branch point anywhere, so the compiled pattern should never need
	// a non-capturing group.
	if regexp.MustCompile(`\(\?:`).MatchString(pattern) {
		t.Fatalf("expected no non-capturing groups in a single-key trie, got %q", pattern)
	}
	checkAgreement(t, d, []string{"cat"}, []string{"ca", "cats", ""})
}

func TestRegexAgreementPrefixKeyIsOptional(t *testing.T) {
	d := buildDict(t, "ab", "abc")
	checkAgreement(t, d, []string{"ab", "abc"}, []string{"a", "abcd"})
}

func TestRegexBracketClassCollapse(t *testing.T) {
	d := buildDict(t, "a", "b", "c")
	pattern := Compile(d.Trie(), DefaultOptions())
	if pattern != "[abc]" {
		t.Fatalf("expected bracket class collapse, got %q", pattern)
	}
	checkAgreement(t, d, []string{"a", "b", "c"}, []string{"d", "ab", ""})
}

func TestRegexEmptyTrie(t *testing.T) {
	d := dict.New[string](token.Identity{})
	pattern := Compile(d.Trie(), DefaultOptions())
	if pattern != "" {
		t.Fatalf("expected empty pattern for empty trie, got %q", pattern)
	}
}

func TestRegexEscapesMetacharacters(t *testing.T) {
	d := buildDict(t, "a.b", "a+c")
	checkAgreement(t, d, []string{"a.b", "a+c"}, []string{"axb", "aXb", "a+c+"})
}

func TestRegexFixSpacesRewrite(t *testing.T) {
	d := buildDict(t, "a b")
	pattern := Compile(d.Trie(), DefaultOptions())
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	if !re.MatchString("a b") || !re.MatchString("a\tb") {
		t.Fatalf("expected \\s rewrite to match any whitespace, pattern=%q", pattern)
	}
}
