package match

import (
	"strings"
	"testing"

	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/token"
)

func buildDict(t *testing.T, pairs map[string]string) *dict.Dict[string] {
	t.Helper()
	d := dict.New[string](token.Identity{})
	for k, v := range pairs {
		if err := d.Insert(k, v); err != nil {
			t.Fatalf("insert %q: %v", k, err)
		}
	}
	return d
}

func translateString(t *testing.T, d *dict.Dict[string], input string) string {
	t.Helper()
	it := Translate(d.Trie(), token.Identity{}.Tokenize([]rune(input)))
	var sb strings.Builder
	for {
		tok, ok := it.Next()
		if !ok {
			break
		}
		sb.WriteString(tok)
	}
	return sb.String()
}

func TestTranslatePassThroughOnEmptyTrie(t *testing.T) {
	d := dict.New[string](token.Identity{})
	got := translateString(t, d, "hello world")
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestTranslatePassThroughWhenNoMatch(t *testing.T) {
	d := buildDict(t, map[string]string{"zzz": "Q"})
	got := translateString(t, d, "hello world")
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

// Seed scenario 1.
func TestSeedScenario1(t *testing.T) {
	d := buildDict(t, map[string]string{
		"asd": "111", "hjk": "222", "dfgh": "3333", "ghjkl;": "44444", "jkl": "!",
	})
	got := translateString(t, d, "erasdfghjkll")
	want := "er111fg222ll"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// Seed scenario 2.
func TestSeedScenario2(t *testing.T) {
	d := buildDict(t, map[string]string{
		"asd": "111", "hjk": "222", "dfgh": "3333", "ghjkl;": "44444", "jkl": "!",
	})
	got := translateString(t, d, "erasdfghjkl;jkl;")
	want := "er111f44444!;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// Seed scenario 3.
func TestSeedScenario3(t *testing.T) {
	d := buildDict(t, map[string]string{
		"asd": "111", "hjk": "222", "dfgh": "3333", "ghjkl;": "44444", "jkl": "!",
	})
	got := translateString(t, d, "erassdfghjkl;jkl;")
	want := "erass3333!;!;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// Seed scenario 4.
func TestSeedScenario4(t *testing.T) {
	d := buildDict(t, map[string]string{
		"asd": "111", "hjk": "222", "dfgh": "3333", "ghjkl;": "44444", "jkl": "!",
	})
	got := translateString(t, d, "ersdfghjkll")
	want := "ers3333!l"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// Seed scenario 5.
func TestSeedScenario5(t *testing.T) {
	d := buildDict(t, map[string]string{
		"aa": "2", "aaa": "3", "aaaaaaaaaaaaaaaaaaaaaa": "~", "bbbb": "!", "aaaaaaa": "7",
	})
	input := strings.Repeat("a", 12) + "b" + strings.Repeat("a", 28)
	got := translateString(t, d, input)
	want := "732b~33"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func findAllStrings(t *testing.T, d *dict.Dict[string], input string, overlapping bool) []string {
	t.Helper()
	it := FindAll(d.Trie(), token.Identity{}.Tokenize([]rune(input)), overlapping)
	var out []string
	for {
		tok, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Seed scenario 6.
func TestSeedScenario6LongestLeftmost(t *testing.T) {
	keys := []string{"mad", "gas", "scar", "madagascar", "scare", "care", "car", "career", "error", "err", "are"}
	d := dict.New[string](token.Identity{})
	for _, k := range keys {
		_ = d.Insert(k, "")
	}
	got := findAllStrings(t, d, "madagascareerror", false)
	want := []string{"madagascar", "error"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestSeedScenario6Overlapping(t *testing.T) {
	keys := []string{"mad", "gas", "scar", "madagascar", "scare", "care", "car", "career", "error", "err", "are"}
	d := dict.New[string](token.Identity{})
	for _, k := range keys {
		_ = d.Insert(k, "")
	}
	got := findAllStrings(t, d, "madagascareerror", true)
	want := []string{"mad", "gas", "madagascar", "scar", "car", "scare", "care", "are", "career", "err", "error"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d got %v want %v", i, got, want)
		}
	}
}

func TestInvariantNonOverlap(t *testing.T) {
	d := buildDict(t, map[string]string{"ab": "X", "bc": "Y"})
	// "abc": leftmost match is "ab" (pos 0-1); "bc" starting at 1 overlaps
	// and must be killed, so only "ab" fires and "c" passes through.
	got := translateString(t, d, "abc")
	if got != "Xc" {
		t.Fatalf("got %q want %q", got, "Xc")
	}
}

func TestSingleTokenPattern(t *testing.T) {
	d := buildDict(t, map[string]string{"x": "Y"})
	got := translateString(t, d, "axbxc")
	if got != "aYbYc" {
		t.Fatalf("got %q", got)
	}
}
