// Package match implements the streaming longest-leftmost matcher
// (component D) and the find-all enumerator (component E).
//
// The bookkeeping shape — an ordered buffer of not-yet-emitted input plus
// two position-keyed tables for in-progress and completed matches — is
// modeled on other_examples' buildkite-agent replacer.go, which solves the
// same "stream in, revise tentative output, stream out" problem for secret
// redaction. That implementation buffers bytes and tracks partial/complete
// byte ranges; this one buffers tokens and tracks trie descent per live
// start position, per spec.md's step algorithm.
package match

import (
	"github.com/trieplace/trieplace/internal/token"
	"github.com/trieplace/trieplace/internal/trie"
)

type bufItem struct {
	pos int
	tok string
}

type matchRec struct {
	end         int
	replacement string
}

// Translator is the lazy transducer returned by Translate: a pull iterator
// over the rewritten output token stream.
type Translator struct {
	tr    *trie.Trie[string]
	input token.Iterator

	buffer  []bufItem
	spans   map[int]*trie.Node[string, string]
	matches map[int]matchRec
	nextPos int

	output    []string
	outIdx    int
	inputDone bool
	flushed   bool
}

// Translate rewrites input so that every maximal, leftmost, non-overlapping
// occurrence of a pattern in tr is replaced by its stored replacement.
// Non-matching input passes through unchanged. Output is produced online:
// a token is emitted as soon as it cannot be part of any still-pending
// match.
func Translate(tr *trie.Trie[string], input token.Iterator) *Translator {
	return &Translator{
		tr:      tr,
		input:   input,
		spans:   make(map[int]*trie.Node[string, string]),
		matches: make(map[int]matchRec),
	}
}

// Next implements token.Iterator.
func (t *Translator) Next() (string, bool) {
	for {
		if t.outIdx < len(t.output) {
			tok := t.output[t.outIdx]
			t.outIdx++
			if t.outIdx == len(t.output) {
				t.output = t.output[:0]
				t.outIdx = 0
			}
			return tok, true
		}
		if t.inputDone {
			if t.flushed {
				return "", false
			}
			t.flush()
			t.flushed = true
			continue
		}
		tok, ok := t.input.Next()
		if !ok {
			t.inputDone = true
			continue
		}
		t.step(t.nextPos, tok)
		t.nextPos++
	}
}

// step runs one iteration of the algorithm in spec.md 4.D for input
// position i holding token x.
func (t *Translator) step(i int, x string) {
	// 1. Append (i, x) to buffer.
	t.buffer = append(t.buffer, bufItem{pos: i, tok: x})

	// 2. Open a new span at i rooted at the trie root.
	t.spans[i] = t.tr.Root()

	// 3. Advance every live span (including the one just opened) on x.
	nextSpans := make(map[int]*trie.Node[string, string], len(t.spans))
	minCommitStart := -1
	for s, node := range t.spans {
		child, ok := node.Descend(x)
		if !ok {
			continue // span dies
		}
		if repl, has := child.Replacement(); has {
			t.matches[s] = matchRec{end: i + 1, replacement: repl}
			if minCommitStart == -1 || s < minCommitStart {
				minCommitStart = s
			}
		}
		nextSpans[s] = child
	}

	// 4. Kill every span/match with start strictly greater than the
	// earliest committing start and <= i: a shorter, later match can
	// never beat one that just completed at or before it.
	if minCommitStart != -1 {
		for s := range nextSpans {
			if s > minCommitStart && s <= i {
				delete(nextSpans, s)
			}
		}
		for s := range t.matches {
			if s > minCommitStart && s <= i {
				delete(t.matches, s)
			}
		}
	}
	t.spans = nextSpans

	// 5. Locate the earliest live span and earliest pending match.
	firstSpan := minSpanKey(t.spans, i)
	firstMatch := minMatchKey(t.matches, i)

	// 6. Commit every match that can no longer be beaten by an earlier
	// still-live span.
	for firstMatch < firstSpan {
		m := t.matches[firstMatch]
		t.emitBufferBefore(firstMatch)
		t.dropBufferBefore(m.end)
		t.output = append(t.output, m.replacement)
		delete(t.matches, firstMatch)
		firstMatch = minMatchKey(t.matches, i)
	}

	// 7. Everything before the earliest live span can never be touched by
	// a future match, so it's safe to emit.
	t.emitBufferBefore(firstSpan)
}

// flush runs the end-of-input path: live spans can never complete, so they
// are discarded; remaining matches commit in ascending start order, with
// their replacement retokenized (unlike the mid-stream path, which emits
// the stored replacement as a single opaque unit — see spec.md 4.D's
// "Edge cases" and 9's open question; the asymmetry is intentional and
// preserved here rather than unified).
func (t *Translator) flush() {
	t.spans = nil

	starts := make([]int, 0, len(t.matches))
	for s := range t.matches {
		starts = append(starts, s)
	}
	sortInts(starts)

	for _, s := range starts {
		m := t.matches[s]
		t.emitBufferBefore(s)
		t.dropBufferBefore(m.end)
		for _, tok := range token.TokenizeAll(t.tr.Tokenizer, m.replacement) {
			t.output = append(t.output, tok)
		}
	}
	t.matches = map[int]matchRec{}

	for _, item := range t.buffer {
		t.output = append(t.output, item.tok)
	}
	t.buffer = nil
}

func minSpanKey(m map[int]*trie.Node[string, string], fallback int) int {
	min := fallback
	for s := range m {
		if s < min {
			min = s
		}
	}
	return min
}

func minMatchKey(m map[int]matchRec, fallback int) int {
	min := fallback
	for s := range m {
		if s < min {
			min = s
		}
	}
	return min
}

func (t *Translator) emitBufferBefore(cutoff int) {
	i := 0
	for i < len(t.buffer) && t.buffer[i].pos < cutoff {
		t.output = append(t.output, t.buffer[i].tok)
		i++
	}
	t.buffer = t.buffer[i:]
}

func (t *Translator) dropBufferBefore(cutoff int) {
	i := 0
	for i < len(t.buffer) && t.buffer[i].pos < cutoff {
		i++
	}
	t.buffer = t.buffer[i:]
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
