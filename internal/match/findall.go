package match

import (
	"github.com/trieplace/trieplace/internal/token"
	"github.com/trieplace/trieplace/internal/trie"
)

type keyedMatch struct {
	end int
	key string
}

// startedMatch pairs a completed overlapping match with its start position,
// only long enough to sort same-step completions before they're output.
type startedMatch struct {
	start int
	key   string
}

// sortStartedMatches insertion-sorts ms by start, mirroring sortInts.
func sortStartedMatches(ms []startedMatch) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].start < ms[j-1].start; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

// Finder is the lazy transducer returned by FindAll: a pull iterator over
// matched keys (not a rewritten token stream).
type Finder struct {
	tr               *trie.Trie[string]
	input            token.Iterator
	allowOverlapping bool

	spans   map[int]*trie.Node[string, string]
	accum   map[int]string
	matches map[int]keyedMatch
	nextPos int

	output    []string
	outIdx    int
	inputDone bool
	flushed   bool
}

// FindAll enumerates matches in input without rewriting it. By default it
// reports the same longest-leftmost, non-overlapping matches Translate
// would replace. When allowOverlapping is true, every viable match at
// every start position is reported, including ones nested inside a longer
// match starting at the same position.
func FindAll(tr *trie.Trie[string], input token.Iterator, allowOverlapping bool) *Finder {
	return &Finder{
		tr:               tr,
		input:            input,
		allowOverlapping: allowOverlapping,
		spans:            make(map[int]*trie.Node[string, string]),
		accum:            make(map[int]string),
		matches:          make(map[int]keyedMatch),
	}
}

// Next implements token.Iterator, yielding matched keys.
func (f *Finder) Next() (string, bool) {
	for {
		if f.outIdx < len(f.output) {
			tok := f.output[f.outIdx]
			f.outIdx++
			if f.outIdx == len(f.output) {
				f.output = f.output[:0]
				f.outIdx = 0
			}
			return tok, true
		}
		if f.inputDone {
			if f.flushed {
				return "", false
			}
			f.flush()
			f.flushed = true
			continue
		}
		tok, ok := f.input.Next()
		if !ok {
			f.inputDone = true
			continue
		}
		f.step(f.nextPos, tok)
		f.nextPos++
	}
}

func (f *Finder) step(i int, x string) {
	f.spans[i] = f.tr.Root()
	f.accum[i] = ""

	nextSpans := make(map[int]*trie.Node[string, string], len(f.spans))
	nextAccum := make(map[int]string, len(f.accum))
	minCommitStart := -1
	var completed []startedMatch

	for s, node := range f.spans {
		child, ok := node.Descend(x)
		if !ok {
			continue
		}
		matched := f.accum[s] + x
		if child.HasReplacement() {
			if f.allowOverlapping {
				// Recorded here instead of yielded immediately because map
				// iteration order is randomized; sorted and appended below
				// so several same-step completions come out in ascending
				// start order. No kill pass: a longer match sharing this
				// start is still live in nextSpans and can complete (and
				// yield) later.
				completed = append(completed, startedMatch{start: s, key: matched})
			} else {
				f.matches[s] = keyedMatch{end: i + 1, key: matched}
				if minCommitStart == -1 || s < minCommitStart {
					minCommitStart = s
				}
			}
		}
		nextSpans[s] = child
		nextAccum[s] = matched
	}

	if f.allowOverlapping && len(completed) > 0 {
		sortStartedMatches(completed)
		for _, m := range completed {
			f.output = append(f.output, m.key)
		}
	}

	if !f.allowOverlapping && minCommitStart != -1 {
		for s := range nextSpans {
			if s > minCommitStart && s <= i {
				delete(nextSpans, s)
				delete(nextAccum, s)
			}
		}
		for s := range f.matches {
			if s > minCommitStart && s <= i {
				delete(f.matches, s)
			}
		}
	}
	f.spans = nextSpans
	f.accum = nextAccum

	if f.allowOverlapping {
		return
	}

	firstSpan := minSpanKey(f.spans, i)
	firstMatch := minKeyedMatchKey(f.matches, i)
	for firstMatch < firstSpan {
		f.output = append(f.output, f.matches[firstMatch].key)
		delete(f.matches, firstMatch)
		firstMatch = minKeyedMatchKey(f.matches, i)
	}
}

func (f *Finder) flush() {
	f.spans = nil
	f.accum = nil
	if f.allowOverlapping {
		return
	}
	starts := make([]int, 0, len(f.matches))
	for s := range f.matches {
		starts = append(starts, s)
	}
	sortInts(starts)
	for _, s := range starts {
		f.output = append(f.output, f.matches[s].key)
	}
	f.matches = map[int]keyedMatch{}
}

func minKeyedMatchKey(m map[int]keyedMatch, fallback int) int {
	min := fallback
	for s := range m {
		if s < min {
			min = s
		}
	}
	return min
}
