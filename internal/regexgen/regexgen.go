// Package regexgen serializes a trie into a single regex string that
// accepts exactly its keys: component F, the regex compiler.
package regexgen

import (
	"regexp"
	"strings"

	"github.com/trieplace/trieplace/internal/token"
	"github.com/trieplace/trieplace/internal/trie"
)

// Options toggles the three post-escape rewrites spec.md 4.F names.
type Options struct {
	FixFFFD   bool // � -> .
	FixQuotes bool // U+2019 -> [’']
	FixSpaces bool // escaped whitespace token -> \s
}

// DefaultOptions enables all three rewrites, matching the source's default
// behavior.
func DefaultOptions() Options {
	return Options{FixFFFD: true, FixQuotes: true, FixSpaces: true}
}

// maxClassAlternatives bounds how many single-character alternatives the
// bracket-collapse peephole will fold into one character class.
const maxClassAlternatives = 12

// Compile serializes tr into a regex string matching exactly tr's keys.
// The result is anchored nowhere; callers wrap it in boundaries/anchors as
// needed.
//
// Rather than building the naive alternation string and then re-parsing it
// for the two peephole simplifications spec.md describes (single-char
// group collapse, bracket-class collapse), both are folded directly into
// the depth-first traversal, per 4.F's design note recommending that as
// the preferred approach: a node's single-child branch is never wrapped in
// the first place, so the "(?:X) -> X" peephole has nothing to undo, and a
// node whose children are all plain single-character leaves is emitted
// straight to a [...] class instead of an alternation.
func Compile(tr *trie.Trie[string], opts Options) string {
	return compileNode(tr.Root(), opts)
}

type branch struct {
	text         string
	classLiteral string // non-empty iff this branch can join a bracket class
}

func compileNode(n *trie.Node[string, string], opts Options) string {
	keys := n.ChildrenKeys()
	if len(keys) == 0 {
		return ""
	}

	branches := make([]branch, 0, len(keys))
	for _, tok := range keys {
		child, _ := n.Descend(tok)
		esc, classLit := escapeToken(tok, opts)
		sub := compileNode(child, opts)
		b := branch{text: esc + sub}
		if sub == "" {
			b.classLiteral = classLit
		}
		branches = append(branches, b)
	}

	alt, isClass := joinBranches(branches)

	atomic := isClass || (len(branches) == 1 && branches[0].classLiteral != "")

	switch {
	case n.HasReplacement():
		if atomic {
			// alt is already a single regex atom (a literal/escaped
			// character or a bracket class), so "?" applies directly
			// instead of needing a throwaway non-capturing group.
			return alt + "?"
		}
		return "(?:" + alt + ")?"
	case len(branches) > 1 && !isClass:
		return "(?:" + alt + ")"
	default:
		return alt // single branch, or already a bracket class: no wrap needed
	}
}

// joinBranches combines sibling branches into either a character class (if
// every branch is a plain single character, there are at least two, and
// there are no more than maxClassAlternatives) or a `|`-joined alternation.
func joinBranches(branches []branch) (result string, isClass bool) {
	if len(branches) == 1 {
		return branches[0].text, false
	}
	if len(branches) <= maxClassAlternatives {
		allSingle := true
		for _, b := range branches {
			if b.classLiteral == "" {
				allSingle = false
				break
			}
		}
		if allSingle {
			var sb strings.Builder
			sb.WriteByte('[')
			for _, b := range branches {
				sb.WriteString(b.classLiteral)
			}
			sb.WriteByte(']')
			return sb.String(), true
		}
	}
	texts := make([]string, len(branches))
	for i, b := range branches {
		texts[i] = b.text
	}
	return strings.Join(texts, "|"), false
}

// escapeToken regex-escapes tok and applies the toggleable post-escape
// rewrites. It also returns a class-literal form suitable for splicing
// into a [...] bracket expression when tok is a single character eligible
// for the bracket-collapse peephole ("" otherwise).
func escapeToken(tok string, opts Options) (escaped, classLiteral string) {
	runes := []rune(tok)

	if opts.FixFFFD && tok == "�" {
		// "." means wildcard outside a class but literal dot inside one,
		// so this rewrite is not eligible for the bracket collapse.
		return ".", ""
	}
	if opts.FixQuotes && tok == "’" {
		return "[’']", ""
	}
	if opts.FixSpaces && len(runes) == 1 && token.IsWhitespace(runes[0]) {
		return `\s`, `\s`
	}

	esc := regexp.QuoteMeta(tok)
	if len(runes) == 1 {
		return esc, escapeForClass(runes[0])
	}
	return esc, ""
}

// escapeForClass escapes r for use inside a [...] bracket expression,
// where the special characters differ from those outside one.
func escapeForClass(r rune) string {
	switch r {
	case ']', '^', '-', '\\':
		return `\` + string(r)
	default:
		return string(r)
	}
}
