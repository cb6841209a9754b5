package token

// Identity yields each input rune as its own token. It is the tokenizer to
// use when matches must be substring-granular, and when the regex compiler
// is to produce a character-level pattern.
type Identity struct{}

func (Identity) Tokenize(src []rune) Iterator {
	return &identityIterator{src: src}
}

type identityIterator struct {
	src []rune
	pos int
}

func (it *identityIterator) Next() (string, bool) {
	if it.pos >= len(it.src) {
		return "", false
	}
	r := it.src[it.pos]
	it.pos++
	return string(r), true
}
