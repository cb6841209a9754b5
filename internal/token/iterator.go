package token

// Iterator is a pull iterator over a token stream, replacing the
// generator-driven pipelines of the source implementation per the
// "lazy iterator chains" design note.
type Iterator interface {
	// Next returns the next token and true, or ("", false) once exhausted.
	Next() (string, bool)
}

// Tokenizer is a pure, deterministic transducer from runes to tokens. It
// must be safe to invoke independently and concurrently: the matcher calls
// it on the live input stream while the dictionary calls it on pattern
// keys during insertion.
type Tokenizer interface {
	Tokenize(src []rune) Iterator
}

// TokenizeAll drains t over s and returns every token, for callers (such as
// the dictionary) that need the whole key rather than a stream.
func TokenizeAll(t Tokenizer, s string) []string {
	it := t.Tokenize([]rune(s))
	var out []string
	for {
		tok, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}
