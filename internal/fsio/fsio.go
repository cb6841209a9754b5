// Package fsio implements the path-processing wrapper spec.md 6 names as
// an external collaborator to the core engine: read a file, run it through
// a tokenizer and the streaming matcher, write the result.
//
// It is built over afero.Fs rather than the os package directly so tests
// exercise the full skip/create-parents/partial-rename/cleanup contract
// against an in-memory filesystem instead of touching disk.
package fsio

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/trieplace/trieplace/internal/match"
	"github.com/trieplace/trieplace/internal/token"
	"github.com/trieplace/trieplace/internal/trie"
)

const partialSuffix = ".partial"

// Processor runs the translate pipeline over files on an afero.Fs.
type Processor struct {
	fs        afero.Fs
	tokenizer token.Tokenizer
}

// New returns a Processor that reads/writes through fs, tokenizing with t.
func New(fs afero.Fs, t token.Tokenizer) *Processor {
	return &Processor{fs: fs, tokenizer: t}
}

// TranslateFile implements the contract from spec.md 6: skip if
// outputPath exists and !overwrite; otherwise create outputPath's parent
// directories, stream inputPath through the tokenizer and tr, write the
// result to outputPath+".partial", and atomically rename it into place.
// The partial file is removed on any failure and the error is returned
// unchanged, per spec.md 7.
func (p *Processor) TranslateFile(tr *trie.Trie[string], inputPath, outputPath string, overwrite bool) (skipped bool, err error) {
	if !overwrite {
		if exists, statErr := afero.Exists(p.fs, outputPath); statErr == nil && exists {
			return true, nil
		} else if statErr != nil {
			return false, statErr
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create parent directories for %s: %w", outputPath, err)
		}
	}

	in, err := p.fs.Open(inputPath)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer in.Close()

	partialPath := outputPath + partialSuffix
	out, err := p.fs.Create(partialPath)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", partialPath, err)
	}

	if err := p.stream(tr, in, out); err != nil {
		out.Close()
		_ = p.fs.Remove(partialPath)
		return false, err
	}
	if err := out.Close(); err != nil {
		_ = p.fs.Remove(partialPath)
		return false, fmt.Errorf("close %s: %w", partialPath, err)
	}

	if err := p.fs.Rename(partialPath, outputPath); err != nil {
		_ = p.fs.Remove(partialPath)
		return false, fmt.Errorf("rename %s to %s: %w", partialPath, outputPath, err)
	}
	return false, nil
}

func (p *Processor) stream(tr *trie.Trie[string], in io.Reader, out io.Writer) error {
	runes, err := readAllRunes(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	it := match.Translate(tr, p.tokenizer.Tokenize(runes))
	for {
		tok, ok := it.Next()
		if !ok {
			break
		}
		if _, err := io.WriteString(out, tok); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func readAllRunes(r io.Reader) ([]rune, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return []rune(string(data)), nil
}
