package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trieplace/trieplace/internal/fsio"
	"github.com/trieplace/trieplace/internal/match"
)

func newTranslateCommand(app *App) *cobra.Command {
	var (
		inPath    string
		outPath   string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Rewrite text through the dictionary's longest-leftmost matcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" || outPath == "" {
				return translateStream(app, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			proc := fsio.New(app.Fs, app.Tokenizer)
			skipped, err := proc.TranslateFile(app.Dict.Trie(), inPath, outPath, overwrite)
			if err != nil {
				return fmt.Errorf("translate %s: %w", inPath, err)
			}
			if skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped (exists): %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input file path; used only together with --out (otherwise stdin is read)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path; used only together with --in (otherwise stdout is written)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite --out if it already exists")
	return cmd
}

func translateStream(app *App, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	it := match.Translate(app.Dict.Trie(), app.Tokenizer.Tokenize([]rune(string(data))))
	for {
		tok, ok := it.Next()
		if !ok {
			return nil
		}
		if _, err := io.WriteString(out, tok); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
}
