package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trieplace/trieplace/internal/match"
)

func newFindCommand(app *App) *cobra.Command {
	var overlapping bool

	cmd := &cobra.Command{
		Use:   "find",
		Short: "List matches in stdin without rewriting it",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			it := match.FindAll(app.Dict.Trie(), app.Tokenizer.Tokenize([]rune(string(data))), overlapping)
			for {
				m, ok := it.Next()
				if !ok {
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
		},
	}

	cmd.Flags().BoolVar(&overlapping, "overlapping", false, "report every viable match, including nested ones")
	return cmd
}
