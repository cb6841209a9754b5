package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trieplace/trieplace/internal/cache"
	"github.com/trieplace/trieplace/internal/regexgen"
)

func newRegexCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regex",
		Short: "Print a regex that matches exactly the dictionary's patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := app.Dict.Iter()
			digest := cache.DigestPairs(pairs)

			if cached, ok := app.RegexCache.Get(digest); ok {
				fmt.Fprintln(cmd.OutOrStdout(), cached)
				return nil
			}

			pattern := regexgen.Compile(app.Dict.Trie(), regexgen.DefaultOptions())
			app.RegexCache.Put(digest, pattern)
			fmt.Fprintln(cmd.OutOrStdout(), pattern)
			return nil
		},
	}
}
