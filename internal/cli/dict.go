package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trieplace/trieplace/internal/dict"
)

func newDictCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Inspect and edit the pattern dictionary",
	}
	cmd.AddCommand(
		newDictInsertCommand(app),
		newDictGetCommand(app),
		newDictPopCommand(app),
		newDictIterCommand(app),
		newDictRangeDeleteCommand(app),
		newDictLoadCommand(app),
	)
	return cmd
}

func newDictInsertCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <key> <value>",
		Short: "Insert or overwrite a pattern's replacement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Insert(args[0], args[1])
		},
	}
}

func newDictGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a pattern's replacement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.Dict.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newDictPopCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pop <key>",
		Short: "Remove a pattern and print its replacement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.Pop(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newDictIterCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "iter",
		Short: "List every pattern in ascending lexicographic order",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kv := range app.Dict.Iter() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kv.Key, kv.Value)
			}
			return nil
		},
	}
}

func newDictRangeDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "range-delete <lo> <hi>",
		Short: "Delete every pattern with key in [lo, hi)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := app.Dict.RangeDelete(args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", n)
			return nil
		},
	}
}

func newDictLoadCommand(app *App) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load tab-separated key/value pairs from a file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if filePath != "" {
				f, err := app.Fs.Open(filePath)
				if err != nil {
					return fmt.Errorf("open %s: %w", filePath, err)
				}
				defer f.Close()
				r = f
			}

			pairs, err := parseTabSeparated(r)
			if err != nil {
				return err
			}

			return app.Dict.BulkUpdate(pairs, func(done int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "loaded %d\n", done)
			})
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "path to load from (defaults to stdin)")
	return cmd
}

func parseTabSeparated(r io.Reader) ([]dict.KV[string], error) {
	var pairs []dict.KV[string]
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed line, expected key<TAB>value: %q", line)
		}
		pairs = append(pairs, dict.KV[string]{Key: parts[0], Value: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return pairs, nil
}
