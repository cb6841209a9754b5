package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand builds the trieplace command tree rooted on app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "trieplace",
		Short: "Streaming multi-pattern find-and-replace engine",
		Long: color.CyanString(`trieplace - streaming multi-pattern find-and-replace

Insert a dictionary of patterns and replacements, then translate or scan
text against it in a single forward pass: longest match wins, matches
never overlap, and output streams as soon as it can no longer change.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newVersionCommand(),
		newTranslateCommand(app),
		newFindCommand(app),
		newRegexCommand(app),
		newDictCommand(app),
		newServeCommand(app),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			label := color.New(color.FgCyan, color.Bold)
			value := color.New(color.FgWhite)
			label.Fprint(cmd.OutOrStdout(), "trieplace version: ")
			value.Fprintln(cmd.OutOrStdout(), Version)
			label.Fprint(cmd.OutOrStdout(), "git commit: ")
			value.Fprintln(cmd.OutOrStdout(), GitCommit)
			label.Fprint(cmd.OutOrStdout(), "build date: ")
			value.Fprintln(cmd.OutOrStdout(), BuildDate)
		},
	}
}
