// Command trieplace is the entrypoint for the streaming multi-pattern
// find-and-replace engine: it loads configuration, constructs a logger,
// wires the dependency bundle used by every subcommand, and runs the
// cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/trieplace/trieplace/internal/cli"
	"github.com/trieplace/trieplace/internal/config"
	"github.com/trieplace/trieplace/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 1
	}

	logger := logging.New(os.Getenv("TRIEPLACE_DEV") != "")
	defer logger.Sync()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "initialize app:", err)
		return 1
	}
	defer app.Close()

	root := cli.NewRootCommand(app)
	if err := root.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
