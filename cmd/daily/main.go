// Package main is the entry point for the daily CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// out and in are swapped by tests.
var (
	out io.Writer = os.Stdout
	in  io.Reader = os.Stdin
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrCanceled) {
			fmt.Fprintln(os.Stderr, cli.FormatError(err))
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "daily",
	Short: "daily - a small daily task list",
	Long: `daily keeps a single list of tasks, each with a name, an optional
description and a priority (high, medium or low).

Pending tasks can be completed or deleted one at a time or in batches.
Completed tasks stay in the list until they are deleted permanently.

The list is stored in a .daily/ directory under $DAILY_HOME, falling back to
$XDG_DATA_HOME/daily or ~/.local/share/daily. Use --dir to point elsewhere.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	rootDir     string
	rootVerbose bool
	rootNoColor bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "directory holding .daily/ (default $DAILY_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "disable colored output")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("daily version {{.Version}}\n")
}
