package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export the task list as plain text",
	Long: `Export the whole task list as human-readable plain text.

This is a one-way export for viewing/sharing. Use --raw to print the
stored blob byte for byte, which can be copied into another data
directory. Use --keys to list every key stored in the data directory.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var (
	dumpRaw  bool
	dumpKeys bool
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "print the stored blob as written")
	dumpCmd.Flags().BoolVar(&dumpKeys, "keys", false, "list the keys in the data directory")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if dumpRaw && dumpKeys {
		return &cli.ValidationError{Message: "--raw and --keys are mutually exclusive"}
	}

	if dumpKeys {
		keys, err := a.storage.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Fprintln(out, key)
		}
		return nil
	}

	if dumpRaw {
		data, ok, err := a.storage.Get(a.cfg.StoreKey)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("nothing stored under %q", a.cfg.StoreKey)
		}
		_, err = out.Write(data)
		return err
	}

	pending := a.store.Pending()
	completed := a.store.Completed()

	fmt.Fprintf(out, "# Daily tasks: %d pending, %d done\n\n", len(pending), len(completed))

	if len(pending) > 0 {
		fmt.Fprintln(out, "## Pending")
		fmt.Fprintln(out)
		for _, t := range pending {
			dumpTask(out, t)
			fmt.Fprintln(out)
		}
	}

	if len(completed) > 0 {
		fmt.Fprintln(out, "## Done")
		fmt.Fprintln(out)
		for _, t := range completed {
			dumpTask(out, t)
			fmt.Fprintln(out)
		}
	}

	return nil
}

func dumpTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "### %s: %s\n", model.FormatID(t.ID), t.Name)
	fmt.Fprintf(w, "Priority: %s\n", t.Priority.Label())
	if t.Desc != "" {
		fmt.Fprintln(w)
		for _, line := range strings.Split(t.Desc, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
