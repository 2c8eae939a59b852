package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the whole task list",
	Long: `Remove the stored task list, pending and completed tasks alike.
This cannot be undone; use "daily dump --raw" first to keep a copy.

Asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	n := len(a.store.List())
	if !resetYes {
		ok, err := cli.Confirm(in, out, fmt.Sprintf("Remove all %d tasks in %s?", n, a.storage.Root()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Canceled.")
			return cli.ErrCanceled
		}
	}

	if err := a.storage.Remove(a.cfg.StoreKey); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d tasks.\n", n)
	return nil
}
