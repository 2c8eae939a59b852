package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete task(s) permanently",
	Long: `Delete one or more tasks, pending or completed. This cannot be undone.

Asks for confirmation unless --yes is given.

Examples:
  daily rm 4821
  daily rm 4821 4822 --yes`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeAllTaskIDs,
}

var rmYes bool

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	tasks, failed := resolveRefs(a.store, args, nil)
	if len(tasks) == 0 {
		printFailures(failed)
		return &cli.BatchError{Action: "delete", Failed: failed, Total: len(args)}
	}

	if !rmYes {
		prompt := fmt.Sprintf("Delete %q?", tasks[0].Name)
		if len(tasks) > 1 {
			prompt = fmt.Sprintf("Delete %d tasks?", len(tasks))
		}
		ok, err := cli.Confirm(in, out, prompt)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Canceled.")
			return cli.ErrCanceled
		}
	}

	if len(tasks) == 1 {
		if err := a.store.Delete(tasks[0].ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s deleted.\n", model.FormatID(tasks[0].ID))
	} else {
		res, err := applyBatch(a.store, ops.ModeDelete, tasks)
		for _, id := range res.Applied {
			fmt.Fprintf(out, "%s deleted.\n", model.FormatID(id))
		}
		if err != nil {
			return err
		}
	}

	printFailures(failed)
	return nil
}
