package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark task(s) as done",
	Long: `Mark one or more pending tasks as done.

Multiple tasks can be specified (batch mode):
  daily done 4821 4822 4830

In batch mode, tasks that can be completed will be completed,
and errors will be reported for tasks that couldn't be completed.
Completed tasks stay in the list; see "daily list --done".`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runDone,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	tasks, failed := resolveRefs(a.store, args, func(t model.Task) error {
		if t.Completed {
			return fmt.Errorf("task is already done")
		}
		return nil
	})

	res, err := applyBatch(a.store, ops.ModeFinish, tasks)
	for _, id := range res.Applied {
		fmt.Fprintf(out, "%s done.\n", model.FormatID(id))
	}
	if err != nil {
		return err
	}
	for _, id := range res.Missing {
		failed = append(failed, fmt.Sprintf("%s: task not found", model.FormatID(id)))
	}

	printFailures(failed)
	if len(failed) > 0 && len(res.Applied) == 0 {
		return &cli.BatchError{Action: "complete", Failed: failed, Total: len(args)}
	}
	return nil
}
