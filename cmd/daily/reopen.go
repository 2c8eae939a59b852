package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a completed task",
	Long: `Mark a completed task as pending again.

The task keeps its ID, position and fields.

Examples:
  daily reopen 4821`,
	Args:              cobra.ExactArgs(1),
	RunE:              runReopen,
	ValidArgsFunction: completeDoneTaskIDs,
}

func init() {
	rootCmd.AddCommand(reopenCmd)
}

func runReopen(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	task, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}
	if !task.Completed {
		return fmt.Errorf("task %s is not done", model.FormatID(task.ID))
	}

	if _, err := a.store.ToggleStatus(task.ID, false); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s reopened.\n", model.FormatID(task.ID))
	return nil
}
