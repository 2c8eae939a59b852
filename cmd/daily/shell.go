package main

import (
	"github.com/jacksmith/daily/internal/tui"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"ui"},
	Short:   "Open the interactive checklist",
	Long: `Open the interactive checklist screen over the task list.

Move with j/k or the arrow keys. Press f for finish mode or d for delete
mode, select tasks with space, then press c to apply the batch. Pressing
space while no mode is active opens the task for editing; n adds a task.
Tab switches to the completed tasks, where r reopens and x deletes.

Press ":" for commands such as "goto 4821" or "mode delete", and ? for
the full key list.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	m := tui.New(a.store, tui.Options{
		ConfirmDelay:    a.cfg.ConfirmDelay,
		DefaultPriority: a.cfg.DefaultPriority,
		Logger:          a.log,
	})
	return tui.Run(m, in, out)
}
