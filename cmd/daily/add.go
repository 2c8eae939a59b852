package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Long: `Add a new pending task to the end of the list.

If no priority is given, uses default_priority from .dailyconfig.yaml (low
unless configured).

Examples:
  daily add "Pay rent"
  daily add "Pay rent" --high
  daily add "Call the bank" -p medium -d "Ask about the card"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addDesc     string
	addPriority string
	addHigh     bool
	addMedium   bool
	addLow      bool
)

func init() {
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (high, medium, low)")
	addCmd.Flags().BoolVar(&addHigh, "high", false, "shorthand for --priority=high")
	addCmd.Flags().BoolVar(&addMedium, "medium", false, "shorthand for --priority=medium")
	addCmd.Flags().BoolVar(&addLow, "low", false, "shorthand for --priority=low")

	addCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	priority, err := resolvePriority(addPriority, addHigh, addMedium, addLow)
	if err != nil {
		return err
	}
	if priority == "" {
		priority = a.cfg.DefaultPriority
	}

	task, err := a.store.Add(args[0], addDesc, priority)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", model.FormatID(task.ID), task.Name)
	return nil
}

// resolvePriority turns the --priority flag and its shorthands into a
// priority. It returns "" when none were given.
func resolvePriority(flag string, high, medium, low bool) (model.Priority, error) {
	switch {
	case high:
		return model.PriorityHigh, nil
	case medium:
		return model.PriorityMedium, nil
	case low:
		return model.PriorityLow, nil
	case flag == "":
		return "", nil
	}
	return model.ParsePriority(flag)
}
