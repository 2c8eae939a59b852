package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Long: `Show full details for a task.

The ID can be the full ID or any unique trailing part of it, as shown by
"daily list".`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeAllTaskIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	task, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	printTask(out, task)
	return nil
}

func printTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "%s: %s\n", model.FormatID(t.ID), cli.Bold(t.Name))
	fmt.Fprintf(w, "Status:      %s\n", formatStatus(t.Completed))
	fmt.Fprintf(w, "Priority:    %s\n", formatPriority(t.Priority))

	if t.Desc == "" {
		fmt.Fprintf(w, "Description: %s\n", cli.Gray("-"))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Description:")
	for _, line := range strings.Split(t.Desc, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func formatStatus(completed bool) string {
	if completed {
		return cli.Green("done")
	}
	return cli.Yellow("pending")
}
