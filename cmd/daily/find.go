package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search tasks",
	Long: `Search for tasks by keyword.

Performs a case-insensitive substring search in task names and
descriptions, pending and completed alike.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	query := args[0]
	if query == "" {
		return &cli.ValidationError{Field: "query", Message: "must not be empty"}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	tasks := a.store.Find(query)
	if len(tasks) == 0 {
		fmt.Fprintf(out, "No results found for %q\n", query)
		return nil
	}

	n := renderTasks(out, tasks, model.IDWidth(a.store.List()), nil)
	fmt.Fprintln(out, cli.Gray(fmt.Sprintf("%d of %d tasks match.", n, len(a.store.List()))))
	return nil
}
