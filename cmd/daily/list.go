package main

import (
	"fmt"
	"io"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in insertion order.

By default only pending tasks are shown. IDs are shortened to the fewest
trailing digits that keep them unique; any command taking an ID accepts
the short form.

Examples:
  daily list           # pending tasks
  daily list --done    # completed tasks
  daily list --all     # everything`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listDone bool
	listAll  bool
)

func init() {
	listCmd.Flags().BoolVar(&listDone, "done", false, "show completed tasks")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show all tasks")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listDone && listAll {
		return &cli.ValidationError{Message: "--done and --all cannot be combined"}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	var tasks []model.Task
	empty := "No pending tasks."
	switch {
	case listAll:
		tasks = a.store.List()
		empty = "No tasks."
	case listDone:
		tasks = a.store.Completed()
		empty = "No completed tasks."
	default:
		tasks = a.store.Pending()
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	renderTasks(out, tasks, model.IDWidth(a.store.List()), nil)
	return nil
}

// renderTasks prints tasks as a table of short ID, priority and name and
// returns the number of rows written.
// When mark is non-nil its result is shown in a leading column.
func renderTasks(w io.Writer, tasks []model.Task, width int, mark func(model.Task) string) int {
	table := cli.NewTable()
	nameCol := 2
	if mark != nil {
		nameCol = 3
	}
	table.SetMaxWidth(nameCol, cli.DefaultMaxNameWidth)

	for _, t := range tasks {
		name := t.Name
		if t.Completed {
			name = cli.Strike(name)
		}
		row := []string{model.ShortID(t.ID, width), formatPriority(t.Priority), name}
		if mark != nil {
			row = append([]string{mark(t)}, row...)
		}
		table.AddRow(row...)
	}

	table.Render(w)
	return table.Len()
}

// formatPriority returns the colored priority label.
func formatPriority(p model.Priority) string {
	label := p.Label()
	switch label {
	case model.PriorityHigh.Label():
		return cli.Red(label)
	case model.PriorityMedium.Label():
		return cli.Yellow(label)
	default:
		return cli.Blue(label)
	}
}
