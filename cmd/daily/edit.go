package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Edit a task's name, description or priority.

Use flags to change specific fields, or -i to edit in $EDITOR.
The task keeps its ID, its position in the list and its status.

Examples:
  daily edit 4821 --name="Pay rent today"
  daily edit 4821 --priority=high
  daily edit 4821 --desc=""                 # clear the description
  daily edit 4821 -i                        # open in $EDITOR`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeAllTaskIDs,
}

var (
	editName        string
	editDesc        string
	editPriority    string
	editHigh        bool
	editMedium      bool
	editLow         bool
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "set task name")
	editCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "set task description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "set task priority (high, medium, low)")
	editCmd.Flags().BoolVar(&editHigh, "high", false, "shorthand for --priority=high")
	editCmd.Flags().BoolVar(&editMedium, "medium", false, "shorthand for --priority=medium")
	editCmd.Flags().BoolVar(&editLow, "low", false, "shorthand for --priority=low")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")

	editCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	task, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	if editInteractive {
		return runEditInteractive(a.store, task)
	}

	name, desc, priority := task.Name, task.Desc, task.Priority.Normalize()
	hasChanges := false

	if cmd.Flags().Changed("name") {
		name = editName
		hasChanges = true
	}
	if cmd.Flags().Changed("desc") {
		desc = editDesc
		hasChanges = true
	}

	p, err := resolvePriority(editPriority, editHigh, editMedium, editLow)
	if err != nil {
		return err
	}
	if p != "" {
		priority = p
		hasChanges = true
	}

	if !hasChanges {
		return fmt.Errorf("no changes specified")
	}

	if _, err := a.store.Update(task.ID, name, desc, priority); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s updated.\n", model.FormatID(task.ID))
	return nil
}

// editableTask is the form shown in $EDITOR.
type editableTask struct {
	Name     string `yaml:"name"`
	Priority string `yaml:"priority"`
	Desc     string `yaml:"desc"`
}

func runEditInteractive(store *ops.TaskStore, task model.Task) error {
	editable := editableTask{
		Name:     task.Name,
		Priority: string(task.Priority.Normalize()),
		Desc:     task.Desc,
	}

	content, err := yaml.Marshal(&editable)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	header := fmt.Sprintf("# Editing task %s\n# priority is one of high, medium, low.\n# Save and close editor to apply changes. Exit without saving to cancel.\n\n",
		model.FormatID(task.ID))
	content = append([]byte(header), content...)

	edited, err := cli.EditInEditor(content, ".yaml")
	if err != nil {
		return err
	}

	var newEditable editableTask
	if err := yaml.Unmarshal(edited, &newEditable); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	priority, err := model.ParsePriority(newEditable.Priority)
	if err != nil {
		return err
	}
	desc := strings.TrimRight(newEditable.Desc, "\n")

	if newEditable.Name == task.Name && desc == task.Desc && priority == task.Priority {
		fmt.Fprintln(out, "No changes.")
		return nil
	}

	if _, err := store.Update(task.ID, newEditable.Name, desc, priority); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s updated.\n", model.FormatID(task.ID))
	return nil
}
