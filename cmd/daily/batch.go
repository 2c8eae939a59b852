package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
)

// resolveRefs resolves each reference to a task, dropping repeats.
// References that cannot be resolved or that accept rejects are reported
// as "ref: reason" entries.
func resolveRefs(store *ops.TaskStore, refs []string, accept func(model.Task) error) ([]model.Task, []string) {
	var tasks []model.Task
	var failed []string
	seen := make(map[int64]bool)

	for _, ref := range refs {
		t, err := store.Resolve(ref)
		if err == nil && accept != nil {
			err = accept(t)
		}
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", ref, err))
			continue
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	return tasks, failed
}

// applyBatch selects tasks under mode and confirms the batch through a
// fresh selection controller.
func applyBatch(store *ops.TaskStore, mode ops.Mode, tasks []model.Task) (ops.BatchResult, error) {
	ctrl := ops.NewController(store)
	ctrl.ToggleMode(mode)
	for _, t := range tasks {
		ctrl.ToggleSelection(t.ID)
	}
	return ctrl.ConfirmBatch()
}

// printFailures writes one "error: ..." line per failure.
func printFailures(failed []string) {
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, f := range failed {
		fmt.Fprintf(out, "error: %s\n", f)
	}
}
