package ops

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Mode is the batch action the current selection applies to.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeFinish Mode = "finish"
	ModeDelete Mode = "delete"
)

// ParseMode parses a batch mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finish", "done", "complete":
		return ModeFinish, nil
	case "delete", "rm", "remove":
		return ModeDelete, nil
	case "none", "off", "":
		return ModeNone, nil
	}
	return "", &ValidationError{Field: "mode", Message: fmt.Sprintf("%q must be finish, delete or none", s)}
}

// ClickAction tells the caller what a click on a pending task did.
type ClickAction int

const (
	// ClickSelect means the task's selection was toggled.
	ClickSelect ClickAction = iota
	// ClickEdit means no batch mode is active and the edit flow should start.
	ClickEdit
)

// Batch is a frozen copy of a selection, taken when a batch is confirmed.
// Later changes to the controller do not affect it.
type Batch struct {
	Mode Mode
	IDs  []int64 // sorted ascending
}

// BatchResult reports what applying a batch did.
type BatchResult struct {
	Mode    Mode
	Applied []int64 // IDs the action was applied to
	Missing []int64 // IDs that no longer existed
}

// Controller tracks the batch mode and the set of selected task IDs, and
// applies the batch action to its TaskStore on confirmation.
//
// The selected set is always empty while the mode is ModeNone.
type Controller struct {
	store    *TaskStore
	mode     Mode
	selected map[int64]struct{}
	log      *zap.Logger
}

// NewController returns a controller in its initial state (no mode,
// nothing selected) acting on store.
func NewController(store *TaskStore) *Controller {
	return &Controller{
		store:    store,
		mode:     ModeNone,
		selected: make(map[int64]struct{}),
		log:      store.log,
	}
}

// Mode returns the active batch mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Active reports whether a batch mode is active.
func (c *Controller) Active() bool {
	return c.mode != ModeNone
}

// ToggleMode enters mode m with an empty selection. Requesting the mode
// that is already active exits to ModeNone. Switching directly between
// finish and delete starts over with an empty selection.
func (c *Controller) ToggleMode(m Mode) {
	if m == c.mode || m == ModeNone {
		c.Reset()
		return
	}
	c.mode = m
	c.clear()
	c.log.Debug("batch mode entered", zap.String("mode", string(m)))
}

// ToggleSelection adds id to the selection, or removes it if present.
// It reports whether id is selected afterwards. Selecting while no mode is
// active has no effect, which keeps the selection empty outside a batch.
func (c *Controller) ToggleSelection(id int64) bool {
	if c.mode == ModeNone {
		return false
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return false
	}
	c.selected[id] = struct{}{}
	return true
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id int64) bool {
	_, ok := c.selected[id]
	return ok
}

// Count returns the number of selected IDs.
func (c *Controller) Count() int {
	return len(c.selected)
}

// Selected returns the selected IDs in ascending order.
func (c *Controller) Selected() []int64 {
	ids := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ConfirmLabel returns the text of the confirm affordance, or "" when no
// mode is active.
func (c *Controller) ConfirmLabel() string {
	if c.mode == ModeNone {
		return ""
	}
	return fmt.Sprintf("Confirm (%d)", len(c.selected))
}

// ClickTask handles a click on a pending task. With a batch mode active it
// toggles the task's selection; otherwise it starts the edit flow.
func (c *Controller) ClickTask(id int64) ClickAction {
	if c.mode != ModeNone {
		c.ToggleSelection(id)
		return ClickSelect
	}
	c.BeginEdit()
	return ClickEdit
}

// BeginCreate resets the selection when the new-task flow starts.
func (c *Controller) BeginCreate() {
	c.Reset()
}

// BeginEdit resets the selection when the edit flow starts.
func (c *Controller) BeginEdit() {
	c.Reset()
}

// Reset returns to the initial state: no mode, nothing selected.
func (c *Controller) Reset() {
	if c.mode != ModeNone {
		c.log.Debug("batch mode exited", zap.String("mode", string(c.mode)))
	}
	c.mode = ModeNone
	c.clear()
}

func (c *Controller) clear() {
	for id := range c.selected {
		delete(c.selected, id)
	}
}

// Snapshot freezes the current mode and selection.
func (c *Controller) Snapshot() Batch {
	return Batch{Mode: c.mode, IDs: c.Selected()}
}

// ConfirmBatch applies the active mode to every selected ID, then resets
// the controller. The reset happens even if a write fails.
// Confirming with nothing selected, or with no mode, changes nothing.
func (c *Controller) ConfirmBatch() (BatchResult, error) {
	b := c.Snapshot()
	defer c.Reset()

	res, err := b.Apply(c.store)
	if err != nil {
		return res, err
	}
	if len(b.IDs) > 0 {
		c.log.Debug("batch applied",
			zap.String("mode", string(b.Mode)),
			zap.Int("applied", len(res.Applied)),
			zap.Int("missing", len(res.Missing)))
	}
	return res, nil
}

// Apply runs the batch against store. Each ID is handled independently;
// the first persistence failure stops the batch and is returned.
func (b Batch) Apply(store *TaskStore) (BatchResult, error) {
	res := BatchResult{Mode: b.Mode}

	for _, id := range b.IDs {
		switch b.Mode {
		case ModeDelete:
			_, lookupErr := store.Get(id)
			if err := store.Delete(id); err != nil {
				return res, err
			}
			if lookupErr != nil {
				res.Missing = append(res.Missing, id)
				continue
			}
			res.Applied = append(res.Applied, id)
		case ModeFinish:
			if _, err := store.ToggleStatus(id, true); err != nil {
				if errors.Is(err, ErrNotFound) {
					res.Missing = append(res.Missing, id)
					continue
				}
				return res, err
			}
			res.Applied = append(res.Applied, id)
		}
	}

	return res, nil
}
