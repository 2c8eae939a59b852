// Package tui is the interactive checklist screen over a task list.
package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
	"go.uber.org/zap"
)

// Options configures a session.
type Options struct {
	// ConfirmDelay is how long a confirmed batch stays on screen before
	// it is applied.
	ConfirmDelay time.Duration
	// DefaultPriority is prefilled in the new-task form.
	DefaultPriority model.Priority
	Logger          *zap.Logger
}

type listView int

const (
	viewPending listView = iota
	viewDone
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeForm
	modeCommand
	modePurge
	modeCommit // batch waiting out the confirmation delay; keys ignored
)

// commitMsg fires when the confirmation delay has passed.
type commitMsg struct{}

// Model is the bubbletea model of a session.
type Model struct {
	store *ops.TaskStore
	ctrl  *ops.Controller
	opts  Options
	log   *zap.Logger
	style styles

	view   listView
	mode   inputMode
	cursor int

	form    *taskForm
	command textinput.Model
	purge   model.Task
	batch   ops.Batch // frozen while modeCommit

	status    string
	statusErr bool
	showHelp  bool
	quitting  bool
	width     int
}

// New returns a session over store. The store must be initialized.
func New(store *ops.TaskStore, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if !opts.DefaultPriority.Valid() {
		opts.DefaultPriority = model.PriorityLow
	}

	command := textinput.New()
	command.Prompt = ":"
	command.Placeholder = "command"
	command.CharLimit = 120
	command.Width = 40

	return &Model{
		store:   store,
		ctrl:    ops.NewController(store),
		opts:    opts,
		log:     log,
		style:   newStyles(cli.ColorEnabled()),
		command: command,
	}
}

// Run starts an interactive session reading keys from in and drawing on
// out. It blocks until the user quits.
func Run(m *Model, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
	if cli.IsTerminal(out) {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case commitMsg:
		return m.commit()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeCommand:
			return m.updateCommand(msg)
		case modePurge:
			return m.updatePurge(msg)
		case modeCommit:
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}

	// Cursor blinks and the like go to whichever input has focus.
	var cmd tea.Cmd
	switch m.mode {
	case modeForm:
		cmd = m.form.update(msg)
	case modeCommand:
		m.command, cmd = m.command.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.tasks()) - 1
		m.clampCursor()
	case " ", "enter":
		return m, m.click()
	case "f":
		m.toggleMode(ops.ModeFinish)
	case "d":
		m.toggleMode(ops.ModeDelete)
	case "esc":
		if m.ctrl.Active() {
			m.ctrl.Reset()
			m.setStatus("Selection cleared.")
		}
	case "c":
		return m, m.confirm()
	case "n", "a":
		return m, m.openCreate()
	case "e":
		if t, ok := m.current(); ok {
			return m, m.openEdit(t)
		}
	case "tab":
		m.switchView()
	case "r":
		if t, ok := m.current(); ok {
			m.reopen(t)
		}
	case "x":
		if t, ok := m.current(); ok {
			m.startPurge(t)
		}
	case ":":
		m.mode = modeCommand
		m.command.Reset()
		return m, m.command.Focus()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// tasks returns the tasks of the current view in list order.
func (m *Model) tasks() []model.Task {
	if m.view == viewDone {
		return m.store.Completed()
	}
	return m.store.Pending()
}

// current returns the task under the cursor.
func (m *Model) current() (model.Task, bool) {
	tasks := m.tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) switchView() {
	if m.view == viewPending {
		m.view = viewDone
	} else {
		m.view = viewPending
	}
	m.cursor = 0
}

// click toggles the task under the cursor in a batch mode, or opens it
// for editing when no mode is active.
func (m *Model) click() tea.Cmd {
	t, ok := m.current()
	if !ok {
		return nil
	}
	if t.Completed {
		m.setStatus("r reopens, x deletes.")
		return nil
	}

	if m.ctrl.ClickTask(t.ID) == ops.ClickEdit {
		return m.openEdit(t)
	}
	m.setStatus(m.ctrl.ConfirmLabel())
	return nil
}

func (m *Model) toggleMode(mode ops.Mode) {
	// Batch modes only exist on a non-empty pending list.
	if mode != ops.ModeNone && mode != m.ctrl.Mode() && len(m.store.Pending()) == 0 {
		m.setError(errors.New("no pending tasks"))
		return
	}

	m.ctrl.ToggleMode(mode)
	if !m.ctrl.Active() {
		m.setStatus("Selection cleared.")
		return
	}
	if m.view != viewPending {
		m.view = viewPending
		m.cursor = 0
	}
	m.setStatus(fmt.Sprintf("Mode %s. Space selects, c confirms.", mode))
}

// confirm freezes the selection and schedules the batch to be applied
// once the confirmation delay has passed.
func (m *Model) confirm() tea.Cmd {
	if !m.ctrl.Active() {
		m.setError(errors.New("no batch mode active"))
		return nil
	}

	b := m.ctrl.Snapshot()
	if len(b.IDs) == 0 {
		m.ctrl.Reset()
		m.setStatus("Nothing selected.")
		return nil
	}

	m.batch = b
	m.mode = modeCommit
	m.setStatus(fmt.Sprintf("%s %d task(s)...", batchVerb(b.Mode), len(b.IDs)))
	return tea.Tick(m.opts.ConfirmDelay, func(time.Time) tea.Msg {
		return commitMsg{}
	})
}

func (m *Model) commit() (tea.Model, tea.Cmd) {
	if m.mode != modeCommit {
		return m, nil
	}
	m.mode = modeNormal

	res, err := m.ctrl.ConfirmBatch()
	m.clampCursor()
	if err != nil {
		m.log.Warn("batch failed", zap.String("mode", string(m.batch.Mode)), zap.Error(err))
		m.setError(err)
		return m, nil
	}

	msg := fmt.Sprintf("%d %s.", len(res.Applied), batchDone(res.Mode))
	if len(res.Missing) > 0 {
		msg += fmt.Sprintf(" %d no longer existed.", len(res.Missing))
	}
	m.setStatus(msg)
	return m, nil
}

func batchVerb(mode ops.Mode) string {
	if mode == ops.ModeDelete {
		return "Deleting"
	}
	return "Finishing"
}

func batchDone(mode ops.Mode) string {
	if mode == ops.ModeDelete {
		return "deleted"
	}
	return "done"
}

func (m *Model) reopen(t model.Task) {
	if !t.Completed {
		m.setError(fmt.Errorf("task %s is not done", model.FormatID(t.ID)))
		return
	}
	if _, err := m.store.ToggleStatus(t.ID, false); err != nil {
		m.setError(err)
		return
	}
	m.clampCursor()
	m.setStatus(fmt.Sprintf("%s reopened.", model.FormatID(t.ID)))
}

func (m *Model) startPurge(t model.Task) {
	if !t.Completed {
		m.setError(fmt.Errorf("task %s is not done; use delete mode", model.FormatID(t.ID)))
		return
	}
	m.purge = t
	m.mode = modePurge
}

func (m *Model) updatePurge(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	t := m.purge
	m.purge = model.Task{}

	switch msg.String() {
	case "y", "Y":
		if err := m.store.Delete(t.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampCursor()
		m.setStatus(fmt.Sprintf("%s deleted.", model.FormatID(t.ID)))
	default:
		m.setStatus("Canceled.")
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = cli.FormatError(err), true
}
