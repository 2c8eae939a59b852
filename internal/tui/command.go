package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
)

// Commands typed after ":". Any unique prefix works.
var commandNames = []string{
	"mode", "confirm", "new", "edit", "goto", "reopen", "purge", "help", "quit",
}

var commandAliases = map[string]string{
	"add":  "new",
	"exit": "quit",
	"?":    "help",
}

func (m *Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.command.Blur()
		m.mode = modeNormal
		return m, nil
	case "enter":
		line := m.command.Value()
		m.command.Blur()
		m.mode = modeNormal
		return m, m.runCommand(line)
	}

	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

func (m *Model) runCommand(line string) tea.Cmd {
	m.status, m.statusErr = "", false

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, err := cli.MatchCommand(fields[0], commandNames, commandAliases)
	if err != nil {
		m.setError(err)
		return nil
	}
	args := fields[1:]

	switch name {
	case "mode":
		if len(args) != 1 {
			m.setError(&cli.ValidationError{Message: "usage: mode finish|delete|none"})
			return nil
		}
		mode, err := ops.ParseMode(args[0])
		if err != nil {
			m.setError(err)
			return nil
		}
		if mode == ops.ModeNone {
			m.ctrl.Reset()
			m.setStatus("Selection cleared.")
			return nil
		}
		m.toggleMode(mode)
	case "confirm":
		return m.confirm()
	case "new":
		return m.openCreate()
	case "edit":
		if t, ok := m.resolve(args); ok {
			return m.openEdit(t)
		}
	case "goto":
		if t, ok := m.resolve(args); ok {
			m.jumpTo(t)
		}
	case "reopen":
		if t, ok := m.resolve(args); ok {
			m.reopen(t)
		}
	case "purge":
		if t, ok := m.resolve(args); ok {
			m.startPurge(t)
		}
	case "help":
		m.showHelp = true
	case "quit":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// resolve looks up the single task reference in args.
func (m *Model) resolve(args []string) (model.Task, bool) {
	if len(args) != 1 {
		m.setError(&cli.ValidationError{Message: "expected exactly one task ID"})
		return model.Task{}, false
	}
	t, err := m.store.Resolve(args[0])
	if err != nil {
		m.setError(err)
		return model.Task{}, false
	}
	return t, true
}

// jumpTo shows the list holding t with the cursor on it.
func (m *Model) jumpTo(t model.Task) {
	m.view = viewPending
	if t.Completed {
		m.view = viewDone
	}
	for i, task := range m.tasks() {
		if task.ID == t.ID {
			m.cursor = i
			return
		}
	}
}
