package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/daily/internal/model"
)

const (
	fieldName = iota
	fieldDesc
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Priority"}

// taskForm holds the inputs of the new and edit forms.
type taskForm struct {
	editing bool
	task    model.Task // the task being edited
	inputs  [fieldCount]textinput.Model
	focus   int

	// shownDesc is the description as the single-line input shows it.
	// Multi-line descriptions are flattened there, so an untouched field
	// keeps the original text.
	shownDesc string
}

func newTaskForm(editing bool, t model.Task) *taskForm {
	f := &taskForm{editing: editing, task: t}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 50
		f.inputs[i] = in
	}

	f.inputs[fieldName].Placeholder = "What needs doing?"
	f.inputs[fieldName].CharLimit = 200
	f.inputs[fieldDesc].Placeholder = "optional"
	f.inputs[fieldPriority].Placeholder = "high, medium or low"
	f.inputs[fieldPriority].CharLimit = 10

	f.inputs[fieldName].SetValue(t.Name)
	f.inputs[fieldDesc].SetValue(t.Desc)
	f.inputs[fieldPriority].SetValue(string(t.Priority))
	f.shownDesc = f.inputs[fieldDesc].Value()
	return f
}

func (f *taskForm) focusField(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	cmd := f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
	return cmd
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) desc() string {
	v := f.inputs[fieldDesc].Value()
	if v == f.shownDesc {
		return f.task.Desc
	}
	return v
}

func (f *taskForm) priority(def model.Priority) (model.Priority, error) {
	v := strings.TrimSpace(f.inputs[fieldPriority].Value())
	if v == "" {
		return def, nil
	}
	return model.ParsePriority(v)
}

func (m *Model) openCreate() tea.Cmd {
	m.ctrl.BeginCreate()
	m.form = newTaskForm(false, model.Task{Priority: m.opts.DefaultPriority})
	m.mode = modeForm
	return m.form.focusField(fieldName)
}

func (m *Model) openEdit(t model.Task) tea.Cmd {
	m.ctrl.BeginEdit()
	t.Priority = t.Priority.Normalize()
	m.form = newTaskForm(true, t)
	m.mode = modeForm
	return m.form.focusField(fieldName)
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeNormal
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		m.closeForm()
		m.setStatus("Canceled.")
		return m, nil
	case "tab", "down":
		return m, f.focusField(f.focus + 1)
	case "shift+tab", "up":
		return m, f.focusField(f.focus - 1)
	case "ctrl+s":
		m.submitForm()
		return m, nil
	case "enter":
		if f.focus < fieldCount-1 {
			return m, f.focusField(f.focus + 1)
		}
		m.submitForm()
		return m, nil
	}

	return m, f.update(msg)
}

// submitForm saves the form. On a validation error the form stays open.
func (m *Model) submitForm() {
	f := m.form

	priority, err := f.priority(m.opts.DefaultPriority)
	if err != nil {
		m.setError(err)
		return
	}
	name := f.inputs[fieldName].Value()

	if f.editing {
		if _, err := m.store.Update(f.task.ID, name, f.desc(), priority); err != nil {
			m.setError(err)
			return
		}
		m.closeForm()
		m.setStatus(fmt.Sprintf("%s updated.", model.FormatID(f.task.ID)))
		return
	}

	t, err := m.store.Add(name, f.desc(), priority)
	if err != nil {
		m.setError(err)
		return
	}
	m.closeForm()
	m.view = viewPending
	m.cursor = len(m.store.Pending()) - 1
	m.setStatus(fmt.Sprintf("%s added.", model.FormatID(t.ID)))
}
