package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
)

type styles struct {
	title    lipgloss.Style
	tab      lipgloss.Style
	badge    lipgloss.Style
	cursor   lipgloss.Style
	high     lipgloss.Style
	medium   lipgloss.Style
	low      lipgloss.Style
	done     lipgloss.Style
	label    lipgloss.Style
	status   lipgloss.Style
	errStyle lipgloss.Style
	help     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, tab: plain, badge: plain, cursor: plain,
			high: plain, medium: plain, low: plain, done: plain,
			label: plain, status: plain, errStyle: plain, help: plain,
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		tab:      lipgloss.NewStyle().Underline(true),
		badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		high:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		low:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241")),
		label:    lipgloss.NewStyle().Bold(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

const (
	listHelp = "j/k move · space select/edit · f finish · d delete · c confirm · n new · e edit · tab done list · : command · ? help · q quit"
	doneHelp = "j/k move · r reopen · x delete · e edit · tab pending list · : command · q quit"
	formHelp = "tab/enter next field · enter on last field or ctrl+s saves · esc cancels"
)

const fullHelp = `Keys
  j/k, up/down  move the cursor
  space, enter  select the task in a batch mode, otherwise edit it
  f / d         enter or leave finish / delete mode
  c             confirm the batch
  esc           leave the batch mode
  n, e          new task, edit task under the cursor
  tab           switch between pending and completed tasks
  r, x          reopen or delete a completed task
  q             quit

Commands (after ":")
  mode finish|delete|none   goto <id>   edit <id>   reopen <id>
  purge <id>   confirm   new   help   quit`

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeCommand:
		b.WriteString(m.command.View())
	case modePurge:
		b.WriteString(fmt.Sprintf("Delete %q permanently? [y/N]", m.purge.Name))
	default:
		if m.status != "" {
			st := m.style.status
			if m.statusErr {
				st = m.style.errStyle
			}
			b.WriteString(st.Render(m.status))
		}
	}
	b.WriteString("\n")

	switch {
	case m.mode == modeForm:
		b.WriteString(m.style.help.Render(formHelp))
	case m.showHelp:
		b.WriteString(m.style.help.Render(fullHelp))
	case m.view == viewDone:
		b.WriteString(m.style.help.Render(doneHelp))
	default:
		b.WriteString(m.style.help.Render(listHelp))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) header() string {
	pending := fmt.Sprintf("Pending (%d)", len(m.store.Pending()))
	done := fmt.Sprintf("Done (%d)", len(m.store.Completed()))
	if m.view == viewDone {
		done = m.style.tab.Render(done)
	} else {
		pending = m.style.tab.Render(pending)
	}

	h := m.style.title.Render("daily") + "  " + pending + " | " + done
	if m.ctrl.Active() {
		h += "  " + m.style.badge.Render(fmt.Sprintf("%s: %s", m.ctrl.Mode(), m.ctrl.ConfirmLabel()))
	}
	return h
}

func (m *Model) listView() string {
	tasks := m.tasks()
	if len(tasks) == 0 {
		if m.view == viewDone {
			return "No completed tasks.\n"
		}
		return "No pending tasks.\n"
	}

	width := model.IDWidth(m.store.List())
	var b strings.Builder
	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = m.style.cursor.Render(">") + " "
		}

		mark := ""
		if m.ctrl.Active() && m.view == viewPending {
			mark = "[ ] "
			if m.ctrl.IsSelected(t.ID) {
				mark = "[x] "
			}
		}

		name := cli.Truncate(t.Name, cli.DefaultMaxNameWidth)
		if t.Completed {
			name = m.style.done.Render(name)
		}

		fmt.Fprintf(&b, "%s%s%s  %s  %s\n", cursor, mark, model.ShortID(t.ID, width), m.priority(t.Priority), name)
	}
	return b.String()
}

func (m *Model) priority(p model.Priority) string {
	label := fmt.Sprintf("%-6s", p.Label())
	switch p.Normalize() {
	case model.PriorityHigh:
		return m.style.high.Render(label)
	case model.PriorityMedium:
		return m.style.medium.Render(label)
	default:
		return m.style.low.Render(label)
	}
}

func (m *Model) formView() string {
	f := m.form
	var b strings.Builder

	if f.editing {
		fmt.Fprintf(&b, "Edit %s\n\n", model.FormatID(f.task.ID))
	} else {
		b.WriteString("New task\n\n")
	}

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-12s", fieldLabels[i]+":")
		if i == f.focus {
			label = m.style.label.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, in.View())
	}
	return b.String()
}
