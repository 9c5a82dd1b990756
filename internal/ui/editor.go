package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/jotlist/internal/form"
	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/todo"
	"github.com/dori/jotlist/internal/ui/theme"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldDeadline
	fieldPriority
	fieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDeadline:    "Deadline",
	fieldPriority:    "Priority",
	fieldTags:        "Tags",
}

// editorModel drives the add and edit forms. Exactly one of entry and edit
// is set.
type editorModel struct {
	inputs [fieldCount]textinput.Model
	focus  field

	entry *form.EntryForm
	edit  *form.EditForm

	// deadlineErr is the live check shown while typing a deadline.
	deadlineErr error
}

func newInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		inputs[i] = ti
	}
	inputs[fieldTitle].Placeholder = "What needs doing?"
	inputs[fieldDescription].Placeholder = "optional"
	inputs[fieldDeadline].Placeholder = "2026-01-02T15:04, tomorrow, fri"
	inputs[fieldPriority].Placeholder = "C-p to cycle"
	inputs[fieldTags].Placeholder = "work, urgent"
	inputs[fieldTitle].Focus()
	return inputs
}

// newEntryEditor wraps the persistent entry form so typed values survive
// closing and reopening it.
func newEntryEditor(f *form.EntryForm) editorModel {
	m := editorModel{inputs: newInputs(), entry: f}
	m.load(f.Input)
	return m
}

func newEditEditor(t model.Todo) editorModel {
	f := form.NewEditForm(t)
	m := editorModel{inputs: newInputs(), edit: f}
	m.load(f.Input)
	return m
}

func (m *editorModel) load(in form.Input) {
	m.inputs[fieldTitle].SetValue(in.Title)
	m.inputs[fieldDescription].SetValue(in.Description)
	m.inputs[fieldDeadline].SetValue(in.Deadline)
	m.inputs[fieldPriority].SetValue(in.Priority)
	m.inputs[fieldTags].SetValue(in.Tags)
}

func (m *editorModel) input() form.Input {
	return form.Input{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Deadline:    m.inputs[fieldDeadline].Value(),
		Priority:    m.inputs[fieldPriority].Value(),
		Tags:        m.inputs[fieldTags].Value(),
	}
}

// sync copies the text inputs back into the wrapped form.
func (m *editorModel) sync() {
	if m.entry != nil {
		m.entry.Input = m.input()
	} else {
		m.edit.Input = m.input()
	}
}

func (m *editorModel) err() error {
	if m.entry != nil && m.entry.Err != nil {
		return m.entry.Err
	}
	if m.edit != nil && m.edit.Err != nil {
		return m.edit.Err
	}
	return m.deadlineErr
}

// clearSubmitErr drops the error from the last submit once a field changes.
func (m *editorModel) clearSubmitErr() {
	if m.entry != nil {
		m.entry.Err = nil
	} else {
		m.edit.Err = nil
	}
}

func (m *editorModel) setFocus(f field) {
	m.inputs[m.focus].Blur()
	m.focus = (f + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

// editorResult tells the root model what the last key did to the form.
type editorResult int

const (
	editorContinue editorResult = iota
	editorSaved
	editorCancelled
)

// Update handles a key while the form is open. Repository calls happen
// here, on the Update goroutine.
func (m editorModel) Update(msg tea.KeyMsg, keys KeyMap, repo *todo.Repository, now time.Time) (editorModel, editorResult, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		if m.entry != nil {
			m.sync()
			m.entry.Err = nil
		} else {
			m.edit.Cancel()
		}
		return m, editorCancelled, nil

	case key.Matches(msg, keys.Submit):
		m.sync()
		if m.entry != nil {
			created, err := m.entry.Submit(repo, now)
			if err != nil {
				return m, editorContinue, nil
			}
			m.load(m.entry.Input)
			m.setFocus(fieldTitle)
			m.deadlineErr = nil
			return m, editorSaved, statusCmd("Added %q", created.Text)
		}
		if err := m.edit.Save(repo, now); err != nil {
			return m, editorContinue, nil
		}
		return m, editorSaved, statusCmd("Saved %q", m.edit.Title)

	case key.Matches(msg, keys.NextField):
		m.setFocus(m.focus + 1)
		return m, editorContinue, nil

	case key.Matches(msg, keys.PrevField):
		m.setFocus(m.focus - 1)
		return m, editorContinue, nil

	case key.Matches(msg, keys.CyclePriority):
		p := model.Priority(strings.TrimSpace(m.inputs[fieldPriority].Value()))
		m.inputs[fieldPriority].SetValue(string(p.Next()))
		m.clearSubmitErr()
		return m, editorContinue, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.clearSubmitErr()
	}
	if m.focus == fieldDeadline {
		_, m.deadlineErr = form.CheckDeadline(m.inputs[fieldDeadline].Value(), now)
	}
	return m, editorContinue, cmd
}

// View renders the form as a bordered panel.
func (m editorModel) View(width int) string {
	styles := theme.Current.Styles

	title := "New todo"
	if m.edit != nil {
		title = "Edit todo"
	}

	var b strings.Builder
	b.WriteString(styles.Control.Render(title))
	b.WriteString("\n\n")

	inputWidth := max(width-20, 20)
	for i := field(0); i < fieldCount; i++ {
		label := styles.FieldLabel
		if i == m.focus {
			label = styles.FieldLabelFocused
		}
		in := m.inputs[i]
		in.Width = inputWidth
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), in.View()))
		b.WriteString("\n")
	}

	if err := m.err(); err != nil {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(err.Error()))
	}

	return styles.Panel.Width(max(width-4, 30)).Render(b.String())
}
