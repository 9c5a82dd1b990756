package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dori/jotlist/internal/form"
	"github.com/dori/jotlist/internal/todo"
	"github.com/dori/jotlist/internal/ui/theme"
	"github.com/dori/jotlist/internal/view"
)

// RootModel is the main application model. It owns the repository and
// performs every mutation synchronously inside Update.
type RootModel struct {
	repo   *todo.Repository
	logger *log.Logger
	now    func() time.Time

	keys   KeyMap
	help   help.Model
	width  int
	height int

	mode   Mode
	list   listModel
	entry  *form.EntryForm
	editor editorModel

	helpVisible bool

	statusMsg string
}

// NewRootModel creates a new root model over repo
func NewRootModel(repo *todo.Repository, opts view.Options, logger *log.Logger) RootModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := RootModel{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		keys:   DefaultKeyMap(),
		help:   h,
		mode:   ModeNormal,
		list:   newListModel(opts),
		entry:  form.NewEntryForm(),
	}
	m.list.refresh(repo)
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.width = m.width
		m.list.height = m.contentHeight()
		m.list.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		// Clear status on any keypress
		m.statusMsg = ""

		inForm := m.mode != ModeNormal

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' is text while a form is open
			if msg.String() == "ctrl+c" || !inForm {
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if inForm {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.Add):
			m.mode = ModeAdd
			m.editor = newEntryEditor(m.entry)
			return m, nil

		case key.Matches(msg, m.keys.Edit):
			t, ok := m.list.selected()
			if !ok {
				return m, nil
			}
			m.mode = ModeEdit
			m.editor = newEditEditor(t)
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg, m.keys, m.repo)
		m.logger.Debug("list key", "key", msg.String(), "todos", m.repo.Len())
		return m, cmd

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	return m, nil
}

func (m RootModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editor, result, cmd := m.editor.Update(msg, m.keys, m.repo, m.now())
	m.editor = editor

	switch result {
	case editorSaved:
		m.logger.Debug("form saved", "mode", m.mode, "todos", m.repo.Len())
		m.mode = ModeNormal
		m.list.refresh(m.repo)
	case editorCancelled:
		m.mode = ModeNormal
	}
	return m, cmd
}

// cycleTheme switches to the next available theme
func (m RootModel) cycleTheme() tea.Cmd {
	next := theme.Next()
	theme.SetTheme(next)
	return func() tea.Msg {
		return ThemeChangedMsg{ThemeName: next.Name}
	}
}

// contentHeight is the space left between header and footer
func (m RootModel) contentHeight() int {
	// header (1) + status (1) + hints (1) + spacing
	return max(m.height-4, 1)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.contentHeight()
	var content string
	switch {
	case m.helpVisible:
		content = m.renderHelp()
	case m.mode != ModeNormal:
		content = m.editor.View(m.width)
	default:
		content = m.list.View(m.now())
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("jotlist")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.list.view.String()))
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	gap := max(m.width-lipgloss.Width(leftSide)-lipgloss.Width(themeIndicator), 0)

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var statusLine string
	if m.statusMsg != "" {
		statusLine = styles.Status.Render(m.statusMsg)
	}

	var hints string
	if m.mode != ModeNormal {
		hints = m.help.View(formHelp(m.keys))
	} else {
		hints = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return statusLine + "\n" + styles.Footer.Render(hints)
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Control.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.Control.Render("Form"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(formHelp(m.keys).FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Deadlines: 2026-01-02T15:04, 2026-01-02, today, tomorrow, nextweek, mon..sun"))

	return styles.Panel.Width(max(m.width-4, 30)).Render(b.String())
}
