package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// View selects which partition of the list is shown
type View int

const (
	ViewActive View = iota
	ViewCompleted
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewActive:
		return "Active"
	case ViewCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Mode is what the keyboard is currently driving
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
)

// Messages for inter-component communication

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}

func statusCmd(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: fmt.Sprintf(format, args...)}
	}
}

