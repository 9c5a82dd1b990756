package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/jotlist/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Info      lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	TagBg     lipgloss.Color

	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	TodoNormal   lipgloss.Style
	TodoSelected lipgloss.Style
	TodoDone     lipgloss.Style
	TodoOverdue  lipgloss.Style
	Description  lipgloss.Style

	Label    lipgloss.Style
	Tag      lipgloss.Style
	Deadline lipgloss.Style
	Control  lipgloss.Style
	Empty    lipgloss.Style

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	Panel             lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style

	priority map[model.Priority]lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TodoNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TodoSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Bold(true),

		TodoDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		TodoOverdue: lipgloss.NewStyle().
			Foreground(t.Error),

		Description: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Tag: lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.TagBg).
			Padding(0, 1).
			MarginRight(1),

		Deadline: lipgloss.NewStyle().
			Foreground(t.Warning),

		Control: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Padding(1, 2),

		FieldLabel: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Width(12),

		FieldLabelFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Width(12),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		Status: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Padding(0, 1),

		priority: map[model.Priority]lipgloss.Style{
			model.PriorityHigh:   lipgloss.NewStyle().Foreground(t.PriorityHigh).Bold(true),
			model.PriorityMedium: lipgloss.NewStyle().Foreground(t.PriorityMedium),
			model.PriorityLow:    lipgloss.NewStyle().Foreground(t.PriorityLow),
		},
	}
}

// Priority returns the badge style for p
func (s Styles) Priority(p model.Priority) lipgloss.Style {
	if st, ok := s.priority[p]; ok {
		return st
	}
	return s.priority[model.PriorityMedium]
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the current one
func Next() Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == Current.Theme.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
