package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/todo"
	"github.com/dori/jotlist/internal/ui/theme"
	"github.com/dori/jotlist/internal/view"
)

// listModel shows one partition of the projected collection
type listModel struct {
	opts   view.Options
	view   View
	result view.Result

	cursor       int
	scrollOffset int
	width        int
	height       int
}

func newListModel(opts view.Options) listModel {
	return listModel{opts: opts, view: ViewActive}
}

// refresh recomputes the projection from the repository. Called after every
// mutation and control change.
func (l *listModel) refresh(repo *todo.Repository) {
	todos := repo.Todos()
	// A tag that no longer exists in the collection stops filtering.
	if l.opts.Tag != "" && !slices.Contains(view.Vocabulary(todos), l.opts.Tag) {
		l.opts.Tag = ""
	}
	l.result = view.Query(todos, l.opts)
	l.clampCursor()
}

// items returns the todos in the current partition
func (l listModel) items() []model.Todo {
	if l.view == ViewCompleted {
		return l.result.Completed
	}
	return l.result.Active
}

// selected returns the todo under the cursor
func (l listModel) selected() (model.Todo, bool) {
	items := l.items()
	if l.cursor < 0 || l.cursor >= len(items) {
		return model.Todo{}, false
	}
	return items[l.cursor], true
}

func (l *listModel) clampCursor() {
	n := len(l.items())
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureCursorVisible()
}

// visibleCount returns how many todos fit in the viewport
func (l listModel) visibleCount() int {
	// Reserve lines for the controls bar and its spacing
	available := l.height - 2
	if available < 1 {
		available = 1
	}
	return available
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (l *listModel) ensureCursorVisible() {
	visible := l.visibleCount()

	if l.cursor < l.scrollOffset {
		l.scrollOffset = l.cursor
	}
	if l.cursor >= l.scrollOffset+visible {
		l.scrollOffset = l.cursor - visible + 1
	}

	maxOffset := max(len(l.items())-visible, 0)
	l.scrollOffset = min(max(l.scrollOffset, 0), maxOffset)
}

// Update handles a key in normal mode. Mutations go straight to the
// repository; the returned command only carries a status line.
func (l listModel) Update(msg tea.KeyMsg, keys KeyMap, repo *todo.Repository) (listModel, tea.Cmd) {
	var cmd tea.Cmd
	items := l.items()

	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(items)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Top):
		l.cursor = 0
	case key.Matches(msg, keys.Bottom):
		l.cursor = len(items) - 1

	case key.Matches(msg, keys.Toggle):
		if t, ok := l.selected(); ok {
			repo.ToggleComplete(t.ID)
			if t.Completed {
				cmd = statusCmd("Reopened %q", t.Text)
			} else {
				cmd = statusCmd("Completed %q", t.Text)
			}
		}
	case key.Matches(msg, keys.Restore):
		if t, ok := l.selected(); ok && t.Completed {
			repo.Restore(t.ID)
			cmd = statusCmd("Restored %q", t.Text)
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := l.selected(); ok {
			repo.Remove(t.ID)
			cmd = statusCmd("Deleted %q", t.Text)
		}
	case key.Matches(msg, keys.ClearCompleted):
		n := repo.ClearCompleted()
		cmd = statusCmd("Cleared %d completed", n)

	case key.Matches(msg, keys.SwitchView):
		if l.view == ViewActive {
			l.view = ViewCompleted
		} else {
			l.view = ViewActive
		}
		l.cursor, l.scrollOffset = 0, 0
	case key.Matches(msg, keys.SortKey):
		l.opts.SortBy = l.opts.SortBy.Next()
	case key.Matches(msg, keys.SortOrder):
		l.opts.Order = l.opts.Order.Toggle()
	case key.Matches(msg, keys.TagFilter):
		l.opts.Tag = view.NextTag(l.opts.Tag, l.result.Tags)
		l.cursor = 0
	case key.Matches(msg, keys.ClearTag):
		l.opts.Tag = ""
	}

	l.refresh(repo)
	return l, cmd
}

// View renders the controls bar and the visible slice of the list
func (l listModel) View(now time.Time) string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(l.renderControls())
	b.WriteString("\n\n")

	items := l.items()
	if len(items) == 0 {
		msg := "Nothing to do. Press a to add a todo."
		if l.view == ViewCompleted {
			msg = "No completed todos."
		}
		b.WriteString(styles.Empty.Render(msg))
		return b.String()
	}

	end := min(l.scrollOffset+l.visibleCount(), len(items))
	for i := l.scrollOffset; i < end; i++ {
		b.WriteString(l.renderTodo(items[i], i == l.cursor, now))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (l listModel) renderControls() string {
	styles := theme.Current.Styles

	arrow := "↑"
	if l.opts.Order == view.Desc {
		arrow = "↓"
	}
	tag := "all"
	if l.opts.Tag != "" {
		tag = "#" + l.opts.Tag
	}

	parts := []string{
		styles.Label.Render("sort ") + styles.Control.Render(l.opts.SortBy.Label()+" "+arrow),
		styles.Label.Render("tag ") + styles.Control.Render(tag),
		styles.Label.Render(fmt.Sprintf("active %d  done %d", len(l.result.Active), len(l.result.Completed))),
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "   "))
}

func (l listModel) renderTodo(t model.Todo, isCursor bool, now time.Time) string {
	styles := theme.Current.Styles

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	cursor := " "
	if isCursor {
		cursor = ">"
	}

	titleStyle := styles.TodoNormal
	if t.Completed {
		titleStyle = styles.TodoDone
	} else if t.IsOverdue(now) {
		titleStyle = styles.TodoOverdue
	}

	meta := []string{styles.Priority(t.Priority).Render(string(t.Priority))}
	if t.Deadline != nil {
		dueStyle := styles.Deadline
		if !t.Completed && t.IsOverdue(now) {
			dueStyle = styles.TodoOverdue
		}
		meta = append(meta, dueStyle.Render("due "+formatDeadline(*t.Deadline, now)))
	}
	for _, tg := range t.Tags {
		meta = append(meta, styles.Tag.Render(tg))
	}

	line := fmt.Sprintf("%s %s %s  %s", cursor, checkbox, titleStyle.Render(t.Text), strings.Join(meta, " "))
	if t.Description != "" {
		line += "  " + styles.Description.Render(t.Description)
	}

	if isCursor {
		return styles.TodoSelected.Width(max(l.width, 0)).Render(line)
	}
	return line
}

func formatDeadline(d, now time.Time) string {
	d = d.Local()
	if d.Year() == now.Year() {
		return d.Format("Jan 2 15:04")
	}
	return d.Format("Jan 2 2006 15:04")
}
