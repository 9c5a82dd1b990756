package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/jotlist/internal/form"
	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/storage"
	"github.com/dori/jotlist/internal/todo"
	"github.com/dori/jotlist/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*todo.Repository, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	n, tick := 0, 0
	repo := todo.New(storage.New(mem, nil),
		todo.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		todo.WithClock(func() time.Time {
			tick++
			return testNow.Add(time.Duration(tick) * time.Minute)
		}),
	)
	return repo, mem
}

func newTestModel(t *testing.T, repo *todo.Repository) RootModel {
	t.Helper()
	m := NewRootModel(repo, view.DefaultOptions(), nil)
	m.now = func() time.Time { return testNow }
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(m RootModel, msg tea.Msg) RootModel {
	next, _ := m.Update(msg)
	return next.(RootModel)
}

func press(m RootModel, keys ...string) RootModel {
	for _, k := range keys {
		m = send(m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(m RootModel, s string) RootModel {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestAddFormCreatesTodo(t *testing.T) {
	repo, mem := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a")
	require.Equal(t, ModeAdd, m.mode)

	m = typeText(m, "buy milk")
	m = press(m, "tab", "tab", "tab", "ctrl+p", "tab")
	m = typeText(m, "home, errands")
	m = press(m, "enter")

	assert.Equal(t, ModeNormal, m.mode)
	todos := repo.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Text)
	assert.Equal(t, model.PriorityLow, todos[0].Priority)
	assert.Equal(t, []string{"home", "errands"}, todos[0].Tags)
	assert.Equal(t, 1, mem.Writes)

	// The entry form is cleared after a successful submit.
	assert.Equal(t, "", m.entry.Title)
	assert.Equal(t, string(model.PriorityMedium), m.entry.Priority)
}

func TestAddFormRejectsEmptyTitle(t *testing.T) {
	repo, mem := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a")
	m = typeText(m, "   ")
	m = press(m, "enter")

	assert.Equal(t, ModeAdd, m.mode)
	assert.ErrorIs(t, m.editor.err(), form.ErrTitleRequired)
	assert.Equal(t, 0, repo.Len())
	assert.Equal(t, 0, mem.Writes)
	assert.Contains(t, m.View(), "title required")
}

func TestSubmitErrorClearsOnTyping(t *testing.T) {
	repo, _ := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a", "enter")
	require.ErrorIs(t, m.editor.err(), form.ErrTitleRequired)

	m = press(m, "tab")
	assert.ErrorIs(t, m.editor.err(), form.ErrTitleRequired)

	m = press(m, "tab")
	m = typeText(m, "2020-01-01T09:00")
	assert.ErrorIs(t, m.editor.err(), form.ErrDeadlineInPast)
	assert.NotContains(t, m.View(), "title required")

	m = press(m, "shift+tab", "shift+tab")
	m = typeText(m, "late")
	m = press(m, "enter")
	assert.ErrorIs(t, m.editor.err(), form.ErrDeadlineInPast)
	assert.Equal(t, 0, repo.Len())
}

func TestAddFormFlagsPastDeadlineWhileTyping(t *testing.T) {
	repo, _ := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a")
	m = typeText(m, "late")
	m = press(m, "tab", "tab")
	m = typeText(m, "2020-01-01T09:00")

	assert.ErrorIs(t, m.editor.err(), form.ErrDeadlineInPast)

	m = press(m, "enter")
	assert.Equal(t, ModeAdd, m.mode)
	assert.Equal(t, 0, repo.Len())
}

func TestEscKeepsEntryDraft(t *testing.T) {
	repo, _ := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a")
	m = typeText(m, "half")
	m = press(m, "esc")
	require.Equal(t, ModeNormal, m.mode)

	m = press(m, "a")
	assert.Equal(t, "half", m.editor.inputs[fieldTitle].Value())
	assert.Equal(t, 0, repo.Len())
}

func TestQuitKeyIsTextInsideForm(t *testing.T) {
	repo, _ := newTestRepo(t)
	m := newTestModel(t, repo)

	m = press(m, "a", "q")
	assert.Equal(t, ModeAdd, m.mode)
	assert.Equal(t, "q", m.editor.inputs[fieldTitle].Value())

	m = press(m, "esc")
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestToggleMovesBetweenPartitions(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Create(todo.Payload{Text: "a"})
	m := newTestModel(t, repo)
	require.Len(t, m.list.items(), 1)

	m = press(m, "tab")
	assert.Empty(t, m.list.result.Active)
	require.Len(t, m.list.result.Completed, 1)
	assert.True(t, repo.Todos()[0].Completed)

	m = press(m, "c")
	assert.Equal(t, ViewCompleted, m.list.view)
	require.Len(t, m.list.items(), 1)

	m = press(m, "r")
	assert.False(t, repo.Todos()[0].Completed)
	assert.Empty(t, m.list.items())
}

func TestDeleteAndClearCompleted(t *testing.T) {
	repo, _ := newTestRepo(t)
	a := repo.Create(todo.Payload{Text: "a"})
	repo.Create(todo.Payload{Text: "b"})
	c := repo.Create(todo.Payload{Text: "c"})
	repo.ToggleComplete(a.ID)
	repo.ToggleComplete(c.ID)
	m := newTestModel(t, repo)

	m = press(m, "d")
	assert.Equal(t, 2, repo.Len())

	m = press(m, "X")
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, m.list.result.Completed)
}

func TestEditFormSavesChanges(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := repo.Create(todo.Payload{Text: "old", Tags: []string{"x"}})
	m := newTestModel(t, repo)

	m = press(m, "enter")
	require.Equal(t, ModeEdit, m.mode)
	assert.Equal(t, "old", m.editor.inputs[fieldTitle].Value())
	assert.Equal(t, "x", m.editor.inputs[fieldTags].Value())

	m = press(m, "ctrl+u")
	m = typeText(m, "new")
	m = press(m, "enter")

	assert.Equal(t, ModeNormal, m.mode)
	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "new", got.Text)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestEditFormCancelLeavesTodo(t *testing.T) {
	repo, mem := newTestRepo(t)
	created := repo.Create(todo.Payload{Text: "keep"})
	writes := mem.Writes
	m := newTestModel(t, repo)

	m = press(m, "enter", "ctrl+u")
	m = typeText(m, "changed")
	m = press(m, "esc")

	assert.Equal(t, ModeNormal, m.mode)
	got, _ := repo.Get(created.ID)
	assert.Equal(t, "keep", got.Text)
	assert.Equal(t, writes, mem.Writes)
}

func TestControlsReorderAndFilter(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Create(todo.Payload{Text: "first", Tags: []string{"work"}})
	repo.Create(todo.Payload{Text: "second", Tags: []string{"home"}})
	m := newTestModel(t, repo)

	// Newest first by default.
	assert.Equal(t, "second", m.list.items()[0].Text)

	m = press(m, "o")
	assert.Equal(t, view.Asc, m.list.opts.Order)
	assert.Equal(t, "first", m.list.items()[0].Text)

	m = press(m, "s")
	assert.Equal(t, view.SortByDeadline, m.list.opts.SortBy)

	m = press(m, "t")
	assert.Equal(t, "home", m.list.opts.Tag)
	require.Len(t, m.list.items(), 1)
	assert.Equal(t, "second", m.list.items()[0].Text)

	m = press(m, "T")
	assert.Equal(t, "", m.list.opts.Tag)
	assert.Len(t, m.list.items(), 2)
}

func TestFilterDropsVanishedTag(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Create(todo.Payload{Text: "only", Tags: []string{"solo"}})
	m := newTestModel(t, repo)

	m = press(m, "t")
	require.Equal(t, "solo", m.list.opts.Tag)

	m = press(m, "d")
	assert.Equal(t, "", m.list.opts.Tag)
}

func TestViewRendersTodos(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Create(todo.Payload{Text: "render me", Tags: []string{"ui"}})
	m := newTestModel(t, repo)

	out := m.View()
	assert.Contains(t, out, "jotlist")
	assert.Contains(t, out, "render me")
	assert.Contains(t, out, "ui")
	assert.Contains(t, out, "[Active]")
}
