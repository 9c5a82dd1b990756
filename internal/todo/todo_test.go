package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// newTestRepo returns a repository with a ticking clock and sequential ids.
func newTestRepo(t *testing.T) (*Repository, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	n := 0
	tick := 0
	repo := New(storage.New(mem, nil),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time {
			tick++
			return baseTime.Add(time.Duration(tick) * time.Minute)
		}),
	)
	return repo, mem
}

func TestCreateAssignsUniqueIDAndDefaults(t *testing.T) {
	repo, mem := newTestRepo(t)

	a := repo.Create(Payload{Text: "a"})
	b := repo.Create(Payload{Text: "b", Priority: model.PriorityHigh, Tags: []string{"x"}})

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Completed)
	assert.Equal(t, model.PriorityMedium, a.Priority)
	assert.Equal(t, []string{}, a.Tags)
	assert.True(t, a.CreatedAt.Before(b.CreatedAt))

	todos := repo.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "a", todos[0].Text, "create appends")
	assert.Equal(t, "b", todos[1].Text)
	assert.Equal(t, 2, mem.Writes)
}

func TestCreateRegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	repo := New(storage.New(storage.NewMemory(), nil), WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	a := repo.Create(Payload{Text: "a"})
	b := repo.Create(Payload{Text: "b"})
	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "fresh", b.ID)
}

func TestCreatePersistsAcrossReload(t *testing.T) {
	mem := storage.NewMemory()
	repo := New(storage.New(mem, nil))
	created := repo.Create(Payload{Text: "keep me"})

	reloaded := New(storage.New(mem, nil))
	got, ok := reloaded.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "keep me", got.Text)
}

func TestToggleCompleteIsInvolution(t *testing.T) {
	repo, _ := newTestRepo(t)
	td := repo.Create(Payload{Text: "a"})

	repo.ToggleComplete(td.ID)
	got, _ := repo.Get(td.ID)
	assert.True(t, got.Completed)

	repo.ToggleComplete(td.ID)
	got, _ = repo.Get(td.ID)
	assert.False(t, got.Completed)
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo, mem := newTestRepo(t)
	a := repo.Create(Payload{Text: "a"})
	repo.Create(Payload{Text: "b"})

	repo.Remove(a.ID)
	assert.Equal(t, 1, repo.Len())

	assert.NotPanics(t, func() { repo.Remove(a.ID) })
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, 4, mem.Writes, "every mutation writes, including no-ops")
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.Create(Payload{Text: "a"})
	before := repo.Todos()

	text := "changed"
	repo.ToggleComplete("missing")
	repo.Restore("missing")
	repo.Edit("missing", Update{Text: &text})

	assert.Equal(t, before, repo.Todos())
}

func TestRestoreClearsCompleted(t *testing.T) {
	repo, _ := newTestRepo(t)
	td := repo.Create(Payload{Text: "a"})

	repo.Restore(td.ID)
	got, _ := repo.Get(td.ID)
	assert.False(t, got.Completed)

	repo.ToggleComplete(td.ID)
	repo.Restore(td.ID)
	got, _ = repo.Get(td.ID)
	assert.False(t, got.Completed)
}

func TestEditMergesOnlyGivenFields(t *testing.T) {
	repo, _ := newTestRepo(t)
	deadline := baseTime.Add(72 * time.Hour)
	td := repo.Create(Payload{
		Text:        "a",
		Description: "desc",
		Deadline:    &deadline,
		Priority:    model.PriorityLow,
		Tags:        []string{"x"},
	})

	text := "renamed"
	repo.Edit(td.ID, Update{Text: &text})

	got, _ := repo.Get(td.ID)
	assert.Equal(t, "renamed", got.Text)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, []string{"x"}, got.Tags)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, td.ID, got.ID)
	assert.Equal(t, td.CreatedAt, got.CreatedAt)
}

func TestEditClearsDeadline(t *testing.T) {
	repo, _ := newTestRepo(t)
	deadline := baseTime.Add(time.Hour)
	td := repo.Create(Payload{Text: "a", Deadline: &deadline})

	repo.Edit(td.ID, Update{ClearDeadline: true})
	got, _ := repo.Get(td.ID)
	assert.Nil(t, got.Deadline)
}

func TestPayloadUpdateOverwritesEverything(t *testing.T) {
	repo, _ := newTestRepo(t)
	deadline := baseTime.Add(time.Hour)
	td := repo.Create(Payload{Text: "a", Description: "d", Deadline: &deadline, Tags: []string{"x"}})

	repo.Edit(td.ID, Payload{Text: "b", Priority: model.PriorityHigh}.Update())

	got, _ := repo.Get(td.ID)
	assert.Equal(t, "b", got.Text)
	assert.Equal(t, "", got.Description)
	assert.Nil(t, got.Deadline)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestClearCompletedKeepsActiveOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	var ids []string
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, repo.Create(Payload{Text: s}).ID)
	}
	repo.ToggleComplete(ids[1])
	repo.ToggleComplete(ids[3])

	removed := repo.ClearCompleted()
	assert.Equal(t, 2, removed)

	var texts []string
	for _, td := range repo.Todos() {
		assert.False(t, td.Completed)
		texts = append(texts, td.Text)
	}
	assert.Equal(t, []string{"a", "c", "e"}, texts)
}

func TestTodosReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t)
	td := repo.Create(Payload{Text: "a", Tags: []string{"x"}})

	todos := repo.Todos()
	todos[0].Text = "mutated"
	todos[0].Tags[0] = "y"

	got, _ := repo.Get(td.ID)
	assert.Equal(t, "a", got.Text)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestResolve(t *testing.T) {
	repo := New(storage.New(storage.NewMemory(), nil), WithIDGenerator(func() func() string {
		ids := []string{"abc123", "abd456", "xyz789"}
		return func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}
	}()))
	for _, s := range []string{"a", "b", "c"} {
		repo.Create(Payload{Text: s})
	}

	id, err := repo.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, "xyz789", id)

	id, err = repo.Resolve("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = repo.Resolve("ab")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = repo.Resolve("q")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Resolve("  ")
	assert.ErrorIs(t, err, ErrNotFound)
}
