package form

import (
	"strings"
	"time"

	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/todo"
)

// Creator creates todos from validated payloads.
type Creator interface {
	Create(todo.Payload) model.Todo
}

// Editor applies edits to existing todos.
type Editor interface {
	Edit(id string, u todo.Update)
}

// EntryForm is the form for new todos.
type EntryForm struct {
	Input
	Err error
}

// NewEntryForm returns an empty form with medium priority.
func NewEntryForm() *EntryForm {
	f := &EntryForm{}
	f.Reset()
	return f
}

// Reset clears every field back to its default.
func (f *EntryForm) Reset() {
	f.Input = Input{Priority: string(model.PriorityMedium)}
	f.Err = nil
}

// CheckDeadline reports the deadline error, if any, without submitting.
func (f *EntryForm) CheckDeadline(now time.Time) error {
	_, err := CheckDeadline(f.Deadline, now)
	return err
}

// Submit validates the form and creates the todo. On success the form is
// reset; on failure the fields are kept and Err is set.
func (f *EntryForm) Submit(repo Creator, now time.Time) (model.Todo, error) {
	payload, err := Validate(f.Input, now)
	if err != nil {
		f.Err = err
		return model.Todo{}, err
	}
	created := repo.Create(payload)
	f.Reset()
	return created, nil
}

// EditForm is the form for changing an existing todo.
type EditForm struct {
	Input
	Err error

	orig   model.Todo
	loc    *time.Location
	seeded string
}

// NewEditForm seeds a form from t, rendering the deadline in local time.
func NewEditForm(t model.Todo) *EditForm {
	return NewEditFormIn(t, time.Local)
}

// NewEditFormIn seeds a form from t, rendering the deadline in loc.
func NewEditFormIn(t model.Todo, loc *time.Location) *EditForm {
	f := &EditForm{orig: t.Clone(), loc: loc}
	f.Cancel()
	return f
}

// ID returns the id of the todo being edited.
func (f *EditForm) ID() string {
	return f.orig.ID
}

// Cancel discards changes and reseeds the fields from the original todo.
func (f *EditForm) Cancel() {
	f.seeded = FormatDeadline(f.orig.Deadline, f.loc)
	f.Input = Input{
		Title:       f.orig.Text,
		Description: f.orig.Description,
		Deadline:    f.seeded,
		Priority:    string(f.orig.Priority),
		Tags:        FormatTags(f.orig.Tags),
	}
	f.Err = nil
}

// deadlineChanged reports whether the deadline text differs from what the
// form was seeded with.
func (f *EditForm) deadlineChanged() bool {
	return strings.TrimSpace(f.Deadline) != f.seeded
}

// Save validates with the same rules as creation and applies every field.
// An untouched deadline is written back exactly as stored and is not
// re-checked against now. The repository is untouched when validation fails.
func (f *EditForm) Save(repo Editor, now time.Time) error {
	in := f.Input
	keep := !f.deadlineChanged()
	if keep {
		in.Deadline = ""
	}
	payload, err := Validate(in, now)
	if err != nil {
		f.Err = err
		return err
	}
	if keep {
		payload.Deadline = f.orig.Clone().Deadline
	}
	repo.Edit(f.orig.ID, payload.Update())
	f.Err = nil
	return nil
}
