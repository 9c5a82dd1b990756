// Package todo holds the authoritative in-memory todo collection.
//
// All mutation goes through Repository methods. Every mutating call is
// followed by a full write of the collection to the Persister. Operations
// never fail: unknown ids are ignored.
package todo

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dori/jotlist/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no todo matches an id prefix.
	ErrNotFound = errors.New("todo not found")

	// ErrAmbiguousID is returned when an id prefix matches several todos.
	ErrAmbiguousID = errors.New("ambiguous todo id prefix")
)

// Persister loads and saves the whole collection.
type Persister interface {
	Load() []model.Todo
	Save([]model.Todo)
}

// Payload is a validated todo ready to be created.
type Payload struct {
	Text        string
	Description string
	Deadline    *time.Time
	Priority    model.Priority
	Tags        []string
}

// Update lists the fields an edit changes. Nil fields are left untouched.
type Update struct {
	Text        *string
	Description *string
	Priority    *model.Priority
	// Tags replaces the tag list when non-nil.
	Tags []string
	// Deadline sets the deadline when non-nil.
	Deadline *time.Time
	// ClearDeadline removes the deadline. It wins over Deadline.
	ClearDeadline bool
}

// Update converts a payload into an edit that overwrites every field.
func (p Payload) Update() Update {
	text, desc, prio := p.Text, p.Description, p.Priority
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Update{
		Text:          &text,
		Description:   &desc,
		Priority:      &prio,
		Tags:          tags,
		Deadline:      p.Deadline,
		ClearDeadline: p.Deadline == nil,
	}
}

// Repository owns the todo collection.
type Repository struct {
	todos  []model.Todo
	store  Persister
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator sets the id source.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// New loads the collection from store and returns a repository over it.
func New(store Persister, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.todos = store.Load()
	if r.todos == nil {
		r.todos = []model.Todo{}
	}
	r.logger.Debug("loaded todos", "count", len(r.todos))
	return r
}

// Todos returns a copy of the collection in append order.
func (r *Repository) Todos() []model.Todo {
	out := make([]model.Todo, len(r.todos))
	for i, t := range r.todos {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of todos.
func (r *Repository) Len() int {
	return len(r.todos)
}

// Get returns the todo with the given id.
func (r *Repository) Get(id string) (model.Todo, bool) {
	i := r.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return r.todos[i].Clone(), true
}

// Create appends a new todo built from p and returns it.
func (r *Repository) Create(p Payload) model.Todo {
	t := model.Todo{
		ID:          r.uniqueID(),
		Text:        p.Text,
		Description: p.Description,
		CreatedAt:   r.now(),
		Priority:    p.Priority,
		Tags:        append([]string{}, p.Tags...),
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if p.Deadline != nil {
		d := *p.Deadline
		t.Deadline = &d
	}

	r.todos = append(r.todos, t)
	r.logger.Debug("created todo", "id", t.ID, "text", t.Text)
	r.persist()
	return t.Clone()
}

// Remove deletes the todo with the given id.
func (r *Repository) Remove(id string) {
	r.todos = slices.DeleteFunc(r.todos, func(t model.Todo) bool { return t.ID == id })
	r.logger.Debug("removed todo", "id", id)
	r.persist()
}

// ToggleComplete flips the completed flag.
func (r *Repository) ToggleComplete(id string) {
	if i := r.index(id); i >= 0 {
		r.todos[i].Completed = !r.todos[i].Completed
		r.logger.Debug("toggled todo", "id", id, "completed", r.todos[i].Completed)
	}
	r.persist()
}

// Restore marks the todo as not completed.
func (r *Repository) Restore(id string) {
	if i := r.index(id); i >= 0 {
		r.todos[i].Completed = false
		r.logger.Debug("restored todo", "id", id)
	}
	r.persist()
}

// Edit merges u into the todo. ID and CreatedAt never change.
func (r *Repository) Edit(id string, u Update) {
	if i := r.index(id); i >= 0 {
		t := &r.todos[i]
		if u.Text != nil {
			t.Text = *u.Text
		}
		if u.Description != nil {
			t.Description = *u.Description
		}
		if u.Priority != nil {
			t.Priority = *u.Priority
		}
		if u.Tags != nil {
			t.Tags = append([]string{}, u.Tags...)
		}
		switch {
		case u.ClearDeadline:
			t.Deadline = nil
		case u.Deadline != nil:
			d := *u.Deadline
			t.Deadline = &d
		}
		r.logger.Debug("edited todo", "id", id)
	}
	r.persist()
}

// ClearCompleted removes every completed todo and returns how many went.
func (r *Repository) ClearCompleted() int {
	before := len(r.todos)
	r.todos = slices.DeleteFunc(r.todos, func(t model.Todo) bool { return t.Completed })
	removed := before - len(r.todos)
	r.logger.Debug("cleared completed todos", "removed", removed)
	r.persist()
	return removed
}

// Resolve maps a unique id prefix to a full id.
func (r *Repository) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	var match string
	for _, t := range r.todos {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}

func (r *Repository) index(id string) int {
	return slices.IndexFunc(r.todos, func(t model.Todo) bool { return t.ID == id })
}

func (r *Repository) uniqueID() string {
	for {
		id := r.newID()
		if r.index(id) < 0 {
			return id
		}
	}
}

func (r *Repository) persist() {
	r.store.Save(r.todos)
}
