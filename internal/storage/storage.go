// Package storage persists the whole todo collection as a single JSON
// record under one fixed key.
//
// Loading is best-effort: a missing, unreadable or corrupt record yields an
// empty collection. Write failures are logged and otherwise ignored.
package storage

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dori/jotlist/internal/model"
)

// StorageKey is the one key the collection lives under.
const StorageKey = "my_todos_v3"

// Backend is a key-value store holding raw records.
type Backend interface {
	// Get returns the value for key; ok is false when nothing is stored.
	Get(key string) (value []byte, ok bool, err error)
	// Put replaces the value for key.
	Put(key string, value []byte) error
}

// Store reads and writes the todo collection through a Backend.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// New creates a store over backend. A nil logger discards output.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, logger: logger}
}

// Load returns the saved collection, or an empty one if nothing usable is stored.
func (s *Store) Load() []model.Todo {
	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		s.logger.Warn("read stored todos", "key", StorageKey, "err", err)
		return []model.Todo{}
	}
	if !ok || len(raw) == 0 {
		return []model.Todo{}
	}

	var todos []model.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		s.logger.Warn("discarding unparsable stored todos", "key", StorageKey, "err", err)
		return []model.Todo{}
	}
	if todos == nil {
		// a stored "null"
		return []model.Todo{}
	}
	for i := range todos {
		if todos[i].Tags == nil {
			todos[i].Tags = []string{}
		}
	}
	return todos
}

// Save overwrites the stored record with the full collection.
func (s *Store) Save(todos []model.Todo) {
	// tags always serialize as an array
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		if t.Tags == nil {
			t.Tags = []string{}
		}
		out[i] = t
	}
	raw, err := json.Marshal(out)
	if err != nil {
		s.logger.Error("encode todos", "err", err)
		return
	}
	if err := s.backend.Put(StorageKey, raw); err != nil {
		s.logger.Error("write todos", "key", StorageKey, "err", err)
		return
	}
	s.logger.Debug("saved todos", "count", len(out), "bytes", len(raw))
}
