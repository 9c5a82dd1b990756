package model

import "time"

// Priority represents todo priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid returns true if the priority is a known value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns a numeric rank for sorting by priority.
// Unknown values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// Next returns the following priority, wrapping from low back to high
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Todo represents a single task record
type Todo struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	Deadline    *time.Time `json:"deadline"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
}

// HasTag reports whether the todo carries the given tag
func (t *Todo) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// IsOverdue returns true if an incomplete todo is past its deadline.
// Display only; deadlines are never re-validated after submission.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.Completed {
		return false
	}
	return now.After(*t.Deadline)
}

// Clone returns a copy that shares no mutable state with t
func (t Todo) Clone() Todo {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	c.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	return c
}
