// Package form validates and normalizes raw entry and edit form input
// before it reaches the todo repository.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/todo"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrTitleRequired is returned when the title is empty after trimming.
	ErrTitleRequired = errors.New("title required")

	// ErrDeadlineInPast is returned when a deadline is earlier than now.
	ErrDeadlineInPast = errors.New("deadline in the past")

	// ErrInvalidDeadline is returned when the deadline cannot be parsed.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrInvalidPriority is returned for anything but high, medium or low.
	ErrInvalidPriority = errors.New("invalid priority")
)

// DateTimeLayout is the minute-precision layout deadlines are edited in.
const DateTimeLayout = "2006-01-02T15:04"

var validate = validator.New()

// Input is the raw state of a form's fields.
type Input struct {
	Title       string
	Description string
	// Deadline is free text; see ParseDeadline. Empty means no deadline.
	Deadline string
	// Priority is high, medium or low. Empty means medium.
	Priority string
	// Tags is a comma-separated list.
	Tags string
}

// Validate checks in against now and returns a normalized payload.
// Checks run in order: title, deadline, priority.
func Validate(in Input, now time.Time) (todo.Payload, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return todo.Payload{}, ErrTitleRequired
	}

	deadline, err := CheckDeadline(in.Deadline, now)
	if err != nil {
		return todo.Payload{}, err
	}

	priority, err := normalizePriority(in.Priority)
	if err != nil {
		return todo.Payload{}, err
	}

	return todo.Payload{
		Text:        title,
		Description: strings.TrimSpace(in.Description),
		Deadline:    deadline,
		Priority:    priority,
		Tags:        ParseTags(in.Tags),
	}, nil
}

// CheckDeadline parses s and rejects instants strictly before now.
// An empty s yields a nil deadline.
func CheckDeadline(s string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDeadline(s, now)
	if err != nil {
		return nil, err
	}
	if d.Before(now) {
		return nil, ErrDeadlineInPast
	}
	return &d, nil
}

func normalizePriority(s string) (model.Priority, error) {
	p := strings.ToLower(strings.TrimSpace(s))
	if err := validate.Var(p, "omitempty,oneof=high medium low"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	if p == "" {
		return model.PriorityMedium, nil
	}
	return model.Priority(p), nil
}

// ParseTags splits a comma-separated list, trims each segment and drops
// empty ones. Order and duplicates are kept.
func ParseTags(s string) []string {
	tags := []string{}
	for _, seg := range strings.Split(s, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			tags = append(tags, seg)
		}
	}
	return tags
}

// FormatTags is the inverse of ParseTags for seeding an edit field.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
