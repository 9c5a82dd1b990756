// Package view derives the sorted, filtered lists shown to the user from
// the todo collection. Everything here is a pure function of its inputs.
package view

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/dori/jotlist/internal/model"
)

// SortKey selects the field todos are ordered by
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDeadline  SortKey = "deadline"
	SortByPriority  SortKey = "priority"
)

// SortKeys returns every sort key in display order
func SortKeys() []SortKey {
	return []SortKey{SortByCreatedAt, SortByDeadline, SortByPriority}
}

// Next returns the following sort key, wrapping around
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	i := slices.Index(keys, k)
	return keys[(i+1)%len(keys)]
}

// Label returns a short display name
func (k SortKey) Label() string {
	switch k {
	case SortByCreatedAt:
		return "Created"
	case SortByDeadline:
		return "Deadline"
	case SortByPriority:
		return "Priority"
	default:
		return string(k)
	}
}

// ParseSortKey parses a sort key name
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !slices.Contains(SortKeys(), k) {
		return "", fmt.Errorf("unknown sort key %q (want createdAt, deadline or priority)", s)
	}
	return k, nil
}

// SortOrder is the sort direction
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Toggle flips the direction
func (o SortOrder) Toggle() SortOrder {
	if o == Asc {
		return Desc
	}
	return Asc
}

// ParseSortOrder parses asc or desc
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case Asc, Desc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
	}
}

// Options are the user-selected controls
type Options struct {
	SortBy SortKey
	Order  SortOrder
	// Tag restricts both lists to todos carrying it. Empty means no filter.
	Tag string
}

// DefaultOptions returns newest-first with no tag filter
func DefaultOptions() Options {
	return Options{SortBy: SortByCreatedAt, Order: Desc}
}

// Result is the projection of a collection
type Result struct {
	Active    []model.Todo
	Completed []model.Todo
	// Tags is every distinct tag across the whole collection, sorted.
	Tags []string
}

// Query sorts a copy of todos, partitions it by completion and tag, and
// collects the tag vocabulary. todos is not modified.
func Query(todos []model.Todo, opts Options) Result {
	sorted := Sort(todos, opts.SortBy, opts.Order)

	res := Result{
		Active:    []model.Todo{},
		Completed: []model.Todo{},
		Tags:      Vocabulary(todos),
	}
	for _, t := range sorted {
		if opts.Tag != "" && !t.HasTag(opts.Tag) {
			continue
		}
		if t.Completed {
			res.Completed = append(res.Completed, t)
		} else {
			res.Active = append(res.Active, t)
		}
	}
	return res
}

// Sort returns a stably sorted copy of todos. Desc inverts the comparison,
// so equal elements keep their collection order in both directions.
func Sort(todos []model.Todo, by SortKey, order SortOrder) []model.Todo {
	sorted := slices.Clone(todos)
	sign := 1
	if order == Desc {
		sign = -1
	}
	slices.SortStableFunc(sorted, func(a, b model.Todo) int {
		return sign * compare(a, b, by)
	})
	return sorted
}

func compare(a, b model.Todo, by SortKey) int {
	switch by {
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByDeadline:
		return cmp.Compare(deadlineValue(a), deadlineValue(b))
	case SortByPriority:
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	default:
		return 0
	}
}

// deadlineValue maps a missing deadline to +Inf so it sorts after every
// dated todo in ascending order.
func deadlineValue(t model.Todo) float64 {
	if t.Deadline == nil {
		return math.Inf(1)
	}
	return float64(t.Deadline.UnixMilli())
}

// Vocabulary returns the distinct tags across todos, sorted.
func Vocabulary(todos []model.Todo) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, t := range todos {
		for _, tg := range t.Tags {
			if !seen[tg] {
				seen[tg] = true
				tags = append(tags, tg)
			}
		}
	}
	slices.Sort(tags)
	return tags
}

// NextTag cycles the tag filter through "" and each tag in vocab.
func NextTag(current string, vocab []string) string {
	if len(vocab) == 0 {
		return ""
	}
	i := slices.Index(vocab, current)
	if i == len(vocab)-1 {
		return ""
	}
	return vocab[i+1]
}
