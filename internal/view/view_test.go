package view

import (
	"testing"
	"time"

	"github.com/dori/jotlist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func at(h int) *time.Time {
	d := t0.Add(time.Duration(h) * time.Hour)
	return &d
}

func texts(todos []model.Todo) []string {
	out := []string{}
	for _, t := range todos {
		out = append(out, t.Text)
	}
	return out
}

func TestPriorityAscAndDesc(t *testing.T) {
	todos := []model.Todo{
		{Text: "low", Priority: model.PriorityLow},
		{Text: "high", Priority: model.PriorityHigh},
		{Text: "medium", Priority: model.PriorityMedium},
	}

	asc := Query(todos, Options{SortBy: SortByPriority, Order: Asc})
	assert.Equal(t, []string{"high", "medium", "low"}, texts(asc.Active))

	desc := Query(todos, Options{SortBy: SortByPriority, Order: Desc})
	assert.Equal(t, []string{"low", "medium", "high"}, texts(desc.Active))
}

func TestEqualPrioritiesKeepCollectionOrder(t *testing.T) {
	todos := []model.Todo{
		{Text: "m1", Priority: model.PriorityMedium},
		{Text: "h1", Priority: model.PriorityHigh},
		{Text: "m2", Priority: model.PriorityMedium},
		{Text: "h2", Priority: model.PriorityHigh},
	}

	asc := Sort(todos, SortByPriority, Asc)
	assert.Equal(t, []string{"h1", "h2", "m1", "m2"}, texts(asc))

	desc := Sort(todos, SortByPriority, Desc)
	assert.Equal(t, []string{"m1", "m2", "h1", "h2"}, texts(desc))
}

func TestMissingDeadlinesSortLastAscending(t *testing.T) {
	todos := []model.Todo{
		{Text: "none1"},
		{Text: "late", Deadline: at(1000)},
		{Text: "none2"},
		{Text: "soon", Deadline: at(1)},
	}

	asc := Sort(todos, SortByDeadline, Asc)
	assert.Equal(t, []string{"soon", "late", "none1", "none2"}, texts(asc))
}

func TestMissingDeadlinesSortFirstDescending(t *testing.T) {
	todos := []model.Todo{
		{Text: "soon", Deadline: at(1)},
		{Text: "none"},
		{Text: "late", Deadline: at(1000)},
	}

	desc := Sort(todos, SortByDeadline, Desc)
	assert.Equal(t, []string{"none", "late", "soon"}, texts(desc))
}

func TestSortByCreatedAt(t *testing.T) {
	todos := []model.Todo{
		{Text: "b", CreatedAt: *at(2)},
		{Text: "a", CreatedAt: *at(1)},
		{Text: "c", CreatedAt: *at(3)},
	}

	assert.Equal(t, []string{"a", "b", "c"}, texts(Sort(todos, SortByCreatedAt, Asc)))
	assert.Equal(t, []string{"c", "b", "a"}, texts(Sort(todos, SortByCreatedAt, Desc)))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	todos := []model.Todo{
		{Text: "low", Priority: model.PriorityLow},
		{Text: "high", Priority: model.PriorityHigh},
	}

	Query(todos, Options{SortBy: SortByPriority, Order: Asc})
	assert.Equal(t, []string{"low", "high"}, texts(todos))
}

func TestUnknownSortKeyKeepsOrder(t *testing.T) {
	todos := []model.Todo{{Text: "b"}, {Text: "a"}}
	assert.Equal(t, []string{"b", "a"}, texts(Sort(todos, SortKey("title"), Asc)))
}

func TestExampleCollection(t *testing.T) {
	todos := []model.Todo{
		{Text: "A", Priority: model.PriorityLow, Tags: []string{"x"}},
		{Text: "B", Priority: model.PriorityHigh, Tags: []string{}},
	}

	res := Query(todos, Options{SortBy: SortByPriority, Order: Asc})
	assert.Equal(t, []string{"B", "A"}, texts(res.Active))

	filtered := Query(todos, Options{SortBy: SortByPriority, Order: Asc, Tag: "x"})
	assert.Equal(t, []string{"A"}, texts(filtered.Active))
}

func TestPartitionByCompletionAndTag(t *testing.T) {
	todos := []model.Todo{
		{Text: "open-x", Tags: []string{"x"}},
		{Text: "done-x", Completed: true, Tags: []string{"x"}},
		{Text: "open-y", Tags: []string{"y"}},
		{Text: "done-none", Completed: true},
	}

	all := Query(todos, Options{SortBy: SortByCreatedAt, Order: Asc})
	assert.Equal(t, []string{"open-x", "open-y"}, texts(all.Active))
	assert.Equal(t, []string{"done-x", "done-none"}, texts(all.Completed))

	x := Query(todos, Options{SortBy: SortByCreatedAt, Order: Asc, Tag: "x"})
	assert.Equal(t, []string{"open-x"}, texts(x.Active))
	assert.Equal(t, []string{"done-x"}, texts(x.Completed))
	assert.Equal(t, []string{"x", "y"}, x.Tags, "vocabulary ignores the filter")
}

func TestVocabularyDistinctSorted(t *testing.T) {
	todos := []model.Todo{
		{Tags: []string{"work", "home", "work"}},
		{Tags: []string{"errands"}},
		{},
	}
	assert.Equal(t, []string{"errands", "home", "work"}, Vocabulary(todos))
	assert.Equal(t, []string{}, Vocabulary(nil))
}

func TestEmptyCollection(t *testing.T) {
	res := Query(nil, DefaultOptions())
	assert.NotNil(t, res.Active)
	assert.NotNil(t, res.Completed)
	assert.Empty(t, res.Active)
	assert.Empty(t, res.Tags)
}

func TestParsers(t *testing.T) {
	k, err := ParseSortKey("deadline")
	require.NoError(t, err)
	assert.Equal(t, SortByDeadline, k)
	_, err = ParseSortKey("title")
	assert.Error(t, err)

	o, err := ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, Asc, o)
	_, err = ParseSortOrder("up")
	assert.Error(t, err)
}

func TestCycling(t *testing.T) {
	assert.Equal(t, SortByDeadline, SortByCreatedAt.Next())
	assert.Equal(t, SortByCreatedAt, SortByPriority.Next())
	assert.Equal(t, Desc, Asc.Toggle())
	assert.Equal(t, Asc, Desc.Toggle())

	vocab := []string{"a", "b"}
	assert.Equal(t, "a", NextTag("", vocab))
	assert.Equal(t, "b", NextTag("a", vocab))
	assert.Equal(t, "", NextTag("b", vocab))
	assert.Equal(t, "", NextTag("a", nil))
}
