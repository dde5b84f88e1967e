package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nelyah/bee/internal/task"
)

func mustParseFilter(t *testing.T, input string, now time.Time) Filter {
	t.Helper()
	p, err := NewFilterParser(input, now)
	require.NoError(t, err)
	f, err := p.Parse()
	require.NoError(t, err)
	return f
}

func TestFilterStringMatchesSummary(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "milk", now)
	tk := task.New(now)
	tk.Summary = "buy milk"
	assert.True(t, f.Validate(tk))

	tk.Summary = "buy bread"
	assert.False(t, f.Validate(tk))
}

func TestFilterAndOfTwoWords(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "buy milk", now)
	tk := task.New(now)
	tk.Summary = "buy milk today"
	assert.True(t, f.Validate(tk))

	tk.Summary = "buy bread today"
	assert.False(t, f.Validate(tk))
}

func TestFilterOrOperator(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "milk or bread", now)
	tk := task.New(now)
	tk.Summary = "buy bread"
	assert.True(t, f.Validate(tk))
}

func TestFilterParenthesesGrouping(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "status:pending and (milk or bread)", now)
	tk := task.New(now)
	tk.Status = task.StatusPending
	tk.Summary = "buy bread"
	assert.True(t, f.Validate(tk))

	tk.Status = task.StatusCompleted
	assert.False(t, f.Validate(tk))
}

func TestFilterBareIDsBecomeUnion(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "3 5", now)
	or, ok := f.(Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	assert.Equal(t, TaskIDFilter{ID: 3}, or.Children[0])
	assert.Equal(t, TaskIDFilter{ID: 5}, or.Children[1])
}

func TestFilterTagFilter(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "+home", now)
	tk := task.New(now)
	tk.Tags = []string{"home"}
	assert.True(t, f.Validate(tk))

	f2 := mustParseFilter(t, "-home", now)
	assert.False(t, f2.Validate(tk))
}

func TestFilterUUID(t *testing.T) {
	now := time.Now()
	tk := task.New(now)
	f := mustParseFilter(t, tk.UUID.String(), now)
	assert.True(t, f.Validate(tk))
	assert.False(t, f.Validate(task.New(now)))
}

func TestFilterDueBeforeRelativeDate(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	f := mustParseFilter(t, "due.before:tomorrow", now)

	tk := task.New(now)
	due := now.Add(6 * time.Hour)
	tk.DateDue = &due
	assert.True(t, f.Validate(tk))

	farDue := now.Add(72 * time.Hour)
	tk.DateDue = &farDue
	assert.False(t, f.Validate(tk))
}

func TestFilterHasDueDate(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "due:", now)
	tk := task.New(now)
	assert.False(t, f.Validate(tk))
	due := now.Add(time.Hour)
	tk.DateDue = &due
	assert.True(t, f.Validate(tk))
}

func TestFilterDependsOnNone(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "depends:none", now)
	tk := task.New(now)
	assert.True(t, f.Validate(tk))
}

func TestFilterResolveIDs(t *testing.T) {
	now := time.Now()
	f := mustParseFilter(t, "3", now)
	u := uuid.New()
	resolved := ResolveIDs(f, map[int]uuid.UUID{3: u})
	tk := task.New(now)
	tk.UUID = u
	assert.True(t, resolved.Validate(tk))
}

func TestFilterRejectsDoubleOperator(t *testing.T) {
	now := time.Now()
	_, err := mustParseErr(t, "milk and and bread", now)
	assert.Error(t, err)
}

func mustParseErr(t *testing.T, input string, now time.Time) (Filter, error) {
	t.Helper()
	p, err := NewFilterParser(input, now)
	require.NoError(t, err)
	return p.Parse()
}

func TestPropertyParserSummaryAndTags(t *testing.T) {
	now := time.Now()
	p, err := NewPropertyParser("buy milk +shopping -urgent", now)
	require.NoError(t, err)
	props, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "buy milk", *props.Summary)
	assert.Equal(t, []string{"shopping"}, props.TagsAdd)
	assert.Equal(t, []string{"urgent"}, props.TagsRemove)
}

func TestPropertyParserProjectAndStatus(t *testing.T) {
	now := time.Now()
	p, err := NewPropertyParser("status:active project:work.api", now)
	require.NoError(t, err)
	props, err := p.Parse()
	require.NoError(t, err)
	require.NotNil(t, props.Status)
	assert.Equal(t, task.StatusActive, *props.Status)
	require.NotNil(t, props.Project)
	assert.Equal(t, "work.api", props.Project.Name)
}

func TestPropertyParserDependsOnNoneClears(t *testing.T) {
	now := time.Now()
	p, err := NewPropertyParser("depends:none", now)
	require.NoError(t, err)
	props, err := p.Parse()
	require.NoError(t, err)
	require.NotNil(t, props.DependsOn)
	assert.Empty(t, *props.DependsOn)
}

func TestPropertyParserDueDate(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	p, err := NewPropertyParser("due:tomorrow", now)
	require.NoError(t, err)
	props, err := p.Parse()
	require.NoError(t, err)
	require.NotNil(t, props.DateDue)
	assert.Equal(t, 2026, props.DateDue.Year())
	assert.Equal(t, 11, props.DateDue.Day())
}
