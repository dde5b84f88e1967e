package taskdata

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nelyah/bee/internal/task"
)

func summary(s string) *string { return &s }

func TestCloneProducesAnIndependentDeepCopy(t *testing.T) {
	now := time.Now()
	d := New()

	orig, err := d.AddTask(task.Properties{Summary: summary("first")}, now, task.StatusPending)
	require.NoError(t, err)
	orig.Tags = []string{"home"}
	orig.Annotations = []task.Annotation{{Value: "note", Time: now}}

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone diverged from original (-orig +clone):\n%s", diff)
	}

	clone.Tags[0] = "work"
	assert.Equal(t, "home", orig.Tags[0], "mutating the clone's tags must not affect the original")
}

func TestAddTaskAndUpkeepAssignsDenseIDs(t *testing.T) {
	now := time.Now()
	d := New()

	first, err := d.AddTask(task.Properties{Summary: summary("first")}, now, task.StatusPending)
	require.NoError(t, err)
	second, err := d.AddTask(task.Properties{Summary: summary("second")}, now.Add(time.Minute), task.StatusPending)
	require.NoError(t, err)

	require.NoError(t, d.Upkeep(now, task.DefaultCoefficients()))

	require.NotNil(t, first.ID)
	require.NotNil(t, second.ID)
	assert.Equal(t, 1, *first.ID)
	assert.Equal(t, 2, *second.ID)
}

func TestUpkeepPrunesDependsOnAfterCompletion(t *testing.T) {
	now := time.Now()
	d := New()
	coeffs := task.DefaultCoefficients()

	blocker, err := d.AddTask(task.Properties{Summary: summary("blocker")}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, d.Upkeep(now, coeffs))

	dependent, err := d.AddTask(task.Properties{
		Summary:   summary("dependent"),
		DependsOn: &[]task.DependsOnIdentifier{task.DependsOnByUUID(blocker.UUID)},
	}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, d.Upkeep(now, coeffs))

	assert.True(t, dependent.HasLink(task.LinkDependsOn, blocker.UUID))
	assert.True(t, blocker.HasLink(task.LinkBlocking, dependent.UUID))

	blocker.Done(now)
	require.NoError(t, d.Upkeep(now, coeffs))

	assert.False(t, dependent.HasLink(task.LinkDependsOn, blocker.UUID))
	assert.Empty(t, blocker.LinksOfType(task.LinkBlocking))
}

func TestFilterExpandsExtraTasksWithNeighbors(t *testing.T) {
	now := time.Now()
	d := New()
	coeffs := task.DefaultCoefficients()

	blocker, err := d.AddTask(task.Properties{Summary: summary("blocker")}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, d.Upkeep(now, coeffs))

	dependent, err := d.AddTask(task.Properties{
		Summary:   summary("dependent important"),
		DependsOn: &[]task.DependsOnIdentifier{task.DependsOnByUUID(blocker.UUID)},
	}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, d.Upkeep(now, coeffs))

	var stringFilter stringOnlyFilter = "important"
	matches := d.Filter(stringFilter)
	require.Len(t, matches, 1)
	assert.Equal(t, dependent.UUID, matches[0].UUID)

	_, inExtra := d.ExtraTasks[blocker.UUID]
	assert.True(t, inExtra)
}

// stringOnlyFilter is a tiny local query.Filter stand-in for the summary
// substring match, avoiding a dependency on the lexer/parser in this test.
type stringOnlyFilter string

func (f stringOnlyFilter) Validate(t *task.Task) bool {
	return len(t.Summary) > 0 && contains(t.Summary, string(f))
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
