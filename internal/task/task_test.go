package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEmptyPatchLeavesHistoryUntouched(t *testing.T) {
	now := time.Now()
	tk := New(now)
	tk.Summary = "buy milk"

	before := len(tk.History)
	err := tk.Apply(Properties{}, now.Add(time.Minute), nil)
	require.NoError(t, err)
	assert.Equal(t, before, len(tk.History))
}

func TestApplyTagsRemoveBeforeAdd(t *testing.T) {
	now := time.Now()
	tk := New(now)
	tk.Tags = []string{"old"}

	summary := "renamed"
	err := tk.Apply(Properties{
		Summary:    &summary,
		TagsRemove: []string{"old"},
		TagsAdd:    []string{"new"},
	}, now, nil)
	require.NoError(t, err)
	assert.False(t, tk.HasTag("old"))
	assert.True(t, tk.HasTag("new"))
}

func TestApplyActiveStatusTransitionValidation(t *testing.T) {
	now := time.Now()
	tk := New(now)
	tk.Status = StatusCompleted

	active := true
	err := tk.Apply(Properties{ActiveStatus: &active}, now, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComputeUrgencyTerminalIsNil(t *testing.T) {
	now := time.Now()
	tk := New(now)
	tk.Done(now)

	ComputeUrgency(tk, now, DefaultCoefficients())
	assert.Nil(t, tk.Urgency)
}

func TestComputeUrgencyCoefficients(t *testing.T) {
	now := time.Now()
	tk := New(now)
	tk.Status = StatusActive
	tk.Links = []Link{{From: tk.UUID, To: tk.UUID, Type: LinkBlocking}}

	ComputeUrgency(tk, now, DefaultCoefficients())
	require.NotNil(t, tk.Urgency)
	assert.Equal(t, 10+1, *tk.Urgency)
}

func TestLessOrdersNilUrgencyLast(t *testing.T) {
	now := time.Now()
	a := New(now)
	u := 5
	a.Urgency = &u
	b := New(now.Add(time.Second))

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
}
