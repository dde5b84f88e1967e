package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

func TestWriteThenLoadTasksRoundTrips(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	data := taskdata.New()
	now := time.Now()

	summary := "buy milk"
	_, err := data.AddTask(task.Properties{Summary: &summary}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, data.Upkeep(now, task.DefaultCoefficients()))

	require.NoError(t, s.WriteTasks(data))

	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	for _, tk := range loaded.Tasks {
		assert.Equal(t, "buy milk", tk.Summary)
		require.NotNil(t, tk.ID)
		assert.Equal(t, 1, *tk.ID)
	}
}

func TestLoadTasksMissingFileReturnsEmpty(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	data, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, data.Tasks)
}

func TestLoadUndosMissingFileReturnsEmpty(t *testing.T) {
	s := NewJSONStore(t.TempDir())
	undos, err := s.LoadUndos(10)
	require.NoError(t, err)
	assert.Empty(t, undos)
}

func TestLogUndoReplacesWhenUnderCount(t *testing.T) {
	s := NewJSONStore(t.TempDir())

	require.NoError(t, s.LogUndo(5, []taskdata.ActionUndo{{Action: "Add"}}))
	undos, err := s.LoadUndos(-1)
	require.NoError(t, err)
	require.Len(t, undos, 1)
	assert.Equal(t, "Add", undos[0].Action)

	require.NoError(t, s.LogUndo(5, []taskdata.ActionUndo{{Action: "Modify"}}))
	undos, err = s.LoadUndos(-1)
	require.NoError(t, err)
	require.Len(t, undos, 1)
	assert.Equal(t, "Modify", undos[0].Action)
}

func TestLogUndoSplicesPastCount(t *testing.T) {
	s := NewJSONStore(t.TempDir())

	seed := []taskdata.ActionUndo{
		{Action: "Add"},
		{Action: "Add"},
		{Action: "Modify"},
	}
	require.NoError(t, s.LogUndo(10, seed))

	require.NoError(t, s.LogUndo(1, []taskdata.ActionUndo{{Action: "Done"}}))

	undos, err := s.LoadUndos(-1)
	require.NoError(t, err)
	require.Len(t, undos, 3)
	assert.Equal(t, "Add", undos[0].Action)
	assert.Equal(t, "Add", undos[1].Action)
	assert.Equal(t, "Done", undos[2].Action)
}
