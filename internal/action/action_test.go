package action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

type fakePrinter struct {
	messages []string
	warnings []string
	listed   []*task.Task
}

func (f *fakePrinter) PrintTaskList(report string, tasks []*task.Task) error {
	f.listed = tasks
	return nil
}
func (f *fakePrinter) PrintTaskInfo(t *task.Task) error { return nil }
func (f *fakePrinter) PrintJSON(tasks []*task.Task) error {
	f.listed = tasks
	return nil
}
func (f *fakePrinter) PrintMessage(msg string) { f.messages = append(f.messages, msg) }
func (f *fakePrinter) PrintWarning(msg string)  { f.warnings = append(f.warnings, msg) }

func newTestContext(data *taskdata.TaskData, args []string) Context {
	return Context{
		Data:         data,
		Arguments:    args,
		Now:          time.Now(),
		Coefficients: task.DefaultCoefficients(),
	}
}

func TestDoAddCreatesTaskAndUndo(t *testing.T) {
	data := taskdata.New()
	ctx := newTestContext(data, []string{"buy", "milk", "+shopping"})
	p := &fakePrinter{}

	_, err := Dispatch(Add, ctx, p)
	require.NoError(t, err)
	require.Len(t, data.Tasks, 1)
	require.Len(t, data.Undos, 1)
	assert.Equal(t, "Add", data.Undos[0].Action)

	for _, tk := range data.Tasks {
		assert.Equal(t, "buy milk", tk.Summary)
		assert.True(t, tk.HasTag("shopping"))
	}
}

func TestDoDoneAlwaysSnapshotsMatches(t *testing.T) {
	data := taskdata.New()
	now := time.Now()
	coeffs := task.DefaultCoefficients()

	summary := "wash car"
	tk, err := data.AddTask(task.Properties{Summary: &summary}, now, task.StatusPending)
	require.NoError(t, err)
	require.NoError(t, data.Upkeep(now, coeffs))

	ctx := Context{Data: data, Filtered: []*task.Task{tk}, Now: now, Coefficients: coeffs}
	p := &fakePrinter{}

	_, err = Dispatch(Done, ctx, p)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, tk.Status)
	require.Len(t, data.Undos, 1)
	require.Len(t, data.Undos[0].Tasks, 1)
	assert.Equal(t, task.StatusPending, data.Undos[0].Tasks[0].Status)
}

func TestDoStartSkipsNonPendingWithWarning(t *testing.T) {
	data := taskdata.New()
	now := time.Now()
	coeffs := task.DefaultCoefficients()

	summary := "already done"
	tk, err := data.AddTask(task.Properties{Summary: &summary}, now, task.StatusPending)
	require.NoError(t, err)
	tk.Done(now)
	require.NoError(t, data.Upkeep(now, coeffs))

	ctx := Context{Data: data, Filtered: []*task.Task{tk}, Now: now, Coefficients: coeffs}
	p := &fakePrinter{}

	_, err = Dispatch(Start, ctx, p)
	require.NoError(t, err)
	assert.Len(t, p.warnings, 1)
	assert.Empty(t, data.Undos)
}

func TestDoUndoRestoresAddedTask(t *testing.T) {
	data := taskdata.New()
	ctx := newTestContext(data, []string{"temp", "task"})
	p := &fakePrinter{}

	_, err := Dispatch(Add, ctx, p)
	require.NoError(t, err)
	require.Len(t, data.Tasks, 1)

	undoCtx := Context{Data: data, Now: ctx.Now, Coefficients: ctx.Coefficients}
	_, err = Dispatch(Undo, undoCtx, p)
	require.NoError(t, err)
	require.Len(t, data.Tasks, 1)
	for _, tk := range data.Tasks {
		assert.Equal(t, task.StatusDeleted, tk.Status)
		assert.Nil(t, tk.ID)
	}
	assert.Empty(t, data.Undos)
}

func TestArgumentsAsFiltersTable(t *testing.T) {
	assert.True(t, ArgumentsAsFilters(List))
	assert.False(t, ArgumentsAsFilters(Add))
}
