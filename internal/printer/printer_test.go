package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nelyah/bee/internal/config"
	"github.com/Nelyah/bee/internal/task"
)

func newTask(summary string) *task.Task {
	t := task.New(time.Now())
	t.Summary = summary
	id := 1
	t.ID = &id
	return t
}

func TestPrintTaskListUsesDefaultReportColumns(t *testing.T) {
	var out bytes.Buffer
	p := New(config.Default(), &out, &bytes.Buffer{})

	require.NoError(t, p.PrintTaskList("", []*task.Task{newTask("buy milk")}))
	assert.Contains(t, out.String(), "Summary")
	assert.Contains(t, out.String(), "buy milk")
}

func TestPrintTaskListFallsBackOnUnknownReport(t *testing.T) {
	var out bytes.Buffer
	p := New(config.Default(), &out, &bytes.Buffer{})

	require.NoError(t, p.PrintTaskList("does-not-exist", []*task.Task{newTask("x")}))
	assert.Contains(t, out.String(), "Summary")
}

func TestPrintTaskInfoIncludesAnnotations(t *testing.T) {
	var out bytes.Buffer
	p := New(config.Default(), &out, &bytes.Buffer{})

	tk := newTask("wash car")
	tk.Annotations = append(tk.Annotations, task.Annotation{Value: "needs soap", Time: time.Now()})

	require.NoError(t, p.PrintTaskInfo(tk))
	assert.Contains(t, out.String(), "wash car")
	assert.Contains(t, out.String(), "needs soap")
}

func TestPrintJSONRoundTrips(t *testing.T) {
	var out bytes.Buffer
	p := New(config.Default(), &out, &bytes.Buffer{})

	require.NoError(t, p.PrintJSON([]*task.Task{newTask("x")}))

	var tasks []*task.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "x", tasks[0].Summary)
}

func TestPrintWarningGoesToErrStream(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(config.Default(), &out, &errOut)

	p.PrintWarning("skipped a task")
	p.PrintMessage("done")

	assert.False(t, strings.Contains(out.String(), "skipped"))
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, errOut.String(), "skipped a task")
}
