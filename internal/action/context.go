// Package action implements the verb state machine: each verb is a pure
// function from a shared Context to a new Context plus an error, dispatched
// from a table rather than through virtual method calls.
package action

import (
	"time"

	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

// Context is the state threaded through one command's execution: the full
// working set, the subset the filter selected, the leftover argument
// tokens (property text for add/modify/annotate, nothing for others), the
// requested report, and the ambient values an action needs to build or
// apply a task patch.
type Context struct {
	Data         *taskdata.TaskData
	Filtered     []*task.Task
	Arguments    []string
	Report       string
	Actor        string
	Now          time.Time
	Coefficients task.Coefficients
}

// Printer is the output boundary every verb writes through, so action code
// never touches os.Stdout directly and stays trivially testable with a
// fake.
type Printer interface {
	PrintTaskList(report string, tasks []*task.Task) error
	PrintTaskInfo(t *task.Task) error
	PrintJSON(tasks []*task.Task) error
	PrintMessage(msg string)
	PrintWarning(msg string)
}
