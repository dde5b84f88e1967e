package taskdata

import "github.com/Nelyah/bee/internal/task"

// ActionUndo is one reversible step: a snapshot of every task an action
// touched, taken before the action ran, tagged with what produced it. The
// undo verb replays the most recent entries in reverse, restoring each
// snapshot in place of the task's current state.
type ActionUndo struct {
	Action string
	Tasks  []*task.Task
}

// PushUndo merges a new undo step into the log. If the previous entry was
// produced by the same action and shares at least one task, the new
// snapshot is folded in rather than appended, so a sequence of edits to the
// same task within one command line undoes as a single step (first
// snapshot wins for any given task already captured in the top entry).
func (d *TaskData) PushUndo(u ActionUndo) {
	if len(u.Tasks) == 0 {
		return
	}
	if len(d.Undos) > 0 {
		top := &d.Undos[len(d.Undos)-1]
		if top.Action == u.Action {
			seen := make(map[string]bool, len(top.Tasks))
			for _, t := range top.Tasks {
				seen[t.UUID.String()] = true
			}
			shared := false
			for _, t := range u.Tasks {
				if seen[t.UUID.String()] {
					shared = true
					break
				}
			}
			if shared {
				for _, t := range u.Tasks {
					if !seen[t.UUID.String()] {
						top.Tasks = append(top.Tasks, t)
					}
				}
				return
			}
		}
	}
	d.Undos = append(d.Undos, u)
}

// PopUndo removes and returns the most recent undo step, if any.
func (d *TaskData) PopUndo() (ActionUndo, bool) {
	if len(d.Undos) == 0 {
		return ActionUndo{}, false
	}
	last := d.Undos[len(d.Undos)-1]
	d.Undos = d.Undos[:len(d.Undos)-1]
	return last, true
}
