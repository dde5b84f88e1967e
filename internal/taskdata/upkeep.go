package taskdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/task"
)

// Upkeep restores every invariant the data model requires after a
// mutation: DependsOn edges pointing at a now-terminal task are pruned,
// Blocking edges are re-derived from the surviving DependsOn edges, dense
// ids are reassigned in date_created order, and urgency is recomputed for
// every live task.
func (d *TaskData) Upkeep(now time.Time, coeffs task.Coefficients) error {
	if err := d.pruneTerminalDependsOn(); err != nil {
		return err
	}
	d.rederiveBlocking()
	d.assignDenseIDs()
	for _, t := range d.Tasks {
		task.ComputeUrgency(t, now, coeffs)
	}
	return nil
}

// pruneTerminalDependsOn drops any DependsOn edge whose target task has
// reached a terminal status, and reports an InvariantError for an edge
// whose target cannot be found in either the live or extra task sets.
func (d *TaskData) pruneTerminalDependsOn() error {
	for _, t := range d.Tasks {
		for _, dest := range t.LinksOfType(task.LinkDependsOn) {
			target, ok := d.Get(dest)
			if !ok {
				return bedrrors.NewInvariantError(
					fmt.Errorf("task %s depends on %s, which is in neither the task set nor the extra task set", t.UUID, dest))
			}
			if target.Status.IsTerminal() {
				t.RemoveLink(task.LinkDependsOn, dest)
			}
		}
	}
	return nil
}

// rederiveBlocking rebuilds every task's Blocking edges from scratch out of
// the surviving DependsOn edges: if A depends on B, B blocks A.
func (d *TaskData) rederiveBlocking() {
	for _, t := range d.Tasks {
		t.ClearLinksOfType(task.LinkBlocking)
	}
	for _, t := range d.Tasks {
		for _, dest := range t.LinksOfType(task.LinkDependsOn) {
			if blocker, ok := d.Get(dest); ok {
				blocker.AddLink(task.LinkBlocking, t.UUID)
			}
		}
	}
}

// assignDenseIDs gives every non-terminal live task a 1-based dense id in
// date_created order, and rebuilds IDToUUID to match. Terminal tasks have
// no id.
func (d *TaskData) assignDenseIDs() {
	var live []*task.Task
	for _, t := range d.Tasks {
		if !t.Status.IsTerminal() {
			live = append(live, t)
		} else {
			t.ID = nil
		}
	}
	task.SortByCreation(live)

	d.IDToUUID = make(map[int]uuid.UUID, len(live))
	for i, t := range live {
		id := i + 1
		t.ID = &id
		d.IDToUUID[id] = t.UUID
	}
}
