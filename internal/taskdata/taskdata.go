// Package taskdata holds the full working set of tasks for one store: the
// live tasks plus whatever extra tasks got pulled in as context (dependency
// neighbors, explicitly referenced tasks), and the dense id <-> uuid map
// those extras need to be addressed by number too.
package taskdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/query"
	"github.com/Nelyah/bee/internal/task"
)

// TaskData is the aggregate the action engine and store operate on.
type TaskData struct {
	Tasks      map[uuid.UUID]*task.Task
	ExtraTasks map[uuid.UUID]*task.Task
	IDToUUID   map[int]uuid.UUID
	Undos      []ActionUndo
}

// New returns an empty TaskData, ready for AddTask or Load.
func New() *TaskData {
	return &TaskData{
		Tasks:      map[uuid.UUID]*task.Task{},
		ExtraTasks: map[uuid.UUID]*task.Task{},
		IDToUUID:   map[int]uuid.UUID{},
	}
}

// Get looks a task up by UUID, checking the live set first, then the extra
// set pulled in for context -- the same two-map lookup the original storage
// layer performs before declaring a referenced task missing.
func (d *TaskData) Get(u uuid.UUID) (*task.Task, bool) {
	if t, ok := d.Tasks[u]; ok {
		return t, true
	}
	t, ok := d.ExtraTasks[u]
	return t, ok
}

// ResolveIdentifier turns a DependsOnIdentifier into a concrete UUID,
// consulting IDToUUID for numeric identifiers.
func (d *TaskData) ResolveIdentifier(id task.DependsOnIdentifier) (uuid.UUID, error) {
	if id.UUID != nil {
		return *id.UUID, nil
	}
	if id.ID != nil {
		if u, ok := d.IDToUUID[*id.ID]; ok {
			return u, nil
		}
		return uuid.UUID{}, bedrrors.NewResolutionError("depends_on",
			fmt.Errorf("no task currently has id %d", *id.ID))
	}
	return uuid.UUID{}, bedrrors.NewResolutionError("depends_on", fmt.Errorf("empty task identifier"))
}

func (d *TaskData) resolveDependsOn(ids []task.DependsOnIdentifier) ([]task.DependsOnLink, error) {
	out := make([]task.DependsOnLink, 0, len(ids))
	for _, id := range ids {
		u, err := d.ResolveIdentifier(id)
		if err != nil {
			return nil, err
		}
		out = append(out, task.DependsOnLink{UUID: u})
	}
	return out, nil
}

// AddTask creates a new task from props and inserts it into the live set.
func (d *TaskData) AddTask(props task.Properties, now time.Time, defaultStatus task.Status) (*task.Task, error) {
	if props.Summary == nil || *props.Summary == "" {
		return nil, fmt.Errorf("a new task needs a summary")
	}
	t := task.New(now)
	t.Status = defaultStatus

	dependsOn, err := d.resolveDependsOn(props.ReferencedTasks())
	if err != nil {
		return nil, err
	}
	if err := t.Apply(props, now, dependsOn); err != nil {
		return nil, err
	}
	d.Tasks[t.UUID] = t
	return t, nil
}

// Apply patches an existing task identified by UUID.
func (d *TaskData) Apply(u uuid.UUID, props task.Properties, now time.Time) error {
	t, ok := d.Get(u)
	if !ok {
		return bedrrors.NewResolutionError("task", fmt.Errorf("no task with uuid %s", u))
	}

	dependsOn, err := d.resolveDependsOn(props.ReferencedTasks())
	if err != nil {
		return err
	}
	return t.Apply(props, now, dependsOn)
}

// Filter returns every task in Tasks that satisfies f, whatever its status,
// sorted by creation time,
// and extends ExtraTasks with the direct DependsOn/Blocking neighbors of
// the matches so their summaries remain displayable even when the
// neighbor itself doesn't pass the filter.
func (d *TaskData) Filter(f query.Filter) []*task.Task {
	resolved := query.ResolveIDs(f, d.IDToUUID)
	var out []*task.Task
	for _, t := range d.Tasks {
		if resolved.Validate(t) {
			out = append(out, t)
		}
	}
	task.SortByCreation(out)
	for u, t := range d.extraTasksFor(out) {
		d.ExtraTasks[u] = t
	}
	return out
}

// extraTasksFor computes the first-degree DependsOn/Blocking neighbors of
// matches that are not themselves among the matches.
func (d *TaskData) extraTasksFor(matches []*task.Task) map[uuid.UUID]*task.Task {
	matched := make(map[uuid.UUID]bool, len(matches))
	for _, t := range matches {
		matched[t.UUID] = true
	}

	extra := map[uuid.UUID]*task.Task{}
	for _, t := range matches {
		for _, lt := range []task.LinkType{task.LinkDependsOn, task.LinkBlocking} {
			for _, u := range t.LinksOfType(lt) {
				if matched[u] {
					continue
				}
				if n, ok := d.Tasks[u]; ok {
					extra[u] = n
				}
			}
		}
	}
	return extra
}
