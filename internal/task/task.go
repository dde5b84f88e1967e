package task

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single unit of work, keyed by a stable UUID. Non-terminal tasks
// additionally carry a small dense integer id assigned by upkeep.
type Task struct {
	UUID          uuid.UUID    `json:"uuid"`
	ID            *int         `json:"id"`
	Status        Status       `json:"status"`
	Summary       string       `json:"summary"`
	Tags          []string     `json:"tags"`
	Annotations   []Annotation `json:"annotations"`
	Project       *Project     `json:"project"`
	DateCreated   time.Time    `json:"date_created"`
	DateCompleted *time.Time   `json:"date_completed"`
	DateDue       *time.Time   `json:"date_due"`
	Links         []Link       `json:"links"`
	History       []History    `json:"history"`
	Urgency       *int         `json:"urgency"`
	Sub           []uuid.UUID  `json:"sub"`
}

// New creates a task with a fresh UUID and the given creation time. Callers
// are expected to apply an initial TaskProperties patch afterward.
func New(now time.Time) *Task {
	return &Task{
		UUID:        uuid.New(),
		Status:      StatusPending,
		Tags:        []string{},
		Annotations: []Annotation{},
		DateCreated: now,
		Links:       []Link{},
		History:     []History{},
		Sub:         []uuid.UUID{},
	}
}

// HasTag reports whether the task carries the given tag, case-sensitively.
func (t *Task) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

func (t *Task) addTag(name string) bool {
	if t.HasTag(name) {
		return false
	}
	t.Tags = append(t.Tags, name)
	return true
}

func (t *Task) removeTag(name string) bool {
	for i, tag := range t.Tags {
		if tag == name {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Task) recordHistory(now time.Time, text string) {
	t.History = append(t.History, History{Value: text, Time: now})
}

// LinksOfType returns the destination UUIDs of this task's edges matching
// the given link type, in insertion order.
func (t *Task) LinksOfType(lt LinkType) []uuid.UUID {
	var out []uuid.UUID
	for _, l := range t.Links {
		if l.Type == lt {
			out = append(out, l.To)
		}
	}
	return out
}

// HasLink reports whether this task has an edge of the given type to dest.
func (t *Task) HasLink(lt LinkType, dest uuid.UUID) bool {
	for _, l := range t.Links {
		if l.Type == lt && l.To == dest {
			return true
		}
	}
	return false
}

func (t *Task) addLink(lt LinkType, dest uuid.UUID) bool {
	if t.HasLink(lt, dest) {
		return false
	}
	t.Links = append(t.Links, Link{From: t.UUID, To: dest, Type: lt})
	return true
}

func (t *Task) removeLinksOfType(lt LinkType, keep func(uuid.UUID) bool) {
	kept := t.Links[:0]
	for _, l := range t.Links {
		if l.Type != lt || keep(l.To) {
			kept = append(kept, l)
		}
	}
	t.Links = kept
}

// ClearLinksOfType drops every edge of the given type.
func (t *Task) ClearLinksOfType(lt LinkType) {
	t.removeLinksOfType(lt, func(uuid.UUID) bool { return false })
}

// RemoveLink drops a single edge of the given type to dest, if present.
func (t *Task) RemoveLink(lt LinkType, dest uuid.UUID) {
	t.removeLinksOfType(lt, func(u uuid.UUID) bool { return u != dest })
}

// AddLink inserts a single edge of the given type to dest if not already
// present, reporting whether it was newly added.
func (t *Task) AddLink(lt LinkType, dest uuid.UUID) bool {
	return t.addLink(lt, dest)
}

// ProjectName returns the task's project name, or "" if unset.
func (t *Task) ProjectName() string {
	if t.Project == nil {
		return ""
	}
	return t.Project.Name
}

// done transitions the task to a terminal status, clearing its dense id and
// urgency and stamping date_completed. It does not touch links; upkeep is
// responsible for pruning/re-deriving those afterward.
func (t *Task) done(now time.Time, status Status, verb string) {
	t.Status = status
	t.ID = nil
	t.Urgency = nil
	t.DateCompleted = &now
	t.recordHistory(now, verb)
}

// Done transitions the task to Completed.
func (t *Task) Done(now time.Time) {
	t.done(now, StatusCompleted, "marked task as done")
}

// Delete transitions the task to Deleted.
func (t *Task) Delete(now time.Time) {
	t.done(now, StatusDeleted, "deleted task")
}

// SortByCreation sorts tasks by date_created ascending, the order used both
// for dense id assignment and for serialization to disk.
func SortByCreation(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DateCreated.Before(tasks[j].DateCreated)
	})
}

// Less orders two tasks for list display: urgency descending (nil urgency
// sorts last), ties broken by date_created ascending.
func Less(a, b *Task) bool {
	switch {
	case a.Urgency == nil && b.Urgency == nil:
		return a.DateCreated.Before(b.DateCreated)
	case a.Urgency == nil:
		return false
	case b.Urgency == nil:
		return true
	case *a.Urgency != *b.Urgency:
		return *a.Urgency > *b.Urgency
	default:
		return a.DateCreated.Before(b.DateCreated)
	}
}

// Clone deep-copies a task, for snapshots taken before a mutating action
// runs (so undo can restore the exact prior state).
func (t *Task) Clone() *Task {
	cp := *t
	cp.Tags = append([]string{}, t.Tags...)
	cp.Annotations = append([]Annotation{}, t.Annotations...)
	cp.Links = append([]Link{}, t.Links...)
	cp.History = append([]History{}, t.History...)
	cp.Sub = append([]uuid.UUID{}, t.Sub...)
	if t.Project != nil {
		p := *t.Project
		cp.Project = &p
	}
	if t.DateCompleted != nil {
		d := *t.DateCompleted
		cp.DateCompleted = &d
	}
	if t.DateDue != nil {
		d := *t.DateDue
		cp.DateDue = &d
	}
	if t.ID != nil {
		id := *t.ID
		cp.ID = &id
	}
	if t.Urgency != nil {
		u := *t.Urgency
		cp.Urgency = &u
	}
	return &cp
}

// ValidateProjectName enforces invariant 7: no trailing dot.
func ValidateProjectName(name string) bool {
	return name != "" && !strings.HasSuffix(name, ".")
}
