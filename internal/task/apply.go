package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned by Apply when an active_status change
// does not match invariant 6 (true only from Pending, false only from
// Active). Callers in the action engine downgrade this to a per-task
// warning rather than aborting the whole batch.
var ErrInvalidTransition = errors.New("invalid task state transition")

// Apply mutates the task according to props, in the fixed field order that
// keeps the resulting history deterministic: summary, date_due,
// active_status, status, project, tags_remove, tags_add, annotation,
// annotations, depends_on. Every effective change appends one History
// entry. depends_on entries must already be resolved to UUIDs by the
// caller (see taskdata.Apply) -- Task itself never resolves dense ids.
func (t *Task) Apply(props Properties, now time.Time, dependsOn []DependsOnLink) error {
	if props.Summary != nil && *props.Summary != t.Summary {
		old := t.Summary
		t.Summary = *props.Summary
		t.recordHistory(now, fmt.Sprintf("summary changed from %q to %q", old, t.Summary))
	}

	if props.DateDue != nil {
		t.DateDue = props.DateDue
		t.recordHistory(now, "due date updated")
	}

	if props.ActiveStatus != nil {
		if *props.ActiveStatus {
			if t.Status != StatusPending {
				return fmt.Errorf("%w: active_status=true requires a pending task, got %s", ErrInvalidTransition, t.Status)
			}
			t.Status = StatusActive
			t.recordHistory(now, "started task")
		} else {
			if t.Status != StatusActive {
				return fmt.Errorf("%w: active_status=false requires an active task, got %s", ErrInvalidTransition, t.Status)
			}
			t.Status = StatusPending
			t.recordHistory(now, "stopped task")
		}
	}

	if props.Status != nil && *props.Status != t.Status {
		if t.Status.IsTerminal() && !props.Status.IsTerminal() {
			return fmt.Errorf("%w: cannot move a %s task back to %s", ErrInvalidTransition, t.Status, *props.Status)
		}
		t.Status = *props.Status
		if t.Status.IsTerminal() {
			t.DateCompleted = &now
		}
		t.recordHistory(now, fmt.Sprintf("status changed to %s", t.Status))
	}

	if props.Project != nil {
		if props.Project.Clear {
			if t.Project != nil {
				t.Project = nil
				t.recordHistory(now, "project cleared")
			}
		} else {
			t.Project = &Project{Name: props.Project.Name}
			t.recordHistory(now, fmt.Sprintf("project set to %s", props.Project.Name))
		}
	}

	if len(props.TagsRemove) > 0 {
		var removed []string
		for _, tag := range props.TagsRemove {
			if t.removeTag(tag) {
				removed = append(removed, tag)
			}
		}
		if len(removed) > 0 {
			t.recordHistory(now, "tags removed: "+strings.Join(removed, ", "))
		}
	}

	if len(props.TagsAdd) > 0 {
		var added []string
		for _, tag := range props.TagsAdd {
			if t.addTag(tag) {
				added = append(added, tag)
			}
		}
		if len(added) > 0 {
			t.recordHistory(now, "tags added: "+strings.Join(added, ", "))
		}
	}

	if props.Annotation != nil {
		t.Annotations = append(t.Annotations, Annotation{Value: *props.Annotation, Time: now})
		t.recordHistory(now, "annotation added")
	}

	if props.Annotations != nil {
		t.Annotations = props.Annotations
		t.recordHistory(now, "annotations replaced")
	}

	if props.DependsOn != nil {
		if len(*props.DependsOn) == 0 {
			if len(t.LinksOfType(LinkDependsOn)) > 0 {
				t.ClearLinksOfType(LinkDependsOn)
				t.recordHistory(now, "dependencies cleared")
			}
		} else {
			var added bool
			for _, l := range dependsOn {
				if t.addLink(LinkDependsOn, l.UUID) {
					added = true
				}
			}
			if added {
				t.recordHistory(now, "dependency added")
			}
		}
	}

	return nil
}

// DependsOnLink is a resolved depends_on entry: the original identifier's
// target UUID, ready to become a DependsOn edge.
type DependsOnLink struct {
	UUID uuid.UUID
}
