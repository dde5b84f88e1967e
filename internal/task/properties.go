package task

import (
	"time"

	"github.com/google/uuid"
)

// DependsOnIdentifier names a task either by its stable UUID or by the
// dense integer id it currently holds. Exactly one field is set.
type DependsOnIdentifier struct {
	ID   *int
	UUID *uuid.UUID
}

// DependsOnByID builds an identifier from a dense integer id.
func DependsOnByID(id int) DependsOnIdentifier {
	return DependsOnIdentifier{ID: &id}
}

// DependsOnByUUID builds an identifier from a stable UUID.
func DependsOnByUUID(u uuid.UUID) DependsOnIdentifier {
	return DependsOnIdentifier{UUID: &u}
}

// ProjectPatch expresses a tri-state change to a task's project: nil means
// "no change" at the TaskProperties level; a non-nil ProjectPatch with
// Clear=true clears the project, otherwise Name sets it.
type ProjectPatch struct {
	Clear bool
	Name  string
}

// Properties is a patch object: every field left at its zero value (nil
// slice/pointer) means "leave this aspect of the task untouched".
type Properties struct {
	Summary       *string
	TagsAdd       []string
	TagsRemove    []string
	Annotation    *string
	Annotations   []Annotation
	Status        *Status
	ActiveStatus  *bool
	Project       *ProjectPatch
	DateDue       *time.Time
	DependsOn     *[]DependsOnIdentifier
}

// ReferencedTasks returns every task identifier named in DependsOn, for the
// caller to resolve to UUIDs (see TaskData.AddTask and TaskData.Apply).
func (p Properties) ReferencedTasks() []DependsOnIdentifier {
	if p.DependsOn == nil {
		return nil
	}
	return *p.DependsOn
}
