// Package query implements Bee's filter and property expression language:
// a small lexer-fed recursive-descent parser on top of internal/lexer, and
// the resulting Filter tree that TaskData evaluates against tasks.
package query

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nelyah/bee/internal/task"
)

// Filter is satisfied by every leaf and connective in the filter tree. It
// mirrors the original's `Box<dyn Filter>` as a closed Go interface instead
// of a trait object, since the concrete set of filter kinds is fixed.
type Filter interface {
	Validate(t *task.Task) bool
}

// Root is the identity filter: it matches everything and is the starting
// point every parse begins from. and()/or()/xorOf() collapse it away as
// soon as a real clause is combined with it.
type Root struct{}

func (Root) Validate(*task.Task) bool { return true }

func isRoot(f Filter) bool {
	_, ok := f.(Root)
	return ok
}

// And is true when every child filter matches.
type And struct{ Children []Filter }

func (f And) Validate(t *task.Task) bool {
	for _, c := range f.Children {
		if !c.Validate(t) {
			return false
		}
	}
	return true
}

// Or is true when at least one child filter matches.
type Or struct{ Children []Filter }

func (f Or) Validate(t *task.Task) bool {
	for _, c := range f.Children {
		if c.Validate(t) {
			return true
		}
	}
	return false
}

// Xor is true when exactly one of its children matches.
type Xor struct{ Children []Filter }

func (f Xor) Validate(t *task.Task) bool {
	count := 0
	for _, c := range f.Children {
		if c.Validate(t) {
			count++
		}
	}
	return count == 1
}

// and combines existing with next under AND semantics, collapsing Root and
// flattening a run of And nodes rather than nesting them.
func and(existing, next Filter) Filter {
	if isRoot(existing) {
		return next
	}
	if isRoot(next) {
		return existing
	}
	if a, ok := existing.(And); ok {
		return And{Children: append(append([]Filter{}, a.Children...), next)}
	}
	return And{Children: []Filter{existing, next}}
}

func or(existing, next Filter) Filter {
	if isRoot(existing) {
		return next
	}
	if isRoot(next) {
		return existing
	}
	if a, ok := existing.(Or); ok {
		return Or{Children: append(append([]Filter{}, a.Children...), next)}
	}
	return Or{Children: []Filter{existing, next}}
}

func xorOf(existing, next Filter) Filter {
	if isRoot(existing) {
		return next
	}
	if isRoot(next) {
		return existing
	}
	if a, ok := existing.(Xor); ok {
		return Xor{Children: append(append([]Filter{}, a.Children...), next)}
	}
	return Xor{Children: []Filter{existing, next}}
}

// StringFilter matches a case-insensitive substring of the task summary.
// It is what a lone word on the command line becomes.
type StringFilter struct{ Text string }

func (f StringFilter) Validate(t *task.Task) bool {
	return strings.Contains(strings.ToLower(t.Summary), strings.ToLower(f.Text))
}

// StatusFilter matches an exact task status.
type StatusFilter struct{ Status task.Status }

func (f StatusFilter) Validate(t *task.Task) bool {
	return t.Status == f.Status
}

// ProjectFilter matches a task whose project is the given name or a
// dot-separated sub-project of it (project:work matches work and work.api).
type ProjectFilter struct{ Name string }

func (f ProjectFilter) Validate(t *task.Task) bool {
	name := t.ProjectName()
	if name == f.Name {
		return true
	}
	return strings.HasPrefix(name, f.Name+".")
}

// TagFilter matches the presence (or, if Negate, the absence) of a tag.
type TagFilter struct {
	Tag    string
	Negate bool
}

func (f TagFilter) Validate(t *task.Task) bool {
	has := t.HasTag(f.Tag)
	if f.Negate {
		return !has
	}
	return has
}

// UuidFilter matches a task by its stable identifier.
type UuidFilter struct{ UUID uuid.UUID }

func (f UuidFilter) Validate(t *task.Task) bool {
	return t.UUID == f.UUID
}

// TaskIDFilter matches a task by its dense, session-local integer id. It
// must be resolved to a UuidFilter via ResolveIDs before Validate is ever
// called against real task data; unresolved, it matches nothing.
type TaskIDFilter struct{ ID int }

func (f TaskIDFilter) Validate(*task.Task) bool {
	return false
}

// DependsOnFilter matches a task that has an explicit DependsOn link to the
// identified task. Identifier.UUID must be resolved (see ResolveIDs) before
// Validate can match anything.
type DependsOnFilter struct{ Identifier task.DependsOnIdentifier }

func (f DependsOnFilter) Validate(t *task.Task) bool {
	if f.Identifier.UUID == nil {
		return false
	}
	return t.HasLink(task.LinkDependsOn, *f.Identifier.UUID)
}

// NoDependsFilter matches a task with no outstanding DependsOn links
// ("depends:none" used as a filter rather than as a clearing patch).
type NoDependsFilter struct{}

func (NoDependsFilter) Validate(t *task.Task) bool {
	return len(t.LinksOfType(task.LinkDependsOn)) == 0
}

// HasDueFilter matches any task with a due date set, regardless of value.
type HasDueFilter struct{}

func (HasDueFilter) Validate(t *task.Task) bool {
	return t.DateDue != nil
}

// DateField names which timestamp a DateFilter inspects.
type DateField int

const (
	DateFieldCreated DateField = iota
	DateFieldCompleted
	DateFieldDue
)

// DateFilter matches tasks whose named date field is before or after When.
type DateFilter struct {
	Field  DateField
	Before bool
	When   time.Time
}

func (f DateFilter) Validate(t *task.Task) bool {
	var when *time.Time
	switch f.Field {
	case DateFieldCreated:
		created := t.DateCreated
		when = &created
	case DateFieldCompleted:
		when = t.DateCompleted
	case DateFieldDue:
		when = t.DateDue
	}
	if when == nil {
		return false
	}
	if f.Before {
		return when.Before(f.When)
	}
	return when.After(f.When)
}

// ResolveIDs walks a filter tree and replaces any TaskIDFilter or
// DependsOnFilter referencing a dense id with its resolved UUID form,
// mirroring the original's convert_id_to_uuid pass. Ids with no current
// mapping are left as TaskIDFilter, which always evaluates false.
func ResolveIDs(f Filter, idToUUID map[int]uuid.UUID) Filter {
	switch v := f.(type) {
	case TaskIDFilter:
		if u, ok := idToUUID[v.ID]; ok {
			return UuidFilter{UUID: u}
		}
		return v
	case DependsOnFilter:
		if v.Identifier.UUID != nil {
			return v
		}
		if v.Identifier.ID != nil {
			if u, ok := idToUUID[*v.Identifier.ID]; ok {
				return DependsOnFilter{Identifier: task.DependsOnByUUID(u)}
			}
		}
		return v
	case And:
		return And{Children: resolveChildren(v.Children, idToUUID)}
	case Or:
		return Or{Children: resolveChildren(v.Children, idToUUID)}
	case Xor:
		return Xor{Children: resolveChildren(v.Children, idToUUID)}
	default:
		return f
	}
}

func resolveChildren(children []Filter, idToUUID map[int]uuid.UUID) []Filter {
	out := make([]Filter, len(children))
	for i, c := range children {
		out[i] = ResolveIDs(c, idToUUID)
	}
	return out
}

// OnlyTaskIDs reports the set of dense ids referenced anywhere in the
// filter tree by a TaskIDFilter, and whether the filter contains nothing
// but And/Or combinations of TaskIDFilter leaves (or a single
// TaskIDFilter). `bee 3 5 9` juxtaposes ids into an And, which
// FilterParser.Parse then rewrites into an Or.
func OnlyTaskIDs(f Filter) (ids []int, onlyIDs bool) {
	switch v := f.(type) {
	case TaskIDFilter:
		return []int{v.ID}, true
	case And:
		var all []int
		for _, c := range v.Children {
			sub, ok := OnlyTaskIDs(c)
			if !ok {
				return nil, false
			}
			all = append(all, sub...)
		}
		return all, true
	case Or:
		var all []int
		for _, c := range v.Children {
			sub, ok := OnlyTaskIDs(c)
			if !ok {
				return nil, false
			}
			all = append(all, sub...)
		}
		return all, true
	default:
		return nil, false
	}
}
