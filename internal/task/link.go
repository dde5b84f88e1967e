package task

import (
	"time"

	"github.com/google/uuid"
)

// LinkType distinguishes the two edge kinds a Task can carry.
type LinkType string

const (
	LinkDependsOn LinkType = "depends_on"
	LinkBlocking  LinkType = "blocking"
)

// Link is a directed edge, stored by UUID rather than by pointer so the
// graph can be reconstituted from a flat slice after load.
type Link struct {
	From uuid.UUID `json:"from"`
	To   uuid.UUID `json:"to"`
	Type LinkType  `json:"link_type"`
}

// Project is an optional dotted-path classification, e.g. "work.bee.core".
type Project struct {
	Name string `json:"name"`
}

// Annotation is a single timestamped free-text note on a task.
type Annotation struct {
	Value string    `json:"value"`
	Time  time.Time `json:"time"`
}

// History is an append-only record of a mutation applied to a task.
type History struct {
	Value string    `json:"value"`
	Time  time.Time `json:"time"`
}
