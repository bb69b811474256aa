package events

import (
	"time"

	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/model"
)

// AssignmentAction identifies what happened to an assignment.
type AssignmentAction string

const (
	AssignmentCreated AssignmentAction = "created"
	AssignmentRemoved AssignmentAction = "removed"
	AssignmentVoided  AssignmentAction = "voided"
)

// AssignmentEvent is published for every assignment mutation.
type AssignmentEvent struct {
	Action     AssignmentAction
	Assignment model.Assignment
	Timestamp  time.Time
}

// ConflictEvent carries the outcome of a detector pass.
type ConflictEvent struct {
	Scope     string
	Conflicts []conflict.Conflict
	Timestamp time.Time
}

// StatusEvent is published when a pilot or drone status changes.
type StatusEvent struct {
	Kind       model.ResourceKind
	ResourceID string
	Status     string
	Timestamp  time.Time
}

// SyncEvent is published after a bulk roster load or refresh.
type SyncEvent struct {
	Origin      string
	Pilots      int
	Drones      int
	Missions    int
	Assignments int
	Timestamp   time.Time
}
