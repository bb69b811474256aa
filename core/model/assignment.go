package model

import "time"

// ResourceKind distinguishes the two assignable entity kinds.
type ResourceKind int

const (
	KindPilot ResourceKind = iota
	KindDrone
)

func (k ResourceKind) String() string {
	switch k {
	case KindPilot:
		return "pilot"
	case KindDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// Assignment links a mission to a pilot and/or a drone for a date window.
// The window defaults to the mission dates when unspecified at creation.
// Overlapping assignments on the same resource are not rejected at write
// time; the conflict detector reports them immediately instead.
type Assignment struct {
	ID        string    `json:"assignment_id"`
	MissionID string    `json:"project_id"`
	PilotID   string    `json:"pilot_id,omitempty"`
	DroneID   string    `json:"drone_id,omitempty"`
	Dates     DateRange `json:"dates"`
	// Void marks an assignment abandoned by an urgent reassignment; void
	// assignments are ignored by detection and availability checks.
	Void bool `json:"void,omitempty"`
}

// ActiveAt reports whether the assignment window has not ended by the
// given day and the assignment has not been voided.
func (a Assignment) ActiveAt(day time.Time) bool {
	return !a.Void && !a.Dates.End.Before(Day(day))
}

// Covers reports whether the assignment references the resource.
func (a Assignment) Covers(kind ResourceKind, id string) bool {
	switch kind {
	case KindPilot:
		return a.PilotID == id
	case KindDrone:
		return a.DroneID == id
	default:
		return false
	}
}
