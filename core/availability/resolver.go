// Package availability decides whether a resource is feasible for a
// proposed date window given leave records and existing assignments.
package availability

import (
	"fmt"
	"time"

	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// State is the outcome of an availability check.
type State int

const (
	// Available means the resource can take the window as-is.
	Available State = iota
	// OnLeaveUntil means the resource is on leave and only usable if the
	// proposed start is on or after the return date.
	OnLeaveUntil
	// DoubleBooked means an existing active assignment overlaps the window.
	DoubleBooked
	// Unavailable covers hard states: deactivated resources, drones in
	// maintenance, pilots marked unavailable.
	Unavailable
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case OnLeaveUntil:
		return "on_leave_until"
	case DoubleBooked:
		return "double_booked"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result carries the state plus the evidence behind it.
type Result struct {
	State State
	// From is the return date when State is OnLeaveUntil.
	From time.Time
	// Conflicting is the overlapping assignment when State is DoubleBooked.
	Conflicting *model.Assignment
	Reason      string
}

// OK reports whether the window can proceed without a blocking issue.
func (r Result) OK() bool { return r.State == Available }

// ResolvePilot evaluates a pilot against a proposed window.
func ResolvePilot(snap roster.Snapshot, p model.Pilot, window model.DateRange) Result {
	if !p.Active || p.Status == model.PilotUnavailable {
		return Result{State: Unavailable, Reason: fmt.Sprintf("pilot %s is %s", p.ID, p.Status)}
	}
	if a := overlapping(snap, model.KindPilot, p.ID, window); a != nil {
		return Result{
			State:       DoubleBooked,
			Conflicting: a,
			Reason:      fmt.Sprintf("pilot %s already assigned to %s for %s", p.ID, a.MissionID, a.Dates),
		}
	}
	if p.Status == model.PilotOnLeave && p.AvailableFrom.After(window.Start) {
		return Result{
			State:  OnLeaveUntil,
			From:   p.AvailableFrom,
			Reason: fmt.Sprintf("pilot %s on leave until %s", p.ID, p.AvailableFrom.Format(model.DateLayout)),
		}
	}
	return Result{State: Available}
}

// ResolveDrone evaluates a drone against a proposed window.
func ResolveDrone(snap roster.Snapshot, d model.Drone, window model.DateRange) Result {
	if !d.Active {
		return Result{State: Unavailable, Reason: fmt.Sprintf("drone %s is deactivated", d.ID)}
	}
	if d.Status == model.DroneMaintenance {
		return Result{State: Unavailable, Reason: fmt.Sprintf("drone %s is in maintenance", d.ID)}
	}
	if a := overlapping(snap, model.KindDrone, d.ID, window); a != nil {
		return Result{
			State:       DoubleBooked,
			Conflicting: a,
			Reason:      fmt.Sprintf("drone %s already assigned to %s for %s", d.ID, a.MissionID, a.Dates),
		}
	}
	return Result{State: Available}
}

// overlapping returns the earliest active assignment whose inclusive range
// overlaps the window, or nil.
func overlapping(snap roster.Snapshot, kind model.ResourceKind, id string, window model.DateRange) *model.Assignment {
	for _, a := range snap.ResourceAssignments(kind, id, window.Start) {
		if a.Dates.Overlaps(window) {
			found := a
			return &found
		}
	}
	return nil
}
