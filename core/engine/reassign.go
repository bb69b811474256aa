package engine

import (
	"github.com/skyopshq/skyops/core/audit"
	"github.com/skyopshq/skyops/core/events"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/planner"
	"github.com/skyopshq/skyops/core/roster"
)

// FindUrgentReassignment handles a mission whose assigned pilot or drone
// has become unavailable: stale assignments are marked void, then the
// planner ranks replacements over the cleaned snapshot. Calling it again
// without intervening state changes yields the same ranking: the first
// call voids the stale assignments, after which planning is a pure
// function of the snapshot.
func (e *Engine) FindUrgentReassignment(missionRef string) (planner.Plan, error) {
	missionID, err := e.resolveMission(missionRef)
	if err != nil {
		return planner.Plan{}, err
	}

	e.mu.Lock()
	now := e.now()
	voided := e.voidStaleAssignments(missionID)
	snap := e.store.Snapshot()
	e.mu.Unlock()

	plan, err := e.planner.Plan(snap, missionID, now)
	if err != nil {
		return planner.Plan{}, err
	}
	e.record(audit.Record{
		Timestamp:   now,
		Operation:   "urgent_reassignment",
		MissionID:   missionID,
		ResourceIDs: voided,
	})
	return plan, nil
}

// voidStaleAssignments marks void every assignment of the mission whose
// resource can no longer serve it, and returns the affected resource IDs.
func (e *Engine) voidStaleAssignments(missionID string) []string {
	snap := e.store.Snapshot()
	var affected []string
	for _, a := range snap.MissionAssignments(missionID) {
		if !e.assignmentStale(snap, a) {
			continue
		}
		if err := e.store.VoidAssignment(a.ID); err != nil {
			e.log.Errorf("void assignment %s: %v", a.ID, err)
			continue
		}
		affected = append(affected, resourceIDs(a)...)
		e.publish(events.AssignmentEvent{Action: events.AssignmentVoided, Assignment: a, Timestamp: e.now()})
		e.notify(SyncChange{Entity: "assignment", ID: a.ID, Action: "voided"})
	}
	return affected
}

// assignmentStale reports whether the assignment's resource has dropped
// out: deactivated, unavailable, in maintenance, or on leave past the
// start date.
func (e *Engine) assignmentStale(snap roster.Snapshot, a model.Assignment) bool {
	if a.PilotID != "" {
		if p, ok := snap.Pilot(a.PilotID); ok {
			if !p.Active || p.Status == model.PilotUnavailable {
				return true
			}
			if p.Status == model.PilotOnLeave && p.AvailableFrom.After(a.Dates.Start) {
				return true
			}
		}
	}
	if a.DroneID != "" {
		if d, ok := snap.Drone(a.DroneID); ok {
			if !d.Active || d.Status == model.DroneMaintenance {
				return true
			}
		}
	}
	return false
}
