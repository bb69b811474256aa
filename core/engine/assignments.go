package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyopshq/skyops/core/audit"
	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/costing"
	"github.com/skyopshq/skyops/core/events"
	"github.com/skyopshq/skyops/core/metrics"
	"github.com/skyopshq/skyops/core/model"
)

// CreateAssignmentRequest describes a new assignment. Dates default to the
// mission's window when zero. At least one of PilotID and DroneID must be
// set.
type CreateAssignmentRequest struct {
	MissionRef string
	PilotID    string
	DroneID    string
	Start      time.Time
	End        time.Time
}

// CreateAssignment writes the assignment and immediately runs the
// incremental conflict pass, returning the detected conflicts alongside
// the new assignment, even when the set is empty. Business-rule
// violations never fail the call; only malformed input and unknown
// identifiers do.
func (e *Engine) CreateAssignment(req CreateAssignmentRequest) (model.Assignment, []conflict.Conflict, error) {
	missionID, err := e.resolveMission(req.MissionRef)
	if err != nil {
		return model.Assignment{}, nil, err
	}
	mission, err := e.store.GetMission(missionID)
	if err != nil {
		return model.Assignment{}, nil, err
	}
	if mission.Status.Terminal() {
		return model.Assignment{}, nil, fmt.Errorf("mission %s is %s and accepts no assignments", missionID, mission.Status)
	}
	if req.PilotID == "" && req.DroneID == "" {
		return model.Assignment{}, nil, fmt.Errorf("assignment needs a pilot or a drone")
	}
	if req.PilotID != "" {
		if _, err := e.store.GetPilot(req.PilotID); err != nil {
			return model.Assignment{}, nil, err
		}
	}
	if req.DroneID != "" {
		if _, err := e.store.GetDrone(req.DroneID); err != nil {
			return model.Assignment{}, nil, err
		}
	}

	dates := mission.Dates
	if !req.Start.IsZero() || !req.End.IsZero() {
		start, end := req.Start, req.End
		if start.IsZero() {
			start = mission.Dates.Start
		}
		if end.IsZero() {
			end = mission.Dates.End
		}
		dates, err = model.NewDateRange(start, end)
		if err != nil {
			return model.Assignment{}, nil, err
		}
	}

	a := model.Assignment{
		ID:        uuid.NewString(),
		MissionID: missionID,
		PilotID:   req.PilotID,
		DroneID:   req.DroneID,
		Dates:     dates,
	}

	// Write and sweep inside one critical section so no other writer can
	// interleave between "assignment written" and "conflicts reported".
	conflicts, err := func() ([]conflict.Conflict, error) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if err := e.store.AddAssignment(a); err != nil {
			return nil, err
		}
		if a.PilotID != "" {
			if err := e.store.SetPilotStatus(a.PilotID, model.PilotAssigned); err != nil {
				return nil, err
			}
		}
		if a.DroneID != "" {
			if err := e.store.SetDroneStatus(a.DroneID, model.DroneAssigned); err != nil {
				return nil, err
			}
		}
		return e.detector.CheckAssignment(e.store.Snapshot(), a), nil
	}()
	if err != nil {
		return model.Assignment{}, nil, err
	}

	now := e.now()
	e.log.Infof("assignment %s: mission=%s pilot=%s drone=%s conflicts=%d",
		a.ID, missionID, a.PilotID, a.DroneID, len(conflicts))
	e.publish(events.AssignmentEvent{Action: events.AssignmentCreated, Assignment: a, Timestamp: now})
	if len(conflicts) > 0 {
		e.publish(events.ConflictEvent{Scope: missionID, Conflicts: conflicts, Timestamp: now})
	}
	e.record(audit.Record{
		Timestamp:   now,
		Operation:   "create_assignment",
		MissionID:   missionID,
		ResourceIDs: resourceIDs(a),
		Conflicts:   conflicts,
	})
	e.recordAssignmentMetrics(a, conflicts, now)
	e.notify(SyncChange{Entity: "assignment", ID: a.ID, Action: "created", Payload: a})
	return a, conflicts, nil
}

// RemoveAssignment deletes an assignment and releases its resources back
// to Available when no other active assignment holds them.
func (e *Engine) RemoveAssignment(id string) error {
	e.mu.Lock()
	a, err := e.store.GetAssignment(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.store.RemoveAssignment(id); err != nil {
		e.mu.Unlock()
		return err
	}
	now := e.now()
	e.releaseResources(a, now)
	e.mu.Unlock()
	e.publish(events.AssignmentEvent{Action: events.AssignmentRemoved, Assignment: a, Timestamp: now})
	e.record(audit.Record{
		Timestamp:   now,
		Operation:   "remove_assignment",
		MissionID:   a.MissionID,
		ResourceIDs: resourceIDs(a),
	})
	e.notify(SyncChange{Entity: "assignment", ID: a.ID, Action: "removed"})
	return nil
}

// releaseResources flips resources back to Available unless they still
// hold another active assignment.
func (e *Engine) releaseResources(a model.Assignment, now time.Time) {
	if a.PilotID != "" {
		if remaining := e.store.ActiveAssignments(model.KindPilot, a.PilotID, now); len(remaining) == 0 {
			if err := e.store.SetPilotStatus(a.PilotID, model.PilotAvailable); err != nil {
				e.log.Errorf("release pilot %s: %v", a.PilotID, err)
			}
		}
	}
	if a.DroneID != "" {
		if remaining := e.store.ActiveAssignments(model.KindDrone, a.DroneID, now); len(remaining) == 0 {
			if err := e.store.SetDroneStatus(a.DroneID, model.DroneAvailable); err != nil {
				e.log.Errorf("release drone %s: %v", a.DroneID, err)
			}
		}
	}
}

func (e *Engine) recordAssignmentMetrics(a model.Assignment, conflicts []conflict.Conflict, now time.Time) {
	blocking, advisory := 0, 0
	for _, c := range conflicts {
		if c.Severity == conflict.Blocking {
			blocking++
		} else {
			advisory++
		}
	}
	snap := e.store.Snapshot()
	rec := metrics.AssignmentRecord{
		AssignmentID:      a.ID,
		MissionID:         a.MissionID,
		PilotID:           a.PilotID,
		DroneID:           a.DroneID,
		Days:              a.Dates.Days(),
		ProjectedCost:     costing.MissionCost(snap, a.MissionID),
		BlockingConflicts: blocking,
		AdvisoryConflicts: advisory,
		Timestamp:         now,
	}
	if err := e.metrics.RecordAssignment(rec); err != nil {
		e.log.Errorf("assignment metrics: %v", err)
	}
	if len(conflicts) > 0 {
		if err := e.metrics.RecordConflicts(conflictRecords(a.MissionID, conflicts, now)); err != nil {
			e.log.Errorf("conflict metrics: %v", err)
		}
	}
}

func resourceIDs(a model.Assignment) []string {
	var ids []string
	if a.PilotID != "" {
		ids = append(ids, a.PilotID)
	}
	if a.DroneID != "" {
		ids = append(ids, a.DroneID)
	}
	return ids
}
