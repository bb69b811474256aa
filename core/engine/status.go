package engine

import (
	"fmt"

	"github.com/skyopshq/skyops/core/audit"
	"github.com/skyopshq/skyops/core/events"
	"github.com/skyopshq/skyops/core/metrics"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// SetPilotStatus updates a pilot's roster status from its sheet spelling.
func (e *Engine) SetPilotStatus(pilotID, status string) error {
	st, ok := model.ParsePilotStatus(status)
	if !ok {
		return fmt.Errorf("invalid pilot status %q", status)
	}
	e.mu.Lock()
	err := e.store.SetPilotStatus(pilotID, st)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.afterStatusChange(model.KindPilot, pilotID, st.String())
	return nil
}

// SetDroneStatus updates a drone's fleet status from its sheet spelling.
func (e *Engine) SetDroneStatus(droneID, status string) error {
	st, ok := model.ParseDroneStatus(status)
	if !ok {
		return fmt.Errorf("invalid drone status %q", status)
	}
	e.mu.Lock()
	err := e.store.SetDroneStatus(droneID, st)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.afterStatusChange(model.KindDrone, droneID, st.String())
	return nil
}

// LoadRoster replaces the store contents with a bulk snapshot from an
// external origin: flat file or synchronized sheet, the engine does not
// care which.
func (e *Engine) LoadRoster(snap roster.Snapshot, origin string) {
	e.mu.Lock()
	e.store.Load(snap)
	e.mu.Unlock()
	now := e.now()
	e.log.Infof("roster loaded from %s: %d pilots, %d drones, %d missions, %d assignments",
		origin, len(snap.Pilots), len(snap.Drones), len(snap.Missions), len(snap.Assignments))
	e.publish(events.SyncEvent{
		Origin:      origin,
		Pilots:      len(snap.Pilots),
		Drones:      len(snap.Drones),
		Missions:    len(snap.Missions),
		Assignments: len(snap.Assignments),
		Timestamp:   now,
	})
	if rr, ok := e.metrics.(metrics.RosterSizeRecorder); ok {
		if err := rr.RecordRosterSize(len(snap.Pilots), len(snap.Drones), len(snap.Missions)); err != nil {
			e.log.Errorf("roster size metrics: %v", err)
		}
	}
	e.record(audit.Record{
		Timestamp: now,
		Operation: "load_roster",
		Detail:    origin,
	})
}

func (e *Engine) afterStatusChange(kind model.ResourceKind, id, status string) {
	now := e.now()
	e.publish(events.StatusEvent{Kind: kind, ResourceID: id, Status: status, Timestamp: now})
	e.record(audit.Record{
		Timestamp:   now,
		Operation:   "status_update",
		ResourceIDs: []string{id},
		Detail:      fmt.Sprintf("%s %s -> %s", kind, id, status),
	})
	e.notify(SyncChange{Entity: kind.String(), ID: id, Action: "status", Payload: status})
}
