package roster

import (
	"strings"
	"time"

	"github.com/skyopshq/skyops/core/model"
)

// Snapshot is a point-in-time copy of the roster. All matching, detection
// and planning operate on snapshots, never on live store state.
type Snapshot struct {
	Pilots      []model.Pilot
	Drones      []model.Drone
	Missions    []model.Mission
	Assignments []model.Assignment
}

// Pilot looks up a pilot by ID.
func (s Snapshot) Pilot(id string) (model.Pilot, bool) {
	for _, p := range s.Pilots {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pilot{}, false
}

// Drone looks up a drone by ID.
func (s Snapshot) Drone(id string) (model.Drone, bool) {
	for _, d := range s.Drones {
		if d.ID == id {
			return d, true
		}
	}
	return model.Drone{}, false
}

// Mission looks up a mission by canonical ID.
func (s Snapshot) Mission(id string) (model.Mission, bool) {
	for _, m := range s.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return model.Mission{}, false
}

// MissionAssignments returns the non-void assignments of a mission in
// stable order.
func (s Snapshot) MissionAssignments(missionID string) []model.Assignment {
	var out []model.Assignment
	for _, a := range s.Assignments {
		if a.MissionID == missionID && !a.Void {
			out = append(out, a)
		}
	}
	return out
}

// ResourceAssignments returns the assignments active on a resource at the
// given day, in stable order.
func (s Snapshot) ResourceAssignments(kind model.ResourceKind, id string, asOf time.Time) []model.Assignment {
	var out []model.Assignment
	for _, a := range s.Assignments {
		if a.Covers(kind, id) && a.ActiveAt(asOf) {
			out = append(out, a)
		}
	}
	return out
}

// Filter selects roster entries for read-only queries. Zero fields match
// everything; string fields match by case-insensitive substring, the way
// the roster sheets were always searched.
type Filter struct {
	Status     string
	Skill      string
	Capability string
	Location   string
	Window     *model.DateRange
}

// FilterPilots returns the pilots matching the filter.
func (s Snapshot) FilterPilots(f Filter) []model.Pilot {
	var out []model.Pilot
	for _, p := range s.Pilots {
		if f.Status != "" && !strings.EqualFold(p.Status.String(), strings.TrimSpace(f.Status)) {
			continue
		}
		if f.Skill != "" && !p.HasSkill(f.Skill) {
			continue
		}
		if f.Location != "" && !containsFold(p.Location, f.Location) {
			continue
		}
		if f.Window != nil && !pilotFree(s, p, *f.Window) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterDrones returns the drones matching the filter.
func (s Snapshot) FilterDrones(f Filter) []model.Drone {
	var out []model.Drone
	for _, d := range s.Drones {
		if f.Status != "" && !strings.EqualFold(d.Status.String(), strings.TrimSpace(f.Status)) {
			continue
		}
		if f.Capability != "" {
			c, ok := model.ParseCapability(f.Capability)
			if !ok || !d.HasCapability(c) {
				continue
			}
		}
		if f.Location != "" && !containsFold(d.Location, f.Location) {
			continue
		}
		if f.Window != nil && resourceBooked(s, model.KindDrone, d.ID, *f.Window) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterMissions returns the missions matching the filter.
func (s Snapshot) FilterMissions(f Filter) []model.Mission {
	var out []model.Mission
	for _, m := range s.Missions {
		if f.Status != "" && !strings.EqualFold(m.Status.String(), strings.TrimSpace(f.Status)) {
			continue
		}
		if f.Location != "" && !containsFold(m.Location, f.Location) {
			continue
		}
		if f.Window != nil && !m.Dates.Overlaps(*f.Window) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func pilotFree(s Snapshot, p model.Pilot, w model.DateRange) bool {
	if p.Status == model.PilotOnLeave && p.AvailableFrom.After(w.Start) {
		return false
	}
	return !resourceBooked(s, model.KindPilot, p.ID, w)
}

func resourceBooked(s Snapshot, kind model.ResourceKind, id string, w model.DateRange) bool {
	for _, a := range s.ResourceAssignments(kind, id, w.Start) {
		if a.Dates.Overlaps(w) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
