// Package conflict sweeps the roster for violated constraints. The
// detector runs either as a full sweep or incrementally against a single
// mission or just-written assignment; both modes report every violation
// they find, never stopping at the first hit.
package conflict

import (
	"fmt"
	"strings"
	"time"

	"github.com/skyopshq/skyops/core/costing"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// Detector evaluates roster snapshots against the six constraint
// dimensions.
type Detector struct{}

// New returns a Detector.
func New() Detector { return Detector{} }

// SweepAll checks every mission and every active assignment pair. The
// returned slice is deterministic for a fixed snapshot, so two sweeps
// without an intervening mutation are identical.
func (d Detector) SweepAll(snap roster.Snapshot, asOf time.Time) []Conflict {
	var out []Conflict
	for _, m := range snap.Missions {
		out = append(out, d.missionConflicts(snap, m)...)
	}
	out = append(out, d.doubleBookings(snap, asOf, nil)...)
	return out
}

// SweepMission checks one mission plus double-bookings touching its
// resources.
func (d Detector) SweepMission(snap roster.Snapshot, missionID string, asOf time.Time) ([]Conflict, error) {
	m, ok := snap.Mission(missionID)
	if !ok {
		return nil, fmt.Errorf("%w: mission %s", model.ErrNotFound, missionID)
	}
	out := d.missionConflicts(snap, m)
	involved := map[string]bool{}
	for _, a := range snap.MissionAssignments(missionID) {
		involved[a.ID] = true
	}
	out = append(out, d.doubleBookings(snap, asOf, func(a, b model.Assignment) bool {
		return involved[a.ID] || involved[b.ID]
	})...)
	return out, nil
}

// CheckAssignment runs the incremental pass for a just-written assignment:
// the constraint checks scoped to it plus any double-booking it creates.
// This is invoked inside the same critical section as the write so risk
// surfaces at the point of introduction.
func (d Detector) CheckAssignment(snap roster.Snapshot, a model.Assignment) []Conflict {
	m, ok := snap.Mission(a.MissionID)
	if !ok {
		return nil
	}
	out := d.assignmentConflicts(snap, m, a)
	out = append(out, d.doubleBookings(snap, a.Dates.Start, func(x, y model.Assignment) bool {
		return x.ID == a.ID || y.ID == a.ID
	})...)
	if cost := costing.MissionCost(snap, m.ID); costing.Overrun(cost, m.Budget) {
		out = append(out, Conflict{
			Kind:      BudgetOverrun,
			Severity:  SeverityOf(BudgetOverrun),
			MissionID: m.ID,
			Detail:    fmt.Sprintf("projected cost %.0f exceeds budget %.0f", cost, m.Budget),
		})
	}
	return out
}

// missionConflicts checks the per-assignment dimensions plus one budget
// check over the mission total.
func (d Detector) missionConflicts(snap roster.Snapshot, m model.Mission) []Conflict {
	var out []Conflict
	for _, a := range snap.MissionAssignments(m.ID) {
		out = append(out, d.assignmentConflicts(snap, m, a)...)
	}
	if cost := costing.MissionCost(snap, m.ID); costing.Overrun(cost, m.Budget) {
		out = append(out, Conflict{
			Kind:      BudgetOverrun,
			Severity:  SeverityOf(BudgetOverrun),
			MissionID: m.ID,
			Detail:    fmt.Sprintf("projected cost %.0f exceeds budget %.0f", cost, m.Budget),
		})
	}
	return out
}

//gocyclo:ignore
func (d Detector) assignmentConflicts(snap roster.Snapshot, m model.Mission, a model.Assignment) []Conflict {
	var out []Conflict
	add := func(k Kind, resID, detail string) {
		out = append(out, Conflict{
			Kind:        k,
			Severity:    SeverityOf(k),
			MissionID:   m.ID,
			ResourceIDs: []string{resID},
			Detail:      detail,
		})
	}

	if a.PilotID != "" {
		if p, ok := snap.Pilot(a.PilotID); ok {
			skill := m.Type.RequiredSkill()
			if !p.HasSkill(skill) {
				add(SkillMismatch, p.ID,
					fmt.Sprintf("%s assigned to %s but lacks required skill %q", p.Name, m.ID, skill))
			}
			for _, cert := range m.RequiredCerts {
				if !p.HasCertification(cert) {
					add(SkillMismatch, p.ID,
						fmt.Sprintf("%s assigned to %s but lacks certification %q", p.Name, m.ID, cert))
				}
			}
			if p.Status == model.PilotOnLeave && p.AvailableFrom.After(a.Dates.Start) {
				add(AvailabilityConflict, p.ID,
					fmt.Sprintf("%s on leave until %s, after %s starts on %s",
						p.Name, p.AvailableFrom.Format(model.DateLayout), m.ID, a.Dates.Start.Format(model.DateLayout)))
			}
			if !sameLocation(p.Location, m.Location) {
				add(LocationMismatch, p.ID,
					fmt.Sprintf("%s is in %s but %s is in %s", p.Name, p.Location, m.ID, m.Location))
			}
		}
	}

	if a.DroneID != "" {
		if dr, ok := snap.Drone(a.DroneID); ok {
			if !dr.HasAnyCapability(m.Type.RequiredCapabilities()) {
				add(SkillMismatch, dr.ID,
					fmt.Sprintf("%s assigned to %s but lacks a required capability for %s", dr.ID, m.ID, m.Type))
			}
			if m.Forecast == model.WeatherRainy && !dr.WeatherRating.RainSafe() {
				add(WeatherIncompatibility, dr.ID,
					fmt.Sprintf("%s rated %s but %s forecast is Rainy", dr.ID, dr.WeatherRating, m.ID))
			}
			if dr.Status == model.DroneMaintenance {
				add(AvailabilityConflict, dr.ID,
					fmt.Sprintf("%s assigned to %s while in maintenance", dr.ID, m.ID))
			}
			if !sameLocation(dr.Location, m.Location) {
				add(LocationMismatch, dr.ID,
					fmt.Sprintf("%s is in %s but %s is in %s", dr.ID, dr.Location, m.ID, m.Location))
			}
		}
	}
	return out
}

// doubleBookings reports exactly one conflict per overlapping active
// assignment pair on the same resource. keep filters pairs when the sweep
// is scoped; nil keeps everything.
func (d Detector) doubleBookings(snap roster.Snapshot, asOf time.Time, keep func(a, b model.Assignment) bool) []Conflict {
	var out []Conflict
	for _, p := range snap.Pilots {
		out = append(out, pairConflicts(snap, model.KindPilot, p.ID, asOf, keep)...)
	}
	for _, dr := range snap.Drones {
		out = append(out, pairConflicts(snap, model.KindDrone, dr.ID, asOf, keep)...)
	}
	return out
}

func pairConflicts(snap roster.Snapshot, kind model.ResourceKind, id string, asOf time.Time, keep func(a, b model.Assignment) bool) []Conflict {
	list := snap.ResourceAssignments(kind, id, asOf)
	var out []Conflict
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			if !a.Dates.Overlaps(b.Dates) {
				continue
			}
			if keep != nil && !keep(a, b) {
				continue
			}
			out = append(out, Conflict{
				Kind:        DoubleBooking,
				Severity:    SeverityOf(DoubleBooking),
				MissionID:   a.MissionID,
				ResourceIDs: []string{id},
				Detail: fmt.Sprintf("%s %s holds overlapping assignments %s (%s) and %s (%s)",
					kind, id, a.MissionID, a.Dates, b.MissionID, b.Dates),
			})
		}
	}
	return out
}

func sameLocation(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
