// Package costing derives projected spend for assignments and flags
// budget overruns.
package costing

import (
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// Projected returns the cost of engaging a resource at the given daily
// rate over an inclusive date range.
func Projected(dailyRate float64, dates model.DateRange) float64 {
	return dailyRate * float64(dates.Days())
}

// MissionCost sums the projected cost of every non-void assignment tied to
// the mission, pilot and drone rates both counted.
func MissionCost(snap roster.Snapshot, missionID string) float64 {
	total := 0.0
	for _, a := range snap.MissionAssignments(missionID) {
		total += assignmentCost(snap, a)
	}
	return total
}

// Overrun reports whether projected spend strictly exceeds the budget.
func Overrun(projected, budget float64) bool {
	return projected > budget
}

func assignmentCost(snap roster.Snapshot, a model.Assignment) float64 {
	cost := 0.0
	if a.PilotID != "" {
		if p, ok := snap.Pilot(a.PilotID); ok {
			cost += Projected(p.DailyRate, a.Dates)
		}
	}
	if a.DroneID != "" {
		if d, ok := snap.Drone(a.DroneID); ok {
			cost += Projected(d.DailyRate, a.Dates)
		}
	}
	return cost
}
