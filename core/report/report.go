// Package report derives roster-level summaries for coordinators and the
// conversational layer: headcounts, utilization, rate statistics and
// maintenance flags.
package report

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// Summary is a numeric snapshot of the roster.
type Summary struct {
	Pilots            int     `json:"pilots"`
	Drones            int     `json:"drones"`
	Missions          int     `json:"missions"`
	ActiveAssignments int     `json:"active_assignments"`
	PilotUtilization  float64 `json:"pilot_utilization"`
	DroneUtilization  float64 `json:"drone_utilization"`
	MeanPilotRate     float64 `json:"mean_pilot_rate"`
	StdDevPilotRate   float64 `json:"stddev_pilot_rate"`
	MeanDroneRate     float64 `json:"mean_drone_rate"`
	StdDevDroneRate   float64 `json:"stddev_drone_rate"`
}

// Build computes the summary for a snapshot at the given day.
func Build(snap roster.Snapshot, asOf time.Time) Summary {
	s := Summary{
		Pilots:   len(snap.Pilots),
		Drones:   len(snap.Drones),
		Missions: len(snap.Missions),
	}
	var pilotRates, droneRates []float64
	assignedPilots, assignedDrones := 0, 0
	for _, p := range snap.Pilots {
		pilotRates = append(pilotRates, p.DailyRate)
		if p.Status == model.PilotAssigned {
			assignedPilots++
		}
	}
	for _, d := range snap.Drones {
		droneRates = append(droneRates, d.DailyRate)
		if d.Status == model.DroneAssigned {
			assignedDrones++
		}
	}
	for _, a := range snap.Assignments {
		if a.ActiveAt(asOf) {
			s.ActiveAssignments++
		}
	}
	if len(snap.Pilots) > 0 {
		s.PilotUtilization = float64(assignedPilots) / float64(len(snap.Pilots))
		s.MeanPilotRate = stat.Mean(pilotRates, nil)
		s.StdDevPilotRate = stat.StdDev(pilotRates, nil)
	}
	if len(snap.Drones) > 0 {
		s.DroneUtilization = float64(assignedDrones) / float64(len(snap.Drones))
		s.MeanDroneRate = stat.Mean(droneRates, nil)
		s.StdDevDroneRate = stat.StdDev(droneRates, nil)
	}
	return s
}

// MaintenanceFlag marks a drone with overdue or imminent maintenance.
type MaintenanceFlag struct {
	DroneID string    `json:"drone_id"`
	Model   string    `json:"model"`
	Due     time.Time `json:"due"`
	Overdue bool      `json:"overdue"`
}

// maintenanceHorizon is how far ahead a due date counts as imminent.
const maintenanceHorizon = 7 * 24 * time.Hour

// MaintenanceFlags returns drones whose maintenance is overdue or due
// within the next week, in snapshot order.
func MaintenanceFlags(snap roster.Snapshot, asOf time.Time) []MaintenanceFlag {
	day := model.Day(asOf)
	var out []MaintenanceFlag
	for _, d := range snap.Drones {
		if d.MaintenanceDue.IsZero() {
			continue
		}
		due := model.Day(d.MaintenanceDue)
		switch {
		case !due.After(day):
			out = append(out, MaintenanceFlag{DroneID: d.ID, Model: d.Model, Due: due, Overdue: true})
		case due.Sub(day) <= maintenanceHorizon:
			out = append(out, MaintenanceFlag{DroneID: d.ID, Model: d.Model, Due: due})
		}
	}
	return out
}

// Text renders a plain-text roster snapshot for the conversational layer.
func Text(snap roster.Snapshot) string {
	var b strings.Builder
	b.WriteString("PILOT ROSTER:\n")
	for _, p := range snap.Pilots {
		fmt.Fprintf(&b, "  %s | %s | skills: %s | location: %s | status: %s | rate: %.0f/day\n",
			p.ID, p.Name, strings.Join(p.Skills, ","), p.Location, p.Status, p.DailyRate)
	}
	b.WriteString("DRONE FLEET:\n")
	for _, d := range snap.Drones {
		caps := make([]string, len(d.Capabilities))
		for i, c := range d.Capabilities {
			caps[i] = c.String()
		}
		fmt.Fprintf(&b, "  %s | %s | caps: %s | rating: %s | location: %s | status: %s\n",
			d.ID, d.Model, strings.Join(caps, ","), d.WeatherRating, d.Location, d.Status)
	}
	b.WriteString("MISSIONS:\n")
	for _, m := range snap.Missions {
		fmt.Fprintf(&b, "  %s | %s | %s | %s | location: %s | budget: %.0f | forecast: %s\n",
			m.ID, m.Client, m.Type, m.Dates, m.Location, m.Budget, m.Forecast)
	}
	return b.String()
}
