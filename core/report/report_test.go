package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

func d(day int) time.Time {
	return time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC)
}

func snapshot(t *testing.T) roster.Snapshot {
	t.Helper()
	dates, err := model.NewDateRange(d(10), d(12))
	require.NoError(t, err)
	return roster.Snapshot{
		Pilots: []model.Pilot{
			{ID: "P001", Name: "Asha Rao", Skills: []string{"survey"}, Status: model.PilotAssigned, Location: "Bangalore", DailyRate: 2000, Active: true},
			{ID: "P002", Name: "Vikram Shah", Skills: []string{"thermal"}, Status: model.PilotAvailable, Location: "Mumbai", DailyRate: 3000, Active: true},
		},
		Drones: []model.Drone{
			{ID: "D001", Model: "Matrice 350", Capabilities: []model.Capability{model.CapLiDAR}, Status: model.DroneAssigned, Location: "Bangalore", DailyRate: 1500, MaintenanceDue: d(8), Active: true},
			{ID: "D002", Model: "Mavic 3T", Capabilities: []model.Capability{model.CapThermal}, Status: model.DroneAvailable, Location: "Mumbai", DailyRate: 1000, MaintenanceDue: d(14), Active: true},
			{ID: "D003", Model: "Anafi", Capabilities: []model.Capability{model.CapRGB}, Status: model.DroneAvailable, Location: "Pune", DailyRate: 800, MaintenanceDue: d(30), Active: true},
		},
		Missions: []model.Mission{
			{ID: "PRJ001", Client: "Acme", Type: model.MissionMapping, Dates: dates, Location: "Bangalore", Budget: 9000},
		},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ001", PilotID: "P001", DroneID: "D001", Dates: dates},
			{ID: "a2", MissionID: "PRJ000", PilotID: "P002", Dates: dates, Void: true},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	s := Build(snapshot(t), d(9))
	assert.Equal(t, 2, s.Pilots)
	assert.Equal(t, 3, s.Drones)
	assert.Equal(t, 1, s.Missions)
	assert.Equal(t, 1, s.ActiveAssignments, "voided assignments are not active")
	assert.InDelta(t, 0.5, s.PilotUtilization, 1e-9)
	assert.InDelta(t, 1.0/3.0, s.DroneUtilization, 1e-9)
	assert.InDelta(t, 2500, s.MeanPilotRate, 1e-9)
	assert.InDelta(t, 1100, s.MeanDroneRate, 1e-9)
	assert.Greater(t, s.StdDevPilotRate, 0.0)
}

func TestBuildEmptySnapshot(t *testing.T) {
	s := Build(roster.Snapshot{}, d(9))
	assert.Zero(t, s.PilotUtilization)
	assert.Zero(t, s.MeanPilotRate)
}

func TestMaintenanceFlags(t *testing.T) {
	flags := MaintenanceFlags(snapshot(t), d(9))
	require.Len(t, flags, 2)
	assert.Equal(t, "D001", flags[0].DroneID)
	assert.True(t, flags[0].Overdue)
	assert.Equal(t, "D002", flags[1].DroneID)
	assert.False(t, flags[1].Overdue, "due within the week is a warning, not overdue")
}

func TestText(t *testing.T) {
	out := Text(snapshot(t))
	assert.Contains(t, out, "PILOT ROSTER:")
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, "DRONE FLEET:")
	assert.Contains(t, out, "Matrice 350")
	assert.Contains(t, out, "MISSIONS:")
	assert.Contains(t, out, "PRJ001")
}
