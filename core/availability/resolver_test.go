package availability

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

func dates(t *testing.T, start, end int) model.DateRange {
	t.Helper()
	r, err := model.NewDateRange(d(start), d(end))
	require.NoError(t, err)
	return r
}

func TestResolvePilotAvailable(t *testing.T) {
	p := model.Pilot{ID: "P001", Status: model.PilotAvailable, Active: true}
	res := ResolvePilot(roster.Snapshot{}, p, dates(t, 10, 12))
	assert.Equal(t, Available, res.State)
	assert.True(t, res.OK())
}

func TestResolvePilotInactive(t *testing.T) {
	p := model.Pilot{ID: "P001", Status: model.PilotAvailable, Active: false}
	res := ResolvePilot(roster.Snapshot{}, p, dates(t, 10, 12))
	assert.Equal(t, Unavailable, res.State)
}

func TestResolvePilotDoubleBooked(t *testing.T) {
	p := model.Pilot{ID: "P001", Status: model.PilotAssigned, Active: true}
	snap := roster.Snapshot{Assignments: []model.Assignment{
		{ID: "a1", MissionID: "PRJ001", PilotID: "P001", Dates: dates(t, 11, 13)},
	}}
	res := ResolvePilot(snap, p, dates(t, 10, 12))
	require.Equal(t, DoubleBooked, res.State)
	require.NotNil(t, res.Conflicting)
	assert.Equal(t, "a1", res.Conflicting.ID)

	// A voided assignment no longer blocks.
	snap.Assignments[0].Void = true
	res = ResolvePilot(snap, p, dates(t, 10, 12))
	assert.Equal(t, Available, res.State)
}

func TestResolvePilotLeave(t *testing.T) {
	// Mission starts day 10, leave ends day 15: blocked.
	p := model.Pilot{ID: "P001", Status: model.PilotOnLeave, AvailableFrom: d(15), Active: true}
	res := ResolvePilot(roster.Snapshot{}, p, dates(t, 10, 12))
	require.Equal(t, OnLeaveUntil, res.State)
	assert.Equal(t, d(15), res.From)

	// Mission starts day 20: back in time, usable.
	res = ResolvePilot(roster.Snapshot{}, p, dates(t, 20, 22))
	assert.Equal(t, Available, res.State)

	// Return date equal to the start day counts as back in time.
	res = ResolvePilot(roster.Snapshot{}, p, dates(t, 15, 16))
	assert.Equal(t, Available, res.State)
}

func TestResolveDroneMaintenance(t *testing.T) {
	dr := model.Drone{ID: "D001", Status: model.DroneMaintenance, Active: true}
	res := ResolveDrone(roster.Snapshot{}, dr, dates(t, 10, 12))
	assert.Equal(t, Unavailable, res.State)
}

func TestResolveDroneDoubleBooked(t *testing.T) {
	dr := model.Drone{ID: "D001", Status: model.DroneAssigned, Active: true}
	snap := roster.Snapshot{Assignments: []model.Assignment{
		{ID: "a1", MissionID: "PRJ001", DroneID: "D001", Dates: dates(t, 12, 14)},
	}}
	res := ResolveDrone(snap, dr, dates(t, 10, 12))
	assert.Equal(t, DoubleBooked, res.State)

	// Adjacent but non-overlapping window is fine.
	res = ResolveDrone(snap, dr, dates(t, 15, 16))
	assert.Equal(t, Available, res.State)
}
