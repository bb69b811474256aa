package conflict

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

func thermalMission(t *testing.T, budget float64) model.Mission {
	t.Helper()
	return model.Mission{
		ID: "PRJ002", Type: model.MissionThermal, Dates: dates(t, 10, 12),
		Location: "Mumbai", Budget: budget, Forecast: model.WeatherSunny,
		Status: model.MissionActive,
	}
}

func thermalPilot(rate float64) model.Pilot {
	return model.Pilot{
		ID: "P001", Name: "Asha Rao", Skills: []string{"thermal"},
		Status: model.PilotAssigned, Location: "Mumbai", DailyRate: rate, Active: true,
	}
}

func kinds(list []Conflict) []Kind {
	out := make([]Kind, len(list))
	for i, c := range list {
		out[i] = c.Kind
	}
	return out
}

func TestSweepCleanMissionWithinBudget(t *testing.T) {
	// 3 days at 250 is 750 against a 900 budget: nothing to report.
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{thermalPilot(250)},
		Missions: []model.Mission{thermalMission(t, 900)},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ002", PilotID: "P001", Dates: dates(t, 10, 12)},
		},
	}
	assert.Empty(t, New().SweepAll(snap, d(9)))
}

func TestSweepBudgetOverrunIsSingleAdvisory(t *testing.T) {
	// Same mission at 400/day projects 1200 against 900.
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{thermalPilot(400)},
		Missions: []model.Mission{thermalMission(t, 900)},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ002", PilotID: "P001", Dates: dates(t, 10, 12)},
		},
	}
	got := New().SweepAll(snap, d(9))
	require.Len(t, got, 1)
	assert.Equal(t, BudgetOverrun, got[0].Kind)
	assert.Equal(t, Advisory, got[0].Severity)
	assert.Contains(t, got[0].Detail, "1200")
}

func TestSweepLeaveBeforeStartIsClean(t *testing.T) {
	p := thermalPilot(100)
	p.Status = model.PilotOnLeave
	p.AvailableFrom = d(15)

	mission := thermalMission(t, 10000)
	mission.Dates = dates(t, 20, 22)
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{p},
		Missions: []model.Mission{mission},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ002", PilotID: "P001", Dates: mission.Dates},
		},
	}
	assert.Empty(t, New().SweepAll(snap, d(9)), "back from leave before the start day is no conflict")

	// Move the mission before the return date: now it is one.
	mission.Dates = dates(t, 10, 20)
	snap.Missions = []model.Mission{mission}
	snap.Assignments[0].Dates = mission.Dates
	got := New().SweepAll(snap, d(9))
	require.Len(t, got, 1)
	assert.Equal(t, AvailabilityConflict, got[0].Kind)
	assert.Equal(t, Blocking, got[0].Severity)
}

func TestSweepDoubleBookingOncePerPair(t *testing.T) {
	m1 := thermalMission(t, 10000)
	m2 := thermalMission(t, 10000)
	m2.ID = "PRJ003"
	m2.Dates = dates(t, 11, 14)
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{thermalPilot(100)},
		Missions: []model.Mission{m1, m2},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ002", PilotID: "P001", Dates: m1.Dates},
			{ID: "a2", MissionID: "PRJ003", PilotID: "P001", Dates: m2.Dates},
		},
	}
	got := New().SweepAll(snap, d(9))
	var doubles []Conflict
	for _, c := range got {
		if c.Kind == DoubleBooking {
			doubles = append(doubles, c)
		}
	}
	require.Len(t, doubles, 1, "one conflict per overlapping pair, not per assignment")
	assert.Equal(t, []string{"P001"}, doubles[0].ResourceIDs)
}

func TestSweepIdempotent(t *testing.T) {
	p := thermalPilot(400)
	p.Skills = nil
	dr := model.Drone{
		ID: "D001", Model: "M3T", Capabilities: []model.Capability{model.CapRGB},
		WeatherRating: 0, Status: model.DroneMaintenance, Location: "Pune",
		DailyRate: 100, Active: true,
	}
	mission := thermalMission(t, 900)
	mission.Forecast = model.WeatherRainy
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{p},
		Drones:   []model.Drone{dr},
		Missions: []model.Mission{mission},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ002", PilotID: "P001", DroneID: "D001", Dates: mission.Dates},
		},
	}
	det := New()
	first := det.SweepAll(snap, d(9))
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, det.SweepAll(snap, d(9)))
	}
	// Drone problems surface as capability, weather, maintenance and
	// location plus the pilot skill gap and the budget line.
	assert.Contains(t, kinds(first), SkillMismatch)
	assert.Contains(t, kinds(first), WeatherIncompatibility)
	assert.Contains(t, kinds(first), AvailabilityConflict)
	assert.Contains(t, kinds(first), LocationMismatch)
	assert.Contains(t, kinds(first), BudgetOverrun)
}

func TestSweepMissionScoped(t *testing.T) {
	m1 := thermalMission(t, 900)
	m2 := thermalMission(t, 900)
	m2.ID = "PRJ003"
	snap := roster.Snapshot{
		Pilots:   []model.Pilot{thermalPilot(400)},
		Missions: []model.Mission{m1, m2},
		Assignments: []model.Assignment{
			{ID: "a1", MissionID: "PRJ003", PilotID: "P001", Dates: m2.Dates},
		},
	}
	got, err := New().SweepMission(snap, "PRJ002", d(9))
	require.NoError(t, err)
	assert.Empty(t, got, "the overrun belongs to the other mission")

	_, err = New().SweepMission(snap, "PRJ404", d(9))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCheckAssignmentIncremental(t *testing.T) {
	mission := thermalMission(t, 900)
	existing := model.Assignment{ID: "a1", MissionID: "PRJ002", PilotID: "P001", Dates: dates(t, 10, 12)}
	incoming := model.Assignment{ID: "a2", MissionID: "PRJ002", PilotID: "P001", Dates: dates(t, 11, 13)}
	snap := roster.Snapshot{
		Pilots:      []model.Pilot{thermalPilot(100)},
		Missions:    []model.Mission{mission},
		Assignments: []model.Assignment{existing, incoming},
	}
	got := New().CheckAssignment(snap, incoming)
	assert.Contains(t, kinds(got), DoubleBooking)
}

func TestSeverityPartition(t *testing.T) {
	advisory := map[Kind]bool{BudgetOverrun: true, LocationMismatch: true}
	for _, k := range []Kind{DoubleBooking, WeatherIncompatibility, SkillMismatch, BudgetOverrun, AvailabilityConflict, LocationMismatch} {
		want := Blocking
		if advisory[k] {
			want = Advisory
		}
		assert.Equal(t, want, SeverityOf(k), k.String())
	}
}
