package match

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

func surveyMission(t *testing.T) model.Mission {
	t.Helper()
	return model.Mission{
		ID: "PRJ001", Type: model.MissionMapping, Dates: dates(t, 10, 12),
		Location: "Bangalore", Budget: 15000, Forecast: model.WeatherSunny,
		Status: model.MissionActive,
	}
}

func pilot(id string, rate float64, skills ...string) model.Pilot {
	return model.Pilot{
		ID: id, Name: id, Skills: skills, Status: model.PilotAvailable,
		Location: "Bangalore", DailyRate: rate, Active: true,
	}
}

func TestSkillDominatesEverything(t *testing.T) {
	m := New()
	mission := surveyMission(t)
	snap := roster.Snapshot{Pilots: []model.Pilot{
		// Qualified but remote, expensive AND on a tighter budget line.
		func() model.Pilot {
			p := pilot("P-SKILL", 5000, "survey")
			p.Location = "Guwahati"
			return p
		}(),
		// Everything going for them except the skill.
		pilot("P-LOCAL", 100, "inspection"),
	}}

	ranked := m.RankPilots(snap, mission)
	require.Len(t, ranked, 2)
	assert.Equal(t, "P-SKILL", ranked[0].ID, "a skill mismatch must never outrank a match")
	assert.True(t, ranked[0].Qualified)
	assert.False(t, ranked[1].Qualified)
}

func TestRankingDeterministicTieBreaks(t *testing.T) {
	m := New()
	mission := surveyMission(t)
	snap := roster.Snapshot{Pilots: []model.Pilot{
		pilot("P-B", 2000, "survey"),
		pilot("P-A", 2000, "survey"),
		pilot("P-C", 1500, "survey"),
	}}

	first := m.RankPilots(snap, mission)
	for i := 0; i < 10; i++ {
		again := m.RankPilots(snap, mission)
		require.Equal(t, first, again, "identical snapshots must rank identically")
	}
	// Equal scores: cheaper first, then lexical ID.
	assert.Equal(t, []string{"P-C", "P-A", "P-B"}, []string{first[0].ID, first[1].ID, first[2].ID})
}

func TestBackFromLeaveScoresBelowFullyAvailable(t *testing.T) {
	m := New()
	mission := surveyMission(t)
	onLeave := pilot("P-LEAVE", 2000, "survey")
	onLeave.Status = model.PilotOnLeave
	onLeave.AvailableFrom = d(9)
	snap := roster.Snapshot{Pilots: []model.Pilot{onLeave, pilot("P-FREE", 2000, "survey")}}

	ranked := m.RankPilots(snap, mission)
	require.Len(t, ranked, 2)
	assert.Equal(t, "P-FREE", ranked[0].ID)
	assert.Equal(t, ranked[0].Score-1, ranked[1].Score)
	assert.True(t, ranked[1].Acceptable(), "back in time for the start, still usable")
}

func TestMissingCertIsListedNotScored(t *testing.T) {
	m := New()
	mission := surveyMission(t)
	mission.RequiredCerts = []string{"DGCA Night"}
	snap := roster.Snapshot{Pilots: []model.Pilot{pilot("P001", 2000, "survey")}}

	ranked := m.RankPilots(snap, mission)
	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].Qualified)
	assert.NotEmpty(t, ranked[0].Issues)
}

func TestInactivePilotsExcluded(t *testing.T) {
	m := New()
	gone := pilot("P-GONE", 2000, "survey")
	gone.Active = false
	snap := roster.Snapshot{Pilots: []model.Pilot{gone}}
	assert.Empty(t, m.RankPilots(snap, surveyMission(t)))
}

func TestRankDronesWeather(t *testing.T) {
	m := New()
	mission := surveyMission(t)
	mission.Type = model.MissionThermal
	mission.Forecast = model.WeatherRainy

	rated := model.Drone{
		ID: "D-RATED", Model: "M350", Capabilities: []model.Capability{model.CapThermal},
		WeatherRating: model.ParseIPRating("IP55"), Status: model.DroneAvailable,
		Location: "Bangalore", DailyRate: 1500, Active: true,
	}
	unrated := rated
	unrated.ID = "D-BARE"
	unrated.WeatherRating = 0
	unrated.DailyRate = 500

	ranked := m.RankDrones(roster.Snapshot{Drones: []model.Drone{unrated, rated}}, mission)
	require.Len(t, ranked, 2)
	assert.Equal(t, "D-RATED", ranked[0].ID, "rain-safe rating outweighs the cheaper rate")
	assert.Equal(t, ranked[0].Score-m.Drone.Weather, ranked[1].Score)
}

func TestDroneCapabilityGate(t *testing.T) {
	m := New()
	mission := surveyMission(t) // Mapping: LiDAR or RGB qualifies
	lidarOnly := model.Drone{
		ID: "D-L", Model: "L1", Capabilities: []model.Capability{model.CapLiDAR},
		Status: model.DroneAvailable, Location: "Bangalore", DailyRate: 1000, Active: true,
	}
	thermalOnly := lidarOnly
	thermalOnly.ID = "D-T"
	thermalOnly.Capabilities = []model.Capability{model.CapThermal}

	ranked := m.RankDrones(roster.Snapshot{Drones: []model.Drone{thermalOnly, lidarOnly}}, mission)
	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Qualified)
	assert.Equal(t, "D-L", ranked[0].ID)
	assert.False(t, ranked[1].Acceptable())
}

func TestScoreBoundedByWeightSum(t *testing.T) {
	m := New()
	perfect := pilot("P001", 100, "survey")
	ranked := m.RankPilots(roster.Snapshot{Pilots: []model.Pilot{perfect}}, surveyMission(t))
	require.Len(t, ranked, 1)
	max := m.Pilot.Skill + m.Pilot.Availability + m.Pilot.Location + m.Pilot.Budget
	assert.Equal(t, max, ranked[0].Score)
}
