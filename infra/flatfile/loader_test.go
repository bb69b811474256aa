package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyopshq/skyops/core/identity"
	"github.com/skyopshq/skyops/core/model"
)

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		MissionFile: "mission_id,client,mission_type,required_skills,required_certs,start_date,end_date,location,mission_budget_inr,weather_forecast,priority,status\n" +
			"PRJ001, Acme Infra ,Mapping,survey,DGCA,2026-09-10,2026-09-12,Bangalore,9000,Sunny,High,Active\n" +
			"Project-2,GridCo,Thermal,thermal,,2026-09-15,2026-09-16,Mumbai,4000,Rainy,Medium,Planned\n",
		PilotFile: "pilot_id,name,skills,certifications,status,current_assignment,location,daily_rate_inr,available_from\n" +
			"P001, Asha Rao ,\"survey, thermal\",DGCA,Assigned,PRJ001,Bangalore,2500,\n" +
			"P002,Vikram Shah,survey,,On Leave,None,Mumbai,2000,2026-09-20\n",
		DroneFile: "drone_id,model,capabilities,weather_resistance,status,current_assignment,location,daily_rate_inr,maintenance_due\n" +
			"D001,Matrice 350,\"LiDAR, RGB\",IP55,Assigned,PRJ001,Bangalore,1500,2026-10-01\n" +
			"D002,Mavic 3T,Thermal,IP43,Available,-,Mumbai,1000,\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadSnapshot(t *testing.T) {
	dir := writeFixtures(t)
	l := NewLoader(dir, identity.NewNormalizer(nil))
	snap, err := l.Load()
	require.NoError(t, err)

	require.Len(t, snap.Missions, 2)
	assert.Equal(t, "PRJ001", snap.Missions[0].ID)
	assert.Equal(t, "Acme Infra", snap.Missions[0].Client)
	assert.Equal(t, []string{"DGCA"}, snap.Missions[0].RequiredCerts)
	assert.Equal(t, model.MissionActive, snap.Missions[0].Status)
	assert.Equal(t, "PRJ002", snap.Missions[1].ID)
	assert.Equal(t, model.WeatherRainy, snap.Missions[1].Forecast)

	require.Len(t, snap.Pilots, 2)
	asha := snap.Pilots[0]
	assert.Equal(t, "Asha Rao", asha.Name)
	assert.Equal(t, []string{"survey", "thermal"}, asha.Skills)
	assert.Equal(t, model.PilotAssigned, asha.Status)
	assert.True(t, asha.Active)
	assert.False(t, snap.Pilots[1].AvailableFrom.IsZero())

	require.Len(t, snap.Drones, 2)
	assert.True(t, snap.Drones[0].WeatherRating.RainSafe())
	assert.True(t, snap.Drones[0].HasCapability(model.CapLiDAR))
	assert.True(t, snap.Drones[1].MaintenanceDue.IsZero())
	assert.Equal(t, 1000.0, snap.Drones[1].DailyRate)

	// One assignment from the pilot sheet, one from the drone sheet.
	require.Len(t, snap.Assignments, 2)
	for _, a := range snap.Assignments {
		assert.Equal(t, "PRJ001", a.MissionID)
		assert.Equal(t, snap.Missions[0].Dates, a.Dates)
		assert.NotEmpty(t, a.ID)
	}
}

func TestLoadExplicitAssignments(t *testing.T) {
	dir := writeFixtures(t)
	body := "assignment_id,project_id,pilot_id,drone_id,start_date,end_date,void\n" +
		"a-77,Project-2,P002,,2026-09-15,2026-09-15,false\n" +
		",PRJ002,,D002,,,true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, AssignmentFile), []byte(body), 0o644))

	snap, err := NewLoader(dir, identity.NewNormalizer(nil)).Load()
	require.NoError(t, err)
	require.Len(t, snap.Assignments, 4)

	explicit := snap.Assignments[2]
	assert.Equal(t, "a-77", explicit.ID)
	assert.Equal(t, "PRJ002", explicit.MissionID)
	assert.Equal(t, "P002", explicit.PilotID)
	assert.Equal(t, 1, explicit.Dates.Days(), "row dates override the mission window")

	voided := snap.Assignments[3]
	assert.NotEmpty(t, voided.ID, "missing IDs are generated")
	assert.True(t, voided.Void)
	assert.Equal(t, snap.Missions[1].Dates, voided.Dates, "blank dates fall back to the mission window")
}

func TestLoadAssignmentWithoutResource(t *testing.T) {
	dir := writeFixtures(t)
	body := "assignment_id,project_id,pilot_id,drone_id,start_date,end_date,void\n" +
		"a-1,PRJ001,,,,,false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, AssignmentFile), []byte(body), 0o644))

	_, err := NewLoader(dir, identity.NewNormalizer(nil)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binds no resource")
}

func TestLoadUnknownMissionRef(t *testing.T) {
	dir := writeFixtures(t)
	body := "pilot_id,name,skills,certifications,status,current_assignment,location,daily_rate_inr,available_from\n" +
		"P001,Asha Rao,survey,,Assigned,PRJ999,Bangalore,2500,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, PilotFile), []byte(body), 0o644))

	_, err := NewLoader(dir, identity.NewNormalizer(nil)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRJ999")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir(), identity.NewNormalizer(nil)).Load()
	assert.Error(t, err)
}
