// Package flatfile loads the roster CSV exports (pilot_roster.csv,
// drone_fleet.csv, missions.csv and the optional assignments.csv) into a
// roster snapshot. The files mirror the operations spreadsheet, including
// its habit of stray whitespace and comma-separated list cells.
package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/skyopshq/skyops/core/identity"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

const (
	PilotFile      = "pilot_roster.csv"
	DroneFile      = "drone_fleet.csv"
	MissionFile    = "missions.csv"
	AssignmentFile = "assignments.csv"
)

// Loader reads roster CSVs from a directory. Mission references found in
// current_assignment cells are canonicalized through the normalizer.
type Loader struct {
	dir string
	ids *identity.Normalizer
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, ids *identity.Normalizer) *Loader {
	return &Loader{dir: dir, ids: ids}
}

// Load reads the export files and returns a snapshot. Missions must load
// before the rest so assignment references can resolve dates.
func (l *Loader) Load() (roster.Snapshot, error) {
	var snap roster.Snapshot

	missions, err := l.loadMissions()
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", MissionFile, err)
	}
	snap.Missions = missions

	byID := make(map[string]model.Mission, len(missions))
	for _, m := range missions {
		byID[m.ID] = m
	}

	pilots, pilotAssigned, err := l.loadPilots(byID)
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", PilotFile, err)
	}
	snap.Pilots = pilots
	snap.Assignments = append(snap.Assignments, pilotAssigned...)

	drones, droneAssigned, err := l.loadDrones(byID)
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", DroneFile, err)
	}
	snap.Drones = drones
	snap.Assignments = append(snap.Assignments, droneAssigned...)

	explicit, err := l.loadAssignments(byID)
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", AssignmentFile, err)
	}
	snap.Assignments = append(snap.Assignments, explicit...)

	return snap, nil
}

// loadAssignments reads the optional assignments export. Explicit rows
// carry their own dates; the file is absent in spreadsheets that only
// track current_assignment cells.
func (l *Loader) loadAssignments(missions map[string]model.Mission) ([]model.Assignment, error) {
	rows, err := readCSV(filepath.Join(l.dir, AssignmentFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []model.Assignment
	for _, row := range rows {
		missionID, err := l.ids.Normalize(row.get("project_id"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.line, err)
		}
		m, ok := missions[missionID]
		if !ok {
			return nil, fmt.Errorf("row %d: assignment references unknown mission %s", row.line, missionID)
		}
		a := model.Assignment{
			ID:        row.get("assignment_id"),
			MissionID: m.ID,
			PilotID:   row.get("pilot_id"),
			DroneID:   row.get("drone_id"),
			Dates:     m.Dates,
			Void:      strings.EqualFold(row.get("void"), "true"),
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if start, end := row.get("start_date"), row.get("end_date"); start != "" && end != "" {
			dates, err := parseDates(start, end)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row.line, err)
			}
			a.Dates = dates
		}
		if a.PilotID == "" && a.DroneID == "" {
			return nil, fmt.Errorf("row %d: assignment binds no resource", row.line)
		}
		out = append(out, a)
	}
	return out, nil
}

func (l *Loader) loadMissions() ([]model.Mission, error) {
	rows, err := readCSV(filepath.Join(l.dir, MissionFile))
	if err != nil {
		return nil, err
	}
	var out []model.Mission
	for _, row := range rows {
		id, err := l.ids.Normalize(row.get("mission_id"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.line, err)
		}
		mtype, ok := model.ParseMissionType(row.get("mission_type"))
		if !ok {
			return nil, fmt.Errorf("row %d: unknown mission type %q", row.line, row.get("mission_type"))
		}
		dates, err := parseDates(row.get("start_date"), row.get("end_date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.line, err)
		}
		budget, err := parseRate(row.get("mission_budget_inr"))
		if err != nil {
			return nil, fmt.Errorf("row %d: budget: %w", row.line, err)
		}
		forecast, _ := model.ParseWeather(row.get("weather_forecast"))
		status := model.MissionPlanned
		if s, ok := parseMissionStatus(row.get("status")); ok {
			status = s
		}
		out = append(out, model.Mission{
			ID:            id,
			Client:        row.get("client"),
			Type:          mtype,
			RequiredCerts: splitList(row.get("required_certs")),
			Dates:         dates,
			Location:      row.get("location"),
			Budget:        budget,
			Forecast:      forecast,
			Priority:      row.get("priority"),
			Status:        status,
		})
	}
	return out, nil
}

func (l *Loader) loadPilots(missions map[string]model.Mission) ([]model.Pilot, []model.Assignment, error) {
	rows, err := readCSV(filepath.Join(l.dir, PilotFile))
	if err != nil {
		return nil, nil, err
	}
	var pilots []model.Pilot
	var assignments []model.Assignment
	for _, row := range rows {
		status, ok := model.ParsePilotStatus(row.get("status"))
		if !ok {
			return nil, nil, fmt.Errorf("row %d: unknown pilot status %q", row.line, row.get("status"))
		}
		rate, err := parseRate(row.get("daily_rate_inr"))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: daily rate: %w", row.line, err)
		}
		p := model.Pilot{
			ID:             row.get("pilot_id"),
			Name:           row.get("name"),
			Skills:         splitList(row.get("skills")),
			Certifications: splitList(row.get("certifications")),
			Status:         status,
			Location:       row.get("location"),
			DailyRate:      rate,
			Active:         true,
		}
		if from := row.get("available_from"); from != "" && from != "-" {
			t, err := model.ParseDate(from)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: available_from: %w", row.line, err)
			}
			p.AvailableFrom = t
		}
		pilots = append(pilots, p)

		as, err := l.assignmentsFor(row, missions, func(a *model.Assignment) { a.PilotID = p.ID })
		if err != nil {
			return nil, nil, err
		}
		assignments = append(assignments, as...)
	}
	return pilots, assignments, nil
}

func (l *Loader) loadDrones(missions map[string]model.Mission) ([]model.Drone, []model.Assignment, error) {
	rows, err := readCSV(filepath.Join(l.dir, DroneFile))
	if err != nil {
		return nil, nil, err
	}
	var drones []model.Drone
	var assignments []model.Assignment
	for _, row := range rows {
		status, ok := model.ParseDroneStatus(row.get("status"))
		if !ok {
			return nil, nil, fmt.Errorf("row %d: unknown drone status %q", row.line, row.get("status"))
		}
		rate, err := parseRate(row.get("daily_rate_inr"))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: daily rate: %w", row.line, err)
		}
		var caps []model.Capability
		for _, c := range splitList(row.get("capabilities")) {
			parsed, ok := model.ParseCapability(c)
			if !ok {
				return nil, nil, fmt.Errorf("row %d: unknown capability %q", row.line, c)
			}
			caps = append(caps, parsed)
		}
		d := model.Drone{
			ID:            row.get("drone_id"),
			Model:         row.get("model"),
			Capabilities:  caps,
			WeatherRating: model.ParseIPRating(row.get("weather_resistance")),
			Status:        status,
			Location:      row.get("location"),
			DailyRate:     rate,
			Active:        true,
		}
		if due := row.get("maintenance_due"); due != "" && due != "-" {
			t, err := model.ParseDate(due)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: maintenance_due: %w", row.line, err)
			}
			d.MaintenanceDue = t
		}
		drones = append(drones, d)

		as, err := l.assignmentsFor(row, missions, func(a *model.Assignment) { a.DroneID = d.ID })
		if err != nil {
			return nil, nil, err
		}
		assignments = append(assignments, as...)
	}
	return drones, assignments, nil
}

// assignmentsFor expands a current_assignment cell into one assignment per
// referenced mission, spanning the mission window.
func (l *Loader) assignmentsFor(row record, missions map[string]model.Mission, bind func(*model.Assignment)) ([]model.Assignment, error) {
	cell := row.get("current_assignment")
	if cell == "" || strings.EqualFold(cell, "none") || cell == "-" {
		return nil, nil
	}
	var out []model.Assignment
	for _, ref := range splitList(cell) {
		id, err := l.ids.Normalize(ref)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.line, err)
		}
		m, ok := missions[id]
		if !ok {
			return nil, fmt.Errorf("row %d: assignment references unknown mission %s", row.line, id)
		}
		a := model.Assignment{
			ID:        uuid.New().String(),
			MissionID: m.ID,
			Dates:     m.Dates,
		}
		bind(&a)
		out = append(out, a)
	}
	return out, nil
}

// record is one CSV data row with header-indexed access. Cells are
// whitespace-trimmed on read.
type record struct {
	cols map[string]int
	vals []string
	line int
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[i])
}

func readCSV(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var out []record
	line := 1
	for {
		vals, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, record{cols: cols, vals: vals, line: line})
	}
	return out, nil
}

func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDates(start, end string) (model.DateRange, error) {
	s, err := model.ParseDate(start)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("start_date: %w", err)
	}
	e, err := model.ParseDate(end)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("end_date: %w", err)
	}
	return model.NewDateRange(s, e)
}

func parseRate(cell string) (float64, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

func parseMissionStatus(s string) (model.MissionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planned", "upcoming":
		return model.MissionPlanned, true
	case "active", "ongoing", "in progress":
		return model.MissionActive, true
	case "completed":
		return model.MissionCompleted, true
	case "cancelled", "canceled":
		return model.MissionCancelled, true
	default:
		return model.MissionPlanned, false
	}
}
