// Package roster holds the in-memory catalog of pilots, drones, missions
// and assignments. All reads return copies so a concurrent scan never
// observes a write in progress; mutation goes through a single writer
// lock per store.
package roster

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/skyopshq/skyops/core/model"
)

// Store is the single source of truth for roster state within a session.
type Store struct {
	mu          sync.RWMutex
	pilots      map[string]model.Pilot
	drones      map[string]model.Drone
	missions    map[string]model.Mission
	assignments map[string]model.Assignment
}

// New creates an empty store.
func New() *Store {
	return &Store{
		pilots:      make(map[string]model.Pilot),
		drones:      make(map[string]model.Drone),
		missions:    make(map[string]model.Mission),
		assignments: make(map[string]model.Assignment),
	}
}

// UpsertPilot inserts or replaces a pilot keyed by its identifier.
func (s *Store) UpsertPilot(p model.Pilot) {
	s.mu.Lock()
	s.pilots[p.ID] = clonePilot(p)
	s.mu.Unlock()
}

// UpsertDrone inserts or replaces a drone.
func (s *Store) UpsertDrone(d model.Drone) {
	s.mu.Lock()
	s.drones[d.ID] = cloneDrone(d)
	s.mu.Unlock()
}

// UpsertMission inserts or replaces a mission, keyed by canonical ID.
func (s *Store) UpsertMission(m model.Mission) {
	s.mu.Lock()
	s.missions[m.ID] = cloneMission(m)
	s.mu.Unlock()
}

// GetPilot returns a copy of the pilot or model.ErrNotFound.
func (s *Store) GetPilot(id string) (model.Pilot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pilots[id]
	if !ok {
		return model.Pilot{}, fmt.Errorf("%w: pilot %s", model.ErrNotFound, id)
	}
	return clonePilot(p), nil
}

// GetDrone returns a copy of the drone or model.ErrNotFound.
func (s *Store) GetDrone(id string) (model.Drone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drones[id]
	if !ok {
		return model.Drone{}, fmt.Errorf("%w: drone %s", model.ErrNotFound, id)
	}
	return cloneDrone(d), nil
}

// GetMission returns the mission for a canonical ID or model.ErrNotFound.
func (s *Store) GetMission(id string) (model.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.missions[id]
	if !ok {
		return model.Mission{}, fmt.Errorf("%w: mission %s", model.ErrNotFound, id)
	}
	return cloneMission(m), nil
}

// GetAssignment returns the assignment or model.ErrNotFound.
func (s *Store) GetAssignment(id string) (model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return model.Assignment{}, fmt.Errorf("%w: assignment %s", model.ErrNotFound, id)
	}
	return a, nil
}

// AddAssignment stores a new assignment. Existing assignments are never
// silently overwritten.
func (s *Store) AddAssignment(a model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assignments[a.ID]; exists {
		return fmt.Errorf("assignment %s already exists", a.ID)
	}
	s.assignments[a.ID] = a
	return nil
}

// RemoveAssignment deletes an assignment by ID.
func (s *Store) RemoveAssignment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[id]; !ok {
		return fmt.Errorf("%w: assignment %s", model.ErrNotFound, id)
	}
	delete(s.assignments, id)
	return nil
}

// VoidAssignment marks an assignment void, keeping it for audit purposes
// while excluding it from availability and detection.
func (s *Store) VoidAssignment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return fmt.Errorf("%w: assignment %s", model.ErrNotFound, id)
	}
	a.Void = true
	s.assignments[id] = a
	return nil
}

// SetPilotStatus updates a pilot's status in place.
func (s *Store) SetPilotStatus(id string, st model.PilotStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pilots[id]
	if !ok {
		return fmt.Errorf("%w: pilot %s", model.ErrNotFound, id)
	}
	p.Status = st
	s.pilots[id] = p
	return nil
}

// SetDroneStatus updates a drone's status in place.
func (s *Store) SetDroneStatus(id string, st model.DroneStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drones[id]
	if !ok {
		return fmt.Errorf("%w: drone %s", model.ErrNotFound, id)
	}
	d.Status = st
	s.drones[id] = d
	return nil
}

// ActiveAssignments returns the assignments on a resource whose window has
// not ended by the given day, ordered by start date then ID.
func (s *Store) ActiveAssignments(kind model.ResourceKind, resourceID string, asOf time.Time) []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Assignment
	for _, a := range s.assignments {
		if a.Covers(kind, resourceID) && a.ActiveAt(asOf) {
			out = append(out, a)
		}
	}
	sortAssignments(out)
	return out
}

// Snapshot returns an immutable copy of the full roster state. Scoring and
// detection operate on snapshots only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Pilots:      make([]model.Pilot, 0, len(s.pilots)),
		Drones:      make([]model.Drone, 0, len(s.drones)),
		Missions:    make([]model.Mission, 0, len(s.missions)),
		Assignments: make([]model.Assignment, 0, len(s.assignments)),
	}
	for _, p := range s.pilots {
		snap.Pilots = append(snap.Pilots, clonePilot(p))
	}
	for _, d := range s.drones {
		snap.Drones = append(snap.Drones, cloneDrone(d))
	}
	for _, m := range s.missions {
		snap.Missions = append(snap.Missions, cloneMission(m))
	}
	for _, a := range s.assignments {
		snap.Assignments = append(snap.Assignments, a)
	}
	sort.Slice(snap.Pilots, func(i, j int) bool { return snap.Pilots[i].ID < snap.Pilots[j].ID })
	sort.Slice(snap.Drones, func(i, j int) bool { return snap.Drones[i].ID < snap.Drones[j].ID })
	sort.Slice(snap.Missions, func(i, j int) bool { return snap.Missions[i].ID < snap.Missions[j].ID })
	sortAssignments(snap.Assignments)
	return snap
}

// Load replaces the whole store contents with a bulk snapshot from an
// external origin (flat file or synchronized sheet; the store is agnostic).
func (s *Store) Load(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pilots = make(map[string]model.Pilot, len(snap.Pilots))
	s.drones = make(map[string]model.Drone, len(snap.Drones))
	s.missions = make(map[string]model.Mission, len(snap.Missions))
	s.assignments = make(map[string]model.Assignment, len(snap.Assignments))
	for _, p := range snap.Pilots {
		s.pilots[p.ID] = clonePilot(p)
	}
	for _, d := range snap.Drones {
		s.drones[d.ID] = cloneDrone(d)
	}
	for _, m := range snap.Missions {
		s.missions[m.ID] = cloneMission(m)
	}
	for _, a := range snap.Assignments {
		s.assignments[a.ID] = a
	}
}

func sortAssignments(list []model.Assignment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Dates.Start.Equal(list[j].Dates.Start) {
			return list[i].Dates.Start.Before(list[j].Dates.Start)
		}
		return list[i].ID < list[j].ID
	})
}

func clonePilot(p model.Pilot) model.Pilot {
	p.Skills = append([]string(nil), p.Skills...)
	p.Certifications = append([]string(nil), p.Certifications...)
	return p
}

func cloneDrone(d model.Drone) model.Drone {
	d.Capabilities = append([]model.Capability(nil), d.Capabilities...)
	return d
}

func cloneMission(m model.Mission) model.Mission {
	m.RequiredCerts = append([]string(nil), m.RequiredCerts...)
	return m
}
