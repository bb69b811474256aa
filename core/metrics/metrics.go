// Package metrics defines the sink interfaces the engine reports into.
// Implementations (Prometheus, InfluxDB) live under infra/metrics and can
// be combined with NewMultiSink.
package metrics

import "time"

// AssignmentRecord captures one assignment decision.
type AssignmentRecord struct {
	AssignmentID      string
	MissionID         string
	PilotID           string
	DroneID           string
	Days              int
	ProjectedCost     float64
	BlockingConflicts int
	AdvisoryConflicts int
	Timestamp         time.Time
}

// ConflictRecord captures one detector pass.
type ConflictRecord struct {
	Scope     string
	Kind      string
	Severity  string
	MissionID string
	Timestamp time.Time
}

// MetricsSink records engine activity.
type MetricsSink interface {
	RecordAssignment(rec AssignmentRecord) error
	RecordConflicts(recs []ConflictRecord) error
}

// RosterSizeRecorder is an optional extension for sinks that track roster
// size after bulk loads.
type RosterSizeRecorder interface {
	RecordRosterSize(pilots, drones, missions int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentRecord) error { return nil }
func (NopSink) RecordConflicts([]ConflictRecord) error  { return nil }

// MultiSink fans records out to several sinks, returning the first error.
type MultiSink struct {
	sinks []MetricsSink
}

// NewMultiSink combines sinks. A single sink is returned unwrapped.
func NewMultiSink(sinks ...MetricsSink) MetricsSink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordAssignment(rec AssignmentRecord) error {
	for _, s := range m.sinks {
		if err := s.RecordAssignment(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordConflicts(recs []ConflictRecord) error {
	for _, s := range m.sinks {
		if err := s.RecordConflicts(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordRosterSize forwards to sinks implementing RosterSizeRecorder.
func (m *MultiSink) RecordRosterSize(pilots, drones, missions int) error {
	for _, s := range m.sinks {
		if rr, ok := s.(RosterSizeRecorder); ok {
			if err := rr.RecordRosterSize(pilots, drones, missions); err != nil {
				return err
			}
		}
	}
	return nil
}
