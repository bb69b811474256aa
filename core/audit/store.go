// Package audit persists engine decisions so coordinators can review what
// was assigned, what was detected and why, after the fact.
package audit

import (
	"context"
	"time"

	"github.com/skyopshq/skyops/core/conflict"
)

// Record captures one engine operation and its outcome.
type Record struct {
	Timestamp   time.Time           `json:"timestamp"`
	Operation   string              `json:"operation"`
	MissionID   string              `json:"project_id,omitempty"`
	ResourceIDs []string            `json:"resource_ids,omitempty"`
	Conflicts   []conflict.Conflict `json:"conflicts,omitempty"`
	Detail      string              `json:"detail,omitempty"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start     time.Time
	End       time.Time
	Operation string
	MissionID string
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// matches applies the query filters to a record.
func (q Query) matches(rec Record) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Operation != "" && rec.Operation != q.Operation {
		return false
	}
	if q.MissionID != "" && rec.MissionID != q.MissionID {
		return false
	}
	return true
}
