// Package planner produces ranked emergency-replacement plans when a
// mission's pilot or drone drops out.
package planner

import (
	"fmt"
	"time"

	"github.com/skyopshq/skyops/core/match"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// Mitigation is a structured suggestion returned when no candidate clears
// the acceptability threshold.
type Mitigation int

const (
	ExtendDates Mitigation = iota
	IncreaseBudget
	CrossLocation
)

func (m Mitigation) String() string {
	switch m {
	case ExtendDates:
		return "extend_dates"
	case IncreaseBudget:
		return "increase_budget"
	case CrossLocation:
		return "cross_location"
	default:
		return "unknown"
	}
}

// MarshalText lets mitigations serialize by name.
func (m Mitigation) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// TopN is the number of replacement candidates returned per resource kind.
const TopN = 3

// Plan is the outcome of an urgent reassignment request. When a ranked
// list is empty, Mitigations carries the suggested ways out.
type Plan struct {
	MissionID   string            `json:"project_id"`
	Pilots      []match.Candidate `json:"pilots"`
	Drones      []match.Candidate `json:"drones"`
	Mitigations []Mitigation      `json:"mitigations,omitempty"`
}

// Planner ranks replacements using the capability matcher over candidates
// the availability resolver clears.
type Planner struct {
	matcher match.Matcher
}

// New creates a planner around the given matcher.
func New(m match.Matcher) Planner { return Planner{matcher: m} }

// Plan ranks replacement pilots and drones for the mission. Only
// candidates that are both qualified and actually free make the list;
// cost and location never disqualify. The ranking is a pure function of
// the snapshot, so repeated calls without intervening state changes yield
// the same result.
func (p Planner) Plan(snap roster.Snapshot, missionID string, asOf time.Time) (Plan, error) {
	m, ok := snap.Mission(missionID)
	if !ok {
		return Plan{}, fmt.Errorf("%w: mission %s", model.ErrNotFound, missionID)
	}
	plan := Plan{MissionID: m.ID}
	plan.Pilots = acceptable(p.matcher.RankPilots(snap, m))
	plan.Drones = acceptable(p.matcher.RankDrones(snap, m))
	if len(plan.Pilots) == 0 || len(plan.Drones) == 0 {
		plan.Mitigations = []Mitigation{ExtendDates, IncreaseBudget, CrossLocation}
	}
	return plan, nil
}

func acceptable(ranked []match.Candidate) []match.Candidate {
	var out []match.Candidate
	for _, c := range ranked {
		if !c.Acceptable() {
			continue
		}
		out = append(out, c)
		if len(out) == TopN {
			break
		}
	}
	return out
}
