package engine

import (
	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/costing"
	"github.com/skyopshq/skyops/core/match"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// ScopeAll selects a full conflict sweep.
const ScopeAll = "all"

// RosterView is the result of a roster query.
type RosterView struct {
	Pilots   []model.Pilot   `json:"pilots"`
	Drones   []model.Drone   `json:"drones"`
	Missions []model.Mission `json:"missions"`
}

// QueryRoster returns the pilots, drones and missions matching the
// filter. Read-only; operates on a snapshot.
func (e *Engine) QueryRoster(f roster.Filter) RosterView {
	snap := e.store.Snapshot()
	return RosterView{
		Pilots:   snap.FilterPilots(f),
		Drones:   snap.FilterDrones(f),
		Missions: snap.FilterMissions(f),
	}
}

// DetectConflicts runs the detector over everything (scope "all") or a
// single mission reference. Conflicts are results, not errors; the only
// error paths are an unknown or ambiguous mission reference.
func (e *Engine) DetectConflicts(scope string) ([]conflict.Conflict, error) {
	snap := e.store.Snapshot()
	now := e.now()
	if scope == ScopeAll || scope == "" {
		list := e.detector.SweepAll(snap, now)
		e.reportSweep(ScopeAll, list)
		return list, nil
	}
	missionID, err := e.resolveMission(scope)
	if err != nil {
		return nil, err
	}
	list, err := e.detector.SweepMission(snap, missionID, now)
	if err != nil {
		return nil, err
	}
	e.reportSweep(missionID, list)
	return list, nil
}

// MatchCandidates ranks every pilot or drone against the mission,
// best first, with the rationale for each score.
func (e *Engine) MatchCandidates(missionRef string, kind model.ResourceKind) ([]match.Candidate, error) {
	missionID, err := e.resolveMission(missionRef)
	if err != nil {
		return nil, err
	}
	snap := e.store.Snapshot()
	mission, _ := snap.Mission(missionID)
	switch kind {
	case model.KindPilot:
		return e.matcher.RankPilots(snap, mission), nil
	default:
		return e.matcher.RankDrones(snap, mission), nil
	}
}

// ComputeCost returns the mission's projected spend and whether it
// strictly exceeds the budget.
func (e *Engine) ComputeCost(missionRef string) (float64, bool, error) {
	missionID, err := e.resolveMission(missionRef)
	if err != nil {
		return 0, false, err
	}
	snap := e.store.Snapshot()
	mission, _ := snap.Mission(missionID)
	cost := costing.MissionCost(snap, missionID)
	return cost, costing.Overrun(cost, mission.Budget), nil
}

func (e *Engine) reportSweep(scope string, list []conflict.Conflict) {
	if len(list) == 0 {
		return
	}
	if err := e.metrics.RecordConflicts(conflictRecords(scope, list, e.now())); err != nil {
		e.log.Errorf("conflict metrics: %v", err)
	}
}
