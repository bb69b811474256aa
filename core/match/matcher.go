// Package match scores candidate pilots and drones against a mission's
// requirements and produces deterministic rankings with per-component
// rationale.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skyopshq/skyops/core/availability"
	"github.com/skyopshq/skyops/core/costing"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/roster"
)

// PilotWeights are the additive score components for pilots. The skill
// weight strictly exceeds the sum of the others, so a candidate missing
// the required skill can never outrank one that has it.
type PilotWeights struct {
	Skill        int `json:"skill"`
	Availability int `json:"availability"`
	Location     int `json:"location"`
	Budget       int `json:"budget"`
}

// DroneWeights are the additive score components for drones. Capability
// dominates for the same reason skill does for pilots.
type DroneWeights struct {
	Capability int `json:"capability"`
	Weather    int `json:"weather"`
	Location   int `json:"location"`
	Budget     int `json:"budget"`
}

// DefaultPilotWeights sums to 12.
func DefaultPilotWeights() PilotWeights {
	return PilotWeights{Skill: 7, Availability: 3, Location: 1, Budget: 1}
}

// DefaultDroneWeights sums to 10.
func DefaultDroneWeights() DroneWeights {
	return DroneWeights{Capability: 6, Weather: 2, Location: 1, Budget: 1}
}

// Candidate is one scored pilot or drone with the evidence behind the
// score.
type Candidate struct {
	Kind      model.ResourceKind  `json:"kind"`
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Score     int                 `json:"score"`
	DailyRate float64             `json:"daily_rate"`
	Cost      float64             `json:"cost"`
	Rationale []string            `json:"rationale"`
	Issues    []string            `json:"issues,omitempty"`
	Qualified bool                `json:"qualified"`
	Avail     availability.Result `json:"-"`
}

// Acceptable reports whether the candidate clears the minimum bar for an
// urgent reassignment: required skill or capability present and the
// resource actually free. Cost and location are never disqualifying.
func (c Candidate) Acceptable() bool {
	return c.Qualified && c.Avail.OK()
}

// Matcher ranks candidates using configurable weights.
type Matcher struct {
	Pilot PilotWeights
	Drone DroneWeights
}

// New returns a matcher with the default weights.
func New() Matcher {
	return Matcher{Pilot: DefaultPilotWeights(), Drone: DefaultDroneWeights()}
}

// RankPilots scores every active pilot in the snapshot against the
// mission, best first. Scoring is total: a pilot with nothing going for it
// still gets a (low) score, never an error.
func (m Matcher) RankPilots(snap roster.Snapshot, mission model.Mission) []Candidate {
	out := make([]Candidate, 0, len(snap.Pilots))
	for _, p := range snap.Pilots {
		if !p.Active {
			continue
		}
		out = append(out, m.scorePilot(snap, mission, p))
	}
	sortCandidates(out)
	return out
}

// RankDrones scores every active drone in the snapshot against the
// mission, best first.
func (m Matcher) RankDrones(snap roster.Snapshot, mission model.Mission) []Candidate {
	out := make([]Candidate, 0, len(snap.Drones))
	for _, d := range snap.Drones {
		if !d.Active {
			continue
		}
		out = append(out, m.scoreDrone(snap, mission, d))
	}
	sortCandidates(out)
	return out
}

func (m Matcher) scorePilot(snap roster.Snapshot, mission model.Mission, p model.Pilot) Candidate {
	c := Candidate{Kind: model.KindPilot, ID: p.ID, Name: p.Name, DailyRate: p.DailyRate}
	c.Cost = costing.Projected(p.DailyRate, mission.Dates)

	skill := mission.Type.RequiredSkill()
	if p.HasSkill(skill) {
		c.Score += m.Pilot.Skill
		c.Qualified = true
		c.Rationale = append(c.Rationale, fmt.Sprintf("has required skill %q (+%d)", skill, m.Pilot.Skill))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("missing required skill %q", skill))
	}
	for _, cert := range mission.RequiredCerts {
		if !p.HasCertification(cert) {
			c.Issues = append(c.Issues, fmt.Sprintf("missing certification %q", cert))
		}
	}

	c.Avail = availability.ResolvePilot(snap, p, mission.Dates)
	switch {
	case c.Avail.OK() && p.Status == model.PilotOnLeave:
		// Back from leave before the mission starts: almost full credit.
		pts := m.Pilot.Availability - 1
		if pts < 0 {
			pts = 0
		}
		c.Score += pts
		c.Rationale = append(c.Rationale, fmt.Sprintf("returns from leave before start (+%d)", pts))
	case c.Avail.OK():
		c.Score += m.Pilot.Availability
		c.Rationale = append(c.Rationale, fmt.Sprintf("available for %s (+%d)", mission.Dates, m.Pilot.Availability))
	default:
		c.Issues = append(c.Issues, c.Avail.Reason)
	}

	if sameLocation(p.Location, mission.Location) {
		c.Score += m.Pilot.Location
		c.Rationale = append(c.Rationale, fmt.Sprintf("based in %s (+%d)", mission.Location, m.Pilot.Location))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("based in %s, mission in %s", p.Location, mission.Location))
	}

	if !costing.Overrun(c.Cost, mission.Budget) {
		c.Score += m.Pilot.Budget
		c.Rationale = append(c.Rationale, fmt.Sprintf("cost %.0f within budget %.0f (+%d)", c.Cost, mission.Budget, m.Pilot.Budget))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("cost %.0f exceeds budget %.0f", c.Cost, mission.Budget))
	}
	return c
}

func (m Matcher) scoreDrone(snap roster.Snapshot, mission model.Mission, d model.Drone) Candidate {
	c := Candidate{Kind: model.KindDrone, ID: d.ID, Name: d.Model, DailyRate: d.DailyRate}
	c.Cost = costing.Projected(d.DailyRate, mission.Dates)

	caps := mission.Type.RequiredCapabilities()
	if d.HasAnyCapability(caps) {
		c.Score += m.Drone.Capability
		c.Qualified = true
		c.Rationale = append(c.Rationale, fmt.Sprintf("carries a required capability for %s (+%d)", mission.Type, m.Drone.Capability))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("lacks required capabilities %v", caps))
	}

	if mission.Forecast == model.WeatherRainy && !d.WeatherRating.RainSafe() {
		c.Issues = append(c.Issues, fmt.Sprintf("rated %s, below %s needed for a rainy forecast", d.WeatherRating, model.MinRainRating))
	} else {
		c.Score += m.Drone.Weather
		c.Rationale = append(c.Rationale, fmt.Sprintf("weather rating %s compatible with %s forecast (+%d)", d.WeatherRating, mission.Forecast, m.Drone.Weather))
	}

	c.Avail = availability.ResolveDrone(snap, d, mission.Dates)
	if !c.Avail.OK() {
		c.Issues = append(c.Issues, c.Avail.Reason)
	}

	if sameLocation(d.Location, mission.Location) {
		c.Score += m.Drone.Location
		c.Rationale = append(c.Rationale, fmt.Sprintf("based in %s (+%d)", mission.Location, m.Drone.Location))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("based in %s, mission in %s", d.Location, mission.Location))
	}

	if !costing.Overrun(c.Cost, mission.Budget) {
		c.Score += m.Drone.Budget
		c.Rationale = append(c.Rationale, fmt.Sprintf("cost %.0f within budget %.0f (+%d)", c.Cost, mission.Budget, m.Drone.Budget))
	} else {
		c.Issues = append(c.Issues, fmt.Sprintf("cost %.0f exceeds budget %.0f", c.Cost, mission.Budget))
	}
	return c
}

// sortCandidates orders by score descending, then lower daily rate, then
// identifier, so identical inputs always yield identical rankings.
func sortCandidates(list []Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		if list[i].DailyRate != list[j].DailyRate {
			return list[i].DailyRate < list[j].DailyRate
		}
		return list[i].ID < list[j].ID
	})
}

func sameLocation(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
