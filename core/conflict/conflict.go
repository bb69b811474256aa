package conflict

import (
	"fmt"
	"strings"
)

// Kind enumerates the independent constraint dimensions the detector
// checks. A single mission or resource may trigger several at once.
type Kind int

const (
	DoubleBooking Kind = iota
	WeatherIncompatibility
	SkillMismatch
	BudgetOverrun
	AvailabilityConflict
	LocationMismatch
)

func (k Kind) String() string {
	switch k {
	case DoubleBooking:
		return "double_booking"
	case WeatherIncompatibility:
		return "weather_incompatibility"
	case SkillMismatch:
		return "skill_mismatch"
	case BudgetOverrun:
		return "budget_overrun"
	case AvailabilityConflict:
		return "availability_conflict"
	case LocationMismatch:
		return "location_mismatch"
	default:
		return "unknown"
	}
}

// MarshalText keeps the wire representation readable for API consumers
// and exports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for c := DoubleBooking; c <= LocationMismatch; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown conflict kind %q", text)
}

// Severity separates conflicts that should stop an assignment from ones
// reported for visibility only.
type Severity int

const (
	Blocking Severity = iota
	Advisory
)

func (s Severity) String() string {
	if s == Advisory {
		return "advisory"
	}
	return "blocking"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "advisory":
		*s = Advisory
	case "blocking":
		*s = Blocking
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// SeverityOf returns the fixed severity of a conflict kind. Budget overrun
// and location mismatch are advisory: money can be found and travel is
// possible. Everything else blocks.
func SeverityOf(k Kind) Severity {
	switch k {
	case BudgetOverrun, LocationMismatch:
		return Advisory
	default:
		return Blocking
	}
}

// Conflict is a first-class successful result describing risk. It is
// never an error: the engine detects and reports, it does not reject, so
// coordinators keep override authority.
type Conflict struct {
	Kind        Kind     `json:"kind"`
	Severity    Severity `json:"severity"`
	MissionID   string   `json:"project_id,omitempty"`
	ResourceIDs []string `json:"resource_ids,omitempty"`
	Detail      string   `json:"detail"`
}

// Key returns a stable identity for set comparison across sweeps.
func (c Conflict) Key() string {
	return c.Kind.String() + "|" + c.MissionID + "|" + strings.Join(c.ResourceIDs, ",") + "|" + c.Detail
}
