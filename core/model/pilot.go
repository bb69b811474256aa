package model

import (
	"strings"
	"time"
)

// PilotStatus describes the roster state of a pilot.
type PilotStatus int

const (
	PilotAvailable PilotStatus = iota
	PilotAssigned
	PilotOnLeave
	PilotUnavailable
)

// String returns the roster spelling of the status.
func (s PilotStatus) String() string {
	switch s {
	case PilotAvailable:
		return "Available"
	case PilotAssigned:
		return "Assigned"
	case PilotOnLeave:
		return "On Leave"
	case PilotUnavailable:
		return "Unavailable"
	default:
		return "unknown"
	}
}

// ParsePilotStatus maps the roster spelling back to a status.
func ParsePilotStatus(s string) (PilotStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return PilotAvailable, true
	case "assigned":
		return PilotAssigned, true
	case "on leave", "on-leave":
		return PilotOnLeave, true
	case "unavailable":
		return PilotUnavailable, true
	default:
		return PilotAvailable, false
	}
}

// Pilot is an assignable crew member. Pilots are deactivated, never
// deleted.
type Pilot struct {
	ID             string      `json:"pilot_id"`
	Name           string      `json:"name"`
	Skills         []string    `json:"skills"`
	Certifications []string    `json:"certifications"`
	Status         PilotStatus `json:"status"`
	// AvailableFrom is the first free day again; meaningful only while the
	// pilot is on leave.
	AvailableFrom time.Time `json:"available_from,omitempty"`
	Location      string    `json:"location"`
	DailyRate     float64   `json:"daily_rate"`
	Active        bool      `json:"active"`
}

// HasSkill reports whether the pilot lists the skill, case-insensitively.
func (p Pilot) HasSkill(skill string) bool {
	return containsFold(p.Skills, skill)
}

// HasCertification reports whether the pilot holds the certification.
func (p Pilot) HasCertification(cert string) bool {
	return containsFold(p.Certifications, cert)
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
