package model

import "strings"

// MissionType drives the required pilot skill and drone capabilities.
type MissionType int

const (
	MissionMapping MissionType = iota
	MissionSurvey
	MissionThermal
	MissionInspection
)

func (t MissionType) String() string {
	switch t {
	case MissionMapping:
		return "Mapping"
	case MissionSurvey:
		return "Survey"
	case MissionThermal:
		return "Thermal"
	case MissionInspection:
		return "Inspection"
	default:
		return "unknown"
	}
}

// ParseMissionType maps the sheet spelling back to a type.
func ParseMissionType(s string) (MissionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mapping":
		return MissionMapping, true
	case "survey":
		return MissionSurvey, true
	case "thermal":
		return MissionThermal, true
	case "inspection":
		return MissionInspection, true
	default:
		return MissionMapping, false
	}
}

// RequiredSkill returns the pilot skill a mission of this type demands.
// The mapping is a fixed lookup, never inferred.
func (t MissionType) RequiredSkill() string {
	switch t {
	case MissionMapping, MissionSurvey:
		return "survey"
	case MissionThermal:
		return "thermal"
	case MissionInspection:
		return "inspection"
	default:
		return ""
	}
}

// RequiredCapabilities returns the drone capabilities that satisfy a
// mission of this type. Any one of them is sufficient.
func (t MissionType) RequiredCapabilities() []Capability {
	switch t {
	case MissionMapping, MissionSurvey:
		return []Capability{CapLiDAR, CapRGB}
	case MissionThermal:
		return []Capability{CapThermal}
	case MissionInspection:
		return []Capability{CapRGB}
	default:
		return nil
	}
}

// Weather is the forecast condition recorded on a mission. Only Rainy
// constrains drone selection.
type Weather int

const (
	WeatherSunny Weather = iota
	WeatherCloudy
	WeatherRainy
	WeatherWindy
)

func (w Weather) String() string {
	switch w {
	case WeatherSunny:
		return "Sunny"
	case WeatherCloudy:
		return "Cloudy"
	case WeatherRainy:
		return "Rainy"
	case WeatherWindy:
		return "Windy"
	default:
		return "unknown"
	}
}

// ParseWeather maps the sheet spelling back to a forecast.
func ParseWeather(s string) (Weather, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunny":
		return WeatherSunny, true
	case "cloudy":
		return WeatherCloudy, true
	case "rainy":
		return WeatherRainy, true
	case "windy":
		return WeatherWindy, true
	default:
		return WeatherSunny, false
	}
}

// MissionStatus tracks the mission lifecycle. Completed and Cancelled are
// terminal: no further assignments are accepted.
type MissionStatus int

const (
	MissionPlanned MissionStatus = iota
	MissionActive
	MissionCompleted
	MissionCancelled
)

func (s MissionStatus) String() string {
	switch s {
	case MissionPlanned:
		return "Planned"
	case MissionActive:
		return "Active"
	case MissionCompleted:
		return "Completed"
	case MissionCancelled:
		return "Cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the mission accepts no further assignments.
func (s MissionStatus) Terminal() bool {
	return s == MissionCompleted || s == MissionCancelled
}

// Mission is a time-boxed job requiring a pilot and a drone. ID is the
// canonical project key; callers may address it through either historical
// naming convention.
type Mission struct {
	ID     string      `json:"project_id"`
	Client string      `json:"client"`
	Type   MissionType `json:"type"`
	// RequiredCerts lists certifications the assigned pilot must hold,
	// e.g. DGCA night-operations clearance.
	RequiredCerts []string      `json:"required_certs,omitempty"`
	Dates         DateRange     `json:"dates"`
	Location      string        `json:"location"`
	Budget        float64       `json:"budget"`
	Forecast      Weather       `json:"forecast"`
	Priority      string        `json:"priority,omitempty"`
	Status        MissionStatus `json:"status"`
}
