package model

import (
	"strconv"
	"strings"
	"time"
)

// Capability tags a drone's sensor payload.
type Capability int

const (
	CapLiDAR Capability = iota
	CapRGB
	CapThermal
)

func (c Capability) String() string {
	switch c {
	case CapLiDAR:
		return "LiDAR"
	case CapRGB:
		return "RGB"
	case CapThermal:
		return "Thermal"
	default:
		return "unknown"
	}
}

// ParseCapability maps a fleet-sheet capability tag to a Capability.
func ParseCapability(s string) (Capability, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lidar":
		return CapLiDAR, true
	case "rgb":
		return CapRGB, true
	case "thermal":
		return CapThermal, true
	default:
		return CapRGB, false
	}
}

// IPRating is an ingress-protection class such as IP43. The zero value
// means unrated.
type IPRating int

// MinRainRating is the weakest rating allowed under a rainy forecast.
const MinRainRating IPRating = 43

// ParseIPRating extracts the numeric class from strings like "IP43" or
// "ip54". Unparseable values yield the zero (unrated) rating.
func ParseIPRating(s string) IPRating {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.TrimPrefix(s, "IP")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return IPRating(n)
}

func (r IPRating) String() string {
	if r == 0 {
		return "unrated"
	}
	return "IP" + strconv.Itoa(int(r))
}

// RainSafe reports whether the rating tolerates a rainy forecast.
func (r IPRating) RainSafe() bool { return r >= MinRainRating }

// DroneStatus describes the fleet state of a drone.
type DroneStatus int

const (
	DroneAvailable DroneStatus = iota
	DroneAssigned
	DroneMaintenance
)

func (s DroneStatus) String() string {
	switch s {
	case DroneAvailable:
		return "Available"
	case DroneAssigned:
		return "Assigned"
	case DroneMaintenance:
		return "Maintenance"
	default:
		return "unknown"
	}
}

// ParseDroneStatus maps the fleet-sheet spelling back to a status.
func ParseDroneStatus(s string) (DroneStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return DroneAvailable, true
	case "assigned":
		return DroneAssigned, true
	case "maintenance":
		return DroneMaintenance, true
	default:
		return DroneAvailable, false
	}
}

// Drone is an assignable aircraft. Same lifecycle as Pilot: deactivated,
// never deleted.
type Drone struct {
	ID             string       `json:"drone_id"`
	Model          string       `json:"model"`
	Capabilities   []Capability `json:"capabilities"`
	WeatherRating  IPRating     `json:"weather_rating"`
	Status         DroneStatus  `json:"status"`
	MaintenanceDue time.Time    `json:"maintenance_due,omitempty"`
	Location       string       `json:"location"`
	DailyRate      float64      `json:"daily_rate"`
	Active         bool         `json:"active"`
}

// HasCapability reports whether the drone carries the capability.
func (d Drone) HasCapability(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// HasAnyCapability reports whether the drone carries at least one of the
// wanted capabilities. An empty want list matches any drone.
func (d Drone) HasAnyCapability(want []Capability) bool {
	if len(want) == 0 {
		return true
	}
	for _, c := range want {
		if d.HasCapability(c) {
			return true
		}
	}
	return false
}
