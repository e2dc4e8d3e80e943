package domain

import (
	"math"
	"strings"
	"time"
)

// EnergyType is the generation technology of a project.
type EnergyType string

const (
	EnergySolar      EnergyType = "solar"
	EnergyWind       EnergyType = "wind"
	EnergyHydro      EnergyType = "hydro"
	EnergyBiomass    EnergyType = "biomass"
	EnergyGeothermal EnergyType = "geothermal"
	EnergyOther      EnergyType = "other"
)

// EnergyTypes lists every valid energy type in display order.
var EnergyTypes = []EnergyType{
	EnergySolar, EnergyWind, EnergyHydro, EnergyBiomass, EnergyGeothermal, EnergyOther,
}

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusPlanning       ProjectStatus = "planning"
	StatusInProgress     ProjectStatus = "in-progress"
	StatusOperational    ProjectStatus = "operational"
	StatusDecommissioned ProjectStatus = "decommissioned"
)

var ProjectStatuses = []ProjectStatus{
	StatusPlanning, StatusInProgress, StatusOperational, StatusDecommissioned,
}

// ParseEnergyType matches s case-insensitively against the enumeration.
func ParseEnergyType(s string) (EnergyType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range EnergyTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ParseProjectStatus matches s case-insensitively against the enumeration.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range ProjectStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Project is a renewable-energy installation tracked by the dashboard.
type Project struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Owner      string        `json:"owner"`
	EnergyType EnergyType    `json:"energyType"`
	Capacity   float64       `json:"capacity"`
	Location   string        `json:"location"`
	Status     ProjectStatus `json:"status"`
	Year       int           `json:"year"`
	Latitude   *float64      `json:"latitude,omitempty"`
	Longitude  *float64      `json:"longitude,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Validate checks every invariant of a project except identity.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return InputError("name", "is required")
	}
	if strings.TrimSpace(p.Owner) == "" {
		return InputError("owner", "is required")
	}
	if strings.TrimSpace(p.Location) == "" {
		return InputError("location", "is required")
	}
	if _, ok := ParseEnergyType(string(p.EnergyType)); !ok {
		return InputError("energyType", "must be one of: solar wind hydro biomass geothermal other")
	}
	if _, ok := ParseProjectStatus(string(p.Status)); !ok {
		return InputError("status", "must be one of: planning in-progress operational decommissioned")
	}
	if math.IsNaN(p.Capacity) || math.IsInf(p.Capacity, 0) || p.Capacity < 0 {
		return InputError("capacity", "must be a non-negative number")
	}
	if p.Year <= 0 {
		return InputError("year", "must be a positive integer")
	}
	if p.Latitude != nil && (math.IsNaN(*p.Latitude) || *p.Latitude < -90 || *p.Latitude > 90) {
		return InputError("latitude", "must be within [-90, 90]")
	}
	if p.Longitude != nil && (math.IsNaN(*p.Longitude) || *p.Longitude < -180 || *p.Longitude > 180) {
		return InputError("longitude", "must be within [-180, 180]")
	}
	return nil
}

// ProjectPatch is a partial update. Nil fields are left untouched; the
// Clear flags remove the optional coordinates.
type ProjectPatch struct {
	Name       *string
	Owner      *string
	EnergyType *EnergyType
	Capacity   *float64
	Location   *string
	Status     *ProjectStatus
	Year       *int
	Latitude   *float64
	Longitude  *float64

	ClearLatitude  bool
	ClearLongitude bool
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Owner == nil && p.EnergyType == nil && p.Capacity == nil &&
		p.Location == nil && p.Status == nil && p.Year == nil && p.Latitude == nil && p.Longitude == nil &&
		!p.ClearLatitude && !p.ClearLongitude
}

// Apply returns a copy of base with the patch applied. ID and CreatedAt are
// never touched.
func (p ProjectPatch) Apply(base Project) Project {
	out := base
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Owner != nil {
		out.Owner = *p.Owner
	}
	if p.EnergyType != nil {
		out.EnergyType = *p.EnergyType
	}
	if p.Capacity != nil {
		out.Capacity = *p.Capacity
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Year != nil {
		out.Year = *p.Year
	}
	if p.ClearLatitude {
		out.Latitude = nil
	} else if p.Latitude != nil {
		lat := *p.Latitude
		out.Latitude = &lat
	}
	if p.ClearLongitude {
		out.Longitude = nil
	} else if p.Longitude != nil {
		lng := *p.Longitude
		out.Longitude = &lng
	}
	return out
}
