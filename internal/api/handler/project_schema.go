package handler

import (
	"bytes"
	"encoding/json"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type createProjectRequest struct {
	Name       string   `json:"name"       validate:"required"`
	Owner      string   `json:"owner"      validate:"required"`
	EnergyType string   `json:"energyType" validate:"required"`
	Capacity   *float64 `json:"capacity"   validate:"required,gte=0"`
	Location   string   `json:"location"   validate:"required"`
	Status     string   `json:"status"     validate:"required"`
	Year       int      `json:"year"       validate:"required,gt=0"`
	Latitude   *float64 `json:"latitude"   validate:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude"  validate:"omitempty,gte=-180,lte=180"`
}

// nullableFloat tells an omitted field apart from an explicit null.
type nullableFloat struct {
	Set   bool
	Value *float64
}

func (n *nullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// null reports whether the field was sent as null.
func (n nullableFloat) null() bool { return n.Set && n.Value == nil }

// updateProjectRequest is a partial update; omitted fields keep their value.
// A null latitude or longitude removes the coordinate. Coordinate ranges are
// checked on the merged project.
type updateProjectRequest struct {
	Name       *string       `json:"name"`
	Owner      *string       `json:"owner"`
	EnergyType *string       `json:"energyType"`
	Capacity   *float64      `json:"capacity"   validate:"omitempty,gte=0"`
	Location   *string       `json:"location"`
	Status     *string       `json:"status"`
	Year       *int          `json:"year"       validate:"omitempty,gt=0"`
	Latitude   nullableFloat `json:"latitude"   swaggertype:"number"`
	Longitude  nullableFloat `json:"longitude"  swaggertype:"number"`
}

type projectListResponse struct {
	Projects   []domain.Project `json:"projects"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type syncResponse struct {
	Message  string           `json:"message"`
	Projects []domain.Project `json:"projects"`
}
