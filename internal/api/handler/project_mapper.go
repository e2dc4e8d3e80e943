package handler

import (
	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest, idempotencyKey string) ports.CreateProjectInput {
	in := ports.CreateProjectInput{
		Name:           req.Name,
		Owner:          req.Owner,
		EnergyType:     req.EnergyType,
		Location:       req.Location,
		Status:         req.Status,
		Year:           req.Year,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		IdempotencyKey: idempotencyKey,
	}
	if req.Capacity != nil {
		in.Capacity = *req.Capacity
	}
	return in
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:       req.Name,
		Owner:      req.Owner,
		EnergyType: req.EnergyType,
		Capacity:   req.Capacity,
		Location:   req.Location,
		Status:     req.Status,
		Year:       req.Year,
		Latitude:   req.Latitude.Value,
		Longitude:  req.Longitude.Value,

		ClearLatitude:  req.Latitude.null(),
		ClearLongitude: req.Longitude.null(),
	}
}

// --- Service output → Response ---

func toProjectListResponse(res query.Result[domain.Project]) projectListResponse {
	items := res.Items
	if items == nil {
		items = []domain.Project{}
	}
	return projectListResponse{
		Projects:   items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages(),
	}
}
