package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

// CreateProjectInput carries a new project. Enum values are matched
// case-insensitively.
type CreateProjectInput struct {
	Name       string
	Owner      string
	EnergyType string
	Capacity   float64
	Location   string
	Status     string
	Year       int
	Latitude   *float64
	Longitude  *float64
	// IdempotencyKey, when set, makes a retried create return the original project.
	IdempotencyKey string
}

// UpdateProjectInput is a partial update; nil fields are left as they are.
type UpdateProjectInput struct {
	Name       *string
	Owner      *string
	EnergyType *string
	Capacity   *float64
	Location   *string
	Status     *string
	Year       *int
	Latitude   *float64
	Longitude  *float64
	// ClearLatitude and ClearLongitude drop the stored coordinate.
	ClearLatitude  bool
	ClearLongitude bool
}

// CreateProjectResult reports whether the project was replayed from an
// earlier request with the same idempotency key.
type CreateProjectResult struct {
	Project        *domain.Project
	AlreadyExisted bool
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	List(ctx context.Context, spec query.Spec) (query.Result[domain.Project], error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (*CreateProjectResult, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// All returns the unfiltered collection in creation order, for export.
	All(ctx context.Context) ([]domain.Project, error)
	// Import creates each project in turn and returns those that were stored.
	Import(ctx context.Context, in []CreateProjectInput) ([]domain.Project, error)
}
