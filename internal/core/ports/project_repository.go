package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// ProjectRepository is the Entity Store for projects. List returns every
// project in creation order; Get and Update return domain.ErrProjectNotFound
// for an unknown id.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}
