package ports

import "context"

// ProjectSource is an external catalogue that projects can be imported from.
type ProjectSource interface {
	FetchProjects(ctx context.Context) ([]CreateProjectInput, error)
}
