// Package memory is a process-local Entity Store. It keeps records in
// insertion order and hands out copies, so callers never share state with
// the store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects []domain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) List(_ context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.projects), nil
}

func (r *ProjectRepository) Get(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, domain.ErrProjectNotFound
	}
	p := r.projects[i]
	return &p, nil
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.projects = append(r.projects, stored)
	return &stored, nil
}

func (r *ProjectRepository) Update(_ context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, domain.ErrProjectNotFound
	}
	r.projects[i] = patch.Apply(r.projects[i])
	p := r.projects[i]
	return &p, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return false, nil
	}
	r.projects = slices.Delete(r.projects, i, i+1)
	return true, nil
}

func (r *ProjectRepository) index(id string) int {
	return slices.IndexFunc(r.projects, func(p domain.Project) bool { return p.ID == id })
}

type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users), nil
}

func (r *UserRepository) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.emailIndex(domain.NormalizeEmail(email))
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *u
	stored.Email = domain.NormalizeEmail(stored.Email)
	if r.emailIndex(stored.Email) >= 0 {
		return nil, domain.ErrUserExists
	}
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.users = append(r.users, stored)
	return &stored, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	updated := patch.Apply(r.users[i])
	if j := r.emailIndex(updated.Email); j >= 0 && j != i {
		return nil, domain.ErrUserExists
	}
	r.users[i] = updated
	return &updated, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return false, nil
	}
	r.users = slices.Delete(r.users, i, i+1)
	return true, nil
}

func (r *UserRepository) emailIndex(email string) int {
	return slices.IndexFunc(r.users, func(u domain.User) bool { return u.Email == email })
}
