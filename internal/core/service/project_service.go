package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	keys   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewProjectService wires the project use cases. keys may be nil, in which
// case idempotency keys are ignored.
func NewProjectService(repo ports.ProjectRepository, keys ports.IdempotencyStore, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, keys: keys, logger: logger}
}

// List validates spec before touching the store, then runs the query over
// the whole collection.
func (s *ProjectService) List(ctx context.Context, spec query.Spec) (query.Result[domain.Project], error) {
	spec, err := query.ProjectSchema.Normalize(spec)
	if err != nil {
		return query.Result[domain.Project]{}, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return query.Result[domain.Project]{}, err
	}

	return query.Run(all, spec, query.ProjectSchema)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProjectService) All(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// Create stores a new project. With an idempotency key that was already
// used, the project created by the first request is returned instead.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*ports.CreateProjectResult, error) {
	if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
		s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("project_id", existing.ID).Msg("idempotent replay")
		return &ports.CreateProjectResult{Project: existing, AlreadyExisted: true}, nil
	}

	p := &domain.Project{
		Name:       strings.TrimSpace(in.Name),
		Owner:      strings.TrimSpace(in.Owner),
		EnergyType: canonicalEnergyType(in.EnergyType),
		Capacity:   in.Capacity,
		Location:   strings.TrimSpace(in.Location),
		Status:     canonicalStatus(in.Status),
		Year:       in.Year,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		CreatedAt:  time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.keys != nil {
		if err := s.keys.Remember(ctx, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	s.logger.Info().Str("project_id", created.ID).Str("energy_type", string(created.EnergyType)).Msg("project created")
	return &ports.CreateProjectResult{Project: created}, nil
}

// Update applies a partial update. The merged record must still satisfy
// every project invariant; otherwise nothing is written.
func (s *ProjectService) Update(ctx context.Context, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	patch, err := buildProjectPatch(in)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	merged := patch.Apply(*current)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProjectNotFound
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// Import creates each record in order. Records that fail validation are
// skipped and logged; a store failure stops the import.
func (s *ProjectService) Import(ctx context.Context, in []ports.CreateProjectInput) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(in))
	for _, item := range in {
		res, err := s.Create(ctx, item)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				s.logger.Warn().Err(err).Str("name", item.Name).Msg("skipping invalid project")
				continue
			}
			return out, err
		}
		out = append(out, *res.Project)
	}
	return out, nil
}

// replay returns the project recorded under key, or nil. Lookup failures and
// keys that point at a since-deleted project fall through to a fresh create.
func (s *ProjectService) replay(ctx context.Context, key string) *domain.Project {
	if key == "" || s.keys == nil {
		return nil
	}

	id, found, err := s.keys.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		return nil
	}
	if !found {
		return nil
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil
	}
	return p
}

func buildProjectPatch(in ports.UpdateProjectInput) (domain.ProjectPatch, error) {
	patch := domain.ProjectPatch{
		Name:      trimmed(in.Name),
		Owner:     trimmed(in.Owner),
		Capacity:  in.Capacity,
		Location:  trimmed(in.Location),
		Year:      in.Year,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,

		ClearLatitude:  in.ClearLatitude,
		ClearLongitude: in.ClearLongitude,
	}
	if in.EnergyType != nil {
		t, ok := domain.ParseEnergyType(*in.EnergyType)
		if !ok {
			return patch, domain.InputError("energyType", "must be one of: solar wind hydro biomass geothermal other")
		}
		patch.EnergyType = &t
	}
	if in.Status != nil {
		st, ok := domain.ParseProjectStatus(*in.Status)
		if !ok {
			return patch, domain.InputError("status", "must be one of: planning in-progress operational decommissioned")
		}
		patch.Status = &st
	}
	return patch, nil
}

// canonicalEnergyType lowercases a known type and passes anything else
// through untouched so Validate can report it.
func canonicalEnergyType(raw string) domain.EnergyType {
	if t, ok := domain.ParseEnergyType(raw); ok {
		return t
	}
	return domain.EnergyType(raw)
}

func canonicalStatus(raw string) domain.ProjectStatus {
	if st, ok := domain.ParseProjectStatus(raw); ok {
		return st
	}
	return domain.ProjectStatus(raw)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
