package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/stats"
)

// StatsService recomputes the dashboard aggregates from the full project
// collection on every call.
type StatsService struct {
	repo    ports.ProjectRepository
	changes stats.Changes
	logger  zerolog.Logger
}

func NewStatsService(repo ports.ProjectRepository, changes stats.Changes, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, changes: changes, logger: logger}
}

func (s *StatsService) Stats(ctx context.Context) (*stats.Stats, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out, err := stats.Compute(projects, s.changes)
	if err != nil {
		s.logger.Error().Err(err).Msg("stats aggregation failed")
		return nil, err
	}
	return &out, nil
}

func (s *StatsService) Charts(ctx context.Context) (*ports.Charts, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	trends, err := stats.CapacityByYear(projects)
	if err != nil {
		s.logger.Error().Err(err).Msg("capacity trend aggregation failed")
		return nil, err
	}

	return &ports.Charts{
		CapacityTrends:     trends,
		EnergyDistribution: stats.Distribution(projects),
	}, nil
}
