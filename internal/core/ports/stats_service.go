package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/stats"
)

// Charts is the data behind the dashboard charts.
type Charts struct {
	CapacityTrends     []stats.YearCapacity `json:"capacityTrends"`
	EnergyDistribution []stats.Share        `json:"energyDistribution"`
}

type StatsService interface {
	Stats(ctx context.Context) (*stats.Stats, error)
	Charts(ctx context.Context) (*Charts, error)
}
