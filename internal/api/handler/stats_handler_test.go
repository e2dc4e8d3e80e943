package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/stats"
)

type stubStatsService struct {
	statsFn  func(ctx context.Context) (*stats.Stats, error)
	chartsFn func(ctx context.Context) (*ports.Charts, error)
}

func (s *stubStatsService) Stats(ctx context.Context) (*stats.Stats, error) {
	return s.statsFn(ctx)
}

func (s *stubStatsService) Charts(ctx context.Context) (*ports.Charts, error) {
	return s.chartsFn(ctx)
}

func TestStatsHandler_Stats(t *testing.T) {
	stub := &stubStatsService{
		statsFn: func(ctx context.Context) (*stats.Stats, error) {
			return &stats.Stats{TotalProjects: 3, TotalCapacity: 150.5, ActiveLocations: 2, Operational: 1,
				PercentageChanges: stats.Changes{Projects: 12}}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/stats", nil)

	if err := NewStatsHandler(stub).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalProjects"] != float64(3) || resp["totalCapacity"] != 150.5 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
	changes, ok := resp["percentageChanges"].(map[string]any)
	if !ok || changes["projects"] != float64(12) {
		t.Fatalf("unexpected percentage changes: %+v", resp["percentageChanges"])
	}
}

func TestStatsHandler_Stats_IntegrityFailure(t *testing.T) {
	stub := &stubStatsService{
		statsFn: func(ctx context.Context) (*stats.Stats, error) {
			return nil, domain.ErrInvalidCapacity
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/stats", nil)

	if err := NewStatsHandler(stub).Stats(c); !errors.Is(err, domain.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestStatsHandler_Charts(t *testing.T) {
	stub := &stubStatsService{
		chartsFn: func(ctx context.Context) (*ports.Charts, error) {
			return &ports.Charts{
				CapacityTrends:     []stats.YearCapacity{{Year: 2023, Capacity: 100}},
				EnergyDistribution: []stats.Share{{Type: "solar", Percentage: 100, Color: "#FFA500"}},
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/charts", nil)

	if err := NewStatsHandler(stub).Charts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp ports.Charts
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.CapacityTrends) != 1 || resp.EnergyDistribution[0].Type != "solar" {
		t.Fatalf("unexpected charts: %+v", resp)
	}
}
