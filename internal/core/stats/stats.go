// Package stats derives dashboard summaries from the full project collection.
// Every function is a pure computation over the slice it is given.
package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// Changes are period-over-period deltas shown next to each headline figure.
// No history is kept, so they are supplied by configuration.
type Changes struct {
	Projects    float64 `json:"projects"`
	Capacity    float64 `json:"capacity"`
	Locations   float64 `json:"locations"`
	Operational float64 `json:"operational"`
}

type Stats struct {
	TotalProjects     int     `json:"totalProjects"`
	TotalCapacity     float64 `json:"totalCapacity"`
	ActiveLocations   int     `json:"activeLocations"`
	Operational       int     `json:"operational"`
	PercentageChanges Changes `json:"percentageChanges"`
}

// Share is one slice of the energy-type distribution.
type Share struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// YearCapacity is the capacity commissioned (or targeted) in a given year.
type YearCapacity struct {
	Year     int     `json:"year"`
	Capacity float64 `json:"capacity"`
}

var palette = map[domain.EnergyType]string{
	domain.EnergySolar:      "#FF9800",
	domain.EnergyWind:       "#1976D2",
	domain.EnergyHydro:      "#2196F3",
	domain.EnergyBiomass:    "#4CAF50",
	domain.EnergyGeothermal: "#9C27B0",
	domain.EnergyOther:      "#666666",
}

// Color returns the chart colour for an energy type.
func Color(t domain.EnergyType) string {
	if c, ok := palette[t]; ok {
		return c
	}
	return palette[domain.EnergyOther]
}

// Compute summarises the whole collection. An empty collection yields zeros.
func Compute(projects []domain.Project, changes Changes) (Stats, error) {
	total, err := sumCapacity(projects)
	if err != nil {
		return Stats{}, err
	}

	locations := make(map[string]struct{}, len(projects))
	operational := 0
	for _, p := range projects {
		locations[p.Location] = struct{}{}
		if strings.EqualFold(string(p.Status), string(domain.StatusOperational)) {
			operational++
		}
	}

	return Stats{
		TotalProjects:     len(projects),
		TotalCapacity:     total.InexactFloat64(),
		ActiveLocations:   len(locations),
		Operational:       operational,
		PercentageChanges: changes,
	}, nil
}

// Distribution groups projects by energy type in order of first appearance.
// Each percentage is rounded on its own, so the sum may drift from 100.
// An empty collection yields an empty list.
func Distribution(projects []domain.Project) []Share {
	counts := make(map[domain.EnergyType]int)
	var order []domain.EnergyType
	for _, p := range projects {
		if _, seen := counts[p.EnergyType]; !seen {
			order = append(order, p.EnergyType)
		}
		counts[p.EnergyType]++
	}

	total := len(projects)
	out := make([]Share, 0, len(order))
	for _, t := range order {
		pct := 0
		if total > 0 {
			pct = int(math.Round(100 * float64(counts[t]) / float64(total)))
		}
		out = append(out, Share{Type: string(t), Percentage: pct, Color: Color(t)})
	}
	return out
}

// CapacityByYear sums capacity per year, ascending by year.
func CapacityByYear(projects []domain.Project) ([]YearCapacity, error) {
	sums := make(map[int]decimal.Decimal)
	for _, p := range projects {
		c, err := capacityOf(p)
		if err != nil {
			return nil, err
		}
		sums[p.Year] = sums[p.Year].Add(c)
	}

	out := make([]YearCapacity, 0, len(sums))
	for year, sum := range sums {
		out = append(out, YearCapacity{Year: year, Capacity: sum.InexactFloat64()})
	}
	slices.SortFunc(out, func(a, b YearCapacity) int { return a.Year - b.Year })
	return out, nil
}

func sumCapacity(projects []domain.Project) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range projects {
		c, err := capacityOf(p)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(c)
	}
	return total, nil
}

func capacityOf(p domain.Project) (decimal.Decimal, error) {
	if math.IsNaN(p.Capacity) || math.IsInf(p.Capacity, 0) || p.Capacity < 0 {
		return decimal.Zero, fmt.Errorf("project %s: %w", p.ID, domain.ErrInvalidCapacity)
	}
	return decimal.NewFromFloat(p.Capacity), nil
}
