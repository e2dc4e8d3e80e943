// Package metrics holds the dashboard's domain counters. HTTP request
// metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "energy_dashboard"

// ProjectsCreatedTotal counts projects stored through the API or a sync.
// Label:
//   - energy_type: solar, wind, hydro, biomass, geothermal, other
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by energy type.",
	},
	[]string{"energy_type"},
)

// IdempotentReplaysTotal counts creates answered from an earlier request.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of project creates replayed from an Idempotency-Key.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ExportsTotal counts downloads.
// Label:
//   - format: "csv" or "xlsx"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of project exports, by file format.",
	},
	[]string{"format"},
)

// SyncRunsTotal counts external sync runs.
// Label:
//   - result: "success" or "upstream_error" or "error"
var SyncRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of external sync runs, by result.",
	},
	[]string{"result"},
)

// SyncImportedProjects observes how many projects one sync run stored.
var SyncImportedProjects = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_imported_projects",
		Help:      "Number of projects imported per external sync run.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

// AggregationDuration measures how long stats and chart computation takes.
// Label:
//   - view: "stats" or "charts"
var AggregationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Duration of dashboard aggregation including the store read.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"view"},
)
