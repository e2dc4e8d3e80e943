package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/api/metrics"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Stats handles GET /api/stats.
//
// @Summary      Dashboard statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  stats.Stats
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /stats [get]
func (h *StatsHandler) Stats(c echo.Context) error {
	start := time.Now()
	s, err := h.service.Stats(c.Request().Context())
	metrics.AggregationDuration.WithLabelValues("stats").Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Charts handles GET /api/charts.
//
// @Summary      Chart data
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Charts
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /charts [get]
func (h *StatsHandler) Charts(c echo.Context) error {
	start := time.Now()
	charts, err := h.service.Charts(c.Request().Context())
	metrics.AggregationDuration.WithLabelValues("charts").Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, charts)
}
