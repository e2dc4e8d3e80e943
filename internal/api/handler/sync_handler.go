package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/api/metrics"
	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

// SyncHandler imports projects from an external catalogue.
type SyncHandler struct {
	source   ports.ProjectSource
	projects ports.ProjectService
}

func NewSyncHandler(source ports.ProjectSource, projects ports.ProjectService) *SyncHandler {
	return &SyncHandler{source: source, projects: projects}
}

// External handles POST /api/sync/external.
//
// @Summary      Sync projects from the external source
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  syncResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /sync/external [post]
func (h *SyncHandler) External(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.source.FetchProjects(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			metrics.SyncRunsTotal.WithLabelValues("upstream_error").Inc()
		} else {
			metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	stored, err := h.projects.Import(ctx, records)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SyncRunsTotal.WithLabelValues("success").Inc()
	metrics.SyncImportedProjects.Observe(float64(len(stored)))
	for _, p := range stored {
		metrics.ProjectsCreatedTotal.WithLabelValues(string(p.EnergyType)).Inc()
	}

	if stored == nil {
		stored = []domain.Project{}
	}
	return c.JSON(http.StatusOK, syncResponse{
		Message:  fmt.Sprintf("Successfully synced %d projects", len(stored)),
		Projects: stored,
	})
}
