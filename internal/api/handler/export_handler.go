package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/api/metrics"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/infrastructure/export"
)

// ExportHandler renders the whole project collection as a download. The
// file is built in memory first so a failure still yields a JSON error.
type ExportHandler struct {
	service ports.ProjectService
	now     func() time.Time
}

func NewExportHandler(service ports.ProjectService) *ExportHandler {
	return &ExportHandler{service: service, now: time.Now}
}

// CSV handles GET /api/export/projects.
//
// @Summary      Export projects as CSV
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /export/projects [get]
func (h *ExportHandler) CSV(c echo.Context) error {
	projects, err := h.service.All(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, projects); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("csv").Inc()
	return h.attach(c, export.ContentTypeCSV, export.Filename("csv", h.now()), buf.Bytes())
}

// Excel handles GET /api/export/projects/excel.
//
// @Summary      Export projects as an Excel workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /export/projects/excel [get]
func (h *ExportHandler) Excel(c echo.Context) error {
	projects, err := h.service.All(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, projects); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("xlsx").Inc()
	return h.attach(c, export.ContentTypeXLSX, export.Filename("xlsx", h.now()), buf.Bytes())
}

func (h *ExportHandler) attach(c echo.Context, contentType, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, body)
}
