package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/infrastructure/export"
)

func newExportHandler(projects []domain.Project, err error) *ExportHandler {
	h := NewExportHandler(&stubProjectService{
		allFn: func(ctx context.Context) ([]domain.Project, error) { return projects, err },
	})
	h.now = func() time.Time { return time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC) }
	return h
}

func TestExportHandler_CSV(t *testing.T) {
	h := newExportHandler([]domain.Project{
		sampleProject("p1", `Solar "One", Phase 2`, domain.EnergySolar),
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/export/projects", nil)
	if err := h.CSV(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, export.ContentTypeCSV) {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="projects_2025-03-09.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[1][0] != `Solar "One", Phase 2` {
		t.Fatalf("name not round-tripped: %q", rows[1][0])
	}
}

func TestExportHandler_Excel(t *testing.T) {
	h := newExportHandler([]domain.Project{sampleProject("p1", "Alpha", domain.EnergyWind)}, nil)

	c, rec := newTestContext(http.MethodGet, "/api/export/projects/excel", nil)
	if err := h.Excel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rec.Header().Get(echo.HeaderContentType); got != export.ContentTypeXLSX {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "projects_2025-03-09.xlsx") {
		t.Fatalf("unexpected disposition %q", got)
	}
	// xlsx files are zip archives
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Fatalf("body is not an xlsx archive")
	}
}

func TestExportHandler_StoreFailure(t *testing.T) {
	boom := errors.New("store down")
	h := newExportHandler(nil, boom)

	c, rec := newTestContext(http.MethodGet, "/api/export/projects", nil)
	if err := h.CSV(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if rec.Header().Get(echo.HeaderContentDisposition) != "" {
		t.Fatalf("no attachment may be started on failure")
	}
}
