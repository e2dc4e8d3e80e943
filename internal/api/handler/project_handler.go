package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/api/metrics"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

// HeaderIdempotencyKey lets a client retry a create without duplicating it.
const HeaderIdempotencyKey = "Idempotency-Key"

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Description  Filters are exact (energyType, status) or substring (location); search matches name, owner or location.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        energyType  query     string  false  "Energy type"
// @Param        status      query     string  false  "Project status"
// @Param        location    query     string  false  "Location substring"
// @Param        search      query     string  false  "Free-text search"
// @Param        sortBy      query     string  false  "Sort key"
// @Param        sortOrder   query     string  false  "asc or desc"
// @Param        page        query     int     false  "Page (default 1)"
// @Param        limit       query     int     false  "Page size (default 10, max 100)"
// @Success      200         {object}  projectListResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	spec, err := query.ParseValues(c.QueryParams(), query.ProjectSchema)
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), spec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectListResponse(res))
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/projects. A repeated Idempotency-Key returns the
// original project with 200 instead of creating another.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createProjectRequest  true   "Project"
// @Success      201              {object}  domain.Project
// @Success      200              {object}  domain.Project
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	result, err := h.service.Create(c.Request().Context(), toCreateProjectInput(req, key))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, result.Project)
	}
	metrics.ProjectsCreatedTotal.WithLabelValues(string(result.Project.EnergyType)).Inc()
	return c.JSON(http.StatusCreated, result.Project)
}

// Update handles PUT /api/projects/:id.
//
// @Summary      Update a project
// @Description  Partial update; omitted fields keep their current value.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateProjectInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
