package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/renewables/energy-dashboard/docs"
	"github.com/renewables/energy-dashboard/internal/api/handler"
	"github.com/renewables/energy-dashboard/internal/api/middleware"
	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Projects ports.ProjectService
	Users    ports.UserService
	Stats    ports.StatsService
	Source   ports.ProjectSource
	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	// Registry receives the HTTP request metrics. Nil means the global
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "energy_dashboard",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	userHandler := handler.NewUserHandler(deps.Users)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	exportHandler := handler.NewExportHandler(deps.Projects)
	syncHandler := handler.NewSyncHandler(deps.Source, deps.Projects)

	authMiddleware := middleware.Auth(deps.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify", authHandler.Verify, authMiddleware)

	// --- Authenticated routes ---
	api.GET("/projects", projectHandler.List, authMiddleware)
	api.GET("/projects/:id", projectHandler.Get, authMiddleware)
	api.GET("/stats", statsHandler.Stats, authMiddleware)
	api.GET("/charts", statsHandler.Charts, authMiddleware)

	// --- Admin routes ---
	api.POST("/projects", projectHandler.Create, authMiddleware, adminOnly)
	api.PUT("/projects/:id", projectHandler.Update, authMiddleware, adminOnly)
	api.DELETE("/projects/:id", projectHandler.Delete, authMiddleware, adminOnly)

	api.GET("/users", userHandler.List, authMiddleware, adminOnly)
	api.GET("/users/:id", userHandler.Get, authMiddleware, adminOnly)
	api.POST("/users", userHandler.Create, authMiddleware, adminOnly)
	api.PUT("/users/:id", userHandler.Update, authMiddleware, adminOnly)
	api.DELETE("/users/:id", userHandler.Delete, authMiddleware, adminOnly)

	api.GET("/export/projects", exportHandler.CSV, authMiddleware, adminOnly)
	api.GET("/export/projects/excel", exportHandler.Excel, authMiddleware, adminOnly)
	api.POST("/sync/external", syncHandler.External, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
