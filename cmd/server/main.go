// Package main starts the renewable energy dashboard API.
//
// @title                       Renewable Energy Dashboard API
// @version                     1.0
// @description                 Project records, dashboard statistics and exports for renewable-energy portfolios.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/renewables/energy-dashboard/internal/api"
	"github.com/renewables/energy-dashboard/internal/bootstrap"
	"github.com/renewables/energy-dashboard/internal/core/service"
	"github.com/renewables/energy-dashboard/internal/core/stats"
	"github.com/renewables/energy-dashboard/internal/infrastructure/external/nrel"
	"github.com/renewables/energy-dashboard/internal/pkg/config"
	"github.com/renewables/energy-dashboard/internal/seed"
	"github.com/renewables/energy-dashboard/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "energy-dashboard",
	})
	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting API server")

	res, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer func() {
		if err := res.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	projectService := service.NewProjectService(res.Projects, res.Keys, log.With().Str("component", "projects").Logger())
	userService := service.NewUserService(res.Users, log.With().Str("component", "users").Logger())
	authService := service.NewAuthService(res.Users, cfg.JWTSecret, cfg.JWTTTL)
	statsService := service.NewStatsService(res.Projects, stats.Changes{
		Projects:    cfg.Stats.ProjectsChange,
		Capacity:    cfg.Stats.CapacityChange,
		Locations:   cfg.Stats.LocationsChange,
		Operational: cfg.Stats.OperationalChange,
	}, log.With().Str("component", "stats").Logger())

	if cfg.StoreDriver == config.DriverMemory {
		seedMemory(ctx, res, projectService, userService, log)
	}

	e := api.NewRouter(api.Dependencies{
		Logger:   log,
		Auth:     authService,
		Projects: projectService,
		Users:    userService,
		Stats:    statsService,
		Source:   nrel.NewClient(nrel.Config{BaseURL: cfg.NREL.BaseURL, APIKey: cfg.NREL.APIKey}),
		Checks:   res.Checks,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("API server listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		return
	}

	log.Info().Msg("server stopped")
}

// seedMemory loads the demo fixtures so an in-memory server is usable
// straight away.
func seedMemory(ctx context.Context, res *bootstrap.Resources, projects *service.ProjectService, users *service.UserService, log zerolog.Logger) {
	fixtures, err := seed.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("load fixtures")
	}
	s := seed.NewSeeder(res.Projects, res.Users, projects, users, log)
	if err := s.Apply(ctx, fixtures); err != nil {
		log.Fatal().Err(err).Msg("seed in-memory store")
	}
}
