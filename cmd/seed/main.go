// Package main clears the configured store and loads demo users and
// projects. Pass -file to load a fixture file instead of the built-in set,
// and -keep to add to the existing data.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/renewables/energy-dashboard/internal/bootstrap"
	"github.com/renewables/energy-dashboard/internal/core/service"
	"github.com/renewables/energy-dashboard/internal/pkg/config"
	"github.com/renewables/energy-dashboard/internal/seed"
	"github.com/renewables/energy-dashboard/pkg/logger"
)

func main() {
	file := flag.String("file", "", "YAML fixture file (default: built-in demo data)")
	keep := flag.Bool("keep", false, "keep existing users and projects")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	fixtures, err := loadFixtures(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("load fixtures")
	}

	res, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer res.Close(context.Background())

	s := seed.NewSeeder(res.Projects, res.Users,
		service.NewProjectService(res.Projects, nil, log),
		service.NewUserService(res.Users, log),
		log)

	if !*keep {
		if err := s.Clear(ctx); err != nil {
			log.Fatal().Err(err).Msg("clear store")
		}
	}
	if err := s.Apply(ctx, fixtures); err != nil {
		log.Fatal().Err(err).Msg("apply fixtures")
	}

	for _, u := range fixtures.Users {
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("seeded login")
	}
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
