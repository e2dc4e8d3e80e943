// Package seed loads demo users and projects into an Entity Store.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/renewables/energy-dashboard/internal/core/ports"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type UserFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

type ProjectFixture struct {
	Name       string   `yaml:"name"`
	Owner      string   `yaml:"owner"`
	EnergyType string   `yaml:"energyType"`
	Capacity   float64  `yaml:"capacity"`
	Location   string   `yaml:"location"`
	Status     string   `yaml:"status"`
	Year       int      `yaml:"year"`
	Latitude   *float64 `yaml:"latitude"`
	Longitude  *float64 `yaml:"longitude"`
}

type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Projects []ProjectFixture `yaml:"projects"`
}

// Default returns the embedded demo data set.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Seeder writes fixtures through the services so that passwords are hashed
// and every record is validated like any API write.
type Seeder struct {
	projectRepo ports.ProjectRepository
	userRepo    ports.UserRepository
	projects    ports.ProjectService
	users       ports.UserService
	logger      zerolog.Logger
}

func NewSeeder(projectRepo ports.ProjectRepository, userRepo ports.UserRepository, projects ports.ProjectService, users ports.UserService, logger zerolog.Logger) *Seeder {
	return &Seeder{projectRepo: projectRepo, userRepo: userRepo, projects: projects, users: users, logger: logger}
}

// Clear deletes every user and project.
func (s *Seeder) Clear(ctx context.Context) error {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		if _, err := s.projectRepo.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("delete project %s: %w", p.ID, err)
		}
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if _, err := s.userRepo.Delete(ctx, u.ID); err != nil {
			return fmt.Errorf("delete user %s: %w", u.ID, err)
		}
	}

	s.logger.Info().Int("projects", len(projects)).Int("users", len(users)).Msg("store cleared")
	return nil
}

// Apply creates every fixture in order and stops at the first failure.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) error {
	for _, u := range f.Users {
		_, err := s.users.Create(ctx, ports.CreateUserInput{
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
			Role:     u.Role,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range f.Projects {
		_, err := s.projects.Create(ctx, ports.CreateProjectInput{
			Name:       p.Name,
			Owner:      p.Owner,
			EnergyType: p.EnergyType,
			Capacity:   p.Capacity,
			Location:   p.Location,
			Status:     p.Status,
			Year:       p.Year,
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
		})
		if err != nil {
			return fmt.Errorf("seed project %s: %w", p.Name, err)
		}
	}

	s.logger.Info().Int("users", len(f.Users)).Int("projects", len(f.Projects)).Msg("fixtures loaded")
	return nil
}
