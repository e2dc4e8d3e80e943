package config

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// devJWTSecret is only accepted when ENV is development or test.
const devJWTSecret = "development-only-secret"

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`

	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	Mongo       MongoConfig
	SQLite      SQLiteConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	Stats       StatsConfig
	NREL        NRELConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=energy_dashboard"`
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN, default=energy_dashboard.db"`
}

// RedisConfig is optional: an empty address disables Redis and the
// in-process idempotency store is used instead.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type IdempotencyConfig struct {
	TTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// StatsConfig holds the period-over-period changes shown on the dashboard.
type StatsConfig struct {
	ProjectsChange    float64 `env:"STATS_CHANGE_PROJECTS,    default=0"`
	CapacityChange    float64 `env:"STATS_CHANGE_CAPACITY,    default=0"`
	LocationsChange   float64 `env:"STATS_CHANGE_LOCATIONS,   default=0"`
	OperationalChange float64 `env:"STATS_CHANGE_OPERATIONAL, default=0"`
}

type NRELConfig struct {
	BaseURL string `env:"NREL_BASE_URL, default=https://developer.nrel.gov/api"`
	APIKey  string `env:"NREL_API_KEY,  default=DEMO_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "test"
}

func (c *Config) validate() error {
	if !slices.Contains([]string{DriverMongo, DriverSQLite, DriverMemory}, c.StoreDriver) {
		return fmt.Errorf("config: STORE_DRIVER must be mongo, sqlite or memory, got %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("config: JWT_SECRET is required when ENV=%s", c.Env)
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	return nil
}
