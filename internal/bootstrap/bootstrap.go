// Package bootstrap opens the storage backends selected by configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/renewables/energy-dashboard/internal/api/handler"
	"github.com/renewables/energy-dashboard/internal/core/ports"
	"github.com/renewables/energy-dashboard/internal/infrastructure/db/memory"
	"github.com/renewables/energy-dashboard/internal/infrastructure/db/mongo"
	"github.com/renewables/energy-dashboard/internal/infrastructure/db/redis"
	"github.com/renewables/energy-dashboard/internal/infrastructure/db/sqlite"
	"github.com/renewables/energy-dashboard/internal/pkg/config"
)

// Resources are the opened repositories plus what is needed to probe and
// release them.
type Resources struct {
	Projects ports.ProjectRepository
	Users    ports.UserRepository
	Keys     ports.IdempotencyStore
	Checks   map[string]handler.Check

	closers []func(context.Context) error
}

// Open connects the configured Entity Store and the idempotency store. On
// error everything opened so far is released.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Resources, error) {
	r := &Resources{Checks: make(map[string]handler.Check)}

	if err := r.openStore(ctx, cfg, log); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	if err := r.openKeys(ctx, cfg, log); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	return r, nil
}

func (r *Resources) openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		r.closers = append(r.closers, client.Disconnect)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		r.Projects = mongo.NewProjectRepository(db)
		r.Users = mongo.NewUserRepository(db)
		r.Checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.DSN)
		if err != nil {
			return err
		}
		r.closers = append(r.closers, func(context.Context) error { return db.Close() })
		r.Projects = sqlite.NewProjectRepository(db)
		r.Users = sqlite.NewUserRepository(db)
		r.Checks["sqlite"] = db.PingContext
		log.Info().Str("dsn", cfg.SQLite.DSN).Msg("opened SQLite store")

	case config.DriverMemory:
		r.Projects = memory.NewProjectRepository()
		r.Users = memory.NewUserRepository()
		log.Warn().Msg("using in-memory store; data is lost on restart")

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return nil
}

func (r *Resources) openKeys(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	rc := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if !rc.Enabled() {
		r.Keys = memory.NewIdempotencyStore(cfg.Idempotency.TTL)
		return nil
	}

	client, err := redis.Connect(ctx, rc)
	if err != nil {
		return err
	}
	r.closers = append(r.closers, func(context.Context) error { return client.Close() })
	r.Keys = redis.NewIdempotencyStore(client, cfg.Idempotency.TTL)
	r.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	log.Info().Str("addr", rc.Addr).Msg("connected to Redis")
	return nil
}

// Close releases every backend in reverse order of opening.
func (r *Resources) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
