// Package persistence selects the store adapter and provides the storage session.
package persistence

import (
	"context"
	"log/slog"

	"hbnb/config"
	"hbnb/internal/domain/constants"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/infra/persistence/file"
	"hbnb/internal/infra/persistence/memory"
	"hbnb/internal/infra/persistence/postgres"
	"hbnb/internal/infra/persistence/session"
	"hbnb/internal/infra/persistence/sqlite"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// AdapterParams holds dependencies for the store adapter, injected by Fx
type AdapterParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger

	Registry *prometheus.Registry `optional:"true"`
}

// NewStoreAdapter creates a StoreAdapter based on configuration.
// The session owns the adapter and closes it on stop.
func NewStoreAdapter(params AdapterParams) (repository.StoreAdapter, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	if cfg == nil {
		return nil, errors.New("storage is not configured")
	}

	switch cfg.Type {
	case constants.StorageTypeFile:
		logger.Info("Using file store",
			slog.String("bucket", cfg.BucketURL),
			slog.String("key", cfg.Key),
		)

		return file.Open(params.Ctx, cfg.BucketURL, cfg.Key, logger)

	case constants.StorageTypeSQLite:
		logger.Info("Using SQLite store", slog.String("path", cfg.SQLitePath))

		return sqlite.Open(params.Ctx, cfg.SQLitePath, logger)

	case constants.StorageTypePostgres:
		if params.Config.Postgres == nil {
			return nil, errors.New("postgres connection is required for postgres storage")
		}
		logger.Info("Using PostgreSQL store", slog.Bool("auto_migrate", cfg.AutoMigrate))

		pgParams := postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		}
		if params.Registry != nil {
			pgParams.Registerer = params.Registry
		}

		db, err := postgres.New(pgParams)
		if err != nil {
			return nil, err
		}

		store := postgres.NewStore(db, logger)
		if cfg.AutoMigrate {
			params.Lc.Append(fx.Hook{
				OnStart: store.Migrate,
			})
		}

		return store, nil

	case constants.StorageTypeMemory:
		logger.Warn("Using in-memory store, data is lost on exit")

		return memory.NewStore(), nil

	default:
		return nil, errors.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStoreAdapter),
	fx.Provide(session.New),
)
