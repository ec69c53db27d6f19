package postgres

import (
	"context"
	"log/slog"

	"hbnb/config"
	"hbnb/internal/domain/lifecycle"
	"hbnb/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// dbName labels the connection pool collector.
const dbName = "hbnb"

// Params defines the required parameters
type Params struct {
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger

	// Registerer receives the connection pool collector when set.
	Registerer prometheus.Registerer
}

// New opens the PostgreSQL connection described by the postgres config section.
// The connection is pinged on start; the store adapter closes it.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// A place and its amenity links are written in one explicit transaction,
		// so the per-statement implicit one is skipped.
		SkipDefaultTransaction: true,
		Logger:                 newGormLogger(params.Logger),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Registerer != nil {
		if err := params.Registerer.Register(collectors.NewDBStatsCollector(sqlDB, dbName)); err != nil {
			return nil, errors.Wrap(err, "failed to register PostgreSQL pool collector")
		}
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			stats := sqlDB.Stats()
			params.Logger.Info("PostgreSQL connected", slog.Int("maxOpenConns", stats.MaxOpenConnections))

			return nil
		},
	})

	return db, nil
}
