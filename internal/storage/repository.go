// Package storage selects and opens the batch store backend.
package storage

import (
	"context"
	"fmt"

	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/hydra-janus/batch-service/internal/storage/postgres"
	"github.com/hydra-janus/batch-service/internal/storage/sqlite"
)

// Repository groups data access for the service.
type Repository interface {
	metrics.PoolStatter

	Batches() batches.Store
	Ping(ctx context.Context) error
	Close() error
}

// SchemaVersioner is implemented by backends whose schema is managed by
// versioned migrations.
type SchemaVersioner interface {
	SchemaVersion(ctx context.Context) (version int64, dirty bool, err error)
}

var (
	_ Repository      = (*postgres.Repository)(nil)
	_ SchemaVersioner = (*postgres.Repository)(nil)
	_ Repository      = (*sqlite.Repository)(nil)
)

// Open connects to the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.MigrateUp(cfg.URL); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.URL, cfg.MaxConnections)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepository(pool)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
