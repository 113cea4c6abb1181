// Package sqlite is an embedded batch store backed by gorm and a pure-Go
// SQLite driver. It is meant for local development and tests.
package sqlite

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

type Repository struct {
	db      *gorm.DB
	batches *BatchRepository
}

// Open connects to dsn and creates the batches table if needed. SQLite
// serialises writers, so the pool is pinned to a single connection.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite dsn cannot be empty")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&batchModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &Repository{
		db:      db,
		batches: &BatchRepository{db: db},
	}, nil
}

func (r *Repository) Batches() batches.Store {
	return r.batches
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) PoolStats() metrics.PoolStats {
	sqlDB, err := r.db.DB()
	if err != nil {
		return metrics.PoolStats{}
	}
	stats := sqlDB.Stats()
	return metrics.PoolStats{
		Open:    stats.OpenConnections,
		InUse:   stats.InUse,
		Idle:    stats.Idle,
		MaxOpen: stats.MaxOpenConnections,
	}
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
