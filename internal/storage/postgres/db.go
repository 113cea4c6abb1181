package postgres

import (
	"context"
	"fmt"

	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements storage.Repository with a PostgreSQL backend
type Repository struct {
	pool    *pgxpool.Pool
	batches *BatchRepository
}

// NewPool opens a pgx connection pool. maxConns <= 0 keeps the pgx default.
func NewPool(ctx context.Context, databaseURL string, maxConns int) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return pool, nil
}

// NewRepository creates a new PostgreSQL-backed repository
func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool cannot be nil")
	}
	return &Repository{
		pool:    pool,
		batches: &BatchRepository{pool: pool},
	}, nil
}

// Batches returns the batch store
func (r *Repository) Batches() batches.Store {
	return r.batches
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) PoolStats() metrics.PoolStats {
	stat := r.pool.Stat()
	return metrics.PoolStats{
		Open:    int(stat.TotalConns()),
		InUse:   int(stat.AcquiredConns()),
		Idle:    int(stat.IdleConns()),
		MaxOpen: int(stat.MaxConns()),
	}
}

// SchemaVersion reports the applied migration version and whether the last
// migration left the schema dirty.
func (r *Repository) SchemaVersion(ctx context.Context) (int64, bool, error) {
	var version int64
	var dirty bool
	err := r.pool.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err != nil {
		return 0, false, fmt.Errorf("query migration version: %w", err)
	}
	return version, dirty, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
