package storage

import (
	"context"
	"testing"

	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	created, err := repo.Batches().Create(ctx, batches.Record{TrainerID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	_, ok := repo.(SchemaVersioner)
	require.False(t, ok)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql", URL: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "mysql")
}
