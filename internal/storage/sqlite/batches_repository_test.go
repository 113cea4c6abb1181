package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateThenListByTrainer(t *testing.T) {
	ctx := context.Background()
	store := newTestRepository(t).Batches()

	created, err := store.Create(ctx, batches.Record{
		ID:         55,
		TrainerID:  7,
		Attributes: map[string]json.RawMessage{"name": json.RawMessage(`"Cohort A"`)},
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	listed, err := store.FindByTrainerID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, []batches.Record{created}, listed)

	body, err := json.Marshal(listed)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":1,"trainerId":7,"name":"Cohort A"}]`, string(body))
}

func TestListsAreEmptyNotNil(t *testing.T) {
	ctx := context.Background()
	store := newTestRepository(t).Batches()

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)

	byTrainer, err := store.FindByTrainerID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, byTrainer)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestRepository(t).Batches()

	require.ErrorIs(t, store.Update(ctx, batches.Record{ID: 9, TrainerID: 1}), batches.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, 9), batches.ErrNotFound)
}

func TestUpdateReplacesRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestRepository(t).Batches()

	created, err := store.Create(ctx, batches.Record{
		TrainerID: 2,
		Attributes: map[string]json.RawMessage{
			"name":      json.RawMessage(`"Java"`),
			"skillType": json.RawMessage(`"backend"`),
		},
	})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, batches.Record{
		ID:         created.ID,
		TrainerID:  3,
		Attributes: map[string]json.RawMessage{"name": json.RawMessage(`"Go"`)},
	}))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 3, all[0].TrainerID)
	require.Equal(t, map[string]json.RawMessage{"name": json.RawMessage(`"Go"`)}, all[0].Attributes)
}

func TestUpdateRejectsInvalidRecord(t *testing.T) {
	store := newTestRepository(t).Batches()

	err := store.Update(context.Background(), batches.Record{ID: 1})
	var validationErr batches.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	store := newTestRepository(t).Batches()

	created, err := store.Create(ctx, batches.Record{TrainerID: 1})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))
	require.ErrorIs(t, store.Delete(ctx, created.ID), batches.ErrNotFound)
}

func TestRepositoryPoolStats(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Ping(context.Background()))
	require.Equal(t, 1, repo.PoolStats().MaxOpen)
}
