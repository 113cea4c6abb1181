package batches

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	createFn   func(record Record) (Record, error)
	byTrainer  func(trainerID int) ([]Record, error)
	findAllFn  func() ([]Record, error)
	updateFn   func(record Record) error
	deleteFn   func(id int) error
	lastCalled string
}

func (s *stubStore) Create(_ context.Context, record Record) (Record, error) {
	s.lastCalled = "create"
	return s.createFn(record)
}

func (s *stubStore) FindByTrainerID(_ context.Context, trainerID int) ([]Record, error) {
	s.lastCalled = "findByTrainerId"
	return s.byTrainer(trainerID)
}

func (s *stubStore) FindAll(_ context.Context) ([]Record, error) {
	s.lastCalled = "findAll"
	return s.findAllFn()
}

func (s *stubStore) Update(_ context.Context, record Record) error {
	s.lastCalled = "update"
	return s.updateFn(record)
}

func (s *stubStore) Delete(_ context.Context, id int) error {
	s.lastCalled = "delete"
	return s.deleteFn(id)
}

func TestGatewayForwardsToStore(t *testing.T) {
	ctx := context.Background()
	stored := Record{ID: 1, TrainerID: 7}
	store := &stubStore{
		createFn: func(record Record) (Record, error) {
			require.Equal(t, 7, record.TrainerID)
			return stored, nil
		},
		byTrainer: func(trainerID int) ([]Record, error) {
			require.Equal(t, 7, trainerID)
			return []Record{stored}, nil
		},
		findAllFn: func() ([]Record, error) {
			return []Record{stored}, nil
		},
		updateFn: func(record Record) error {
			require.Equal(t, stored, record)
			return nil
		},
		deleteFn: func(id int) error {
			require.Equal(t, 1, id)
			return nil
		},
	}
	gateway := NewGateway(store)

	created, err := gateway.Create(ctx, Record{TrainerID: 7})
	require.NoError(t, err)
	require.Equal(t, stored, created)
	require.Equal(t, "create", store.lastCalled)

	byTrainer, err := gateway.ListByTrainer(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, []Record{stored}, byTrainer)
	require.Equal(t, "findByTrainerId", store.lastCalled)

	all, err := gateway.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []Record{stored}, all)
	require.Equal(t, "findAll", store.lastCalled)

	require.NoError(t, gateway.Update(ctx, stored))
	require.Equal(t, "update", store.lastCalled)

	require.NoError(t, gateway.Delete(ctx, 1))
	require.Equal(t, "delete", store.lastCalled)
}

func TestGatewayReturnsStoreErrorsUnchanged(t *testing.T) {
	ctx := context.Background()
	unavailable := errors.New("store unavailable")
	store := &stubStore{
		createFn:  func(Record) (Record, error) { return Record{}, unavailable },
		byTrainer: func(int) ([]Record, error) { return nil, unavailable },
		findAllFn: func() ([]Record, error) { return nil, unavailable },
		updateFn:  func(Record) error { return ErrNotFound },
		deleteFn:  func(int) error { return ErrNotFound },
	}
	gateway := NewGateway(store)

	_, err := gateway.Create(ctx, Record{TrainerID: 1})
	require.Equal(t, unavailable, err)

	_, err = gateway.ListByTrainer(ctx, 1)
	require.Equal(t, unavailable, err)

	_, err = gateway.ListAll(ctx)
	require.Equal(t, unavailable, err)

	require.Equal(t, ErrNotFound, gateway.Update(ctx, Record{ID: 42, TrainerID: 1}))
	require.Equal(t, ErrNotFound, gateway.Delete(ctx, 42))
}
