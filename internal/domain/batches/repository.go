package batches

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("batch not found")

// Store is the persistence collaborator behind the gateway. Implementations
// assign ids on Create, ignoring any id already set on the record, and return
// ErrNotFound from Update and Delete when no record has the given id.
type Store interface {
	Create(ctx context.Context, record Record) (Record, error)
	FindByTrainerID(ctx context.Context, trainerID int) ([]Record, error)
	FindAll(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id int) error
}
