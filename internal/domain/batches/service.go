// Package batches holds the batch record type, the Store contract that
// persistence backends satisfy, and the Gateway that request handlers call.
//
// The Gateway adds no behaviour of its own: every call is forwarded to the
// Store it was constructed with and the result, including any error, is
// returned as-is. Locking, atomicity and id assignment belong to the Store.
package batches

import "context"

type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// Create stores a new batch and returns it with the id the store assigned.
func (g *Gateway) Create(ctx context.Context, record Record) (Record, error) {
	return g.store.Create(ctx, record)
}

func (g *Gateway) ListByTrainer(ctx context.Context, trainerID int) ([]Record, error) {
	return g.store.FindByTrainerID(ctx, trainerID)
}

func (g *Gateway) ListAll(ctx context.Context) ([]Record, error) {
	return g.store.FindAll(ctx)
}

// Update replaces the stored batch whose id matches record.ID.
func (g *Gateway) Update(ctx context.Context, record Record) error {
	return g.store.Update(ctx, record)
}

// Delete removes the batch with the given id. A missing id is ErrNotFound.
func (g *Gateway) Delete(ctx context.Context, id int) error {
	return g.store.Delete(ctx, id)
}
