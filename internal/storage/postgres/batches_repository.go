package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ batches.Store = (*BatchRepository)(nil)

type BatchRepository struct {
	pool *pgxpool.Pool
}

type batchRow struct {
	ID         int
	TrainerID  int
	Attributes []byte
}

func (r *BatchRepository) Create(ctx context.Context, record batches.Record) (created batches.Record, err error) {
	defer func(start time.Time) { metrics.RecordQuery("batches_create", start, err) }(time.Now())

	if err := batches.ValidateRecord(record); err != nil {
		return batches.Record{}, err
	}
	attrs, err := record.EncodeAttributes()
	if err != nil {
		return batches.Record{}, fmt.Errorf("encode batch attributes: %w", err)
	}

	var id int
	err = r.pool.QueryRow(ctx, `
INSERT INTO batches (trainer_id, attributes)
VALUES ($1, $2)
RETURNING id
`, record.TrainerID, attrs).Scan(&id)
	if err != nil {
		return batches.Record{}, fmt.Errorf("insert batch: %w", err)
	}

	record.ID = id
	return record, nil
}

func (r *BatchRepository) FindByTrainerID(ctx context.Context, trainerID int) (records []batches.Record, err error) {
	defer func(start time.Time) { metrics.RecordQuery("batches_find_by_trainer", start, err) }(time.Now())

	rows, err := r.pool.Query(ctx, `
SELECT id, trainer_id, attributes
  FROM batches
 WHERE trainer_id = $1
 ORDER BY id
`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list batches by trainer: %w", err)
	}
	return collectBatches(rows)
}

func (r *BatchRepository) FindAll(ctx context.Context) (records []batches.Record, err error) {
	defer func(start time.Time) { metrics.RecordQuery("batches_find_all", start, err) }(time.Now())

	rows, err := r.pool.Query(ctx, `
SELECT id, trainer_id, attributes
  FROM batches
 ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return collectBatches(rows)
}

func (r *BatchRepository) Update(ctx context.Context, record batches.Record) (err error) {
	defer func(start time.Time) {
		if errors.Is(err, batches.ErrNotFound) {
			metrics.RecordQuery("batches_update", start, nil)
			return
		}
		metrics.RecordQuery("batches_update", start, err)
	}(time.Now())

	if err := batches.ValidateRecord(record); err != nil {
		return err
	}
	attrs, err := record.EncodeAttributes()
	if err != nil {
		return fmt.Errorf("encode batch attributes: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE batches
   SET trainer_id = $2,
       attributes = $3,
       updated_at = now()
 WHERE id = $1
`, record.ID, record.TrainerID, attrs)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batches.ErrNotFound
	}
	return nil
}

func (r *BatchRepository) Delete(ctx context.Context, id int) (err error) {
	defer func(start time.Time) {
		if errors.Is(err, batches.ErrNotFound) {
			metrics.RecordQuery("batches_delete", start, nil)
			return
		}
		metrics.RecordQuery("batches_delete", start, err)
	}(time.Now())

	tag, err := r.pool.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return batches.ErrNotFound
	}
	return nil
}

func collectBatches(rows pgx.Rows) ([]batches.Record, error) {
	defer rows.Close()

	records := make([]batches.Record, 0)
	for rows.Next() {
		var row batchRow
		if err := rows.Scan(&row.ID, &row.TrainerID, &row.Attributes); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		record, err := batchRowToDomain(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return records, nil
}

func batchRowToDomain(row batchRow) (batches.Record, error) {
	attrs, err := batches.DecodeAttributes(row.Attributes)
	if err != nil {
		return batches.Record{}, err
	}
	return batches.Record{
		ID:         row.ID,
		TrainerID:  row.TrainerID,
		Attributes: attrs,
	}, nil
}
