package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hydra-janus/batch-service/internal/domain/batches"
	"github.com/hydra-janus/batch-service/internal/metrics"
	"gorm.io/gorm"
)

var _ batches.Store = (*BatchRepository)(nil)

type batchModel struct {
	ID         int    `gorm:"primaryKey;autoIncrement"`
	TrainerID  int    `gorm:"not null;index"`
	Attributes string `gorm:"type:text;not null;default:'{}'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (batchModel) TableName() string {
	return "batches"
}

type BatchRepository struct {
	db *gorm.DB
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

	model := batchModel{TrainerID: record.TrainerID, Attributes: string(attrs)}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return batches.Record{}, fmt.Errorf("insert batch: %w", err)
	}

	record.ID = model.ID
	return record, nil
}

func (r *BatchRepository) FindByTrainerID(ctx context.Context, trainerID int) (records []batches.Record, err error) {
	defer func(start time.Time) { metrics.RecordQuery("batches_find_by_trainer", start, err) }(time.Now())

	var models []batchModel
	if err := r.db.WithContext(ctx).Where("trainer_id = ?", trainerID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list batches by trainer: %w", err)
	}
	return modelsToDomain(models)
}

func (r *BatchRepository) FindAll(ctx context.Context) (records []batches.Record, err error) {
	defer func(start time.Time) { metrics.RecordQuery("batches_find_all", start, err) }(time.Now())

	var models []batchModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return modelsToDomain(models)
}

func (r *BatchRepository) Update(ctx context.Context, record batches.Record) (err error) {
	defer func(start time.Time) { recordMutation("batches_update", start, err) }(time.Now())

	if err := batches.ValidateRecord(record); err != nil {
		return err
	}
	attrs, err := record.EncodeAttributes()
	if err != nil {
		return fmt.Errorf("encode batch attributes: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&batchModel{}).Where("id = ?", record.ID).Updates(map[string]any{
		"trainer_id": record.TrainerID,
		"attributes": string(attrs),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("update batch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return batches.ErrNotFound
	}
	return nil
}

func (r *BatchRepository) Delete(ctx context.Context, id int) (err error) {
	defer func(start time.Time) { recordMutation("batches_delete", start, err) }(time.Now())

	result := r.db.WithContext(ctx).Delete(&batchModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete batch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return batches.ErrNotFound
	}
	return nil
}

// A missing row is an answer, not a database failure.
func recordMutation(operation string, start time.Time, err error) {
	if errors.Is(err, batches.ErrNotFound) {
		err = nil
	}
	metrics.RecordQuery(operation, start, err)
}

func modelsToDomain(models []batchModel) ([]batches.Record, error) {
	records := make([]batches.Record, 0, len(models))
	for _, m := range models {
		attrs, err := batches.DecodeAttributes([]byte(m.Attributes))
		if err != nil {
			return nil, err
		}
		records = append(records, batches.Record{
			ID:         m.ID,
			TrainerID:  m.TrainerID,
			Attributes: attrs,
		})
	}
	return records, nil
}
