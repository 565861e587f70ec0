package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// HistoryRecordModel represents the database model for weather history records
type HistoryRecordModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	City        string    `gorm:"not null"`
	Temperature float64   `gorm:"not null"`
	Condition   string    `gorm:"not null;default:''"`
	RecordedAt  time.Time `gorm:"column:recorded_at;index;not null"`
}

func (HistoryRecordModel) TableName() string {
	return "weather_records"
}

// HistoryRepositoryAdapter implements the HistoryRepository port using GORM
type HistoryRepositoryAdapter struct {
	db *gorm.DB
}

// NewHistoryRepositoryAdapter creates a new history repository adapter
func NewHistoryRepositoryAdapter(db *gorm.DB) ports.HistoryRepository {
	return &HistoryRepositoryAdapter{db: db}
}

// Append inserts one record. Records are never updated or deduplicated.
func (r *HistoryRepositoryAdapter) Append(ctx context.Context, record *ports.HistoryRecordData) error {
	if record == nil {
		return errors.NewValidationError("history record cannot be nil")
	}
	if record.ID == "" {
		return errors.NewValidationError("history record ID cannot be empty")
	}

	model := r.dataToModel(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("failed to append history record", err)
	}

	return nil
}

// FindLatest returns up to limit records ordered newest first
func (r *HistoryRepositoryAdapter) FindLatest(ctx context.Context, limit int) ([]ports.HistoryRecordData, error) {
	if limit <= 0 {
		return nil, errors.NewValidationError("limit must be positive")
	}

	var models []HistoryRecordModel
	result := r.db.WithContext(ctx).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to load latest history records", result.Error)
	}

	records := make([]ports.HistoryRecordData, 0, len(models))
	for i := range models {
		records = append(records, *r.modelToData(&models[i]))
	}
	return records, nil
}

// Count returns the total number of stored records
func (r *HistoryRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&HistoryRecordModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count history records", err)
	}
	return count, nil
}

func (r *HistoryRepositoryAdapter) dataToModel(data *ports.HistoryRecordData) *HistoryRecordModel {
	return &HistoryRecordModel{
		ID:          data.ID,
		City:        data.City,
		Temperature: data.Temperature,
		Condition:   data.Condition,
		RecordedAt:  data.Timestamp.UTC(),
	}
}

func (r *HistoryRepositoryAdapter) modelToData(model *HistoryRecordModel) *ports.HistoryRecordData {
	return &ports.HistoryRecordData{
		ID:          model.ID,
		City:        model.City,
		Temperature: model.Temperature,
		Condition:   model.Condition,
		Timestamp:   model.RecordedAt.UTC(),
	}
}
