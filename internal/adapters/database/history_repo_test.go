package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, RunMigrations(db))
	t.Cleanup(func() { _ = Close(db) })

	return db
}

func record(id, city string, temp float64, at time.Time) *ports.HistoryRecordData {
	return &ports.HistoryRecordData{ID: id, City: city, Temperature: temp, Condition: "clear sky", Timestamp: at}
}

func TestHistoryRepository_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepositoryAdapter(db)
	ctx := context.Background()
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, record("id-1", "Paris", 10, at)))

	var model HistoryRecordModel
	require.NoError(t, db.First(&model, "id = ?", "id-1").Error)
	assert.Equal(t, "Paris", model.City)
	assert.Equal(t, 10.0, model.Temperature)
	assert.Equal(t, "clear sky", model.Condition)
	assert.True(t, model.RecordedAt.Equal(at))
}

func TestHistoryRepository_Append_Validation(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	err := repo.Append(ctx, nil)
	assert.True(t, errors.IsValidationError(err))

	err = repo.Append(ctx, record("", "Paris", 10, time.Now()))
	assert.True(t, errors.IsValidationError(err))
}

func TestHistoryRepository_Append_DuplicateID(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, record("same", "Paris", 10, time.Now())))
	err := repo.Append(ctx, record("same", "Paris", 10, time.Now()))

	assert.True(t, errors.IsDatabaseError(err))
}

func TestHistoryRepository_FindLatest(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, record(fmt.Sprintf("id-%d", i), "City", float64(i), base.Add(time.Duration(i)*time.Hour))))
	}

	records, err := repo.FindLatest(ctx, 3)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "id-4", records[0].ID)
	assert.Equal(t, "id-3", records[1].ID)
	assert.Equal(t, "id-2", records[2].ID)
	assert.Equal(t, time.UTC, records[0].Timestamp.Location())
}

func TestHistoryRepository_FindLatest_SameTimestampDuplicates(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, record("a", "Oslo", 1, at)))
	require.NoError(t, repo.Append(ctx, record("b", "Oslo", 1, at)))

	records, err := repo.FindLatest(ctx, 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestHistoryRepository_FindLatest_Empty(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))

	records, err := repo.FindLatest(context.Background(), 50)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryRepository_FindLatest_InvalidLimit(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))

	_, err := repo.FindLatest(context.Background(), 0)

	assert.True(t, errors.IsValidationError(err))
}

func TestHistoryRepository_Count(t *testing.T) {
	repo := NewHistoryRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Append(ctx, record("1", "Lima", 20, time.Now())))
	require.NoError(t, repo.Append(ctx, record("2", "Lima", 21, time.Now())))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestHistoryRepository_ClosedDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	require.NoError(t, Close(db))
	repo := NewHistoryRepositoryAdapter(db)

	err = repo.Append(context.Background(), record("1", "Lima", 20, time.Now()))
	assert.True(t, errors.IsDatabaseError(err))

	_, err = repo.FindLatest(context.Background(), 5)
	assert.True(t, errors.IsDatabaseError(err))
}
