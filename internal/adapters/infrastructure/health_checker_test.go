package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherhistory.app/internal/adapters/database"
	"weatherhistory.app/internal/adapters/feed"
	"weatherhistory.app/internal/mocks"
	"weatherhistory.app/internal/ports"
)

func setupHealthDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))
	return db
}

type staticBreaker string

func (s staticBreaker) BreakerState() string { return string(s) }

func TestDatabaseHealthChecker(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		db := setupHealthDB(t)
		repo := database.NewHistoryRepositoryAdapter(db)
		require.NoError(t, repo.Append(context.Background(), &ports.HistoryRecordData{
			ID: "r1", City: "Paris", Temperature: 20, Condition: "clear", Timestamp: time.Now(),
		}))

		status := NewDatabaseHealthChecker(db, repo).Check(context.Background())

		assert.Equal(t, ports.StatusHealthy, status.Status)
		assert.Equal(t, true, status.Details["connected"])
		assert.Equal(t, int64(1), status.Details["records"])
	})

	t.Run("NilDatabase", func(t *testing.T) {
		status := NewDatabaseHealthChecker(nil, nil).Check(context.Background())

		assert.Equal(t, ports.StatusUnhealthy, status.Status)
		assert.Equal(t, "database instance is nil", status.Error)
	})

	t.Run("ClosedDatabase", func(t *testing.T) {
		db := setupHealthDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		status := NewDatabaseHealthChecker(db, nil).Check(context.Background())

		assert.Equal(t, ports.StatusUnhealthy, status.Status)
		assert.NotEmpty(t, status.Error)
	})
}

func TestNotifierHealthChecker(t *testing.T) {
	cfg := ports.NotifierConfig{Type: "memory", Channel: "changes"}

	t.Run("Healthy", func(t *testing.T) {
		notifier := feed.NewMemoryChangeNotifier()
		defer notifier.Close()

		status := NewNotifierHealthChecker(notifier, cfg).Check(context.Background())

		assert.Equal(t, ports.StatusHealthy, status.Status)
		assert.Equal(t, "memory", status.Details["type"])
		assert.Equal(t, "changes", status.Details["channel"])
	})

	t.Run("Closed", func(t *testing.T) {
		notifier := feed.NewMemoryChangeNotifier()
		require.NoError(t, notifier.Close())

		status := NewNotifierHealthChecker(notifier, cfg).Check(context.Background())

		assert.Equal(t, ports.StatusUnhealthy, status.Status)
		assert.Contains(t, status.Error, "closed")
	})

	t.Run("Missing", func(t *testing.T) {
		status := NewNotifierHealthChecker(nil, cfg).Check(context.Background())

		assert.Equal(t, ports.StatusUnhealthy, status.Status)
	})
}

func TestWeatherAPIHealthChecker(t *testing.T) {
	cfg := ports.WeatherConfig{BaseURL: "https://api.openweathermap.org/data/2.5", HTTPTimeout: 5 * time.Second}

	tests := []struct {
		name     string
		config   ports.WeatherConfig
		breaker  BreakerStateReporter
		expected string
	}{
		{name: "ClosedBreaker", config: cfg, breaker: staticBreaker("closed"), expected: ports.StatusHealthy},
		{name: "HalfOpenBreaker", config: cfg, breaker: staticBreaker("half-open"), expected: ports.StatusHealthy},
		{name: "OpenBreaker", config: cfg, breaker: staticBreaker("open"), expected: ports.StatusUnhealthy},
		{name: "NoBreaker", config: cfg, expected: ports.StatusHealthy},
		{name: "MissingBaseURL", config: ports.WeatherConfig{}, expected: ports.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewWeatherAPIHealthChecker(tt.config, tt.breaker).Check(context.Background())
			assert.Equal(t, tt.expected, status.Status)
			assert.Equal(t, "weatherAPI", status.Component)
		})
	}
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	configProvider := mocks.NewConfigProvider(t)
	configProvider.EXPECT().GetHistoryConfig().Return(ports.HistoryConfig{RecentLimit: 50, MaxLimit: 200})

	notifier := feed.NewMemoryChangeNotifier()
	defer notifier.Close()

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		DatabaseChecker:   NewDatabaseHealthChecker(setupHealthDB(t), nil),
		NotifierChecker:   NewNotifierHealthChecker(notifier, ports.NotifierConfig{Type: "memory", Channel: "c"}),
		WeatherAPIChecker: NewWeatherAPIHealthChecker(ports.WeatherConfig{BaseURL: "http://owm"}, staticBreaker("open")),
		ConfigProvider:    configProvider,
	})

	results := checker.CheckAll(context.Background())

	require.Len(t, results, 4)
	assert.Equal(t, ports.StatusHealthy, results["database"].Status)
	assert.Equal(t, ports.StatusHealthy, results["notifier"].Status)
	assert.Equal(t, ports.StatusUnhealthy, results["weatherAPI"].Status)
	assert.Equal(t, 50, results["config"].Details["historyRecentLimit"])
	assert.False(t, IsHealthy(results))

	delete(results, "weatherAPI")
	assert.True(t, IsHealthy(results))
}

func TestSystemHealthChecker_SkipsMissingCheckers(t *testing.T) {
	results := NewSystemHealthChecker(SystemHealthCheckerConfig{}).CheckAll(context.Background())

	assert.Empty(t, results)
	assert.True(t, IsHealthy(results))
}
