package infrastructure

import (
	"context"

	"weatherhistory.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	databaseChecker   ports.HealthChecker
	notifierChecker   ports.HealthChecker
	weatherAPIChecker ports.HealthChecker
	configProvider    ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker   ports.HealthChecker
	NotifierChecker   ports.HealthChecker
	WeatherAPIChecker ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		databaseChecker:   config.DatabaseChecker,
		notifierChecker:   config.NotifierChecker,
		weatherAPIChecker: config.WeatherAPIChecker,
		configProvider:    config.ConfigProvider,
	}
}

// CheckAll performs health checks on all configured components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.databaseChecker != nil {
		results["database"] = s.databaseChecker.Check(ctx)
	}
	if s.notifierChecker != nil {
		results["notifier"] = s.notifierChecker.Check(ctx)
	}
	if s.weatherAPIChecker != nil {
		results["weatherAPI"] = s.weatherAPIChecker.Check(ctx)
	}

	if s.configProvider != nil {
		history := s.configProvider.GetHistoryConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    ports.StatusHealthy,
			Details: map[string]interface{}{
				"historyRecentLimit": history.RecentLimit,
				"historyMaxLimit":    history.MaxLimit,
			},
		}
	}

	return results
}

// IsHealthy reports whether every status in results is healthy
func IsHealthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status != ports.StatusHealthy {
			return false
		}
	}
	return true
}

var _ ports.SystemHealthChecker = (*SystemHealthChecker)(nil)
