package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherhistory.app/internal/ports"
)

// DatabaseHealthChecker pings the history database and reports the row count
type DatabaseHealthChecker struct {
	db         *gorm.DB
	repository ports.HistoryRepository
}

// NewDatabaseHealthChecker creates a new database health checker.
// repository may be nil, in which case no record count is reported.
func NewDatabaseHealthChecker(db *gorm.DB, repository ports.HistoryRepository) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db, repository: repository}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = ports.StatusHealthy
	status.Details["connected"] = true

	if d.repository != nil {
		if count, err := d.repository.Count(ctx); err == nil {
			status.Details["records"] = count
		}
	}
	return status
}

func unhealthy(status ports.HealthStatus, reason string) ports.HealthStatus {
	status.Status = ports.StatusUnhealthy
	status.Error = reason
	return status
}
