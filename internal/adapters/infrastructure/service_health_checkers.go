package infrastructure

import (
	"context"

	"weatherhistory.app/internal/ports"
)

// NotifierHealthChecker verifies the change notifier transport is reachable
type NotifierHealthChecker struct {
	notifier ports.ChangeNotifier
	config   ports.NotifierConfig
}

// NewNotifierHealthChecker creates a new notifier health checker
func NewNotifierHealthChecker(notifier ports.ChangeNotifier, config ports.NotifierConfig) *NotifierHealthChecker {
	return &NotifierHealthChecker{notifier: notifier, config: config}
}

// Check pings the notifier
func (n *NotifierHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "notifier",
		Details: map[string]interface{}{
			"type":    n.config.Type,
			"channel": n.config.Channel,
		},
	}

	if n.notifier == nil {
		return unhealthy(status, "change notifier is not available")
	}
	if err := n.notifier.Ping(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	status.Status = ports.StatusHealthy
	return status
}

// BreakerStateReporter exposes the state of a provider circuit breaker
type BreakerStateReporter interface {
	BreakerState() string
}

// WeatherAPIHealthChecker reports weather API configuration and breaker state.
// It never calls the upstream API.
type WeatherAPIHealthChecker struct {
	config  ports.WeatherConfig
	breaker BreakerStateReporter
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(config ports.WeatherConfig, breaker BreakerStateReporter) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{config: config, breaker: breaker}
}

// Check reports unhealthy while the circuit breaker is open
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    ports.StatusHealthy,
		Details: map[string]interface{}{
			"baseURL":        w.config.BaseURL,
			"loggingEnabled": w.config.EnableLogging,
			"timeout":        w.config.HTTPTimeout.String(),
		},
	}

	if w.config.BaseURL == "" {
		return unhealthy(status, "weather API base URL is not configured")
	}

	if w.breaker != nil {
		state := w.breaker.BreakerState()
		status.Details["breaker"] = state
		if state == "open" {
			return unhealthy(status, "weather API circuit breaker is open")
		}
	}

	return status
}
