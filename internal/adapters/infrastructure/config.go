package infrastructure

import (
	"time"

	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns weather lookup configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	w := c.config.Weather
	return ports.WeatherConfig{
		BaseURL:            w.OpenWeatherMapBaseURL,
		EnableLogging:      w.EnableLogging,
		HTTPTimeout:        time.Duration(w.HTTPTimeoutSeconds) * time.Second,
		BreakerMaxFailures: uint32(w.BreakerMaxFailures),
		BreakerOpenTimeout: time.Duration(w.BreakerOpenSeconds) * time.Second,
	}
}

// GetHistoryConfig returns history window configuration
func (c *ConfigProviderAdapter) GetHistoryConfig() ports.HistoryConfig {
	return ports.HistoryConfig{
		RecentLimit: c.config.History.RecentLimit,
		MaxLimit:    c.config.History.MaxLimit,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetNotifierConfig returns change notifier configuration
func (c *ConfigProviderAdapter) GetNotifierConfig() ports.NotifierConfig {
	n := c.config.Notifier
	cfg := ports.NotifierConfig{
		Type:    n.Type.String(),
		Channel: n.Channel,
	}
	if n.Type == config.NotifierTypeRedis {
		cfg.RedisAddr = n.Redis.Addr
	}
	return cfg
}
