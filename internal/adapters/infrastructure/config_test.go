package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
)

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 9090},
		Weather: config.WeatherConfig{
			OpenWeatherMapBaseURL: "http://localhost:8081",
			EnableLogging:         true,
			HTTPTimeoutSeconds:    7,
			BreakerMaxFailures:    3,
			BreakerOpenSeconds:    30,
		},
		History: config.HistoryConfig{RecentLimit: 25, MaxLimit: 100},
		Notifier: config.NotifierConfig{
			Type:    config.NotifierTypeRedis,
			Channel: "changes",
			Redis:   config.RedisConfig{Addr: "redis:6379"},
		},
	}

	provider := NewConfigProviderAdapter(cfg)

	assert.Equal(t, ports.WeatherConfig{
		BaseURL:            "http://localhost:8081",
		EnableLogging:      true,
		HTTPTimeout:        7 * time.Second,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: 30 * time.Second,
	}, provider.GetWeatherConfig())
	assert.Equal(t, ports.HistoryConfig{RecentLimit: 25, MaxLimit: 100}, provider.GetHistoryConfig())
	assert.Equal(t, ports.ServerConfig{Port: 9090}, provider.GetServerConfig())
	assert.Equal(t, ports.NotifierConfig{Type: "redis", Channel: "changes", RedisAddr: "redis:6379"}, provider.GetNotifierConfig())
}

func TestConfigProviderAdapter_MemoryNotifierHasNoRedisAddr(t *testing.T) {
	cfg := &config.Config{
		Notifier: config.NotifierConfig{
			Type:    config.NotifierTypeMemory,
			Channel: "changes",
			Redis:   config.RedisConfig{Addr: "localhost:6379"},
		},
	}

	got := NewConfigProviderAdapter(cfg).GetNotifierConfig()

	assert.Equal(t, "memory", got.Type)
	assert.Empty(t, got.RedisAddr)
}
