package ports

import "time"

// WeatherConfig represents weather lookup configuration
type WeatherConfig struct {
	BaseURL            string
	EnableLogging      bool
	HTTPTimeout        time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// HistoryConfig represents history window configuration
type HistoryConfig struct {
	RecentLimit int
	MaxLimit    int
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// NotifierConfig represents change notifier configuration
type NotifierConfig struct {
	Type      string
	Channel   string
	RedisAddr string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetHistoryConfig() HistoryConfig
	GetServerConfig() ServerConfig
	GetNotifierConfig() NotifierConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Metric outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordLookup(outcome string, duration time.Duration)
	RecordHistoryAppend(outcome string)
	RecordAnalyticsRecompute(windowSize int)
	SubscriptionOpened()
	SubscriptionClosed()
}
