package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherhistory.app/pkg/errors"
)

const (
	maxRedisDB        = 15
	maxPortNumber     = 65535
	maxHistoryLimit   = 1000
	maxBreakerSeconds = 3600
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	History  HistoryConfig  `split_words:"true"`
	Notifier NotifierConfig `split_words:"true"`
	Logging  LoggingConfig  `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherhistory"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY" required:"true"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	HTTPTimeoutSeconds    int    `envconfig:"WEATHER_HTTP_TIMEOUT_SECONDS" default:"0"`
	BreakerMaxFailures    int    `envconfig:"WEATHER_BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenSeconds    int    `envconfig:"WEATHER_BREAKER_OPEN_SECONDS" default:"60"`
}

type HistoryConfig struct {
	RecentLimit int `envconfig:"HISTORY_RECENT_LIMIT" default:"50"`
	MaxLimit    int `envconfig:"HISTORY_MAX_LIMIT" default:"200"`
}

// NotifierType represents the transport used to fan out history changes
type NotifierType int

const (
	NotifierTypeUnknown NotifierType = iota
	NotifierTypeMemory
	NotifierTypeRedis
)

// String returns the string representation of notifier type
func (n NotifierType) String() string {
	switch n {
	case NotifierTypeMemory:
		return "memory"
	case NotifierTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the notifier type is valid
func (n NotifierType) IsValid() bool {
	return n == NotifierTypeMemory || n == NotifierTypeRedis
}

// NotifierTypeFromString converts string to NotifierType enum
func NotifierTypeFromString(s string) NotifierType {
	switch s {
	case "memory":
		return NotifierTypeMemory
	case "redis":
		return NotifierTypeRedis
	default:
		return NotifierTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (n *NotifierType) UnmarshalText(text []byte) error {
	*n = NotifierTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (n NotifierType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

type NotifierConfig struct {
	Type    NotifierType `envconfig:"NOTIFIER_TYPE" default:"memory"`
	Channel string       `envconfig:"NOTIFIER_CHANNEL" default:"weather-history:changes"`
	Redis   RedisConfig  `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type LoggingConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.History.Validate(); err != nil {
		return err
	}
	if err := c.Notifier.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if strings.TrimSpace(w.OpenWeatherMapKey) == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY cannot be empty", nil)
	}
	if !strings.HasPrefix(w.OpenWeatherMapBaseURL, "http://") && !strings.HasPrefix(w.OpenWeatherMapBaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.HTTPTimeoutSeconds < 0 {
		return errors.NewConfigurationError("WEATHER_HTTP_TIMEOUT_SECONDS cannot be negative", nil)
	}
	if w.BreakerMaxFailures < 1 {
		return errors.NewConfigurationError("WEATHER_BREAKER_MAX_FAILURES must be at least 1", nil)
	}
	if w.BreakerOpenSeconds < 1 || w.BreakerOpenSeconds > maxBreakerSeconds {
		return errors.NewConfigurationError("WEATHER_BREAKER_OPEN_SECONDS must be between 1 and 3600", nil)
	}
	return nil
}

func (h *HistoryConfig) Validate() error {
	if h.RecentLimit < 1 {
		return errors.NewConfigurationError("HISTORY_RECENT_LIMIT must be at least 1", nil)
	}
	if h.MaxLimit < h.RecentLimit || h.MaxLimit > maxHistoryLimit {
		return errors.NewConfigurationError("HISTORY_MAX_LIMIT must be between HISTORY_RECENT_LIMIT and 1000", nil)
	}
	return nil
}

func (n *NotifierConfig) Validate() error {
	if !n.Type.IsValid() {
		return errors.NewConfigurationError("NOTIFIER_TYPE must be one of: memory, redis", nil)
	}
	if strings.TrimSpace(n.Channel) == "" {
		return errors.NewConfigurationError("NOTIFIER_CHANNEL cannot be empty", nil)
	}
	if n.Type == NotifierTypeRedis {
		return n.Redis.Validate()
	}
	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using the Redis notifier", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
}
