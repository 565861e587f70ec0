package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
	"weatherhistory.app/internal/adapters/database"
	"weatherhistory.app/internal/adapters/external"
	"weatherhistory.app/internal/adapters/feed"
	"weatherhistory.app/internal/adapters/infrastructure"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/logger"
)

type DependencyContainer struct {
	config     *config.Config
	db         *gorm.DB
	ports      *ports.ApplicationPorts
	registry   *prometheus.Registry
	fileLogger *infrastructure.FileLoggerAdapter
}

// NewDependencyContainer connects to PostgreSQL and builds every port
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	slog.Info("Initializing database connection...")

	db, err := database.Open(cfg.Database.GetDSN())
	if err != nil {
		return nil, err
	}

	container, err := NewDependencyContainerWithDatabase(cfg, db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	slog.Info("Database connection established successfully")
	return container, nil
}

// NewDependencyContainerWithDatabase builds every port on an already opened database
func NewDependencyContainerWithDatabase(cfg *config.Config, db *gorm.DB) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	slog.Info("Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	container := &DependencyContainer{
		config:   cfg,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infrastructure.NewPrometheusMetricsCollector(c.registry)

	appLogger, err := c.newLogger()
	if err != nil {
		return err
	}

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	weatherConfig := configProvider.GetWeatherConfig()

	openWeatherMap := external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:             c.config.Weather.OpenWeatherMapKey,
		BaseURL:            weatherConfig.BaseURL,
		Timeout:            weatherConfig.HTTPTimeout,
		BreakerMaxFailures: weatherConfig.BreakerMaxFailures,
		BreakerOpenTimeout: weatherConfig.BreakerOpenTimeout,
		Logger:             appLogger,
	})

	var weatherProvider ports.WeatherProvider = openWeatherMap
	if weatherConfig.EnableLogging {
		weatherProvider = external.NewLookupLoggingProvider(weatherProvider, appLogger)
		slog.Info("Weather provider logging enabled")
	}

	notifier, err := feed.NewChangeNotifier(&c.config.Notifier)
	if err != nil {
		return fmt.Errorf("create change notifier: %w", err)
	}
	slog.Info("Change notifier initialized",
		"type", c.config.Notifier.Type.String(),
		"channel", c.config.Notifier.Channel)

	repository := database.NewHistoryRepositoryAdapter(c.db)

	store, err := feed.NewLiveHistoryStore(feed.LiveHistoryStoreDependencies{
		Repository: repository,
		Notifier:   notifier,
		Logger:     appLogger,
		Metrics:    metrics,
	})
	if err != nil {
		_ = notifier.Close()
		return fmt.Errorf("create history store: %w", err)
	}

	healthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker:   infrastructure.NewDatabaseHealthChecker(c.db, repository),
		NotifierChecker:   infrastructure.NewNotifierHealthChecker(notifier, configProvider.GetNotifierConfig()),
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(weatherConfig, openWeatherMap),
		ConfigProvider:    configProvider,
	})

	c.ports = &ports.ApplicationPorts{
		WeatherProvider:   weatherProvider,
		HistoryRepository: repository,
		ChangeNotifier:    notifier,
		HistoryStore:      store,
		ConfigProvider:    configProvider,
		Logger:            appLogger,
		Metrics:           metrics,
		HealthChecker:     healthChecker,
		Database:          c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// newLogger returns the file logger when LOG_FILE_PATH is set, the process slog logger otherwise
func (c *DependencyContainer) newLogger() (ports.Logger, error) {
	if c.config.Logging.FilePath == "" {
		base := logger.NewWithLevel(logger.ParseLevel(c.config.Logging.Level)).WithField("service", "weather-history")
		return infrastructure.NewSlogLoggerAdapter(base.Logger), nil
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Logging.FilePath)
	if err != nil {
		return nil, fmt.Errorf("create file logger: %w", err)
	}
	c.fileLogger = fileLogger
	slog.Info("File logging enabled", "path", fileLogger.Path())
	return fileLogger, nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Registry returns the prometheus registry backing /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Cleanup closes the notifier, the log file and the database
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.ports != nil && c.ports.ChangeNotifier != nil {
		keep(c.ports.ChangeNotifier.Close())
	}
	if c.fileLogger != nil {
		keep(c.fileLogger.Close())
	}
	if c.db != nil {
		keep(database.Close(c.db))
	}
	return firstErr
}
