package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProvider

	// History
	HistoryRepository HistoryRepository
	ChangeNotifier    ChangeNotifier
	HistoryStore      HistoryStore

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
	HealthChecker  SystemHealthChecker
	Database       interface{}
}
