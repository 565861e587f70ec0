package weather

import (
	"context"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const lookupFailedMessage = "weather lookup failed"

type UseCase struct {
	weatherProvider ports.WeatherProvider
	logger          ports.Logger
	metrics         ports.MetricsCollector
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Logger          ports.Logger
	Metrics         ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

// Lookup fetches the current weather for a city. Every provider failure is
// reported as a single LookupFailure and is never retried.
func (uc *UseCase) Lookup(ctx context.Context, request LookupRequest) (*Snapshot, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid weather request: " + err.Error())
	}

	request.NormalizeCity()
	city := request.City
	uc.logger.Debug("Looking up weather", ports.F("city", city))

	start := time.Now()
	snapshot, err := uc.fetch(ctx, city)
	if err != nil {
		uc.metrics.RecordLookup(ports.OutcomeFailure, time.Since(start))
		uc.logger.Error("Weather lookup failed",
			ports.F("city", city),
			ports.F("provider", uc.weatherProvider.GetProviderName()),
			ports.F("error", err))
		return nil, errors.NewLookupFailure(lookupFailedMessage, err)
	}
	uc.metrics.RecordLookup(ports.OutcomeSuccess, time.Since(start))

	uc.logger.Debug("Weather lookup succeeded",
		ports.F("city", snapshot.City),
		ports.F("temperature", snapshot.Temperature))
	return snapshot, nil
}

func (uc *UseCase) fetch(ctx context.Context, city string) (*Snapshot, error) {
	data, err := uc.weatherProvider.GetCurrentWeather(ctx, city)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.NewExternalAPIError("provider returned no data", nil)
	}

	snapshot := convertFromPortsSnapshot(data)
	if err := snapshot.IsValid(); err != nil {
		return nil, errors.NewExternalAPIError("invalid weather data from provider: "+err.Error(), nil)
	}
	return snapshot, nil
}

func convertFromPortsSnapshot(data *ports.WeatherSnapshotData) *Snapshot {
	return &Snapshot{
		City:             data.City,
		Country:          data.Country,
		Temperature:      data.Temperature,
		FeelsLike:        data.FeelsLike,
		Humidity:         data.Humidity,
		WindSpeed:        data.WindSpeed,
		Description:      data.Description,
		Icon:             data.Icon,
		UTCOffsetSeconds: data.UTCOffsetSeconds,
		Sunrise:          data.Sunrise,
		Sunset:           data.Sunset,
		ObservedAt:       data.ObservedAt,
	}
}
