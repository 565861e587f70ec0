package external

import (
	"context"
	"time"

	"weatherhistory.app/internal/core/weather"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// LookupLoggingProvider records every weather lookup: the query, how long it
// took, and either what was observed or why it failed.
type LookupLoggingProvider struct {
	next   ports.WeatherProvider
	logger ports.Logger
	now    func() time.Time
}

// NewLookupLoggingProvider wraps next with lookup logging
func NewLookupLoggingProvider(next ports.WeatherProvider, logger ports.Logger) *LookupLoggingProvider {
	return &LookupLoggingProvider{next: next, logger: logger, now: time.Now}
}

func (p *LookupLoggingProvider) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherSnapshotData, error) {
	provider := p.next.GetProviderName()
	started := p.now()

	data, err := p.next.GetCurrentWeather(ctx, city)
	elapsed := p.now().Sub(started)

	if err != nil {
		fields := []ports.Field{
			ports.F("provider", provider),
			ports.F("query", city),
			ports.F("elapsed_ms", elapsed.Milliseconds()),
			ports.F("error_type", errors.TypeOf(err).String()),
			ports.F("error", err.Error()),
		}
		// an unknown city is the user's typo, not an outage
		if errors.IsNotFoundError(err) {
			p.logger.Warn("Weather lookup found no city", fields...)
		} else {
			p.logger.Error("Weather lookup failed", fields...)
		}
		return nil, err
	}

	night := weather.IsNight(data.ObservedAt, data.Sunrise, data.Sunset)
	local := data.ObservedAt.In(time.FixedZone("", data.UTCOffsetSeconds))
	p.logger.Info("Weather lookup succeeded",
		ports.F("provider", provider),
		ports.F("query", city),
		ports.F("city", data.City),
		ports.F("country", data.Country),
		ports.F("elapsed_ms", elapsed.Milliseconds()),
		ports.F("temperature", data.Temperature),
		ports.F("condition", data.Description),
		ports.F("observed_at", data.ObservedAt.UTC().Format(time.RFC3339)),
		ports.F("local_time", local.Format("15:04")),
		ports.F("phase", string(weather.PhaseOf(night))))

	return data, nil
}

// GetProviderName reports the wrapped provider so metrics and logs stay keyed
// by the real upstream
func (p *LookupLoggingProvider) GetProviderName() string {
	return p.next.GetProviderName()
}
