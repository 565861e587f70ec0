package ports

import (
	"context"
	"time"
)

// WeatherSnapshotData represents one current-weather observation for a city
type WeatherSnapshotData struct {
	City             string
	Country          string
	Temperature      float64
	FeelsLike        float64
	Humidity         int
	WindSpeed        float64
	Description      string
	Icon             string
	UTCOffsetSeconds int
	Sunrise          time.Time
	Sunset           time.Time
	ObservedAt       time.Time
}

// WeatherProvider defines the contract for the weather lookup API
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city string) (*WeatherSnapshotData, error)
	GetProviderName() string
}
