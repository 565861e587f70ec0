package weather

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot represents the current weather observed for a city
type Snapshot struct {
	City             string    `json:"city"`
	Country          string    `json:"country"`
	Temperature      float64   `json:"temperature"`
	FeelsLike        float64   `json:"feelsLike"`
	Humidity         int       `json:"humidity"`
	WindSpeed        float64   `json:"windSpeed"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon,omitempty"`
	UTCOffsetSeconds int       `json:"utcOffsetSeconds"`
	Sunrise          time.Time `json:"sunrise"`
	Sunset           time.Time `json:"sunset"`
	ObservedAt       time.Time `json:"observedAt"`
}

// LookupRequest represents a request for current weather
type LookupRequest struct {
	City string
}

// IsValid validates snapshot data returned by a provider
func (s *Snapshot) IsValid() error {
	if strings.TrimSpace(s.City) == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if s.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	if s.ObservedAt.IsZero() {
		return fmt.Errorf("observation time must be set")
	}
	return nil
}

// IsValid validates the lookup request
func (r *LookupRequest) IsValid() error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("city cannot be empty")
	}
	return nil
}

// NormalizeCity trims the city name for consistent processing
func (r *LookupRequest) NormalizeCity() {
	r.City = strings.TrimSpace(r.City)
}

// LocalTime converts an instant to the city's wall clock
func (s *Snapshot) LocalTime(t time.Time) time.Time {
	return t.In(time.FixedZone(s.zoneName(), s.UTCOffsetSeconds))
}

func (s *Snapshot) zoneName() string {
	offset := s.UTCOffsetSeconds
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, (offset%3600)/60)
}
