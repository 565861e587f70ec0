package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherhistory.app/internal/core/weather"
	"weatherhistory.app/pkg/errors"
)

// WeatherQuery represents the query string of GET /api/weather
type WeatherQuery struct {
	City string `form:"city" binding:"required,cityname"`
}

// WeatherResponse represents the HTTP response for weather data
type WeatherResponse struct {
	City        string        `json:"city"`
	Country     string        `json:"country"`
	Temperature float64       `json:"temperature"`
	FeelsLike   float64       `json:"feelsLike"`
	Humidity    int           `json:"humidity"`
	WindSpeed   float64       `json:"windSpeed"`
	Description string        `json:"description"`
	Icon        string        `json:"icon,omitempty"`
	Sunrise     time.Time     `json:"sunrise"`
	Sunset      time.Time     `json:"sunset"`
	ObservedAt  time.Time     `json:"observedAt"`
	LocalTime   string        `json:"localTime"`
	IsNight     bool          `json:"isNight"`
	Phase       weather.Phase `json:"phase"`
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var query WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Debug("Weather query binding error", "error", err)
		s.handleError(c, errors.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("Getting weather for city", "city", query.City)

	snapshot, err := s.weather.Lookup(c.Request.Context(), weather.LookupRequest{City: query.City})
	if err != nil {
		slog.Error("Weather lookup error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newWeatherResponse(snapshot))
}

func newWeatherResponse(snapshot *weather.Snapshot) WeatherResponse {
	return WeatherResponse{
		City:        snapshot.City,
		Country:     snapshot.Country,
		Temperature: snapshot.Temperature,
		FeelsLike:   snapshot.FeelsLike,
		Humidity:    snapshot.Humidity,
		WindSpeed:   snapshot.WindSpeed,
		Description: snapshot.Description,
		Icon:        snapshot.Icon,
		Sunrise:     snapshot.Sunrise,
		Sunset:      snapshot.Sunset,
		ObservedAt:  snapshot.ObservedAt,
		LocalTime:   snapshot.LocalTime(snapshot.ObservedAt).Format(time.RFC3339),
		IsNight:     snapshot.IsNight(),
		Phase:       snapshot.Phase(),
	}
}
