package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Wind struct {
	Speed float64 `json:"speed"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

type WeatherResponse struct {
	Name     string      `json:"name"`
	Dt       int64       `json:"dt"`
	Timezone int         `json:"timezone"`
	Main     Main        `json:"main"`
	Weather  []Condition `json:"weather"`
	Wind     Wind        `json:"wind"`
	Sys      Sys         `json:"sys"`
}

type city struct {
	name        string
	country     string
	timezone    int
	temp        float64
	humidity    int
	description string
	icon        string
}

var cities = map[string]city{
	"london": {name: "London", country: "GB", timezone: 0, temp: 15.0, humidity: 76, description: "broken clouds", icon: "04d"},
	"paris":  {name: "Paris", country: "FR", timezone: 3600, temp: 18.0, humidity: 68, description: "clear sky", icon: "01d"},
	"berlin": {name: "Berlin", country: "DE", timezone: 3600, temp: 12.0, humidity: 82, description: "overcast clouds", icon: "04d"},
	"cairo":  {name: "Cairo", country: "EG", timezone: 7200, temp: 31.0, humidity: 20, description: "clear sky", icon: "01d"},
	"tokyo":  {name: "Tokyo", country: "JP", timezone: 32400, temp: 22.0, humidity: 55, description: "few clouds", icon: "02n"},
}

// respond builds a payload whose sunrise and sunset bracket the current
// UTC day, shifted by the city's offset
func respond(c city, now time.Time) WeatherResponse {
	local := now.Add(time.Duration(c.timezone) * time.Second)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	offset := time.Duration(c.timezone) * time.Second

	return WeatherResponse{
		Name:     c.name,
		Dt:       now.Unix(),
		Timezone: c.timezone,
		Main:     Main{Temp: c.temp, FeelsLike: c.temp - 1, Humidity: c.humidity},
		Weather:  []Condition{{Description: c.description, Icon: c.icon}},
		Wind:     Wind{Speed: 3.6},
		Sys: Sys{
			Country: c.country,
			Sunrise: midnight.Add(6*time.Hour - offset).Unix(),
			Sunset:  midnight.Add(20*time.Hour - offset).Unix(),
		},
	}
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/weather", func(c *gin.Context) {
		query := strings.ToLower(strings.TrimSpace(c.Query("q")))

		if c.Query("appid") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
			return
		}

		switch query {
		case "":
			c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "Nothing to geocode"})
			return
		case "servererror":
			c.JSON(http.StatusInternalServerError, gin.H{"cod": "500", "message": "Internal server error"})
			return
		case "ratelimit":
			c.JSON(http.StatusTooManyRequests, gin.H{"cod": 429, "message": "rate limit exceeded"})
			return
		case "malformed":
			c.JSON(http.StatusOK, gin.H{"main": gin.H{"temp": 1}})
			return
		}

		data, exists := cities[query]
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
			return
		}

		c.JSON(http.StatusOK, respond(data, time.Now().UTC()))
	})

	addr := ":" + envOr("MOCK_PORT", "8081")
	slog.Info("Mock OpenWeatherMap server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
