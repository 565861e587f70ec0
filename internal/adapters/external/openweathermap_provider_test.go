package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/mocks"
	"weatherhistory.app/pkg/errors"
)

const londonPayload = `{
	"name": "London",
	"dt": 1700000000,
	"timezone": 0,
	"main": {"temp": 15.5, "feels_like": 14.8, "humidity": 78},
	"weather": [{"description": "light rain", "icon": "10d"}, {"description": "mist", "icon": "50d"}],
	"wind": {"speed": 5.1},
	"sys": {"country": "GB", "sunrise": 1699990000, "sunset": 1700020000}
}`

// Helper function to set up logger mock with variadic argument expectations
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)

	args := []interface{}{mock.Anything}
	for i := 0; i < 9; i++ {
		mockLogger.EXPECT().Debug(args[0], args[1:]...).Maybe()
		mockLogger.EXPECT().Info(args[0], args[1:]...).Maybe()
		mockLogger.EXPECT().Warn(args[0], args[1:]...).Maybe()
		mockLogger.EXPECT().Error(args[0], args[1:]...).Maybe()
		args = append(args, mock.Anything)
	}

	return mockLogger
}

func newTestProvider(t *testing.T, serverURL string) *OpenWeatherMapProviderAdapter {
	return NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:             "test-api-key",
		BaseURL:            serverURL,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Minute,
		Logger:             setupLoggerMock(t),
	})
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(londonPayload))
		assert.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	data, err := provider.GetCurrentWeather(context.Background(), "London")

	require.NoError(t, err)
	assert.Equal(t, "London", data.City)
	assert.Equal(t, "GB", data.Country)
	assert.Equal(t, 15.5, data.Temperature)
	assert.Equal(t, 14.8, data.FeelsLike)
	assert.Equal(t, 78, data.Humidity)
	assert.Equal(t, 5.1, data.WindSpeed)
	assert.Equal(t, "light rain", data.Description)
	assert.Equal(t, "10d", data.Icon)
	assert.Equal(t, 0, data.UTCOffsetSeconds)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), data.ObservedAt)
	assert.Equal(t, time.Unix(1699990000, 0).UTC(), data.Sunrise)
	assert.Equal(t, time.Unix(1700020000, 0).UTC(), data.Sunset)
	assert.Equal(t, "closed", provider.BreakerState())
}

func TestOpenWeatherMapProvider_PercentEncodesCity(t *testing.T) {
	var rawQuery string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "São Paulo&x=1", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name": "São Paulo", "dt": 1700000000, "timezone": -10800}`))
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL+"/")

	data, err := provider.GetCurrentWeather(context.Background(), "São Paulo&x=1")

	require.NoError(t, err)
	assert.Contains(t, rawQuery, "q=S%C3%A3o+Paulo%26x%3D1")
	assert.Equal(t, -10800, data.UTCOffsetSeconds)
	assert.Empty(t, data.Description)
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errorType errors.ErrorType
		errMsg    string
	}{
		{name: "CityNotFound", status: http.StatusNotFound, body: `{"cod":"404","message":"city not found"}`, errorType: errors.NotFoundError, errMsg: "city not found"},
		{name: "Unauthorized", status: http.StatusUnauthorized, body: `{"cod":401}`, errorType: errors.ExternalAPIError, errMsg: "status 401"},
		{name: "RateLimited", status: http.StatusTooManyRequests, errorType: errors.ExternalAPIError, errMsg: "status 429"},
		{name: "ServerError", status: http.StatusInternalServerError, errorType: errors.ExternalAPIError, errMsg: "status 500"},
		{name: "InvalidJSON", status: http.StatusOK, body: `{"name": "London", "dt": `, errorType: errors.ExternalAPIError, errMsg: "decode"},
		{name: "MissingName", status: http.StatusOK, body: `{"dt": 1700000000, "main": {"temp": 3}}`, errorType: errors.ExternalAPIError, errMsg: "malformed"},
		{name: "MissingDt", status: http.StatusOK, body: `{"name": "London", "main": {"temp": 3}}`, errorType: errors.ExternalAPIError, errMsg: "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			provider := newTestProvider(t, mockServer.URL)

			data, err := provider.GetCurrentWeather(context.Background(), "London")

			assert.Nil(t, data)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, errors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOpenWeatherMapProvider_NoRetry(t *testing.T) {
	var hits int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	_, err := provider.GetCurrentWeather(context.Background(), "London")

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestOpenWeatherMapProvider_CircuitBreakerOpens(t *testing.T) {
	var hits int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := provider.GetCurrentWeather(ctx, "London")
		require.Error(t, err)
	}
	assert.Equal(t, "open", provider.BreakerState())

	_, err := provider.GetCurrentWeather(ctx, "London")

	assert.Equal(t, errors.ExternalAPIError, errors.TypeOf(err))
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestOpenWeatherMapProvider_NotFoundDoesNotTripBreaker(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	for i := 0; i < 5; i++ {
		_, err := provider.GetCurrentWeather(context.Background(), "Atlantis")
		assert.True(t, errors.IsNotFoundError(err))
	}
	assert.Equal(t, "closed", provider.BreakerState())
}

func TestOpenWeatherMapProvider_NetworkError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := mockServer.URL
	mockServer.Close()

	provider := newTestProvider(t, serverURL)

	data, err := provider.GetCurrentWeather(context.Background(), "London")

	assert.Nil(t, data)
	assert.Equal(t, errors.ExternalAPIError, errors.TypeOf(err))
	assert.Contains(t, err.Error(), "failed to call OpenWeatherMap")
}

func TestOpenWeatherMapProvider_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer mockServer.Close()
	defer close(release)

	provider := newTestProvider(t, mockServer.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := provider.GetCurrentWeather(ctx, "London")

	assert.Equal(t, errors.ExternalAPIError, errors.TypeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenWeatherMapProvider_CallerCancellationDoesNotTripBreaker(t *testing.T) {
	var hits int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonPayload))
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		_, err := provider.GetCurrentWeather(cancelled, "London")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", provider.BreakerState())

	data, err := provider.GetCurrentWeather(context.Background(), "London")

	require.NoError(t, err)
	assert.Equal(t, "London", data.City)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestOpenWeatherMapProvider_EmptyCity(t *testing.T) {
	provider := newTestProvider(t, "http://127.0.0.1:1")

	_, err := provider.GetCurrentWeather(context.Background(), "  ")

	assert.True(t, errors.IsValidationError(err))
}

func TestOpenWeatherMapProvider_Defaults(t *testing.T) {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{Logger: setupLoggerMock(t)})

	assert.Equal(t, "openweathermap", provider.GetProviderName())
	assert.Equal(t, defaultOpenWeatherMapURL, provider.baseURL)
	client, ok := provider.client.(*http.Client)
	require.True(t, ok)
	assert.Zero(t, client.Timeout)
}
