package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	maxResponseBytes         = 1 << 20
	providerName             = "openweathermap"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	// Timeout bounds one request; zero leaves it to the caller's context
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	Client             HTTPClient
	Logger             ports.Logger
}

// openWeatherMapResponse represents the current weather payload
type openWeatherMapResponse struct {
	Name     string `json:"name"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Main     struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

var (
	errUpstreamUnavailable = stderrors.New("upstream unavailable")
	// errCallerGone marks requests abandoned by the caller; they say nothing
	// about upstream health
	errCallerGone = stderrors.New("request abandoned by caller")
)

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapURL
	}

	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: params.Timeout}
	}

	maxFailures := params.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := params.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}

	p := &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn("Weather provider circuit breaker state changed",
				ports.F("provider", name),
				ports.F("from", from.String()),
				ports.F("to", to.String()))
		},
	})

	return p
}

// GetCurrentWeather retrieves current weather for a city. The request is sent
// once; only transport failures, rate limiting and server errors count
// against the circuit breaker. A request the caller cancels does not.
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherSnapshotData, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	req, err := p.buildRequest(ctx, city)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build OpenWeatherMap request", err)
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		resp, doErr := p.client.Do(req)
		if doErr != nil {
			if ctxErr := req.Context().Err(); ctxErr != nil {
				return nil, fmt.Errorf("%w: %w", errCallerGone, ctxErr)
			}
			return nil, doErr
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			p.closeBody(resp)
			return nil, fmt.Errorf("%w: status %d", errUpstreamUnavailable, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewExternalAPIError("OpenWeatherMap circuit breaker is open", err)
		}
		return nil, errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}

	resp := result.(*http.Response)
	defer p.closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError(fmt.Sprintf("city not found: %s", city))
	case resp.StatusCode != http.StatusOK:
		return nil, errors.NewExternalAPIError(fmt.Sprintf("OpenWeatherMap returned status %d", resp.StatusCode), nil)
	}

	var apiResp openWeatherMapResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&apiResp); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	if apiResp.Name == "" || apiResp.Dt == 0 {
		return nil, errors.NewExternalAPIError("malformed OpenWeatherMap response: missing name or dt", nil)
	}

	return toSnapshotData(&apiResp), nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return providerName
}

// BreakerState reports the circuit breaker state for health checks
func (p *OpenWeatherMapProviderAdapter) BreakerState() string {
	return p.breaker.State().String()
}

func (p *OpenWeatherMapProviderAdapter) buildRequest(ctx context.Context, city string) (*http.Request, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (p *OpenWeatherMapProviderAdapter) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", err))
	}
}

func toSnapshotData(apiResp *openWeatherMapResponse) *ports.WeatherSnapshotData {
	var description, icon string
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
		icon = apiResp.Weather[0].Icon
	}

	return &ports.WeatherSnapshotData{
		City:             apiResp.Name,
		Country:          apiResp.Sys.Country,
		Temperature:      apiResp.Main.Temp,
		FeelsLike:        apiResp.Main.FeelsLike,
		Humidity:         apiResp.Main.Humidity,
		WindSpeed:        apiResp.Wind.Speed,
		Description:      description,
		Icon:             icon,
		UTCOffsetSeconds: apiResp.Timezone,
		Sunrise:          time.Unix(apiResp.Sys.Sunrise, 0).UTC(),
		Sunset:           time.Unix(apiResp.Sys.Sunset, 0).UTC(),
		ObservedAt:       time.Unix(apiResp.Dt, 0).UTC(),
	}
}
