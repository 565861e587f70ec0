// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherhistory.app/internal/core/analytics"
	"weatherhistory.app/internal/core/history"
	"weatherhistory.app/internal/core/tracker"
	"weatherhistory.app/internal/core/weather"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
	"weatherhistory.app/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router        *gin.Engine
	config        ServerConfig
	tracker       TrackerSession
	weather       WeatherLookup
	history       HistoryReader
	healthChecker ports.SystemHealthChecker
	gatherer      prometheus.Gatherer

	mu         sync.Mutex
	server     *http.Server
	cancelBase context.CancelFunc
}

// Use case interfaces that the HTTP adapter depends on
type TrackerSession interface {
	FetchAndSave(ctx context.Context, cityInput string) tracker.State
	State() tracker.State
	ClearError() tracker.State
	Analytics() analytics.Result
}

type WeatherLookup interface {
	Lookup(ctx context.Context, request weather.LookupRequest) (*weather.Snapshot, error)
}

type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Record, error)
	Watch(ctx context.Context, limit int) (*history.Feed, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	Tracker        TrackerSession
	WeatherUseCase WeatherLookup
	HistoryUseCase HistoryReader
	HealthChecker  ports.SystemHealthChecker
	// Gatherer backs /metrics; nil uses the default prometheus registry
	Gatherer prometheus.Gatherer
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server := &HTTPServerAdapter{
		router:        gin.Default(),
		config:        opts.Config,
		tracker:       opts.Tracker,
		weather:       opts.WeatherUseCase,
		history:       opts.HistoryUseCase,
		healthChecker: opts.HealthChecker,
		gatherer:      gatherer,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Tracker == nil {
		return errors.NewValidationError("tracker session is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.HistoryUseCase == nil {
		return errors.NewValidationError("history use case is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	return nil
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators installs the custom binding tags on gin's validator
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		validatorsErr = v.RegisterValidation("cityname", func(fl validator.FieldLevel) bool {
			return validation.IsValidCityName(fl.Field().String())
		})
	})
	return validatorsErr
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/search", s.search)
		api.GET("/state", s.getState)
		api.DELETE("/state/error", s.clearError)
		api.GET("/weather", s.getWeather)
		api.GET("/history", s.getHistory)
		api.GET("/history/stream", s.streamHistory)
		api.GET("/analytics", s.getAnalytics)
		api.GET("/health", s.getHealth)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Start serves HTTP until Shutdown is called. Request contexts derive from
// ctx, so cancelling it also ends open history streams.
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	baseCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancelBase = cancel
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv := s.server
	s.mu.Unlock()

	slog.Info("Starting HTTP server", "port", s.config.Port)
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown ends open history streams and gracefully stops the server
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	cancel := s.cancelBase
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(ctx, shutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
