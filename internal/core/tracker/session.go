// Package tracker holds the observable state of a weather search session:
// the latest snapshot, its day/night phase, the live history window and the
// analytics derived from it.
package tracker

import (
	"context"
	"sync"
	"time"

	"weatherhistory.app/internal/core/analytics"
	"weatherhistory.app/internal/core/history"
	"weatherhistory.app/internal/core/weather"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
	"weatherhistory.app/pkg/validation"
)

// User-facing messages surfaced in State.ErrorMessage
const (
	MessageLookupFailed      = "Unable to fetch weather. Please check the city name and try again."
	MessagePersistenceFailed = "Weather was fetched but could not be saved to history."
	MessageUnexpected        = "Something went wrong."
)

// WeatherLookup is the weather use case the session depends on
type WeatherLookup interface {
	Lookup(ctx context.Context, request weather.LookupRequest) (*weather.Snapshot, error)
}

// HistoryRecorder is the history use case the session depends on
type HistoryRecorder interface {
	NewRecord(city string, temperature float64, condition string, timestamp time.Time) history.Record
	Record(ctx context.Context, record history.Record) error
	Watch(ctx context.Context, limit int) (*history.Feed, error)
}

// State is a point-in-time copy of the session
type State struct {
	Weather      *weather.Snapshot `json:"weather"`
	IsNight      bool              `json:"isNight"`
	Phase        weather.Phase     `json:"phase"`
	History      []history.Record  `json:"history"`
	Analytics    analytics.Result  `json:"analytics"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	IsLoading    bool              `json:"isLoading"`
}

type Session struct {
	weather WeatherLookup
	history HistoryRecorder
	logger  ports.Logger
	metrics ports.MetricsCollector
	clock   func() time.Time

	mu       sync.RWMutex
	state    State
	inFlight int

	listenMu   sync.Mutex
	feed       *history.Feed
	listenDone chan struct{}
}

type SessionDependencies struct {
	Weather WeatherLookup
	History HistoryRecorder
	Logger  ports.Logger
	Metrics ports.MetricsCollector
	// Clock stamps new history records; defaults to time.Now
	Clock func() time.Time
}

func NewSession(deps SessionDependencies) (*Session, error) {
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather use case is required")
	}
	if deps.History == nil {
		return nil, errors.NewValidationError("history use case is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Session{
		weather: deps.Weather,
		history: deps.History,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		clock:   clock,
		state: State{
			Phase:     weather.PhaseDay,
			History:   []history.Record{},
			Analytics: analytics.Recompute(nil),
		},
	}, nil
}

// FetchAndSave looks up the weather for cityInput and appends it to the
// history. Blank input is ignored and leaves the state untouched. Failures
// end up in State.ErrorMessage; a failed append keeps the fetched snapshot.
func (s *Session) FetchAndSave(ctx context.Context, cityInput string) State {
	city, ok := validation.TrimAndValidate(cityInput)
	if !ok {
		return s.State()
	}

	s.mu.Lock()
	s.inFlight++
	s.state.IsLoading = true
	s.state.ErrorMessage = ""
	s.mu.Unlock()

	s.search(ctx, city)
	s.finishLoading()
	return s.State()
}

func (s *Session) search(ctx context.Context, city string) {
	snapshot, err := s.weather.Lookup(ctx, weather.LookupRequest{City: city})
	if err != nil {
		s.logger.Warn("Search failed at lookup", ports.F("city", city), ports.F("error", err))
		s.setError(err)
		return
	}

	night := snapshot.IsNight()
	s.mu.Lock()
	s.state.Weather = snapshot
	s.state.IsNight = night
	s.state.Phase = weather.PhaseOf(night)
	s.mu.Unlock()

	record := s.history.NewRecord(snapshot.City, snapshot.Temperature, snapshot.Description, s.clock())
	if err := s.history.Record(ctx, record); err != nil {
		s.logger.Warn("Search failed at append", ports.F("city", snapshot.City), ports.F("error", err))
		s.setError(err)
		return
	}

	s.logger.Info("Search recorded",
		ports.F("city", snapshot.City),
		ports.F("temperature", snapshot.Temperature),
		ports.F("phase", string(weather.PhaseOf(night))))
}

// StartListening opens the live history feed. Each delivered window replaces
// the history and recomputes the analytics. Calling it while a feed is active
// is a no-op.
func (s *Session) StartListening(ctx context.Context) error {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	if s.feed != nil {
		select {
		case <-s.listenDone:
			s.feed.Cancel()
			s.feed = nil
		default:
			return nil
		}
	}

	feed, err := s.history.Watch(ctx, 0)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	s.feed = feed
	s.listenDone = done
	go s.consume(feed, done)

	s.logger.Info("History listener started")
	return nil
}

// StopListening cancels the feed and waits until no further window is applied
func (s *Session) StopListening() {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	if s.feed == nil {
		return
	}
	s.feed.Cancel()
	<-s.listenDone
	s.feed = nil
	s.logger.Info("History listener stopped")
}

// IsListening reports whether a live feed is currently applied to the state
func (s *Session) IsListening() bool {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	if s.feed == nil {
		return false
	}
	select {
	case <-s.listenDone:
		return false
	default:
		return true
	}
}

func (s *Session) consume(feed *history.Feed, done chan struct{}) {
	defer close(done)
	for window := range feed.Updates() {
		s.apply(window)
	}
}

func (s *Session) apply(window []history.Record) {
	result := analytics.Recompute(window)
	s.metrics.RecordAnalyticsRecompute(len(window))

	s.mu.Lock()
	s.state.History = window
	s.state.Analytics = result
	s.mu.Unlock()
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Analytics returns the aggregates of the current history window
func (s *Session) Analytics() analytics.Result {
	return s.State().Analytics
}

// ClearError dismisses the current error message
func (s *Session) ClearError() State {
	s.mu.Lock()
	s.state.ErrorMessage = ""
	s.mu.Unlock()
	return s.State()
}

func (s *Session) setError(err error) {
	s.mu.Lock()
	s.state.ErrorMessage = MessageFor(err)
	s.mu.Unlock()
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	s.inFlight--
	s.state.IsLoading = s.inFlight > 0
	s.mu.Unlock()
}

// MessageFor maps an error to the single message shown to the user
func MessageFor(err error) string {
	switch errors.TypeOf(err) {
	case errors.LookupFailureError:
		return MessageLookupFailed
	case errors.PersistenceFailureError:
		return MessagePersistenceFailed
	default:
		return MessageUnexpected
	}
}

func (st State) clone() State {
	out := st
	if st.Weather != nil {
		w := *st.Weather
		out.Weather = &w
	}
	out.History = append(make([]history.Record, 0, len(st.History)), st.History...)
	out.Analytics.CityCounts = append(make([]analytics.CityCount, 0, len(st.Analytics.CityCounts)), st.Analytics.CityCounts...)
	if st.Analytics.Hottest != nil {
		h := *st.Analytics.Hottest
		out.Analytics.Hottest = &h
	}
	if st.Analytics.TopCity != nil {
		top := *st.Analytics.TopCity
		out.Analytics.TopCity = &top
	}
	return out
}
