package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherhistory.app/internal/ports"
)

const metricsNamespace = "weather_history"

// PrometheusMetricsCollector implements the MetricsCollector port with prometheus collectors
type PrometheusMetricsCollector struct {
	lookups             *prometheus.CounterVec
	lookupDuration      prometheus.Histogram
	appends             *prometheus.CounterVec
	analyticsRecomputes prometheus.Counter
	windowSize          prometheus.Gauge
	subscriptions       prometheus.Gauge
}

// NewPrometheusMetricsCollector registers the application collectors on reg.
// Passing prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	factory := promauto.With(reg)

	return &PrometheusMetricsCollector{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "lookups_total",
				Help:      "The total number of weather lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "lookup_duration_seconds",
				Help:      "Weather lookup duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		appends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "appends_total",
				Help:      "The total number of history appends by outcome",
			},
			[]string{"outcome"},
		),
		analyticsRecomputes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "analytics_recomputes_total",
				Help:      "The total number of analytics recomputations",
			},
		),
		windowSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "window_size",
				Help:      "Number of records in the last analysed history window",
			},
		),
		subscriptions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "active_subscriptions",
				Help:      "Number of open history subscriptions",
			},
		),
	}
}

// RecordLookup counts one weather lookup and observes its duration
func (m *PrometheusMetricsCollector) RecordLookup(outcome string, duration time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(duration.Seconds())
}

// RecordHistoryAppend counts one history append
func (m *PrometheusMetricsCollector) RecordHistoryAppend(outcome string) {
	m.appends.WithLabelValues(outcome).Inc()
}

// RecordAnalyticsRecompute counts one recompute over a window of the given size
func (m *PrometheusMetricsCollector) RecordAnalyticsRecompute(windowSize int) {
	m.analyticsRecomputes.Inc()
	m.windowSize.Set(float64(windowSize))
}

// SubscriptionOpened tracks a new history subscription
func (m *PrometheusMetricsCollector) SubscriptionOpened() {
	m.subscriptions.Inc()
}

// SubscriptionClosed tracks a cancelled history subscription
func (m *PrometheusMetricsCollector) SubscriptionClosed() {
	m.subscriptions.Dec()
}

var _ ports.MetricsCollector = (*PrometheusMetricsCollector)(nil)
