package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the Meveto integration
type Metrics struct {
	// Provider call metrics
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec

	// Directory metrics
	DirectoryOperationsTotal *prometheus.CounterVec

	// Webhook metrics
	WebhookEventsTotal *prometheus.CounterVec

	factory  promauto.Factory
	gatherer prometheus.Gatherer
}

// LoggedInCounter counts the users currently logged in
type LoggedInCounter func(ctx context.Context) (int, error)

// loggedInQueryTimeout bounds each count made during a scrape
const loggedInQueryTimeout = 5 * time.Second

// New creates a new Metrics instance registered with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry creates a new Metrics instance with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		ProviderCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meveto_provider_calls_total",
				Help: "Total number of calls to the Meveto provider",
			},
			[]string{"operation", "outcome"},
		),
		ProviderCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meveto_provider_call_duration_seconds",
				Help:    "Meveto provider call latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		DirectoryOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meveto_directory_operations_total",
				Help: "Total number of user directory operations",
			},
			[]string{"operation", "status"},
		),

		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meveto_webhook_events_total",
				Help: "Total number of Meveto webhook events received",
			},
			[]string{"type", "status"},
		),

		factory:  factory,
		gatherer: gatherer,
	}
}

// ObserveCall records an outbound provider call
func (m *Metrics) ObserveCall(operation, outcome string, duration time.Duration) {
	m.ProviderCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.ProviderCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDirectoryOperation records a user directory operation
func (m *Metrics) RecordDirectoryOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DirectoryOperationsTotal.WithLabelValues(operation, status).Inc()
}

// TrackLoggedInUsers exposes meveto_logged_in_users, read from count on
// every scrape. A failed count reports NaN.
func (m *Metrics) TrackLoggedInUsers(count LoggedInCounter) {
	m.factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "meveto_logged_in_users",
			Help: "Users currently logged in through Meveto",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), loggedInQueryTimeout)
			defer cancel()

			n, err := count(ctx)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		},
	)
}

// RecordWebhookEvent records a received webhook event
func (m *Metrics) RecordWebhookEvent(eventType, status string) {
	m.WebhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

// Handler returns the HTTP handler exposing the gathered metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
