package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sig-0/pbrates/provider/privatbank"
	"github.com/sig-0/pbrates/storage/types"
)

const namespace = "pbrates"

// Metrics holds the day fetch collectors.
// It implements both the ingest observer and the fetch diagnostic reporter
type Metrics struct {
	registry *prometheus.Registry

	DayFetchesTotal   *prometheus.CounterVec
	DayFetchDuration  prometheus.Histogram
	FetchFailureTotal *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	var (
		registry = prometheus.NewRegistry()
		factory  = promauto.With(registry)
	)

	return &Metrics{
		registry: registry,

		DayFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "day_fetches_total",
				Help:      "Total number of settled day fetches, by outcome",
			},
			[]string{"outcome"},
		),

		DayFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "day_fetch_duration_seconds",
				Help:      "Day fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		FetchFailureTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "day_fetch_failures_total",
				Help:      "Total number of failed day fetches, by status code (0 for transport errors)",
			},
			[]string{"status_code"},
		),
	}
}

// ObserveDay records a settled day fetch
func (m *Metrics) ObserveDay(outcome types.Outcome, elapsed time.Duration) {
	m.DayFetchesTotal.WithLabelValues(outcome.String()).Inc()
	m.DayFetchDuration.Observe(elapsed.Seconds())
}

// Report records a failed day fetch diagnostic
func (m *Metrics) Report(_ context.Context, d privatbank.Diagnostic) {
	m.FetchFailureTotal.WithLabelValues(strconv.Itoa(d.StatusCode)).Inc()
}

// Handler returns the exposition handler for the collectors
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
