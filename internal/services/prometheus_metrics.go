package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	authenticationEventsTotal *prometheus.CounterVec
	categoryMutationsTotal    *prometheus.CounterVec
	expenseMutationsTotal     *prometheus.CounterVec
	expenseAmount             prometheus.Histogram
	summaryDuration           *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the domain metrics with reg; nil means the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		categoryMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_mutations_total",
				Help: "Total number of category writes",
			},
			[]string{"operation"},
		),
		expenseMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expense_mutations_total",
				Help: "Total number of expense writes",
			},
			[]string{"operation"},
		),
		expenseAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_amount",
				Help:    "Amount of created expenses in currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		summaryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summary_query_duration_seconds",
				Help:    "Summary aggregation query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "category_mutation":
		if operation := tags["operation"]; operation != "" {
			m.categoryMutationsTotal.WithLabelValues(operation).Inc()
		}
	case "expense_mutation":
		if operation := tags["operation"]; operation != "" {
			m.expenseMutationsTotal.WithLabelValues(operation).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "summary_monthly":
		m.summaryDuration.WithLabelValues("monthly").Observe(duration.Seconds())
	case "summary_category":
		m.summaryDuration.WithLabelValues("category").Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "expense_amount":
		m.expenseAmount.Observe(value)
	}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return NoopMetrics{} }

func (NoopMetrics) IncrementCounter(string, map[string]string) {}

func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}

func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
