package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Pricing metrics
	DiscountPricesComputed *prometheus.CounterVec
	DiscountLookups        *prometheus.CounterVec

	// Dashboard metrics
	AggregationDuration *prometheus.HistogramVec
	AggregationBuckets  *prometheus.HistogramVec

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec
}

// New registers the collectors on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		DiscountPricesComputed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "discount_prices_computed_total",
				Help: "Total number of discounted prices computed",
			},
			[]string{"discount_type"},
		),

		DiscountLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "discount_code_lookups_total",
				Help: "Total number of discount code lookups at checkout",
			},
			[]string{"outcome"},
		),

		AggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_aggregation_duration_seconds",
				Help:    "Time spent building dashboard series",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"series"},
		),

		AggregationBuckets: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_series_days",
				Help:    "Number of day buckets in produced dashboard series",
				Buckets: []float64{1, 7, 30, 90, 365, 1000, 5000},
			},
			[]string{"series"},
		),

		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordDiscountPrice(discountType string) {
	m.DiscountPricesComputed.WithLabelValues(discountType).Inc()
}

// outcome is one of applied, unusable, none
func (m *Metrics) RecordDiscountLookup(outcome string) {
	m.DiscountLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordAggregation(series string, days int, duration time.Duration) {
	m.AggregationDuration.WithLabelValues(series).Observe(duration.Seconds())
	m.AggregationBuckets.WithLabelValues(series).Observe(float64(days))
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
