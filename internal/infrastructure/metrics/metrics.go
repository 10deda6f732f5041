// Package metrics exposes payment outcomes as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "claimpay"

var _ application.Metrics = (*Metrics)(nil)

type Metrics struct {
	registry *prometheus.Registry

	PaymentsProcessed   *prometheus.CounterVec
	PaymentTransitions  *prometheus.CounterVec
	ProcessDuration     prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PaymentsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_processed_total",
			Help:      "Process-payment calls by outcome (created or lower-cased error code).",
		}, []string{"outcome"}),
		PaymentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_transitions_total",
			Help:      "Successful payment status transitions.",
		}, []string{"from", "to"}),
		ProcessDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "process_payment_duration_seconds",
			Help:      "Latency of the process-payment use case.",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) PaymentProcessed(outcome string, elapsed time.Duration) {
	m.PaymentsProcessed.WithLabelValues(outcome).Inc()
	m.ProcessDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) PaymentTransitioned(from, to domain.PaymentStatus) {
	m.PaymentTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveHTTP records one served request. route is the mux pattern, not the
// raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
