// Package metrics exposes the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	HTTPInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ejobs",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ejobs",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ejobs",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	ApplicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ejobs",
			Subsystem: "applications",
			Name:      "created_total",
			Help:      "Job applications submitted by candidates.",
		},
	)

	PaymentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ejobs",
			Subsystem: "payments",
			Name:      "created_total",
			Help:      "Payments recorded, by service type.",
		},
		[]string{"service_type"},
	)

	PostsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ejobs",
			Subsystem: "jobs",
			Name:      "expired_total",
			Help:      "Job posts closed because their expiry date passed.",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPInFlight,
		httpRequests,
		httpDuration,
		ApplicationsCreated,
		PaymentsCreated,
		PostsExpired,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
