// Package metrics exposes Prometheus instrumentation for upstream catalog calls and
// web UI requests. Metrics are registered on the default registry and served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts TMDb calls by endpoint name and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieweb_upstream_requests_total",
			Help: "Total number of upstream catalog API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieweb_upstream_request_duration_seconds",
			Help:    "Duration of upstream catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieweb_http_requests_total",
			Help: "Total number of web UI requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieweb_http_request_duration_seconds",
			Help:    "Duration of web UI requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TrailerLookups counts trailer resolutions by result ("found" or "unavailable").
	TrailerLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieweb_trailer_lookups_total",
			Help: "Total number of trailer resolutions by result",
		},
		[]string{"result"},
	)
)

// Upstream records upstream request metrics. It satisfies httpclient.Observer.
type Upstream struct{}

// ObserveRequest records one upstream call.
func (Upstream) ObserveRequest(name, outcome string, elapsed time.Duration) {
	UpstreamRequests.WithLabelValues(name, outcome).Inc()
	UpstreamDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// RecordHTTPRequest records one served web UI request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordTrailerLookup records the result of a trailer resolution.
func RecordTrailerLookup(found bool) {
	if found {
		TrailerLookups.WithLabelValues("found").Inc()
		return
	}
	TrailerLookups.WithLabelValues("unavailable").Inc()
}
