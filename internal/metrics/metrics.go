// Package metrics declares the demo service's HTTP-facing Prometheus
// metrics, adapted from the teacher's internal/pkg/metrics/metrics.go.
// Pool-internal metrics (queue depth, active workers, task outcomes)
// live alongside internal/pool instead, since they're a property of
// whichever pool instance registers them, not of the HTTP surface.
//
// Unlike the teacher, the demo's metrics server serves
// prometheus.DefaultGatherer directly (see internal/httpapi) rather than
// assembling a second hand-picked registry: every promauto metric in this
// module, including internal/pool's, already lands in the default
// registry, so a parallel custom one would just be a partial, easy-to-
// forget duplicate of it.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Inbound (server) metrics ---
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_errors_total",
			Help: "Total number of HTTP requests resulting in client or server errors.",
		},
		[]string{"method", "route", "code"},
	)

	// --- Outbound (client) metrics ---
	HTTPClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outbound HTTP requests made by the page fetcher.",
		},
		[]string{"method", "code"},
	)
	HTTPClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Latency of outbound HTTP requests made by the page fetcher.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)

	// --- Crawl-domain metrics ---
	PagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawl_pages_fetched_total",
			Help: "Total number of pages fetched, by outcome.",
		},
		[]string{"outcome"},
	)
	PendingSetSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crawl_pending_set_size",
			Help: "Number of identities currently awaiting dispatch across all orchestrators.",
		},
	)

	// --- Runtime metrics ---
	CPUCount = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "process_cpu_count",
			Help: "Number of CPU cores available.",
		},
		func() float64 { return float64(runtime.NumCPU()) },
	)
)
