// Package middleware carries the teacher's HTTP middleware chain forward:
// request metrics and request-ID/structured-logging, adapted from
// internal/http/middleware/{metrices,request_id_logger}.go.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"crawlkit/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records per-request counters and latency histograms, labelled
// by the matched chi route pattern rather than the raw path so
// high-cardinality paths (e.g. crawl targets) don't blow up the metric
// space.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		duration := time.Since(start).Seconds()
		codeStr := strconv.Itoa(rec.status)

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, codeStr).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
		if rec.status >= 400 {
			metrics.HTTPRequestErrorsTotal.WithLabelValues(r.Method, route, codeStr).Inc()
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
