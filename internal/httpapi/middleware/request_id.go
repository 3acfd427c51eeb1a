package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyRequestID struct{}

// RequestIDLogger assigns (or propagates) an x-request-id header,
// attaches it to the request context, recovers from handler panics into
// a JSON 500, and logs one structured entry per request. Adapted from
// internal/http/middleware/request_id_logger.go.
func RequestIDLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-request-id")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			reqID := r.Header.Get("x-request-id")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set("x-request-id", reqID)
			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, reqID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			defer func() {
				entry := logger.WithFields(logrus.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     rec.status,
					"request_id": reqID,
					"duration":   time.Since(start).String(),
				})

				if rec2 := recover(); rec2 != nil {
					entry.WithFields(logrus.Fields{
						"panic": rec2,
						"stack": string(debug.Stack()),
					}).Error("panic recovered")
					rec.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(rec).Encode(map[string]string{
						"error":      "internal server error",
						"request_id": reqID,
					})
				} else if rec.status >= 400 {
					entry.Error("request completed with error status")
				} else {
					entry.Info("request completed")
				}
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))
		})
	}
}

// RequestID extracts the request ID stashed by RequestIDLogger, for
// handlers that want to echo it in a response body.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}
